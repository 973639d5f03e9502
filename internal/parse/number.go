// Package parse converts free-text guest utterances into typed values.
package parse

import (
	"strconv"
	"strings"
)

var unitWords = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13,
	"fourteen": 14, "fifteen": 15, "sixteen": 16, "seventeen": 17,
	"eighteen": 18, "nineteen": 19,
}

var tensWords = map[string]int{
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

var scaleWords = map[string]int{
	"hundred":  100,
	"thousand": 1000,
}

// Filler tokens that may appear interleaved with number words
// ("two rooms and three guests") without breaking the parse.
var ignoredTokens = map[string]struct{}{
	"and": {}, "room": {}, "rooms": {}, "night": {}, "nights": {},
	"guest": {}, "guests": {}, "people": {}, "persons": {}, "person": {},
}

// Number parses digits, decimals, comma-formatted numbers, and English
// number words including compound forms ("twenty one", "two hundred").
// It returns false when any token is neither a number word nor a known
// filler.
func Number(text string) (float64, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return 0, false
	}

	// Fast path: strip everything but digits, dot, minus, and spaces so
	// inputs like "1,250" or "3 rooms" parse directly.
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-', r == ' ':
			return r
		default:
			return -1
		}
	}, text)
	if v, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64); err == nil {
		return v, true
	}

	tokens := strings.Fields(strings.NewReplacer("-", " ", ",", " ").Replace(text))
	if len(tokens) == 0 {
		return 0, false
	}

	// Standard English numeral grammar: units and tens add into an
	// accumulator, scale words multiply it and flush into the total.
	total := 0
	current := 0
	for _, token := range tokens {
		switch {
		case unitWords[token] != 0 || token == "zero":
			current += unitWords[token]
		case tensWords[token] != 0:
			current += tensWords[token]
		case scaleWords[token] != 0:
			if current == 0 {
				current = 1
			}
			current *= scaleWords[token]
			total += current
			current = 0
		default:
			if _, ok := ignoredTokens[token]; ok {
				continue
			}
			return 0, false
		}
	}

	return float64(total + current), true
}
