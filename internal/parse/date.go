package parse

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrUnrecognizedDate means the text matched none of the accepted
	// date formats.
	ErrUnrecognizedDate = errors.New("unrecognized date format")
	// ErrInvalidDate means the text looked like a date but names a day
	// that does not exist (e.g. "31 February 2024").
	ErrInvalidDate = errors.New("invalid calendar date")
)

// Accepted layouts, tried in order. The numeric layouts use unpadded
// digits so both "5/2/2026" and "05/02/2026" match.
var dateLayouts = []string{
	"2 January 2006",
	"2 Jan 2006",
	"2-1-2006",
	"2/1/2006",
	"2006-1-2",
	"2.1.2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// Year-less layouts are pinned to the current year, rolling to the next
// year when the resulting date has already passed.
var yearlessLayouts = []string{
	"2 January",
	"2 Jan",
}

// Date parses a calendar date from free text. A failure is either
// ErrUnrecognizedDate (format not understood) or ErrInvalidDate (format
// understood, date impossible) so callers can word the re-prompt
// accordingly. The returned time is the date at midnight UTC.
func Date(text string, now time.Time) (time.Time, error) {
	text = normalizeMonthCase(strings.TrimSpace(text))
	if text == "" {
		return time.Time{}, ErrUnrecognizedDate
	}

	sawImpossible := false
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, text)
		if err == nil {
			return midnight(t), nil
		}
		if strings.Contains(err.Error(), "out of range") {
			sawImpossible = true
		}
	}

	for _, layout := range yearlessLayouts {
		t, err := time.Parse(layout, text)
		if err != nil {
			if strings.Contains(err.Error(), "out of range") {
				sawImpossible = true
			}
			continue
		}
		pinned := time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		if pinned.Before(midnight(now)) {
			pinned = pinned.AddDate(1, 0, 0)
		}
		return pinned, nil
	}

	if sawImpossible {
		return time.Time{}, ErrInvalidDate
	}
	return time.Time{}, ErrUnrecognizedDate
}

// normalizeMonthCase title-cases alphabetic tokens so "15 february
// 2024" matches the month-name layouts; time.Parse is case sensitive.
func normalizeMonthCase(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		if w[0] >= 'a' && w[0] <= 'z' {
			words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
		} else if w[0] >= 'A' && w[0] <= 'Z' {
			words[i] = w[:1] + strings.ToLower(w[1:])
		}
	}
	return strings.Join(words, " ")
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
