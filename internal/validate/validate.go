// Package validate holds the per-slot semantic rules applied to raw
// guest input. Validators are pure: they normalize or reject a single
// value and never decide conversational flow.
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/stayassist/concierge/internal/parse"
)

// Result is the outcome of validating one slot value.
type Result struct {
	OK      bool
	Value   string // normalized value when OK
	Message string // user-facing correction when not OK
}

func valid(value string) Result     { return Result{OK: true, Value: value} }
func invalid(message string) Result { return Result{Message: message} }

// ISODate is the storage format for calendar dates.
const ISODate = "2006-01-02"

const maxPlausibleNights = 365

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
	"jan", "feb", "mar", "apr", "jun", "jul", "aug", "sep", "oct", "nov", "dec",
}

// Guests validates a guest count: a positive, non-zero number.
func Guests(raw string) Result {
	return positiveCount(raw, "number of guests", "'one guest', 'two guests'")
}

// Rooms validates a room count: a positive, non-zero number.
func Rooms(raw string) Result {
	return positiveCount(raw, "number of rooms", "'one room', 'two rooms'")
}

// Nights validates a night count. Guests often answer the nights
// question with a month name, so that confusion gets its own message,
// and stays over a year are flagged as implausible.
func Nights(raw string) Result {
	lower := strings.ToLower(raw)
	for _, month := range monthNames {
		if strings.Contains(lower, month) {
			return invalid(
				"I think there might be some confusion. You mentioned a month, but I'm asking for the number of nights you'd like to stay. " +
					"For example, if you want to stay for 3 nights, just say '3' or 'three nights'. " +
					"Could you tell me how many nights you'd like to stay?")
		}
	}

	res := positiveCount(raw, "number of nights", "'one night', 'two nights'")
	if !res.OK {
		return res
	}
	if n, err := strconv.Atoi(res.Value); err == nil && n > maxPlausibleNights {
		return invalid(fmt.Sprintf(
			"%d nights seems like a very long stay (more than a year). "+
				"Could you please confirm the number of nights? For example, '3 nights' or '7 nights'.", n))
	}
	return res
}

func positiveCount(raw, field, examples string) Result {
	n, ok := parse.Number(raw)
	if !ok {
		return invalid(fmt.Sprintf(
			"I didn't understand that %s. Please provide a number. For example, you could say %s, or just '1' or '2'.",
			field, examples))
	}
	if n < 0 {
		return invalid(fmt.Sprintf(
			"%s cannot be negative. Please provide a positive number.", capitalize(field)))
	}
	if n == 0 {
		return invalid(fmt.Sprintf(
			"%s cannot be zero. Please provide a number greater than zero.", capitalize(field)))
	}
	// Fractions would otherwise truncate, turning "0.5" into a stored 0.
	if n != float64(int(n)) {
		return invalid(fmt.Sprintf(
			"%s must be a whole number. Please provide a whole number like '1' or '2'.", capitalize(field)))
	}
	return valid(strconv.Itoa(int(n)))
}

// RoomType normalizes a room selection to "standard" or "suite". A bare
// number is rejected outright: it is almost always a stray guest-count
// answer, not a room type.
func RoomType(raw string) Result {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if lower == "" {
		return invalid("I didn't understand that. Please choose either 'standard' or 'suite'.")
	}
	if _, err := strconv.ParseFloat(lower, 64); err == nil {
		return invalid("I didn't understand that. Please choose either 'standard' or 'suite'.")
	}
	if strings.Contains(lower, "suite") {
		return valid("suite")
	}
	if strings.Contains(lower, "standard") {
		return valid("standard")
	}
	return invalid("I didn't understand that. Please choose either 'standard' or 'suite'.")
}

// ArrivalDate validates and normalizes an arrival date. Past dates are
// rejected; today is allowed.
func ArrivalDate(raw string, now time.Time) Result {
	return futureDate(raw, "arrival", now)
}

// DepartureDate validates a departure date and, when the arrival date is
// already known (ISO form), requires the departure to be strictly after
// it. Comparison happens on parsed dates, never on strings.
func DepartureDate(raw, arrivalISO string, now time.Time) Result {
	res := futureDate(raw, "departure", now)
	if !res.OK || arrivalISO == "" {
		return res
	}

	arrival, err := time.Parse(ISODate, arrivalISO)
	if err != nil {
		return res
	}
	departure, _ := time.Parse(ISODate, res.Value)
	if !departure.After(arrival) {
		return invalid(fmt.Sprintf(
			"The departure date must be after the arrival date (%s). Please select a later date.",
			arrival.Format("2 January 2006")))
	}
	return res
}

func futureDate(raw, field string, now time.Time) Result {
	parsed, err := parse.Date(raw, now)
	switch err {
	case nil:
	case parse.ErrInvalidDate:
		return invalid("That date doesn't exist. Please provide a valid date like '15 February 2024' or '15/02/2024'.")
	default:
		return invalid(fmt.Sprintf(
			"I didn't quite catch the %s date. Could you provide it in a format like '15 February 2024', '15/02/2024', or '2024-02-15'?",
			field))
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if parsed.Before(today) {
		return invalid("That date is in the past. Please provide a future date.")
	}
	return valid(parsed.Format(ISODate))
}

var atDeskWords = []string{"desk", "reception", "counter"}
var onlineWords = []string{"online", "pay now", "card", "credit", "debit"}

// PaymentOption maps a closed synonym set onto "at_desk" or "online".
func PaymentOption(raw string) Result {
	lower := strings.ToLower(strings.TrimSpace(raw))
	for _, w := range atDeskWords {
		if strings.Contains(lower, w) {
			return valid("at_desk")
		}
	}
	for _, w := range onlineWords {
		if strings.Contains(lower, w) {
			return valid("online")
		}
	}
	return invalid("I didn't understand that. Please choose either 'at the front desk' or 'online'.")
}

// Email validates and normalizes an email address (lower-cased, trimmed).
func Email(raw string) Result {
	email := strings.ToLower(strings.TrimSpace(raw))
	if !emailPattern.MatchString(email) {
		return invalid("Please provide a valid email address.")
	}
	return valid(email)
}

// FirstName accepts any non-empty name.
func FirstName(raw string) Result { return nonEmpty(raw, "Please tell me your first name.") }

// LastName accepts any non-empty name.
func LastName(raw string) Result { return nonEmpty(raw, "Please tell me your last name.") }

func nonEmpty(raw, message string) Result {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return invalid(message)
	}
	return valid(trimmed)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
