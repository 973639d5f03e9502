// Package facility is the static keyword→answer knowledge base for
// hotel facility and room questions. The table is process-wide and
// immutable; lookups are case-insensitive substring matches.
package facility

import "strings"

const accessibilityAnswer = "Our hotel is fully accessible. We have an elevator/lift available, and all areas including rooms, restaurant, pool, and common areas are wheelchair accessible. Our staff is available 24/7 to assist with mobility needs. If you need assistance during your stay, please let us know and we'll be happy to help."

// RoomSummary describes the room types and pricing; it answers both
// direct room questions and price questions.
const RoomSummary = "Standard rooms are €50 per night and suites are €120 per night. Both offer king-size beds that can be converted into two singles on request, plus a refrigerator, shower, and full bathroom; suites include 3 rooms with king-size beds and a second WC."

// Overview is the combined fallback answer for facility questions that
// match no specific keyword.
const Overview = "Here's a quick overview: " + RoomSummary +
	" Pool 07:30-18:00, parking €5/24h, breakfast 07:00-10:00, lunch 12:00-14:00, dinner 18:00-21:00, gym 24/7. " +
	"Let me know if you need details on anything else."

// answers is ordered: the first matching keyword wins, so multi-topic
// utterances get a deterministic answer.
var answers = []struct {
	keyword string
	text    string
}{
	{"pool", "The pool is open daily from 07:30 to 18:00."},
	{"parking", "Parking is available for €5 per 24 hours."},
	{"breakfast", "Breakfast is served daily from 07:00 to 10:00."},
	{"lunch", "Lunch is served daily from 12:00 to 14:00."},
	{"dinner", "Dinner is served daily from 18:00 to 21:00."},
	{"gym", "Our gym is open 24/7 and includes cardio equipment and free weights."},
	{"wifi", "Free WiFi is available throughout the hotel."},
	{"accessibility", accessibilityAnswer},
	{"disabled", accessibilityAnswer},
	{"wheelchair", accessibilityAnswer},
	{"lift", "Yes, we have an elevator/lift available."},
	{"elevator", "Yes, we have an elevator/lift available."},
}

// Keywords that turn a room/price mention into a room-summary answer.
var roomQuestionPhrases = []string{
	"what type of rooms", "what rooms", "room types", "types of rooms",
	"difference", "differences", "what is the difference", "what are the",
	"tell me about",
}

var priceWords = []string{"price", "cost", "how much", "pricing", "rate", "rates"}

var questionLeads = []string{"what", "which", "how", "tell me", "can you", "do you"}

// Bare room-type selections must fall through to room_type validation,
// not be answered as questions.
var bareSelections = map[string]struct{}{
	"standard": {}, "suite": {}, "standard room": {}, "suite room": {},
}

// Match reports whether the utterance asks about a facility or room
// topic, and returns the answer when it does.
func Match(utterance string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(utterance))
	if lower == "" {
		return "", false
	}

	if _, selection := bareSelections[lower]; selection {
		return "", false
	}

	for _, phrase := range roomQuestionPhrases {
		if strings.Contains(lower, phrase) {
			return RoomSummary, true
		}
	}
	if strings.Contains(lower, "room") {
		for _, lead := range questionLeads {
			if strings.Contains(lower, lead) {
				return RoomSummary, true
			}
		}
	}
	for _, w := range priceWords {
		if strings.Contains(lower, w) {
			return RoomSummary, true
		}
	}

	for _, a := range answers {
		if strings.Contains(lower, a.keyword) {
			return a.text, true
		}
	}
	return "", false
}

// Answer resolves a known facility topic to its text, falling back to
// the combined overview for unknown topics.
func Answer(topic string) string {
	lower := strings.ToLower(strings.TrimSpace(topic))
	for _, a := range answers {
		if strings.Contains(lower, a.keyword) {
			return a.text
		}
	}
	if strings.Contains(lower, "room") || strings.Contains(lower, "suite") || strings.Contains(lower, "standard") {
		return RoomSummary
	}
	return Overview
}
