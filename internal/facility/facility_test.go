package facility

import (
	"strings"
	"testing"
)

func TestMatchFacilityKeywords(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"what time is breakfast?", "Breakfast is served daily from 07:00 to 10:00."},
		{"is there a pool", "The pool is open daily from 07:30 to 18:00."},
		{"do you have parking", "Parking is available for €5 per 24 hours."},
		{"WIFI?", "Free WiFi is available throughout the hotel."},
	}
	for _, tc := range cases {
		got, ok := Match(tc.in)
		if !ok {
			t.Fatalf("Match(%q) = no match, want %q", tc.in, tc.want)
		}
		if got != tc.want {
			t.Fatalf("Match(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMatchRoomAndPriceQuestions(t *testing.T) {
	for _, in := range []string{
		"what rooms do you have",
		"what is the difference between the rooms",
		"how much does a suite cost",
		"tell me about the rooms",
	} {
		got, ok := Match(in)
		if !ok || got != RoomSummary {
			t.Fatalf("Match(%q) = (%q, %v), want room summary", in, got, ok)
		}
	}
}

func TestMatchExcludesBareSelections(t *testing.T) {
	for _, in := range []string{"standard", "suite", "Standard Room", "suite room"} {
		if got, ok := Match(in); ok {
			t.Fatalf("Match(%q) = %q, want selection fall-through", in, got)
		}
	}
}

func TestMatchIgnoresUnrelated(t *testing.T) {
	if got, ok := Match("3 guests"); ok {
		t.Fatalf("Match(3 guests) = %q, want no match", got)
	}
}

func TestAnswerFallsBackToOverview(t *testing.T) {
	if got := Answer("pool"); got != "The pool is open daily from 07:30 to 18:00." {
		t.Fatalf("Answer(pool) = %q", got)
	}
	got := Answer("something else entirely")
	if !strings.Contains(got, "quick overview") {
		t.Fatalf("Answer(unknown) = %q, want combined overview", got)
	}
}
