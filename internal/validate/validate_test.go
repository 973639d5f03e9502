package validate

import (
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)

func TestGuests(t *testing.T) {
	cases := []struct {
		in    string
		ok    bool
		value string
	}{
		{"2", true, "2"},
		{"two", true, "2"},
		{"twenty three guests", true, "23"},
		{"0", false, ""},
		{"-1", false, ""},
		{"0.5", false, ""},
		{"2.5", false, ""},
		{"abc", false, ""},
	}
	for _, tc := range cases {
		got := Guests(tc.in)
		if got.OK != tc.ok {
			t.Fatalf("Guests(%q).OK = %v, want %v (%s)", tc.in, got.OK, tc.ok, got.Message)
		}
		if got.OK && got.Value != tc.value {
			t.Fatalf("Guests(%q).Value = %q, want %q", tc.in, got.Value, tc.value)
		}
	}
}

func TestNightsMonthConfusion(t *testing.T) {
	got := Nights("february")
	if got.OK {
		t.Fatalf("Nights(february) accepted, want rejection")
	}
	if !strings.Contains(got.Message, "month") {
		t.Fatalf("Nights(february) message = %q, want month confusion hint", got.Message)
	}
}

func TestNightsImplausiblyLong(t *testing.T) {
	got := Nights("400")
	if got.OK {
		t.Fatalf("Nights(400) accepted, want rejection")
	}
	if !strings.Contains(got.Message, "long stay") {
		t.Fatalf("Nights(400) message = %q, want long-stay hint", got.Message)
	}
	if got := Nights("7"); !got.OK || got.Value != "7" {
		t.Fatalf("Nights(7) = %+v, want OK value 7", got)
	}
}

func TestRoomType(t *testing.T) {
	cases := []struct {
		in    string
		ok    bool
		value string
	}{
		{"suite", true, "suite"},
		{"I'd like the suite please", true, "suite"},
		{"standard room", true, "standard"},
		{"standard suite", true, "suite"},
		{"2", false, ""},
		{"deluxe", false, ""},
	}
	for _, tc := range cases {
		got := RoomType(tc.in)
		if got.OK != tc.ok {
			t.Fatalf("RoomType(%q).OK = %v, want %v", tc.in, got.OK, tc.ok)
		}
		if got.OK && got.Value != tc.value {
			t.Fatalf("RoomType(%q).Value = %q, want %q", tc.in, got.Value, tc.value)
		}
	}
}

func TestArrivalDate(t *testing.T) {
	if got := ArrivalDate("15 August 2025", testNow); !got.OK || got.Value != "2025-08-15" {
		t.Fatalf("ArrivalDate(valid) = %+v, want OK 2025-08-15", got)
	}
	if got := ArrivalDate("15 August 2020", testNow); got.OK {
		t.Fatalf("ArrivalDate(past) accepted")
	}
	if got := ArrivalDate("31 February 2026", testNow); got.OK || !strings.Contains(got.Message, "doesn't exist") {
		t.Fatalf("ArrivalDate(impossible) = %+v, want date-specific error", got)
	}
	if got := ArrivalDate("whenever", testNow); got.OK || !strings.Contains(got.Message, "format") {
		t.Fatalf("ArrivalDate(gibberish) = %+v, want format-specific error", got)
	}
	// Same-day arrival allowed.
	if got := ArrivalDate("1 June 2025", testNow); !got.OK {
		t.Fatalf("ArrivalDate(today) rejected: %s", got.Message)
	}
}

func TestDepartureStrictlyAfterArrival(t *testing.T) {
	if got := DepartureDate("10 June 2025", "2025-06-10", testNow); got.OK {
		t.Fatalf("departure equal to arrival accepted")
	}
	if got := DepartureDate("11 June 2025", "2025-06-10", testNow); !got.OK || got.Value != "2025-06-11" {
		t.Fatalf("departure after arrival = %+v, want OK 2025-06-11", got)
	}
	if got := DepartureDate("9 June 2025", "2025-06-10", testNow); got.OK {
		t.Fatalf("departure before arrival accepted")
	}
}

func TestPaymentOption(t *testing.T) {
	cases := []struct {
		in    string
		ok    bool
		value string
	}{
		{"at the front desk", true, "at_desk"},
		{"reception", true, "at_desk"},
		{"online", true, "online"},
		{"credit card", true, "online"},
		{"pay now", true, "online"},
		{"cash under the mattress", false, ""},
	}
	for _, tc := range cases {
		got := PaymentOption(tc.in)
		if got.OK != tc.ok {
			t.Fatalf("PaymentOption(%q).OK = %v, want %v", tc.in, got.OK, tc.ok)
		}
		if got.OK && got.Value != tc.value {
			t.Fatalf("PaymentOption(%q).Value = %q, want %q", tc.in, got.Value, tc.value)
		}
	}
}

func TestEmail(t *testing.T) {
	if got := Email(" Ada.Lovelace@Example.COM "); !got.OK || got.Value != "ada.lovelace@example.com" {
		t.Fatalf("Email(valid) = %+v, want normalized lower-case", got)
	}
	for _, in := range []string{"nope", "a@b", "@example.com", ""} {
		if got := Email(in); got.OK {
			t.Fatalf("Email(%q) accepted", in)
		}
	}
}
