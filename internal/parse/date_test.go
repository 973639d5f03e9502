package parse

import (
	"errors"
	"testing"
	"time"
)

func TestDateAcceptedFormatsAgree(t *testing.T) {
	now := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)
	want := time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{
		"15 February 2024",
		"15 Feb 2024",
		"15-02-2024",
		"15/02/2024",
		"2024-02-15",
		"15.02.2024",
		"February 15, 2024",
		"Feb 15, 2024",
	} {
		got, err := Date(in, now)
		if err != nil {
			t.Fatalf("Date(%q) error = %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("Date(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestDateYearlessPinsForward(t *testing.T) {
	now := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)

	got, err := Date("15 August", now)
	if err != nil {
		t.Fatalf("Date() error = %v", err)
	}
	if got.Year() != 2024 {
		t.Fatalf("upcoming date year = %d, want 2024", got.Year())
	}

	got, err = Date("15 February", now)
	if err != nil {
		t.Fatalf("Date() error = %v", err)
	}
	if got.Year() != 2025 {
		t.Fatalf("passed date year = %d, want 2025 (rolled forward)", got.Year())
	}
}

func TestDateErrorKinds(t *testing.T) {
	now := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)

	_, err := Date("31 February 2024", now)
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("impossible date error = %v, want ErrInvalidDate", err)
	}

	_, err = Date("sometime next week", now)
	if !errors.Is(err, ErrUnrecognizedDate) {
		t.Fatalf("gibberish error = %v, want ErrUnrecognizedDate", err)
	}

	_, err = Date("", now)
	if !errors.Is(err, ErrUnrecognizedDate) {
		t.Fatalf("empty error = %v, want ErrUnrecognizedDate", err)
	}
}
