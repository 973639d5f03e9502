package booking

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewReferenceFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		ref := NewReference()
		if !strings.HasPrefix(ref, RefPrefix) {
			t.Fatalf("reference %q missing prefix %q", ref, RefPrefix)
		}
		digits := strings.TrimPrefix(ref, RefPrefix)
		if len(digits) != 6 {
			t.Fatalf("reference %q digits = %q, want 6 digits", ref, digits)
		}
		for _, r := range digits {
			if r < '0' || r > '9' {
				t.Fatalf("reference %q contains non-digit %q", ref, r)
			}
		}
	}
}

func TestInMemoryStoreFuzzyLookup(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	rec := Record{Reference: "SA-123456", Email: "guest@example.com", CreatedAt: time.Now().UTC()}
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	for _, fragment := range []string{"SA-123456", "123456", "SA123456", "sa-123456", " SA 123456"} {
		got, err := store.Get(ctx, strings.TrimSpace(fragment))
		if err != nil {
			t.Fatalf("Get(%q) error = %v", fragment, err)
		}
		if got.Reference != rec.Reference {
			t.Fatalf("Get(%q).Reference = %q, want %q", fragment, got.Reference, rec.Reference)
		}
	}

	if _, err := store.Get(ctx, "999999"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(unknown) error = %v, want ErrNotFound", err)
	}
	if _, err := store.Get(ctx, "no digits here"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(no digits) error = %v, want ErrNotFound", err)
	}
}

func TestInMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	if err := store.Save(ctx, Record{Reference: "SA-654321"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := store.Delete(ctx, "654321"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(ctx, "SA-654321"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, "654321"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete() of missing booking error = %v, want ErrNotFound", err)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bookings.json")

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	rec := Record{
		Reference:     "SA-111222",
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Email:         "ada@example.com",
		Guests:        "2",
		RoomType:      "suite",
		ArrivalDate:   "2026-09-01",
		DepartureDate: "2026-09-04",
		PaymentOption: "online",
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
	}
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// A fresh store over the same file must see the record.
	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() reopen error = %v", err)
	}
	got, err := reopened.Get(ctx, "111222")
	if err != nil {
		t.Fatalf("Get() after reopen error = %v", err)
	}
	if got.Reference != rec.Reference || got.Email != rec.Email || got.RoomType != rec.RoomType {
		t.Fatalf("reloaded record = %+v, want %+v", got, rec)
	}
	if !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Fatalf("reloaded CreatedAt = %v, want %v", got.CreatedAt, rec.CreatedAt)
	}

	if err := reopened.Delete(ctx, "SA-111222"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	final, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() final reopen error = %v", err)
	}
	if list, _ := final.List(ctx); len(list) != 0 {
		t.Fatalf("List() after delete = %d records, want 0", len(list))
	}
}

func TestDigitsOnly(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"SA-123456", "123456"},
		{"sa 12 34 56", "123456"},
		{"no digits", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := digitsOnly(tt.in); got != tt.want {
			t.Fatalf("digitsOnly(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
