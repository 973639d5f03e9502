package session

import (
	"context"
	"testing"
	"time"
)

func TestManagerCreateGetEnd(t *testing.T) {
	ctx := context.Background()
	m := NewManager(time.Minute)

	s := m.Create(ctx)
	if s.ID == "" {
		t.Fatalf("session ID should not be empty")
	}
	if s.Status != StatusActive || s.Resumption != ResumptionNone {
		t.Fatalf("unexpected new session state: %+v", s)
	}

	got, err := m.Get(s.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != s.ID {
		t.Fatalf("Get() ID = %q, want %q", got.ID, s.ID)
	}

	ended, err := m.End(ctx, s.ID)
	if err != nil {
		t.Fatalf("End() error = %v", err)
	}
	if ended.Status != StatusEnded {
		t.Fatalf("ended status = %q, want %q", ended.Status, StatusEnded)
	}
}

func TestManagerEnsure(t *testing.T) {
	ctx := context.Background()
	m := NewManager(time.Minute)

	s := m.Ensure(ctx, "conv-1")
	if s.ID != "conv-1" {
		t.Fatalf("Ensure() ID = %q, want conv-1", s.ID)
	}

	s.SetSlot("guests", "2")
	if err := m.Save(ctx, s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	again := m.Ensure(ctx, "conv-1")
	if again.Slot("guests") != "2" {
		t.Fatalf("Ensure() lost slot state: %+v", again.Slots)
	}

	fresh := m.Ensure(ctx, "")
	if fresh.ID == "" || fresh.ID == "conv-1" {
		t.Fatalf("Ensure(\"\") ID = %q, want new generated id", fresh.ID)
	}
}

func TestSaveIsSnapshotIsolated(t *testing.T) {
	ctx := context.Background()
	m := NewManager(time.Minute)

	s := m.Create(ctx)
	s.SetSlot("room_type", "suite")
	if err := m.Save(ctx, s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Mutating the caller's copy after Save must not leak into the map.
	s.SetSlot("room_type", "standard")
	got, err := m.Get(s.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Slot("room_type") != "suite" {
		t.Fatalf("stored room_type = %q, want suite", got.Slot("room_type"))
	}
}

func TestClearSlotsKeepsBookingRef(t *testing.T) {
	s := &Session{
		Slots:      map[string]string{"guests": "2", "email": "a@b.co"},
		Resumption: ResumptionAwaiting,
		BookingRef: "SA-123456",
	}
	s.ClearSlots()
	if len(s.Slots) != 0 {
		t.Fatalf("ClearSlots() left %v", s.Slots)
	}
	if s.Resumption != ResumptionNone {
		t.Fatalf("ClearSlots() resumption = %q, want none", s.Resumption)
	}
	if s.BookingRef != "SA-123456" {
		t.Fatalf("ClearSlots() dropped booking reference")
	}
}

func TestManagerJanitorExpiresInactive(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager(30 * time.Millisecond)
	s := m.Create(ctx)

	expired := make(chan string, 1)
	m.SetExpireHook(func(s *Session) { expired <- s.ID })
	m.StartJanitor(ctx, 10*time.Millisecond)

	select {
	case id := <-expired:
		if id != s.ID {
			t.Fatalf("expired id = %q, want %q", id, s.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("session was not expired by janitor")
	}

	if _, err := m.Get(s.ID); err != ErrNotFound {
		t.Fatalf("Get() after expiry error = %v, want ErrNotFound", err)
	}
	if m.ActiveCount() != 0 {
		t.Fatalf("ActiveCount() = %d, want 0", m.ActiveCount())
	}
}
