package session

import "time"

type Status string

const (
	StatusActive Status = "active"
	StatusEnded  Status = "ended"
)

// Resumption tracks whether the conversation is parked at an
// interruption checkpoint. While awaiting, the engine only listens for
// a continue/more-info answer; slot collection is paused.
type Resumption string

const (
	ResumptionNone     Resumption = "none"
	ResumptionAwaiting Resumption = "awaiting"
)

// Session is the per-conversation state snapshot. Slots maps slot name
// to its validated canonical value; empty string means not yet
// collected. LastFingerprint identifies the previous processed turn so
// a redelivered turn can be recognized and suppressed.
type Session struct {
	ID              string            `json:"session_id"`
	Status          Status            `json:"status"`
	Slots           map[string]string `json:"slots"`
	Resumption      Resumption        `json:"resumption"`
	BookingRef      string            `json:"booking_reference"`
	LastFingerprint string            `json:"last_fingerprint"`
	StartedAt       time.Time         `json:"started_at"`
	LastActivityAt  time.Time         `json:"last_activity_at"`
}

// Slot returns the collected value for name, or "" when unset.
func (s *Session) Slot(name string) string {
	if s.Slots == nil {
		return ""
	}
	return s.Slots[name]
}

// SetSlot records a validated value for name.
func (s *Session) SetSlot(name, value string) {
	if s.Slots == nil {
		s.Slots = make(map[string]string)
	}
	s.Slots[name] = value
}

// ClearSlots drops all collected values and resumption state. The
// booking reference survives so a guest can still cancel a booking
// made earlier in the conversation.
func (s *Session) ClearSlots() {
	s.Slots = make(map[string]string)
	s.Resumption = ResumptionNone
	s.LastFingerprint = ""
}
