package dialogue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/stayassist/concierge/internal/booking"
	"github.com/stayassist/concierge/internal/observability"
	"github.com/stayassist/concierge/internal/session"
)

const (
	resumeText       = "Great! Let's continue with your booking."
	moreInfoText     = "How can I assist you further?"
	sufficiencyText  = "I hope I've provided you with sufficient information. Is there anything else you'd like to know, or shall we continue with your booking?"
	paymentOnline    = "Perfect! I have received your online payment."
	paymentAtDesk    = "Perfect! I have received your payment information. You can pay at the front desk upon arrival."
	bookingResetText = "Of course! Let's start your booking."
)

// Booking intent is detected with multi-word phrases as substrings and
// the two single words as whole tokens, so an email or name containing
// "booking" does not reset the conversation by accident.
var bookingIntentPhrases = []string{
	"book a room",
	"book room",
	"i want to book",
	"reserve a room",
	"make a reservation",
}

var bookingIntentTokens = map[string]struct{}{
	"reserve": {}, "booking": {},
}

// Engine is the slot-collection state machine. One HandleTurn call
// processes exactly one utterance; sessions are independent, so
// concurrent calls for different session ids are fine.
type Engine struct {
	sessions *session.Manager
	workflow *booking.Workflow
	metrics  *observability.Metrics
	now      func() time.Time
}

func NewEngine(sessions *session.Manager, workflow *booking.Workflow, metrics *observability.Metrics) *Engine {
	return &Engine{
		sessions: sessions,
		workflow: workflow,
		metrics:  metrics,
		now:      time.Now,
	}
}

// HandleTurn runs one turn: classify the utterance against the first
// empty slot, apply its effects, and return the output lines with the
// updated snapshot. The host owns delivery; a redelivered identical
// turn is recognized by fingerprint and produces no output.
func (e *Engine) HandleTurn(ctx context.Context, req TurnRequest) (TurnResponse, error) {
	sess := e.sessions.Ensure(ctx, req.SessionID)

	// The host-provided snapshot is authoritative when present.
	resumeHint := false
	inbound := sess.Slots
	if req.Slots != nil {
		inbound = make(map[string]string, len(req.Slots))
		for name, value := range req.Slots {
			if value == ContinueMarker {
				resumeHint = true
				continue
			}
			inbound[name] = value
		}
	}

	fp := fingerprint(req.Utterance, inbound, sess.Resumption)
	if fp == sess.LastFingerprint && fp != "" {
		// Identical redelivery: answer from the already-applied state
		// without re-running any effects.
		e.metrics.TurnOutcome("suppressed")
		return TurnResponse{
			SessionID: sess.ID,
			Slots:     Slots(sess.Slots).clone(),
		}, nil
	}
	sess.Slots = inbound

	if resumeHint {
		return e.resume(ctx, sess, fp)
	}

	awaiting := sess.Resumption == session.ResumptionAwaiting
	if !awaiting && isBookingIntent(req.Utterance) {
		return e.reset(ctx, sess, req.Utterance)
	}

	kind, answer := Classify(req.Utterance, awaiting)
	switch kind {
	case KindResume:
		return e.resume(ctx, sess, fp)

	case KindMoreInfo:
		sess.Resumption = session.ResumptionNone
		e.metrics.TurnOutcome("more_info")
		return e.respond(ctx, sess, fp, []string{moreInfoText})

	case KindHeld:
		e.metrics.TurnOutcome("held")
		return e.respond(ctx, sess, fp, nil)

	case KindFacilityQuestion:
		if !awaiting {
			e.metrics.InterruptionStarted()
		}
		sess.Resumption = session.ResumptionAwaiting
		e.metrics.TurnOutcome("facility_answer")
		return e.respond(ctx, sess, fp, []string{answer, sufficiencyText})

	case KindGenericQuestion:
		// No specific answer; the pending slot is re-collected.
		spec, ok := Slots(sess.Slots).FirstEmpty()
		if !ok {
			e.metrics.TurnOutcome("generic_question")
			return e.respond(ctx, sess, fp, []string{moreInfoText})
		}
		sess.Slots[spec.Name] = ""
		e.metrics.TurnOutcome("generic_question")
		return e.prompt(ctx, sess, fp, nil, spec)
	}

	return e.answer(ctx, sess, fp, req.Utterance)
}

// answer validates the utterance against the first empty slot and
// either advances or re-prompts with the validator's message.
func (e *Engine) answer(ctx context.Context, sess *session.Session, fp, utterance string) (TurnResponse, error) {
	spec, ok := Slots(sess.Slots).FirstEmpty()
	if !ok {
		// Everything already collected; nothing to validate against.
		e.metrics.TurnOutcome("complete_noop")
		return e.respond(ctx, sess, fp, nil)
	}

	result := spec.Validate(utterance, sess.Slots, e.now())
	if !result.OK {
		e.metrics.ValidationFailure(spec.Name)
		e.metrics.TurnOutcome("validation_failure")
		return e.respond(ctx, sess, fp, []string{result.Message})
	}

	sess.SetSlot(spec.Name, result.Value)

	var lines []string
	if spec.Name == SlotPaymentOption {
		if result.Value == "online" {
			lines = append(lines, paymentOnline)
		} else {
			lines = append(lines, paymentAtDesk)
		}
	}

	next, ok := Slots(sess.Slots).FirstEmpty()
	if !ok {
		return e.complete(ctx, sess, fp, lines)
	}
	e.metrics.TurnOutcome("advanced")
	return e.prompt(ctx, sess, fp, lines, next)
}

// complete hands the filled slot set to the booking workflow.
func (e *Engine) complete(ctx context.Context, sess *session.Session, fp string, lines []string) (TurnResponse, error) {
	rec, summary, err := e.workflow.Create(ctx, booking.Record{
		FirstName:     sess.Slot(SlotFirstName),
		LastName:      sess.Slot(SlotLastName),
		Email:         sess.Slot(SlotEmail),
		Guests:        sess.Slot(SlotGuests),
		RoomType:      sess.Slot(SlotRoomType),
		ArrivalDate:   sess.Slot(SlotArrivalDate),
		DepartureDate: sess.Slot(SlotDepartureDate),
		PaymentOption: sess.Slot(SlotPaymentOption),
	}, sess.BookingRef)
	if err != nil {
		return TurnResponse{}, fmt.Errorf("complete booking for session %s: %w", sess.ID, err)
	}

	sess.BookingRef = rec.Reference
	e.metrics.BookingCreated()
	e.metrics.TurnOutcome("booking_created")
	return e.respond(ctx, sess, fp, append(lines, summary...))
}

// resume clears the checkpoint and re-prompts the pending slot.
func (e *Engine) resume(ctx context.Context, sess *session.Session, fp string) (TurnResponse, error) {
	sess.Resumption = session.ResumptionNone
	e.metrics.TurnOutcome("resumed")

	spec, ok := Slots(sess.Slots).FirstEmpty()
	if !ok {
		return e.respond(ctx, sess, fp, []string{resumeText})
	}
	return e.prompt(ctx, sess, fp, []string{resumeText}, spec)
}

// reset starts a fresh booking. A new session id is issued so stale
// slot values from a prior booking never leak forward.
func (e *Engine) reset(ctx context.Context, old *session.Session, utterance string) (TurnResponse, error) {
	fresh := e.sessions.Create(ctx)
	_, _ = e.sessions.End(ctx, old.ID)
	e.metrics.TurnOutcome("reset")

	spec, _ := Slots(fresh.Slots).FirstEmpty()
	fp := fingerprint(utterance, fresh.Slots, fresh.Resumption)
	return e.prompt(ctx, fresh, fp, []string{bookingResetText}, spec)
}

// prompt emits lead lines plus the slot's prompt, with the calendar
// widget when date collection begins.
func (e *Engine) prompt(ctx context.Context, sess *session.Session, fp string, lead []string, spec slotSpec) (TurnResponse, error) {
	lines := append(lead, spec.Prompt)
	resp, err := e.respond(ctx, sess, fp, lines)
	if err != nil {
		return resp, err
	}
	if spec.Calendar {
		resp.Widget = newCalendarWidget(spec.Prompt, sess.Slots, e.now())
	}
	return resp, nil
}

func (e *Engine) respond(ctx context.Context, sess *session.Session, fp string, lines []string) (TurnResponse, error) {
	sess.LastFingerprint = fp
	if err := e.sessions.Save(ctx, sess); err != nil {
		return TurnResponse{}, fmt.Errorf("save session %s: %w", sess.ID, err)
	}
	return TurnResponse{
		SessionID: sess.ID,
		Lines:     lines,
		Slots:     Slots(sess.Slots).clone(),
	}, nil
}

func isBookingIntent(utterance string) bool {
	text := strings.ToLower(strings.TrimSpace(utterance))
	for _, phrase := range bookingIntentPhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	for _, tok := range strings.Fields(text) {
		if _, ok := bookingIntentTokens[strings.Trim(tok, ".,!?")]; ok {
			return true
		}
	}
	return false
}

// fingerprint identifies one inbound turn by utterance, snapshot, and
// checkpoint state, so an identical redelivery can be recognized.
func fingerprint(utterance string, slots map[string]string, r session.Resumption) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(utterance))
	for _, name := range CollectionOrder {
		b.WriteString("|")
		b.WriteString(slots[name])
	}
	b.WriteString("|")
	b.WriteString(string(r))
	return b.String()
}
