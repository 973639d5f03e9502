package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stayassist/concierge/internal/validate"
)

// ChangeTarget names the field a change workflow will rewrite after
// verification succeeds.
type ChangeTarget string

const (
	ChangeDates  ChangeTarget = "dates"
	ChangeRoom   ChangeTarget = "room"
	ChangeGuests ChangeTarget = "guests"
)

// VerifyFailedMessage deliberately does not say whether the booking
// number or the email was wrong, so the lookup cannot be used to probe
// for existing references.
const VerifyFailedMessage = "We couldn't verify those booking details. Please double-check and try again."

// Workflow implements the booking lifecycle operations on top of a
// Store. The now func is injectable for tests.
type Workflow struct {
	store Store
	now   func() time.Time
}

func NewWorkflow(store Store) *Workflow {
	return &Workflow{store: store, now: time.Now}
}

// Create persists a completed booking and returns the stored record
// with the guest-facing summary. existingRef is reused when the
// session already holds a reference, so re-entering the final step
// never mints a second booking number.
func (w *Workflow) Create(ctx context.Context, rec Record, existingRef string) (Record, []string, error) {
	rec.Reference = existingRef
	if rec.Reference == "" {
		rec.Reference = NewReference()
	}
	rec.Email = strings.ToLower(strings.TrimSpace(rec.Email))
	rec.CreatedAt = w.now().UTC()
	rec.UpdatedAt = nil

	if err := w.store.Save(ctx, rec); err != nil {
		return Record{}, nil, fmt.Errorf("create booking %s: %w", rec.Reference, err)
	}
	return rec, Summary(rec), nil
}

// Summary builds the guest-facing booking summary block.
func Summary(rec Record) []string {
	orNA := func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	}
	return []string{
		"Here's your booking summary:",
		"",
		"Booking Reference: " + rec.Reference,
		fmt.Sprintf("Name: %s %s", orNA(rec.FirstName), orNA(rec.LastName)),
		"Email: " + orNA(rec.Email),
		"Guests: " + orNA(rec.Guests),
		"Room Type: " + rec.RoomTypeDisplay(),
		"Arrival Date: " + orNA(rec.ArrivalDate),
		"Departure Date: " + orNA(rec.DepartureDate),
		"Payment: " + rec.PaymentDisplay(),
		"",
		fmt.Sprintf("Your booking reference is %s. Please keep it handy for payments, changes, or cancellations.", rec.Reference),
	}
}

// VerifyForChange checks a booking number and email pair before a
// change workflow may proceed. On success it returns the record and a
// target-specific prompt for the new value; on any failure it returns
// the same generic message regardless of which part was wrong.
func (w *Workflow) VerifyForChange(ctx context.Context, refOrFragment, email string, target ChangeTarget) (Record, []string, bool, error) {
	rec, err := w.store.Get(ctx, strings.TrimSpace(refOrFragment))
	if errors.Is(err, ErrNotFound) {
		return Record{}, []string{VerifyFailedMessage}, false, nil
	}
	if err != nil {
		return Record{}, nil, false, fmt.Errorf("verify booking: %w", err)
	}

	provided := strings.ToLower(strings.TrimSpace(email))
	if provided == "" || provided != strings.ToLower(strings.TrimSpace(rec.Email)) {
		return Record{}, []string{VerifyFailedMessage}, false, nil
	}

	var prompt string
	switch target {
	case ChangeRoom:
		prompt = fmt.Sprintf("Booking verified. Your current room type is %s. Which room type would you like? (standard or suite)", rec.RoomTypeDisplay())
	case ChangeGuests:
		prompt = fmt.Sprintf("Booking verified. Your current number of guests is %s. For how many guests would you like to update your booking?", rec.Guests)
	default:
		prompt = "Booking verified. Please select your new arrival and departure dates."
	}
	return rec, []string{prompt}, true, nil
}

// UpdateRoom rewrites the room type of a verified booking. The new
// value runs through the same validator as initial collection; a
// rejected value returns the validator's message and saves nothing.
func (w *Workflow) UpdateRoom(ctx context.Context, ref, roomType string) (Record, []string, bool, error) {
	res := validate.RoomType(roomType)
	if !res.OK {
		return Record{}, []string{res.Message}, false, nil
	}
	rec, err := w.stamped(ctx, ref, func(r *Record) { r.RoomType = res.Value })
	if err != nil {
		return Record{}, nil, false, err
	}
	return rec, []string{
		"Your room type has been updated successfully.",
		"",
		"Booking Number: " + rec.Reference,
		"New Room Type: " + rec.RoomTypeDisplay(),
		"",
		"Your booking reference remains the same. Please keep it handy for any further changes or cancellations.",
	}, true, nil
}

// UpdateGuests rewrites the guest count of a verified booking after
// validating it.
func (w *Workflow) UpdateGuests(ctx context.Context, ref, guests string) (Record, []string, bool, error) {
	res := validate.Guests(guests)
	if !res.OK {
		return Record{}, []string{res.Message}, false, nil
	}
	rec, err := w.stamped(ctx, ref, func(r *Record) { r.Guests = res.Value })
	if err != nil {
		return Record{}, nil, false, err
	}
	return rec, []string{
		"Your number of guests has been updated successfully.",
		"",
		"Booking Number: " + rec.Reference,
		"New Number of Guests: " + rec.Guests,
		"",
		"Your booking reference remains the same. Please keep it handy for any further changes or cancellations.",
	}, true, nil
}

// UpdateDates rewrites the stay dates of a verified booking. Both dates
// are validated together so the departure-after-arrival rule holds on
// the stored record, not just during initial collection.
func (w *Workflow) UpdateDates(ctx context.Context, ref, arrival, departure string) (Record, []string, bool, error) {
	now := w.now()
	arrRes := validate.ArrivalDate(arrival, now)
	if !arrRes.OK {
		return Record{}, []string{arrRes.Message}, false, nil
	}
	depRes := validate.DepartureDate(departure, arrRes.Value, now)
	if !depRes.OK {
		return Record{}, []string{depRes.Message}, false, nil
	}
	rec, err := w.stamped(ctx, ref, func(r *Record) {
		r.ArrivalDate = arrRes.Value
		r.DepartureDate = depRes.Value
	})
	if err != nil {
		return Record{}, nil, false, err
	}
	return rec, []string{
		"Your booking dates have been updated successfully.",
		"",
		"Booking Number: " + rec.Reference,
		"New Arrival Date: " + rec.ArrivalDate,
		"New Departure Date: " + rec.DepartureDate,
		"",
		"Your booking reference remains the same. Please keep it handy for any further changes or cancellations.",
	}, true, nil
}

// Cancel deletes the booking matching refOrFragment. cachedRef is the
// reference held by the caller's session, used as a fallback when the
// store no longer has the record so a guest cancelling a booking made
// in the same conversation still gets a confirmation.
func (w *Workflow) Cancel(ctx context.Context, refOrFragment, cachedRef string) ([]string, bool, error) {
	provided := strings.ToUpper(strings.TrimSpace(refOrFragment))
	if provided == "" {
		return []string{"I didn't catch a booking number to cancel."}, false, nil
	}

	rec, err := w.store.Get(ctx, provided)
	switch {
	case err == nil:
		if err := w.store.Delete(ctx, rec.Reference); err != nil && !errors.Is(err, ErrNotFound) {
			return nil, false, fmt.Errorf("cancel booking %s: %w", rec.Reference, err)
		}
		return []string{cancelledMessage(rec.Reference)}, true, nil
	case !errors.Is(err, ErrNotFound):
		return nil, false, fmt.Errorf("cancel booking: %w", err)
	}

	cached := strings.ToUpper(strings.TrimSpace(cachedRef))
	if cached != "" && provided == cached {
		return []string{cancelledMessage(cached)}, true, nil
	}

	return []string{fmt.Sprintf(
		"I couldn't match booking number %s to any reservation. Please verify the number and try again.",
		provided)}, false, nil
}

func cancelledMessage(ref string) string {
	return fmt.Sprintf("Booking %s has been cancelled. You're always welcome to book again!", ref)
}

// stamped applies mutate to the record at ref, sets updated_at, and
// saves the result.
func (w *Workflow) stamped(ctx context.Context, ref string, mutate func(*Record)) (Record, error) {
	rec, err := w.store.Get(ctx, ref)
	if err != nil {
		return Record{}, fmt.Errorf("load booking %s: %w", ref, err)
	}
	mutate(&rec)
	ts := w.now().UTC()
	rec.UpdatedAt = &ts
	if err := w.store.Save(ctx, rec); err != nil {
		return Record{}, fmt.Errorf("update booking %s: %w", rec.Reference, err)
	}
	return rec, nil
}
