// Package dialogue drives the ordered collection of booking fields,
// classifies interruptions, and hands completed slot sets to the
// booking workflow.
package dialogue

import (
	"time"

	"github.com/stayassist/concierge/internal/validate"
)

// Slot names, in collection order.
const (
	SlotGuests        = "guests"
	SlotRoomType      = "room_type"
	SlotArrivalDate   = "arrival_date"
	SlotDepartureDate = "departure_date"
	SlotPaymentOption = "payment_option"
	SlotFirstName     = "first_name"
	SlotLastName      = "last_name"
	SlotEmail         = "email"
)

// CollectionOrder is the fixed slot sequence. A later slot is never
// prompted while an earlier one is empty.
var CollectionOrder = []string{
	SlotGuests,
	SlotRoomType,
	SlotArrivalDate,
	SlotDepartureDate,
	SlotPaymentOption,
	SlotFirstName,
	SlotLastName,
	SlotEmail,
}

// ContinueMarker is the legacy sentinel an upstream mapper may write
// into a slot to mean "user asked to resume". It is converted to a
// typed resume signal at the boundary and never stored as slot data.
const ContinueMarker = "__continue__"

// Slots is one conversation's slot snapshot, name to validated value.
type Slots map[string]string

// slotSpec declares one collectable field: its prompt, validator, and
// whether prompting it opens the date picker.
type slotSpec struct {
	Name     string
	Prompt   string
	Calendar bool
	Validate func(raw string, slots Slots, now time.Time) validate.Result
}

var registry = map[string]slotSpec{
	SlotGuests: {
		Name:   SlotGuests,
		Prompt: "For how many guests?",
		Validate: func(raw string, _ Slots, _ time.Time) validate.Result {
			return validate.Guests(raw)
		},
	},
	SlotRoomType: {
		Name:   SlotRoomType,
		Prompt: "Which room would you like? (standard or suite)",
		Validate: func(raw string, _ Slots, _ time.Time) validate.Result {
			return validate.RoomType(raw)
		},
	},
	SlotArrivalDate: {
		Name:     SlotArrivalDate,
		Prompt:   "Please select your arrival and departure date:",
		Calendar: true,
		Validate: func(raw string, _ Slots, now time.Time) validate.Result {
			return validate.ArrivalDate(raw, now)
		},
	},
	SlotDepartureDate: {
		Name:     SlotDepartureDate,
		Prompt:   "Please select your departure date:",
		Calendar: true,
		Validate: func(raw string, slots Slots, now time.Time) validate.Result {
			return validate.DepartureDate(raw, slots[SlotArrivalDate], now)
		},
	},
	SlotPaymentOption: {
		Name:   SlotPaymentOption,
		Prompt: "Would you like to pay at the front desk or complete the payment online now?",
		Validate: func(raw string, _ Slots, _ time.Time) validate.Result {
			return validate.PaymentOption(raw)
		},
	},
	SlotFirstName: {
		Name:   SlotFirstName,
		Prompt: "May I have your first name?",
		Validate: func(raw string, _ Slots, _ time.Time) validate.Result {
			return validate.FirstName(raw)
		},
	},
	SlotLastName: {
		Name:   SlotLastName,
		Prompt: "And your last name?",
		Validate: func(raw string, _ Slots, _ time.Time) validate.Result {
			return validate.LastName(raw)
		},
	},
	SlotEmail: {
		Name:   SlotEmail,
		Prompt: "What email address should I use for your booking confirmation?",
		Validate: func(raw string, _ Slots, _ time.Time) validate.Result {
			return validate.Email(raw)
		},
	},
}

// FirstEmpty returns the first slot in collection order that has no
// value yet, and false once every slot is filled.
func (s Slots) FirstEmpty() (slotSpec, bool) {
	for _, name := range CollectionOrder {
		if s[name] == "" {
			return registry[name], true
		}
	}
	return slotSpec{}, false
}

func (s Slots) clone() Slots {
	out := make(Slots, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// TurnRequest is one inbound utterance with the host-held snapshot.
type TurnRequest struct {
	SessionID string `json:"session_id"`
	Utterance string `json:"utterance"`
	Slots     Slots  `json:"slots"`
}

// TurnResponse carries everything the host needs to render the turn
// and persist the updated snapshot.
type TurnResponse struct {
	SessionID string          `json:"session_id"`
	Lines     []string        `json:"lines"`
	Slots     Slots           `json:"slots"`
	Widget    *CalendarWidget `json:"widget,omitempty"`
}

// CalendarWidget asks the host UI to open a date picker. MinDate is
// always today at emission time.
type CalendarWidget struct {
	Type          string `json:"type"`
	Mode          string `json:"mode"`
	Message       string `json:"message"`
	MinDate       string `json:"min_date"`
	ArrivalDate   string `json:"arrival_date"`
	DepartureDate string `json:"departure_date"`
}

func newCalendarWidget(message string, slots Slots, now time.Time) *CalendarWidget {
	return &CalendarWidget{
		Type:          "calendar",
		Mode:          "booking",
		Message:       message,
		MinDate:       now.Format(validate.ISODate),
		ArrivalDate:   slots[SlotArrivalDate],
		DepartureDate: slots[SlotDepartureDate],
	}
}
