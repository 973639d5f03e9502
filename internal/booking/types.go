// Package booking persists completed bookings and implements the
// create/verify/change/cancel workflows on top of the store.
package booking

import "time"

// Record is the persisted form of a completed booking. Every field key
// is always present in the stored payload; absence is an empty value,
// never a missing key. updated_at is only set once a change workflow
// has touched the record.
type Record struct {
	Reference     string     `json:"booking_reference"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Email         string     `json:"email"`
	Guests        string     `json:"guests"`
	RoomType      string     `json:"room_type"`
	ArrivalDate   string     `json:"arrival_date"`
	DepartureDate string     `json:"departure_date"`
	PaymentOption string     `json:"payment_option"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// RoomTypeDisplay renders the stored room type for guest-facing text.
func (r Record) RoomTypeDisplay() string {
	switch r.RoomType {
	case "standard":
		return "Standard"
	case "suite":
		return "Suite"
	case "":
		return "N/A"
	default:
		return r.RoomType
	}
}

// PaymentDisplay renders the stored payment option for guest-facing text.
func (r Record) PaymentDisplay() string {
	switch r.PaymentOption {
	case "online":
		return "Online"
	case "at_desk":
		return "At front desk"
	case "":
		return "N/A"
	default:
		return r.PaymentOption
	}
}
