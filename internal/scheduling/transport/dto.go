package transport

import (
	"time"

	"github.com/google/uuid"
)

// BookSlotRequest is the public request body for booking an appointment.
// For drops installs the run/service counts size the visit via the duration
// estimator; surveys and whole-home installs have fixed durations.
type BookSlotRequest struct {
	Name            string `json:"name" validate:"required,min=1,max=200"`
	Email           string `json:"email" validate:"required,email,max=254"`
	Phone           string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	Time            string `json:"time" validate:"required"`
	AppointmentType string `json:"appointmentType" validate:"required,oneof=drops-install whole-home-install survey"`

	Runs     RunSelection     `json:"runs"`
	Services ServiceSelection `json:"services"`
}

// RunSelection mirrors the quote wizard's run counts.
type RunSelection struct {
	Coax  int `json:"coax" validate:"min=0,max=50"`
	Cat6  int `json:"cat6" validate:"min=0,max=50"`
	Fiber int `json:"fiber" validate:"min=0,max=50"`
}

// ServiceSelection mirrors the quote wizard's add-on counts.
type ServiceSelection struct {
	APMounts       int `json:"apMount" validate:"min=0,max=20"`
	EthRelocations int `json:"ethRelocation" validate:"min=0,max=20"`
}

// BookingResponse is the response body for a booking.
type BookingResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	AppointmentType string    `json:"appointmentType"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

// DaySlotsRequest is the query for the public availability view. Type scopes
// the open-hours hint to that appointment type's booking window.
type DaySlotsRequest struct {
	Date string `form:"date" validate:"required,datetime=2006-01-02"`
	Type string `form:"type" validate:"omitempty,oneof=drops-install whole-home-install survey"`
}

// DaySlotsResponse renders per-hour occupancy for the booking UI. Hours are
// the coarse preview; the server re-checks exact times at booking.
type DaySlotsResponse struct {
	Date            string `json:"date"`
	Eligible        bool   `json:"eligible"`
	WholeDayBlocked bool   `json:"wholeDayBlocked"`
	BookedHours     []int  `json:"bookedHours"`
	OpenHours       []int  `json:"openHours,omitempty"`
}

// ListBookingsRequest is the admin query for listing bookings.
type ListBookingsRequest struct {
	From   string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To     string `form:"to" validate:"omitempty,datetime=2006-01-02"`
	Status string `form:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
}

// UpdateBookingStatusRequest is the admin request to close out a booking.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed cancelled"`
}
