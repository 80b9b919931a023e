// Package events defines the domain events exchanged between modules and
// re-exports the platform bus types so modules depend on one import.
package events

import (
	"time"

	"homewire_backend/platform/events"

	"github.com/google/uuid"
)

// Re-exported bus types.
type (
	Event       = events.Event
	BaseEvent   = events.BaseEvent
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
)

// NewBaseEvent stamps an event with the current time.
var NewBaseEvent = events.NewBaseEvent

// Event type names.
const (
	TypeQuoteSubmitted     = "quote.submitted"
	TypeQuoteStatusChanged = "quote.status_changed"
	TypeBookingCreated     = "booking.created"
	TypeBookingReminderDue = "booking.reminder_due"
	TypeBookingCancelled   = "booking.cancelled"
)

// QuoteSubmitted fires when a customer submits a quote request.
type QuoteSubmitted struct {
	BaseEvent
	QuoteID       uuid.UUID
	QuoteNumber   string
	CustomerName  string
	CustomerEmail string
	ServiceType   string
	TotalCents    int64
	DepositCents  int64
}

// EventName identifies the event type on the bus.
func (QuoteSubmitted) EventName() string { return TypeQuoteSubmitted }

// NewQuoteSubmitted builds a QuoteSubmitted event.
func NewQuoteSubmitted(quoteID uuid.UUID, quoteNumber, name, email, serviceType string, totalCents, depositCents int64) QuoteSubmitted {
	return QuoteSubmitted{
		BaseEvent:     events.NewBaseEvent(),
		QuoteID:       quoteID,
		QuoteNumber:   quoteNumber,
		CustomerName:  name,
		CustomerEmail: email,
		ServiceType:   serviceType,
		TotalCents:    totalCents,
		DepositCents:  depositCents,
	}
}

// QuoteStatusChanged fires when an admin moves a quote through its lifecycle.
type QuoteStatusChanged struct {
	BaseEvent
	QuoteID       uuid.UUID
	QuoteNumber   string
	CustomerName  string
	CustomerEmail string
	OldStatus     string
	NewStatus     string
}

// EventName identifies the event type on the bus.
func (QuoteStatusChanged) EventName() string { return TypeQuoteStatusChanged }

// NewQuoteStatusChanged builds a QuoteStatusChanged event.
func NewQuoteStatusChanged(quoteID uuid.UUID, quoteNumber, name, email, oldStatus, newStatus string) QuoteStatusChanged {
	return QuoteStatusChanged{
		BaseEvent:     events.NewBaseEvent(),
		QuoteID:       quoteID,
		QuoteNumber:   quoteNumber,
		CustomerName:  name,
		CustomerEmail: email,
		OldStatus:     oldStatus,
		NewStatus:     newStatus,
	}
}

// BookingCreated fires when a booking is accepted onto the calendar.
type BookingCreated struct {
	BaseEvent
	BookingID       uuid.UUID
	CustomerName    string
	CustomerEmail   string
	AppointmentType string
	Date            time.Time
	StartMinutes    int
	DurationMinutes int
}

// EventName identifies the event type on the bus.
func (BookingCreated) EventName() string { return TypeBookingCreated }

// NewBookingCreated builds a BookingCreated event.
func NewBookingCreated(id uuid.UUID, name, email, apptType string, date time.Time, startMinutes, durationMinutes int) BookingCreated {
	return BookingCreated{
		BaseEvent:       events.NewBaseEvent(),
		BookingID:       id,
		CustomerName:    name,
		CustomerEmail:   email,
		AppointmentType: apptType,
		Date:            date,
		StartMinutes:    startMinutes,
		DurationMinutes: durationMinutes,
	}
}

// BookingReminderDue fires when a scheduled reminder task comes due for a
// booking that is still on the calendar.
type BookingReminderDue struct {
	BaseEvent
	BookingID       uuid.UUID
	CustomerName    string
	CustomerEmail   string
	AppointmentType string
	Date            time.Time
	StartMinutes    int
}

// EventName identifies the event type on the bus.
func (BookingReminderDue) EventName() string { return TypeBookingReminderDue }

// BookingCancelled fires when an admin cancels a scheduled booking.
type BookingCancelled struct {
	BaseEvent
	BookingID     uuid.UUID
	CustomerName  string
	CustomerEmail string
	Date          time.Time
	StartMinutes  int
}

// EventName identifies the event type on the bus.
func (BookingCancelled) EventName() string { return TypeBookingCancelled }

// NewBookingCancelled builds a BookingCancelled event.
func NewBookingCancelled(id uuid.UUID, name, email string, date time.Time, startMinutes int) BookingCancelled {
	return BookingCancelled{
		BaseEvent:     events.NewBaseEvent(),
		BookingID:     id,
		CustomerName:  name,
		CustomerEmail: email,
		Date:          date,
		StartMinutes:  startMinutes,
	}
}
