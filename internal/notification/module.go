// Package notification subscribes to domain events and sends the customer and
// admin emails they imply. Domain modules publish events and never touch the
// email provider directly.
package notification

import (
	"context"
	"fmt"

	"homewire_backend/internal/email"
	"homewire_backend/internal/events"
	"homewire_backend/platform/config"
	"homewire_backend/platform/logger"
)

const dateDisplayFormat = "Monday, January 2, 2006"

// Module handles all notification-related event subscriptions.
type Module struct {
	sender email.Sender
	cfg    config.EmailConfig
	log    *logger.Logger
}

// New creates a new notification module.
func New(sender email.Sender, cfg config.EmailConfig, log *logger.Logger) *Module {
	return &Module{sender: sender, cfg: cfg, log: log}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "notification" }

// RegisterHandlers subscribes to all relevant domain events on the event bus.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.QuoteSubmitted{}.EventName(), m)
	bus.Subscribe(events.QuoteStatusChanged{}.EventName(), m)
	bus.Subscribe(events.BookingCreated{}.EventName(), m)
	bus.Subscribe(events.BookingReminderDue{}.EventName(), m)
	bus.Subscribe(events.BookingCancelled{}.EventName(), m)

	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.QuoteSubmitted:
		return m.handleQuoteSubmitted(ctx, e)
	case events.QuoteStatusChanged:
		return m.handleQuoteStatusChanged(ctx, e)
	case events.BookingCreated:
		return m.handleBookingCreated(ctx, e)
	case events.BookingReminderDue:
		return m.handleBookingReminderDue(ctx, e)
	case events.BookingCancelled:
		return m.handleBookingCancelled(ctx, e)
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}
}

func (m *Module) handleQuoteSubmitted(ctx context.Context, e events.QuoteSubmitted) error {
	// Whole-home quotes carry no total until the survey; the confirmation
	// quotes the deposit instead.
	isDeposit := e.ServiceType == "whole-home"
	amount := e.TotalCents
	if isDeposit {
		amount = e.DepositCents
	}

	if err := m.sender.SendQuoteReceivedEmail(ctx, e.CustomerEmail, e.CustomerName, e.QuoteNumber, amount, isDeposit); err != nil {
		m.log.EmailError("quote_received", e.CustomerEmail, err)
		return err
	}
	m.log.Info("quote confirmation email sent", "quoteNumber", e.QuoteNumber, "email", e.CustomerEmail)

	if admin := m.cfg.GetAdminNotifyAddress(); admin != "" {
		if err := m.sender.SendQuoteAdminNotifyEmail(ctx, admin, e.QuoteNumber, e.CustomerName, e.CustomerEmail, e.ServiceType, amount); err != nil {
			m.log.EmailError("quote_admin_notify", admin, err)
			return err
		}
	}
	return nil
}

func (m *Module) handleQuoteStatusChanged(ctx context.Context, e events.QuoteStatusChanged) error {
	// Only the approval is customer-facing; the rest of the lifecycle is
	// internal bookkeeping.
	if e.NewStatus != "approved" {
		return nil
	}

	if err := m.sender.SendQuoteApprovedEmail(ctx, e.CustomerEmail, e.CustomerName, e.QuoteNumber); err != nil {
		m.log.EmailError("quote_approved", e.CustomerEmail, err)
		return err
	}
	m.log.Info("quote approved email sent", "quoteNumber", e.QuoteNumber, "email", e.CustomerEmail)
	return nil
}

func (m *Module) handleBookingCreated(ctx context.Context, e events.BookingCreated) error {
	date := e.Date.Format(dateDisplayFormat)
	start := formatClock(e.StartMinutes)

	if err := m.sender.SendBookingConfirmedEmail(ctx, e.CustomerEmail, e.CustomerName, e.AppointmentType, date, start); err != nil {
		m.log.EmailError("booking_confirmed", e.CustomerEmail, err)
		return err
	}
	m.log.Info("booking confirmation email sent", "bookingId", e.BookingID, "email", e.CustomerEmail)
	return nil
}

func (m *Module) handleBookingReminderDue(ctx context.Context, e events.BookingReminderDue) error {
	date := e.Date.Format(dateDisplayFormat)
	start := formatClock(e.StartMinutes)

	if err := m.sender.SendBookingReminderEmail(ctx, e.CustomerEmail, e.CustomerName, e.AppointmentType, date, start); err != nil {
		m.log.EmailError("booking_reminder", e.CustomerEmail, err)
		return err
	}
	m.log.Info("booking reminder email sent", "bookingId", e.BookingID, "email", e.CustomerEmail)
	return nil
}

func (m *Module) handleBookingCancelled(ctx context.Context, e events.BookingCancelled) error {
	date := e.Date.Format(dateDisplayFormat)
	start := formatClock(e.StartMinutes)

	if err := m.sender.SendBookingCancelledEmail(ctx, e.CustomerEmail, e.CustomerName, date, start); err != nil {
		m.log.EmailError("booking_cancelled", e.CustomerEmail, err)
		return err
	}
	m.log.Info("booking cancellation email sent", "bookingId", e.BookingID, "email", e.CustomerEmail)
	return nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Compile-time check that Module implements events.Handler.
var _ events.Handler = (*Module)(nil)
