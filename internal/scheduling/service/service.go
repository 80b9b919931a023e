package service

import (
	"context"
	"strings"
	"time"

	"homewire_backend/internal/events"
	"homewire_backend/internal/pricing"
	"homewire_backend/internal/scheduler"
	"homewire_backend/internal/scheduling/domain"
	"homewire_backend/internal/scheduling/repository"
	"homewire_backend/internal/scheduling/transport"
	"homewire_backend/platform/apperr"
	"homewire_backend/platform/logger"
	"homewire_backend/platform/phone"

	"github.com/google/uuid"
)

const dateFormat = "2006-01-02"

// RateBookLoader supplies the current labor-hour rates so drops-install
// bookings can be sized from the customer's selections.
type RateBookLoader interface {
	LoadRateBook(ctx context.Context) (*pricing.RateBook, error)
}

// Service provides business logic for the installation calendar.
type Service struct {
	repo      *repository.Repository
	rates     RateBookLoader
	bus       events.Bus
	reminders scheduler.ReminderScheduler
	log       *logger.Logger
	now       func() time.Time
}

// New creates a new scheduling service. reminders may be nil when no task
// queue is configured.
func New(repo *repository.Repository, rates RateBookLoader, bus events.Bus, reminders scheduler.ReminderScheduler, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		rates:     rates,
		bus:       bus,
		reminders: reminders,
		log:       log,
		now:       time.Now,
	}
}

// DaySlots returns the hour-bucket occupancy view for a calendar date.
func (s *Service) DaySlots(ctx context.Context, req transport.DaySlotsRequest) (*transport.DaySlotsResponse, error) {
	date, err := time.Parse(dateFormat, req.Date)
	if err != nil {
		return nil, apperr.BadRequest("invalid date")
	}

	resp := &transport.DaySlotsResponse{
		Date:        req.Date,
		Eligible:    domain.DateEligible(date, s.now()),
		BookedHours: []int{},
	}
	if req.Type != "" {
		apptType := domain.AppointmentType(req.Type)
		for hour := 0; hour < 24; hour++ {
			if domain.AllowsStart(apptType, hour*60) {
				resp.OpenHours = append(resp.OpenHours, hour)
			}
		}
	}

	bookings, err := s.repo.ListForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	seen := map[int]bool{}
	for _, b := range bookings {
		db := b.Domain()
		if db.Status == domain.StatusCancelled {
			continue
		}
		if domain.BlocksWholeDay(db) {
			resp.WholeDayBlocked = true
		}
		for _, hour := range domain.HourBuckets(db.StartMinutes, db.DurationMinutes) {
			if !seen[hour] {
				seen[hour] = true
				resp.BookedHours = append(resp.BookedHours, hour)
			}
		}
	}

	return resp, nil
}

// Book validates a booking request against every calendar rule and, when it
// passes, inserts it atomically. Rule violations come back as typed
// rejections carrying a reason code, never as plain errors.
func (s *Service) Book(ctx context.Context, req transport.BookSlotRequest) (*transport.BookingResponse, error) {
	date, err := time.Parse(dateFormat, req.Date)
	if err != nil {
		return nil, apperr.BadRequest("invalid date")
	}
	startMinutes, err := domain.ParseClock(req.Time)
	if err != nil {
		return nil, apperr.BadRequest("invalid time")
	}

	apptType := domain.AppointmentType(req.AppointmentType)
	duration, err := s.durationFor(ctx, apptType, req)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	phoneNumber := phone.NormalizeE164(req.Phone)

	now := s.now()
	candidate := domain.Candidate{
		Date:            date,
		StartMinutes:    startMinutes,
		DurationMinutes: duration,
		Type:            apptType,
	}

	// Cheap pre-checks outside the transaction. The repository re-runs the
	// conflict rules under the per-date lock before inserting.
	existing, err := s.repo.ListForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	existingDomain := make([]domain.Booking, 0, len(existing))
	for _, b := range existing {
		existingDomain = append(existingDomain, b.Domain())
	}
	if reason := domain.Evaluate(candidate, existingDomain, now); reason != "" {
		return nil, s.reject(reason, req.Date, req.Time)
	}

	// The duplicate guard spans every date, not just the candidate's, so it
	// runs as a SQL lookup instead of domain.HasRecentBooking over the
	// single-day rows above. Both sides share domain.DuplicateWindow.
	recent, err := s.repo.HasRecentByEmail(ctx, email, now.Add(-domain.DuplicateWindow))
	if err != nil {
		return nil, err
	}
	if recent {
		return nil, s.reject(domain.ReasonDuplicateBooking, req.Date, req.Time)
	}

	booking := &repository.Booking{
		ID:              uuid.New(),
		CustomerName:    strings.TrimSpace(req.Name),
		CustomerEmail:   email,
		CustomerPhone:   phoneNumber,
		AppointmentDate: date,
		StartMinutes:    startMinutes,
		DurationMinutes: duration,
		AppointmentType: string(apptType),
		Status:          string(domain.StatusScheduled),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	reason, err := s.repo.CreateIfFree(ctx, booking, func(current []domain.Booking) string {
		return domain.Evaluate(candidate, current, now)
	})
	if err != nil {
		return nil, err
	}
	if reason != "" {
		return nil, s.reject(reason, req.Date, req.Time)
	}

	s.bus.Publish(ctx, events.NewBookingCreated(
		booking.ID, booking.CustomerName, booking.CustomerEmail, booking.AppointmentType,
		booking.AppointmentDate, booking.StartMinutes, booking.DurationMinutes,
	))
	s.scheduleReminder(ctx, booking)

	return bookingResponse(booking), nil
}

// durationFor sizes the visit: drops installs via the labor estimator,
// whole-home installs block a full day, surveys are fixed at two hours.
func (s *Service) durationFor(ctx context.Context, apptType domain.AppointmentType, req transport.BookSlotRequest) (int, error) {
	switch apptType {
	case domain.TypeWholeHomeInstall:
		return pricing.WholeHomeDurationMinutes, nil
	case domain.TypeSurvey:
		return domain.SurveyDurationMinutes, nil
	case domain.TypeDropsInstall:
		book, err := s.rates.LoadRateBook(ctx)
		if err != nil {
			return 0, err
		}
		runs := pricing.RunCounts{Coax: req.Runs.Coax, Cat6: req.Runs.Cat6, Fiber: req.Runs.Fiber}
		services := pricing.ServiceCounts{APMounts: req.Services.APMounts, EthRelocations: req.Services.EthRelocations}
		return pricing.EstimateDurationMinutes(runs, services, book.LaborHours), nil
	default:
		return 0, apperr.BadRequest("unknown appointment type")
	}
}

func (s *Service) reject(reason, date, clock string) error {
	s.log.BookingRejected(date, clock, reason)
	return apperr.Rejected(reason, "booking rejected")
}

// scheduleReminder enqueues the day-before reminder. Bookings less than a day
// out get no reminder; enqueue failures are logged, not returned, since the
// booking itself already committed.
func (s *Service) scheduleReminder(ctx context.Context, b *repository.Booking) {
	if s.reminders == nil {
		return
	}

	start := b.AppointmentDate.Add(time.Duration(b.StartMinutes) * time.Minute)
	runAt := start.Add(-24 * time.Hour)
	if !runAt.After(s.now()) {
		return
	}

	payload := scheduler.BookingReminderPayload{BookingID: b.ID.String()}
	if err := s.reminders.ScheduleBookingReminder(ctx, payload, runAt); err != nil {
		s.log.Error("failed to schedule booking reminder", "bookingId", b.ID, "error", err)
	}
}

// List returns bookings for the admin calendar. An empty range defaults to
// the next 30 days.
func (s *Service) List(ctx context.Context, req transport.ListBookingsRequest) ([]transport.BookingResponse, error) {
	now := s.now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 30)

	var err error
	if req.From != "" {
		if from, err = time.Parse(dateFormat, req.From); err != nil {
			return nil, apperr.BadRequest("invalid from date")
		}
	}
	if req.To != "" {
		if to, err = time.Parse(dateFormat, req.To); err != nil {
			return nil, apperr.BadRequest("invalid to date")
		}
	}
	if to.Before(from) {
		return nil, apperr.BadRequest("to date before from date")
	}

	bookings, err := s.repo.ListRange(ctx, from, to, req.Status)
	if err != nil {
		return nil, err
	}

	out := make([]transport.BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, *bookingResponse(&bookings[i]))
	}
	return out, nil
}

// UpdateStatus completes or cancels a booking. Only scheduled bookings can
// transition; cancelling frees the slot and announces it on the bus.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*transport.BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != string(domain.StatusScheduled) {
		return nil, apperr.Conflict("booking is not scheduled")
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	booking.Status = status
	booking.UpdatedAt = s.now()

	if status == string(domain.StatusCancelled) {
		s.bus.Publish(ctx, events.NewBookingCancelled(
			booking.ID, booking.CustomerName, booking.CustomerEmail,
			booking.AppointmentDate, booking.StartMinutes,
		))
	}

	return bookingResponse(booking), nil
}

func bookingResponse(b *repository.Booking) *transport.BookingResponse {
	return &transport.BookingResponse{
		ID:              b.ID,
		Name:            b.CustomerName,
		Email:           b.CustomerEmail,
		Phone:           b.CustomerPhone,
		Date:            b.AppointmentDate.Format(dateFormat),
		Time:            domain.FormatClock(b.StartMinutes),
		AppointmentType: b.AppointmentType,
		DurationMinutes: b.DurationMinutes,
		Status:          b.Status,
		CreatedAt:       b.CreatedAt,
	}
}
