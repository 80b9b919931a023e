// Package domain implements the pure booking rules for the single
// installation-crew calendar: business-hour windows, hour-bucket occupancy,
// the finalization buffer, and date eligibility. Nothing here touches the
// database; the service layer feeds it the day's bookings.
package domain

import (
	"fmt"
	"time"
)

// AppointmentType identifies what kind of visit a booking reserves.
type AppointmentType string

const (
	TypeDropsInstall     AppointmentType = "drops-install"
	TypeWholeHomeInstall AppointmentType = "whole-home-install"
	TypeSurvey           AppointmentType = "survey"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusScheduled BookingStatus = "scheduled"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Rejection reason codes returned to clients.
const (
	ReasonSlotUnavailable      = "slot unavailable"
	ReasonDuplicateBooking     = "duplicate recent booking"
	ReasonOutsideBusinessRules = "outside business rules"
)

// Clock and grid constants.
const (
	// SlotGridMinutes is the granularity of bookable start times.
	SlotGridMinutes = 30
	// SurveyDurationMinutes is fixed: surveys always block two hours.
	SurveyDurationMinutes = 120
	// FinalizationBufferMinutes is enforced around exact start timestamps
	// when a booking is accepted server-side, independent of the coarser
	// hour-bucket preview.
	FinalizationBufferMinutes = 60
	// MaxAdvanceDays is how far out a booking may be placed.
	MaxAdvanceDays = 90
	// DuplicateWindow is the lookback for the same-email duplicate guard.
	DuplicateWindow = 24 * time.Hour
)

// The two booking surfaces use different start-hour ranges. They are kept as
// separate contracts on purpose.
// TODO: confirm with the owner whether the survey window closing at 17:00
// instead of 18:00 is intentional before unifying these.
const (
	installOpenMinutes  = 8 * 60  // 08:00
	installCloseMinutes = 18 * 60 // starts strictly before 18:00
	surveyOpenMinutes   = 8 * 60  // 08:00
	surveyLastStart     = 16 * 60 // 16:00, so a 2h survey ends by the 17:00-range close
)

// Booking is the slice of a stored appointment the conflict rules need.
type Booking struct {
	Date            time.Time
	StartMinutes    int
	DurationMinutes int
	Type            AppointmentType
	Status          BookingStatus
	Email           string
	CreatedAt       time.Time
}

// Candidate is a requested booking under evaluation.
type Candidate struct {
	Date            time.Time
	StartMinutes    int
	DurationMinutes int
	Type            AppointmentType
}

// ParseClock converts an "HH:MM" string to minutes since midnight.
func ParseClock(value string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(value, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// OnGrid reports whether a start time falls on the 30-minute booking grid.
func OnGrid(startMinutes int) bool {
	return startMinutes%SlotGridMinutes == 0
}

// AllowsStart checks the type-specific business-hours window.
func AllowsStart(t AppointmentType, startMinutes int) bool {
	if t == TypeSurvey {
		return startMinutes >= surveyOpenMinutes && startMinutes <= surveyLastStart
	}
	return startMinutes >= installOpenMinutes && startMinutes < installCloseMinutes
}

// HourBuckets returns the hours occupied by a window starting at startMinutes
// and running for durationMinutes: {startHour .. startHour+ceil(d/60)-1}.
func HourBuckets(startMinutes, durationMinutes int) []int {
	if durationMinutes <= 0 {
		return nil
	}
	startHour := startMinutes / 60
	n := (durationMinutes + 59) / 60
	buckets := make([]int, 0, n)
	for i := 0; i < n; i++ {
		buckets = append(buckets, startHour+i)
	}
	return buckets
}

// BlocksWholeDay reports whether an existing booking commits the crew for its
// entire date regardless of its stated duration.
func BlocksWholeDay(b Booking) bool {
	return b.Type == TypeWholeHomeInstall
}

// sameDay compares calendar dates, ignoring clock time.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// active filters out cancelled bookings; they never conflict.
func active(b Booking) bool {
	return b.Status != StatusCancelled
}

// HasBucketConflict runs the hour-bucket preview model: the candidate's
// buckets against every active same-date booking's buckets, with whole-home
// installs blocking the full day.
func HasBucketConflict(c Candidate, existing []Booking) bool {
	candidate := HourBuckets(c.StartMinutes, c.DurationMinutes)

	for _, b := range existing {
		if !active(b) || !sameDay(b.Date, c.Date) {
			continue
		}
		if BlocksWholeDay(b) {
			return true
		}
		taken := HourBuckets(b.StartMinutes, b.DurationMinutes)
		for _, ch := range candidate {
			for _, bh := range taken {
				if ch == bh {
					return true
				}
			}
		}
	}
	return false
}

// ViolatesBuffer runs the authoritative exact-timestamp check applied at
// accept time: the candidate start must sit more than the buffer away from
// every active same-date booking's stored start.
func ViolatesBuffer(c Candidate, existing []Booking) bool {
	for _, b := range existing {
		if !active(b) || !sameDay(b.Date, c.Date) {
			continue
		}
		diff := c.StartMinutes - b.StartMinutes
		if diff < 0 {
			diff = -diff
		}
		if diff <= FinalizationBufferMinutes {
			return true
		}
	}
	return false
}

// DateEligible applies the calendar rules: no weekends, no past dates, and
// nothing more than MaxAdvanceDays out. now supplies "today".
func DateEligible(date time.Time, now time.Time) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())

	if day.Before(today) {
		return false
	}
	if day.After(today.AddDate(0, 0, MaxAdvanceDays)) {
		return false
	}
	return true
}

// HasRecentBooking applies the duplicate-submission guard: any active booking
// by the same email created within the lookback window rejects the candidate.
// Emails are compared case-insensitively by the caller (stored lowercased).
// The guard spans every date, so the service runs it as a SQL lookup
// (Repository.HasRecentByEmail) with the same DuplicateWindow; this in-memory
// form states the rule and checks rows already in hand.
func HasRecentBooking(email string, existing []Booking, now time.Time) bool {
	for _, b := range existing {
		if !active(b) {
			continue
		}
		if b.Email == email && now.Sub(b.CreatedAt) < DuplicateWindow {
			return true
		}
	}
	return false
}

// Evaluate runs every pure rule in order and returns the first rejection
// reason, or "" when the candidate is acceptable. The caller must still
// re-check conflicts inside the accepting transaction.
func Evaluate(c Candidate, existing []Booking, now time.Time) string {
	if !OnGrid(c.StartMinutes) || !AllowsStart(c.Type, c.StartMinutes) || !DateEligible(c.Date, now) {
		return ReasonOutsideBusinessRules
	}
	if HasBucketConflict(c, existing) || ViolatesBuffer(c, existing) {
		return ReasonSlotUnavailable
	}
	return ""
}
