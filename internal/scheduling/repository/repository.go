package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homewire_backend/internal/scheduling/domain"
	"homewire_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Booking represents the booking database model.
type Booking struct {
	ID              uuid.UUID `db:"id"`
	CustomerName    string    `db:"customer_name"`
	CustomerEmail   string    `db:"customer_email"`
	CustomerPhone   string    `db:"customer_phone"`
	AppointmentDate time.Time `db:"appointment_date"`
	StartMinutes    int       `db:"start_minutes"`
	DurationMinutes int       `db:"duration_minutes"`
	AppointmentType string    `db:"appointment_type"`
	Status          string    `db:"status"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// Domain maps the row to the conflict-rule model.
func (b Booking) Domain() domain.Booking {
	return domain.Booking{
		Date:            b.AppointmentDate,
		StartMinutes:    b.StartMinutes,
		DurationMinutes: b.DurationMinutes,
		Type:            domain.AppointmentType(b.AppointmentType),
		Status:          domain.BookingStatus(b.Status),
		Email:           b.CustomerEmail,
		CreatedAt:       b.CreatedAt,
	}
}

// Repository provides database operations for bookings.
type Repository struct {
	pool *pgxpool.Pool
}

const bookingNotFoundMsg = "booking not found"

const bookingColumns = `id, customer_name, customer_email, customer_phone, appointment_date,
	start_minutes, duration_minutes, appointment_type, status, created_at, updated_at`

// New creates a new scheduling repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone, &b.AppointmentDate,
		&b.StartMinutes, &b.DurationMinutes, &b.AppointmentType, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func collectBookings(rows pgx.Rows) ([]Booking, error) {
	defer rows.Close()

	bookings := []Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bookings: %w", err)
	}
	return bookings, nil
}

// GetByID retrieves a booking by its ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	b, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(bookingNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return b, nil
}

// ListForDate returns every booking on a calendar date, cancelled included;
// the domain rules decide what counts as a conflict.
func (r *Repository) ListForDate(ctx context.Context, date time.Time) ([]Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE appointment_date = $1 ORDER BY start_minutes`

	rows, err := r.pool.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for date: %w", err)
	}
	return collectBookings(rows)
}

// ListRange returns bookings between two dates inclusive, optionally filtered
// by status, for the admin calendar.
func (r *Repository) ListRange(ctx context.Context, from, to time.Time, status string) ([]Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE appointment_date BETWEEN $1 AND $2
		AND ($3 = '' OR status = $3)
		ORDER BY appointment_date, start_minutes`

	rows, err := r.pool.Query(ctx, query, from, to, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return collectBookings(rows)
}

// HasRecentByEmail reports whether the email has an active booking created
// within the lookback window.
func (r *Repository) HasRecentByEmail(ctx context.Context, email string, since time.Time) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM bookings
		WHERE customer_email = $1 AND status <> 'cancelled' AND created_at >= $2
	)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, email, since).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check recent bookings: %w", err)
	}
	return exists, nil
}

// CreateIfFree inserts the booking atomically. It takes a per-date advisory
// lock, re-runs the caller's conflict check against the day's rows inside the
// transaction, and only then inserts. A non-empty reason means the slot was
// rejected; the partial unique index on (date, start) backstops anything the
// lock could miss.
func (r *Repository) CreateIfFree(ctx context.Context, b *Booking, check func(existing []domain.Booking) string) (string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to begin booking transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	dateKey := b.AppointmentDate.Format("2006-01-02")
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, dateKey); err != nil {
		return "", fmt.Errorf("failed to lock booking date: %w", err)
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE appointment_date = $1 ORDER BY start_minutes`
	rows, err := tx.Query(ctx, query, b.AppointmentDate)
	if err != nil {
		return "", fmt.Errorf("failed to re-check booking date: %w", err)
	}
	existing, err := collectBookings(rows)
	if err != nil {
		return "", err
	}

	existingDomain := make([]domain.Booking, 0, len(existing))
	for _, row := range existing {
		existingDomain = append(existingDomain, row.Domain())
	}
	if reason := check(existingDomain); reason != "" {
		return reason, nil
	}

	insert := `INSERT INTO bookings (
		id, customer_name, customer_email, customer_phone, appointment_date,
		start_minutes, duration_minutes, appointment_type, status, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = tx.Exec(ctx, insert,
		b.ID, b.CustomerName, b.CustomerEmail, b.CustomerPhone, b.AppointmentDate,
		b.StartMinutes, b.DurationMinutes, b.AppointmentType, b.Status, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ReasonSlotUnavailable, nil
		}
		return "", fmt.Errorf("failed to create booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("failed to commit booking: %w", err)
	}
	return "", nil
}

// UpdateStatus updates the lifecycle status of a booking.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(bookingNotFoundMsg)
	}
	return nil
}
