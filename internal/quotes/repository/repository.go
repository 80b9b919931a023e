package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homewire_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Quote represents the quote database model.
type Quote struct {
	ID                 uuid.UUID `db:"id"`
	QuoteNumber        string    `db:"quote_number"`
	CustomerName       string    `db:"customer_name"`
	CustomerEmail      string    `db:"customer_email"`
	CustomerPhone      string    `db:"customer_phone"`
	ServiceType        string    `db:"service_type"`
	CoaxRuns           int       `db:"coax_runs"`
	Cat6Runs           int       `db:"cat6_runs"`
	FiberRuns          int       `db:"fiber_runs"`
	APMounts           int       `db:"ap_mounts"`
	EthRelocations     int       `db:"eth_relocations"`
	DiscountPercent    int       `db:"discount_percent"`
	CentralizationType *string   `db:"centralization_type"`
	HasExistingPanel   bool      `db:"has_existing_panel"`
	TotalCents         *int64    `db:"total_cents"`
	DepositCents       int64     `db:"deposit_cents"`
	Status             string    `db:"status"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

// Attachment represents the quote attachment database model.
type Attachment struct {
	ID          uuid.UUID `db:"id"`
	QuoteID     uuid.UUID `db:"quote_id"`
	FileKey     string    `db:"file_key"`
	FileName    string    `db:"file_name"`
	ContentType string    `db:"content_type"`
	SizeBytes   int64     `db:"size_bytes"`
	CreatedAt   time.Time `db:"created_at"`
}

// Invoice represents the invoice database model.
type Invoice struct {
	ID          uuid.UUID  `db:"id"`
	QuoteID     uuid.UUID  `db:"quote_id"`
	AmountCents int64      `db:"amount_cents"`
	Status      string     `db:"status"`
	IssuedAt    time.Time  `db:"issued_at"`
	PaidAt      *time.Time `db:"paid_at"`
}

// Repository provides database operations for quotes, their attachments and
// invoices.
type Repository struct {
	pool *pgxpool.Pool
}

const (
	quoteNotFoundMsg   = "quote not found"
	invoiceNotFoundMsg = "invoice not found"
)

const quoteColumns = `id, quote_number, customer_name, customer_email, customer_phone,
	service_type, coax_runs, cat6_runs, fiber_runs, ap_mounts, eth_relocations,
	discount_percent, centralization_type, has_existing_panel, total_cents,
	deposit_cents, status, created_at, updated_at`

// New creates a new quotes repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanQuote(row pgx.Row) (*Quote, error) {
	var q Quote
	err := row.Scan(
		&q.ID, &q.QuoteNumber, &q.CustomerName, &q.CustomerEmail, &q.CustomerPhone,
		&q.ServiceType, &q.CoaxRuns, &q.Cat6Runs, &q.FiberRuns, &q.APMounts, &q.EthRelocations,
		&q.DiscountPercent, &q.CentralizationType, &q.HasExistingPanel, &q.TotalCents,
		&q.DepositCents, &q.Status, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Create inserts a new quote. A duplicate quote number surfaces as a
// conflict so the service can treat it as a consumed generator retry.
func (r *Repository) Create(ctx context.Context, q *Quote) error {
	query := `INSERT INTO quotes (` + quoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	_, err := r.pool.Exec(ctx, query,
		q.ID, q.QuoteNumber, q.CustomerName, q.CustomerEmail, q.CustomerPhone,
		q.ServiceType, q.CoaxRuns, q.Cat6Runs, q.FiberRuns, q.APMounts, q.EthRelocations,
		q.DiscountPercent, q.CentralizationType, q.HasExistingPanel, q.TotalCents,
		q.DepositCents, q.Status, q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperr.Conflict("quote number already exists")
		}
		return fmt.Errorf("failed to create quote: %w", err)
	}
	return nil
}

// ExistsByNumber reports whether a quote number is taken.
func (r *Repository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM quotes WHERE quote_number = $1)`, number).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check quote number: %w", err)
	}
	return exists, nil
}

// GetByID retrieves a quote by its ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1`

	q, err := scanQuote(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(quoteNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return q, nil
}

// GetByNumber retrieves a quote by its public quote number.
func (r *Repository) GetByNumber(ctx context.Context, number string) (*Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE quote_number = $1`

	q, err := scanQuote(r.pool.QueryRow(ctx, query, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(quoteNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return q, nil
}

// List returns quotes for the admin list view, newest first.
func (r *Repository) List(ctx context.Context, status, email string, limit, offset int) ([]Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes
		WHERE ($1 = '' OR status = $1)
		AND ($2 = '' OR customer_email = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`

	rows, err := r.pool.Query(ctx, query, status, email, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	defer rows.Close()

	quotes := []Quote{}
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		quotes = append(quotes, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read quotes: %w", err)
	}
	return quotes, nil
}

// UpdateStatus updates the lifecycle status of a quote.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE quotes SET status = $2, updated_at = $3 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update quote status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(quoteNotFoundMsg)
	}
	return nil
}

// CreateAttachment registers an attachment against a quote.
func (r *Repository) CreateAttachment(ctx context.Context, a *Attachment) error {
	query := `INSERT INTO quote_attachments (id, quote_id, file_key, file_name, content_type, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query, a.ID, a.QuoteID, a.FileKey, a.FileName, a.ContentType, a.SizeBytes, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create attachment: %w", err)
	}
	return nil
}

// ListAttachments returns a quote's attachments, oldest first.
func (r *Repository) ListAttachments(ctx context.Context, quoteID uuid.UUID) ([]Attachment, error) {
	query := `SELECT id, quote_id, file_key, file_name, content_type, size_bytes, created_at
		FROM quote_attachments WHERE quote_id = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	defer rows.Close()

	attachments := []Attachment{}
	for rows.Next() {
		var a Attachment
		if err := rows.Scan(&a.ID, &a.QuoteID, &a.FileKey, &a.FileName, &a.ContentType, &a.SizeBytes, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		attachments = append(attachments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attachments: %w", err)
	}
	return attachments, nil
}

// CountAttachments returns how many attachments a quote has.
func (r *Repository) CountAttachments(ctx context.Context, quoteID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM quote_attachments WHERE quote_id = $1`, quoteID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count attachments: %w", err)
	}
	return count, nil
}

// CreateInvoice creates the invoice for a quote. The unique constraint on
// quote_id enforces at most one invoice per quote.
func (r *Repository) CreateInvoice(ctx context.Context, inv *Invoice) error {
	query := `INSERT INTO invoices (id, quote_id, amount_cents, status, issued_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query, inv.ID, inv.QuoteID, inv.AmountCents, inv.Status, inv.IssuedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperr.Conflict("quote already has an invoice")
		}
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

// GetInvoice retrieves an invoice by its ID.
func (r *Repository) GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	query := `SELECT id, quote_id, amount_cents, status, issued_at, paid_at FROM invoices WHERE id = $1`

	var inv Invoice
	err := r.pool.QueryRow(ctx, query, id).Scan(&inv.ID, &inv.QuoteID, &inv.AmountCents, &inv.Status, &inv.IssuedAt, &inv.PaidAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(invoiceNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return &inv, nil
}

// ListInvoices returns invoices joined with their quote numbers, newest first.
func (r *Repository) ListInvoices(ctx context.Context, status string) ([]Invoice, map[uuid.UUID]string, error) {
	query := `SELECT i.id, i.quote_id, i.amount_cents, i.status, i.issued_at, i.paid_at, q.quote_number
		FROM invoices i
		JOIN quotes q ON q.id = i.quote_id
		WHERE ($1 = '' OR i.status = $1)
		ORDER BY i.issued_at DESC`

	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	invoices := []Invoice{}
	numbers := map[uuid.UUID]string{}
	for rows.Next() {
		var inv Invoice
		var number string
		if err := rows.Scan(&inv.ID, &inv.QuoteID, &inv.AmountCents, &inv.Status, &inv.IssuedAt, &inv.PaidAt, &number); err != nil {
			return nil, nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
		numbers[inv.QuoteID] = number
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read invoices: %w", err)
	}
	return invoices, numbers, nil
}

// UpdateInvoiceStatus marks an invoice paid or void. paidAt is set only when
// transitioning to paid.
func (r *Repository) UpdateInvoiceStatus(ctx context.Context, id uuid.UUID, status string, paidAt *time.Time) error {
	query := `UPDATE invoices SET status = $2, paid_at = $3 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, status, paidAt)
	if err != nil {
		return fmt.Errorf("failed to update invoice status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(invoiceNotFoundMsg)
	}
	return nil
}
