package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homewire_backend/internal/catalog/transport"
	"homewire_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CostItem represents the cost item database model.
type CostItem struct {
	ID                uuid.UUID            `db:"id"`
	Code              string               `db:"code"`
	Name              string               `db:"name"`
	Category          string               `db:"category"`
	UnitType          string               `db:"unit_type"`
	PriceCents        int64                `db:"price_cents"`
	LaborHours        float64              `db:"labor_hours"`
	MaterialCostCents int64                `db:"material_cost_cents"`
	BillOfMaterials   []transport.BOMEntry `db:"bill_of_materials"`
	IsActive          bool                 `db:"is_active"`
	SortOrder         int                  `db:"sort_order"`
	CreatedAt         time.Time            `db:"created_at"`
	UpdatedAt         time.Time            `db:"updated_at"`
}

// Settings represents the singleton settings row.
type Settings struct {
	LaborRateCents int64     `db:"labor_rate_cents"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// Repository provides database operations for the pricing catalog.
type Repository struct {
	pool *pgxpool.Pool
}

const costItemNotFoundMsg = "cost item not found"

const costItemColumns = `id, code, name, category, unit_type, price_cents, labor_hours,
	material_cost_cents, bill_of_materials, is_active, sort_order, created_at, updated_at`

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanCostItem(row pgx.Row) (*CostItem, error) {
	var item CostItem
	err := row.Scan(
		&item.ID, &item.Code, &item.Name, &item.Category, &item.UnitType, &item.PriceCents,
		&item.LaborHours, &item.MaterialCostCents, &item.BillOfMaterials, &item.IsActive,
		&item.SortOrder, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a new cost item. A duplicate code maps to a conflict.
func (r *Repository) Create(ctx context.Context, item *CostItem) error {
	query := `INSERT INTO cost_items (` + costItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.pool.Exec(ctx, query,
		item.ID, item.Code, item.Name, item.Category, item.UnitType, item.PriceCents,
		item.LaborHours, item.MaterialCostCents, item.BillOfMaterials, item.IsActive,
		item.SortOrder, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperr.Conflict("cost item code already exists")
		}
		return fmt.Errorf("failed to create cost item: %w", err)
	}
	return nil
}

// GetByID retrieves a cost item by its ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*CostItem, error) {
	query := `SELECT ` + costItemColumns + ` FROM cost_items WHERE id = $1`

	item, err := scanCostItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(costItemNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get cost item: %w", err)
	}
	return item, nil
}

// List returns all cost items, active first then by sort order.
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]CostItem, error) {
	query := `SELECT ` + costItemColumns + ` FROM cost_items
		WHERE ($1 = FALSE OR is_active)
		ORDER BY is_active DESC, sort_order, code`

	rows, err := r.pool.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list cost items: %w", err)
	}
	defer rows.Close()

	items := []CostItem{}
	for rows.Next() {
		item, err := scanCostItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cost item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cost items: %w", err)
	}
	return items, nil
}

// CodesExist reports which of the given codes exist as catalog items.
func (r *Repository) CodesExist(ctx context.Context, codes []string) (map[string]bool, error) {
	query := `SELECT code FROM cost_items WHERE code = ANY($1)`

	rows, err := r.pool.Query(ctx, query, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to check cost item codes: %w", err)
	}
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan cost item code: %w", err)
		}
		found[code] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cost item codes: %w", err)
	}
	return found, nil
}

// Update updates an existing cost item.
func (r *Repository) Update(ctx context.Context, item *CostItem) error {
	query := `UPDATE cost_items SET
			name = $2,
			category = $3,
			unit_type = $4,
			price_cents = $5,
			labor_hours = $6,
			material_cost_cents = $7,
			bill_of_materials = $8,
			is_active = $9,
			sort_order = $10,
			updated_at = $11
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query,
		item.ID, item.Name, item.Category, item.UnitType, item.PriceCents, item.LaborHours,
		item.MaterialCostCents, item.BillOfMaterials, item.IsActive, item.SortOrder, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update cost item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(costItemNotFoundMsg)
	}
	return nil
}

// SetActive soft-enables or soft-disables a cost item.
func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE cost_items SET is_active = $2, updated_at = $3 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, active, time.Now())
	if err != nil {
		return fmt.Errorf("failed to set cost item active flag: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(costItemNotFoundMsg)
	}
	return nil
}

// GetSettings reads the singleton settings row.
func (r *Repository) GetSettings(ctx context.Context) (*Settings, error) {
	query := `SELECT labor_rate_cents, updated_at FROM settings WHERE id = 1`

	var s Settings
	if err := r.pool.QueryRow(ctx, query).Scan(&s.LaborRateCents, &s.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &s, nil
}

// UpdateSettings writes the singleton settings row.
func (r *Repository) UpdateSettings(ctx context.Context, laborRateCents int64) (*Settings, error) {
	query := `UPDATE settings SET labor_rate_cents = $1, updated_at = $2 WHERE id = 1
		RETURNING labor_rate_cents, updated_at`

	var s Settings
	if err := r.pool.QueryRow(ctx, query, laborRateCents, time.Now()).Scan(&s.LaborRateCents, &s.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return &s, nil
}
