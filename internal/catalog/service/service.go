package service

import (
	"context"
	"strings"
	"time"

	"homewire_backend/internal/catalog/repository"
	"homewire_backend/internal/catalog/transport"
	"homewire_backend/internal/pricing"
	"homewire_backend/platform/apperr"

	"github.com/google/uuid"
)

// Service provides business logic for the pricing catalog.
type Service struct {
	repo *repository.Repository
	now  func() time.Time
}

// New creates a new catalog service.
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// validateBOM rejects self-references and duplicate references, and requires
// every referenced code to exist in the catalog.
func (s *Service) validateBOM(ctx context.Context, ownCode string, bom []transport.BOMEntry) error {
	if len(bom) == 0 {
		return nil
	}

	seen := map[string]bool{}
	codes := make([]string, 0, len(bom))
	for _, entry := range bom {
		code := strings.TrimSpace(entry.ItemCode)
		if code == ownCode {
			return apperr.Validation("bill of materials cannot reference the item itself")
		}
		if seen[code] {
			return apperr.Validation("bill of materials references " + code + " more than once")
		}
		seen[code] = true
		codes = append(codes, code)
	}

	found, err := s.repo.CodesExist(ctx, codes)
	if err != nil {
		return err
	}
	for _, code := range codes {
		if !found[code] {
			return apperr.Validation("bill of materials references unknown item " + code)
		}
	}
	return nil
}

// CreateItem creates a new catalog item.
func (s *Service) CreateItem(ctx context.Context, req transport.CreateCostItemRequest) (*transport.CostItemResponse, error) {
	code := strings.TrimSpace(req.Code)
	if err := s.validateBOM(ctx, code, req.BillOfMaterials); err != nil {
		return nil, err
	}

	now := s.now()
	item := &repository.CostItem{
		ID:                uuid.New(),
		Code:              code,
		Name:              strings.TrimSpace(req.Name),
		Category:          req.Category,
		UnitType:          req.UnitType,
		PriceCents:        req.PriceCents,
		LaborHours:        req.LaborHours,
		MaterialCostCents: req.MaterialCostCents,
		BillOfMaterials:   normalizeBOM(req.BillOfMaterials),
		IsActive:          true,
		SortOrder:         req.SortOrder,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return itemResponse(item), nil
}

// UpdateItem updates an existing catalog item.
func (s *Service) UpdateItem(ctx context.Context, id uuid.UUID, req transport.UpdateCostItemRequest) (*transport.CostItemResponse, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateBOM(ctx, item.Code, req.BillOfMaterials); err != nil {
		return nil, err
	}

	item.Name = strings.TrimSpace(req.Name)
	item.Category = req.Category
	item.UnitType = req.UnitType
	item.PriceCents = req.PriceCents
	item.LaborHours = req.LaborHours
	item.MaterialCostCents = req.MaterialCostCents
	item.BillOfMaterials = normalizeBOM(req.BillOfMaterials)
	item.SortOrder = req.SortOrder
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	item.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return itemResponse(item), nil
}

// SetItemActive soft-enables or soft-disables a catalog item. Disabled items
// keep their history but drop out of the rate book.
func (s *Service) SetItemActive(ctx context.Context, id uuid.UUID, active bool) error {
	return s.repo.SetActive(ctx, id, active)
}

// ListItems returns catalog items for the admin UI.
func (s *Service) ListItems(ctx context.Context, activeOnly bool) ([]transport.CostItemResponse, error) {
	items, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	out := make([]transport.CostItemResponse, 0, len(items))
	for i := range items {
		out = append(out, *itemResponse(&items[i]))
	}
	return out, nil
}

// GetSettings returns the singleton business settings.
func (s *Service) GetSettings(ctx context.Context) (*transport.SettingsResponse, error) {
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	return &transport.SettingsResponse{LaborRateCents: settings.LaborRateCents, UpdatedAt: settings.UpdatedAt}, nil
}

// UpdateSettings changes the hourly labor rate.
func (s *Service) UpdateSettings(ctx context.Context, req transport.UpdateSettingsRequest) (*transport.SettingsResponse, error) {
	settings, err := s.repo.UpdateSettings(ctx, req.LaborRateCents)
	if err != nil {
		return nil, err
	}
	return &transport.SettingsResponse{LaborRateCents: settings.LaborRateCents, UpdatedAt: settings.UpdatedAt}, nil
}

// LoadRateBook builds the pricing rate book from the defaults overlaid with
// every active catalog item and the configured labor rate. Unknown codes in
// the catalog are ignored; they may back future pricers.
func (s *Service) LoadRateBook(ctx context.Context) (*pricing.RateBook, error) {
	book := pricing.DefaultRateBook()

	items, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		book.ApplyItemRate(item.Code, item.PriceCents, item.LaborHours)
	}

	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	book.LaborRateCents = settings.LaborRateCents

	return &book, nil
}

func normalizeBOM(bom []transport.BOMEntry) []transport.BOMEntry {
	out := make([]transport.BOMEntry, 0, len(bom))
	for _, entry := range bom {
		out = append(out, transport.BOMEntry{ItemCode: strings.TrimSpace(entry.ItemCode), Quantity: entry.Quantity})
	}
	return out
}

func itemResponse(item *repository.CostItem) *transport.CostItemResponse {
	bom := item.BillOfMaterials
	if bom == nil {
		bom = []transport.BOMEntry{}
	}
	return &transport.CostItemResponse{
		ID:                item.ID,
		Code:              item.Code,
		Name:              item.Name,
		Category:          item.Category,
		UnitType:          item.UnitType,
		PriceCents:        item.PriceCents,
		LaborHours:        item.LaborHours,
		MaterialCostCents: item.MaterialCostCents,
		BillOfMaterials:   bom,
		IsActive:          item.IsActive,
		SortOrder:         item.SortOrder,
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
	}
}
