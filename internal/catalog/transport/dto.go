package transport

import (
	"time"

	"github.com/google/uuid"
)

// BOMEntry is one line of a cost item's bill of materials.
type BOMEntry struct {
	ItemCode string `json:"itemCode" validate:"required,max=100"`
	Quantity int    `json:"quantity" validate:"required,min=1,max=1000"`
}

// CreateCostItemRequest creates a priced catalog item.
type CreateCostItemRequest struct {
	Code              string     `json:"code" validate:"required,max=100"`
	Name              string     `json:"name" validate:"required,max=200"`
	Category          string     `json:"category" validate:"required,oneof=run service panel deposit"`
	UnitType          string     `json:"unitType" validate:"required,oneof=per-foot per-run per-unit flat-fee threshold"`
	PriceCents        int64      `json:"priceCents" validate:"min=0"`
	LaborHours        float64    `json:"laborHours" validate:"min=0"`
	MaterialCostCents int64      `json:"materialCostCents" validate:"min=0"`
	BillOfMaterials   []BOMEntry `json:"billOfMaterials" validate:"dive"`
	SortOrder         int        `json:"sortOrder"`
}

// UpdateCostItemRequest updates an existing catalog item. The code is fixed
// at creation; pricers key on it.
type UpdateCostItemRequest struct {
	Name              string     `json:"name" validate:"required,max=200"`
	Category          string     `json:"category" validate:"required,oneof=run service panel deposit"`
	UnitType          string     `json:"unitType" validate:"required,oneof=per-foot per-run per-unit flat-fee threshold"`
	PriceCents        int64      `json:"priceCents" validate:"min=0"`
	LaborHours        float64    `json:"laborHours" validate:"min=0"`
	MaterialCostCents int64      `json:"materialCostCents" validate:"min=0"`
	BillOfMaterials   []BOMEntry `json:"billOfMaterials" validate:"dive"`
	SortOrder         int        `json:"sortOrder"`
	IsActive          *bool      `json:"isActive"`
}

// CostItemResponse is the admin view of a catalog item.
type CostItemResponse struct {
	ID                uuid.UUID  `json:"id"`
	Code              string     `json:"code"`
	Name              string     `json:"name"`
	Category          string     `json:"category"`
	UnitType          string     `json:"unitType"`
	PriceCents        int64      `json:"priceCents"`
	LaborHours        float64    `json:"laborHours"`
	MaterialCostCents int64      `json:"materialCostCents"`
	BillOfMaterials   []BOMEntry `json:"billOfMaterials"`
	IsActive          bool       `json:"isActive"`
	SortOrder         int        `json:"sortOrder"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// SettingsResponse is the singleton business settings row.
type SettingsResponse struct {
	LaborRateCents int64     `json:"laborRateCents"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// UpdateSettingsRequest changes the hourly labor rate.
type UpdateSettingsRequest struct {
	LaborRateCents int64 `json:"laborRateCents" validate:"required,min=1"`
}
