package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentLineRequest línea de ajuste: corrige el on_hand al valor absoluto quantity_after.
type AdjustmentLineRequest struct {
	ProductID      string          `json:"product_id" validate:"required,uuid"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
}

// CreateAdjustmentRequest body para POST /api/stock-adjustments.
type CreateAdjustmentRequest struct {
	WarehouseID string                  `json:"warehouse_id" validate:"required,uuid"`
	Reason      string                  `json:"reason"`
	Lines       []AdjustmentLineRequest `json:"lines" validate:"required,min=1"`
}

// AdjustmentItemResponse línea de un ajuste.
type AdjustmentItemResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	QuantityChange decimal.Decimal `json:"quantity_change"`
}

// AdjustmentResponse cabecera de ajuste.
type AdjustmentResponse struct {
	ID          string                   `json:"id"`
	WarehouseID string                   `json:"warehouse_id"`
	Reason      string                   `json:"reason,omitempty"`
	Status      string                   `json:"status"`
	ApprovedBy  string                   `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time               `json:"approved_at,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	Items       []AdjustmentItemResponse `json:"items,omitempty"`
}
