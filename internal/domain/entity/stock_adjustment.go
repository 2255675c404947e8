package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un ajuste de inventario. Terminal una vez aprobado o cancelado.
const (
	AdjustmentStatusDraft     = "draft"
	AdjustmentStatusApproved  = "approved"
	AdjustmentStatusCancelled = "cancelled"
)

// StockAdjustment corrige el on_hand de una bodega a valores absolutos.
// Solo la transición draft -> approved muta el ledger.
type StockAdjustment struct {
	ID          string
	CompanyID   string
	WarehouseID string
	Reason      string
	Status      string
	CreatedBy   string
	ApprovedBy  string
	ApprovedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StockAdjustmentItem línea del ajuste. QuantityChange = QuantityAfter - QuantityBefore,
// pre-calculado al crear el documento.
type StockAdjustmentItem struct {
	ID             string
	AdjustmentID   string
	ProductID      string
	QuantityBefore decimal.Decimal
	QuantityAfter  decimal.Decimal
	QuantityChange decimal.Decimal
}
