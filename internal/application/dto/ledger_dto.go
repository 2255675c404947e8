package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItemResponse saldo de un producto en una bodega.
type InventoryItemResponse struct {
	ProductID         string          `json:"product_id"`
	WarehouseID       string          `json:"warehouse_id"`
	QuantityOnHand    decimal.Decimal `json:"quantity_on_hand"`
	QuantityReserved  decimal.Decimal `json:"quantity_reserved"`
	QuantityAvailable decimal.Decimal `json:"quantity_available"`
	LastStockDate     time.Time       `json:"last_stock_date"`
}

// StockMovementResponse entrada del log de movimientos.
type StockMovementResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	WarehouseID   string          `json:"warehouse_id"`
	Type          string          `json:"type"`
	ReferenceType string          `json:"reference_type"`
	ReferenceID   string          `json:"reference_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	MovementDate  time.Time       `json:"movement_date"`
	CreatedBy     string          `json:"created_by,omitempty"`
}

// ReconciliationRowResponse contraste saldo vs suma de movimientos.
type ReconciliationRowResponse struct {
	ProductID   string          `json:"product_id"`
	OnHand      decimal.Decimal `json:"on_hand"`
	MovementSum decimal.Decimal `json:"movement_sum"`
	Delta       decimal.Decimal `json:"delta"`
	Consistent  bool            `json:"consistent"`
}
