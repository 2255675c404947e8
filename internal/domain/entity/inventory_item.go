package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa el saldo de un producto en una bodega (par único producto+bodega).
// Invariante permanente: QuantityAvailable = QuantityOnHand - QuantityReserved, nunca negativo.
// Las filas se crean en la primera entrada o ajuste y nunca se eliminan, solo se mutan.
type InventoryItem struct {
	ID                string
	CompanyID         string
	ProductID         string
	WarehouseID       string
	QuantityOnHand    decimal.Decimal // unidades físicamente presentes
	QuantityReserved  decimal.Decimal // unidades comprometidas a facturas no despachadas
	QuantityAvailable decimal.Decimal // on_hand - reserved; prometible a nueva demanda
	LastStockDate     time.Time       // última mutación del saldo
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
