package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. Cost es el costo unitario vigente,
// usado como costo del movimiento en salidas por venta.
type Product struct {
	ID        string
	CompanyID string
	SKU       string
	Name      string
	Cost      decimal.Decimal
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
