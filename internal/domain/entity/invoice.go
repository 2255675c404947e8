package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura de venta (subconjunto relevante para el ledger:
// los efectos de inventario se disparan al reservar, liberar y pagar).
const (
	InvoiceStatusDraft         = "draft"
	InvoiceStatusSent          = "sent"
	InvoiceStatusPartiallyPaid = "partially_paid"
	InvoiceStatusPaid          = "paid"
	InvoiceStatusCancelled     = "cancelled"
)

// Invoice cabecera de factura de venta.
type Invoice struct {
	ID         string
	CompanyID  string
	CustomerID string
	Number     string
	Date       time.Time
	Status     string
	GrandTotal decimal.Decimal
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// InvoiceItem línea de factura. ProductID puede estar vacío (líneas de servicio
// sin efecto en inventario).
type InvoiceItem struct {
	ID        string
	InvoiceID string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}
