package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una reserva de stock asociada a una factura.
const (
	ReservationStatusActive   = "active"
	ReservationStatusReleased = "released"
	ReservationStatusConsumed = "consumed"
)

// InvoiceReservation registra cuánto reservó una factura por producto y bodega.
// Permite que release y processPayment operen solo sobre lo efectivamente reservado,
// de modo que quantity_reserved nunca pueda quedar negativa.
type InvoiceReservation struct {
	ID          string
	CompanyID   string
	InvoiceID   string
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	Status      string // active, released, consumed
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
