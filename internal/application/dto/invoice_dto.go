package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceLineRequest línea de factura. product_id vacío = línea sin efecto en inventario.
type InvoiceLineRequest struct {
	ProductID string          `json:"product_id,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateInvoiceRequest body para POST /api/invoices.
type CreateInvoiceRequest struct {
	CustomerID string               `json:"customer_id" validate:"required"`
	Number     string               `json:"number"`
	Date       time.Time            `json:"date"`
	Lines      []InvoiceLineRequest `json:"lines" validate:"required,min=1"`
}

// FulfillmentRequest body para reserve/release/pay: bodega contra la que opera la factura.
type FulfillmentRequest struct {
	WarehouseID string `json:"warehouse_id" validate:"required,uuid"`
}

// InvoiceItemResponse línea de factura.
type InvoiceItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// InvoiceResponse cabecera de factura.
type InvoiceResponse struct {
	ID         string                `json:"id"`
	CustomerID string                `json:"customer_id"`
	Number     string                `json:"number,omitempty"`
	Date       time.Time             `json:"date"`
	Status     string                `json:"status"`
	GrandTotal decimal.Decimal       `json:"grand_total"`
	Items      []InvoiceItemResponse `json:"items,omitempty"`
}

// LineAvailabilityResponse disponibilidad de una línea frente al ledger.
type LineAvailabilityResponse struct {
	ProductID         string          `json:"product_id"`
	Requested         decimal.Decimal `json:"requested"`
	QuantityAvailable decimal.Decimal `json:"quantity_available"`
	Available         bool            `json:"available"`
}

// AvailabilityResponse resultado de GET /api/invoices/:id/availability.
type AvailabilityResponse struct {
	InvoiceID    string                     `json:"invoice_id"`
	WarehouseID  string                     `json:"warehouse_id"`
	Lines        []LineAvailabilityResponse `json:"lines"`
	AllAvailable bool                       `json:"all_available"`
}
