package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest línea de orden de compra.
type OrderLineRequest struct {
	ProductID       string          `json:"product_id" validate:"required,uuid"`
	QuantityOrdered decimal.Decimal `json:"quantity_ordered"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
}

// CreateOrderRequest body para POST /api/purchase-orders.
type CreateOrderRequest struct {
	VendorID  string             `json:"vendor_id"`
	Number    string             `json:"number"`
	OrderDate time.Time          `json:"order_date"`
	Lines     []OrderLineRequest `json:"lines" validate:"required,min=1"`
}

// ReceiveLineRequest cantidad entregada en esta recepción para una línea.
type ReceiveLineRequest struct {
	ItemID   string          `json:"item_id" validate:"required,uuid"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ReceiveOrderRequest body para POST /api/purchase-orders/:id/receive.
// Las líneas omitidas no se reciben; la recepción puede ser parcial y repetirse.
type ReceiveOrderRequest struct {
	WarehouseID string              `json:"warehouse_id" validate:"required,uuid"`
	Lines       []ReceiveLineRequest `json:"lines" validate:"required,min=1"`
}

// OrderItemResponse línea de una orden de compra.
type OrderItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	QuantityOrdered  decimal.Decimal `json:"quantity_ordered"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
}

// OrderResponse cabecera de orden de compra.
type OrderResponse struct {
	ID           string              `json:"id"`
	VendorID     string              `json:"vendor_id,omitempty"`
	Number       string              `json:"number,omitempty"`
	Status       string              `json:"status"`
	OrderDate    time.Time           `json:"order_date"`
	ReceivedDate *time.Time          `json:"received_date,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	Items        []OrderItemResponse `json:"items,omitempty"`
}
