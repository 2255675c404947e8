package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferLineRequest línea de traslado: cantidad solicitada por producto.
type TransferLineRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateTransferRequest body para POST /api/stock-transfers.
type CreateTransferRequest struct {
	FromWarehouseID string                `json:"from_warehouse_id" validate:"required,uuid"`
	ToWarehouseID   string                `json:"to_warehouse_id" validate:"required,uuid"`
	Notes           string                `json:"notes"`
	Lines           []TransferLineRequest `json:"lines" validate:"required,min=1"`
}

// ReceivedLineRequest cantidad realmente recibida por línea al completar.
type ReceivedLineRequest struct {
	ItemID           string          `json:"item_id" validate:"required,uuid"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
}

// CompleteTransferRequest body para POST /api/stock-transfers/:id/complete.
type CompleteTransferRequest struct {
	Lines []ReceivedLineRequest `json:"lines" validate:"required,min=1"`
}

// TransferItemResponse línea de un traslado.
type TransferItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
}

// TransferResponse cabecera de traslado.
type TransferResponse struct {
	ID              string                 `json:"id"`
	FromWarehouseID string                 `json:"from_warehouse_id"`
	ToWarehouseID   string                 `json:"to_warehouse_id"`
	Status          string                 `json:"status"`
	Notes           string                 `json:"notes,omitempty"`
	ProcessedAt     *time.Time             `json:"processed_at,omitempty"`
	CompletedAt     *time.Time             `json:"completed_at,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	Items           []TransferItemResponse `json:"items,omitempty"`
}
