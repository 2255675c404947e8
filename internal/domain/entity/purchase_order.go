package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra. Solo la recepción afecta el ledger.
const (
	PurchaseOrderStatusDraft     = "draft"
	PurchaseOrderStatusSent      = "sent"
	PurchaseOrderStatusConfirmed = "confirmed"
	PurchaseOrderStatusReceived  = "received"
	PurchaseOrderStatusCancelled = "cancelled"
)

// PurchaseOrder cabecera de orden de compra a un proveedor. La recepción puede ser
// parcial y repetirse; cada recepción acumula QuantityReceived en las líneas.
type PurchaseOrder struct {
	ID           string
	CompanyID    string
	VendorID     string
	Number       string
	Status       string
	OrderDate    time.Time
	ReceivedDate *time.Time
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PurchaseOrderItem línea de la orden. QuantityReceived acumula entre recepciones parciales.
type PurchaseOrderItem struct {
	ID               string
	PurchaseOrderID  string
	ProductID        string
	QuantityOrdered  decimal.Decimal
	QuantityReceived decimal.Decimal
	UnitCost         decimal.Decimal
}
