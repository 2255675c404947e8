package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del ledger.
const (
	MovementTypePurchase   = "purchase"   // recepción de orden de compra
	MovementTypeSale       = "sale"       // salida por factura pagada
	MovementTypeAdjustment = "adjustment" // ajuste aprobado
	MovementTypeTransfer   = "transfer"   // traslado entre bodegas (negativo en origen, positivo en destino)
)

// Tipos de documento de referencia (el documento que causó el movimiento).
const (
	ReferenceTypeAdjustment    = "stock_adjustment"
	ReferenceTypeTransfer      = "stock_transfer"
	ReferenceTypePurchaseOrder = "purchase_order"
	ReferenceTypeInvoice       = "invoice"
)

// StockMovement es una entrada inmutable del log de movimientos: un delta con signo
// que explica un cambio de QuantityOnHand. Para cada par producto+bodega, la suma
// de todos los movimientos debe igualar el on_hand actual.
type StockMovement struct {
	ID            string
	CompanyID     string
	ProductID     string
	WarehouseID   string
	Type          string          // purchase, sale, adjustment, transfer
	ReferenceType string          // documento causante (stock_adjustment, invoice, ...)
	ReferenceID   string
	Quantity      decimal.Decimal // delta con signo realmente aplicado al ledger
	UnitCost      decimal.Decimal
	MovementDate  time.Time
	CreatedAt     time.Time
	CreatedBy     string // UserID, opaco para auditoría
}
