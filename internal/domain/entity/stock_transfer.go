package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un traslado entre bodegas.
// pending -> in_transit (descuenta origen) -> completed (acredita destino).
// cancelled es válido desde pending e in_transit; desde in_transit se repone el origen.
const (
	TransferStatusPending   = "pending"
	TransferStatusInTransit = "in_transit"
	TransferStatusCompleted = "completed"
	TransferStatusCancelled = "cancelled"
)

// StockTransfer traslada cantidad entre dos bodegas distintas de la misma empresa.
type StockTransfer struct {
	ID              string
	CompanyID       string
	FromWarehouseID string
	ToWarehouseID   string
	Status          string
	Notes           string
	CreatedBy       string
	ProcessedBy     string
	ProcessedAt     *time.Time
	CompletedBy     string
	CompletedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// StockTransferItem línea del traslado. QuantityReceived se fija al completar y puede
// diferir de Quantity (merma o sobrante tolerados, no se reconcilian contra el origen).
type StockTransferItem struct {
	ID               string
	TransferID       string
	ProductID        string
	Quantity         decimal.Decimal // solicitada, descontada del origen al procesar
	QuantityReceived decimal.Decimal // real, acreditada al destino al completar
}
