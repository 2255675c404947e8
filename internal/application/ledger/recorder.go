package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Recorder agrega entradas al log de movimientos. Append puro: nunca muta filas
// pasadas. Se invoca siempre en la misma transacción que la mutación del ledger,
// con Quantity igual al delta realmente aplicado (no al solicitado, si difieren,
// p. ej. en recepciones parciales).
type Recorder struct{}

// NewRecorder construye el recorder de movimientos.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// MovementInput datos de un movimiento a registrar.
type MovementInput struct {
	CompanyID     string
	ProductID     string
	WarehouseID   string
	Type          string // purchase, sale, adjustment, transfer
	ReferenceType string
	ReferenceID   string
	Quantity      decimal.Decimal // delta con signo aplicado al on_hand
	UnitCost      decimal.Decimal
	MovementDate  time.Time
	CreatedBy     string
}

// Record persiste el movimiento. Un movimiento de cantidad cero no explica ningún
// cambio de saldo y se rechaza como entrada inválida.
func (r *Recorder) Record(movRepo repository.StockMovementRepository, in MovementInput) error {
	if in.Quantity.IsZero() {
		return domain.ErrInvalidInput
	}
	switch in.Type {
	case entity.MovementTypePurchase, entity.MovementTypeSale, entity.MovementTypeAdjustment, entity.MovementTypeTransfer:
	default:
		return domain.ErrInvalidInput
	}
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		CompanyID:     in.CompanyID,
		ProductID:     in.ProductID,
		WarehouseID:   in.WarehouseID,
		Type:          in.Type,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		Quantity:      in.Quantity,
		UnitCost:      in.UnitCost,
		MovementDate:  in.MovementDate,
		CreatedAt:     in.MovementDate,
		CreatedBy:     in.CreatedBy,
	}
	return movRepo.Create(mov)
}
