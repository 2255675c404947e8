package repository

import (
	"time"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockMovementRepository define el puerto del log de movimientos. Append-only:
// no hay Update ni Delete; las filas son inmutables una vez escritas.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	// SumByProductWarehouse suma los deltas de un par producto+bodega, para
	// verificar la invariante on_hand = sum(movements).
	SumByProductWarehouse(productID, warehouseID string) (decimal.Decimal, error)
}
