package repository

import (
	"time"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// StockAdjustmentRepository define el puerto de persistencia para ajustes de inventario.
type StockAdjustmentRepository interface {
	Create(adjustment *entity.StockAdjustment) error
	CreateItem(item *entity.StockAdjustmentItem) error
	GetByID(id string) (*entity.StockAdjustment, error)
	// GetByIDForUpdate bloquea la cabecera para serializar transiciones de estado.
	GetByIDForUpdate(id string) (*entity.StockAdjustment, error)
	GetItems(adjustmentID string) ([]*entity.StockAdjustmentItem, error)
	UpdateStatus(id, status, actorID string, at time.Time) error
	List(companyID string, limit, offset int) ([]*entity.StockAdjustment, error)
}
