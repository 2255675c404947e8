package repository

import (
	"time"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockTransferRepository define el puerto de persistencia para traslados entre bodegas.
type StockTransferRepository interface {
	Create(transfer *entity.StockTransfer) error
	CreateItem(item *entity.StockTransferItem) error
	GetByID(id string) (*entity.StockTransfer, error)
	// GetByIDForUpdate bloquea la cabecera para serializar transiciones de estado.
	GetByIDForUpdate(id string) (*entity.StockTransfer, error)
	GetItems(transferID string) ([]*entity.StockTransferItem, error)
	UpdateStatus(id, status, actorID string, at time.Time) error
	UpdateItemReceived(itemID string, quantityReceived decimal.Decimal) error
	List(companyID string, limit, offset int) ([]*entity.StockTransfer, error)
}
