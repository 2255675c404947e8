package repository

import (
	"time"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	CreateItem(item *entity.PurchaseOrderItem) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetByIDForUpdate bloquea la cabecera para serializar recepciones concurrentes.
	GetByIDForUpdate(id string) (*entity.PurchaseOrder, error)
	GetItems(orderID string) ([]*entity.PurchaseOrderItem, error)
	// AddItemReceived acumula cantidad recibida en una línea (recepciones parciales).
	AddItemReceived(itemID string, quantity decimal.Decimal) error
	UpdateStatusReceived(id string, receivedDate time.Time) error
	List(companyID string, limit, offset int) ([]*entity.PurchaseOrder, error)
}
