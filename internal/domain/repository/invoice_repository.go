package repository

import (
	"time"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para facturas de venta.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateItem(item *entity.InvoiceItem) error
	GetByID(id string) (*entity.Invoice, error)
	// GetByIDForUpdate bloquea la cabecera para serializar reservas y pagos concurrentes.
	GetByIDForUpdate(id string) (*entity.Invoice, error)
	GetItems(invoiceID string) ([]*entity.InvoiceItem, error)
	UpdateStatus(id, status string, at time.Time) error
	List(companyID string, limit, offset int) ([]*entity.Invoice, error)
}
