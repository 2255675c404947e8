package repository

import (
	"time"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// InvoiceReservationRepository define el puerto de persistencia para reservas de stock
// por factura. Las reservas activas son la fuente de verdad de cuánto puede liberar
// o consumir cada factura.
type InvoiceReservationRepository interface {
	Create(reservation *entity.InvoiceReservation) error
	// GetActiveByInvoice devuelve las reservas activas de una factura (vacío si no hay).
	GetActiveByInvoice(invoiceID string) ([]*entity.InvoiceReservation, error)
	UpdateStatus(id, status string, at time.Time) error
}
