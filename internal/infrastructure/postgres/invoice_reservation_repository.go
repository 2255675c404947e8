package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

var _ repository.InvoiceReservationRepository = (*InvoiceReservationRepo)(nil)

// InvoiceReservationRepo implementación de InvoiceReservationRepository sobre PostgreSQL.
type InvoiceReservationRepo struct {
	q Querier
}

// NewInvoiceReservationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceReservationRepository(q Querier) *InvoiceReservationRepo {
	return &InvoiceReservationRepo{q: q}
}

// Create persiste una reserva de stock.
func (r *InvoiceReservationRepo) Create(reservation *entity.InvoiceReservation) error {
	query := `
		INSERT INTO invoice_reservations (id, company_id, invoice_id, product_id,
			warehouse_id, quantity, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		reservation.ID, reservation.CompanyID, reservation.InvoiceID,
		reservation.ProductID, reservation.WarehouseID, reservation.Quantity,
		reservation.Status, reservation.CreatedAt, reservation.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

// GetActiveByInvoice devuelve las reservas activas de una factura (vacío si no hay).
func (r *InvoiceReservationRepo) GetActiveByInvoice(invoiceID string) ([]*entity.InvoiceReservation, error) {
	query := `
		SELECT id, company_id, invoice_id, product_id, warehouse_id, quantity, status,
			created_at, updated_at
		FROM invoice_reservations
		WHERE invoice_id = $1 AND status = 'active'
		ORDER BY product_id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get active reservations: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceReservation
	for rows.Next() {
		var res entity.InvoiceReservation
		if err := rows.Scan(&res.ID, &res.CompanyID, &res.InvoiceID, &res.ProductID,
			&res.WarehouseID, &res.Quantity, &res.Status, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		list = append(list, &res)
	}
	return list, rows.Err()
}

// UpdateStatus marca la reserva como released o consumed.
func (r *InvoiceReservationRepo) UpdateStatus(id, status string, at time.Time) error {
	query := `UPDATE invoice_reservations SET status = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status, at)
	if err != nil {
		return fmt.Errorf("update reservation status: %w", err)
	}
	return nil
}
