package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.StockTransferRepository = (*StockTransferRepo)(nil)

// StockTransferRepo implementación de StockTransferRepository sobre PostgreSQL.
type StockTransferRepo struct {
	q Querier
}

// NewStockTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransferRepository(q Querier) *StockTransferRepo {
	return &StockTransferRepo{q: q}
}

const transferColumns = `id, company_id, from_warehouse_id, to_warehouse_id, status, notes,
		created_by, processed_by, processed_at, completed_by, completed_at, created_at, updated_at`

// Create persiste la cabecera del traslado.
func (r *StockTransferRepo) Create(transfer *entity.StockTransfer) error {
	query := `
		INSERT INTO stock_transfers (id, company_id, from_warehouse_id, to_warehouse_id,
			status, notes, created_by, processed_by, processed_at, completed_by, completed_at,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.CompanyID, transfer.FromWarehouseID, transfer.ToWarehouseID,
		transfer.Status, transfer.Notes, transfer.CreatedBy,
		nullIfEmpty(transfer.ProcessedBy), transfer.ProcessedAt,
		nullIfEmpty(transfer.CompletedBy), transfer.CompletedAt,
		transfer.CreatedAt, transfer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create transfer: %w", err)
	}
	return nil
}

// CreateItem persiste una línea del traslado.
func (r *StockTransferRepo) CreateItem(item *entity.StockTransferItem) error {
	query := `
		INSERT INTO stock_transfer_items (id, transfer_id, product_id, quantity, quantity_received)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.TransferID, item.ProductID, item.Quantity, item.QuantityReceived,
	)
	if err != nil {
		return fmt.Errorf("create transfer item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera por ID. Devuelve nil si no existe.
func (r *StockTransferRepo) GetByID(id string) (*entity.StockTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM stock_transfers WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByIDForUpdate obtiene la cabecera bloqueando la fila (serializa procesar/completar/cancelar).
func (r *StockTransferRepo) GetByIDForUpdate(id string) (*entity.StockTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM stock_transfers WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *StockTransferRepo) scanOne(query string, args ...any) (*entity.StockTransfer, error) {
	var t entity.StockTransfer
	var processedBy, completedBy *string
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&t.ID, &t.CompanyID, &t.FromWarehouseID, &t.ToWarehouseID, &t.Status, &t.Notes,
		&t.CreatedBy, &processedBy, &t.ProcessedAt, &completedBy, &t.CompletedAt,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	if processedBy != nil {
		t.ProcessedBy = *processedBy
	}
	if completedBy != nil {
		t.CompletedBy = *completedBy
	}
	return &t, nil
}

// GetItems lista las líneas de un traslado.
func (r *StockTransferRepo) GetItems(transferID string) ([]*entity.StockTransferItem, error) {
	query := `
		SELECT id, transfer_id, product_id, quantity, quantity_received
		FROM stock_transfer_items WHERE transfer_id = $1 ORDER BY product_id`
	rows, err := r.q.Query(context.Background(), query, transferID)
	if err != nil {
		return nil, fmt.Errorf("get transfer items: %w", err)
	}
	defer rows.Close()
	var items []*entity.StockTransferItem
	for rows.Next() {
		var it entity.StockTransferItem
		if err := rows.Scan(&it.ID, &it.TransferID, &it.ProductID,
			&it.Quantity, &it.QuantityReceived); err != nil {
			return nil, fmt.Errorf("scan transfer item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// UpdateStatus transiciona el traslado y registra quién y cuándo según el estado destino.
func (r *StockTransferRepo) UpdateStatus(id, status, actorID string, at time.Time) error {
	query := `
		UPDATE stock_transfers
		SET status = $2,
		    processed_by = CASE WHEN $2 = 'in_transit' THEN $3 ELSE processed_by END,
		    processed_at = CASE WHEN $2 = 'in_transit' THEN $4 ELSE processed_at END,
		    completed_by = CASE WHEN $2 = 'completed' THEN $3 ELSE completed_by END,
		    completed_at = CASE WHEN $2 = 'completed' THEN $4 ELSE completed_at END,
		    updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status, actorID, at)
	if err != nil {
		return fmt.Errorf("update transfer status: %w", err)
	}
	return nil
}

// UpdateItemReceived fija la cantidad realmente recibida de una línea al completar.
func (r *StockTransferRepo) UpdateItemReceived(itemID string, quantityReceived decimal.Decimal) error {
	query := `UPDATE stock_transfer_items SET quantity_received = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, itemID, quantityReceived)
	if err != nil {
		return fmt.Errorf("update transfer item received: %w", err)
	}
	return nil
}

// List lista los traslados de una empresa, más recientes primero.
func (r *StockTransferRepo) List(companyID string, limit, offset int) ([]*entity.StockTransfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM stock_transfers WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockTransfer
	for rows.Next() {
		var t entity.StockTransfer
		var processedBy, completedBy *string
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.FromWarehouseID, &t.ToWarehouseID,
			&t.Status, &t.Notes, &t.CreatedBy, &processedBy, &t.ProcessedAt,
			&completedBy, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		if processedBy != nil {
			t.ProcessedBy = *processedBy
		}
		if completedBy != nil {
			t.CompletedBy = *completedBy
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
