package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

var _ repository.StockAdjustmentRepository = (*StockAdjustmentRepo)(nil)

// StockAdjustmentRepo implementación de StockAdjustmentRepository sobre PostgreSQL.
type StockAdjustmentRepo struct {
	q Querier
}

// NewStockAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAdjustmentRepository(q Querier) *StockAdjustmentRepo {
	return &StockAdjustmentRepo{q: q}
}

const adjustmentColumns = `id, company_id, warehouse_id, reason, status,
		created_by, approved_by, approved_at, created_at, updated_at`

// Create persiste la cabecera del ajuste.
func (r *StockAdjustmentRepo) Create(adjustment *entity.StockAdjustment) error {
	query := `
		INSERT INTO stock_adjustments (id, company_id, warehouse_id, reason, status,
			created_by, approved_by, approved_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		adjustment.ID, adjustment.CompanyID, adjustment.WarehouseID,
		adjustment.Reason, adjustment.Status, adjustment.CreatedBy,
		nullIfEmpty(adjustment.ApprovedBy), adjustment.ApprovedAt,
		adjustment.CreatedAt, adjustment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create adjustment: %w", err)
	}
	return nil
}

// CreateItem persiste una línea del ajuste.
func (r *StockAdjustmentRepo) CreateItem(item *entity.StockAdjustmentItem) error {
	query := `
		INSERT INTO stock_adjustment_items (id, adjustment_id, product_id,
			quantity_before, quantity_after, quantity_change)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.AdjustmentID, item.ProductID,
		item.QuantityBefore, item.QuantityAfter, item.QuantityChange,
	)
	if err != nil {
		return fmt.Errorf("create adjustment item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera por ID. Devuelve nil si no existe.
func (r *StockAdjustmentRepo) GetByID(id string) (*entity.StockAdjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM stock_adjustments WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByIDForUpdate obtiene la cabecera bloqueando la fila (serializa aprobar/cancelar).
func (r *StockAdjustmentRepo) GetByIDForUpdate(id string) (*entity.StockAdjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM stock_adjustments WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *StockAdjustmentRepo) scanOne(query string, args ...any) (*entity.StockAdjustment, error) {
	var a entity.StockAdjustment
	var approvedBy *string
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&a.ID, &a.CompanyID, &a.WarehouseID, &a.Reason, &a.Status,
		&a.CreatedBy, &approvedBy, &a.ApprovedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get adjustment: %w", err)
	}
	if approvedBy != nil {
		a.ApprovedBy = *approvedBy
	}
	return &a, nil
}

// GetItems lista las líneas de un ajuste.
func (r *StockAdjustmentRepo) GetItems(adjustmentID string) ([]*entity.StockAdjustmentItem, error) {
	query := `
		SELECT id, adjustment_id, product_id, quantity_before, quantity_after, quantity_change
		FROM stock_adjustment_items WHERE adjustment_id = $1 ORDER BY product_id`
	rows, err := r.q.Query(context.Background(), query, adjustmentID)
	if err != nil {
		return nil, fmt.Errorf("get adjustment items: %w", err)
	}
	defer rows.Close()
	var items []*entity.StockAdjustmentItem
	for rows.Next() {
		var it entity.StockAdjustmentItem
		if err := rows.Scan(&it.ID, &it.AdjustmentID, &it.ProductID,
			&it.QuantityBefore, &it.QuantityAfter, &it.QuantityChange); err != nil {
			return nil, fmt.Errorf("scan adjustment item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// UpdateStatus transiciona el ajuste y registra quién y cuándo (approved_by para approved).
func (r *StockAdjustmentRepo) UpdateStatus(id, status, actorID string, at time.Time) error {
	query := `
		UPDATE stock_adjustments
		SET status = $2,
		    approved_by = CASE WHEN $2 = 'approved' THEN $3 ELSE approved_by END,
		    approved_at = CASE WHEN $2 = 'approved' THEN $4 ELSE approved_at END,
		    updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status, actorID, at)
	if err != nil {
		return fmt.Errorf("update adjustment status: %w", err)
	}
	return nil
}

// List lista los ajustes de una empresa, más recientes primero.
func (r *StockAdjustmentRepo) List(companyID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	query := `
		SELECT ` + adjustmentColumns + `
		FROM stock_adjustments WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAdjustment
	for rows.Next() {
		var a entity.StockAdjustment
		var approvedBy *string
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.WarehouseID, &a.Reason, &a.Status,
			&a.CreatedBy, &approvedBy, &a.ApprovedAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		if approvedBy != nil {
			a.ApprovedBy = *approvedBy
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
