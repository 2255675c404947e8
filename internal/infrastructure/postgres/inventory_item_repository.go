package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo implementación de InventoryItemRepository sobre PostgreSQL
// (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

const inventoryItemColumns = `id, company_id, product_id, warehouse_id,
		quantity_on_hand, quantity_reserved, quantity_available,
		last_stock_date, created_at, updated_at`

// Get obtiene el saldo de un producto en una bodega. Devuelve nil si no existe.
func (r *InventoryItemRepo) Get(productID, warehouseID string) (*entity.InventoryItem, error) {
	query := `
		SELECT ` + inventoryItemColumns + `
		FROM inventory_items WHERE product_id = $1 AND warehouse_id = $2`
	return r.scanOne(query, productID, warehouseID)
}

// GetForUpdate obtiene el saldo y bloquea la fila (SELECT FOR UPDATE). Devuelve nil si no existe.
func (r *InventoryItemRepo) GetForUpdate(productID, warehouseID string) (*entity.InventoryItem, error) {
	query := `
		SELECT ` + inventoryItemColumns + `
		FROM inventory_items WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	return r.scanOne(query, productID, warehouseID)
}

func (r *InventoryItemRepo) scanOne(query string, args ...any) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&it.ID, &it.CompanyID, &it.ProductID, &it.WarehouseID,
		&it.QuantityOnHand, &it.QuantityReserved, &it.QuantityAvailable,
		&it.LastStockDate, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return &it, nil
}

// Upsert inserta o actualiza el saldo (por producto y bodega, par único).
func (r *InventoryItemRepo) Upsert(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, company_id, product_id, warehouse_id,
			quantity_on_hand, quantity_reserved, quantity_available,
			last_stock_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity_on_hand = EXCLUDED.quantity_on_hand,
		              quantity_reserved = EXCLUDED.quantity_reserved,
		              quantity_available = EXCLUDED.quantity_available,
		              last_stock_date = EXCLUDED.last_stock_date,
		              updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CompanyID, item.ProductID, item.WarehouseID,
		item.QuantityOnHand, item.QuantityReserved, item.QuantityAvailable,
		item.LastStockDate, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert inventory item: %w", err)
	}
	return nil
}

// ListByWarehouse lista los saldos de una bodega.
func (r *InventoryItemRepo) ListByWarehouse(companyID, warehouseID string, limit, offset int) ([]*entity.InventoryItem, error) {
	query := `
		SELECT ` + inventoryItemColumns + `
		FROM inventory_items
		WHERE company_id = $1 AND warehouse_id = $2
		ORDER BY product_id
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, companyID, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		var it entity.InventoryItem
		if err := rows.Scan(
			&it.ID, &it.CompanyID, &it.ProductID, &it.WarehouseID,
			&it.QuantityOnHand, &it.QuantityReserved, &it.QuantityAvailable,
			&it.LastStockDate, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
