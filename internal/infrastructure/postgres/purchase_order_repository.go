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

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const purchaseOrderColumns = `id, company_id, vendor_id, number, status,
		order_date, received_date, created_by, created_at, updated_at`

// Create persiste la cabecera de la orden de compra.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, company_id, vendor_id, number, status,
			order_date, received_date, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.CompanyID, order.VendorID, order.Number, order.Status,
		order.OrderDate, order.ReceivedDate, order.CreatedBy,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create purchase order: número duplicado: %w", err)
		}
		return fmt.Errorf("create purchase order: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la orden.
func (r *PurchaseOrderRepo) CreateItem(item *entity.PurchaseOrderItem) error {
	query := `
		INSERT INTO purchase_order_items (id, purchase_order_id, product_id,
			quantity_ordered, quantity_received, unit_cost)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.PurchaseOrderID, item.ProductID,
		item.QuantityOrdered, item.QuantityReceived, item.UnitCost,
	)
	if err != nil {
		return fmt.Errorf("create purchase order item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera por ID. Devuelve nil si no existe.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByIDForUpdate obtiene la cabecera bloqueando la fila (serializa recepciones).
func (r *PurchaseOrderRepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *PurchaseOrderRepo) scanOne(query string, args ...any) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&o.ID, &o.CompanyID, &o.VendorID, &o.Number, &o.Status,
		&o.OrderDate, &o.ReceivedDate, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return &o, nil
}

// GetItems lista las líneas de una orden.
func (r *PurchaseOrderRepo) GetItems(orderID string) ([]*entity.PurchaseOrderItem, error) {
	query := `
		SELECT id, purchase_order_id, product_id, quantity_ordered, quantity_received, unit_cost
		FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY product_id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get purchase order items: %w", err)
	}
	defer rows.Close()
	var items []*entity.PurchaseOrderItem
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.PurchaseOrderID, &it.ProductID,
			&it.QuantityOrdered, &it.QuantityReceived, &it.UnitCost); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// AddItemReceived acumula cantidad recibida en una línea (recepciones parciales suman).
func (r *PurchaseOrderRepo) AddItemReceived(itemID string, quantity decimal.Decimal) error {
	query := `
		UPDATE purchase_order_items
		SET quantity_received = quantity_received + $2
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, itemID, quantity)
	if err != nil {
		return fmt.Errorf("add purchase order item received: %w", err)
	}
	return nil
}

// UpdateStatusReceived marca la orden como recibida y registra la fecha de recepción.
func (r *PurchaseOrderRepo) UpdateStatusReceived(id string, receivedDate time.Time) error {
	query := `
		UPDATE purchase_orders
		SET status = 'received', received_date = $2, updated_at = $2
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, receivedDate)
	if err != nil {
		return fmt.Errorf("update purchase order received: %w", err)
	}
	return nil
}

// List lista las órdenes de una empresa, más recientes primero.
func (r *PurchaseOrderRepo) List(companyID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `
		SELECT ` + purchaseOrderColumns + `
		FROM purchase_orders WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		if err := rows.Scan(&o.ID, &o.CompanyID, &o.VendorID, &o.Number, &o.Status,
			&o.OrderDate, &o.ReceivedDate, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
