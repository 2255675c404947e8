package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Cada variante
// construye los repositorios que necesita el workflow, atados a la misma tx, de modo
// que mutaciones del ledger, cambios de documento y movimientos comparten
// Commit/Rollback (atomicidad por operación, sin aplicación parcial entre líneas).
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAdjustment transacción para crear/aprobar/cancelar ajustes.
func (r *TxRunner) RunAdjustment(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	movRepo repository.StockMovementRepository,
	adjRepo repository.StockAdjustmentRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewInventoryItemRepository(tx), NewStockMovementRepository(tx), NewStockAdjustmentRepository(tx))
	})
}

// RunTransfer transacción para crear/procesar/completar/cancelar traslados.
func (r *TxRunner) RunTransfer(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	movRepo repository.StockMovementRepository,
	transferRepo repository.StockTransferRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewInventoryItemRepository(tx), NewStockMovementRepository(tx), NewStockTransferRepository(tx))
	})
}

// RunReceiving transacción para crear/recibir órdenes de compra.
func (r *TxRunner) RunReceiving(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	movRepo repository.StockMovementRepository,
	orderRepo repository.PurchaseOrderRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewInventoryItemRepository(tx), NewStockMovementRepository(tx), NewPurchaseOrderRepository(tx))
	})
}

// RunFulfillment transacción para reservar/liberar/pagar facturas.
func (r *TxRunner) RunFulfillment(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	movRepo repository.StockMovementRepository,
	invoiceRepo repository.InvoiceRepository,
	reservationRepo repository.InvoiceReservationRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewInventoryItemRepository(tx), NewStockMovementRepository(tx), NewInvoiceRepository(tx), NewInvoiceReservationRepository(tx))
	})
}
