package inventory

import (
	"context"

	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Cada operación de workflow (approve, process, complete, receive,
// reserve, release, pay) corre completa dentro de una sola transacción: lecturas del
// ledger, escrituras y movimientos comparten Commit o Rollback; nunca queda aplicación
// parcial entre líneas de un mismo documento.
type TxRunner interface {
	RunAdjustment(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.StockMovementRepository,
		adjRepo repository.StockAdjustmentRepository,
	) error) error

	RunTransfer(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.StockMovementRepository,
		transferRepo repository.StockTransferRepository,
	) error) error

	RunReceiving(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.StockMovementRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error) error

	RunFulfillment(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.StockMovementRepository,
		invoiceRepo repository.InvoiceRepository,
		reservationRepo repository.InvoiceReservationRepository,
	) error) error
}
