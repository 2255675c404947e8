package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stockledger-api/internal/application/ledger"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReceivingUseCase aplica recepciones de órdenes de compra al ledger. Receive puede
// invocarse varias veces sobre la misma orden: cada llamada acumula quantity_received
// en las líneas entregadas, acredita la bodega y registra un movimiento `purchase`
// por línea con el costo unitario de la línea.
type ReceivingUseCase struct {
	txRunner      TxRunner
	store         *ledger.Store
	recorder      *ledger.Recorder
	orderRepo     repository.PurchaseOrderRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewReceivingUseCase construye el caso de uso.
func NewReceivingUseCase(
	txRunner TxRunner,
	store *ledger.Store,
	recorder *ledger.Recorder,
	orderRepo repository.PurchaseOrderRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *ReceivingUseCase {
	return &ReceivingUseCase{
		txRunner:      txRunner,
		store:         store,
		recorder:      recorder,
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// OrderLineInput línea de una orden de compra nueva.
type OrderLineInput struct {
	ProductID       string
	QuantityOrdered decimal.Decimal
	UnitCost        decimal.Decimal
}

// CreateOrderInput entrada para crear una orden de compra en draft.
type CreateOrderInput struct {
	VendorID  string
	Number    string
	OrderDate time.Time
	Lines     []OrderLineInput
}

// ReceiveLineInput cantidad entregada en esta recepción para una línea de la orden.
type ReceiveLineInput struct {
	ItemID   string
	Quantity decimal.Decimal
}

// Create persiste la orden en draft con sus líneas. No toca el ledger.
func (uc *ReceivingUseCase) Create(ctx context.Context, companyID, userID string, in CreateOrderInput) (*entity.PurchaseOrder, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Lines {
		if line.ProductID == "" || !line.QuantityOrdered.GreaterThan(decimal.Zero) || line.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if product.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
	}

	now := time.Now()
	orderDate := in.OrderDate
	if orderDate.IsZero() {
		orderDate = now
	}
	order := &entity.PurchaseOrder{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		VendorID:  in.VendorID,
		Number:    in.Number,
		Status:    entity.PurchaseOrderStatusDraft,
		OrderDate: orderDate,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := uc.txRunner.RunReceiving(ctx, func(
		_ repository.InventoryItemRepository,
		_ repository.StockMovementRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for _, line := range in.Lines {
			item := &entity.PurchaseOrderItem{
				ID:               uuid.New().String(),
				PurchaseOrderID:  order.ID,
				ProductID:        line.ProductID,
				QuantityOrdered:  line.QuantityOrdered,
				QuantityReceived: decimal.Zero,
				UnitCost:         line.UnitCost,
			}
			if err := orderRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Receive aplica una entrega (posiblemente parcial) a la bodega indicada. Las líneas
// omitidas no se tocan; la cantidad acumulada no se limita a la ordenada. Deja la
// cabecera en received con received_date de esta entrega. Una orden cancelada no
// admite recepciones.
func (uc *ReceivingUseCase) Receive(ctx context.Context, companyID, userID, orderID, warehouseID string, lines []ReceiveLineInput) error {
	if warehouseID == "" || len(lines) == 0 {
		return domain.ErrInvalidInput
	}
	wh, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return err
	}
	if wh == nil {
		return domain.ErrNotFound
	}
	if wh.CompanyID != companyID {
		return domain.ErrForbidden
	}

	now := time.Now()
	return uc.txRunner.RunReceiving(ctx, func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.StockMovementRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if order.Status == entity.PurchaseOrderStatusCancelled {
			return domain.ErrInvalidState
		}
		items, err := orderRepo.GetItems(order.ID)
		if err != nil {
			return err
		}
		itemsByID := make(map[string]*entity.PurchaseOrderItem, len(items))
		for _, item := range items {
			itemsByID[item.ID] = item
		}
		for _, line := range lines {
			item, ok := itemsByID[line.ItemID]
			if !ok {
				return domain.ErrNotFound
			}
			if !line.Quantity.GreaterThan(decimal.Zero) {
				return domain.ErrInvalidInput
			}
			if err := orderRepo.AddItemReceived(item.ID, line.Quantity); err != nil {
				return err
			}
			if _, err := uc.store.ApplyDelta(itemRepo, order.CompanyID, item.ProductID, warehouseID, line.Quantity, decimal.Zero, now); err != nil {
				return err
			}
			if err := uc.recorder.Record(movRepo, ledger.MovementInput{
				CompanyID:     order.CompanyID,
				ProductID:     item.ProductID,
				WarehouseID:   warehouseID,
				Type:          entity.MovementTypePurchase,
				ReferenceType: entity.ReferenceTypePurchaseOrder,
				ReferenceID:   order.ID,
				Quantity:      line.Quantity,
				UnitCost:      item.UnitCost,
				MovementDate:  now,
				CreatedBy:     userID,
			}); err != nil {
				return err
			}
		}
		return orderRepo.UpdateStatusReceived(order.ID, now)
	})
}

// GetByID devuelve la orden con sus líneas.
func (uc *ReceivingUseCase) GetByID(_ context.Context, companyID, orderID string) (*entity.PurchaseOrder, []*entity.PurchaseOrderItem, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, domain.ErrNotFound
	}
	if order.CompanyID != companyID {
		return nil, nil, domain.ErrForbidden
	}
	items, err := uc.orderRepo.GetItems(order.ID)
	if err != nil {
		return nil, nil, err
	}
	return order, items, nil
}

// List devuelve las órdenes de la empresa.
func (uc *ReceivingUseCase) List(_ context.Context, companyID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return uc.orderRepo.List(companyID, limit, offset)
}
