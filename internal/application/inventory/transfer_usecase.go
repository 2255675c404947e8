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

// TransferUseCase maneja traslados entre bodegas:
// pending -> in_transit (process descuenta el origen) -> completed (complete acredita
// el destino con la cantidad realmente recibida). cancel es válido desde pending
// (sin efecto en ledger) y desde in_transit (repone el origen con movimientos de reversa).
type TransferUseCase struct {
	txRunner      TxRunner
	store         *ledger.Store
	recorder      *ledger.Recorder
	transferRepo  repository.StockTransferRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	txRunner TxRunner,
	store *ledger.Store,
	recorder *ledger.Recorder,
	transferRepo repository.StockTransferRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:      txRunner,
		store:         store,
		recorder:      recorder,
		transferRepo:  transferRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// TransferLineInput línea de traslado: cantidad solicitada por producto.
type TransferLineInput struct {
	ProductID string
	Quantity  decimal.Decimal
}

// CreateTransferInput entrada para crear un traslado en pending.
type CreateTransferInput struct {
	FromWarehouseID string
	ToWarehouseID   string
	Notes           string
	Lines           []TransferLineInput
}

// ReceivedLineInput cantidad realmente recibida por línea al completar. Puede diferir
// de la solicitada (merma u sobrante en tránsito).
type ReceivedLineInput struct {
	ItemID           string
	QuantityReceived decimal.Decimal
}

// Create persiste el traslado en pending. Origen y destino deben ser bodegas
// distintas de la misma empresa. No toca el ledger.
func (uc *TransferUseCase) Create(ctx context.Context, companyID, userID string, in CreateTransferInput) (*entity.StockTransfer, error) {
	if in.FromWarehouseID == "" || in.ToWarehouseID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.FromWarehouseID == in.ToWarehouseID {
		return nil, domain.ErrInvalidInput
	}
	fromWh, err := uc.warehouseRepo.GetByID(in.FromWarehouseID)
	if err != nil {
		return nil, err
	}
	toWh, err := uc.warehouseRepo.GetByID(in.ToWarehouseID)
	if err != nil {
		return nil, err
	}
	if fromWh == nil || toWh == nil {
		return nil, domain.ErrNotFound
	}
	if fromWh.CompanyID != companyID || toWh.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	for _, line := range in.Lines {
		if line.ProductID == "" || !line.Quantity.GreaterThan(decimal.Zero) {
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
	transfer := &entity.StockTransfer{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Status:          entity.TransferStatusPending,
		Notes:           in.Notes,
		CreatedBy:       userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = uc.txRunner.RunTransfer(ctx, func(
		_ repository.InventoryItemRepository,
		_ repository.StockMovementRepository,
		transferRepo repository.StockTransferRepository,
	) error {
		if err := transferRepo.Create(transfer); err != nil {
			return err
		}
		for _, line := range in.Lines {
			item := &entity.StockTransferItem{
				ID:         uuid.New().String(),
				TransferID: transfer.ID,
				ProductID:  line.ProductID,
				Quantity:   line.Quantity,
			}
			if err := transferRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transfer, nil
}

// Process descuenta la cantidad solicitada del origen por cada línea, registra un
// movimiento `transfer` negativo en el origen y pasa la cabecera a in_transit.
// Falla con ErrInsufficientStock si el origen no cubre alguna línea; el rollback
// garantiza que no queda descuento parcial.
func (uc *TransferUseCase) Process(ctx context.Context, companyID, userID, transferID string) error {
	now := time.Now()
	return uc.txRunner.RunTransfer(ctx, func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.StockMovementRepository,
		transferRepo repository.StockTransferRepository,
	) error {
		transfer, err := transferRepo.GetByIDForUpdate(transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if transfer.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if transfer.Status != entity.TransferStatusPending {
			return domain.ErrInvalidState
		}
		items, err := transferRepo.GetItems(transfer.ID)
		if err != nil {
			return err
		}
		for _, item := range items {
			// Bloquea la fila origen y valida antes de aplicar el débito.
			stock, err := uc.store.Lock(itemRepo, item.ProductID, transfer.FromWarehouseID)
			if err != nil {
				return err
			}
			if stock == nil {
				return domain.ErrNotFound
			}
			if stock.QuantityOnHand.LessThan(item.Quantity) || stock.QuantityAvailable.LessThan(item.Quantity) {
				return domain.ErrInsufficientStock
			}
			if _, err := uc.store.Apply(itemRepo, stock, transfer.CompanyID, item.ProductID, transfer.FromWarehouseID, item.Quantity.Neg(), decimal.Zero, now); err != nil {
				return err
			}
			if err := uc.recorder.Record(movRepo, ledger.MovementInput{
				CompanyID:     transfer.CompanyID,
				ProductID:     item.ProductID,
				WarehouseID:   transfer.FromWarehouseID,
				Type:          entity.MovementTypeTransfer,
				ReferenceType: entity.ReferenceTypeTransfer,
				ReferenceID:   transfer.ID,
				Quantity:      item.Quantity.Neg(),
				MovementDate:  now,
				CreatedBy:     userID,
			}); err != nil {
				return err
			}
		}
		return transferRepo.UpdateStatus(transfer.ID, entity.TransferStatusInTransit, userID, now)
	})
}

// Complete fija quantity_received por línea, acredita el destino por esa cantidad
// (creando la fila si no existe), registra un movimiento `transfer` positivo en el
// destino y deja la cabecera en completed. La cantidad recibida puede diferir de la
// solicitada; la diferencia no se reconcilia contra el origen.
func (uc *TransferUseCase) Complete(ctx context.Context, companyID, userID, transferID string, received []ReceivedLineInput) error {
	now := time.Now()
	return uc.txRunner.RunTransfer(ctx, func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.StockMovementRepository,
		transferRepo repository.StockTransferRepository,
	) error {
		transfer, err := transferRepo.GetByIDForUpdate(transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if transfer.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if transfer.Status != entity.TransferStatusInTransit {
			return domain.ErrInvalidState
		}
		items, err := transferRepo.GetItems(transfer.ID)
		if err != nil {
			return err
		}
		itemsByID := make(map[string]*entity.StockTransferItem, len(items))
		for _, item := range items {
			itemsByID[item.ID] = item
		}
		for _, line := range received {
			item, ok := itemsByID[line.ItemID]
			if !ok {
				return domain.ErrNotFound
			}
			if line.QuantityReceived.IsNegative() {
				return domain.ErrInvalidInput
			}
			if err := transferRepo.UpdateItemReceived(item.ID, line.QuantityReceived); err != nil {
				return err
			}
			if line.QuantityReceived.IsZero() {
				continue
			}
			if _, err := uc.store.ApplyDelta(itemRepo, transfer.CompanyID, item.ProductID, transfer.ToWarehouseID, line.QuantityReceived, decimal.Zero, now); err != nil {
				return err
			}
			if err := uc.recorder.Record(movRepo, ledger.MovementInput{
				CompanyID:     transfer.CompanyID,
				ProductID:     item.ProductID,
				WarehouseID:   transfer.ToWarehouseID,
				Type:          entity.MovementTypeTransfer,
				ReferenceType: entity.ReferenceTypeTransfer,
				ReferenceID:   transfer.ID,
				Quantity:      line.QuantityReceived,
				MovementDate:  now,
				CreatedBy:     userID,
			}); err != nil {
				return err
			}
		}
		return transferRepo.UpdateStatus(transfer.ID, entity.TransferStatusCompleted, userID, now)
	})
}

// Cancel anula el traslado. Desde pending no hay efecto en el ledger. Desde
// in_transit el origen ya fue debitado, así que se repone la cantidad solicitada
// con movimientos de reversa para no dejar stock varado. Desde estados terminales
// falla con ErrInvalidState.
func (uc *TransferUseCase) Cancel(ctx context.Context, companyID, userID, transferID string) error {
	now := time.Now()
	return uc.txRunner.RunTransfer(ctx, func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.StockMovementRepository,
		transferRepo repository.StockTransferRepository,
	) error {
		transfer, err := transferRepo.GetByIDForUpdate(transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if transfer.CompanyID != companyID {
			return domain.ErrForbidden
		}
		switch transfer.Status {
		case entity.TransferStatusPending:
			// sin efecto en ledger
		case entity.TransferStatusInTransit:
			items, err := transferRepo.GetItems(transfer.ID)
			if err != nil {
				return err
			}
			for _, item := range items {
				if _, err := uc.store.ApplyDelta(itemRepo, transfer.CompanyID, item.ProductID, transfer.FromWarehouseID, item.Quantity, decimal.Zero, now); err != nil {
					return err
				}
				if err := uc.recorder.Record(movRepo, ledger.MovementInput{
					CompanyID:     transfer.CompanyID,
					ProductID:     item.ProductID,
					WarehouseID:   transfer.FromWarehouseID,
					Type:          entity.MovementTypeTransfer,
					ReferenceType: entity.ReferenceTypeTransfer,
					ReferenceID:   transfer.ID,
					Quantity:      item.Quantity,
					MovementDate:  now,
					CreatedBy:     userID,
				}); err != nil {
					return err
				}
			}
		default:
			return domain.ErrInvalidState
		}
		return transferRepo.UpdateStatus(transfer.ID, entity.TransferStatusCancelled, userID, now)
	})
}

// GetByID devuelve el traslado con sus líneas.
func (uc *TransferUseCase) GetByID(_ context.Context, companyID, transferID string) (*entity.StockTransfer, []*entity.StockTransferItem, error) {
	transfer, err := uc.transferRepo.GetByID(transferID)
	if err != nil {
		return nil, nil, err
	}
	if transfer == nil {
		return nil, nil, domain.ErrNotFound
	}
	if transfer.CompanyID != companyID {
		return nil, nil, domain.ErrForbidden
	}
	items, err := uc.transferRepo.GetItems(transfer.ID)
	if err != nil {
		return nil, nil, err
	}
	return transfer, items, nil
}

// List devuelve los traslados de la empresa.
func (uc *TransferUseCase) List(_ context.Context, companyID string, limit, offset int) ([]*entity.StockTransfer, error) {
	return uc.transferRepo.List(companyID, limit, offset)
}
