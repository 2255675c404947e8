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

// AdjustmentUseCase maneja el ciclo de vida de los ajustes de inventario:
// draft -> approved (única transición que muta el ledger) o draft -> cancelled.
// Ambos estados finales son terminales; re-aprobar o cancelar un documento
// no-draft falla con ErrInvalidState en lugar de ser no-op.
type AdjustmentUseCase struct {
	txRunner      TxRunner
	store         *ledger.Store
	recorder      *ledger.Recorder
	adjRepo       repository.StockAdjustmentRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(
	txRunner TxRunner,
	store *ledger.Store,
	recorder *ledger.Recorder,
	adjRepo repository.StockAdjustmentRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *AdjustmentUseCase {
	return &AdjustmentUseCase{
		txRunner:      txRunner,
		store:         store,
		recorder:      recorder,
		adjRepo:       adjRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// AdjustmentLineInput línea de un ajuste: corrige el on_hand del producto al valor
// absoluto QuantityAfter. QuantityChange se calcula aquí, no lo envía el caller.
type AdjustmentLineInput struct {
	ProductID      string
	QuantityBefore decimal.Decimal
	QuantityAfter  decimal.Decimal
}

// CreateAdjustmentInput entrada para crear un ajuste en borrador.
type CreateAdjustmentInput struct {
	WarehouseID string
	Reason      string
	Lines       []AdjustmentLineInput
}

// Create persiste el ajuste en draft con una línea por producto. No toca el ledger.
func (uc *AdjustmentUseCase) Create(ctx context.Context, companyID, userID string, in CreateAdjustmentInput) (*entity.StockAdjustment, error) {
	if in.WarehouseID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	wh, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	if wh.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	for _, line := range in.Lines {
		if line.ProductID == "" || line.QuantityBefore.IsNegative() || line.QuantityAfter.IsNegative() {
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
	adj := &entity.StockAdjustment{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		WarehouseID: in.WarehouseID,
		Reason:      in.Reason,
		Status:      entity.AdjustmentStatusDraft,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = uc.txRunner.RunAdjustment(ctx, func(
		_ repository.InventoryItemRepository,
		_ repository.StockMovementRepository,
		adjRepo repository.StockAdjustmentRepository,
	) error {
		if err := adjRepo.Create(adj); err != nil {
			return err
		}
		for _, line := range in.Lines {
			item := &entity.StockAdjustmentItem{
				ID:             uuid.New().String(),
				AdjustmentID:   adj.ID,
				ProductID:      line.ProductID,
				QuantityBefore: line.QuantityBefore,
				QuantityAfter:  line.QuantityAfter,
				QuantityChange: line.QuantityAfter.Sub(line.QuantityBefore),
			}
			if err := adjRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return adj, nil
}

// Approve aplica el ajuste: por cada línea fija on_hand = quantity_after (valor
// absoluto, no delta) vía el store, registra un movimiento `adjustment` con el
// delta realmente aplicado y deja la cabecera en approved. Todo en una transacción.
func (uc *AdjustmentUseCase) Approve(ctx context.Context, companyID, userID, adjustmentID string) error {
	now := time.Now()
	return uc.txRunner.RunAdjustment(ctx, func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.StockMovementRepository,
		adjRepo repository.StockAdjustmentRepository,
	) error {
		adj, err := adjRepo.GetByIDForUpdate(adjustmentID)
		if err != nil {
			return err
		}
		if adj == nil {
			return domain.ErrNotFound
		}
		if adj.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if adj.Status != entity.AdjustmentStatusDraft {
			return domain.ErrInvalidState
		}
		items, err := adjRepo.GetItems(adj.ID)
		if err != nil {
			return err
		}
		for _, item := range items {
			delta, err := uc.store.SetOnHand(itemRepo, adj.CompanyID, item.ProductID, adj.WarehouseID, item.QuantityAfter, now)
			if err != nil {
				return err
			}
			// Sin drift del ledger, delta == quantity_change de la línea.
			if delta.IsZero() {
				continue
			}
			if err := uc.recorder.Record(movRepo, ledger.MovementInput{
				CompanyID:     adj.CompanyID,
				ProductID:     item.ProductID,
				WarehouseID:   adj.WarehouseID,
				Type:          entity.MovementTypeAdjustment,
				ReferenceType: entity.ReferenceTypeAdjustment,
				ReferenceID:   adj.ID,
				Quantity:      delta,
				MovementDate:  now,
				CreatedBy:     userID,
			}); err != nil {
				return err
			}
		}
		return adjRepo.UpdateStatus(adj.ID, entity.AdjustmentStatusApproved, userID, now)
	})
}

// Cancel marca el ajuste como cancelled, sin efecto en el ledger. Solo es válido
// desde draft: un ajuste aprobado ya mutó saldos y cancelarlo sin reversa dejaría
// el ledger desincronizado.
func (uc *AdjustmentUseCase) Cancel(ctx context.Context, companyID, userID, adjustmentID string) error {
	now := time.Now()
	return uc.txRunner.RunAdjustment(ctx, func(
		_ repository.InventoryItemRepository,
		_ repository.StockMovementRepository,
		adjRepo repository.StockAdjustmentRepository,
	) error {
		adj, err := adjRepo.GetByIDForUpdate(adjustmentID)
		if err != nil {
			return err
		}
		if adj == nil {
			return domain.ErrNotFound
		}
		if adj.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if adj.Status != entity.AdjustmentStatusDraft {
			return domain.ErrInvalidState
		}
		return adjRepo.UpdateStatus(adj.ID, entity.AdjustmentStatusCancelled, userID, now)
	})
}

// GetByID devuelve el ajuste con sus líneas.
func (uc *AdjustmentUseCase) GetByID(_ context.Context, companyID, adjustmentID string) (*entity.StockAdjustment, []*entity.StockAdjustmentItem, error) {
	adj, err := uc.adjRepo.GetByID(adjustmentID)
	if err != nil {
		return nil, nil, err
	}
	if adj == nil {
		return nil, nil, domain.ErrNotFound
	}
	if adj.CompanyID != companyID {
		return nil, nil, domain.ErrForbidden
	}
	items, err := uc.adjRepo.GetItems(adj.ID)
	if err != nil {
		return nil, nil, err
	}
	return adj, items, nil
}

// List devuelve los ajustes de la empresa.
func (uc *AdjustmentUseCase) List(_ context.Context, companyID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	return uc.adjRepo.List(companyID, limit, offset)
}
