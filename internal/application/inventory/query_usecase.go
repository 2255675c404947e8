package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// QueryUseCase lecturas del ledger: saldos, movimientos y verificación de la
// invariante on_hand = sum(movements) por par producto+bodega.
type QueryUseCase struct {
	itemRepo      repository.InventoryItemRepository
	movRepo       repository.StockMovementRepository
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
}

// NewQueryUseCase construye el caso de uso con repos atados al pool (solo lectura).
func NewQueryUseCase(
	itemRepo repository.InventoryItemRepository,
	movRepo repository.StockMovementRepository,
	warehouseRepo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
) *QueryUseCase {
	return &QueryUseCase{
		itemRepo:      itemRepo,
		movRepo:       movRepo,
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
	}
}

// ReconciliationRow resultado de contrastar el saldo materializado contra el log.
type ReconciliationRow struct {
	ProductID   string
	OnHand      decimal.Decimal
	MovementSum decimal.Decimal
	Delta       decimal.Decimal
	Consistent  bool
}

// GetItem devuelve el saldo de un producto en una bodega.
func (uc *QueryUseCase) GetItem(_ context.Context, companyID, productID, warehouseID string) (*entity.InventoryItem, error) {
	if err := uc.checkWarehouse(companyID, warehouseID); err != nil {
		return nil, err
	}
	item, err := uc.itemRepo.Get(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// ListItems devuelve los saldos de una bodega.
func (uc *QueryUseCase) ListItems(_ context.Context, companyID, warehouseID string, limit, offset int) ([]*entity.InventoryItem, error) {
	if err := uc.checkWarehouse(companyID, warehouseID); err != nil {
		return nil, err
	}
	return uc.itemRepo.ListByWarehouse(companyID, warehouseID, limit, offset)
}

// ListMovementsByWarehouse lista movimientos de una bodega en un rango de fechas.
func (uc *QueryUseCase) ListMovementsByWarehouse(_ context.Context, companyID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	if err := uc.checkWarehouse(companyID, warehouseID); err != nil {
		return nil, err
	}
	return uc.movRepo.ListByWarehouse(warehouseID, from, to, limit, offset)
}

// ListMovementsByProduct lista movimientos de un producto en un rango de fechas.
func (uc *QueryUseCase) ListMovementsByProduct(_ context.Context, companyID, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return uc.movRepo.ListByProduct(productID, from, to, limit, offset)
}

// ReconcileWarehouse contrasta on_hand contra la suma de movimientos de cada par
// producto+bodega. Delta distinto de cero indica drift entre saldo y log.
func (uc *QueryUseCase) ReconcileWarehouse(_ context.Context, companyID, warehouseID string) ([]ReconciliationRow, error) {
	if err := uc.checkWarehouse(companyID, warehouseID); err != nil {
		return nil, err
	}
	items, err := uc.itemRepo.ListByWarehouse(companyID, warehouseID, 10000, 0)
	if err != nil {
		return nil, err
	}
	rows := make([]ReconciliationRow, 0, len(items))
	for _, item := range items {
		sum, err := uc.movRepo.SumByProductWarehouse(item.ProductID, warehouseID)
		if err != nil {
			return nil, err
		}
		delta := item.QuantityOnHand.Sub(sum)
		rows = append(rows, ReconciliationRow{
			ProductID:   item.ProductID,
			OnHand:      item.QuantityOnHand,
			MovementSum: sum,
			Delta:       delta,
			Consistent:  delta.IsZero(),
		})
	}
	return rows, nil
}

func (uc *QueryUseCase) checkWarehouse(companyID, warehouseID string) error {
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
	return nil
}
