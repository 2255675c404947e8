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

// FulfillmentUseCase reconcilia facturas contra el ledger: consulta disponibilidad,
// reserva available -> reserved, libera reservas y consume stock al pagar.
// Las reservas se registran por factura en invoice_reservations; release y pay operan
// solo sobre reservas activas, de modo que reserved nunca puede quedar negativa.
type FulfillmentUseCase struct {
	txRunner        TxRunner
	store           *ledger.Store
	recorder        *ledger.Recorder
	invoiceRepo     repository.InvoiceRepository
	reservationRepo repository.InvoiceReservationRepository
	itemRepo        repository.InventoryItemRepository
	productRepo     repository.ProductRepository
	warehouseRepo   repository.WarehouseRepository
}

// NewFulfillmentUseCase construye el caso de uso. Los repos recibidos aquí van atados
// al pool y solo se usan para lecturas fuera de transacción; las mutaciones corren
// sobre los repos que entrega el TxRunner.
func NewFulfillmentUseCase(
	txRunner TxRunner,
	store *ledger.Store,
	recorder *ledger.Recorder,
	invoiceRepo repository.InvoiceRepository,
	reservationRepo repository.InvoiceReservationRepository,
	itemRepo repository.InventoryItemRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *FulfillmentUseCase {
	return &FulfillmentUseCase{
		txRunner:        txRunner,
		store:           store,
		recorder:        recorder,
		invoiceRepo:     invoiceRepo,
		reservationRepo: reservationRepo,
		itemRepo:        itemRepo,
		productRepo:     productRepo,
		warehouseRepo:   warehouseRepo,
	}
}

// InvoiceLineInput línea de factura nueva. ProductID vacío = línea sin efecto en inventario.
type InvoiceLineInput struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// CreateInvoiceInput entrada para crear una factura en draft.
type CreateInvoiceInput struct {
	CustomerID string
	Number     string
	Date       time.Time
	Lines      []InvoiceLineInput
}

// LineAvailability disponibilidad de una línea de factura frente al ledger.
type LineAvailability struct {
	ProductID         string
	Requested         decimal.Decimal
	QuantityAvailable decimal.Decimal
	Available         bool
}

// AvailabilityResult resultado agregado de CheckAvailability.
type AvailabilityResult struct {
	InvoiceID    string
	WarehouseID  string
	Lines        []LineAvailability
	AllAvailable bool
}

// CreateInvoice persiste la factura en draft con sus líneas. No toca el ledger.
func (uc *FulfillmentUseCase) CreateInvoice(ctx context.Context, companyID, userID string, in CreateInvoiceInput) (*entity.Invoice, error) {
	if in.CustomerID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	grandTotal := decimal.Zero
	for _, line := range in.Lines {
		if !line.Quantity.GreaterThan(decimal.Zero) || line.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if line.ProductID != "" {
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
		grandTotal = grandTotal.Add(line.Quantity.Mul(line.UnitPrice))
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	invoice := &entity.Invoice{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		CustomerID: in.CustomerID,
		Number:     in.Number,
		Date:       date,
		Status:     entity.InvoiceStatusDraft,
		GrandTotal: grandTotal,
		CreatedBy:  userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := uc.txRunner.RunFulfillment(ctx, func(
		_ repository.InventoryItemRepository,
		_ repository.StockMovementRepository,
		invoiceRepo repository.InvoiceRepository,
		_ repository.InvoiceReservationRepository,
	) error {
		if err := invoiceRepo.Create(invoice); err != nil {
			return err
		}
		for _, line := range in.Lines {
			item := &entity.InvoiceItem{
				ID:        uuid.New().String(),
				InvoiceID: invoice.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
			}
			if err := invoiceRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// CheckAvailability compara cada línea con producto contra quantity_available en la
// bodega. Solo lectura: nunca muta el ledger, sea cual sea el resultado.
func (uc *FulfillmentUseCase) CheckAvailability(_ context.Context, companyID, invoiceID, warehouseID string) (*AvailabilityResult, error) {
	invoice, items, err := uc.loadInvoice(companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	result := &AvailabilityResult{
		InvoiceID:    invoice.ID,
		WarehouseID:  warehouseID,
		AllAvailable: true,
	}
	for _, item := range items {
		if item.ProductID == "" {
			continue
		}
		available := decimal.Zero
		stock, err := uc.itemRepo.Get(item.ProductID, warehouseID)
		if err != nil {
			return nil, err
		}
		if stock != nil {
			available = stock.QuantityAvailable
		}
		ok := !available.LessThan(item.Quantity)
		if !ok {
			result.AllAvailable = false
		}
		result.Lines = append(result.Lines, LineAvailability{
			ProductID:         item.ProductID,
			Requested:         item.Quantity,
			QuantityAvailable: available,
			Available:         ok,
		})
	}
	return result, nil
}

// Reserve mueve quantity de available a reserved por cada línea con producto, todo o
// nada: primero bloquea y valida todas las líneas, luego aplica. Cualquier línea sin
// stock falla con ErrInsufficientStock y el rollback no deja reserva parcial.
// Una factura con reserva activa no puede reservarse de nuevo (ErrConflict).
func (uc *FulfillmentUseCase) Reserve(ctx context.Context, companyID, userID, invoiceID, warehouseID string) error {
	now := time.Now()
	return uc.txRunner.RunFulfillment(ctx, func(
		itemRepo repository.InventoryItemRepository,
		_ repository.StockMovementRepository,
		invoiceRepo repository.InvoiceRepository,
		reservationRepo repository.InvoiceReservationRepository,
	) error {
		invoice, err := invoiceRepo.GetByIDForUpdate(invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return domain.ErrNotFound
		}
		if invoice.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if invoice.Status == entity.InvoiceStatusPaid {
			return domain.ErrAlreadyPaid
		}
		if invoice.Status == entity.InvoiceStatusCancelled {
			return domain.ErrInvalidState
		}
		existing, err := reservationRepo.GetActiveByInvoice(invoice.ID)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return domain.ErrConflict
		}
		items, err := invoiceRepo.GetItems(invoice.ID)
		if err != nil {
			return err
		}

		// Primera pasada: bloquear y validar todas las líneas antes de mutar.
		type lockedLine struct {
			item  *entity.InvoiceItem
			stock *entity.InventoryItem
		}
		var locked []lockedLine
		for _, item := range items {
			if item.ProductID == "" {
				continue
			}
			stock, err := uc.store.Lock(itemRepo, item.ProductID, warehouseID)
			if err != nil {
				return err
			}
			if stock == nil {
				return domain.ErrNotFound
			}
			if stock.QuantityAvailable.LessThan(item.Quantity) {
				return domain.ErrInsufficientStock
			}
			locked = append(locked, lockedLine{item: item, stock: stock})
		}
		// Segunda pasada: aplicar la reserva y dejar rastro por línea.
		for _, line := range locked {
			if _, err := uc.store.Apply(itemRepo, line.stock, invoice.CompanyID, line.item.ProductID, warehouseID, decimal.Zero, line.item.Quantity, now); err != nil {
				return err
			}
			reservation := &entity.InvoiceReservation{
				ID:          uuid.New().String(),
				CompanyID:   invoice.CompanyID,
				InvoiceID:   invoice.ID,
				ProductID:   line.item.ProductID,
				WarehouseID: warehouseID,
				Quantity:    line.item.Quantity,
				Status:      entity.ReservationStatusActive,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := reservationRepo.Create(reservation); err != nil {
				return err
			}
		}
		return nil
	})
}

// Release revierte una reserva previa: devuelve exactamente las cantidades activas
// de reserved a available y marca las reservas como released. Sin reserva activa
// falla con ErrNotFound; llamar dos veces no puede dejar reserved negativa.
func (uc *FulfillmentUseCase) Release(ctx context.Context, companyID, userID, invoiceID string) error {
	now := time.Now()
	return uc.txRunner.RunFulfillment(ctx, func(
		itemRepo repository.InventoryItemRepository,
		_ repository.StockMovementRepository,
		invoiceRepo repository.InvoiceRepository,
		reservationRepo repository.InvoiceReservationRepository,
	) error {
		invoice, err := invoiceRepo.GetByIDForUpdate(invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return domain.ErrNotFound
		}
		if invoice.CompanyID != companyID {
			return domain.ErrForbidden
		}
		reservations, err := reservationRepo.GetActiveByInvoice(invoice.ID)
		if err != nil {
			return err
		}
		if len(reservations) == 0 {
			return domain.ErrNotFound
		}
		for _, res := range reservations {
			if _, err := uc.store.ApplyDelta(itemRepo, invoice.CompanyID, res.ProductID, res.WarehouseID, decimal.Zero, res.Quantity.Neg(), now); err != nil {
				return err
			}
			if err := reservationRepo.UpdateStatus(res.ID, entity.ReservationStatusReleased, now); err != nil {
				return err
			}
		}
		return nil
	})
}

// ProcessPayment consume el stock de la factura: por cada línea con producto descuenta
// on_hand, consume la reserva activa si existe (o valida available si no la hay),
// registra un movimiento `sale` al costo vigente del producto y deja la factura en paid.
func (uc *FulfillmentUseCase) ProcessPayment(ctx context.Context, companyID, userID, invoiceID, warehouseID string) error {
	// Costos al costo vigente del producto; lectura fuera de la transacción.
	invoice, items, err := uc.loadInvoice(companyID, invoiceID)
	if err != nil {
		return err
	}
	costs := make(map[string]decimal.Decimal, len(items))
	for _, item := range items {
		if item.ProductID == "" {
			continue
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		costs[item.ProductID] = product.Cost
	}

	now := time.Now()
	return uc.txRunner.RunFulfillment(ctx, func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.StockMovementRepository,
		invoiceRepo repository.InvoiceRepository,
		reservationRepo repository.InvoiceReservationRepository,
	) error {
		invoice, err = invoiceRepo.GetByIDForUpdate(invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return domain.ErrNotFound
		}
		if invoice.Status == entity.InvoiceStatusPaid {
			return domain.ErrAlreadyPaid
		}
		if invoice.Status == entity.InvoiceStatusCancelled {
			return domain.ErrInvalidState
		}
		reservations, err := reservationRepo.GetActiveByInvoice(invoice.ID)
		if err != nil {
			return err
		}
		reservedByProduct := make(map[string]*entity.InvoiceReservation, len(reservations))
		for _, res := range reservations {
			if res.WarehouseID == warehouseID {
				reservedByProduct[res.ProductID] = res
			}
		}
		lines, err := invoiceRepo.GetItems(invoice.ID)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if line.ProductID == "" {
				continue
			}
			stock, err := uc.store.Lock(itemRepo, line.ProductID, warehouseID)
			if err != nil {
				return err
			}
			if stock == nil {
				return domain.ErrNotFound
			}
			res := reservedByProduct[line.ProductID]
			consume := decimal.Zero
			if res != nil {
				// La reserva propia no cuenta contra la disponibilidad de esta factura.
				consume = res.Quantity
				if stock.QuantityOnHand.LessThan(line.Quantity) {
					return domain.ErrInsufficientStock
				}
			} else if stock.QuantityAvailable.LessThan(line.Quantity) {
				return domain.ErrInsufficientStock
			}
			if _, err := uc.store.Apply(itemRepo, stock, invoice.CompanyID, line.ProductID, warehouseID, line.Quantity.Neg(), consume.Neg(), now); err != nil {
				return err
			}
			if err := uc.recorder.Record(movRepo, ledger.MovementInput{
				CompanyID:     invoice.CompanyID,
				ProductID:     line.ProductID,
				WarehouseID:   warehouseID,
				Type:          entity.MovementTypeSale,
				ReferenceType: entity.ReferenceTypeInvoice,
				ReferenceID:   invoice.ID,
				Quantity:      line.Quantity.Neg(),
				UnitCost:      costs[line.ProductID],
				MovementDate:  now,
				CreatedBy:     userID,
			}); err != nil {
				return err
			}
			if res != nil {
				if err := reservationRepo.UpdateStatus(res.ID, entity.ReservationStatusConsumed, now); err != nil {
					return err
				}
			}
		}
		return invoiceRepo.UpdateStatus(invoice.ID, entity.InvoiceStatusPaid, now)
	})
}

// GetByID devuelve la factura con sus líneas.
func (uc *FulfillmentUseCase) GetByID(_ context.Context, companyID, invoiceID string) (*entity.Invoice, []*entity.InvoiceItem, error) {
	invoice, items, err := uc.loadInvoice(companyID, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	return invoice, items, nil
}

func (uc *FulfillmentUseCase) loadInvoice(companyID, invoiceID string) (*entity.Invoice, []*entity.InvoiceItem, error) {
	invoice, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, nil, err
	}
	if invoice == nil {
		return nil, nil, domain.ErrNotFound
	}
	if invoice.CompanyID != companyID {
		return nil, nil, domain.ErrForbidden
	}
	items, err := uc.invoiceRepo.GetItems(invoice.ID)
	if err != nil {
		return nil, nil, err
	}
	return invoice, items, nil
}
