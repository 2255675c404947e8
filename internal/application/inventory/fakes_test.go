package inventory_test

import (
	"context"
	"time"

	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/application/ledger"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// fakeDB estado en memoria compartido por los repos falsos. El txRunner falso
// clona el estado antes de cada callback y lo restaura si el callback falla,
// imitando el rollback de una transacción real.
type fakeDB struct {
	items           map[string]*entity.InventoryItem // product|warehouse
	movements       []*entity.StockMovement
	adjustments     map[string]*entity.StockAdjustment
	adjustmentItems []*entity.StockAdjustmentItem
	transfers       map[string]*entity.StockTransfer
	transferItems   []*entity.StockTransferItem
	orders          map[string]*entity.PurchaseOrder
	orderItems      []*entity.PurchaseOrderItem
	invoices        map[string]*entity.Invoice
	invoiceItems    []*entity.InvoiceItem
	reservations    []*entity.InvoiceReservation
	products        map[string]*entity.Product
	warehouses      map[string]*entity.Warehouse
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		items:       map[string]*entity.InventoryItem{},
		adjustments: map[string]*entity.StockAdjustment{},
		transfers:   map[string]*entity.StockTransfer{},
		orders:      map[string]*entity.PurchaseOrder{},
		invoices:    map[string]*entity.Invoice{},
		products:    map[string]*entity.Product{},
		warehouses:  map[string]*entity.Warehouse{},
	}
}

func itemKey(productID, warehouseID string) string { return productID + "|" + warehouseID }

func (db *fakeDB) clone() *fakeDB {
	out := newFakeDB()
	for k, v := range db.items {
		c := *v
		out.items[k] = &c
	}
	for _, m := range db.movements {
		c := *m
		out.movements = append(out.movements, &c)
	}
	for k, v := range db.adjustments {
		c := *v
		out.adjustments[k] = &c
	}
	for _, it := range db.adjustmentItems {
		c := *it
		out.adjustmentItems = append(out.adjustmentItems, &c)
	}
	for k, v := range db.transfers {
		c := *v
		out.transfers[k] = &c
	}
	for _, it := range db.transferItems {
		c := *it
		out.transferItems = append(out.transferItems, &c)
	}
	for k, v := range db.orders {
		c := *v
		out.orders[k] = &c
	}
	for _, it := range db.orderItems {
		c := *it
		out.orderItems = append(out.orderItems, &c)
	}
	for k, v := range db.invoices {
		c := *v
		out.invoices[k] = &c
	}
	for _, it := range db.invoiceItems {
		c := *it
		out.invoiceItems = append(out.invoiceItems, &c)
	}
	for _, r := range db.reservations {
		c := *r
		out.reservations = append(out.reservations, &c)
	}
	for k, v := range db.products {
		c := *v
		out.products[k] = &c
	}
	for k, v := range db.warehouses {
		c := *v
		out.warehouses[k] = &c
	}
	return out
}

// ---- inventory items ----

type fakeItemRepo struct{ db *fakeDB }

func (r *fakeItemRepo) Get(productID, warehouseID string) (*entity.InventoryItem, error) {
	if it, ok := r.db.items[itemKey(productID, warehouseID)]; ok {
		c := *it
		return &c, nil
	}
	return nil, nil
}

func (r *fakeItemRepo) GetForUpdate(productID, warehouseID string) (*entity.InventoryItem, error) {
	return r.Get(productID, warehouseID)
}

func (r *fakeItemRepo) Upsert(item *entity.InventoryItem) error {
	c := *item
	r.db.items[itemKey(item.ProductID, item.WarehouseID)] = &c
	return nil
}

func (r *fakeItemRepo) ListByWarehouse(companyID, warehouseID string, limit, offset int) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range r.db.items {
		if it.CompanyID == companyID && it.WarehouseID == warehouseID {
			c := *it
			out = append(out, &c)
		}
	}
	return out, nil
}

// ---- stock movements ----

type fakeMovementRepo struct{ db *fakeDB }

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	c := *m
	r.db.movements = append(r.db.movements, &c)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.db.movements {
		if m.ID == id {
			c := *m
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) ListByWarehouse(warehouseID string, _, _ *time.Time, _, _ int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.db.movements {
		if m.WarehouseID == warehouseID {
			c := *m
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, _, _ *time.Time, _, _ int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.db.movements {
		if m.ProductID == productID {
			c := *m
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) SumByProductWarehouse(productID, warehouseID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range r.db.movements {
		if m.ProductID == productID && m.WarehouseID == warehouseID {
			sum = sum.Add(m.Quantity)
		}
	}
	return sum, nil
}

// ---- stock adjustments ----

type fakeAdjustmentRepo struct{ db *fakeDB }

func (r *fakeAdjustmentRepo) Create(a *entity.StockAdjustment) error {
	c := *a
	r.db.adjustments[a.ID] = &c
	return nil
}

func (r *fakeAdjustmentRepo) CreateItem(it *entity.StockAdjustmentItem) error {
	c := *it
	r.db.adjustmentItems = append(r.db.adjustmentItems, &c)
	return nil
}

func (r *fakeAdjustmentRepo) GetByID(id string) (*entity.StockAdjustment, error) {
	if a, ok := r.db.adjustments[id]; ok {
		c := *a
		return &c, nil
	}
	return nil, nil
}

func (r *fakeAdjustmentRepo) GetByIDForUpdate(id string) (*entity.StockAdjustment, error) {
	return r.GetByID(id)
}

func (r *fakeAdjustmentRepo) GetItems(adjustmentID string) ([]*entity.StockAdjustmentItem, error) {
	var out []*entity.StockAdjustmentItem
	for _, it := range r.db.adjustmentItems {
		if it.AdjustmentID == adjustmentID {
			c := *it
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeAdjustmentRepo) UpdateStatus(id, status, actorID string, at time.Time) error {
	a := r.db.adjustments[id]
	a.Status = status
	if status == entity.AdjustmentStatusApproved {
		a.ApprovedBy = actorID
		a.ApprovedAt = &at
	}
	a.UpdatedAt = at
	return nil
}

func (r *fakeAdjustmentRepo) List(companyID string, _, _ int) ([]*entity.StockAdjustment, error) {
	var out []*entity.StockAdjustment
	for _, a := range r.db.adjustments {
		if a.CompanyID == companyID {
			c := *a
			out = append(out, &c)
		}
	}
	return out, nil
}

// ---- stock transfers ----

type fakeTransferRepo struct{ db *fakeDB }

func (r *fakeTransferRepo) Create(t *entity.StockTransfer) error {
	c := *t
	r.db.transfers[t.ID] = &c
	return nil
}

func (r *fakeTransferRepo) CreateItem(it *entity.StockTransferItem) error {
	c := *it
	r.db.transferItems = append(r.db.transferItems, &c)
	return nil
}

func (r *fakeTransferRepo) GetByID(id string) (*entity.StockTransfer, error) {
	if t, ok := r.db.transfers[id]; ok {
		c := *t
		return &c, nil
	}
	return nil, nil
}

func (r *fakeTransferRepo) GetByIDForUpdate(id string) (*entity.StockTransfer, error) {
	return r.GetByID(id)
}

func (r *fakeTransferRepo) GetItems(transferID string) ([]*entity.StockTransferItem, error) {
	var out []*entity.StockTransferItem
	for _, it := range r.db.transferItems {
		if it.TransferID == transferID {
			c := *it
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeTransferRepo) UpdateStatus(id, status, actorID string, at time.Time) error {
	t := r.db.transfers[id]
	t.Status = status
	switch status {
	case entity.TransferStatusInTransit:
		t.ProcessedBy = actorID
		t.ProcessedAt = &at
	case entity.TransferStatusCompleted:
		t.CompletedBy = actorID
		t.CompletedAt = &at
	}
	t.UpdatedAt = at
	return nil
}

func (r *fakeTransferRepo) UpdateItemReceived(itemID string, quantityReceived decimal.Decimal) error {
	for _, it := range r.db.transferItems {
		if it.ID == itemID {
			it.QuantityReceived = quantityReceived
		}
	}
	return nil
}

func (r *fakeTransferRepo) List(companyID string, _, _ int) ([]*entity.StockTransfer, error) {
	var out []*entity.StockTransfer
	for _, t := range r.db.transfers {
		if t.CompanyID == companyID {
			c := *t
			out = append(out, &c)
		}
	}
	return out, nil
}

// ---- purchase orders ----

type fakeOrderRepo struct{ db *fakeDB }

func (r *fakeOrderRepo) Create(o *entity.PurchaseOrder) error {
	c := *o
	r.db.orders[o.ID] = &c
	return nil
}

func (r *fakeOrderRepo) CreateItem(it *entity.PurchaseOrderItem) error {
	c := *it
	r.db.orderItems = append(r.db.orderItems, &c)
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	if o, ok := r.db.orders[id]; ok {
		c := *o
		return &c, nil
	}
	return nil, nil
}

func (r *fakeOrderRepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(id)
}

func (r *fakeOrderRepo) GetItems(orderID string) ([]*entity.PurchaseOrderItem, error) {
	var out []*entity.PurchaseOrderItem
	for _, it := range r.db.orderItems {
		if it.PurchaseOrderID == orderID {
			c := *it
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) AddItemReceived(itemID string, quantity decimal.Decimal) error {
	for _, it := range r.db.orderItems {
		if it.ID == itemID {
			it.QuantityReceived = it.QuantityReceived.Add(quantity)
		}
	}
	return nil
}

func (r *fakeOrderRepo) UpdateStatusReceived(id string, receivedDate time.Time) error {
	o := r.db.orders[id]
	o.Status = entity.PurchaseOrderStatusReceived
	o.ReceivedDate = &receivedDate
	o.UpdatedAt = receivedDate
	return nil
}

func (r *fakeOrderRepo) List(companyID string, _, _ int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, o := range r.db.orders {
		if o.CompanyID == companyID {
			c := *o
			out = append(out, &c)
		}
	}
	return out, nil
}

// ---- invoices ----

type fakeInvoiceRepo struct{ db *fakeDB }

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	c := *inv
	r.db.invoices[inv.ID] = &c
	return nil
}

func (r *fakeInvoiceRepo) CreateItem(it *entity.InvoiceItem) error {
	c := *it
	r.db.invoiceItems = append(r.db.invoiceItems, &c)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	if inv, ok := r.db.invoices[id]; ok {
		c := *inv
		return &c, nil
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) GetByIDForUpdate(id string) (*entity.Invoice, error) {
	return r.GetByID(id)
}

func (r *fakeInvoiceRepo) GetItems(invoiceID string) ([]*entity.InvoiceItem, error) {
	var out []*entity.InvoiceItem
	for _, it := range r.db.invoiceItems {
		if it.InvoiceID == invoiceID {
			c := *it
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) UpdateStatus(id, status string, at time.Time) error {
	inv := r.db.invoices[id]
	inv.Status = status
	inv.UpdatedAt = at
	return nil
}

func (r *fakeInvoiceRepo) List(companyID string, _, _ int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.db.invoices {
		if inv.CompanyID == companyID {
			c := *inv
			out = append(out, &c)
		}
	}
	return out, nil
}

// ---- invoice reservations ----

type fakeReservationRepo struct{ db *fakeDB }

func (r *fakeReservationRepo) Create(res *entity.InvoiceReservation) error {
	c := *res
	r.db.reservations = append(r.db.reservations, &c)
	return nil
}

func (r *fakeReservationRepo) GetActiveByInvoice(invoiceID string) ([]*entity.InvoiceReservation, error) {
	var out []*entity.InvoiceReservation
	for _, res := range r.db.reservations {
		if res.InvoiceID == invoiceID && res.Status == entity.ReservationStatusActive {
			c := *res
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeReservationRepo) UpdateStatus(id, status string, at time.Time) error {
	for _, res := range r.db.reservations {
		if res.ID == id {
			res.Status = status
			res.UpdatedAt = at
		}
	}
	return nil
}

// ---- catálogo ----

type fakeProductRepo struct{ db *fakeDB }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	c := *p
	r.db.products[p.ID] = &c
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.db.products[id]; ok {
		c := *p
		return &c, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) ListByCompany(companyID string, _, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.db.products {
		if p.CompanyID == companyID {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

type fakeWarehouseRepo struct{ db *fakeDB }

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error {
	c := *w
	r.db.warehouses[w.ID] = &c
	return nil
}

func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if w, ok := r.db.warehouses[id]; ok {
		c := *w
		return &c, nil
	}
	return nil, nil
}

func (r *fakeWarehouseRepo) ListByCompany(companyID string) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.db.warehouses {
		if w.CompanyID == companyID {
			c := *w
			out = append(out, &c)
		}
	}
	return out, nil
}

// ---- tx runner ----

// fakeTxRunner entrega repos sobre la misma fakeDB y restaura el estado previo
// cuando el callback falla, igual que el rollback de la transacción real.
type fakeTxRunner struct{ db *fakeDB }

func (r *fakeTxRunner) withRollback(fn func() error) error {
	snapshot := r.db.clone()
	if err := fn(); err != nil {
		*r.db = *snapshot
		return err
	}
	return nil
}

func (r *fakeTxRunner) RunAdjustment(_ context.Context, fn func(
	repository.InventoryItemRepository,
	repository.StockMovementRepository,
	repository.StockAdjustmentRepository,
) error) error {
	return r.withRollback(func() error {
		return fn(&fakeItemRepo{r.db}, &fakeMovementRepo{r.db}, &fakeAdjustmentRepo{r.db})
	})
}

func (r *fakeTxRunner) RunTransfer(_ context.Context, fn func(
	repository.InventoryItemRepository,
	repository.StockMovementRepository,
	repository.StockTransferRepository,
) error) error {
	return r.withRollback(func() error {
		return fn(&fakeItemRepo{r.db}, &fakeMovementRepo{r.db}, &fakeTransferRepo{r.db})
	})
}

func (r *fakeTxRunner) RunReceiving(_ context.Context, fn func(
	repository.InventoryItemRepository,
	repository.StockMovementRepository,
	repository.PurchaseOrderRepository,
) error) error {
	return r.withRollback(func() error {
		return fn(&fakeItemRepo{r.db}, &fakeMovementRepo{r.db}, &fakeOrderRepo{r.db})
	})
}

func (r *fakeTxRunner) RunFulfillment(_ context.Context, fn func(
	repository.InventoryItemRepository,
	repository.StockMovementRepository,
	repository.InvoiceRepository,
	repository.InvoiceReservationRepository,
) error) error {
	return r.withRollback(func() error {
		return fn(&fakeItemRepo{r.db}, &fakeMovementRepo{r.db}, &fakeInvoiceRepo{r.db}, &fakeReservationRepo{r.db})
	})
}

var _ inventory.TxRunner = (*fakeTxRunner)(nil)

// ---- entorno de test ----

const (
	testCompanyID  = "00000000-0000-0000-0000-0000000000c1"
	otherCompanyID = "00000000-0000-0000-0000-0000000000c2"
	testUserID     = "00000000-0000-0000-0000-0000000000u1"
	warehouseA     = "00000000-0000-0000-0000-0000000000a1"
	warehouseB     = "00000000-0000-0000-0000-0000000000b1"
	productX       = "00000000-0000-0000-0000-0000000000f1"
	productY       = "00000000-0000-0000-0000-0000000000f2"
)

type testEnv struct {
	db       *fakeDB
	txRunner *fakeTxRunner
	store    *ledger.Store
	recorder *ledger.Recorder

	itemRepo      *fakeItemRepo
	movRepo       *fakeMovementRepo
	adjRepo       *fakeAdjustmentRepo
	transferRepo  *fakeTransferRepo
	orderRepo     *fakeOrderRepo
	invoiceRepo   *fakeInvoiceRepo
	resRepo       *fakeReservationRepo
	productRepo   *fakeProductRepo
	warehouseRepo *fakeWarehouseRepo
}

// newTestEnv siembra dos bodegas y dos productos de la empresa de prueba.
func newTestEnv() *testEnv {
	db := newFakeDB()
	now := time.Now()
	db.warehouses[warehouseA] = &entity.Warehouse{ID: warehouseA, CompanyID: testCompanyID, Name: "Bodega Norte", CreatedAt: now, UpdatedAt: now}
	db.warehouses[warehouseB] = &entity.Warehouse{ID: warehouseB, CompanyID: testCompanyID, Name: "Bodega Sur", CreatedAt: now, UpdatedAt: now}
	db.products[productX] = &entity.Product{ID: productX, CompanyID: testCompanyID, SKU: "SKU-X", Name: "Producto X", Cost: decimal.NewFromInt(7), Price: decimal.NewFromInt(12), CreatedAt: now, UpdatedAt: now}
	db.products[productY] = &entity.Product{ID: productY, CompanyID: testCompanyID, SKU: "SKU-Y", Name: "Producto Y", Cost: decimal.NewFromInt(3), Price: decimal.NewFromInt(5), CreatedAt: now, UpdatedAt: now}
	return &testEnv{
		db:            db,
		txRunner:      &fakeTxRunner{db},
		store:         ledger.NewStore(),
		recorder:      ledger.NewRecorder(),
		itemRepo:      &fakeItemRepo{db},
		movRepo:       &fakeMovementRepo{db},
		adjRepo:       &fakeAdjustmentRepo{db},
		transferRepo:  &fakeTransferRepo{db},
		orderRepo:     &fakeOrderRepo{db},
		invoiceRepo:   &fakeInvoiceRepo{db},
		resRepo:       &fakeReservationRepo{db},
		productRepo:   &fakeProductRepo{db},
		warehouseRepo: &fakeWarehouseRepo{db},
	}
}

// seedStock deja un saldo inicial en la bodega.
func (e *testEnv) seedStock(productID, warehouseID string, onHand, reserved int64) {
	now := time.Now()
	oh := decimal.NewFromInt(onHand)
	rv := decimal.NewFromInt(reserved)
	e.db.items[itemKey(productID, warehouseID)] = &entity.InventoryItem{
		ID:                "item-" + productID + "-" + warehouseID,
		CompanyID:         testCompanyID,
		ProductID:         productID,
		WarehouseID:       warehouseID,
		QuantityOnHand:    oh,
		QuantityReserved:  rv,
		QuantityAvailable: oh.Sub(rv),
		LastStockDate:     now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// stock devuelve el saldo actual o nil.
func (e *testEnv) stock(productID, warehouseID string) *entity.InventoryItem {
	return e.db.items[itemKey(productID, warehouseID)]
}

// movementsFor filtra los movimientos de un par producto+bodega.
func (e *testEnv) movementsFor(productID, warehouseID string) []*entity.StockMovement {
	var out []*entity.StockMovement
	for _, m := range e.db.movements {
		if m.ProductID == productID && m.WarehouseID == warehouseID {
			out = append(out, m)
		}
	}
	return out
}

func (e *testEnv) adjustmentUC() *inventory.AdjustmentUseCase {
	return inventory.NewAdjustmentUseCase(e.txRunner, e.store, e.recorder, e.adjRepo, e.productRepo, e.warehouseRepo)
}

func (e *testEnv) transferUC() *inventory.TransferUseCase {
	return inventory.NewTransferUseCase(e.txRunner, e.store, e.recorder, e.transferRepo, e.productRepo, e.warehouseRepo)
}

func (e *testEnv) receivingUC() *inventory.ReceivingUseCase {
	return inventory.NewReceivingUseCase(e.txRunner, e.store, e.recorder, e.orderRepo, e.productRepo, e.warehouseRepo)
}

func (e *testEnv) fulfillmentUC() *inventory.FulfillmentUseCase {
	return inventory.NewFulfillmentUseCase(e.txRunner, e.store, e.recorder, e.invoiceRepo, e.resRepo, e.itemRepo, e.productRepo, e.warehouseRepo)
}

func (e *testEnv) queryUC() *inventory.QueryUseCase {
	return inventory.NewQueryUseCase(e.itemRepo, e.movRepo, e.warehouseRepo, e.productRepo)
}
