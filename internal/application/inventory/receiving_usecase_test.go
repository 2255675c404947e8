package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftOrder(t *testing.T, env *testEnv, ordered int64, unitCost int64) (*entity.PurchaseOrder, string) {
	t.Helper()
	order, err := env.receivingUC().Create(context.Background(), testCompanyID, testUserID, inventory.CreateOrderInput{
		VendorID:  "proveedor-1",
		Number:    "OC-001",
		OrderDate: time.Now(),
		Lines: []inventory.OrderLineInput{
			{ProductID: productX, QuantityOrdered: decimal.NewFromInt(ordered), UnitCost: decimal.NewFromInt(unitCost)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, entity.PurchaseOrderStatusDraft, order.Status)
	items, err := env.orderRepo.GetItems(order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	return order, items[0].ID
}

func TestReceiving_CreateNoTocaLedger(t *testing.T) {
	env := newTestEnv()
	draftOrder(t, env, 10, 7)

	assert.Nil(t, env.stock(productX, warehouseA))
	assert.Empty(t, env.db.movements)
}

func TestReceiving_RecepcionAcreditaBodega(t *testing.T) {
	env := newTestEnv()
	order, itemID := draftOrder(t, env, 10, 7)

	err := env.receivingUC().Receive(context.Background(), testCompanyID, testUserID, order.ID, warehouseA,
		[]inventory.ReceiveLineInput{{ItemID: itemID, Quantity: decimal.NewFromInt(5)}})
	require.NoError(t, err)

	stock := env.stock(productX, warehouseA)
	require.NotNil(t, stock, "la primera recepción crea la fila del par")
	assert.Equal(t, "5", stock.QuantityOnHand.String())

	movs := env.movementsFor(productX, warehouseA)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypePurchase, movs[0].Type)
	assert.Equal(t, entity.ReferenceTypePurchaseOrder, movs[0].ReferenceType)
	assert.Equal(t, order.ID, movs[0].ReferenceID)
	assert.Equal(t, "5", movs[0].Quantity.String())
	assert.Equal(t, "7", movs[0].UnitCost.String(), "el movimiento lleva el costo unitario de la línea")

	got := env.db.orders[order.ID]
	assert.Equal(t, entity.PurchaseOrderStatusReceived, got.Status)
	require.NotNil(t, got.ReceivedDate)
}

func TestReceiving_RecepcionParcialAcumula(t *testing.T) {
	env := newTestEnv()
	order, itemID := draftOrder(t, env, 10, 7)
	uc := env.receivingUC()

	require.NoError(t, uc.Receive(context.Background(), testCompanyID, testUserID, order.ID, warehouseA,
		[]inventory.ReceiveLineInput{{ItemID: itemID, Quantity: decimal.NewFromInt(5)}}))
	require.NoError(t, uc.Receive(context.Background(), testCompanyID, testUserID, order.ID, warehouseA,
		[]inventory.ReceiveLineInput{{ItemID: itemID, Quantity: decimal.NewFromInt(3)}}))

	items, _ := env.orderRepo.GetItems(order.ID)
	assert.Equal(t, "8", items[0].QuantityReceived.String(), "las recepciones parciales suman")
	assert.Equal(t, "8", env.stock(productX, warehouseA).QuantityOnHand.String())
	assert.Len(t, env.movementsFor(productX, warehouseA), 2, "un movimiento por recepción")
}

func TestReceiving_SobreRecepcionPermitida(t *testing.T) {
	// el acumulado no se limita a lo ordenado
	env := newTestEnv()
	order, itemID := draftOrder(t, env, 10, 7)

	require.NoError(t, env.receivingUC().Receive(context.Background(), testCompanyID, testUserID, order.ID, warehouseA,
		[]inventory.ReceiveLineInput{{ItemID: itemID, Quantity: decimal.NewFromInt(12)}}))

	items, _ := env.orderRepo.GetItems(order.ID)
	assert.Equal(t, "12", items[0].QuantityReceived.String())
}

func TestReceiving_OrdenCanceladaNoRecibe(t *testing.T) {
	env := newTestEnv()
	order, itemID := draftOrder(t, env, 10, 7)
	env.db.orders[order.ID].Status = entity.PurchaseOrderStatusCancelled

	err := env.receivingUC().Receive(context.Background(), testCompanyID, testUserID, order.ID, warehouseA,
		[]inventory.ReceiveLineInput{{ItemID: itemID, Quantity: decimal.NewFromInt(5)}})

	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Nil(t, env.stock(productX, warehouseA))
}

func TestReceiving_LineaDesconocidaFalla(t *testing.T) {
	env := newTestEnv()
	order, _ := draftOrder(t, env, 10, 7)

	err := env.receivingUC().Receive(context.Background(), testCompanyID, testUserID, order.ID, warehouseA,
		[]inventory.ReceiveLineInput{{ItemID: "no-existe", Quantity: decimal.NewFromInt(5)}})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, env.stock(productX, warehouseA), "rollback: nada se acredita")
}

func TestReceiving_CantidadCeroFalla(t *testing.T) {
	env := newTestEnv()
	order, itemID := draftOrder(t, env, 10, 7)

	err := env.receivingUC().Receive(context.Background(), testCompanyID, testUserID, order.ID, warehouseA,
		[]inventory.ReceiveLineInput{{ItemID: itemID, Quantity: decimal.Zero}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReceiving_BodegaAjenaFalla(t *testing.T) {
	env := newTestEnv()
	now := time.Now()
	env.db.warehouses["wh-ajena"] = &entity.Warehouse{ID: "wh-ajena", CompanyID: otherCompanyID, Name: "Ajena", CreatedAt: now, UpdatedAt: now}
	order, itemID := draftOrder(t, env, 10, 7)

	err := env.receivingUC().Receive(context.Background(), testCompanyID, testUserID, order.ID, "wh-ajena",
		[]inventory.ReceiveLineInput{{ItemID: itemID, Quantity: decimal.NewFromInt(5)}})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
