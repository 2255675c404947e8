package inventory_test

import (
	"context"
	"testing"

	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftAdjustment(t *testing.T, env *testEnv, before, after int64) *entity.StockAdjustment {
	t.Helper()
	adj, err := env.adjustmentUC().Create(context.Background(), testCompanyID, testUserID, inventory.CreateAdjustmentInput{
		WarehouseID: warehouseA,
		Reason:      "conteo físico",
		Lines: []inventory.AdjustmentLineInput{
			{ProductID: productX, QuantityBefore: decimal.NewFromInt(before), QuantityAfter: decimal.NewFromInt(after)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, entity.AdjustmentStatusDraft, adj.Status)
	return adj
}

func TestAdjustment_CreateNoTocaLedger(t *testing.T) {
	env := newTestEnv()
	env.seedStock(productX, warehouseA, 10, 0)

	draftAdjustment(t, env, 10, 15)

	stock := env.stock(productX, warehouseA)
	assert.Equal(t, "10", stock.QuantityOnHand.String(), "crear el borrador no debe mutar saldos")
	assert.Empty(t, env.movementsFor(productX, warehouseA), "crear el borrador no debe registrar movimientos")
}

func TestAdjustment_ApproveFijaOnHandYRegistraDelta(t *testing.T) {
	env := newTestEnv()
	env.seedStock(productX, warehouseA, 10, 0)
	adj := draftAdjustment(t, env, 10, 15)

	err := env.adjustmentUC().Approve(context.Background(), testCompanyID, testUserID, adj.ID)
	require.NoError(t, err)

	stock := env.stock(productX, warehouseA)
	assert.Equal(t, "15", stock.QuantityOnHand.String(), "on_hand debe quedar en el valor absoluto del ajuste")
	assert.Equal(t, "15", stock.QuantityAvailable.String())

	movs := env.movementsFor(productX, warehouseA)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeAdjustment, movs[0].Type)
	assert.Equal(t, entity.ReferenceTypeAdjustment, movs[0].ReferenceType)
	assert.Equal(t, adj.ID, movs[0].ReferenceID)
	assert.Equal(t, "5", movs[0].Quantity.String(), "el movimiento registra el delta realmente aplicado")

	got := env.db.adjustments[adj.ID]
	assert.Equal(t, entity.AdjustmentStatusApproved, got.Status)
	assert.Equal(t, testUserID, got.ApprovedBy)
	require.NotNil(t, got.ApprovedAt)
}

func TestAdjustment_ApproveHaciaAbajo(t *testing.T) {
	env := newTestEnv()
	env.seedStock(productX, warehouseA, 10, 0)
	adj := draftAdjustment(t, env, 10, 4)

	require.NoError(t, env.adjustmentUC().Approve(context.Background(), testCompanyID, testUserID, adj.ID))

	assert.Equal(t, "4", env.stock(productX, warehouseA).QuantityOnHand.String())
	movs := env.movementsFor(productX, warehouseA)
	require.Len(t, movs, 1)
	assert.Equal(t, "-6", movs[0].Quantity.String())
}

func TestAdjustment_ApproveCreaFilaSiNoExiste(t *testing.T) {
	env := newTestEnv()
	adj := draftAdjustment(t, env, 0, 7)

	require.NoError(t, env.adjustmentUC().Approve(context.Background(), testCompanyID, testUserID, adj.ID))

	stock := env.stock(productX, warehouseA)
	require.NotNil(t, stock, "aprobar sobre par sin fila debe crearla")
	assert.Equal(t, "7", stock.QuantityOnHand.String())
	assert.Equal(t, "0", stock.QuantityReserved.String())
}

func TestAdjustment_ApproveSinCambioNoRegistraMovimiento(t *testing.T) {
	env := newTestEnv()
	env.seedStock(productX, warehouseA, 10, 0)
	adj := draftAdjustment(t, env, 10, 10)

	require.NoError(t, env.adjustmentUC().Approve(context.Background(), testCompanyID, testUserID, adj.ID))

	assert.Empty(t, env.movementsFor(productX, warehouseA), "delta cero no genera movimiento")
	assert.Equal(t, entity.AdjustmentStatusApproved, env.db.adjustments[adj.ID].Status)
}

func TestAdjustment_ApproveDosVecesFalla(t *testing.T) {
	env := newTestEnv()
	env.seedStock(productX, warehouseA, 10, 0)
	adj := draftAdjustment(t, env, 10, 15)

	require.NoError(t, env.adjustmentUC().Approve(context.Background(), testCompanyID, testUserID, adj.ID))
	err := env.adjustmentUC().Approve(context.Background(), testCompanyID, testUserID, adj.ID)

	assert.ErrorIs(t, err, domain.ErrInvalidState, "re-aprobar no es no-op, debe fallar")
	assert.Equal(t, "15", env.stock(productX, warehouseA).QuantityOnHand.String(), "el saldo no debe aplicarse dos veces")
	assert.Len(t, env.movementsFor(productX, warehouseA), 1)
}

func TestAdjustment_ApproveBajoReservadoFalla(t *testing.T) {
	env := newTestEnv()
	env.seedStock(productX, warehouseA, 10, 5)
	adj := draftAdjustment(t, env, 10, 3)

	err := env.adjustmentUC().Approve(context.Background(), testCompanyID, testUserID, adj.ID)

	assert.ErrorIs(t, err, domain.ErrInvariantViolation, "target por debajo de lo reservado dejaría available negativo")
	stock := env.stock(productX, warehouseA)
	assert.Equal(t, "10", stock.QuantityOnHand.String(), "rollback: el saldo no debe cambiar")
	assert.Equal(t, entity.AdjustmentStatusDraft, env.db.adjustments[adj.ID].Status)
}

func TestAdjustment_CancelSoloDesdeDraft(t *testing.T) {
	env := newTestEnv()
	env.seedStock(productX, warehouseA, 10, 0)
	adj := draftAdjustment(t, env, 10, 15)

	require.NoError(t, env.adjustmentUC().Cancel(context.Background(), testCompanyID, testUserID, adj.ID))
	assert.Equal(t, entity.AdjustmentStatusCancelled, env.db.adjustments[adj.ID].Status)
	assert.Equal(t, "10", env.stock(productX, warehouseA).QuantityOnHand.String())

	// cancelado es terminal
	err := env.adjustmentUC().Approve(context.Background(), testCompanyID, testUserID, adj.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestAdjustment_CancelAprobadoFalla(t *testing.T) {
	env := newTestEnv()
	env.seedStock(productX, warehouseA, 10, 0)
	adj := draftAdjustment(t, env, 10, 15)
	require.NoError(t, env.adjustmentUC().Approve(context.Background(), testCompanyID, testUserID, adj.ID))

	err := env.adjustmentUC().Cancel(context.Background(), testCompanyID, testUserID, adj.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "un ajuste aprobado ya mutó el ledger y no puede cancelarse")
}

func TestAdjustment_OtraEmpresaNoAccede(t *testing.T) {
	env := newTestEnv()
	env.seedStock(productX, warehouseA, 10, 0)
	adj := draftAdjustment(t, env, 10, 15)

	err := env.adjustmentUC().Approve(context.Background(), otherCompanyID, testUserID, adj.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAdjustment_CreateValidaEntrada(t *testing.T) {
	env := newTestEnv()
	uc := env.adjustmentUC()

	_, err := uc.Create(context.Background(), testCompanyID, testUserID, inventory.CreateAdjustmentInput{WarehouseID: warehouseA})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "ajuste sin líneas")

	_, err = uc.Create(context.Background(), testCompanyID, testUserID, inventory.CreateAdjustmentInput{
		WarehouseID: warehouseA,
		Lines:       []inventory.AdjustmentLineInput{{ProductID: productX, QuantityAfter: decimal.NewFromInt(-1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad objetivo negativa")

	_, err = uc.Create(context.Background(), testCompanyID, testUserID, inventory.CreateAdjustmentInput{
		WarehouseID: "no-existe",
		Lines:       []inventory.AdjustmentLineInput{{ProductID: productX, QuantityAfter: decimal.NewFromInt(5)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "bodega inexistente")
}
