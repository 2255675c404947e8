package repository

import "github.com/jhoicas/stockledger-api/internal/domain/entity"

// InventoryItemRepository define el puerto de persistencia para los saldos del ledger.
// El único escritor es el Store de internal/application/ledger; los workflows nunca
// mutan filas directamente para no romper available = on_hand - reserved.
type InventoryItemRepository interface {
	// Get devuelve el saldo o nil si no existe fila para el par producto+bodega.
	Get(productID, warehouseID string) (*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila para la transacción actual (SELECT FOR UPDATE).
	// Devuelve nil si no existe.
	GetForUpdate(productID, warehouseID string) (*entity.InventoryItem, error)
	Upsert(item *entity.InventoryItem) error
	ListByWarehouse(companyID, warehouseID string, limit, offset int) ([]*entity.InventoryItem, error)
}
