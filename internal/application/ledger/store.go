package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Store es el único escritor de inventory_items. Aplica deltas con signo sobre
// on_hand y reserved, recalcula available = on_hand - reserved tras cada mutación
// y aborta con ErrInvariantViolation si algún saldo quedaría negativo.
// Todos los métodos deben invocarse con repositorios atados a la transacción del
// workflow que origina el cambio: mutación y movimiento comparten Commit/Rollback.
type Store struct{}

// NewStore construye el store del ledger.
func NewStore() *Store {
	return &Store{}
}

// Lock bloquea la fila del par producto+bodega (SELECT FOR UPDATE) y la devuelve.
// Devuelve nil si la fila no existe; el workflow decide si eso es ErrNotFound
// o la primera entrada del par.
func (s *Store) Lock(itemRepo repository.InventoryItemRepository, productID, warehouseID string) (*entity.InventoryItem, error) {
	return itemRepo.GetForUpdate(productID, warehouseID)
}

// Apply aplica los deltas sobre una fila ya bloqueada (o nil si no existe).
// Si la fila no existe solo se permite crear con onHandDelta > 0 y reservedDelta = 0
// (primera entrada por recepción, traslado entrante o ajuste); cualquier otra
// operación sobre fila ausente falla con ErrNotFound.
func (s *Store) Apply(
	itemRepo repository.InventoryItemRepository,
	item *entity.InventoryItem,
	companyID, productID, warehouseID string,
	onHandDelta, reservedDelta decimal.Decimal,
	at time.Time,
) (*entity.InventoryItem, error) {
	if item == nil {
		if !onHandDelta.GreaterThan(decimal.Zero) || !reservedDelta.IsZero() {
			return nil, domain.ErrNotFound
		}
		item = &entity.InventoryItem{
			ID:               uuid.New().String(),
			CompanyID:        companyID,
			ProductID:        productID,
			WarehouseID:      warehouseID,
			QuantityOnHand:   decimal.Zero,
			QuantityReserved: decimal.Zero,
			CreatedAt:        at,
		}
	}

	newOnHand := item.QuantityOnHand.Add(onHandDelta)
	newReserved := item.QuantityReserved.Add(reservedDelta)
	newAvailable := newOnHand.Sub(newReserved)
	// Barrera defensiva: los workflows pre-validan disponibilidad; llegar aquí
	// con saldos negativos significa un caller roto y aborta la transacción.
	if newOnHand.IsNegative() || newReserved.IsNegative() || newAvailable.IsNegative() {
		return nil, domain.ErrInvariantViolation
	}

	item.QuantityOnHand = newOnHand
	item.QuantityReserved = newReserved
	item.QuantityAvailable = newAvailable
	item.LastStockDate = at
	item.UpdatedAt = at
	if err := itemRepo.Upsert(item); err != nil {
		return nil, err
	}
	return item, nil
}

// ApplyDelta bloquea la fila y aplica los deltas en un solo paso. Conveniencia para
// los caminos de crédito (recepción de compra, destino de traslado) donde no hay
// pre-validación previa sobre la fila.
func (s *Store) ApplyDelta(
	itemRepo repository.InventoryItemRepository,
	companyID, productID, warehouseID string,
	onHandDelta, reservedDelta decimal.Decimal,
	at time.Time,
) (*entity.InventoryItem, error) {
	item, err := s.Lock(itemRepo, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	return s.Apply(itemRepo, item, companyID, productID, warehouseID, onHandDelta, reservedDelta, at)
}

// SetOnHand fija on_hand a un valor absoluto (aprobación de ajustes) y devuelve el
// delta con signo realmente aplicado, que es el que debe registrarse como movimiento.
// Si la fila no existe se crea con on_hand = target y reserved = 0.
// Falla con ErrInvariantViolation si el nuevo available quedaría negativo
// (target menor que lo ya reservado).
func (s *Store) SetOnHand(
	itemRepo repository.InventoryItemRepository,
	companyID, productID, warehouseID string,
	target decimal.Decimal,
	at time.Time,
) (decimal.Decimal, error) {
	if target.IsNegative() {
		return decimal.Zero, domain.ErrInvariantViolation
	}
	item, err := s.Lock(itemRepo, productID, warehouseID)
	if err != nil {
		return decimal.Zero, err
	}
	current := decimal.Zero
	if item != nil {
		current = item.QuantityOnHand
	}
	delta := target.Sub(current)
	if item == nil {
		item = &entity.InventoryItem{
			ID:               uuid.New().String(),
			CompanyID:        companyID,
			ProductID:        productID,
			WarehouseID:      warehouseID,
			QuantityOnHand:   decimal.Zero,
			QuantityReserved: decimal.Zero,
			CreatedAt:        at,
		}
	}
	newAvailable := target.Sub(item.QuantityReserved)
	if newAvailable.IsNegative() {
		return decimal.Zero, domain.ErrInvariantViolation
	}
	item.QuantityOnHand = target
	item.QuantityAvailable = newAvailable
	item.LastStockDate = at
	item.UpdatedAt = at
	if err := itemRepo.Upsert(item); err != nil {
		return decimal.Zero, err
	}
	return delta, nil
}
