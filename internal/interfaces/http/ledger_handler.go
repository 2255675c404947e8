package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// LedgerHandler lecturas del ledger: saldos, movimientos y reconciliación (protegido).
type LedgerHandler struct {
	uc *inventory.QueryUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *inventory.QueryUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// GetItem devuelve el saldo de un producto en una bodega.
// GET /api/inventory/items/:warehouseID/:productID
func (h *LedgerHandler) GetItem(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	item, err := h.uc.GetItem(c.Context(), companyID, c.Params("productID"), c.Params("warehouseID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toInventoryItemResponse(item))
}

// ListItems devuelve los saldos de una bodega.
// GET /api/inventory/items/:warehouseID
func (h *LedgerHandler) ListItems(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	items, err := h.uc.ListItems(c.Context(), companyID, c.Params("warehouseID"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.InventoryItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toInventoryItemResponse(item))
	}
	return c.JSON(out)
}

// ListMovements lista movimientos por bodega o por producto según query params.
// GET /api/inventory/movements?warehouse_id=...&product_id=...&from=...&to=...
func (h *LedgerHandler) ListMovements(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	from, err := parseDateQuery(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido, usar RFC3339"})
	}
	to, err := parseDateQuery(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido, usar RFC3339"})
	}

	warehouseID := c.Query("warehouse_id")
	productID := c.Query("product_id")
	var movements []*entity.StockMovement
	switch {
	case warehouseID != "":
		movements, err = h.uc.ListMovementsByWarehouse(c.Context(), companyID, warehouseID, from, to, page.Limit, page.Offset)
	case productID != "":
		movements, err = h.uc.ListMovementsByProduct(c.Context(), companyID, productID, from, to, page.Limit, page.Offset)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id o product_id requerido"})
	}
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.StockMovementResponse{
			ID:            m.ID,
			ProductID:     m.ProductID,
			WarehouseID:   m.WarehouseID,
			Type:          m.Type,
			ReferenceType: m.ReferenceType,
			ReferenceID:   m.ReferenceID,
			Quantity:      m.Quantity,
			UnitCost:      m.UnitCost,
			MovementDate:  m.MovementDate,
			CreatedBy:     m.CreatedBy,
		})
	}
	return c.JSON(out)
}

// Reconcile contrasta on_hand contra la suma de movimientos de cada producto de la bodega.
// GET /api/inventory/reconcile/:warehouseID
func (h *LedgerHandler) Reconcile(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	rows, err := h.uc.ReconcileWarehouse(c.Context(), companyID, c.Params("warehouseID"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ReconciliationRowResponse, 0, len(rows))
	consistent := true
	for _, row := range rows {
		if !row.Consistent {
			consistent = false
		}
		out = append(out, dto.ReconciliationRowResponse{
			ProductID:   row.ProductID,
			OnHand:      row.OnHand,
			MovementSum: row.MovementSum,
			Delta:       row.Delta,
			Consistent:  row.Consistent,
		})
	}
	return c.JSON(fiber.Map{"consistent": consistent, "rows": out})
}

func toInventoryItemResponse(item *entity.InventoryItem) dto.InventoryItemResponse {
	return dto.InventoryItemResponse{
		ProductID:         item.ProductID,
		WarehouseID:       item.WarehouseID,
		QuantityOnHand:    item.QuantityOnHand,
		QuantityReserved:  item.QuantityReserved,
		QuantityAvailable: item.QuantityAvailable,
		LastStockDate:     item.LastStockDate,
	}
}

func parseDateQuery(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// también se acepta fecha simple
		t, err = time.Parse("2006-01-02", s)
		if err != nil {
			return nil, err
		}
	}
	return &t, nil
}
