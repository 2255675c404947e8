package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// AdjustmentHandler maneja los ajustes de inventario (protegido).
type AdjustmentHandler struct {
	uc *inventory.AdjustmentUseCase
}

// NewAdjustmentHandler construye el handler.
func NewAdjustmentHandler(uc *inventory.AdjustmentUseCase) *AdjustmentHandler {
	return &AdjustmentHandler{uc: uc}
}

// Create crea un ajuste en borrador. POST /api/stock-adjustments
func (h *AdjustmentHandler) Create(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	var in dto.CreateAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]inventory.AdjustmentLineInput, 0, len(in.Lines))
	for _, line := range in.Lines {
		lines = append(lines, inventory.AdjustmentLineInput{
			ProductID:      line.ProductID,
			QuantityBefore: line.QuantityBefore,
			QuantityAfter:  line.QuantityAfter,
		})
	}
	adj, err := h.uc.Create(c.Context(), companyID, userID, inventory.CreateAdjustmentInput{
		WarehouseID: in.WarehouseID,
		Reason:      in.Reason,
		Lines:       lines,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAdjustmentResponse(adj, nil))
}

// Approve aplica el ajuste al ledger. POST /api/stock-adjustments/:id/approve
func (h *AdjustmentHandler) Approve(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if err := h.uc.Approve(c.Context(), companyID, userID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "ajuste aprobado"})
}

// Cancel anula un ajuste en borrador. POST /api/stock-adjustments/:id/cancel
func (h *AdjustmentHandler) Cancel(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if err := h.uc.Cancel(c.Context(), companyID, userID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "ajuste cancelado"})
}

// GetByID devuelve el ajuste con sus líneas. GET /api/stock-adjustments/:id
func (h *AdjustmentHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	adj, items, err := h.uc.GetByID(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toAdjustmentResponse(adj, items))
}

// List devuelve los ajustes de la empresa. GET /api/stock-adjustments
func (h *AdjustmentHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	adjustments, err := h.uc.List(c.Context(), companyID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AdjustmentResponse, 0, len(adjustments))
	for _, adj := range adjustments {
		out = append(out, toAdjustmentResponse(adj, nil))
	}
	return c.JSON(out)
}

func toAdjustmentResponse(adj *entity.StockAdjustment, items []*entity.StockAdjustmentItem) dto.AdjustmentResponse {
	resp := dto.AdjustmentResponse{
		ID:          adj.ID,
		WarehouseID: adj.WarehouseID,
		Reason:      adj.Reason,
		Status:      adj.Status,
		ApprovedBy:  adj.ApprovedBy,
		ApprovedAt:  adj.ApprovedAt,
		CreatedAt:   adj.CreatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.AdjustmentItemResponse{
			ID:             item.ID,
			ProductID:      item.ProductID,
			QuantityBefore: item.QuantityBefore,
			QuantityAfter:  item.QuantityAfter,
			QuantityChange: item.QuantityChange,
		})
	}
	return resp
}
