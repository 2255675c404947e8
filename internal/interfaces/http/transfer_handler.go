package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// TransferHandler maneja los traslados entre bodegas (protegido).
type TransferHandler struct {
	uc *inventory.TransferUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *inventory.TransferUseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create crea un traslado en pending. POST /api/stock-transfers
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]inventory.TransferLineInput, 0, len(in.Lines))
	for _, line := range in.Lines {
		lines = append(lines, inventory.TransferLineInput{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	transfer, err := h.uc.Create(c.Context(), companyID, userID, inventory.CreateTransferInput{
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Notes:           in.Notes,
		Lines:           lines,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransferResponse(transfer, nil))
}

// Process descuenta el origen y pasa a in_transit. POST /api/stock-transfers/:id/process
func (h *TransferHandler) Process(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if err := h.uc.Process(c.Context(), companyID, userID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "traslado en tránsito"})
}

// Complete acredita el destino con lo recibido. POST /api/stock-transfers/:id/complete
func (h *TransferHandler) Complete(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	var in dto.CompleteTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	received := make([]inventory.ReceivedLineInput, 0, len(in.Lines))
	for _, line := range in.Lines {
		received = append(received, inventory.ReceivedLineInput{ItemID: line.ItemID, QuantityReceived: line.QuantityReceived})
	}
	if err := h.uc.Complete(c.Context(), companyID, userID, c.Params("id"), received); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "traslado completado"})
}

// Cancel anula el traslado. POST /api/stock-transfers/:id/cancel
func (h *TransferHandler) Cancel(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if err := h.uc.Cancel(c.Context(), companyID, userID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "traslado cancelado"})
}

// GetByID devuelve el traslado con sus líneas. GET /api/stock-transfers/:id
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	transfer, items, err := h.uc.GetByID(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransferResponse(transfer, items))
}

// List devuelve los traslados de la empresa. GET /api/stock-transfers
func (h *TransferHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	transfers, err := h.uc.List(c.Context(), companyID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.TransferResponse, 0, len(transfers))
	for _, transfer := range transfers {
		out = append(out, toTransferResponse(transfer, nil))
	}
	return c.JSON(out)
}

func toTransferResponse(transfer *entity.StockTransfer, items []*entity.StockTransferItem) dto.TransferResponse {
	resp := dto.TransferResponse{
		ID:              transfer.ID,
		FromWarehouseID: transfer.FromWarehouseID,
		ToWarehouseID:   transfer.ToWarehouseID,
		Status:          transfer.Status,
		Notes:           transfer.Notes,
		ProcessedAt:     transfer.ProcessedAt,
		CompletedAt:     transfer.CompletedAt,
		CreatedAt:       transfer.CreatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.TransferItemResponse{
			ID:               item.ID,
			ProductID:        item.ProductID,
			Quantity:         item.Quantity,
			QuantityReceived: item.QuantityReceived,
		})
	}
	return resp
}
