package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// InvoiceHandler maneja facturas y su reconciliación contra el ledger (protegido):
// disponibilidad, reserva, liberación y pago.
type InvoiceHandler struct {
	uc *inventory.FulfillmentUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *inventory.FulfillmentUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// Create crea una factura en draft. POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]inventory.InvoiceLineInput, 0, len(in.Lines))
	for _, line := range in.Lines {
		lines = append(lines, inventory.InvoiceLineInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	invoice, err := h.uc.CreateInvoice(c.Context(), companyID, userID, inventory.CreateInvoiceInput{
		CustomerID: in.CustomerID,
		Number:     in.Number,
		Date:       in.Date,
		Lines:      lines,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toInvoiceResponse(invoice, nil))
}

// GetByID devuelve la factura con sus líneas. GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	invoice, items, err := h.uc.GetByID(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toInvoiceResponse(invoice, items))
}

// CheckAvailability consulta la disponibilidad de las líneas en una bodega, sin mutar.
// GET /api/invoices/:id/availability?warehouse_id=...
func (h *InvoiceHandler) CheckAvailability(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id requerido"})
	}
	result, err := h.uc.CheckAvailability(c.Context(), companyID, c.Params("id"), warehouseID)
	if err != nil {
		return respondError(c, err)
	}
	out := dto.AvailabilityResponse{
		InvoiceID:    result.InvoiceID,
		WarehouseID:  result.WarehouseID,
		AllAvailable: result.AllAvailable,
	}
	for _, line := range result.Lines {
		out.Lines = append(out.Lines, dto.LineAvailabilityResponse{
			ProductID:         line.ProductID,
			Requested:         line.Requested,
			QuantityAvailable: line.QuantityAvailable,
			Available:         line.Available,
		})
	}
	return c.JSON(out)
}

// Reserve compromete stock para la factura (todo o nada). POST /api/invoices/:id/reserve
func (h *InvoiceHandler) Reserve(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	var in dto.FulfillmentRequest
	if err := c.BodyParser(&in); err != nil || in.WarehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id requerido"})
	}
	if err := h.uc.Reserve(c.Context(), companyID, userID, c.Params("id"), in.WarehouseID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "stock reservado"})
}

// Release revierte la reserva activa de la factura. POST /api/invoices/:id/release
func (h *InvoiceHandler) Release(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if err := h.uc.Release(c.Context(), companyID, userID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "reserva liberada"})
}

// ProcessPayment consume el stock y deja la factura en paid. POST /api/invoices/:id/pay
func (h *InvoiceHandler) ProcessPayment(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	var in dto.FulfillmentRequest
	if err := c.BodyParser(&in); err != nil || in.WarehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id requerido"})
	}
	if err := h.uc.ProcessPayment(c.Context(), companyID, userID, c.Params("id"), in.WarehouseID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "factura pagada, stock descontado"})
}

func toInvoiceResponse(invoice *entity.Invoice, items []*entity.InvoiceItem) dto.InvoiceResponse {
	resp := dto.InvoiceResponse{
		ID:         invoice.ID,
		CustomerID: invoice.CustomerID,
		Number:     invoice.Number,
		Date:       invoice.Date,
		Status:     invoice.Status,
		GrandTotal: invoice.GrandTotal,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return resp
}
