package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// PurchaseOrderHandler maneja órdenes de compra y su recepción (protegido).
type PurchaseOrderHandler struct {
	uc *inventory.ReceivingUseCase
}

// NewPurchaseOrderHandler construye el handler.
func NewPurchaseOrderHandler(uc *inventory.ReceivingUseCase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc}
}

// Create crea una orden de compra en draft. POST /api/purchase-orders
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]inventory.OrderLineInput, 0, len(in.Lines))
	for _, line := range in.Lines {
		lines = append(lines, inventory.OrderLineInput{
			ProductID:       line.ProductID,
			QuantityOrdered: line.QuantityOrdered,
			UnitCost:        line.UnitCost,
		})
	}
	order, err := h.uc.Create(c.Context(), companyID, userID, inventory.CreateOrderInput{
		VendorID:  in.VendorID,
		Number:    in.Number,
		OrderDate: in.OrderDate,
		Lines:     lines,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(order, nil))
}

// Receive aplica una recepción (posiblemente parcial) a una bodega.
// POST /api/purchase-orders/:id/receive
func (h *PurchaseOrderHandler) Receive(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	var in dto.ReceiveOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]inventory.ReceiveLineInput, 0, len(in.Lines))
	for _, line := range in.Lines {
		lines = append(lines, inventory.ReceiveLineInput{ItemID: line.ItemID, Quantity: line.Quantity})
	}
	if err := h.uc.Receive(c.Context(), companyID, userID, c.Params("id"), in.WarehouseID, lines); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "recepción aplicada"})
}

// GetByID devuelve la orden con sus líneas. GET /api/purchase-orders/:id
func (h *PurchaseOrderHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	order, items, err := h.uc.GetByID(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderResponse(order, items))
}

// List devuelve las órdenes de la empresa. GET /api/purchase-orders
func (h *PurchaseOrderHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	orders, err := h.uc.List(c.Context(), companyID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, toOrderResponse(order, nil))
	}
	return c.JSON(out)
}

func toOrderResponse(order *entity.PurchaseOrder, items []*entity.PurchaseOrderItem) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:           order.ID,
		VendorID:     order.VendorID,
		Number:       order.Number,
		Status:       order.Status,
		OrderDate:    order.OrderDate,
		ReceivedDate: order.ReceivedDate,
		CreatedAt:    order.CreatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:               item.ID,
			ProductID:        item.ProductID,
			QuantityOrdered:  item.QuantityOrdered,
			QuantityReceived: item.QuantityReceived,
			UnitCost:         item.UnitCost,
		})
	}
	return resp
}
