package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/trexivo/tinova-pos/internal/application/service"
	"github.com/trexivo/tinova-pos/internal/presentation/http/dto/request"
	"github.com/trexivo/tinova-pos/internal/presentation/http/dto/response"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	ledgerService  *service.LedgerService
	printerService *service.PrinterService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(ledgerService *service.LedgerService, printerService *service.PrinterService) *OrderHandler {
	return &OrderHandler{
		ledgerService:  ledgerService,
		printerService: printerService,
	}
}

// List handles listing the ledger, optionally filtered by a search term
func (h *OrderHandler) List(c *gin.Context) {
	var req request.OrderFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	orders, err := h.ledgerService.ListOrders(c.Request.Context(), req.Search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Orders retrieved successfully", orders)
}

// Create handles creating a new order
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.ledgerService.CreateOrder(c.Request.Context(), &service.CreateOrderInput{
		ClientName: req.ClientName,
		Phone:      req.Phone,
		Service:    req.Service,
		Paid:       req.Paid,
		Due:        req.Due,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// Get handles getting a single order
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.ledgerService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// Advance handles moving an order to the next work status
func (h *OrderHandler) Advance(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.ledgerService.AdvanceStatus(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order status updated", order)
}

// Cancel handles cancelling an order. The dashboard confirms with the user
// before calling; the operation itself is unconditional.
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.ledgerService.CancelOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order cancelled", order)
}

// Settle handles reclassifying an order's outstanding due as paid
func (h *OrderHandler) Settle(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.ledgerService.SettleDue(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order due settled", order)
}

// Delete handles removing an order permanently
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	if err := h.ledgerService.DeleteOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Receipt handles composing the printable receipt view for an order
func (h *OrderHandler) Receipt(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	receipt, err := h.printerService.BuildReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", receipt)
}

// PrintReceipt handles sending an order's receipt to the configured printer
func (h *OrderHandler) PrintReceipt(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	receipt, err := h.printerService.PrintOrderReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt sent to printer", receipt)
}

// orderID parses the :id route parameter, writing a 400 response on failure.
func orderID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return uuid.Nil, false
	}
	return id, true
}
