package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/dineflow/table-orders-api/models"
	"github.com/dineflow/table-orders-api/services"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest represents the request body for submitting a cart
type CreateOrderRequest struct {
	TableNumber  int                `json:"tableNumber" binding:"required,gt=0"`
	CustomerName string             `json:"customerName" binding:"required"`
	Items        []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes        string             `json:"notes"`
}

// OrderItemRequest is one cart line
type OrderItemRequest struct {
	Name     string           `json:"name" binding:"required"`
	Quantity int              `json:"quantity" binding:"required,gt=0"`
	Price    *decimal.Decimal `json:"price" binding:"required"`
}

// UpdateOrderRequest is a sparse patch; omitted or empty fields are left unchanged
type UpdateOrderRequest = services.OrderPatch

// StatusOption is one entry of the status catalogue
type StatusOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OrderController serves the order endpoints
type OrderController struct {
	orders *services.OrderService
}

// NewOrderController creates an order controller
func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// CreateOrder handles POST /api/v1/orders - submits a cart as a new order
func (ctl *OrderController) CreateOrder(c *gin.Context) {
	// Parse request body
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data", err.Error())
		return
	}

	items := lo.Map(req.Items, func(item OrderItemRequest, _ int) models.OrderLineItem {
		return models.OrderLineItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    lo.FromPtr(item.Price),
		}
	})

	order, err := ctl.orders.Create(c.Request.Context(), services.CreateOrderInput{
		TableNumber:  req.TableNumber,
		CustomerName: req.CustomerName,
		Items:        items,
		Notes:        req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusCreated, order)
}

// ListOrders handles GET /api/v1/orders - lists orders newest first, filtered by
// status, paymentStatus and date
func (ctl *OrderController) ListOrders(c *gin.Context) {
	var filter services.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", err.Error())
		return
	}

	orders, err := ctl.orders.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, orders)
}

// GetOrder handles GET /api/v1/orders/:id
func (ctl *OrderController) GetOrder(c *gin.Context) {
	order, err := ctl.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, order)
}

// UpdateOrder handles PUT/PATCH /api/v1/orders/:id - staff status, payment,
// table and notes changes
func (ctl *OrderController) UpdateOrder(c *gin.Context) {
	var req UpdateOrderRequest
	// an empty body is an empty patch
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data", err.Error())
		return
	}

	order, err := ctl.orders.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, order)
}

// DeleteOrder handles DELETE /api/v1/orders/:id - permanently removes an order
func (ctl *OrderController) DeleteOrder(c *gin.Context) {
	if err := ctl.orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order removed",
	})
}

// ListStatuses handles GET /api/v1/orders/statuses - the status and payment
// status options shown on the dashboard
func (ctl *OrderController) ListStatuses(c *gin.Context) {
	statuses := lo.Map(models.OrderStatuses(), func(s models.OrderStatus, _ int) StatusOption {
		return StatusOption{Value: string(s), Label: s.Label()}
	})
	paymentStatuses := lo.Map(models.PaymentStatuses(), func(s models.PaymentStatus, _ int) StatusOption {
		return StatusOption{Value: string(s), Label: s.Label()}
	})

	respondData(c, http.StatusOK, gin.H{
		"statuses":        statuses,
		"paymentStatuses": paymentStatuses,
	})
}
