package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fusionorder/fusion-order-api/config"
	"github.com/fusionorder/fusion-order-api/models"
	"github.com/fusionorder/fusion-order-api/services"
)

// CreateOrderRequest represents the request body for submitting an order
// form. The product is referenced by id only; anything else the client says
// about the product is ignored.
type CreateOrderRequest struct {
	ProductID    uint    `json:"product_id" binding:"required"`
	Quantity     int     `json:"quantity" binding:"required,gte=1"`
	ContactName  string  `json:"contact_name" binding:"required,max=50"`
	ContactPhone string  `json:"contact_phone" binding:"required,max=20"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email"`
	Requirements string  `json:"requirements"`
}

// CreateOrder handles POST /api/orders
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	order := models.OrderForm{
		ProductID:    req.ProductID,
		Quantity:     req.Quantity,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
		Requirements: req.Requirements,
	}

	view, err := services.NewOrderService(config.GetDB()).Create(&order)
	if err != nil {
		Fail(c, err)
		return
	}
	OKMessage(c, "order submitted", view)
}

// ListOrders handles GET /api/orders with optional productId and status
// filters.
func ListOrders(c *gin.Context) {
	svc := services.NewOrderService(config.GetDB())

	var (
		views []*services.OrderView
		err   error
	)
	switch {
	case c.Query("productId") != "":
		var productID uint64
		productID, err = strconv.ParseUint(c.Query("productId"), 10, 64)
		if err != nil {
			BadRequest(c, "invalid productId")
			return
		}
		views, err = svc.ListByProduct(uint(productID))
	case c.Query("status") != "":
		views, err = svc.ListByStatus(models.OrderStatus(c.Query("status")))
	default:
		views, err = svc.List()
	}
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, views)
}

// GetOrder handles GET /api/orders/:id
func GetOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	view, err := services.NewOrderService(config.GetDB()).Get(id)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, view)
}

// UpdateOrderStatus handles PUT /api/orders/:id/status?status=X
func UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	status := c.Query("status")
	if status == "" {
		BadRequest(c, "status is required")
		return
	}

	view, err := services.NewOrderService(config.GetDB()).UpdateStatus(id, models.OrderStatus(status))
	if err != nil {
		Fail(c, err)
		return
	}
	OKMessage(c, "order status updated", view)
}

// DeleteOrder handles DELETE /api/orders/:id
func DeleteOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := services.NewOrderService(config.GetDB()).Delete(id); err != nil {
		Fail(c, err)
		return
	}
	OKMessage(c, "order deleted", nil)
}
