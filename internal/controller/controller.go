package controller

import (
	"errors"
	"net/http"

	"github.com/ShaminAkarsha/Swiftlogistics-CMS1/internal/dto"
	"github.com/ShaminAkarsha/Swiftlogistics-CMS1/internal/model"
	"github.com/ShaminAkarsha/Swiftlogistics-CMS1/internal/repository"
	"github.com/ShaminAkarsha/Swiftlogistics-CMS1/internal/service"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Service *service.OrderService
}

func NewOrderController(s *service.OrderService) *OrderController {
	return &OrderController{Service: s}
}

// POST /api/orders
func (ctl *OrderController) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	order, err := ctl.Service.CreateOrder(c.Request.Context(), req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success":       false,
				"error":         "Missing required fields",
				"missingFields": verr.MissingFields,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Order created successfully",
		"order":   order,
	})
}

// GET /api/orders?status=&search=&limit=&offset=
func (ctl *OrderController) ListOrders(c *gin.Context) {
	var q dto.ListOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	res, err := ctl.Service.ListOrders(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	items := res.Items
	if items == nil {
		items = []model.Order{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"items":   items,
		"total":   res.Total,
		"hasMore": res.HasMore,
	})
}

// GET /api/orders/summary
func (ctl *OrderController) OrderSummary(c *gin.Context) {
	counts, err := ctl.Service.StatusCounts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "counts": counts})
}

// GET /api/orders/:trackingNumber
func (ctl *OrderController) GetOrder(c *gin.Context) {
	trackingNumber := c.Param("trackingNumber")

	order, err := ctl.Service.GetOrder(c.Request.Context(), trackingNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// PATCH /api/orders/:trackingNumber/status
func (ctl *OrderController) UpdateStatus(c *gin.Context) {
	trackingNumber := c.Param("trackingNumber")

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Status is required"})
		return
	}

	order, err := ctl.Service.UpdateStatus(c.Request.Context(), trackingNumber, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order status updated",
		"order":   order,
	})
}
