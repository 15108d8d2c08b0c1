package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/storefront_backend/middlewares"
	"github.com/mmdatafocus/storefront_backend/models"
	"github.com/mmdatafocus/storefront_backend/workflow"
	"github.com/shopspring/decimal"
)

type createOrderRequest struct {
	CustomerId int                  `json:"customer_id" binding:"required,gt=0"`
	Products   []workflow.OrderItem `json:"products" binding:"required,min=1,dive"`
}

type orderLineResponse struct {
	models.OrderProduct
	Product *models.Product `json:"product,omitempty"`
}

type orderResponse struct {
	ID            int                  `json:"id"`
	Customer      *models.Customer     `json:"customer"`
	OrderProducts []*orderLineResponse `json:"order_products"`
	Total         decimal.Decimal      `json:"total"`
}

func (api *API) createOrder(c *gin.Context) {
	var input createOrderRequest
	if !bindJSON(c, &input) {
		return
	}
	order, err := api.Orders.CreateOrder(c.Request.Context(), input.CustomerId, input.Products)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":             order.ID,
		"customer":       order.Customer,
		"order_products": order.OrderProducts,
		"total":          order.Total(),
	})
}

// getOrder reads the order through the cache, then resolves its customer and
// products with the request loaders.
func (api *API) getOrder(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	order, err := models.GetOrder(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	customer, err := middlewares.GetCustomer(ctx, order.CustomerId)
	if err != nil {
		respondError(c, err)
		return
	}

	lines := make([]*orderLineResponse, 0, len(order.OrderProducts))
	for _, line := range order.OrderProducts {
		product, err := middlewares.GetProduct(ctx, line.ProductId)
		if err != nil {
			respondError(c, err)
			return
		}
		lines = append(lines, &orderLineResponse{OrderProduct: line, Product: product})
	}

	c.JSON(http.StatusOK, orderResponse{
		ID:            order.ID,
		Customer:      customer,
		OrderProducts: lines,
		Total:         order.Total(),
	})
}

func (api *API) listCustomerOrders(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if _, err := middlewares.GetCustomer(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	orders, err := models.GetOrdersByCustomer(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	orderIds := make([]int, 0, len(orders))
	for _, order := range orders {
		orderIds = append(orderIds, order.ID)
	}
	lines, errs := middlewares.GetOrderProductsMany(ctx, orderIds)
	for _, err := range errs {
		if err != nil {
			respondError(c, err)
			return
		}
	}

	results := make([]gin.H, 0, len(orders))
	for i, order := range orders {
		for _, line := range lines[i] {
			order.OrderProducts = append(order.OrderProducts, *line)
		}
		results = append(results, gin.H{
			"id":             order.ID,
			"customer_id":    order.CustomerId,
			"order_products": order.OrderProducts,
			"total":          order.Total(),
			"created_at":     order.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, results)
}
