package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/storefront_backend/config"
	"github.com/mmdatafocus/storefront_backend/models"
	"github.com/mmdatafocus/storefront_backend/utils"
	"github.com/mmdatafocus/storefront_backend/workflow"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type orderCreator interface {
	CreateOrder(ctx context.Context, customerId int, items []workflow.OrderItem) (*models.Order, error)
}

type transactionRecorder interface {
	CreateTransaction(ctx context.Context, title string, value decimal.Decimal, transactionType string, categoryTitle string) (*models.Transaction, error)
	ListTransactions(ctx context.Context) (*workflow.TransactionList, error)
	ImportTransactions(ctx context.Context, rows []*models.TransactionImportRow) ([]*models.Transaction, error)
}

type API struct {
	Orders       orderCreator
	Transactions transactionRecorder
	Logger       *logrus.Logger
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, utils.ErrorRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, utils.ErrorInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, utils.ErrorInvalidState):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError hides internal errors from the caller and records them for customErrorLogger.
func respondError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func bindJSON(c *gin.Context, dest any) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func paramId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (api *API) register(r gin.IRoutes) {
	r.POST("/customers", api.createCustomer)
	r.GET("/customers/:id", api.getCustomer)
	r.GET("/customers/:id/orders", api.listCustomerOrders)
	r.POST("/products", api.createProduct)
	r.GET("/products", api.listProducts)
	r.POST("/products/:id/image", api.uploadProductImage)
	r.POST("/orders", api.createOrder)
	r.GET("/orders/:id", api.getOrder)
	r.POST("/transactions", api.createTransaction)
	r.GET("/transactions", api.listTransactions)
	r.POST("/transactions/import", api.importTransactions)
	r.GET("/transactions/export", api.exportTransactions)
	r.GET("/reports/categories", api.categoryReport)
}

func (api *API) logger() *logrus.Logger {
	if api.Logger != nil {
		return api.Logger
	}
	return config.GetLogger()
}
