package models

import (
	"context"
	"errors"
	"time"

	"github.com/mmdatafocus/storefront_backend/config"
	"github.com/mmdatafocus/storefront_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	ID            int            `gorm:"primary_key" json:"id"`
	CustomerId    int            `gorm:"index;not null" json:"customer_id"`
	Customer      *Customer      `gorm:"foreignKey:CustomerId" json:"customer,omitempty"`
	OrderProducts []OrderProduct `gorm:"foreignKey:OrderId" json:"order_products"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// OrderProduct is an order line. Price is copied from the product when the
// order is placed.
type OrderProduct struct {
	ID        int             `gorm:"primary_key" json:"id"`
	OrderId   int             `gorm:"index;not null" json:"order_id"`
	ProductId int             `gorm:"index;not null" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"price"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// Total is the sum of quantity * price over all lines.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.OrderProducts {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

func getOrderFromDB(ctx context.Context, id int) (*Order, error) {
	db := config.GetDB()
	var result Order
	err := db.WithContext(ctx).
		Preload("OrderProducts", func(tx *gorm.DB) *gorm.DB { return tx.Order("id") }).
		Take(&result, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("order %d not found", id)
		}
		return nil, err
	}
	return &result, nil
}

// GetOrder reads through the redis cache. Orders never change once placed.
func GetOrder(ctx context.Context, id int) (*Order, error) {
	return utils.GetResource[Order](ctx, id, getOrderFromDB)
}

// GetOrdersByCustomer returns orders without their lines.
func GetOrdersByCustomer(ctx context.Context, customerId int) ([]*Order, error) {
	db := config.GetDB()
	var results []*Order
	err := db.WithContext(ctx).
		Where("customer_id = ?", customerId).
		Order("id").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
