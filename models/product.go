package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mmdatafocus/storefront_backend/config"
	"github.com/mmdatafocus/storefront_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID           int             `gorm:"primary_key" json:"id"`
	Name         string          `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Price        decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"price"`
	Quantity     int             `gorm:"not null;default:0" json:"quantity"`
	ImageUrl     string          `gorm:"size:255" json:"image_url"`
	ThumbnailUrl string          `gorm:"size:255" json:"thumbnail_url"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewProduct struct {
	Name     string          `json:"name" binding:"required,max=100"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity" binding:"gte=0"`
}

// ProductQuantity is the stored quantity to set for a product.
type ProductQuantity struct {
	Id       int
	Quantity int
}

func (input *NewProduct) validate() error {
	if strings.TrimSpace(input.Name) == "" {
		return utils.InvalidArgument("name is required")
	}
	if input.Price.IsNegative() {
		return utils.InvalidArgument("price must not be negative")
	}
	if input.Quantity < 0 {
		return utils.InvalidArgument("quantity must not be negative")
	}
	return nil
}

func CreateProduct(ctx context.Context, input *NewProduct) (*Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	product := Product{
		Name:     strings.TrimSpace(input.Name),
		Price:    input.Price,
		Quantity: input.Quantity,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&product).Error; err != nil {
		if IsDuplicateKey(err) {
			return nil, utils.InvalidArgument("product %q already exists", product.Name)
		}
		return nil, err
	}
	return &product, nil
}

func GetProducts(ctx context.Context) ([]*Product, error) {
	db := config.GetDB()
	var results []*Product
	if err := db.WithContext(ctx).Order("id").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func GetProduct(ctx context.Context, id int) (*Product, error) {
	db := config.GetDB()
	var result Product
	if err := db.WithContext(ctx).Take(&result, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("product %d not found", id)
		}
		return nil, err
	}
	return &result, nil
}

func UpdateProductImage(ctx context.Context, id int, imageUrl string, thumbnailUrl string) (*Product, error) {
	product, err := GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Model(product).
		Updates(map[string]interface{}{"image_url": imageUrl, "thumbnail_url": thumbnailUrl}).Error; err != nil {
		return nil, err
	}
	product.ImageUrl = imageUrl
	product.ThumbnailUrl = thumbnailUrl
	return product, nil
}
