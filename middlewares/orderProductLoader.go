package middlewares

import (
	"context"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/mmdatafocus/storefront_backend/models"
	"gorm.io/gorm"
)

type orderProductReader struct {
	db *gorm.DB
}

func (r *orderProductReader) getOrderProducts(ctx context.Context, orderIds []int) []*dataloader.Result[[]*models.OrderProduct] {
	var results []models.OrderProduct
	err := r.db.WithContext(ctx).Where("order_id IN ?", orderIds).Order("id").Find(&results).Error
	if err != nil {
		return handleError[[]*models.OrderProduct](len(orderIds), err)
	}

	return generateLoaderArrayResults(results, orderIds)
}

func GetOrderProductsMany(ctx context.Context, orderIds []int) ([][]*models.OrderProduct, []error) {
	loaders := For(ctx)
	return loaders.orderProductLoader.LoadMany(ctx, orderIds)()
}
