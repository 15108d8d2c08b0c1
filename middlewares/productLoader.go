package middlewares

import (
	"context"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/mmdatafocus/storefront_backend/models"
	"gorm.io/gorm"
)

type productReader struct {
	db *gorm.DB
}

// getProducts loads the display fields of order line products. A product
// removed from the catalog resolves to a placeholder with its id.
func (r *productReader) getProducts(ctx context.Context, ids []int) []*dataloader.Result[*models.Product] {
	var results []models.Product
	err := r.db.WithContext(ctx).
		Select("id", "name", "price", "image_url", "thumbnail_url", "created_at", "updated_at").
		Where("id IN ?", ids).
		Find(&results).Error
	if err != nil {
		return handleError[*models.Product](len(ids), err)
	}

	return generateLoaderResults(results, ids, nil)
}

func GetProduct(ctx context.Context, id int) (*models.Product, error) {
	loaders := For(ctx)
	return loaders.productLoader.Load(ctx, id)()
}
