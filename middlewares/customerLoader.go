package middlewares

import (
	"context"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/mmdatafocus/storefront_backend/models"
	"github.com/mmdatafocus/storefront_backend/utils"
	"gorm.io/gorm"
)

type customerReader struct {
	db *gorm.DB
}

// every order points at a customer, so a missing one is reported, not filled in
func (r *customerReader) getCustomers(ctx context.Context, ids []int) []*dataloader.Result[*models.Customer] {
	var results []models.Customer
	err := r.db.WithContext(ctx).
		Select("id", "name", "email", "phone", "created_at", "updated_at").
		Where("id IN ?", ids).
		Find(&results).Error
	if err != nil {
		return handleError[*models.Customer](len(ids), err)
	}

	return generateLoaderResults(results, ids, missingCustomer)
}

func missingCustomer(int) error {
	return utils.NotFound("Could not find any customer with the given id")
}

func GetCustomer(ctx context.Context, id int) (*models.Customer, error) {
	loaders := For(ctx)
	return loaders.customerLoader.Load(ctx, id)()
}
