package middlewares

import (
	"context"
	"reflect"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/dataloader/v7"
	"github.com/mmdatafocus/storefront_backend/models"
	"gorm.io/gorm"
)

type ctxKey string

const (
	loadersKey = ctxKey("dataloaders")
)

// Loaders batch the lookups made while rendering orders.
type Loaders struct {
	customerLoader     *dataloader.Loader[int, *models.Customer]
	productLoader      *dataloader.Loader[int, *models.Product]
	orderProductLoader *dataloader.Loader[int, []*models.OrderProduct]
}

func NewLoaders(conn *gorm.DB) *Loaders {
	customerReader := &customerReader{db: conn}
	productReader := &productReader{db: conn}
	orderProductReader := &orderProductReader{db: conn}

	return &Loaders{
		customerLoader:     dataloader.NewBatchedLoader(customerReader.getCustomers, dataloader.WithWait[int, *models.Customer](time.Millisecond)),
		productLoader:      dataloader.NewBatchedLoader(productReader.getProducts, dataloader.WithWait[int, *models.Product](time.Millisecond)),
		orderProductLoader: dataloader.NewBatchedLoader(orderProductReader.getOrderProducts, dataloader.WithWait[int, []*models.OrderProduct](time.Millisecond)),
	}
}

// LoaderMiddleware builds fresh loaders per request so nothing is cached across requests.
func LoaderMiddleware(db func() *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		loader := NewLoaders(db())
		ctx := context.WithValue(c.Request.Context(), loadersKey, loader)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func For(ctx context.Context) *Loaders {
	return ctx.Value(loadersKey).(*Loaders)
}

func handleError[T any](itemsLength int, err error) []*dataloader.Result[T] {
	result := make([]*dataloader.Result[T], itemsLength)
	for i := 0; i < itemsLength; i++ {
		result[i] = &dataloader.Result[T]{Error: err}
	}
	return result
}

// generateLoaderResults orders results by ids. A missing id fails with
// missing(id) when missing is set, otherwise it gets the type's default value.
func generateLoaderResults[T models.Data](results []T, ids []int, missing func(id int) error) []*dataloader.Result[*T] {
	resultMap := make(map[int]T)
	for _, result := range results {
		resultMap[result.GetId()] = result
	}

	loaderResults := make([]*dataloader.Result[*T], 0, len(ids))
	for _, id := range ids {
		data, ok := resultMap[id]
		if !ok && missing != nil {
			loaderResults = append(loaderResults, &dataloader.Result[*T]{Error: missing(id)})
			continue
		}
		if !ok || reflect.ValueOf(data).IsZero() {
			data = data.GetDefault(id).(T)
		}
		loaderResults = append(loaderResults, &dataloader.Result[*T]{Data: &data})
	}
	return loaderResults
}

func generateLoaderArrayResults[T models.RelatedData](results []T, referenceIds []int) (loaderResults []*dataloader.Result[[]*T]) {
	resultMap := make(map[int][]*T)
	for _, result := range results {
		copy := result
		resultMap[result.GetReferenceId()] = append(resultMap[result.GetReferenceId()], &copy)
	}
	for _, id := range referenceIds {
		resultArray := resultMap[id]
		loaderResults = append(loaderResults, &dataloader.Result[[]*T]{Data: resultArray})
	}
	return loaderResults
}
