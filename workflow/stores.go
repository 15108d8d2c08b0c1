package workflow

import (
	"context"

	"github.com/mmdatafocus/storefront_backend/models"
)

// CustomerStore finds customers. FindById returns nil, nil when absent.
type CustomerStore interface {
	FindById(ctx context.Context, id int) (*models.Customer, error)
}

type ProductStore interface {
	// FindAllById returns the products that exist among ids, in id order.
	FindAllById(ctx context.Context, ids []int) ([]*models.Product, error)
	UpdateQuantity(ctx context.Context, updates []models.ProductQuantity) error
}

type OrderStore interface {
	// Create assigns ids to the order and its lines.
	Create(ctx context.Context, customer *models.Customer, lines []models.OrderProduct) (*models.Order, error)
}

type TransactionStore interface {
	GetBalance(ctx context.Context) (models.Balance, error)
	Create(ctx context.Context, transaction *models.Transaction) error
	List(ctx context.Context) ([]*models.Transaction, error)
}

// CategoryStore looks up categories by exact title. FindByTitle returns nil, nil
// when absent; Create returns the stored row even if another writer created it first.
type CategoryStore interface {
	FindByTitle(ctx context.Context, title string) (*models.Category, error)
	Create(ctx context.Context, title string) (*models.Category, error)
}

type Stores struct {
	Customers    CustomerStore
	Products     ProductStore
	Orders       OrderStore
	Transactions TransactionStore
	Categories   CategoryStore
}

type Database interface {
	Stores() Stores
	// InTx runs fn with stores bound to one transaction; an error rolls it back.
	// A non-empty lockName is held for the whole transaction.
	InTx(ctx context.Context, lockName string, fn func(Stores) error) error
}
