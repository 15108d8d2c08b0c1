package workflow

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/mmdatafocus/storefront_backend/models"
	"github.com/mmdatafocus/storefront_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormDatabase struct {
	db *gorm.DB
}

func NewGormDatabase(db *gorm.DB) *GormDatabase {
	return &GormDatabase{db: db}
}

func (g *GormDatabase) Stores() Stores {
	return gormStores(g.db, false)
}

func (g *GormDatabase) InTx(ctx context.Context, lockName string, fn func(Stores) error) error {
	run := func(conn *gorm.DB) error {
		return conn.Transaction(func(tx *gorm.DB) error {
			return fn(gormStores(tx, true))
		})
	}
	if lockName == "" {
		return run(g.db.WithContext(ctx))
	}
	return g.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		if err := AcquireAdvisoryLock(conn, lockName); err != nil {
			return err
		}
		defer ReleaseAdvisoryLock(conn, lockName)
		return run(conn)
	})
}

// inTx enables row locks on product reads.
func gormStores(db *gorm.DB, inTx bool) Stores {
	return Stores{
		Customers:    &customerStore{db: db},
		Products:     &productStore{db: db, lockRows: inTx},
		Orders:       &orderStore{db: db},
		Transactions: &transactionStore{db: db},
		Categories:   &categoryStore{db: db},
	}
}

type customerStore struct {
	db *gorm.DB
}

func (s *customerStore) FindById(ctx context.Context, id int) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.WithContext(ctx).Take(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

type productStore struct {
	db       *gorm.DB
	lockRows bool
}

func (s *productStore) FindAllById(ctx context.Context, ids []int) ([]*models.Product, error) {
	unqIds := utils.UniqueSlice(ids)
	if len(unqIds) == 0 {
		return nil, nil
	}
	// Sorted so concurrent orders take row locks in the same order.
	sort.Ints(unqIds)

	q := s.db.WithContext(ctx).Where("id IN ?", unqIds).Order("id")
	if s.lockRows {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var results []*models.Product
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *productStore) UpdateQuantity(ctx context.Context, updates []models.ProductQuantity) error {
	for _, u := range updates {
		err := s.db.WithContext(ctx).Model(&models.Product{}).
			Where("id = ?", u.Id).
			Update("quantity", u.Quantity).Error
		if err != nil {
			return fmt.Errorf("update quantity of product %d: %w", u.Id, err)
		}
	}
	return nil
}

type orderStore struct {
	db *gorm.DB
}

func (s *orderStore) Create(ctx context.Context, customer *models.Customer, lines []models.OrderProduct) (*models.Order, error) {
	order := models.Order{
		CustomerId:    customer.ID,
		OrderProducts: lines,
	}
	if err := s.db.WithContext(ctx).Omit("Customer").Create(&order).Error; err != nil {
		return nil, err
	}
	order.Customer = customer
	return &order, nil
}

type transactionStore struct {
	db *gorm.DB
}

func (s *transactionStore) GetBalance(ctx context.Context) (models.Balance, error) {
	var sums struct {
		Income  decimal.NullDecimal
		Outcome decimal.NullDecimal
	}
	err := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("SUM(CASE WHEN type = ? THEN value ELSE 0 END) AS income, SUM(CASE WHEN type = ? THEN value ELSE 0 END) AS outcome",
			models.TransactionTypeIncome, models.TransactionTypeOutcome).
		Scan(&sums).Error
	if err != nil {
		return models.Balance{}, err
	}
	// SUM over no rows is NULL, which leaves Decimal at zero.
	return models.NewBalance(sums.Income.Decimal, sums.Outcome.Decimal), nil
}

func (s *transactionStore) Create(ctx context.Context, transaction *models.Transaction) error {
	return s.db.WithContext(ctx).Omit("Category").Create(transaction).Error
}

func (s *transactionStore) List(ctx context.Context) ([]*models.Transaction, error) {
	var results []*models.Transaction
	if err := s.db.WithContext(ctx).Preload("Category").Order("id").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type categoryStore struct {
	db *gorm.DB
}

func (s *categoryStore) FindByTitle(ctx context.Context, title string) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).Where("title = ?", title).Take(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// Create inserts against the unique title index and re-reads when the row already exists.
func (s *categoryStore) Create(ctx context.Context, title string) (*models.Category, error) {
	category := models.Category{Title: title}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&category)
	if res.Error != nil && !models.IsDuplicateKey(res.Error) {
		return nil, res.Error
	}
	if res.Error == nil && res.RowsAffected == 1 && category.ID != 0 {
		return &category, nil
	}

	existing, err := s.FindByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("category %q was neither created nor found", title)
	}
	return existing, nil
}
