package workflow

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/mmdatafocus/storefront_backend/models"
	"github.com/shopspring/decimal"
)

// memoryDB is a Database over plain maps. InTx works on a copy of the state
// and only keeps it when fn succeeds.
type memoryDB struct {
	mu    sync.Mutex
	state *memoryState

	writes int
	// failUpdateQuantity makes UpdateQuantity fail after the order is created.
	failUpdateQuantity bool
}

type memoryState struct {
	customers    map[int]models.Customer
	products     map[int]models.Product
	orders       []models.Order
	transactions []models.Transaction
	categories   []models.Category
	nextId       int
}

func newMemoryDB() *memoryDB {
	return &memoryDB{state: &memoryState{
		customers: map[int]models.Customer{},
		products:  map[int]models.Product{},
		nextId:    100,
	}}
}

func (s *memoryState) clone() *memoryState {
	c := &memoryState{
		customers:    map[int]models.Customer{},
		products:     map[int]models.Product{},
		orders:       append([]models.Order(nil), s.orders...),
		transactions: append([]models.Transaction(nil), s.transactions...),
		categories:   append([]models.Category(nil), s.categories...),
		nextId:       s.nextId,
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	return c
}

func (s *memoryState) id() int {
	s.nextId++
	return s.nextId
}

func (m *memoryDB) addCustomer(id int) {
	m.state.customers[id] = models.Customer{ID: id, Name: "customer"}
}

func (m *memoryDB) addProduct(id int, quantity int, price string) {
	m.state.products[id] = models.Product{ID: id, Quantity: quantity, Price: decimal.RequireFromString(price)}
}

func (m *memoryDB) addTransaction(value string, t models.TransactionType) {
	m.state.transactions = append(m.state.transactions, models.Transaction{
		ID: m.state.id(), Value: decimal.RequireFromString(value), Type: t,
	})
}

func (m *memoryDB) addCategory(title string) models.Category {
	c := models.Category{ID: m.state.id(), Title: title}
	m.state.categories = append(m.state.categories, c)
	return c
}

func (m *memoryDB) product(id int) models.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.products[id]
}

func (m *memoryDB) Stores() Stores {
	return m.storesFor(m.state)
}

func (m *memoryDB) InTx(ctx context.Context, lockName string, fn func(Stores) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	work := m.state.clone()
	if err := fn(m.storesFor(work)); err != nil {
		return err
	}
	m.state = work
	return nil
}

func (m *memoryDB) storesFor(s *memoryState) Stores {
	return Stores{
		Customers:    memCustomers{s: s},
		Products:     memProducts{db: m, s: s},
		Orders:       memOrders{db: m, s: s},
		Transactions: memTransactions{db: m, s: s},
		Categories:   memCategories{db: m, s: s},
	}
}

type memCustomers struct {
	s *memoryState
}

func (mc memCustomers) FindById(ctx context.Context, id int) (*models.Customer, error) {
	c, ok := mc.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

type memProducts struct {
	db *memoryDB
	s  *memoryState
}

func (mp memProducts) FindAllById(ctx context.Context, ids []int) ([]*models.Product, error) {
	var out []*models.Product
	seen := map[int]bool{}
	for _, id := range ids {
		p, ok := mp.s.products[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (mp memProducts) UpdateQuantity(ctx context.Context, updates []models.ProductQuantity) error {
	if mp.db.failUpdateQuantity {
		return errors.New("update quantity failed")
	}
	for _, u := range updates {
		p := mp.s.products[u.Id]
		p.Quantity = u.Quantity
		mp.s.products[u.Id] = p
		mp.db.writes++
	}
	return nil
}

type memOrders struct {
	db *memoryDB
	s  *memoryState
}

func (mo memOrders) Create(ctx context.Context, customer *models.Customer, lines []models.OrderProduct) (*models.Order, error) {
	order := models.Order{ID: mo.s.id(), CustomerId: customer.ID, Customer: customer}
	for _, line := range lines {
		line.ID = mo.s.id()
		line.OrderId = order.ID
		order.OrderProducts = append(order.OrderProducts, line)
	}
	mo.s.orders = append(mo.s.orders, order)
	mo.db.writes++
	return &order, nil
}

type memTransactions struct {
	db *memoryDB
	s  *memoryState
}

func (mt memTransactions) GetBalance(ctx context.Context) (models.Balance, error) {
	income, outcome := decimal.Zero, decimal.Zero
	for _, t := range mt.s.transactions {
		if t.Type == models.TransactionTypeIncome {
			income = income.Add(t.Value)
		} else {
			outcome = outcome.Add(t.Value)
		}
	}
	return models.NewBalance(income, outcome), nil
}

func (mt memTransactions) Create(ctx context.Context, transaction *models.Transaction) error {
	transaction.ID = mt.s.id()
	mt.s.transactions = append(mt.s.transactions, *transaction)
	mt.db.writes++
	return nil
}

func (mt memTransactions) List(ctx context.Context) ([]*models.Transaction, error) {
	out := make([]*models.Transaction, 0, len(mt.s.transactions))
	for i := range mt.s.transactions {
		t := mt.s.transactions[i]
		out = append(out, &t)
	}
	return out, nil
}

type memCategories struct {
	db *memoryDB
	s  *memoryState
}

func (mc memCategories) FindByTitle(ctx context.Context, title string) (*models.Category, error) {
	for _, c := range mc.s.categories {
		if c.Title == title {
			found := c
			return &found, nil
		}
	}
	return nil, nil
}

func (mc memCategories) Create(ctx context.Context, title string) (*models.Category, error) {
	c := models.Category{ID: mc.s.id(), Title: title}
	mc.s.categories = append(mc.s.categories, c)
	mc.db.writes++
	return &c, nil
}

func (m *memoryDB) balance() models.Balance {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, _ := memTransactions{db: m, s: m.state}.GetBalance(context.Background())
	return b
}

func (m *memoryDB) categoryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.state.categories)
}

func (m *memoryDB) orderCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.state.orders)
}
