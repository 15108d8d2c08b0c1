package workflow

import (
	"context"

	"github.com/mmdatafocus/storefront_backend/config"
	"github.com/mmdatafocus/storefront_backend/models"
	"github.com/mmdatafocus/storefront_backend/utils"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("storefront_backend/workflow")

type OrderItem struct {
	ProductId int `json:"product_id" binding:"required,gt=0"`
	Quantity  int `json:"quantity" binding:"required,gt=0"`
}

type OrderService struct {
	db     Database
	events EventPublisher
	logger *logrus.Logger
}

// events may be nil.
func NewOrderService(db Database, events EventPublisher, logger *logrus.Logger) *OrderService {
	if logger == nil {
		logger = config.GetLogger()
	}
	return &OrderService{db: db, events: events, logger: logger}
}

// CreateOrder validates the customer and requested stock, then stores the order
// and decrements stock in one transaction. Checks run in a fixed order and only
// the first offending item is reported.
func (s *OrderService) CreateOrder(ctx context.Context, customerId int, items []OrderItem) (*models.Order, error) {
	ctx, span := tracer.Start(ctx, "OrderService.CreateOrder", trace.WithAttributes(
		attribute.Int("customer.id", customerId),
		attribute.Int("order.items", len(items)),
	))
	defer span.End()

	var order *models.Order
	err := s.db.InTx(ctx, "", func(st Stores) error {
		var err error
		order, err = placeOrder(ctx, st, customerId, items)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("order.id", order.ID))

	publishCommitted(ctx, s.logger, s.events, Event{
		Type:        EventOrderCreated,
		ReferenceId: order.ID,
		Payload:     order,
	})
	return order, nil
}

func placeOrder(ctx context.Context, st Stores, customerId int, items []OrderItem) (*models.Order, error) {
	customer, err := st.Customers.FindById(ctx, customerId)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, utils.NotFound("Could not find any customer with the given id")
	}

	ids := make([]int, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductId)
	}
	products, err := st.Products.FindAllById(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, utils.NotFound("Could not find any products with the given ids")
	}

	byId := make(map[int]*models.Product, len(products))
	for _, p := range products {
		byId[p.ID] = p
	}
	for _, item := range items {
		if _, ok := byId[item.ProductId]; !ok {
			return nil, utils.NotFound("Could not find products %d", item.ProductId)
		}
	}

	// remaining starts at stored stock and is reduced line by line, so
	// repeated product ids cannot take more than is stored.
	remaining := make(map[int]int, len(byId))
	for id, p := range byId {
		remaining[id] = p.Quantity
	}
	for _, item := range items {
		if remaining[item.ProductId] < item.Quantity {
			// Reports the requested quantity, not the available one.
			return nil, utils.InvalidState("The quantity %d is not available for %d", item.Quantity, item.ProductId)
		}
		remaining[item.ProductId] -= item.Quantity
	}

	lines := make([]models.OrderProduct, 0, len(items))
	for _, item := range items {
		lines = append(lines, models.OrderProduct{
			ProductId: item.ProductId,
			Quantity:  item.Quantity,
			Price:     byId[item.ProductId].Price,
		})
	}
	order, err := st.Orders.Create(ctx, customer, lines)
	if err != nil {
		return nil, err
	}

	updates := make([]models.ProductQuantity, 0, len(byId))
	for _, id := range utils.UniqueSlice(ids) {
		updates = append(updates, models.ProductQuantity{Id: id, Quantity: remaining[id]})
	}
	if err := st.Products.UpdateQuantity(ctx, updates); err != nil {
		return nil, err
	}
	return order, nil
}
