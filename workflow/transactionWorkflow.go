package workflow

import (
	"context"
	"fmt"

	"github.com/bsm/redislock"
	"github.com/mmdatafocus/storefront_backend/config"
	"github.com/mmdatafocus/storefront_backend/models"
	"github.com/mmdatafocus/storefront_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const balanceLockName = "balance"

type TransactionService struct {
	db     Database
	locker *redislock.Client
	events EventPublisher
	logger *logrus.Logger
}

// locker and events may be nil.
func NewTransactionService(db Database, locker *redislock.Client, events EventPublisher, logger *logrus.Logger) *TransactionService {
	if logger == nil {
		logger = config.GetLogger()
	}
	return &TransactionService{db: db, locker: locker, events: events, logger: logger}
}

// TransactionList is every stored transaction plus the balance they add up to.
type TransactionList struct {
	Transactions []*models.Transaction `json:"transactions"`
	Balance      models.Balance        `json:"balance"`
}

// CreateTransaction checks the type and, for outcomes, the running balance,
// resolves the category by title (creating it when unseen) and stores the transaction.
func (s *TransactionService) CreateTransaction(ctx context.Context, title string, value decimal.Decimal, transactionType string, categoryTitle string) (*models.Transaction, error) {
	ctx, span := tracer.Start(ctx, "TransactionService.CreateTransaction", trace.WithAttributes(
		attribute.String("transaction.type", transactionType),
		attribute.String("transaction.category", categoryTitle),
	))
	defer span.End()

	lock := obtainBestEffortLock(ctx, s.logger, s.locker, balanceLockName)
	defer releaseBestEffortLock(ctx, s.logger, lock)

	var created *models.Transaction
	err := s.db.InTx(ctx, balanceLockName, func(st Stores) error {
		var err error
		created, err = recordTransaction(ctx, st, title, value, transactionType, categoryTitle)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("transaction.id", created.ID))

	publishCommitted(ctx, s.logger, s.events, Event{
		Type:        EventTransactionCreated,
		ReferenceId: created.ID,
		Payload:     created,
	})
	return created, nil
}

func recordTransaction(ctx context.Context, st Stores, title string, value decimal.Decimal, transactionType string, categoryTitle string) (*models.Transaction, error) {
	balance, err := st.Transactions.GetBalance(ctx)
	if err != nil {
		return nil, err
	}

	txType := models.TransactionType(transactionType)
	if !txType.IsValid() {
		return nil, utils.InvalidArgument("Invalid type transaction")
	}
	if !value.IsPositive() {
		return nil, utils.InvalidArgument("Transaction value must be positive")
	}
	if txType == models.TransactionTypeOutcome && value.GreaterThan(balance.Total) {
		return nil, utils.InvalidState("You do not have enough balance")
	}

	category, err := st.Categories.FindByTitle(ctx, categoryTitle)
	if err != nil {
		return nil, err
	}
	if category == nil {
		category, err = st.Categories.Create(ctx, categoryTitle)
		if err != nil {
			return nil, err
		}
	}

	transaction := &models.Transaction{
		Title:      title,
		Value:      value,
		Type:       txType,
		CategoryId: category.ID,
		Category:   category,
	}
	if err := st.Transactions.Create(ctx, transaction); err != nil {
		return nil, err
	}
	return transaction, nil
}

func (s *TransactionService) ListTransactions(ctx context.Context) (*TransactionList, error) {
	st := s.db.Stores()
	transactions, err := st.Transactions.List(ctx)
	if err != nil {
		return nil, err
	}
	balance, err := st.Transactions.GetBalance(ctx)
	if err != nil {
		return nil, err
	}
	return &TransactionList{Transactions: transactions, Balance: balance}, nil
}

// ImportTransactions creates rows in file order through CreateTransaction and
// stops at the first failing row. Rows before it stay committed.
func (s *TransactionService) ImportTransactions(ctx context.Context, rows []*models.TransactionImportRow) ([]*models.Transaction, error) {
	created := make([]*models.Transaction, 0, len(rows))
	for i, row := range rows {
		// header is line 1
		line := i + 2
		if err := utils.ValidateStruct(row); err != nil {
			return created, fmt.Errorf("line %d: %w", line, err)
		}
		value, err := utils.ParseDecimal(row.Value)
		if err != nil {
			return created, fmt.Errorf("line %d: %w", line, utils.InvalidArgument("invalid value %q", row.Value))
		}
		transaction, err := s.CreateTransaction(ctx, row.Title, value, row.Type, row.Category)
		if err != nil {
			return created, fmt.Errorf("line %d: %w", line, err)
		}
		created = append(created, transaction)
	}
	return created, nil
}
