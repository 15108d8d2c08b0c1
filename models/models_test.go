package models

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/mmdatafocus/storefront_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestOrderTotal(t *testing.T) {
	order := Order{OrderProducts: []OrderProduct{
		{ProductId: 1, Quantity: 2, Price: decimal.RequireFromString("10.25")},
		{ProductId: 2, Quantity: 3, Price: decimal.NewFromInt(5)},
	}}
	require.True(t, order.Total().Equal(decimal.RequireFromString("35.5")))
	require.True(t, Order{}.Total().IsZero())
}

func TestTransactionType(t *testing.T) {
	require.True(t, TransactionTypeIncome.IsValid())
	require.True(t, TransactionTypeOutcome.IsValid())
	require.False(t, TransactionType("transfer").IsValid())
	require.False(t, TransactionType("Income").IsValid())

	var tt TransactionType
	require.NoError(t, json.Unmarshal([]byte(`"outcome"`), &tt))
	require.Equal(t, TransactionTypeOutcome, tt)
}

func TestNewBalance(t *testing.T) {
	balance := NewBalance(decimal.NewFromInt(100), decimal.NewFromInt(130))
	require.True(t, balance.Total.Equal(decimal.NewFromInt(-30)))
}

func TestNewProductValidate(t *testing.T) {
	require.NoError(t, (&NewProduct{Name: "Tea", Price: decimal.NewFromInt(2), Quantity: 0}).validate())

	err := (&NewProduct{Name: " ", Price: decimal.NewFromInt(2)}).validate()
	require.ErrorIs(t, err, utils.ErrorInvalidArgument)

	err = (&NewProduct{Name: "Tea", Price: decimal.NewFromInt(-1)}).validate()
	require.ErrorIs(t, err, utils.ErrorInvalidArgument)

	err = (&NewProduct{Name: "Tea", Quantity: -1}).validate()
	require.ErrorIs(t, err, utils.ErrorInvalidArgument)
}

func TestIsDuplicateKey(t *testing.T) {
	require.True(t, IsDuplicateKey(fmt.Errorf("create: %w", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})))
	require.False(t, IsDuplicateKey(&mysql.MySQLError{Number: 1213}))
	require.False(t, IsDuplicateKey(fmt.Errorf("other")))
}

func TestDefaults(t *testing.T) {
	customer := Customer{}.GetDefault(7).(Customer)
	require.Equal(t, 7, customer.GetId())

	line := OrderProduct{OrderId: 3}
	require.Equal(t, 3, line.GetReferenceId())
}
