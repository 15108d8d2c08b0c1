package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID         int             `gorm:"primary_key" json:"id"`
	Title      string          `gorm:"size:255;not null" json:"title"`
	Value      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"value"`
	Type       TransactionType `gorm:"type:varchar(10);not null;index" json:"type"`
	CategoryId int             `gorm:"index;not null" json:"category_id"`
	Category   *Category       `gorm:"foreignKey:CategoryId" json:"category,omitempty"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewTransaction struct {
	Title    string          `json:"title" binding:"required,max=255"`
	Value    decimal.Decimal `json:"value"`
	Type     string          `json:"type" binding:"required"`
	Category string          `json:"category" binding:"required,max=100"`
}

// TransactionImportRow is one line of a transaction import file. Value is
// kept as written and parsed when the row is applied.
type TransactionImportRow struct {
	Title    string `csv:"title" validate:"required,max=255"`
	Type     string `csv:"type" validate:"required"`
	Value    string `csv:"value" validate:"required"`
	Category string `csv:"category" validate:"required,max=100"`
}

// Balance is income minus outcome over the full transaction history.
type Balance struct {
	Income  decimal.Decimal `json:"income"`
	Outcome decimal.Decimal `json:"outcome"`
	Total   decimal.Decimal `json:"total"`
}

func NewBalance(income decimal.Decimal, outcome decimal.Decimal) Balance {
	return Balance{Income: income, Outcome: outcome, Total: income.Sub(outcome)}
}
