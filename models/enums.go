package models

import (
	"encoding/json"
	"fmt"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeOutcome TransactionType = "outcome"
)

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeOutcome:
		return true
	}
	return false
}

func (t TransactionType) String() string {
	return string(t)
}

func (t *TransactionType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("transaction type must be string")
	}
	*t = TransactionType(s)
	return nil
}
