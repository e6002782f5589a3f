package model

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeDebit  = "debit"
	TypeCredit = "credit"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusReversed  = "reversed"
)

// statusTransitions holds every legal status move. Completed entries admit
// the reversed state even though no operation performs that transition yet.
var statusTransitions = map[string][]string{
	StatusPending:   {StatusCompleted, StatusFailed},
	StatusCompleted: {StatusReversed},
	StatusFailed:    {},
	StatusReversed:  {},
}

type Transaction struct {
	TransactionID   string                 `json:"id"`
	AccountID       string                 `json:"account_id"`
	TransactionType string                 `json:"transaction_type"`
	Amount          decimal.Decimal        `json:"amount"`
	Currency        string                 `json:"currency"`
	Status          string                 `json:"status"`
	Reference       string                 `json:"reference,omitempty"`
	Description     string                 `json:"description,omitempty"`
	MetaData        map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

func (transaction *Transaction) ToJSON() ([]byte, error) {
	return json.Marshal(transaction)
}

// CanTransitionStatus reports whether a transaction may move from one
// status to another. Statuses only ever move forward.
func CanTransitionStatus(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Validate checks the fields the executor relies on before any write.
func (transaction *Transaction) Validate() error {
	if transaction.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("transaction amount must be positive")
	}
	if transaction.TransactionType != TypeDebit && transaction.TransactionType != TypeCredit {
		return errors.New("transaction type must be debit or credit")
	}
	if transaction.AccountID == "" {
		return errors.New("transaction must reference an account")
	}
	return nil
}
