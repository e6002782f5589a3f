package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCanTransitionStatus(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"pending to completed", StatusPending, StatusCompleted, true},
		{"pending to failed", StatusPending, StatusFailed, true},
		{"completed to reversed", StatusCompleted, StatusReversed, true},
		{"completed to pending", StatusCompleted, StatusPending, false},
		{"failed is terminal", StatusFailed, StatusCompleted, false},
		{"reversed is terminal", StatusReversed, StatusPending, false},
		{"pending to reversed skips completed", StatusPending, StatusReversed, false},
		{"unknown status", "settled", StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransitionStatus(tt.from, tt.to))
		})
	}
}

func TestTransaction_Validate(t *testing.T) {
	txn := &Transaction{
		AccountID:       "acc_1",
		TransactionType: TypeDebit,
		Amount:          decimal.RequireFromString("10.00"),
		Currency:        "USD",
	}
	assert.NoError(t, txn.Validate())

	txn.Amount = decimal.Zero
	assert.Error(t, txn.Validate())

	txn.Amount = decimal.RequireFromString("10.00")
	txn.TransactionType = "transfer"
	assert.Error(t, txn.Validate())

	txn.TransactionType = TypeCredit
	txn.AccountID = ""
	assert.Error(t, txn.Validate())
}

func TestTransaction_ToJSON(t *testing.T) {
	txn := &Transaction{
		TransactionID:   "txn_1",
		AccountID:       "acc_1",
		TransactionType: TypeCredit,
		Amount:          decimal.RequireFromString("25.75"),
		Currency:        "GBP",
		Status:          StatusCompleted,
	}

	data, err := txn.ToJSON()
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"id":"txn_1"`)
	assert.Contains(t, string(data), `"transaction_type":"credit"`)
	assert.Contains(t, string(data), `"status":"completed"`)
}
