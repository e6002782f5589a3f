package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	AccountID     string          `json:"id"`
	AccountNumber string          `json:"account_number"`
	AccountName   string          `json:"account_name"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	IsActive      bool            `json:"is_active"`
	Version       int64           `json:"version"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BalanceSnapshot is the read-only view returned by balance lookups.
type BalanceSnapshot struct {
	AccountID     string          `json:"account_id"`
	AccountNumber string          `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
}

// CanDebit reports whether the account holds enough funds to cover amount.
func (account *Account) CanDebit(amount decimal.Decimal) bool {
	return account.Balance.GreaterThanOrEqual(amount)
}

// ApplyDebit subtracts amount from the balance. The caller is expected to
// hold the account lock; the balance never goes below zero. The version
// field is advanced by the datasource when the new balance is persisted.
func (account *Account) ApplyDebit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("transaction amount must be positive")
	}
	if account.Balance.LessThan(amount) {
		return errors.New("insufficient funds")
	}
	account.Balance = account.Balance.Sub(amount)
	return nil
}

// ApplyCredit adds amount to the balance.
func (account *Account) ApplyCredit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("transaction amount must be positive")
	}
	account.Balance = account.Balance.Add(amount)
	return nil
}

// Snapshot returns the balance view of the account.
func (account *Account) Snapshot() *BalanceSnapshot {
	return &BalanceSnapshot{
		AccountID:     account.AccountID,
		AccountNumber: account.AccountNumber,
		Balance:       account.Balance,
		Currency:      account.Currency,
	}
}
