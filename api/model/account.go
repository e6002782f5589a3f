package model

import "github.com/shopspring/decimal"

type CreateAccount struct {
	AccountNumber  string          `json:"account_number"`
	AccountName    string          `json:"account_name"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	Currency       string          `json:"currency"`
}

type UpdateAccount struct {
	AccountName *string `json:"account_name"`
	IsActive    *bool   `json:"is_active"`
}
