package model

import "github.com/shopspring/decimal"

type CreateTransaction struct {
	AccountID   string                 `json:"account_id"`
	Amount      decimal.Decimal        `json:"amount"`
	Currency    string                 `json:"currency"`
	Reference   string                 `json:"reference"`
	Description string                 `json:"description"`
	MetaData    map[string]interface{} `json:"metadata"`
}
