/*
Copyright 2025 Zeta Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/zetafinance/zeta/model"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func supportedCurrencyValidation(value interface{}) error {
	code, ok := value.(string)
	if !ok {
		return errors.New("invalid currency type")
	}
	if !model.IsSupportedCurrency(code) {
		return fmt.Errorf("currency '%s' is not supported", code)
	}
	return nil
}

// positiveAmountValidation enforces the money format shared by debits and
// credits: strictly positive, at most two decimal places.
func positiveAmountValidation(value interface{}) error {
	amount, ok := value.(decimal.Decimal)
	if !ok {
		return errors.New("invalid amount type")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("amount must be greater than 0")
	}
	if amount.Exponent() < -2 {
		return errors.New("amount cannot have more than 2 decimal places")
	}
	return nil
}

// openingBalanceValidation is the relaxed form for account creation, where
// an omitted balance means zero.
func openingBalanceValidation(value interface{}) error {
	balance, ok := value.(decimal.Decimal)
	if !ok {
		return errors.New("invalid balance type")
	}
	if balance.IsNegative() {
		return errors.New("initial balance cannot be negative")
	}
	if balance.Exponent() < -2 {
		return errors.New("initial balance cannot have more than 2 decimal places")
	}
	return nil
}

func (a *CreateAccount) ValidateCreateAccount() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.AccountNumber, validation.Required, validation.Length(5, 20)),
		validation.Field(&a.AccountName, validation.Required, validation.Length(1, 100)),
		validation.Field(&a.Currency, validation.Required, validation.Length(3, 3), validation.By(supportedCurrencyValidation)),
		validation.Field(&a.InitialBalance, validation.By(openingBalanceValidation)),
	)
}

func (a *UpdateAccount) ValidateUpdateAccount() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.AccountName, validation.NilOrNotEmpty, validation.Length(1, 100)),
	)
}

func (t *CreateTransaction) ValidateCreateTransaction() error {
	return validation.ValidateStruct(t,
		validation.Field(&t.AccountID, validation.Required),
		validation.Field(&t.Amount, validation.By(positiveAmountValidation)),
		validation.Field(&t.Currency, validation.Required, validation.Length(3, 3), validation.By(supportedCurrencyValidation)),
		validation.Field(&t.Reference, validation.Length(0, 50)),
		validation.Field(&t.Description, validation.Length(0, 500)),
	)
}

func (a *CreateAccount) ToAccount() *model.Account {
	return &model.Account{AccountNumber: a.AccountNumber, AccountName: a.AccountName, Balance: a.InitialBalance, Currency: a.Currency}
}

func (t *CreateTransaction) ToTransaction() *model.Transaction {
	return &model.Transaction{AccountID: t.AccountID, Amount: t.Amount, Currency: t.Currency, Reference: t.Reference, Description: t.Description, MetaData: t.MetaData}
}
