package zeta

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/zetafinance/zeta/internal/apierror"
	"github.com/zetafinance/zeta/model"
)

// validateNewAccount rejects accounts the datasource would otherwise only
// fail on at insert time.
func validateNewAccount(account *model.Account) error {
	if account.AccountNumber == "" {
		return apierror.NewAPIError(apierror.ErrInvalidInput, "Account number is required", nil)
	}
	if !model.IsSupportedCurrency(account.Currency) {
		return apierror.NewAPIError(apierror.ErrInvalidInput, fmt.Sprintf("Currency '%s' is not supported", account.Currency), nil)
	}
	if account.Balance.LessThan(decimal.Zero) {
		return apierror.NewAPIError(apierror.ErrInvalidInput, "Opening balance cannot be negative", nil)
	}
	return nil
}

// CreateAccount creates a new account in the database. Accounts always start active.
func (l *Zeta) CreateAccount(ctx context.Context, account *model.Account) (*model.Account, error) {
	if err := validateNewAccount(account); err != nil {
		return nil, err
	}
	account.IsActive = true
	return l.datasource.CreateAccount(ctx, account)
}

// GetAccount retrieves an account by its ID.
func (l *Zeta) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	return l.datasource.GetAccountByID(ctx, id)
}

// GetAccountByNumber retrieves an account by its account number.
func (l *Zeta) GetAccountByNumber(ctx context.Context, number string) (*model.Account, error) {
	return l.datasource.GetAccountByNumber(ctx, number)
}

// GetAllAccounts retrieves accounts ordered by creation time, newest first.
func (l *Zeta) GetAllAccounts(ctx context.Context, limit, offset int) ([]model.Account, error) {
	return l.datasource.GetAllAccounts(ctx, limit, offset)
}

// UpdateAccount applies a partial update to an account's mutable fields.
// Fields left nil keep their current value. The write is guarded by the
// version the account was loaded at, so a concurrent update in between
// surfaces as a conflict instead of a lost write.
func (l *Zeta) UpdateAccount(ctx context.Context, id string, name *string, isActive *bool) (*model.Account, error) {
	account, err := l.datasource.GetAccountByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		account.AccountName = *name
	}
	if isActive != nil {
		account.IsActive = *isActive
	}

	if err := l.datasource.UpdateAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// GetBalance returns the current balance view of an account.
func (l *Zeta) GetBalance(ctx context.Context, id string) (*model.BalanceSnapshot, error) {
	account, err := l.datasource.GetAccountByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return account.Snapshot(), nil
}
