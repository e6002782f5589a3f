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

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/zetafinance/zeta/internal/apierror"
	"github.com/zetafinance/zeta/model"
)

// CreateAccount inserts a new account into the database.
// The account ID and timestamps are assigned here; the version starts at 1.
// Parameters:
// - ctx: Context for the database operation.
// - account: The account model carrying number, name, opening balance, and currency.
// Returns:
// - *model.Account: The created account with its assigned ID.
// - error: A conflict error if the account number is already taken.
func (d Datasource) CreateAccount(ctx context.Context, account *model.Account) (*model.Account, error) {
	account.AccountID = model.GenerateUUIDWithSuffix("acc")
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	account.Version = 1

	_, err := d.Conn.ExecContext(ctx, `
		INSERT INTO zeta.accounts (account_id, account_number, account_name, balance, currency, is_active, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, account.AccountID, account.AccountNumber, account.AccountName, account.Balance.String(), account.Currency, account.IsActive, account.Version, account.CreatedAt, account.UpdatedAt)
	if err != nil {
		pqErr, ok := err.(*pq.Error)
		if ok {
			switch pqErr.Code.Name() {
			case "unique_violation":
				return nil, apierror.NewAPIError(apierror.ErrConflict, "Account with this account number already exists", err)
			case "check_violation":
				return nil, apierror.NewAPIError(apierror.ErrBadRequest, "Account balance cannot be negative", err)
			default:
				return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Database error occurred", err)
			}
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create account", err)
	}

	return account, nil
}

// GetAccountByID retrieves an account by its ID.
func (d Datasource) GetAccountByID(ctx context.Context, id string) (*model.Account, error) {
	row := d.Conn.QueryRowContext(ctx, `
		SELECT account_id, account_number, account_name, balance, currency, is_active, version, created_at, updated_at
		FROM zeta.accounts
		WHERE account_id = $1
	`, id)

	account, err := scanAccountRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, "Account not found", err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve account", err)
	}

	return account, nil
}

// GetAccountByNumber retrieves an account by its account number.
func (d Datasource) GetAccountByNumber(ctx context.Context, number string) (*model.Account, error) {
	row := d.Conn.QueryRowContext(ctx, `
		SELECT account_id, account_number, account_name, balance, currency, is_active, version, created_at, updated_at
		FROM zeta.accounts
		WHERE account_number = $1
	`, number)

	account, err := scanAccountRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, "Account not found", err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve account", err)
	}

	return account, nil
}

// GetAllAccounts retrieves accounts ordered by creation time, newest first.
func (d Datasource) GetAllAccounts(ctx context.Context, limit, offset int) ([]model.Account, error) {
	rows, err := d.Conn.QueryContext(ctx, `
		SELECT account_id, account_number, account_name, balance, currency, is_active, version, created_at, updated_at
		FROM zeta.accounts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve accounts", err)
	}
	defer func() { _ = rows.Close() }()

	var accounts []model.Account

	for rows.Next() {
		account := model.Account{}
		err := rows.Scan(&account.AccountID, &account.AccountNumber, &account.AccountName, &account.Balance, &account.Currency, &account.IsActive, &account.Version, &account.CreatedAt, &account.UpdatedAt)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan account data", err)
		}

		accounts = append(accounts, account)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over accounts", err)
	}

	return accounts, nil
}

// UpdateAccount updates an account's name and active flag.
// The write is guarded by the version the caller loaded; a concurrent
// update in between surfaces as a conflict rather than a lost update.
func (d Datasource) UpdateAccount(ctx context.Context, account *model.Account) error {
	result, err := d.Conn.ExecContext(ctx, `
		UPDATE zeta.accounts
		SET account_name = $2, is_active = $3, version = version + 1, updated_at = NOW()
		WHERE account_id = $1 AND version = $4
	`, account.AccountID, account.AccountName, account.IsActive, account.Version)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update account", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apierror.NewAPIError(apierror.ErrConflict, fmt.Sprintf("Optimistic locking failure: account with ID '%s' may have been updated or deleted by another transaction", account.AccountID), nil)
	}

	account.Version++

	return nil
}

// getAccountForUpdate loads an account inside tx and takes the row lock.
// Competing writers on the same account block here until tx settles.
func getAccountForUpdate(ctx context.Context, tx *sql.Tx, id string) (*model.Account, error) {
	row := tx.QueryRowContext(ctx, `
		SELECT account_id, account_number, account_name, balance, currency, is_active, version, created_at, updated_at
		FROM zeta.accounts
		WHERE account_id = $1
		FOR UPDATE
	`, id)

	account, err := scanAccountRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, "Account not found", err)
		}
		return nil, apierror.NewAPIError(apierror.ErrTransientStorage, "Failed to retrieve account", err)
	}

	return account, nil
}

// updateAccountBalance persists a new balance inside tx. The version guard
// backs up the row lock, and the version advances with the write.
func updateAccountBalance(ctx context.Context, tx *sql.Tx, account *model.Account) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE zeta.accounts
		SET balance = $2, version = version + 1, updated_at = NOW()
		WHERE account_id = $1 AND version = $3
	`, account.AccountID, account.Balance.String(), account.Version)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrTransientStorage, "Failed to update account balance", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apierror.NewAPIError(apierror.ErrTransientStorage, "Failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apierror.NewAPIError(apierror.ErrConflict, fmt.Sprintf("Optimistic locking failure: account with ID '%s' may have been updated or deleted by another transaction", account.AccountID), nil)
	}

	account.Version++

	return nil
}

func scanAccountRow(row *sql.Row) (*model.Account, error) {
	account := &model.Account{}
	err := row.Scan(&account.AccountID, &account.AccountNumber, &account.AccountName, &account.Balance, &account.Currency, &account.IsActive, &account.Version, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return account, nil
}
