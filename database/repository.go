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

	"github.com/zetafinance/zeta/model"
)

// IDataSource defines the interface for data source operations, grouping related functionalities.
type IDataSource interface {
	account     // Interface for account-related operations
	transaction // Interface for transaction-related operations
}

// account defines methods for handling accounts.
type account interface {
	CreateAccount(ctx context.Context, account *model.Account) (*model.Account, error) // Creates a new account
	GetAccountByID(ctx context.Context, id string) (*model.Account, error)             // Retrieves an account by ID
	GetAccountByNumber(ctx context.Context, number string) (*model.Account, error)     // Retrieves an account by its number
	GetAllAccounts(ctx context.Context, limit, offset int) ([]model.Account, error)    // Retrieves accounts in pages
	UpdateAccount(ctx context.Context, account *model.Account) error                   // Updates an account guarded by its version
}

// transaction defines methods for handling transactions.
type transaction interface {
	GetTransaction(ctx context.Context, id string) (*model.Transaction, error)                                                 // Retrieves a transaction by ID
	GetTransactionsByAccount(ctx context.Context, accountID string, batchSize int, offset int64) ([]*model.Transaction, error) // Retrieves an account's entries in pages
	PostTransaction(ctx context.Context, txn *model.Transaction) (*model.Transaction, error)                                   // Applies a transaction and its balance change atomically
}
