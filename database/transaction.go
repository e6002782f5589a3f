package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/zetafinance/zeta/internal/apierror"
	"github.com/zetafinance/zeta/model"
)

// PostTransaction applies a debit or credit and records the ledger entry in
// a single database transaction. The account row stays locked for the
// duration, so the checks, the balance write, and the status flip all see
// one consistent row. Nothing is visible to other sessions until commit,
// and any failure rolls the whole unit back.
func (d Datasource) PostTransaction(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	ctx, span := otel.Tracer("Ledger transaction").Start(ctx, "Posting transaction to db")
	defer span.End()

	tx, err := d.Conn.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelDefault})
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrTransientStorage, "Failed to process transaction due to database error", err)
	}

	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	account, err := getAccountForUpdate(ctx, tx, txn.AccountID)
	if err != nil {
		return nil, err
	}

	if !account.IsActive {
		return nil, apierror.NewAPIError(apierror.ErrAccountInactive, "Account is inactive", nil)
	}

	if account.Currency != txn.Currency {
		return nil, apierror.NewAPIError(apierror.ErrCurrencyMismatch, fmt.Sprintf("Currency mismatch. Account currency is %s, transaction currency is %s", account.Currency, txn.Currency), nil)
	}

	if txn.TransactionType == model.TypeDebit && !account.CanDebit(txn.Amount) {
		return nil, apierror.NewAPIError(apierror.ErrInsufficientFunds, "Insufficient funds", nil)
	}

	txn.Status = model.StatusPending
	if err := recordTransactionTx(ctx, tx, txn); err != nil {
		return nil, err
	}

	var applyErr error
	switch txn.TransactionType {
	case model.TypeDebit:
		applyErr = account.ApplyDebit(txn.Amount)
	case model.TypeCredit:
		applyErr = account.ApplyCredit(txn.Amount)
	default:
		applyErr = fmt.Errorf("unknown transaction type '%s'", txn.TransactionType)
	}
	if applyErr != nil {
		return nil, apierror.NewAPIError(apierror.ErrBadRequest, applyErr.Error(), applyErr)
	}

	if err := updateAccountBalance(ctx, tx, account); err != nil {
		return nil, err
	}

	if err := updateTransactionStatusTx(ctx, tx, txn.TransactionID, model.StatusPending, model.StatusCompleted); err != nil {
		return nil, err
	}
	txn.Status = model.StatusCompleted

	if err := tx.Commit(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrTransientStorage, "Failed to process transaction due to database error", err)
	}

	return txn, nil
}

// recordTransactionTx inserts the entry inside tx with its initial status.
func recordTransactionTx(ctx context.Context, tx *sql.Tx, txn *model.Transaction) error {
	metaDataJSON, err := json.Marshal(txn.MetaData)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to marshal metadata", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO zeta.transactions(transaction_id,account_id,transaction_type,amount,currency,status,reference,description,meta_data,created_at,updated_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		txn.TransactionID, txn.AccountID, txn.TransactionType, txn.Amount.String(), txn.Currency, txn.Status, txn.Reference, txn.Description, metaDataJSON, txn.CreatedAt, txn.UpdatedAt,
	)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrTransientStorage, "Failed to record transaction", err)
	}

	return nil
}

// updateTransactionStatusTx moves an entry's status forward inside tx.
// Statuses never move backwards; the WHERE clause keeps a concurrent
// writer from resurrecting a settled entry.
func updateTransactionStatusTx(ctx context.Context, tx *sql.Tx, id, from, to string) error {
	if !model.CanTransitionStatus(from, to) {
		return apierror.NewAPIError(apierror.ErrConflict, fmt.Sprintf("Transaction status cannot move from '%s' to '%s'", from, to), nil)
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE zeta.transactions
		SET status = $2, updated_at = NOW()
		WHERE transaction_id = $1 AND status = $3
	`, id, to, from)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrTransientStorage, "Failed to update transaction status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apierror.NewAPIError(apierror.ErrTransientStorage, "Failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apierror.NewAPIError(apierror.ErrConflict, fmt.Sprintf("Transaction with ID '%s' is no longer in '%s' state", id, from), nil)
	}

	return nil
}

func (d Datasource) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	ctx, span := otel.Tracer("Ledger transaction").Start(ctx, "Fetching transaction from db")
	defer span.End()

	cacheKey := fmt.Sprintf("transaction:%s", id)

	cached := &model.Transaction{}
	if err := d.Cache.Get(ctx, cacheKey, cached); err == nil && cached.TransactionID != "" {
		return cached, nil
	}

	row := d.Conn.QueryRowContext(ctx, `
		SELECT transaction_id, account_id, transaction_type, amount, currency, status, reference, description, meta_data, created_at, updated_at
		FROM zeta.transactions
		WHERE transaction_id = $1
	`, id)

	txn := &model.Transaction{}
	var metaDataJSON []byte
	err := row.Scan(&txn.TransactionID, &txn.AccountID, &txn.TransactionType, &txn.Amount, &txn.Currency, &txn.Status, &txn.Reference, &txn.Description, &metaDataJSON, &txn.CreatedAt, &txn.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, "Transaction not found", err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve transaction", err)
	}

	if len(metaDataJSON) > 0 {
		err = json.Unmarshal(metaDataJSON, &txn.MetaData)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to unmarshal metadata", err)
		}
	}

	// Settled entries never change again, so they are safe to cache.
	if txn.Status == model.StatusCompleted {
		if err := d.Cache.Set(ctx, cacheKey, txn, 5*time.Minute); err != nil {
			log.Printf("Failed to cache transaction: %v", err)
		}
	}

	return txn, nil
}

func (d Datasource) GetTransactionsByAccount(ctx context.Context, accountID string, batchSize int, offset int64) ([]*model.Transaction, error) {
	ctx, span := otel.Tracer("Ledger transaction").Start(ctx, "Fetching account transactions with pagination")
	defer span.End()

	cacheKey := fmt.Sprintf("transactions:account:%s:%d:%d", accountID, batchSize, offset)

	var transactions []*model.Transaction
	err := d.Cache.Get(ctx, cacheKey, &transactions)
	if err == nil && len(transactions) > 0 {
		return transactions, nil
	}

	rows, err := d.Conn.QueryContext(ctx, `
        SELECT transaction_id, account_id, transaction_type, amount, currency, status, reference, description, meta_data, created_at, updated_at
        FROM zeta.transactions
        WHERE account_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3
    `, accountID, batchSize, offset)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve paginated transactions", err)
	}
	defer rows.Close()

	transactions = []*model.Transaction{}

	for rows.Next() {
		transaction := model.Transaction{}
		var metaDataJSON []byte
		err = rows.Scan(
			&transaction.TransactionID,
			&transaction.AccountID,
			&transaction.TransactionType,
			&transaction.Amount,
			&transaction.Currency,
			&transaction.Status,
			&transaction.Reference,
			&transaction.Description,
			&metaDataJSON,
			&transaction.CreatedAt,
			&transaction.UpdatedAt,
		)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan transaction data", err)
		}

		if len(metaDataJSON) > 0 {
			err = json.Unmarshal(metaDataJSON, &transaction.MetaData)
			if err != nil {
				return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to unmarshal metadata", err)
			}
		}

		transactions = append(transactions, &transaction)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over transactions", err)
	}

	// Cache the fetched data
	if len(transactions) > 0 {
		err = d.Cache.Set(ctx, cacheKey, transactions, 5*time.Minute) // Cache for 5 minutes
		if err != nil {
			// Log the error, but don't return it as the main operation succeeded
			log.Printf("Failed to cache transactions: %v", err)
		}
	}

	return transactions, nil
}
