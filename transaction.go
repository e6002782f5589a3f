package zeta

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/zetafinance/zeta/internal/apierror"
	keylock "github.com/zetafinance/zeta/internal/lock"
	"github.com/zetafinance/zeta/model"
)

var (
	tracer = otel.Tracer("Ledger transaction")
)

func logAndRecordError(span trace.Span, msg string, err error) error {
	span.RecordError(err)
	logrus.Error(msg, err)
	return err
}

// acquireLock takes the account's process-wide lock, so entries against the
// same account serialize while entries against other accounts run freely.
func (l *Zeta) acquireLock(ctx context.Context, accountID string) (*keylock.Locker, error) {
	locker := l.locks.NewLocker(accountID)
	err := locker.WaitLock(ctx, time.Minute)
	if err != nil {
		return nil, err
	}
	return locker, nil
}

// prepareTransaction assigns the entry its identity before the first
// attempt, so a retried attempt reuses the same transaction ID.
func (l *Zeta) prepareTransaction(txn *model.Transaction) {
	txn.TransactionID = model.GenerateUUIDWithSuffix("txn")
	txn.CreatedAt = time.Now()
	txn.UpdatedAt = txn.CreatedAt
}

// newRetryPolicy builds the backoff schedule for transient storage failures.
// Attempts bound the loop, not wall time.
func (l *Zeta) newRetryPolicy(ctx context.Context) backoff.BackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = time.Duration(l.retry.InitialBackoffSec) * time.Second
	policy.MaxInterval = time.Duration(l.retry.MaxBackoffSec) * time.Second
	policy.MaxElapsedTime = 0

	retries := l.retry.MaxAttempts - 1
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(policy, uint64(retries)), ctx)
}

// postLocked runs one full attempt: take the account's lock, post the
// entry, release the lock. A failed attempt leaves no partial state, so
// the next attempt starts from a clean lock acquisition.
func (l *Zeta) postLocked(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	locker, err := l.acquireLock(ctx, txn.AccountID)
	if err != nil {
		return nil, err
	}

	defer func(locker *keylock.Locker) {
		err := locker.Unlock()
		if err != nil {
			logrus.Error("lock error", err)
		}
	}(locker)

	return l.datasource.PostTransaction(ctx, txn)
}

// applyWithRetry posts the entry, retrying only on transient storage
// failures. Business rejections such as insufficient funds are permanent
// and return immediately.
func (l *Zeta) applyWithRetry(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	var applied *model.Transaction
	operation := func() error {
		posted, err := l.postLocked(ctx, txn)
		if err != nil {
			if apierror.IsRetryable(err) {
				logrus.Warnf("transient storage error for transaction %s, retrying: %v", txn.TransactionID, err)
				return err
			}
			return backoff.Permanent(err)
		}
		applied = posted
		return nil
	}

	if err := backoff.Retry(operation, l.newRetryPolicy(ctx)); err != nil {
		return nil, err
	}
	return applied, nil
}

func (l *Zeta) executeTransaction(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Recording transaction")
	defer span.End()

	if err := txn.Validate(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), err)
	}

	l.prepareTransaction(txn)

	applied, err := l.applyWithRetry(ctx, txn)
	if err != nil {
		return nil, logAndRecordError(span, "transaction apply error ", err)
	}

	return applied, nil
}

// Debit withdraws funds from an account. The entry is applied atomically
// against the locked account row and rejected when the balance cannot
// cover the amount.
func (l *Zeta) Debit(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	txn.TransactionType = model.TypeDebit
	return l.executeTransaction(ctx, txn)
}

// Credit deposits funds into an account.
func (l *Zeta) Credit(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	txn.TransactionType = model.TypeCredit
	return l.executeTransaction(ctx, txn)
}

// GetTransaction retrieves a single ledger entry by its ID.
func (l *Zeta) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	return l.datasource.GetTransaction(ctx, id)
}

// GetLedgerEntries returns an account's entries, newest first. The account
// is looked up first so a missing account reads as not found rather than
// an empty ledger.
func (l *Zeta) GetLedgerEntries(ctx context.Context, accountID string, limit int, offset int64) ([]*model.Transaction, error) {
	if _, err := l.datasource.GetAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	return l.datasource.GetTransactionsByAccount(ctx, accountID, limit, offset)
}
