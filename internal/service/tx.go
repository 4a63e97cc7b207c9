package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrStorageConflict is returned once bounded retries on transient
// serialization/deadlock failures are exhausted. Callers surface it as a
// "try again" failure.
var ErrStorageConflict = errors.New("storage conflict, try again")

const (
	maxTxAttempts  = 3
	txRetryBackoff = 50 * time.Millisecond

	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgExclusionViolation   = "23P01"
)

func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected
	}
	return false
}

// isExclusionViolation detects the database-level overlap backstop firing;
// it means another writer slipped a conflicting window in out of band.
func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation
}

// runInTx executes fn in a transaction, retrying a bounded number of times
// with linear backoff when the database reports a transient conflict.
// A canceled context aborts between attempts; gorm rolls back the failed
// transaction whole, so no partial state survives a retry.
func runInTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt-1) * txRetryBackoff):
			}
		}
		err = db.WithContext(ctx).Transaction(fn)
		if err == nil || !isRetryableTxError(err) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrStorageConflict, err)
}
