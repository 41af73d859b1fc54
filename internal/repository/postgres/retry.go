package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	readAttempts = 3
	readBackoff  = 50 * time.Millisecond
)

// withReadRetry retries a read when the connection failed before the statement reached
// the server. Reads inside a transaction are never retried since the transaction is gone.
func withReadRetry[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	var (
		out T
		err error
	)
	for attempt := 1; attempt <= readAttempts; attempt++ {
		out, err = fn()
		if err == nil || inTx(ctx) || !isTransient(err) || attempt == readAttempts {
			return out, err
		}
		select {
		case <-ctx.Done():
			return out, ctx.Err()
		case <-time.After(time.Duration(attempt) * readBackoff):
		}
	}
	return out, err
}

func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return pgconn.SafeToRetry(err) || pgconn.Timeout(err)
}
