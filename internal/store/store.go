package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrRetriesExhausted is returned when a transaction keeps losing the
// optimistic-concurrency race and the attempt budget runs out.
var ErrRetriesExhausted = errors.New("transaction retries exhausted")

const (
	DefaultMaxAttempts = 5
	DefaultRetryBase   = 20 * time.Millisecond
)

// Client wraps the database handle and provides the transaction primitive the
// ordering engine builds on: a SERIALIZABLE read-modify-write unit that is
// retried with exponential backoff when the store detects a conflict.
type Client struct {
	db          *gorm.DB
	maxAttempts int
	retryBase   time.Duration
}

func New(db *gorm.DB, maxAttempts int, retryBase time.Duration) *Client {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if retryBase <= 0 {
		retryBase = DefaultRetryBase
	}
	return &Client{db: db, maxAttempts: maxAttempts, retryBase: retryBase}
}

// DB exposes the underlying handle for plain reads that need no transaction.
func (c *Client) DB() *gorm.DB {
	return c.db
}

// RunTransaction executes fn inside a SERIALIZABLE transaction. All reads in
// fn observe one consistent snapshot and all writes commit atomically or not
// at all. When two concurrent transactions touch overlapping rows, the loser
// aborts with a serialization failure and fn is re-run from the top, so fn
// must be free of side effects outside the transaction handle. After
// maxAttempts losses the error wraps ErrRetriesExhausted.
func (c *Client) RunTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	backoff := c.retryBase
	var err error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		err = c.db.WithContext(ctx).Transaction(fn, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if err == nil || !IsConflict(err) {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"attempt": attempt,
			"error":   err,
		}).Debug("transaction conflict, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return fmt.Errorf("%w after %d attempts: %v", ErrRetriesExhausted, c.maxAttempts, err)
}

// IsConflict reports whether err is a Postgres serialization failure or
// deadlock, the two shapes a lost optimistic-concurrency race takes.
func IsConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
