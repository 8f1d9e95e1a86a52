package history

import (
	"context"
	"fmt"
	"time"
)

// Repository is an append-only per-user log of analysis results.
type Repository interface {
	Init(ctx context.Context) error
	Close() error
	Append(ctx context.Context, userID int64, ts time.Time, resultText string) (Record, error)
	// Recent returns up to limit records, newest first by insertion order.
	Recent(ctx context.Context, userID int64, limit int) ([]Record, error)
	// Clear removes every record of the user and reports how many were deleted.
	Clear(ctx context.Context, userID int64) (int64, error)
}

// StorageError is returned by repositories when persistence fails.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("history storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
