package sqlite

import (
	"calorieBot/internal/db/history"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"
)

type RepositorySQlite struct {
	db *sql.DB
}

func NewRepositorySQlite(db *sql.DB) *RepositorySQlite {
	return &RepositorySQlite{db: db}
}

func (r *RepositorySQlite) Init(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createTable)
	if err != nil {
		log.Println("[history/RepositorySQlite.Init] failed to create table:", err)
		return &history.StorageError{Op: "init", Err: err}
	}
	log.Println("[history/RepositorySQlite.Init] table created or already exists")
	return nil
}

func (r *RepositorySQlite) Close() error {
	log.Println("[history/RepositorySQlite.Close] closing db connection")
	return r.db.Close()
}

func (r *RepositorySQlite) Append(ctx context.Context, userID int64, ts time.Time, resultText string) (history.Record, error) {
	stamp := ts.Format(history.TimestampLayout)

	res, err := r.db.ExecContext(ctx, insert, userID, stamp, resultText)
	if err != nil {
		log.Printf("[history/RepositorySQlite.Append] userID=%d err=%v", userID, err)
		return history.Record{}, &history.StorageError{Op: "append", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		log.Printf("[history/RepositorySQlite.Append] userID=%d LastInsertId err=%v", userID, err)
		return history.Record{}, &history.StorageError{Op: "append", Err: err}
	}

	log.Printf("[history/RepositorySQlite.Append] success userID=%d id=%d", userID, id)
	return history.Record{
		ID:         id,
		UserID:     userID,
		Timestamp:  ts.Truncate(time.Second),
		ResultText: resultText,
	}, nil
}

func (r *RepositorySQlite) Recent(ctx context.Context, userID int64, limit int) ([]history.Record, error) {
	records := make([]history.Record, 0)
	if limit <= 0 {
		return records, nil
	}

	rows, err := r.db.QueryContext(ctx, selectRecentByUserId, userID, limit)
	if err != nil {
		log.Printf("[history/RepositorySQlite.Recent] select userID=%d err=%v", userID, err)
		return nil, &history.StorageError{Op: "recent", Err: fmt.Errorf("select history by user_id: %w", err)}
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			log.Println("[history/RepositorySQlite.Recent] failed to close rows:", err)
		}
	}(rows)

	for rows.Next() {
		var m Record
		if err := rows.Scan(&m.ID, &m.UserID, &m.Timestamp, &m.ResultText); err != nil {
			log.Printf("[history/RepositorySQlite.Recent] failed to scan row: %v", err)
			return nil, &history.StorageError{Op: "recent", Err: fmt.Errorf("scan history row: %w", err)}
		}
		records = append(records, toDomain(m))
	}

	if err := rows.Err(); err != nil {
		log.Printf("[history/RepositorySQlite.Recent] failed to iterate rows: %v", err)
		return nil, &history.StorageError{Op: "recent", Err: fmt.Errorf("iterate rows: %w", err)}
	}

	log.Printf("[history/RepositorySQlite.Recent] userID=%d limit=%d found=%d", userID, limit, len(records))
	return records, nil
}

func (r *RepositorySQlite) Clear(ctx context.Context, userID int64) (deleted int64, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("[history/RepositorySQlite.Clear] userID=%d begin err=%v", userID, err)
		return 0, &history.StorageError{Op: "clear", Err: err}
	}
	defer func() {
		if err == nil {
			return
		}
		if rerr := tx.Rollback(); rerr != nil && !errors.Is(rerr, sql.ErrTxDone) {
			log.Printf("[history/RepositorySQlite.Clear] userID=%d rollback err=%v", userID, rerr)
		}
	}()

	res, err := tx.ExecContext(ctx, deleteByUserId, userID)
	if err != nil {
		log.Printf("[history/RepositorySQlite.Clear] userID=%d err=%v", userID, err)
		return 0, &history.StorageError{Op: "clear", Err: err}
	}

	deleted, err = res.RowsAffected()
	if err != nil {
		log.Printf("[history/RepositorySQlite.Clear] userID=%d error getting RowsAffected=%v", userID, err)
		return 0, &history.StorageError{Op: "clear", Err: err}
	}

	if err = tx.Commit(); err != nil {
		log.Printf("[history/RepositorySQlite.Clear] userID=%d commit err=%v", userID, err)
		return 0, &history.StorageError{Op: "clear", Err: err}
	}

	log.Printf("[history/RepositorySQlite.Clear] userID=%d deleted=%d", userID, deleted)
	return deleted, nil
}

func toDomain(m Record) history.Record {
	ts, err := time.ParseInLocation(history.TimestampLayout, m.Timestamp, time.Local)
	if err != nil {
		log.Printf("[history/RepositorySQlite.toDomain] id=%d bad timestamp %q: %v", m.ID, m.Timestamp, err)
	}
	return history.Record{
		ID:         m.ID,
		UserID:     m.UserID,
		Timestamp:  ts,
		ResultText: m.ResultText,
	}
}
