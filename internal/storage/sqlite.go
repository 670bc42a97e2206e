package storage

import (
	"context"
	"fmt"

	"github.com/SergeyBogomolovv/wholesale-order-service/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// NewSQLite opens the file used for local development. One connection is
// kept since SQLite serializes writers.
func NewSQLite(ctx context.Context, cfg config.SQLite) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", cfg.Path)

	db, err := sqlx.ConnectContext(ctx, "sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	return db, nil
}
