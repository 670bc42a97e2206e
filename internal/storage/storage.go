// Package storage opens the order database selected in config and brings its schema up to date.
package storage

import (
	"context"
	"fmt"

	"github.com/SergeyBogomolovv/wholesale-order-service/internal/config"
	"github.com/SergeyBogomolovv/wholesale-order-service/internal/migrations"

	"github.com/jmoiron/sqlx"
)

func Open(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)
	switch cfg.Storage.Driver {
	case "postgres":
		db, err = NewPostgres(ctx, cfg.Postgres)
	case "sqlite":
		db, err = NewSQLite(ctx, cfg.SQLite)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := migrations.Up(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate db: %w", err)
	}
	return db, nil
}
