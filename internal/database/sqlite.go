package database

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLiteDriver is the default store. With an in-memory DSN the database lives
// as long as the single pooled connection, so the pool is pinned to one.
type SQLiteDriver struct {
	sqlDriver
}

func (sd *SQLiteDriver) Connect(dsn string) error {
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return err
	}
	sd.db = db
	sd.dialect = sqliteDialect
	return nil
}
