package database

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
)

type MySQLDriver struct {
	sqlDriver
}

func (md *MySQLDriver) Connect(dsn string) error {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return err
	}
	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return err
	}
	md.db = db
	md.dialect = mysqlDialect
	return nil
}
