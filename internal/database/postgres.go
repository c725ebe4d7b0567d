package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type PostgresDriver struct {
	conn *pgx.Conn
}

func (pd *PostgresDriver) Connect(dsn string) error {
	conn, err := pgx.Connect(context.Background(), dsn)
	if err != nil {
		return err
	}
	pd.conn = conn
	return nil
}

func (pd *PostgresDriver) Close() error {
	if pd.conn == nil {
		return nil
	}
	return pd.conn.Close(context.Background())
}

func (pd *PostgresDriver) ExecuteTx(ctx context.Context, txFunc func(pgx.Tx) error) (err error) {
	tx, err := pd.conn.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p) // re-panic after rollback
		} else if err != nil {
			_ = tx.Rollback(ctx) // err is non-nil; don't change it
		} else {
			err = tx.Commit(ctx) // err is nil; if Commit returns error, update err
		}
	}()

	err = txFunc(tx)
	return err
}

// ReplaceRelation bulk loads rows with COPY inside the same transaction that
// recreates the table.
func (pd *PostgresDriver) ReplaceRelation(ctx context.Context, rel Relation, rows []Tuple) error {
	if err := checkArity(rel, rows); err != nil {
		return err
	}
	return pd.ExecuteTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, postgresDialect.dropTable(rel.Name)); err != nil {
			return fmt.Errorf("drop %s: %w", rel.Name, err)
		}
		if _, err := tx.Exec(ctx, postgresDialect.createTable(rel)); err != nil {
			return fmt.Errorf("create %s: %w", rel.Name, err)
		}

		copyRows := make([][]interface{}, len(rows))
		for i, row := range rows {
			copyRows[i] = row
		}
		_, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{rel.Name},
			rel.ColumnNames(),
			pgx.CopyFromRows(copyRows),
		)
		if err != nil {
			return fmt.Errorf("copy %s: %w", rel.Name, err)
		}
		return nil
	})
}

func (pd *PostgresDriver) ReadRelation(ctx context.Context, rel Relation) ([]Tuple, error) {
	rows, err := pd.conn.Query(ctx, postgresDialect.selectAll(rel))
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", rel.Name, err)
	}
	defer rows.Close()

	var out []Tuple
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", rel.Name, err)
		}
		out = append(out, Tuple(values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", rel.Name, err)
	}
	return out, nil
}

func (pd *PostgresDriver) DropRelations(ctx context.Context, names ...string) error {
	return pd.ExecuteTx(ctx, func(tx pgx.Tx) error {
		for _, name := range names {
			if _, err := tx.Exec(ctx, fmt.Sprintf("%s CASCADE", postgresDialect.dropTable(name))); err != nil {
				return fmt.Errorf("drop %s: %w", name, err)
			}
		}
		return nil
	})
}
