package database

import (
	"context"
	"database/sql"
	"fmt"
)

// insertBatchSize bounds the rows per INSERT statement so that the bound
// parameter count stays below SQLite's and MySQL's placeholder limits.
const insertBatchSize = 500

// sqlDriver is the database/sql backed part shared by the SQLite and MySQL
// drivers.
type sqlDriver struct {
	db      *sql.DB
	dialect dialect
}

func (sd *sqlDriver) Close() error {
	if sd.db == nil {
		return nil
	}
	return sd.db.Close()
}

func (sd *sqlDriver) executeTx(ctx context.Context, txFunc func(*sql.Tx) error) (err error) {
	tx, err := sd.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	err = txFunc(tx)
	return err
}

func (sd *sqlDriver) ReplaceRelation(ctx context.Context, rel Relation, rows []Tuple) error {
	if err := checkArity(rel, rows); err != nil {
		return err
	}
	return sd.executeTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, sd.dialect.dropTable(rel.Name)); err != nil {
			return fmt.Errorf("drop %s: %w", rel.Name, err)
		}
		if _, err := tx.ExecContext(ctx, sd.dialect.createTable(rel)); err != nil {
			return fmt.Errorf("create %s: %w", rel.Name, err)
		}

		for start := 0; start < len(rows); start += insertBatchSize {
			end := min(start+insertBatchSize, len(rows))
			batch := rows[start:end]

			valueArgs := make([]interface{}, 0, len(batch)*len(rel.Columns))
			for _, row := range batch {
				valueArgs = append(valueArgs, row...)
			}
			if _, err := tx.ExecContext(ctx, sd.dialect.insertRows(rel, len(batch)), valueArgs...); err != nil {
				return fmt.Errorf("insert %s rows %d-%d: %w", rel.Name, start, end-1, err)
			}
		}
		return nil
	})
}

func (sd *sqlDriver) ReadRelation(ctx context.Context, rel Relation) ([]Tuple, error) {
	rows, err := sd.db.QueryContext(ctx, sd.dialect.selectAll(rel))
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", rel.Name, err)
	}
	defer rows.Close()

	var out []Tuple
	for rows.Next() {
		values := make(Tuple, len(rel.Columns))
		dest := make([]interface{}, len(values))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", rel.Name, err)
		}
		out = append(out, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", rel.Name, err)
	}
	return out, nil
}

func (sd *sqlDriver) DropRelations(ctx context.Context, names ...string) error {
	return sd.executeTx(ctx, func(tx *sql.Tx) error {
		for _, name := range names {
			if _, err := tx.ExecContext(ctx, sd.dialect.dropTable(name)); err != nil {
				return fmt.Errorf("drop %s: %w", name, err)
			}
		}
		return nil
	})
}
