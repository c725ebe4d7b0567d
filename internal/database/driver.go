package database

import (
	"context"
	"fmt"
	"sort"
)

type ColumnType int

const (
	Text ColumnType = iota
	Real
	Integer
)

func (t ColumnType) String() string {
	switch t {
	case Text:
		return "text"
	case Real:
		return "real"
	case Integer:
		return "integer"
	default:
		return fmt.Sprintf("ColumnType(%d)", int(t))
	}
}

type Column struct {
	Name string
	Type ColumnType
}

// Relation describes a named table. Column names are kept verbatim, so they
// are always quoted in generated SQL.
type Relation struct {
	Name    string
	Columns []Column
}

func (r Relation) ColumnNames() []string {
	names := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		names[i] = c.Name
	}
	return names
}

// Tuple is one row, positionally matching Relation.Columns. Values written by
// the loader are string, float64 or int64; values read back are whatever the
// backend driver yields.
type Tuple []interface{}

type DatabaseDriver interface {
	Connect(dsn string) error
	Close() error
	// ReplaceRelation drops rel if it exists, recreates it and inserts rows.
	ReplaceRelation(ctx context.Context, rel Relation, rows []Tuple) error
	ReadRelation(ctx context.Context, rel Relation) ([]Tuple, error)
	DropRelations(ctx context.Context, names ...string) error
}

var drivers = map[string]func() DatabaseDriver{
	"sqlite":   func() DatabaseDriver { return &SQLiteDriver{} },
	"postgres": func() DatabaseDriver { return &PostgresDriver{} },
	"mysql":    func() DatabaseDriver { return &MySQLDriver{} },
	"mongo":    func() DatabaseDriver { return &MongoDriver{} },
}

// NewDriver returns an unconnected driver for kind.
func NewDriver(kind string) (DatabaseDriver, error) {
	newFn, ok := drivers[kind]
	if !ok {
		return nil, fmt.Errorf("unsupported database type: %s", kind)
	}
	return newFn(), nil
}

func DriverNames() []string {
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func checkArity(rel Relation, rows []Tuple) error {
	for i, row := range rows {
		if len(row) != len(rel.Columns) {
			return fmt.Errorf("%s row %d: got %d values, want %d", rel.Name, i, len(row), len(rel.Columns))
		}
	}
	return nil
}
