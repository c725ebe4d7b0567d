package database

import (
	"fmt"
	"strings"
)

type dialect struct {
	quote       func(string) string
	placeholder func(n int) string
	types       map[ColumnType]string
}

var (
	sqliteDialect = dialect{
		quote:       doubleQuote,
		placeholder: func(int) string { return "?" },
		types:       map[ColumnType]string{Text: "TEXT", Real: "REAL", Integer: "INTEGER"},
	}
	postgresDialect = dialect{
		quote:       doubleQuote,
		placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
		types:       map[ColumnType]string{Text: "TEXT", Real: "DOUBLE PRECISION", Integer: "BIGINT"},
	}
	mysqlDialect = dialect{
		quote:       func(s string) string { return "`" + strings.ReplaceAll(s, "`", "``") + "`" },
		placeholder: func(int) string { return "?" },
		types:       map[ColumnType]string{Text: "TEXT", Real: "DOUBLE", Integer: "BIGINT"},
	}
)

func doubleQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func (d dialect) createTable(rel Relation) string {
	cols := make([]string, len(rel.Columns))
	for i, c := range rel.Columns {
		cols[i] = fmt.Sprintf("%s %s", d.quote(c.Name), d.types[c.Type])
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", d.quote(rel.Name), strings.Join(cols, ", "))
}

func (d dialect) dropTable(name string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", d.quote(name))
}

func (d dialect) selectAll(rel Relation) string {
	cols := make([]string, len(rel.Columns))
	for i, c := range rel.Columns {
		cols[i] = d.quote(c.Name)
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), d.quote(rel.Name))
}

// insertRows builds a multi-row INSERT for n rows of rel.
func (d dialect) insertRows(rel Relation, n int) string {
	cols := make([]string, len(rel.Columns))
	for i, c := range rel.Columns {
		cols[i] = d.quote(c.Name)
	}

	valueStrings := make([]string, 0, n)
	arg := 1
	for r := 0; r < n; r++ {
		ph := make([]string, len(rel.Columns))
		for i := range ph {
			ph[i] = d.placeholder(arg)
			arg++
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ", ")+")")
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", d.quote(rel.Name), strings.Join(cols, ", "), strings.Join(valueStrings, ","))
}
