package querybuilder

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 || strings.TrimSpace(b.table) == "" {
		return "", nil, errors.New("select needs columns and a table")
	}

	var w writer
	w.text("SELECT ")
	w.columns(b.columns)
	w.text(" FROM ", b.table)
	w.where(b.where)
	if len(b.orderBy) > 0 {
		w.text(" ORDER BY ")
		w.columns(b.orderBy)
	}
	if b.limit > 0 {
		w.text(" LIMIT ", strconv.Itoa(b.limit))
	}
	return w.result()
}

type InsertBuilder struct {
	table     string
	columns   []string
	rows      [][]any
	conflict  *Conflict
	returning []string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

// Values appends one row; call it repeatedly for a multi-row insert.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

func (b *InsertBuilder) OnConflict(c *Conflict) *InsertBuilder {
	b.conflict = c
	return b
}

func (b *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	b.returning = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" || len(b.columns) == 0 {
		return "", nil, errors.New("insert needs a table and columns")
	}
	if len(b.rows) == 0 {
		return "", nil, errors.Newf("insert into %s has no rows", b.table)
	}

	var w writer
	w.text("INSERT INTO ", b.table, " (")
	w.columns(b.columns)
	w.text(") VALUES ")
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, errors.Newf("insert row %d has %d values for %d columns", i, len(row), len(b.columns))
		}
		if i > 0 {
			w.text(", ")
		}
		w.text("(")
		for j, v := range row {
			if j > 0 {
				w.text(", ")
			}
			w.bind(v)
		}
		w.text(")")
	}
	if b.conflict != nil {
		if err := b.conflict.render(&w); err != nil {
			return "", nil, err
		}
	}
	w.returning(b.returning)
	return w.result()
}

// Conflict is an ON CONFLICT clause. Without assignments it renders
// DO NOTHING.
type Conflict struct {
	target      []string
	assignments []assignment
}

type assignment struct {
	column string
	expr   string
	args   []any
}

func OnConflict(target ...string) *Conflict {
	return &Conflict{target: append([]string(nil), target...)}
}

// UpdateExcluded overwrites each column with the value that failed to insert.
func (c *Conflict) UpdateExcluded(columns ...string) *Conflict {
	for _, col := range columns {
		c.assignments = append(c.assignments, assignment{column: col, expr: "EXCLUDED." + col})
	}
	return c
}

func (c *Conflict) UpdateExpr(column, expr string, args ...any) *Conflict {
	c.assignments = append(c.assignments, assignment{column: column, expr: expr, args: args})
	return c
}

func (c *Conflict) render(w *writer) error {
	if len(c.target) == 0 {
		return errors.New("on conflict needs a target")
	}
	w.text(" ON CONFLICT (")
	w.columns(c.target)
	w.text(")")
	if len(c.assignments) == 0 {
		w.text(" DO NOTHING")
		return nil
	}
	w.text(" DO UPDATE SET ")
	writeAssignments(w, c.assignments)
	return nil
}

type UpdateBuilder struct {
	table     string
	sets      []assignment
	where     []Condition
	returning []string
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, expr: "?", args: []any{value}})
	return b
}

func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, expr: expr, args: args})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) Returning(columns ...string) *UpdateBuilder {
	b.returning = append([]string(nil), columns...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" || len(b.sets) == 0 {
		return "", nil, errors.New("update needs a table and at least one column")
	}

	var w writer
	w.text("UPDATE ", b.table, " SET ")
	writeAssignments(&w, b.sets)
	w.where(b.where)
	w.returning(b.returning)
	return w.result()
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

// ToSQL refuses to build a DELETE without a WHERE clause.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, errors.New("delete needs a table")
	}
	if len(b.where) == 0 {
		return "", nil, errors.Newf("delete from %s without where clause", b.table)
	}

	var w writer
	w.text("DELETE FROM ", b.table)
	w.where(b.where)
	return w.result()
}

func writeAssignments(w *writer, sets []assignment) {
	for i, s := range sets {
		if i > 0 {
			w.text(", ")
		}
		w.text(s.column, " = ")
		w.expr(s.expr, s.args)
	}
}
