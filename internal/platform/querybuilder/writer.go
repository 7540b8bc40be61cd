package querybuilder

import (
	"strconv"
	"strings"
)

// writer accumulates SQL text and binds arguments to $n placeholders in the
// order they are written.
type writer struct {
	sql  strings.Builder
	args []any
}

func (w *writer) text(parts ...string) {
	for _, p := range parts {
		w.sql.WriteString(p)
	}
}

func (w *writer) bind(value any) {
	w.args = append(w.args, value)
	w.sql.WriteString("$")
	w.sql.WriteString(strconv.Itoa(len(w.args)))
}

// expr copies a fragment that marks arguments with '?'. Surplus markers are
// written literally.
func (w *writer) expr(fragment string, args []any) {
	next := 0
	for i := 0; i < len(fragment); i++ {
		if fragment[i] == '?' && next < len(args) {
			w.bind(args[next])
			next++
			continue
		}
		w.sql.WriteByte(fragment[i])
	}
}

func (w *writer) columns(cols []string) {
	w.sql.WriteString(strings.Join(cols, ", "))
}

func (w *writer) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			w.text(" WHERE ")
		} else {
			w.text(" AND ")
		}
		c.render(w)
	}
}

func (w *writer) returning(cols []string) {
	if len(cols) == 0 {
		return
	}
	w.text(" RETURNING ")
	w.columns(cols)
}

func (w *writer) result() (string, []any, error) {
	return w.sql.String(), w.args, nil
}

// Condition is one predicate of a WHERE clause; predicates are ANDed.
type Condition interface {
	render(w *writer)
}

type conditionFunc func(w *writer)

func (f conditionFunc) render(w *writer) { f(w) }

func Eq(column string, value any) Condition {
	return conditionFunc(func(w *writer) {
		w.text(column, " = ")
		w.bind(value)
	})
}

// In matches nothing when values is empty.
func In(column string, values []any) Condition {
	return conditionFunc(func(w *writer) {
		if len(values) == 0 {
			w.text("1=0")
			return
		}
		w.text(column, " IN (")
		for i, v := range values {
			if i > 0 {
				w.text(", ")
			}
			w.bind(v)
		}
		w.text(")")
	})
}

// Expr embeds raw SQL, binding args to its '?' markers.
func Expr(fragment string, args ...any) Condition {
	return conditionFunc(func(w *writer) {
		w.expr(fragment, args)
	})
}
