package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	qb "github.com/riskibarqy/voley-club/internal/platform/querybuilder"
)

const (
	pgUniqueViolation     pq.ErrorCode = "23505"
	pgForeignKeyViolation pq.ErrorCode = "23503"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isUniqueViolation reports a unique-constraint failure, restricted to
// constraint when it is not empty.
func isUniqueViolation(err error, constraint string) bool {
	return isPQError(err, pgUniqueViolation, constraint)
}

func isForeignKeyViolation(err error, constraint string) bool {
	return isPQError(err, pgForeignKeyViolation, constraint)
}

func isPQError(err error, code pq.ErrorCode, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != code {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

func nullString(value string) sql.NullString {
	value = strings.TrimSpace(value)
	return sql.NullString{String: value, Valid: value != ""}
}

func stringSliceToAny(items []string) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}

func mustModelColumns(model any) []string {
	cols, err := qb.ModelColumns(model)
	if err != nil {
		panic(fmt.Sprintf("model columns: %v", err))
	}
	return cols
}

func insertModelSQL(table string, model any) (string, []any, error) {
	insert, err := qb.InsertModel(table, model)
	if err != nil {
		return "", nil, err
	}
	return insert.ToSQL()
}
