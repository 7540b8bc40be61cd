package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches named constraint", func(t *testing.T) {
		err := fmt.Errorf("insert player: %w", &pq.Error{Code: pgUniqueViolation, Constraint: playerDocumentConstraint})
		if !isUniqueViolation(err, playerDocumentConstraint) {
			t.Fatalf("expected true for wrapped unique violation")
		}
	})

	t.Run("any constraint when empty", func(t *testing.T) {
		err := &pq.Error{Code: pgUniqueViolation, Constraint: "players_public_id_key"}
		if !isUniqueViolation(err, "") {
			t.Fatalf("expected true with empty constraint filter")
		}
	})

	t.Run("ignores other constraint", func(t *testing.T) {
		err := &pq.Error{Code: pgUniqueViolation, Constraint: "players_public_id_key"}
		if isUniqueViolation(err, playerDocumentConstraint) {
			t.Fatalf("expected false for a different constraint")
		}
	})

	t.Run("ignores other codes", func(t *testing.T) {
		err := &pq.Error{Code: pgForeignKeyViolation, Constraint: playerDocumentConstraint}
		if isUniqueViolation(err, playerDocumentConstraint) {
			t.Fatalf("expected false for foreign key violation")
		}
	})

	t.Run("ignores non pq errors", func(t *testing.T) {
		if isUniqueViolation(sql.ErrConnDone, "") {
			t.Fatalf("expected false for plain error")
		}
	})
}

func TestIsForeignKeyViolation(t *testing.T) {
	err := fmt.Errorf("append: %w", &pq.Error{Code: pgForeignKeyViolation, Constraint: "player_stats_records_player_public_id_fkey"})
	if !isForeignKeyViolation(err, "") {
		t.Fatalf("expected true for foreign key violation")
	}
	if isForeignKeyViolation(&pq.Error{Code: pgUniqueViolation}, "") {
		t.Fatalf("expected false for unique violation")
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(sql.ErrTxDone) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestNullString(t *testing.T) {
	t.Run("blank is null", func(t *testing.T) {
		got := nullString("   ")
		if got.Valid {
			t.Fatalf("expected invalid null string, got %+v", got)
		}
	})

	t.Run("trims value", func(t *testing.T) {
		got := nullString(" coach-1 ")
		if !got.Valid || got.String != "coach-1" {
			t.Fatalf("unexpected null string: %+v", got)
		}
	})
}

func TestMustModelColumns(t *testing.T) {
	cols := mustModelColumns(attendanceTableModel{})
	want := []string{"player_public_id", "attended_on", "status"}
	if len(cols) != len(want) {
		t.Fatalf("unexpected columns: %v", cols)
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Fatalf("column %d: got %s want %s", i, cols[i], want[i])
		}
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for model without db tags")
		}
	}()
	_ = mustModelColumns(struct{ Name string }{})
}
