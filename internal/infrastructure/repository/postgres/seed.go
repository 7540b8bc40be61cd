package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/voley-club/internal/domain/attendance"
	"github.com/riskibarqy/voley-club/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/voley-club/internal/platform/querybuilder"
)

type seedStatement struct {
	label string
	query string
	args  []any
}

// BootstrapSeed loads the demo club into an empty database inside one
// transaction. It is a no-op once any player exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, now time.Time) error {
	var players int
	if err := db.GetContext(ctx, &players, `SELECT COUNT(1) FROM players`); err != nil {
		return fmt.Errorf("count players for bootstrap seed: %w", err)
	}
	if players > 0 {
		return nil
	}

	ds := memory.SeedDataset(now)
	statements, err := seedStatements(ds)
	if err != nil {
		return err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, st := range statements {
		if _, err := tx.ExecContext(ctx, st.query, st.args...); err != nil {
			return fmt.Errorf("seed %s: %w", st.label, err)
		}
	}
	// Memberships need the category-aware insert used by team writes.
	for _, t := range ds.Teams {
		if err := insertMembers(ctx, tx, t.ID, t.MainCategory, t.PlayerIDs); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}

// seedStatements orders inserts so foreign keys resolve: coaches, players
// and their stats, teams, then attendance. Every insert skips rows that
// already exist.
func seedStatements(ds memory.Dataset) ([]seedStatement, error) {
	var out []seedStatement
	add := func(label string, insert *qb.InsertBuilder, target ...string) error {
		query, args, err := insert.OnConflict(qb.OnConflict(target...)).ToSQL()
		if err != nil {
			return fmt.Errorf("build seed %s query: %w", label, err)
		}
		out = append(out, seedStatement{label: label, query: query, args: args})
		return nil
	}
	model := func(label, table string, row any) error {
		insert, err := qb.InsertModel(table, row)
		if err != nil {
			return fmt.Errorf("build seed %s query: %w", label, err)
		}
		return add(label, insert, "public_id")
	}

	for _, c := range ds.Coaches {
		if err := model("coach "+c.ID, "coaches", fromCoach(c)); err != nil {
			return nil, err
		}
	}
	for _, p := range ds.Players {
		if err := model("player "+p.ID, "players", fromPlayer(p)); err != nil {
			return nil, err
		}
		if len(p.StatsHistory) == 0 {
			continue
		}
		stats := qb.InsertInto("player_stats_records").Columns(statsRecordSelectColumns...)
		for _, rec := range p.StatsHistory {
			stats = stats.Values(rec.ID, p.ID, rec.Date.UTC(), rec.Stats.Attack, rec.Stats.Defense, rec.Stats.Block, rec.Stats.Pass)
		}
		if err := add("stats for player "+p.ID, stats, "public_id"); err != nil {
			return nil, err
		}
	}
	for _, t := range ds.Teams {
		if err := model("team "+t.ID, "teams", fromTeam(t)); err != nil {
			return nil, err
		}
	}
	if len(ds.Attendances) > 0 {
		marks := qb.InsertInto("attendances").Columns(attendanceSelectColumns...)
		for _, rec := range ds.Attendances {
			marks = marks.Values(rec.PlayerID, attendance.FormatDay(rec.Day), string(rec.Status))
		}
		if err := add("attendance", marks, "player_public_id", "attended_on"); err != nil {
			return nil, err
		}
	}
	return out, nil
}
