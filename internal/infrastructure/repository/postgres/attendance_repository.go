package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/voley-club/internal/domain/attendance"
	"github.com/riskibarqy/voley-club/internal/domain/player"
	qb "github.com/riskibarqy/voley-club/internal/platform/querybuilder"
)

const attendancePlayerConstraint = "attendances_player_public_id_fkey"

var attendanceSelectColumns = mustModelColumns(attendanceTableModel{})

type AttendanceRepository struct {
	db *sqlx.DB
}

func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) List(ctx context.Context) ([]attendance.Record, error) {
	return r.selectRecords(ctx, "list attendances")
}

func (r *AttendanceRepository) ListByPlayer(ctx context.Context, playerID string) ([]attendance.Record, error) {
	return r.selectRecords(ctx, "list attendances by player", qb.Eq("player_public_id", playerID))
}

func (r *AttendanceRepository) ListByDay(ctx context.Context, day time.Time) ([]attendance.Record, error) {
	return r.selectRecords(ctx, "list attendances by day", qb.Eq("attended_on", attendance.FormatDay(day)))
}

func (r *AttendanceRepository) selectRecords(ctx context.Context, op string, where ...qb.Condition) ([]attendance.Record, error) {
	query, args, err := qb.Select(attendanceSelectColumns...).From("attendances").
		Where(where...).
		OrderBy("attended_on DESC", "player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []attendanceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]attendance.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, toAttendance(row))
	}
	return out, nil
}

// Upsert relies on the (player, day) unique key so concurrent writers for
// the same day collapse into one row, the last one winning.
func (r *AttendanceRepository) Upsert(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	query, args, err := qb.InsertInto("attendances").
		Columns(attendanceSelectColumns...).
		Values(rec.PlayerID, attendance.FormatDay(rec.Day), string(rec.Status)).
		OnConflict(qb.OnConflict("player_public_id", "attended_on").
			UpdateExcluded("status").
			UpdateExpr("updated_at", "NOW()")).
		Returning(attendanceSelectColumns...).
		ToSQL()
	if err != nil {
		return attendance.Record{}, fmt.Errorf("build upsert attendance query: %w", err)
	}

	var row attendanceTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isForeignKeyViolation(err, attendancePlayerConstraint) {
			return attendance.Record{}, fmt.Errorf("%w: %s", player.ErrUnknownPlayer, rec.PlayerID)
		}
		return attendance.Record{}, fmt.Errorf("upsert attendance player=%s: %w", rec.PlayerID, err)
	}
	return toAttendance(row), nil
}

func toAttendance(row attendanceTableModel) attendance.Record {
	return attendance.Record{
		PlayerID: row.PlayerPublicID,
		Day:      attendance.NormalizeDay(row.AttendedOn),
		Status:   attendance.Status(row.Status),
	}
}
