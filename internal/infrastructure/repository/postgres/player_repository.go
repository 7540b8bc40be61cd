package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/voley-club/internal/domain/player"
	qb "github.com/riskibarqy/voley-club/internal/platform/querybuilder"
)

const playerDocumentConstraint = "players_document_key"

var (
	playerSelectColumns      = mustModelColumns(playerTableModel{})
	statsRecordSelectColumns = mustModelColumns(statsRecordTableModel{})
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}
	if len(rows) == 0 {
		return []player.Player{}, nil
	}

	statsQuery, statsArgs, err := qb.Select(statsRecordSelectColumns...).From("player_stats_records").
		OrderBy("player_public_id", "recorded_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select stats records query: %w", err)
	}

	var statsRows []statsRecordTableModel
	if err := r.db.SelectContext(ctx, &statsRows, statsQuery, statsArgs...); err != nil {
		return nil, fmt.Errorf("select stats records: %w", err)
	}

	byPlayer := make(map[string][]statsRecordTableModel, len(rows))
	for _, rec := range statsRows {
		byPlayer[rec.PlayerPublicID] = append(byPlayer[rec.PlayerPublicID], rec)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, toPlayer(row, byPlayer[row.PublicID]))
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id string) (player.Player, bool, error) {
	return r.getBy(ctx, "public_id", id)
}

func (r *PlayerRepository) GetByDocument(ctx context.Context, document string) (player.Player, bool, error) {
	return r.getBy(ctx, "document", document)
}

func (r *PlayerRepository) getBy(ctx context.Context, column, value string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq(column, value)).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player by %s query: %w", column, err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player by %s: %w", column, err)
	}

	records, err := r.listStatsRecords(ctx, row.PublicID)
	if err != nil {
		return player.Player{}, false, err
	}
	return toPlayer(row, records), true, nil
}

func (r *PlayerRepository) listStatsRecords(ctx context.Context, playerID string) ([]statsRecordTableModel, error) {
	query, args, err := qb.Select(statsRecordSelectColumns...).From("player_stats_records").
		Where(qb.Eq("player_public_id", playerID)).
		OrderBy("recorded_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select stats records by player query: %w", err)
	}

	var rows []statsRecordTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select stats records player=%s: %w", playerID, err)
	}
	return rows, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for player create: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	insertSQL, insertArgs, err := insertModelSQL("players", fromPlayer(p))
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
		if isUniqueViolation(err, playerDocumentConstraint) {
			return fmt.Errorf("%w: %s", player.ErrDuplicateDocument, p.Document)
		}
		return fmt.Errorf("insert player: %w", err)
	}

	if len(p.StatsHistory) > 0 {
		statsSQL, statsArgs, err := buildInsertStatsRecords(p.ID, p.StatsHistory)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, statsSQL, statsArgs...); err != nil {
			return fmt.Errorf("insert stats records player=%s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit player create tx: %w", err)
	}
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx for player update: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var lastPayment sql.NullTime
	if p.LastPaymentDate != nil {
		lastPayment = sql.NullTime{Time: p.LastPaymentDate.UTC(), Valid: true}
	}

	updateSQL, updateArgs, err := qb.Update("players").
		Set("name", p.Name).
		Set("document", p.Document).
		Set("address", p.Address).
		Set("phone", p.Phone).
		Set("birth_date", p.BirthDate).
		Set("avatar_url", p.AvatarURL).
		Set("main_categories", mainCategoriesArray(p.MainCategories)).
		Set("sub_category", string(p.SubCategory)).
		Set("position", string(p.Position)).
		Set("last_payment_date", lastPayment).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", p.ID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update player query: %w", err)
	}

	res, err := tx.ExecContext(ctx, updateSQL, updateArgs...)
	if err != nil {
		if isUniqueViolation(err, playerDocumentConstraint) {
			return false, fmt.Errorf("%w: %s", player.ErrDuplicateDocument, p.Document)
		}
		return false, fmt.Errorf("update player: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for player update: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	// Only the newest record may change; anything else in p.StatsHistory is ignored.
	if latest, ok := player.LatestRecord(p); ok {
		statsSQL, statsArgs, err := qb.Update("player_stats_records").
			Set("attack", latest.Stats.Attack).
			Set("defense", latest.Stats.Defense).
			Set("block", latest.Stats.Block).
			Set("pass", latest.Stats.Pass).
			Where(
				qb.Eq("player_public_id", p.ID),
				qb.Eq("public_id", latest.ID),
				qb.Expr(`public_id = (
SELECT newest.public_id FROM player_stats_records newest
WHERE newest.player_public_id = ?
ORDER BY newest.recorded_at DESC, newest.public_id DESC
LIMIT 1)`, p.ID),
			).
			ToSQL()
		if err != nil {
			return false, fmt.Errorf("build update latest stats query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, statsSQL, statsArgs...); err != nil {
			return false, fmt.Errorf("update latest stats player=%s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit player update tx: %w", err)
	}
	return true, nil
}

func (r *PlayerRepository) SetLastPaymentDate(ctx context.Context, id string, paidAt time.Time) (bool, error) {
	query, args, err := qb.Update("players").
		Set("last_payment_date", paidAt.UTC()).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", id)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build set last payment query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("set last payment player=%s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for set last payment: %w", err)
	}
	return affected > 0, nil
}

// AppendStatsRecord relies on the player foreign key: a missing player is
// reported as not found rather than as an error.
func (r *PlayerRepository) AppendStatsRecord(ctx context.Context, playerID string, rec player.StatsRecord) (bool, error) {
	query, args, err := buildInsertStatsRecords(playerID, []player.StatsRecord{rec})
	if err != nil {
		return false, err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err, "") {
			return false, nil
		}
		return false, fmt.Errorf("append stats record player=%s: %w", playerID, err)
	}
	return true, nil
}

// Delete removes the player row; stats history, attendance and team
// memberships go with it through ON DELETE CASCADE.
func (r *PlayerRepository) Delete(ctx context.Context, id string) (bool, error) {
	query, args, err := qb.DeleteFrom("players").
		Where(qb.Eq("public_id", id)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete player query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete player=%s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for player delete: %w", err)
	}
	return affected > 0, nil
}

func buildInsertStatsRecords(playerID string, records []player.StatsRecord) (string, []any, error) {
	insert := qb.InsertInto("player_stats_records").Columns(statsRecordSelectColumns...)
	for _, rec := range records {
		insert = insert.Values(rec.ID, playerID, rec.Date.UTC(), rec.Stats.Attack, rec.Stats.Defense, rec.Stats.Block, rec.Stats.Pass)
	}
	query, args, err := insert.ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build insert stats records query: %w", err)
	}
	return query, args, nil
}

func fromPlayer(p player.Player) playerTableModel {
	row := playerTableModel{
		PublicID:       p.ID,
		Name:           p.Name,
		Document:       p.Document,
		Address:        p.Address,
		Phone:          p.Phone,
		JoinDate:       p.JoinDate.UTC(),
		BirthDate:      p.BirthDate,
		AvatarURL:      p.AvatarURL,
		MainCategories: mainCategoriesArray(p.MainCategories),
		SubCategory:    string(p.SubCategory),
		Position:       string(p.Position),
	}
	if p.LastPaymentDate != nil {
		row.LastPaymentDate = sql.NullTime{Time: p.LastPaymentDate.UTC(), Valid: true}
	}
	return row
}

func toPlayer(row playerTableModel, records []statsRecordTableModel) player.Player {
	p := player.Player{
		ID:             row.PublicID,
		Name:           row.Name,
		Document:       row.Document,
		Address:        row.Address,
		Phone:          row.Phone,
		JoinDate:       row.JoinDate.UTC(),
		BirthDate:      row.BirthDate.UTC(),
		AvatarURL:      row.AvatarURL,
		MainCategories: make([]player.MainCategory, 0, len(row.MainCategories)),
		SubCategory:    player.SubCategory(row.SubCategory),
		Position:       player.Position(row.Position),
		StatsHistory:   make([]player.StatsRecord, 0, len(records)),
	}
	for _, c := range row.MainCategories {
		p.MainCategories = append(p.MainCategories, player.MainCategory(c))
	}
	if row.LastPaymentDate.Valid {
		paid := row.LastPaymentDate.Time.UTC()
		p.LastPaymentDate = &paid
	}
	for _, rec := range records {
		p.StatsHistory = append(p.StatsHistory, player.StatsRecord{
			ID:   rec.PublicID,
			Date: rec.RecordedAt.UTC(),
			Stats: player.Stats{
				Attack:  rec.Attack,
				Defense: rec.Defense,
				Block:   rec.Block,
				Pass:    rec.Pass,
			},
		})
	}
	return p
}

func mainCategoriesArray(categories []player.MainCategory) pq.StringArray {
	out := make(pq.StringArray, 0, len(categories))
	for _, c := range categories {
		out = append(out, string(c))
	}
	return out
}
