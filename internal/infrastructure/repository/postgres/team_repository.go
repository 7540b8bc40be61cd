package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/voley-club/internal/domain/player"
	"github.com/riskibarqy/voley-club/internal/domain/team"
	qb "github.com/riskibarqy/voley-club/internal/platform/querybuilder"
)

const (
	teamMemberCategoryConstraint = "team_members_player_category_key"
	teamMemberPlayerConstraint   = "team_members_player_public_id_fkey"
)

var (
	teamSelectColumns       = mustModelColumns(teamTableModel{})
	teamMemberSelectColumns = mustModelColumns(teamMemberTableModel{})
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("teams").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}
	return r.selectTeams(ctx, query, args)
}

func (r *TeamRepository) GetByID(ctx context.Context, id string) (team.Team, bool, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("teams").
		Where(qb.Eq("public_id", id)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	teams, err := r.selectTeams(ctx, query, args)
	if err != nil {
		return team.Team{}, false, err
	}
	if len(teams) == 0 {
		return team.Team{}, false, nil
	}
	return teams[0], true, nil
}

func (r *TeamRepository) ListByPlayer(ctx context.Context, playerID string) ([]team.Team, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("teams").
		Where(qb.Expr("public_id IN (SELECT team_public_id FROM team_members WHERE player_public_id = ?)", playerID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams by player query: %w", err)
	}
	return r.selectTeams(ctx, query, args)
}

func (r *TeamRepository) selectTeams(ctx context.Context, query string, args []any) ([]team.Team, error) {
	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}
	if len(rows) == 0 {
		return []team.Team{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.PublicID)
	}
	membersQuery, membersArgs, err := qb.Select(teamMemberSelectColumns...).From("team_members").
		Where(qb.In("team_public_id", stringSliceToAny(ids))).
		OrderBy("team_public_id", "roster_order").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team members query: %w", err)
	}

	var members []teamMemberTableModel
	if err := r.db.SelectContext(ctx, &members, membersQuery, membersArgs...); err != nil {
		return nil, fmt.Errorf("select team members: %w", err)
	}
	byTeam := make(map[string][]string, len(rows))
	for _, m := range members {
		byTeam[m.TeamPublicID] = append(byTeam[m.TeamPublicID], m.PlayerPublicID)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, toTeam(row, byTeam[row.PublicID]))
	}
	return out, nil
}

// Create inserts the team and its roster in one transaction. A roster entry
// already on another team of the category yields team.ErrPlayerOnOtherTeam.
func (r *TeamRepository) Create(ctx context.Context, t team.Team) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for team create: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	insertSQL, insertArgs, err := insertModelSQL("teams", fromTeam(t))
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
		return fmt.Errorf("insert team: %w", err)
	}

	if err := insertMembers(ctx, tx, t.ID, t.MainCategory, t.PlayerIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit team create tx: %w", err)
	}
	return nil
}

// Update rewrites the editable columns and replaces the roster. The stored
// categories are left alone.
func (r *TeamRepository) Update(ctx context.Context, t team.Team) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx for team update: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	updateSQL, updateArgs, err := qb.Update("teams").
		Set("name", t.Name).
		Set("tournament", t.Tournament).
		Set("tournament_position", t.TournamentPosition).
		Set("coach_public_id", nullString(t.CoachID)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", t.ID)).
		Returning("main_category").
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update team query: %w", err)
	}

	var storedMain string
	if err := tx.GetContext(ctx, &storedMain, updateSQL, updateArgs...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("update team: %w", err)
	}

	deleteSQL, deleteArgs, err := qb.DeleteFrom("team_members").
		Where(qb.Eq("team_public_id", t.ID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete team members query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteSQL, deleteArgs...); err != nil {
		return false, fmt.Errorf("delete team members team=%s: %w", t.ID, err)
	}

	if err := insertMembers(ctx, tx, t.ID, player.MainCategory(storedMain), t.PlayerIDs); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit team update tx: %w", err)
	}
	return true, nil
}

func insertMembers(ctx context.Context, tx *sqlx.Tx, teamID string, main player.MainCategory, playerIDs []string) error {
	if len(playerIDs) == 0 {
		return nil
	}

	insert := qb.InsertInto("team_members").Columns(teamMemberSelectColumns...)
	for i, playerID := range playerIDs {
		insert = insert.Values(teamID, playerID, string(main), i)
	}
	query, args, err := insert.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert team members query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, teamMemberCategoryConstraint) {
			return fmt.Errorf("%w: team=%s", team.ErrPlayerOnOtherTeam, teamID)
		}
		if isForeignKeyViolation(err, teamMemberPlayerConstraint) {
			return fmt.Errorf("%w: team=%s", player.ErrUnknownPlayer, teamID)
		}
		return fmt.Errorf("insert team members team=%s: %w", teamID, err)
	}
	return nil
}

func fromTeam(t team.Team) teamTableModel {
	return teamTableModel{
		PublicID:           t.ID,
		Name:               t.Name,
		MainCategory:       string(t.MainCategory),
		SubCategory:        string(t.SubCategory),
		Tournament:         t.Tournament,
		TournamentPosition: t.TournamentPosition,
		CoachPublicID:      nullString(t.CoachID),
	}
}

func toTeam(row teamTableModel, playerIDs []string) team.Team {
	if playerIDs == nil {
		playerIDs = []string{}
	}
	return team.Team{
		ID:                 row.PublicID,
		Name:               row.Name,
		MainCategory:       player.MainCategory(row.MainCategory),
		SubCategory:        player.SubCategory(row.SubCategory),
		PlayerIDs:          playerIDs,
		Tournament:         row.Tournament,
		TournamentPosition: row.TournamentPosition,
		CoachID:            row.CoachPublicID.String,
	}
}
