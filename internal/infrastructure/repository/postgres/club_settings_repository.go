package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/voley-club/internal/domain/clubsettings"
	qb "github.com/riskibarqy/voley-club/internal/platform/querybuilder"
)

var clubSettingsSelectColumns = mustModelColumns(clubSettingsTableModel{})

type ClubSettingsRepository struct {
	db *sqlx.DB
}

func NewClubSettingsRepository(db *sqlx.DB) *ClubSettingsRepository {
	return &ClubSettingsRepository{db: db}
}

// GetOrCreate inserts defaults only when the singleton row is missing, so two
// first readers racing each other both end up with the same row.
func (r *ClubSettingsRepository) GetOrCreate(ctx context.Context, defaults clubsettings.Settings) (clubsettings.Settings, error) {
	insertSQL, insertArgs, err := buildInsertDefaults(defaults)
	if err != nil {
		return clubsettings.Settings{}, fmt.Errorf("build insert default club settings query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
		return clubsettings.Settings{}, fmt.Errorf("insert default club settings: %w", err)
	}

	query, args, err := qb.Select(clubSettingsSelectColumns...).From("club_settings").
		Where(qb.Eq("id", clubsettings.SingletonID)).
		ToSQL()
	if err != nil {
		return clubsettings.Settings{}, fmt.Errorf("build select club settings query: %w", err)
	}

	var row clubSettingsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return clubsettings.Settings{}, fmt.Errorf("select club settings: %w", err)
	}
	return toSettings(row), nil
}

func (r *ClubSettingsRepository) Save(ctx context.Context, s clubsettings.Settings) (clubsettings.Settings, error) {
	insert, err := qb.InsertModel("club_settings", fromSettings(s))
	if err != nil {
		return clubsettings.Settings{}, fmt.Errorf("build save club settings query: %w", err)
	}
	// Every column but the singleton key is replaced.
	query, args, err := insert.
		OnConflict(qb.OnConflict("id").
			UpdateExcluded(clubSettingsSelectColumns[1:]...).
			UpdateExpr("updated_at", "NOW()")).
		Returning(clubSettingsSelectColumns...).
		ToSQL()
	if err != nil {
		return clubsettings.Settings{}, fmt.Errorf("build save club settings query: %w", err)
	}

	var row clubSettingsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return clubsettings.Settings{}, fmt.Errorf("save club settings: %w", err)
	}
	return toSettings(row), nil
}

func fromSettings(s clubsettings.Settings) clubSettingsTableModel {
	return clubSettingsTableModel{
		ID:                    clubsettings.SingletonID,
		Name:                  s.Name,
		LogoURL:               s.LogoURL,
		ColorPrimary:          s.Colors.Primary,
		ColorSecondary:        s.Colors.Secondary,
		ColorTertiary:         s.Colors.Tertiary,
		ColorBackground:       s.Colors.Background,
		ColorSurface:          s.Colors.Surface,
		ColorTextPrimary:      s.Colors.TextPrimary,
		ColorTextSecondary:    s.Colors.TextSecondary,
		TeamCreationEnabled:   s.TeamCreationEnabled,
		MonthlyPaymentEnabled: s.MonthlyPaymentEnabled,
	}
}

func toSettings(row clubSettingsTableModel) clubsettings.Settings {
	return clubsettings.Settings{
		Name:    row.Name,
		LogoURL: row.LogoURL,
		Colors: clubsettings.Palette{
			Primary:       row.ColorPrimary,
			Secondary:     row.ColorSecondary,
			Tertiary:      row.ColorTertiary,
			Background:    row.ColorBackground,
			Surface:       row.ColorSurface,
			TextPrimary:   row.ColorTextPrimary,
			TextSecondary: row.ColorTextSecondary,
		},
		TeamCreationEnabled:   row.TeamCreationEnabled,
		MonthlyPaymentEnabled: row.MonthlyPaymentEnabled,
	}
}

func buildInsertDefaults(defaults clubsettings.Settings) (string, []any, error) {
	insert, err := qb.InsertModel("club_settings", fromSettings(defaults))
	if err != nil {
		return "", nil, err
	}
	return insert.OnConflict(qb.OnConflict("id")).ToSQL()
}
