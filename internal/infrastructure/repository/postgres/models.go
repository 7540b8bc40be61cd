package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type playerTableModel struct {
	PublicID        string         `db:"public_id"`
	Name            string         `db:"name"`
	Document        string         `db:"document"`
	Address         string         `db:"address"`
	Phone           string         `db:"phone"`
	JoinDate        time.Time      `db:"join_date"`
	BirthDate       time.Time      `db:"birth_date"`
	AvatarURL       string         `db:"avatar_url"`
	MainCategories  pq.StringArray `db:"main_categories"`
	SubCategory     string         `db:"sub_category"`
	Position        string         `db:"position"`
	LastPaymentDate sql.NullTime   `db:"last_payment_date"`
}

type statsRecordTableModel struct {
	PublicID       string    `db:"public_id"`
	PlayerPublicID string    `db:"player_public_id"`
	RecordedAt     time.Time `db:"recorded_at"`
	Attack         int       `db:"attack"`
	Defense        int       `db:"defense"`
	Block          int       `db:"block"`
	Pass           int       `db:"pass"`
}

type teamTableModel struct {
	PublicID           string         `db:"public_id"`
	Name               string         `db:"name"`
	MainCategory       string         `db:"main_category"`
	SubCategory        string         `db:"sub_category"`
	Tournament         string         `db:"tournament"`
	TournamentPosition string         `db:"tournament_position"`
	CoachPublicID      sql.NullString `db:"coach_public_id"`
}

type teamMemberTableModel struct {
	TeamPublicID   string `db:"team_public_id"`
	PlayerPublicID string `db:"player_public_id"`
	MainCategory   string `db:"main_category"`
	RosterOrder    int    `db:"roster_order"`
}

type attendanceTableModel struct {
	PlayerPublicID string    `db:"player_public_id"`
	AttendedOn     time.Time `db:"attended_on"`
	Status         string    `db:"status"`
}

type coachTableModel struct {
	PublicID  string `db:"public_id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Document  string `db:"document"`
	AvatarURL string `db:"avatar_url"`
}

type clubSettingsTableModel struct {
	ID                    int    `db:"id"`
	Name                  string `db:"name"`
	LogoURL               string `db:"logo_url"`
	ColorPrimary          string `db:"color_primary"`
	ColorSecondary        string `db:"color_secondary"`
	ColorTertiary         string `db:"color_tertiary"`
	ColorBackground       string `db:"color_background"`
	ColorSurface          string `db:"color_surface"`
	ColorTextPrimary      string `db:"color_text_primary"`
	ColorTextSecondary    string `db:"color_text_secondary"`
	TeamCreationEnabled   bool   `db:"team_creation_enabled"`
	MonthlyPaymentEnabled bool   `db:"monthly_payment_enabled"`
}
