package httpapi

import (
	"strings"
	"time"

	"github.com/riskibarqy/voley-club/internal/domain/attendance"
	"github.com/riskibarqy/voley-club/internal/domain/clubsettings"
	"github.com/riskibarqy/voley-club/internal/domain/coach"
	"github.com/riskibarqy/voley-club/internal/domain/player"
	"github.com/riskibarqy/voley-club/internal/domain/team"
	"github.com/riskibarqy/voley-club/internal/usecase"
)

type statsDTO struct {
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	Block   int `json:"block"`
	Pass    int `json:"pass"`
}

type averageStatsDTO struct {
	Attack  float64 `json:"attack"`
	Defense float64 `json:"defense"`
	Block   float64 `json:"block"`
	Pass    float64 `json:"pass"`
}

type statsRecordDTO struct {
	ID    string   `json:"id"`
	Date  string   `json:"date"`
	Stats statsDTO `json:"stats"`
}

type playerDTO struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Document        string           `json:"document"`
	Address         string           `json:"address"`
	Phone           string           `json:"phone"`
	JoinDate        string           `json:"joinDate"`
	BirthDate       string           `json:"birthDate"`
	AvatarURL       string           `json:"avatarUrl"`
	MainCategories  []string         `json:"mainCategories"`
	SubCategory     string           `json:"subCategory"`
	Position        string           `json:"position"`
	StatsHistory    []statsRecordDTO `json:"statsHistory"`
	LastPaymentDate string           `json:"lastPaymentDate,omitempty"`
}

type overduePlayerDTO struct {
	Player        playerDTO `json:"player"`
	OverdueMonths int       `json:"overdueMonths"`
	CanExpel      bool      `json:"canExpel"`
}

type playerProfileDTO struct {
	Player        playerDTO        `json:"player"`
	LatestStats   statsDTO         `json:"latestStats"`
	TotalScore    int              `json:"totalScore"`
	PeerAverage   *averageStatsDTO `json:"peerAverage,omitempty"`
	Age           int              `json:"age"`
	OverdueMonths int              `json:"overdueMonths"`
	PaidThisMonth bool             `json:"paidThisMonth"`
	StatsRange    string           `json:"statsRange"`
	StatsHistory  []statsRecordDTO `json:"statsHistory"`
}

type teamDTO struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	MainCategory       string   `json:"mainCategory"`
	SubCategory        string   `json:"subCategory"`
	PlayerIDs          []string `json:"playerIds"`
	Tournament         string   `json:"tournament,omitempty"`
	TournamentPosition string   `json:"tournamentPosition,omitempty"`
	CoachID            string   `json:"coachId,omitempty"`
}

type candidateDTO struct {
	Player       playerDTO `json:"player"`
	PresentCount int       `json:"presentCount"`
	TotalScore   int       `json:"totalScore"`
}

type tournamentGroupDTO struct {
	Tournament string    `json:"tournament"`
	Teams      []teamDTO `json:"teams"`
}

type attendanceDTO struct {
	PlayerID string `json:"playerId"`
	Date     string `json:"date"`
	Status   string `json:"status"`
}

type dayEntryDTO struct {
	PlayerID string `json:"playerId"`
	Status   string `json:"status"`
}

type attendanceBatchItemDTO struct {
	PlayerID string         `json:"playerId"`
	Record   *attendanceDTO `json:"record,omitempty"`
	Error    string         `json:"error,omitempty"`
}

type coachDTO struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Document  string `json:"document"`
	AvatarURL string `json:"avatarUrl"`
}

type paletteDTO struct {
	Primary       string `json:"primary" validate:"required"`
	Secondary     string `json:"secondary" validate:"required"`
	Tertiary      string `json:"tertiary" validate:"required"`
	Background    string `json:"background" validate:"required"`
	Surface       string `json:"surface" validate:"required"`
	TextPrimary   string `json:"textPrimary" validate:"required"`
	TextSecondary string `json:"textSecondary" validate:"required"`
}

type clubSettingsDTO struct {
	Name                  string     `json:"name"`
	LogoURL               string     `json:"logoUrl"`
	Colors                paletteDTO `json:"colors"`
	TeamCreationEnabled   bool       `json:"teamCreationEnabled"`
	MonthlyPaymentEnabled bool       `json:"monthlyPaymentEnabled"`
}

type rankedAthleteDTO struct {
	Player     playerDTO `json:"player"`
	TotalScore int       `json:"totalScore"`
}

type monthBucketDTO struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type dashboardSummaryDTO struct {
	TotalPlayers        int `json:"totalPlayers"`
	TotalTeams          int `json:"totalTeams"`
	TodayAttendanceRate int `json:"todayAttendanceRate"`
}

type dashboardDTO struct {
	Summary      dashboardSummaryDTO  `json:"summary"`
	TopAthletes  []rankedAthleteDTO   `json:"topAthletes"`
	MonthlyJoins []monthBucketDTO     `json:"monthlyJoins"`
	Tournaments  []tournamentGroupDTO `json:"tournaments"`
}

type loginResponseDTO struct {
	Success   bool   `json:"success"`
	Role      string `json:"role"`
	Token     string `json:"token,omitempty"`
	ExpiresAt string `json:"expiresAt,omitempty"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required,max=128"`
	Password string `json:"password" validate:"required,max=128"`
}

type statsRequest struct {
	Attack  int `json:"attack" validate:"min=0,max=100"`
	Defense int `json:"defense" validate:"min=0,max=100"`
	Block   int `json:"block" validate:"min=0,max=100"`
	Pass    int `json:"pass" validate:"min=0,max=100"`
}

type statsEntryRequest struct {
	Date  string       `json:"date" validate:"omitempty,max=40"`
	Stats statsRequest `json:"stats"`
}

type playerProfileRequest struct {
	Name           string   `json:"name" validate:"required,max=120"`
	Document       string   `json:"document" validate:"required,max=40"`
	Address        string   `json:"address" validate:"max=200"`
	Phone          string   `json:"phone" validate:"max=40"`
	BirthDate      string   `json:"birthDate" validate:"required,datetime=2006-01-02"`
	AvatarURL      string   `json:"avatarUrl" validate:"max=2048"`
	MainCategories []string `json:"mainCategories" validate:"required,min=1,max=3,dive,required"`
	SubCategory    string   `json:"subCategory" validate:"required"`
	Position       string   `json:"position" validate:"required"`
}

type createPlayerRequest struct {
	playerProfileRequest
	StatsHistory []statsEntryRequest `json:"statsHistory" validate:"omitempty,dive"`
}

type updatePlayerRequest struct {
	playerProfileRequest
	LastPaymentDate *string       `json:"lastPaymentDate"`
	LatestStats     *statsRequest `json:"latestStats"`
}

type expelPlayerRequest struct {
	Confirm bool `json:"confirm"`
}

type createTeamRequest struct {
	Name               string   `json:"name" validate:"required,max=120"`
	MainCategory       string   `json:"mainCategory" validate:"required"`
	SubCategory        string   `json:"subCategory" validate:"required"`
	PlayerIDs          []string `json:"playerIds" validate:"required,dive,required"`
	Tournament         string   `json:"tournament" validate:"max=120"`
	TournamentPosition string   `json:"tournamentPosition" validate:"max=40"`
	CoachID            string   `json:"coachId" validate:"max=64"`
}

type updateTeamRequest struct {
	Name               *string  `json:"name" validate:"omitempty,max=120"`
	PlayerIDs          []string `json:"playerIds" validate:"omitempty,dive,required"`
	Tournament         *string  `json:"tournament" validate:"omitempty,max=120"`
	TournamentPosition *string  `json:"tournamentPosition" validate:"omitempty,max=40"`
	CoachID            *string  `json:"coachId" validate:"omitempty,max=64"`
	// Accepted so the UI can send a whole team back; ignored by the service.
	MainCategory string `json:"mainCategory"`
	SubCategory  string `json:"subCategory"`
}

type recordAttendanceRequest struct {
	PlayerID string `json:"playerId" validate:"required,max=64"`
	Status   string `json:"status" validate:"required,oneof=Presente Ausente"`
}

type recordAttendanceBatchRequest struct {
	Entries []recordAttendanceRequest `json:"entries" validate:"required,min=1,max=200,dive"`
}

type createCoachRequest struct {
	FirstName string `json:"firstName" validate:"required,max=80"`
	LastName  string `json:"lastName" validate:"required,max=80"`
	Document  string `json:"document" validate:"required,max=40"`
	AvatarURL string `json:"avatarUrl" validate:"max=2048"`
}

type updateClubSettingsRequest struct {
	Name                  string     `json:"name" validate:"required,max=120"`
	LogoURL               string     `json:"logoUrl" validate:"max=2048"`
	Colors                paletteDTO `json:"colors"`
	TeamCreationEnabled   *bool      `json:"teamCreationEnabled" validate:"required"`
	MonthlyPaymentEnabled *bool      `json:"monthlyPaymentEnabled" validate:"required"`
}

func (r statsRequest) toStats() player.Stats {
	return player.Stats{Attack: r.Attack, Defense: r.Defense, Block: r.Block, Pass: r.Pass}
}

func statsToDTO(s player.Stats) statsDTO {
	return statsDTO{Attack: s.Attack, Defense: s.Defense, Block: s.Block, Pass: s.Pass}
}

func statsRecordsToDTO(records []player.StatsRecord) []statsRecordDTO {
	out := make([]statsRecordDTO, 0, len(records))
	for _, rec := range records {
		out = append(out, statsRecordDTO{
			ID:    rec.ID,
			Date:  formatTimestamp(rec.Date),
			Stats: statsToDTO(rec.Stats),
		})
	}
	return out
}

func playerToDTO(p player.Player) playerDTO {
	dto := playerDTO{
		ID:             p.ID,
		Name:           p.Name,
		Document:       p.Document,
		Address:        p.Address,
		Phone:          p.Phone,
		JoinDate:       formatTimestamp(p.JoinDate),
		BirthDate:      attendance.FormatDay(p.BirthDate),
		AvatarURL:      p.AvatarURL,
		MainCategories: mainCategoriesToLabels(p.MainCategories),
		SubCategory:    subCategoryLabels.label(p.SubCategory),
		Position:       positionLabels.label(p.Position),
		StatsHistory:   statsRecordsToDTO(p.StatsHistory),
	}
	if p.LastPaymentDate != nil {
		dto.LastPaymentDate = formatTimestamp(*p.LastPaymentDate)
	}
	return dto
}

func playersToDTO(players []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(players))
	for _, p := range players {
		out = append(out, playerToDTO(p))
	}
	return out
}

func profileToDTO(p usecase.PlayerProfile) playerProfileDTO {
	dto := playerProfileDTO{
		Player:        playerToDTO(p.Player),
		LatestStats:   statsToDTO(p.LatestStats),
		TotalScore:    p.TotalScore,
		Age:           p.Age,
		OverdueMonths: p.OverdueMonths,
		PaidThisMonth: p.PaidThisMonth,
		StatsRange:    string(p.StatsRange),
		StatsHistory:  statsRecordsToDTO(p.StatsHistory),
	}
	if p.PeerAverage != nil {
		dto.PeerAverage = &averageStatsDTO{
			Attack:  p.PeerAverage.Attack,
			Defense: p.PeerAverage.Defense,
			Block:   p.PeerAverage.Block,
			Pass:    p.PeerAverage.Pass,
		}
	}
	return dto
}

func teamToDTO(t team.Team) teamDTO {
	ids := t.PlayerIDs
	if ids == nil {
		ids = []string{}
	}
	return teamDTO{
		ID:                 t.ID,
		Name:               t.Name,
		MainCategory:       mainCategoryLabels.label(t.MainCategory),
		SubCategory:        subCategoryLabels.label(t.SubCategory),
		PlayerIDs:          ids,
		Tournament:         t.Tournament,
		TournamentPosition: t.TournamentPosition,
		CoachID:            t.CoachID,
	}
}

func teamsToDTO(teams []team.Team) []teamDTO {
	out := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		out = append(out, teamToDTO(t))
	}
	return out
}

func tournamentsToDTO(groups []team.TournamentGroup) []tournamentGroupDTO {
	out := make([]tournamentGroupDTO, 0, len(groups))
	for _, g := range groups {
		out = append(out, tournamentGroupDTO{Tournament: g.Tournament, Teams: teamsToDTO(g.Teams)})
	}
	return out
}

func attendanceToDTO(rec attendance.Record) attendanceDTO {
	return attendanceDTO{
		PlayerID: rec.PlayerID,
		Date:     attendance.FormatDay(rec.Day),
		Status:   string(rec.Status),
	}
}

func attendancesToDTO(records []attendance.Record) []attendanceDTO {
	out := make([]attendanceDTO, 0, len(records))
	for _, rec := range records {
		out = append(out, attendanceToDTO(rec))
	}
	return out
}

func coachToDTO(c coach.Coach) coachDTO {
	return coachDTO{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Document:  c.Document,
		AvatarURL: c.AvatarURL,
	}
}

func settingsToDTO(s clubsettings.Settings) clubSettingsDTO {
	return clubSettingsDTO{
		Name:    s.Name,
		LogoURL: s.LogoURL,
		Colors: paletteDTO{
			Primary:       s.Colors.Primary,
			Secondary:     s.Colors.Secondary,
			Tertiary:      s.Colors.Tertiary,
			Background:    s.Colors.Background,
			Surface:       s.Colors.Surface,
			TextPrimary:   s.Colors.TextPrimary,
			TextSecondary: s.Colors.TextSecondary,
		},
		TeamCreationEnabled:   s.TeamCreationEnabled,
		MonthlyPaymentEnabled: s.MonthlyPaymentEnabled,
	}
}

func dashboardToDTO(d usecase.Dashboard) dashboardDTO {
	athletes := make([]rankedAthleteDTO, 0, len(d.TopAthletes))
	for _, a := range d.TopAthletes {
		athletes = append(athletes, rankedAthleteDTO{Player: playerToDTO(a.Player), TotalScore: a.TotalScore})
	}
	buckets := make([]monthBucketDTO, 0, len(d.MonthlyJoins))
	for _, b := range d.MonthlyJoins {
		buckets = append(buckets, monthBucketDTO{Month: b.Label(), Count: b.Count})
	}
	return dashboardDTO{
		Summary: dashboardSummaryDTO{
			TotalPlayers:        d.Summary.TotalPlayers,
			TotalTeams:          d.Summary.TotalTeams,
			TodayAttendanceRate: d.Summary.TodayAttendanceRate,
		},
		TopAthletes:  athletes,
		MonthlyJoins: buckets,
		Tournaments:  tournamentsToDTO(d.Tournaments),
	}
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseTimestamp accepts an RFC 3339 timestamp or a bare YYYY-MM-DD date.
func parseTimestamp(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(attendance.DayLayout, raw); err == nil {
		return t, nil
	}
	return time.Time{}, usecase.ValidationError(field, "must be an RFC 3339 timestamp or YYYY-MM-DD date")
}

func parseDate(field, raw string) (time.Time, error) {
	t, err := time.Parse(attendance.DayLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, usecase.ValidationError(field, "must be a YYYY-MM-DD date")
	}
	return t, nil
}
