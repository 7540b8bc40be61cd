package usecase

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/voley-club/internal/domain/attendance"
	"github.com/riskibarqy/voley-club/internal/domain/clubsettings"
	"github.com/riskibarqy/voley-club/internal/domain/coach"
	"github.com/riskibarqy/voley-club/internal/domain/player"
	"github.com/riskibarqy/voley-club/internal/domain/team"
	idgen "github.com/riskibarqy/voley-club/internal/platform/id"
	"github.com/riskibarqy/voley-club/internal/platform/logging"
)

type CreateTeamInput struct {
	Name               string
	MainCategory       player.MainCategory
	SubCategory        player.SubCategory
	PlayerIDs          []string
	Tournament         string
	TournamentPosition string
	CoachID            string
}

// TeamUpdate carries the mutable team fields. Nil fields keep their current
// value. Categories are fixed at creation and cannot be changed here.
type TeamUpdate struct {
	Name               *string
	Tournament         *string
	TournamentPosition *string
	PlayerIDs          []string
	CoachID            *string
}

type TeamService struct {
	teamRepo       team.Repository
	playerRepo     player.Repository
	coachRepo      coach.Repository
	attendanceRepo attendance.Repository
	settingsRepo   clubsettings.Repository
	idGen          idgen.Generator
	logger         *logging.Logger
}

func NewTeamService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	coachRepo coach.Repository,
	attendanceRepo attendance.Repository,
	settingsRepo clubsettings.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamService{
		teamRepo:       teamRepo,
		playerRepo:     playerRepo,
		coachRepo:      coachRepo,
		attendanceRepo: attendanceRepo,
		settingsRepo:   settingsRepo,
		idGen:          idGen,
		logger:         logger,
	}
}

func (s *TeamService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListTeams")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, storeFailure(err, "list teams")
	}
	return teams, nil
}

func (s *TeamService) GetTeam(ctx context.Context, id string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeam")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return team.Team{}, invalidField("id", "is required")
	}

	t, exists, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return team.Team{}, storeFailure(err, "get team")
	}
	if !exists {
		return team.Team{}, notFound("team %s not found", id)
	}
	return t, nil
}

func (s *TeamService) ListTeamsForPlayer(ctx context.Context, playerID string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListTeamsForPlayer")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, invalidField("playerId", "is required")
	}

	teams, err := s.teamRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, storeFailure(err, "list teams by player")
	}
	return teams, nil
}

func (s *TeamService) CreateTeam(ctx context.Context, in CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.CreateTeam")
	defer span.End()

	t := team.Team{
		Name:               strings.TrimSpace(in.Name),
		MainCategory:       in.MainCategory,
		SubCategory:        in.SubCategory,
		PlayerIDs:          cleanIDs(in.PlayerIDs),
		Tournament:         strings.TrimSpace(in.Tournament),
		TournamentPosition: strings.TrimSpace(in.TournamentPosition),
		CoachID:            strings.TrimSpace(in.CoachID),
	}
	if t.Name == "" {
		return team.Team{}, invalidField("name", "is required")
	}
	if err := team.ValidateCategory(t.MainCategory, t.SubCategory); err != nil {
		return team.Team{}, invalidRule("subCategory", err)
	}
	if err := team.ValidateRoster(t.PlayerIDs); err != nil {
		return team.Team{}, invalidRule("playerIds", err)
	}

	settings, err := loadSettings(ctx, s.settingsRepo)
	if err != nil {
		return team.Team{}, err
	}
	if !settings.TeamCreationEnabled {
		return team.Team{}, featureDisabled("team creation is disabled")
	}

	if err := s.validateCoach(ctx, t.CoachID); err != nil {
		return team.Team{}, err
	}
	if err := s.validateMembers(ctx, t.MainCategory, "", t.PlayerIDs); err != nil {
		return team.Team{}, err
	}

	t.ID, err = s.idGen.NewID()
	if err != nil {
		return team.Team{}, errors.Wrap(err, "generate team id")
	}

	if err := s.teamRepo.Create(ctx, t); err != nil {
		return team.Team{}, teamWriteFailure(err, "create team")
	}

	s.logger.InfoContext(ctx, "team created",
		"team_id", t.ID,
		"main_category", t.MainCategory,
		"sub_category", t.SubCategory,
		"player_count", len(t.PlayerIDs),
	)

	return t, nil
}

func (s *TeamService) UpdateTeam(ctx context.Context, id string, in TeamUpdate) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.UpdateTeam")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return team.Team{}, invalidField("id", "is required")
	}

	current, exists, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return team.Team{}, storeFailure(err, "get team")
	}
	if !exists {
		return team.Team{}, notFound("team %s not found", id)
	}

	updated := current
	if in.Name != nil {
		updated.Name = strings.TrimSpace(*in.Name)
		if updated.Name == "" {
			return team.Team{}, invalidField("name", "is required")
		}
	}
	if in.Tournament != nil {
		updated.Tournament = strings.TrimSpace(*in.Tournament)
	}
	if in.TournamentPosition != nil {
		updated.TournamentPosition = strings.TrimSpace(*in.TournamentPosition)
	}
	if in.CoachID != nil {
		updated.CoachID = strings.TrimSpace(*in.CoachID)
		if err := s.validateCoach(ctx, updated.CoachID); err != nil {
			return team.Team{}, err
		}
	}
	if in.PlayerIDs != nil {
		updated.PlayerIDs = cleanIDs(in.PlayerIDs)
		if err := team.ValidateRoster(updated.PlayerIDs); err != nil {
			return team.Team{}, invalidRule("playerIds", err)
		}
		if err := s.validateMembers(ctx, current.MainCategory, current.ID, updated.PlayerIDs); err != nil {
			return team.Team{}, err
		}
	}

	ok, err := s.teamRepo.Update(ctx, updated)
	if err != nil {
		return team.Team{}, teamWriteFailure(err, "update team")
	}
	if !ok {
		return team.Team{}, notFound("team %s not found", id)
	}

	s.logger.InfoContext(ctx, "team updated",
		"team_id", updated.ID,
		"player_count", len(updated.PlayerIDs),
	)

	return updated, nil
}

// ListCandidates returns the players who may join a team of main. With an
// empty teamID the list is for a new team and is ordered by attendance;
// otherwise it is for editing that team and is ordered by score.
func (s *TeamService) ListCandidates(ctx context.Context, main player.MainCategory, teamID string) ([]team.Candidate, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListCandidates")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID != "" {
		t, err := s.GetTeam(ctx, teamID)
		if err != nil {
			return nil, err
		}
		if main == "" {
			main = t.MainCategory
		}
		if main != t.MainCategory {
			return nil, invalidField("mainCategory", "team %s plays in %s", teamID, t.MainCategory)
		}
	}
	if !main.Valid() {
		return nil, invalidField("mainCategory", "unknown category %q", main)
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, storeFailure(err, "list players")
	}
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, storeFailure(err, "list teams")
	}

	var presentCounts map[string]int
	if teamID == "" {
		records, err := s.attendanceRepo.List(ctx)
		if err != nil {
			return nil, storeFailure(err, "list attendances")
		}
		presentCounts = attendance.PresentCounts(records)
	}

	candidates := team.EligibleCandidates(players, main, teamID, teams, presentCounts)
	if teamID == "" {
		team.RankCandidatesByAttendance(candidates)
	} else {
		team.RankCandidatesByScore(candidates)
	}
	return candidates, nil
}

func (s *TeamService) ListTournaments(ctx context.Context) ([]team.TournamentGroup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListTournaments")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, storeFailure(err, "list teams")
	}
	return team.GroupByTournament(teams), nil
}

func (s *TeamService) validateCoach(ctx context.Context, coachID string) error {
	if coachID == "" {
		return nil
	}
	_, exists, err := s.coachRepo.GetByID(ctx, coachID)
	if err != nil {
		return storeFailure(err, "get coach")
	}
	if !exists {
		return invalidField("coachId", "coach %s does not exist", coachID)
	}
	return nil
}

// validateMembers checks that every roster entry is a registered player who
// is eligible for a team of main. teamID excludes the team being edited from
// the exclusivity check.
func (s *TeamService) validateMembers(ctx context.Context, main player.MainCategory, teamID string, playerIDs []string) error {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return storeFailure(err, "list players")
	}
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return storeFailure(err, "list teams")
	}

	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	for _, id := range playerIDs {
		p, ok := byID[id]
		if !ok {
			return invalidField("playerIds", "player %s does not exist", id)
		}
		if err := team.CheckEligibility(p, main, teamID, teams); err != nil {
			return invalidRule("playerIds", err)
		}
	}
	return nil
}

// teamWriteFailure reports the store's own roster checks, which catch
// writers racing past validateMembers, as roster errors.
func teamWriteFailure(err error, op string) error {
	if errors.Is(err, team.ErrPlayerOnOtherTeam) || errors.Is(err, player.ErrUnknownPlayer) {
		return invalidRule("playerIds", err)
	}
	return storeFailure(err, op)
}

func cleanIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, strings.TrimSpace(id))
	}
	return out
}
