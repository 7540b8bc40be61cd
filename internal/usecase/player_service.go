package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/voley-club/internal/domain/clubsettings"
	"github.com/riskibarqy/voley-club/internal/domain/player"
	idgen "github.com/riskibarqy/voley-club/internal/platform/id"
	"github.com/riskibarqy/voley-club/internal/platform/logging"
)

// StatsEntry is one assessment supplied at registration. A zero Date means now.
type StatsEntry struct {
	Date  time.Time
	Stats player.Stats
}

type CreatePlayerInput struct {
	Name           string
	Document       string
	Address        string
	Phone          string
	BirthDate      time.Time
	AvatarURL      string
	MainCategories []player.MainCategory
	SubCategory    player.SubCategory
	Position       player.Position
	StatsHistory   []StatsEntry
}

// UpdatePlayerInput replaces the editable profile of a player. LatestStats,
// when set, overwrites the values of the newest stats record only.
type UpdatePlayerInput struct {
	Name            string
	Document        string
	Address         string
	Phone           string
	BirthDate       time.Time
	AvatarURL       string
	MainCategories  []player.MainCategory
	SubCategory     player.SubCategory
	Position        player.Position
	LastPaymentDate *time.Time
	LatestStats     *player.Stats
}

// OverduePlayer is a player with unpaid monthly fees.
type OverduePlayer struct {
	Player        player.Player
	OverdueMonths int
	CanExpel      bool
}

// PlayerProfile is the detail view of one player.
type PlayerProfile struct {
	Player        player.Player
	LatestStats   player.Stats
	TotalScore    int
	PeerAverage   *player.AverageStats
	Age           int
	OverdueMonths int
	PaidThisMonth bool
	StatsRange    player.StatsRange
	StatsHistory  []player.StatsRecord
}

type PlayerService struct {
	playerRepo   player.Repository
	settingsRepo clubsettings.Repository
	idGen        idgen.Generator
	logger       *logging.Logger
	now          func() time.Time
}

func NewPlayerService(
	playerRepo player.Repository,
	settingsRepo clubsettings.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayerService{
		playerRepo:   playerRepo,
		settingsRepo: settingsRepo,
		idGen:        idGen,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *PlayerService) ListPlayers(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	if filter.MainCategory != "" && !filter.MainCategory.Valid() {
		return nil, invalidField("mainCategory", "unknown category %q", filter.MainCategory)
	}
	if filter.SubCategory != "" && !filter.SubCategory.Valid() {
		return nil, invalidField("subCategory", "unknown category %q", filter.SubCategory)
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, storeFailure(err, "list players")
	}

	return player.FilterPlayers(players, filter), nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, id string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayer")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return player.Player{}, invalidField("id", "is required")
	}

	return s.getPlayer(ctx, id)
}

func (s *PlayerService) GetPlayerByDocument(ctx context.Context, document string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayerByDocument")
	defer span.End()

	document = strings.TrimSpace(document)
	if document == "" {
		return player.Player{}, invalidField("document", "is required")
	}

	p, exists, err := s.playerRepo.GetByDocument(ctx, document)
	if err != nil {
		return player.Player{}, storeFailure(err, "get player by document")
	}
	if !exists {
		return player.Player{}, notFound("player with document %s not found", document)
	}

	return p, nil
}

func (s *PlayerService) CreatePlayer(ctx context.Context, in CreatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.CreatePlayer")
	defer span.End()

	now := s.now().UTC()
	p := player.Player{
		Name:           strings.TrimSpace(in.Name),
		Document:       strings.TrimSpace(in.Document),
		Address:        strings.TrimSpace(in.Address),
		Phone:          strings.TrimSpace(in.Phone),
		JoinDate:       now,
		BirthDate:      dateOnly(in.BirthDate),
		AvatarURL:      strings.TrimSpace(in.AvatarURL),
		MainCategories: in.MainCategories,
		SubCategory:    in.SubCategory,
		Position:       in.Position,
	}
	if err := validateProfile(p, now); err != nil {
		return player.Player{}, err
	}

	entries := in.StatsHistory
	if len(entries) == 0 {
		entries = []StatsEntry{{Date: now}}
	}
	for i, entry := range entries {
		if err := entry.Stats.Validate(); err != nil {
			return player.Player{}, invalidRule("statsHistory", err)
		}
		date := entry.Date.UTC()
		if entry.Date.IsZero() {
			date = now
		}
		recordID, err := s.idGen.NewID()
		if err != nil {
			return player.Player{}, errors.Wrapf(err, "generate stats record id %d", i)
		}
		p.StatsHistory = append(p.StatsHistory, player.StatsRecord{ID: recordID, Date: date, Stats: entry.Stats})
	}

	_, taken, err := s.playerRepo.GetByDocument(ctx, p.Document)
	if err != nil {
		return player.Player{}, storeFailure(err, "check player document")
	}
	if taken {
		return player.Player{}, conflict(player.ErrDuplicateDocument, "document %s", p.Document)
	}

	p.ID, err = s.idGen.NewID()
	if err != nil {
		return player.Player{}, errors.Wrap(err, "generate player id")
	}
	if err := p.Validate(); err != nil {
		return player.Player{}, invalidRule("player", err)
	}

	if err := s.playerRepo.Create(ctx, p); err != nil {
		if errors.Is(err, player.ErrDuplicateDocument) {
			return player.Player{}, conflict(err, "document %s", p.Document)
		}
		return player.Player{}, storeFailure(err, "create player")
	}

	s.logger.InfoContext(ctx, "player registered",
		"player_id", p.ID,
		"stats_records", len(p.StatsHistory),
	)

	return p, nil
}

func (s *PlayerService) UpdatePlayer(ctx context.Context, id string, in UpdatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.UpdatePlayer")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return player.Player{}, invalidField("id", "is required")
	}

	current, err := s.getPlayer(ctx, id)
	if err != nil {
		return player.Player{}, err
	}

	now := s.now().UTC()
	updated := current
	updated.Name = strings.TrimSpace(in.Name)
	updated.Document = strings.TrimSpace(in.Document)
	updated.Address = strings.TrimSpace(in.Address)
	updated.Phone = strings.TrimSpace(in.Phone)
	updated.BirthDate = dateOnly(in.BirthDate)
	updated.AvatarURL = strings.TrimSpace(in.AvatarURL)
	updated.MainCategories = in.MainCategories
	updated.SubCategory = in.SubCategory
	updated.Position = in.Position
	updated.LastPaymentDate = nil
	if in.LastPaymentDate != nil {
		paid := in.LastPaymentDate.UTC()
		updated.LastPaymentDate = &paid
	}
	if err := validateProfile(updated, now); err != nil {
		return player.Player{}, err
	}

	if in.LatestStats != nil {
		if err := in.LatestStats.Validate(); err != nil {
			return player.Player{}, invalidRule("latestStats", err)
		}
		latest, ok := player.LatestRecord(current)
		if !ok {
			return player.Player{}, invalidField("latestStats", "player has no stats record to edit")
		}
		updated.StatsHistory = make([]player.StatsRecord, len(current.StatsHistory))
		copy(updated.StatsHistory, current.StatsHistory)
		for i := range updated.StatsHistory {
			if updated.StatsHistory[i].ID == latest.ID {
				updated.StatsHistory[i].Stats = *in.LatestStats
			}
		}
	}

	if updated.Document != current.Document {
		owner, taken, err := s.playerRepo.GetByDocument(ctx, updated.Document)
		if err != nil {
			return player.Player{}, storeFailure(err, "check player document")
		}
		if taken && owner.ID != id {
			return player.Player{}, conflict(player.ErrDuplicateDocument, "document %s", updated.Document)
		}
	}

	ok, err := s.playerRepo.Update(ctx, updated)
	if err != nil {
		if errors.Is(err, player.ErrDuplicateDocument) {
			return player.Player{}, conflict(err, "document %s", updated.Document)
		}
		return player.Player{}, storeFailure(err, "update player")
	}
	if !ok {
		return player.Player{}, notFound("player %s not found", id)
	}

	return updated, nil
}

func (s *PlayerService) DeletePlayer(ctx context.Context, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.DeletePlayer")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return invalidField("id", "is required")
	}

	ok, err := s.playerRepo.Delete(ctx, id)
	if err != nil {
		return storeFailure(err, "delete player")
	}
	if !ok {
		return notFound("player %s not found", id)
	}

	s.logger.InfoContext(ctx, "player deleted", "player_id", id)
	return nil
}

// RecordPayment stamps the player's last payment with the current time.
func (s *PlayerService) RecordPayment(ctx context.Context, id string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.RecordPayment")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return player.Player{}, invalidField("id", "is required")
	}

	settings, err := loadSettings(ctx, s.settingsRepo)
	if err != nil {
		return player.Player{}, err
	}
	if !settings.MonthlyPaymentEnabled {
		return player.Player{}, featureDisabled("monthly payments are disabled")
	}

	paidAt := s.now().UTC()
	ok, err := s.playerRepo.SetLastPaymentDate(ctx, id, paidAt)
	if err != nil {
		return player.Player{}, storeFailure(err, "record payment")
	}
	if !ok {
		return player.Player{}, notFound("player %s not found", id)
	}

	p, err := s.getPlayer(ctx, id)
	if err != nil {
		return player.Player{}, err
	}

	s.logger.InfoContext(ctx, "payment recorded", "player_id", id)
	return p, nil
}

// AddStatsRecord appends a new assessment dated now.
func (s *PlayerService) AddStatsRecord(ctx context.Context, id string, stats player.Stats) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.AddStatsRecord")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return player.Player{}, invalidField("id", "is required")
	}
	if err := stats.Validate(); err != nil {
		return player.Player{}, invalidRule("stats", err)
	}

	recordID, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, errors.Wrap(err, "generate stats record id")
	}
	rec := player.StatsRecord{ID: recordID, Date: s.now().UTC(), Stats: stats}

	ok, err := s.playerRepo.AppendStatsRecord(ctx, id, rec)
	if err != nil {
		return player.Player{}, storeFailure(err, "append stats record")
	}
	if !ok {
		return player.Player{}, notFound("player %s not found", id)
	}

	return s.getPlayer(ctx, id)
}

// ListOverdue returns players owing at least one month, largest debt first.
// Nothing is owed while monthly payments are disabled.
func (s *PlayerService) ListOverdue(ctx context.Context) ([]OverduePlayer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListOverdue")
	defer span.End()

	settings, err := loadSettings(ctx, s.settingsRepo)
	if err != nil {
		return nil, err
	}
	if !settings.MonthlyPaymentEnabled {
		return []OverduePlayer{}, nil
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, storeFailure(err, "list players")
	}

	today := s.now().UTC()
	out := make([]OverduePlayer, 0)
	for _, p := range players {
		months := player.OverdueMonths(p, today)
		if months == 0 {
			continue
		}
		out = append(out, OverduePlayer{
			Player:        p,
			OverdueMonths: months,
			CanExpel:      months >= player.ExpelThresholdMonths,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OverdueMonths > out[j].OverdueMonths
	})

	return out, nil
}

// ExpelPlayer permanently deletes a player whose debt reached the expel
// threshold. The caller must confirm the action.
func (s *PlayerService) ExpelPlayer(ctx context.Context, id string, confirm bool) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ExpelPlayer")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return invalidField("id", "is required")
	}
	if !confirm {
		return invalidField("confirm", "expelling a player must be confirmed")
	}

	p, err := s.getPlayer(ctx, id)
	if err != nil {
		return err
	}
	months := player.OverdueMonths(p, s.now().UTC())
	if months < player.ExpelThresholdMonths {
		return invalidField("id", "player owes %d months, expelling requires %d", months, player.ExpelThresholdMonths)
	}

	ok, err := s.playerRepo.Delete(ctx, id)
	if err != nil {
		return storeFailure(err, "expel player")
	}
	if !ok {
		return notFound("player %s not found", id)
	}

	s.logger.WarnContext(ctx, "player expelled",
		"player_id", id,
		"overdue_months", months,
	)
	return nil
}

func (s *PlayerService) GetProfile(ctx context.Context, id string, rng player.StatsRange) (PlayerProfile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetProfile")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return PlayerProfile{}, invalidField("id", "is required")
	}
	if rng == "" {
		rng = player.StatsRangeQuarterly
	}
	if !rng.Valid() {
		return PlayerProfile{}, invalidField("range", "unknown range %q", rng)
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return PlayerProfile{}, storeFailure(err, "list players")
	}

	var target player.Player
	found := false
	for _, p := range players {
		if p.ID == id {
			target = p
			found = true
			break
		}
	}
	if !found {
		return PlayerProfile{}, notFound("player %s not found", id)
	}

	now := s.now().UTC()
	profile := PlayerProfile{
		Player:        target,
		LatestStats:   player.LatestStats(target),
		TotalScore:    player.TotalScore(target),
		Age:           player.Age(target.BirthDate, now),
		OverdueMonths: player.OverdueMonths(target, now),
		PaidThisMonth: player.PaidInMonth(target, now),
		StatsRange:    rng,
		StatsHistory:  player.StatsInRange(target, rng, now),
	}
	if avg, ok := player.PeerAverageStats(target, players); ok {
		profile.PeerAverage = &avg
	}

	return profile, nil
}

func (s *PlayerService) getPlayer(ctx context.Context, id string) (player.Player, error) {
	p, exists, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return player.Player{}, storeFailure(err, "get player")
	}
	if !exists {
		return player.Player{}, notFound("player %s not found", id)
	}
	return p, nil
}

func validateProfile(p player.Player, now time.Time) error {
	if p.Name == "" {
		return invalidField("name", "is required")
	}
	if p.Document == "" {
		return invalidField("document", "is required")
	}
	if p.BirthDate.IsZero() {
		return invalidField("birthDate", "is required")
	}
	if p.BirthDate.After(now) {
		return invalidField("birthDate", "cannot be in the future")
	}
	if len(p.MainCategories) == 0 {
		return invalidRule("mainCategories", player.ErrNoMainCategory)
	}
	seen := make(map[player.MainCategory]struct{}, len(p.MainCategories))
	for _, c := range p.MainCategories {
		if !c.Valid() {
			return invalidField("mainCategories", "unknown category %q", c)
		}
		if _, dup := seen[c]; dup {
			return invalidField("mainCategories", "category %s listed twice", c)
		}
		seen[c] = struct{}{}
	}
	if !p.SubCategory.Valid() {
		return invalidField("subCategory", "unknown category %q", p.SubCategory)
	}
	if !p.Position.Valid() {
		return invalidField("position", "unknown position %q", p.Position)
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
