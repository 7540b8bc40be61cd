package usecase

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/voley-club/internal/domain/clubsettings"
	"github.com/riskibarqy/voley-club/internal/platform/logging"
)

type ClubSettingsService struct {
	settingsRepo clubsettings.Repository
	logger       *logging.Logger
}

func NewClubSettingsService(settingsRepo clubsettings.Repository, logger *logging.Logger) *ClubSettingsService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ClubSettingsService{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// GetSettings returns the club settings, materialising the defaults on first use.
func (s *ClubSettingsService) GetSettings(ctx context.Context) (clubsettings.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubSettingsService.GetSettings")
	defer span.End()

	return loadSettings(ctx, s.settingsRepo)
}

// UpdateSettings replaces every editable field; there is no partial merge.
func (s *ClubSettingsService) UpdateSettings(ctx context.Context, in clubsettings.Settings) (clubsettings.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubSettingsService.UpdateSettings")
	defer span.End()

	in.Name = strings.TrimSpace(in.Name)
	in.LogoURL = strings.TrimSpace(in.LogoURL)
	if in.Name == "" {
		return clubsettings.Settings{}, invalidField("name", "is required")
	}
	if in.LogoURL == "" {
		in.LogoURL = clubsettings.Defaults().LogoURL
	}
	if err := in.Colors.Validate(); err != nil {
		return clubsettings.Settings{}, invalidRule("colors", err)
	}

	saved, err := s.settingsRepo.Save(ctx, in)
	if err != nil {
		return clubsettings.Settings{}, storeFailure(err, "save club settings")
	}

	s.logger.InfoContext(ctx, "club settings updated",
		"team_creation_enabled", saved.TeamCreationEnabled,
		"monthly_payment_enabled", saved.MonthlyPaymentEnabled,
	)

	return saved, nil
}

func loadSettings(ctx context.Context, repo clubsettings.Repository) (clubsettings.Settings, error) {
	if repo == nil {
		return clubsettings.Settings{}, errors.Mark(errors.New("club settings store is not configured"), ErrDependencyUnavailable)
	}
	settings, err := repo.GetOrCreate(ctx, clubsettings.Defaults())
	if err != nil {
		return clubsettings.Settings{}, storeFailure(err, "get club settings")
	}
	return settings, nil
}
