package usecase

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/voley-club/internal/domain/clubsettings"
	"github.com/riskibarqy/voley-club/internal/infrastructure/repository/memory"
	clubsettingsmock "github.com/riskibarqy/voley-club/internal/mocks/domain/clubsettings"
)

func TestClubSettingsService_GetSettings_MaterialisesDefaults(t *testing.T) {
	svc := NewClubSettingsService(memory.NewClubSettingsRepository(memory.NewStore()), nil)

	got, err := svc.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, clubsettings.Defaults(), got)
}

func TestClubSettingsService_UpdateSettings(t *testing.T) {
	svc := NewClubSettingsService(memory.NewClubSettingsRepository(memory.NewStore()), nil)
	ctx := context.Background()

	in := clubsettings.Defaults()
	in.Name = "  Club Atlético  "
	in.LogoURL = ""
	in.Colors.Primary = "#0af"
	in.TeamCreationEnabled = false

	saved, err := svc.UpdateSettings(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "Club Atlético", saved.Name)
	assert.Equal(t, clubsettings.Defaults().LogoURL, saved.LogoURL)
	assert.False(t, saved.TeamCreationEnabled)

	reloaded, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, reloaded)
}

func TestClubSettingsService_UpdateSettings_Validation(t *testing.T) {
	svc := NewClubSettingsService(clubsettingsmock.NewRepository(t), nil)

	blank := clubsettings.Defaults()
	blank.Name = " "
	_, err := svc.UpdateSettings(context.Background(), blank)
	fe, ok := FieldErrorOf(err)
	require.True(t, ok)
	assert.Equal(t, "name", fe.Field)

	badColor := clubsettings.Defaults()
	badColor.Colors.Surface = "blue"
	_, err = svc.UpdateSettings(context.Background(), badColor)
	if !errors.Is(err, clubsettings.ErrInvalidColor) {
		t.Fatalf("expected ErrInvalidColor, got %v", err)
	}
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestClubSettingsService_GetSettings_StoreFailure(t *testing.T) {
	repo := clubsettingsmock.NewRepository(t)
	svc := NewClubSettingsService(repo, nil)

	repo.On("GetOrCreate", mock.Anything, clubsettings.Defaults()).
		Return(clubsettings.Settings{}, context.DeadlineExceeded).
		Once()

	_, err := svc.GetSettings(context.Background())
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
