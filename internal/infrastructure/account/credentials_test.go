package account

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/riskibarqy/voley-club/internal/domain/auth"
	"github.com/riskibarqy/voley-club/internal/domain/coach"
	"github.com/riskibarqy/voley-club/internal/infrastructure/repository/memory"
	coachmock "github.com/riskibarqy/voley-club/internal/mocks/domain/coach"
)

func mustHash(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestStaticVerifier_Verify(t *testing.T) {
	verifier, err := NewStaticVerifier(
		StaticAccount{Username: "admin", PasswordHash: mustHash(t, "admin-pass"), Role: auth.RoleAdmin},
		StaticAccount{Username: "root", PasswordHash: mustHash(t, "root-pass"), Role: auth.RoleSuperAdmin},
		StaticAccount{},
	)
	require.NoError(t, err)
	ctx := context.Background()

	role, ok, err := verifier.Verify(ctx, "root", "root-pass")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, auth.RoleSuperAdmin, role)

	role, ok, err = verifier.Verify(ctx, "admin", "root-pass")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, auth.RoleNone, role)

	_, ok, err = verifier.Verify(ctx, "nobody", "x")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewStaticVerifier_RejectsBadConfig(t *testing.T) {
	_, err := NewStaticVerifier(StaticAccount{Username: "admin", PasswordHash: "plain-text", Role: auth.RoleAdmin})
	assert.Error(t, err)

	_, err = NewStaticVerifier(StaticAccount{Username: "admin", PasswordHash: mustHash(t, "x"), Role: auth.RoleNone})
	assert.Error(t, err)

	hash := mustHash(t, "x")
	_, err = NewStaticVerifier(
		StaticAccount{Username: "admin", PasswordHash: hash, Role: auth.RoleAdmin},
		StaticAccount{Username: " admin ", PasswordHash: hash, Role: auth.RoleSuperAdmin},
	)
	assert.Error(t, err)
}

func TestCoachVerifier_Verify(t *testing.T) {
	store := memory.NewStoreWithData(memory.Dataset{
		Coaches: []coach.Coach{{ID: "c1", FirstName: "Laura", LastName: "Pérez", Document: "30111222"}},
	})
	verifier := NewCoachVerifier(memory.NewCoachRepository(store))
	ctx := context.Background()

	role, ok, err := verifier.Verify(ctx, "30111222", "30111222")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, auth.RoleCoach, role)

	_, ok, err = verifier.Verify(ctx, "30111222", "other")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = verifier.Verify(ctx, "999", "999")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestChainVerifier_FirstMatchWinsAndErrorsStop(t *testing.T) {
	static, err := NewStaticVerifier(StaticAccount{Username: "admin", PasswordHash: mustHash(t, "pw"), Role: auth.RoleAdmin})
	require.NoError(t, err)

	coaches := coachmock.NewRepository(t)
	coaches.On("GetByDocument", mock.Anything, "777").Return(coach.Coach{}, false, errors.New("db down")).Once()

	chain := ChainVerifier{static, NewCoachVerifier(coaches)}
	ctx := context.Background()

	role, ok, err := chain.Verify(ctx, "admin", "pw")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, auth.RoleAdmin, role)

	_, _, err = chain.Verify(ctx, "777", "777")
	assert.Error(t, err)
}
