package account

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/riskibarqy/voley-club/internal/domain/auth"
	"github.com/riskibarqy/voley-club/internal/domain/coach"
)

// StaticAccount is a configured admin-tier login.
type StaticAccount struct {
	Username     string
	PasswordHash string
	Role         auth.Role
}

// StaticVerifier checks usernames against configured accounts whose
// passwords are stored as bcrypt hashes.
type StaticVerifier struct {
	accounts map[string]StaticAccount
}

func NewStaticVerifier(accounts ...StaticAccount) (*StaticVerifier, error) {
	out := make(map[string]StaticAccount, len(accounts))
	for _, acc := range accounts {
		acc.Username = strings.TrimSpace(acc.Username)
		if acc.Username == "" || acc.PasswordHash == "" {
			continue
		}
		if !acc.Role.Valid() {
			return nil, fmt.Errorf("account %s has invalid role %q", acc.Username, acc.Role)
		}
		if _, err := bcrypt.Cost([]byte(acc.PasswordHash)); err != nil {
			return nil, fmt.Errorf("account %s password hash: %w", acc.Username, err)
		}
		if _, dup := out[acc.Username]; dup {
			return nil, fmt.Errorf("account %s configured twice", acc.Username)
		}
		out[acc.Username] = acc
	}
	return &StaticVerifier{accounts: out}, nil
}

func (v *StaticVerifier) Verify(_ context.Context, username, password string) (auth.Role, bool, error) {
	acc, ok := v.accounts[strings.TrimSpace(username)]
	if !ok {
		return auth.RoleNone, false, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return auth.RoleNone, false, nil
	}
	return acc.Role, true, nil
}

// CoachVerifier logs coaches in with their document as both username and
// password.
type CoachVerifier struct {
	coaches coach.Repository
}

func NewCoachVerifier(coaches coach.Repository) *CoachVerifier {
	return &CoachVerifier{coaches: coaches}
}

func (v *CoachVerifier) Verify(ctx context.Context, username, password string) (auth.Role, bool, error) {
	username = strings.TrimSpace(username)
	if username == "" || subtle.ConstantTimeCompare([]byte(username), []byte(password)) != 1 {
		return auth.RoleNone, false, nil
	}

	_, exists, err := v.coaches.GetByDocument(ctx, username)
	if err != nil {
		return auth.RoleNone, false, fmt.Errorf("get coach by document: %w", err)
	}
	if !exists {
		return auth.RoleNone, false, nil
	}
	return auth.RoleCoach, true, nil
}

// ChainVerifier asks each verifier in turn and returns the first match.
type ChainVerifier []auth.CredentialVerifier

func (c ChainVerifier) Verify(ctx context.Context, username, password string) (auth.Role, bool, error) {
	for _, v := range c {
		role, ok, err := v.Verify(ctx, username, password)
		if err != nil {
			return auth.RoleNone, false, err
		}
		if ok {
			return role, true, nil
		}
	}
	return auth.RoleNone, false, nil
}
