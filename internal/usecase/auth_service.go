package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/voley-club/internal/domain/auth"
	"github.com/riskibarqy/voley-club/internal/platform/logging"
)

// LoginResult is the outcome of a login attempt. Session is nil unless
// Success is true.
type LoginResult struct {
	Success bool
	Role    auth.Role
	Session *auth.Session
}

type AuthService struct {
	verifier auth.CredentialVerifier
	sessions auth.SessionIssuer
	logger   *logging.Logger
	now      func() time.Time
}

func NewAuthService(verifier auth.CredentialVerifier, sessions auth.SessionIssuer, logger *logging.Logger) *AuthService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AuthService{
		verifier: verifier,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// Login resolves the caller's role. Unknown credentials are not an error:
// they produce Success=false and RoleNone.
func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" {
		return LoginResult{}, invalidField("username", "is required")
	}
	if password == "" {
		return LoginResult{}, invalidField("password", "is required")
	}

	role, ok, err := s.verifier.Verify(ctx, username, password)
	if err != nil {
		return LoginResult{}, storeFailure(err, "verify credentials")
	}
	if !ok || !role.Valid() {
		s.logger.WarnContext(ctx, "login rejected", "username", username)
		return LoginResult{Success: false, Role: auth.RoleNone}, nil
	}

	session, err := s.sessions.Issue(auth.Principal{Subject: username, Role: role}, s.now().UTC())
	if err != nil {
		return LoginResult{}, errors.Wrap(err, "issue session")
	}

	s.logger.InfoContext(ctx, "login succeeded", "username", username, "role", role)
	return LoginResult{Success: true, Role: role, Session: &session}, nil
}

// VerifyAccessToken checks a session token presented on a protected route.
func (s *AuthService) VerifyAccessToken(ctx context.Context, token string) (auth.Principal, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.VerifyAccessToken")
	defer span.End()

	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Principal{}, unauthorized("token is required")
	}

	principal, err := s.sessions.Verify(ctx, token)
	if err != nil {
		return auth.Principal{}, unauthorized("invalid session: %v", err)
	}
	if !principal.Role.Valid() {
		return auth.Principal{}, unauthorized("session carries no role")
	}
	return principal, nil
}
