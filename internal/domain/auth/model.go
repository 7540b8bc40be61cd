package auth

import (
	"context"
	"time"
)

// Role is the access tier resolved at login.
type Role string

const (
	RoleNone       Role = "none"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superAdmin"
	RoleCoach      Role = "coach"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSuperAdmin, RoleCoach:
		return true
	default:
		return false
	}
}

// Principal identifies an authenticated caller.
type Principal struct {
	Subject string
	Role    Role
}

// CredentialVerifier resolves a username/password pair to a role. ok is false
// when the verifier does not recognise the credentials.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (role Role, ok bool, err error)
}

// Session is a signed token handed back on a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// SessionIssuer mints and checks session tokens.
type SessionIssuer interface {
	Issue(p Principal, now time.Time) (Session, error)
	Verify(ctx context.Context, token string) (Principal, error)
}
