package account

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/riskibarqy/voley-club/internal/domain/auth"
)

const sessionIssuer = "voley-club"

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTSessions signs HS256 session tokens.
type JWTSessions struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTSessions(secret string, ttl time.Duration) (*JWTSessions, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("session secret must be at least 32 bytes")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &JWTSessions{secret: []byte(secret), ttl: ttl}, nil
}

func (s *JWTSessions) Issue(p auth.Principal, now time.Time) (auth.Session, error) {
	expiresAt := now.Add(s.ttl)
	claims := sessionClaims{
		Role: string(p.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   p.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return auth.Session{}, fmt.Errorf("sign session token: %w", err)
	}
	return auth.Session{Token: signed, ExpiresAt: expiresAt}, nil
}

func (s *JWTSessions) Verify(_ context.Context, token string) (auth.Principal, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(sessionIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return auth.Principal{}, fmt.Errorf("parse session token: %w", err)
	}
	if !parsed.Valid {
		return auth.Principal{}, fmt.Errorf("session token is not valid")
	}

	return auth.Principal{Subject: claims.Subject, Role: auth.Role(claims.Role)}, nil
}
