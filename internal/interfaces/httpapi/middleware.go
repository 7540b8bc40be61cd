package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/riskibarqy/voley-club/internal/domain/auth"
	"github.com/riskibarqy/voley-club/internal/platform/logging"
	"github.com/riskibarqy/voley-club/internal/usecase"
)

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// Chain applies mws so that the first one is the outermost.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			h = mws[i](h)
		}
	}
	return h
}

// TokenVerifier verifies session tokens issued at login.
type TokenVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (auth.Principal, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// resolved principal on the request context.
func RequireAuth(verifier TokenVerifier, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token, err := bearerToken(r.Header.Get("Authorization"))
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		principal, err := verifier.VerifyAccessToken(ctx, token)
		if err != nil {
			writeError(ctx, w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withPrincipal(ctx, principal)))
	})
}

func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.Wrap(usecase.ErrUnauthorized, "missing Authorization header")
	}
	scheme, token, found := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", errors.Wrap(usecase.ErrUnauthorized, "invalid Authorization header format")
	}
	return token, nil
}

// WithTimeout bounds every store call made while serving the request. A
// non-positive timeout disables it.
func WithTimeout(timeout time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type responseMeter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (m *responseMeter) WriteHeader(code int) {
	if m.status == 0 {
		m.status = code
	}
	m.ResponseWriter.WriteHeader(code)
}

func (m *responseMeter) Write(p []byte) (int, error) {
	if m.status == 0 {
		m.status = http.StatusOK
	}
	n, err := m.ResponseWriter.Write(p)
	m.bytes += n
	return n, err
}

// AccessLog writes one line per request. Server errors log at error level.
func AccessLog(logger *logging.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			meter := &responseMeter{ResponseWriter: w}
			next.ServeHTTP(meter, r)
			if meter.status == 0 {
				meter.status = http.StatusOK
			}

			args := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", meter.status,
				"bytes", meter.bytes,
				"client_ip", resolveClientIP(r),
				"duration_ms", time.Since(started).Milliseconds(),
			}
			if meter.status >= http.StatusInternalServerError {
				logger.ErrorContext(r.Context(), "http request", args...)
				return
			}
			logger.InfoContext(r.Context(), "http request", args...)
		})
	}
}

// Tracing starts a server span per request, skipping health probes.
func Tracing(operation string) Middleware {
	return func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, operation,
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
			otelhttp.WithFilter(func(r *http.Request) bool {
				return !isProbePath(r.URL.Path)
			}),
		)
	}
}

func isProbePath(path string) bool {
	switch strings.ToLower(strings.TrimSpace(path)) {
	case "/healthz", "/health", "/livez", "/readyz":
		return true
	}
	return false
}

type corsPolicy struct {
	any     bool
	origins map[string]bool
}

func newCORSPolicy(allowed []string) corsPolicy {
	p := corsPolicy{origins: make(map[string]bool, len(allowed))}
	for _, origin := range allowed {
		switch origin = strings.TrimSpace(origin); origin {
		case "":
		case "*":
			p.any = true
		default:
			p.origins[origin] = true
		}
	}
	return p
}

// allowOrigin returns the Access-Control-Allow-Origin value for origin, or
// "" when the origin is not allowed.
func (p corsPolicy) allowOrigin(origin string) string {
	switch {
	case p.any:
		return "*"
	case p.origins[origin]:
		return origin
	default:
		return ""
	}
}

const corsMaxAge = 10 * time.Minute

// CORS answers preflight requests itself and decorates the rest.
func CORS(allowedOrigins []string) Middleware {
	policy := newCORSPolicy(allowedOrigins)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if allow := policy.allowOrigin(origin); allow != "" {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", allow)
				if allow != "*" {
					h.Add("Vary", "Origin")
				}
				h.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Authorization,Content-Type,Accept")
				h.Set("Access-Control-Max-Age", strconv.Itoa(int(corsMaxAge.Seconds())))
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Recover turns a handler panic into a 500 envelope.
func Recover(logger *logging.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.ErrorContext(r.Context(), "panic recovered", "panic", rec, "path", r.URL.Path)
					writeError(r.Context(), w, errors.Newf("panic: %v", rec))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
