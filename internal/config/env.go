package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
)

// LoadDotEnv preloads variables from path without overriding ones already
// set in the environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "stat %s", path)
	}
	return errors.Wrapf(godotenv.Load(path), "load %s", path)
}

// env reads typed variables and keeps the first parse error, so Load can
// read everything and check once at the end.
type env struct {
	lookup func(string) string
	err    error
}

func newEnv() *env {
	return &env{lookup: os.Getenv}
}

func (e *env) fail(err error) {
	if e.err == nil && err != nil {
		e.err = err
	}
}

func (e *env) failf(format string, args ...any) {
	e.fail(errors.Newf(format, args...))
}

// str returns the trimmed value, or def when it is blank.
func (e *env) str(key, def string) string {
	if v := strings.TrimSpace(e.lookup(key)); v != "" {
		return v
	}
	return def
}

func (e *env) boolean(key string, def bool) bool {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		e.fail(errors.Wrapf(err, "parse %s", key))
		return def
	}
	return v
}

// positiveDuration rejects zero and negative values.
func (e *env) positiveDuration(key string, def time.Duration) time.Duration {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		e.fail(errors.Wrapf(err, "parse %s", key))
		return def
	}
	if v <= 0 {
		e.failf("%s must be > 0", key)
	}
	return v
}

func (e *env) atLeast(key string, def, min int) int {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		e.fail(errors.Wrapf(err, "parse %s", key))
		return def
	}
	if v < min {
		e.failf("%s must be >= %d", key, min)
	}
	return v
}

// oneOf lower-cases the value and checks it against allowed.
func (e *env) oneOf(key, def string, allowed ...string) string {
	v := strings.ToLower(e.str(key, def))
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	e.failf("invalid %s %q: valid values are %s", key, v, strings.Join(allowed, ", "))
	return def
}

func (e *env) csv(key, def string) []string {
	var out []string
	for _, part := range strings.Split(e.str(key, def), ",") {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// requireIf records an error naming key when cond holds and value is blank.
func (e *env) requireIf(cond bool, key, value, reason string) {
	if cond && value == "" {
		e.failf("%s is required when %s", key, reason)
	}
}

// paired requires both or neither of two values.
func (e *env) paired(keyA, a, keyB, b string) {
	if (a == "") != (b == "") {
		e.failf("%s and %s must be set together", keyA, keyB)
	}
}

// uptraceDSNFromOTLPHeaders pulls uptrace-dsn out of an
// OTEL_EXPORTER_OTLP_HEADERS list such as `uptrace-dsn="https://..."`.
func uptraceDSNFromOTLPHeaders(raw string) string {
	for _, item := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(item), "=")
		if ok && strings.EqualFold(strings.TrimSpace(key), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(value), "\"'")
		}
	}
	return ""
}
