package main

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"

	"github.com/riskibarqy/voley-club/internal/platform/logging"
)

const applicationName = "voley-club-migration"

var errUsage = errors.New("usage")

// migrator is the slice of *migrate.Migrate the commands drive.
type migrator interface {
	Up() error
	Steps(n int) error
	Migrate(version uint) error
	Force(version int) error
	Version() (uint, bool, error)
}

type command struct {
	usage string
	run   func(m migrator, logger *logging.Logger, out io.Writer, args []string) error
}

var commands = map[string]command{
	"up": {usage: "up", run: func(m migrator, logger *logging.Logger, _ io.Writer, _ []string) error {
		if err := ignoreNoChange(logger, m.Up()); err != nil {
			return err
		}
		logger.Info("migrations applied")
		return nil
	}},
	"down": {usage: "down [steps]", run: func(m migrator, logger *logging.Logger, _ io.Writer, args []string) error {
		steps, err := parseSteps(args)
		if err != nil {
			return err
		}
		if err := ignoreNoChange(logger, m.Steps(-steps)); err != nil {
			return err
		}
		logger.Info("migrations rolled back", "steps", steps)
		return nil
	}},
	"version": {usage: "version", run: func(m migrator, _ *logging.Logger, out io.Writer, _ []string) error {
		version, dirty, err := m.Version()
		switch {
		case errors.Is(err, migrate.ErrNilVersion):
			_, err = fmt.Fprintln(out, "version: none\ndirty: false")
			return err
		case err != nil:
			return errors.Wrap(err, "read version")
		}
		_, err = fmt.Fprintf(out, "version: %d\ndirty: %t\n", version, dirty)
		return err
	}},
	"force": {usage: "force <version>", run: func(m migrator, logger *logging.Logger, _ io.Writer, args []string) error {
		if len(args) == 0 {
			return errors.Wrap(errUsage, "force requires a version argument")
		}
		version, err := parseVersion(args[0])
		if err != nil {
			return err
		}
		if err := m.Force(version); err != nil {
			return errors.Wrapf(err, "force version %d", version)
		}
		logger.Info("forced migration version", "version", version)
		return nil
	}},
	"goto": {usage: "goto <version>", run: func(m migrator, logger *logging.Logger, _ io.Writer, args []string) error {
		if len(args) == 0 {
			return errors.Wrap(errUsage, "goto requires a target version argument")
		}
		target, err := parseTarget(args[0])
		if err != nil {
			return err
		}
		if err := ignoreNoChange(logger, m.Migrate(target)); err != nil {
			return err
		}
		logger.Info("migrated", "version", target)
		return nil
	}},
}

func main() {
	_ = godotenv.Load()
	logger := logging.NewJSON(logging.ParseLevel(os.Getenv("APP_LOG_LEVEL"))).Named("migration")
	logging.SetDefault(logger)

	err := run(logger, os.Args[1:])
	if errors.Is(err, errUsage) {
		printUsage(os.Stderr, err)
		os.Exit(2)
	}
	if err != nil {
		logger.Error("migration failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(logger *logging.Logger, argv []string) error {
	if len(argv) == 0 {
		return errors.Wrap(errUsage, "missing command")
	}
	name := strings.ToLower(strings.TrimSpace(argv[0]))
	if name == "migrate" {
		name = "goto"
	}
	cmd, ok := commands[name]
	if !ok {
		return errors.Wrapf(errUsage, "unknown command %q", argv[0])
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return errors.New("DB_URL is required")
	}
	dir, err := resolveMigrationsDir(os.Getenv("MIGRATIONS_DIR"))
	if err != nil {
		return err
	}

	m, err := migrate.New("file://"+filepath.ToSlash(dir), withApplicationName(dbURL))
	if err != nil {
		return errors.Wrap(err, "create migrator")
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			logger.Warn("close migrator", "source_error", srcErr, "db_error", dbErr)
		}
	}()

	logger.Debug("running migration command", "command", name, "dir", dir)
	return cmd.run(m, logger, os.Stdout, argv[1:])
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, errors.Wrapf(err, "invalid down steps %q", args[0])
	}
	if steps <= 0 {
		return 0, errors.New("down steps must be > 0")
	}
	return steps, nil
}

func parseVersion(raw string) (int, error) {
	version, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.Wrapf(err, "invalid version %q", raw)
	}
	if version < 0 {
		return 0, errors.New("version must be >= 0")
	}
	return version, nil
}

func parseTarget(raw string) (uint, error) {
	target, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 0)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid target version %q", raw)
	}
	return uint(target), nil
}

func ignoreNoChange(logger *logging.Logger, err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

// resolveMigrationsDir returns the first existing directory among override,
// ./db/migrations and /app/db/migrations.
func resolveMigrationsDir(override string) (string, error) {
	candidates := []string{strings.TrimSpace(override), "./db/migrations", "/app/db/migrations"}
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", errors.Newf("migration directory not found in %s", strings.Join(candidates[1:], ", "))
}

// withApplicationName labels the migration session unless the URL already
// names one. Key/value DSNs pass through untouched.
func withApplicationName(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}
	query := parsed.Query()
	if query.Get("application_name") != "" {
		return raw
	}
	query.Set("application_name", applicationName)
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

func printUsage(w io.Writer, reason error) {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "%s: %v\n", name, reason)
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(w, "  %s %s\n", name, commands[n].usage)
	}
}
