package app

import (
	"context"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/voley-club/internal/config"
	"github.com/riskibarqy/voley-club/internal/domain/attendance"
	"github.com/riskibarqy/voley-club/internal/domain/auth"
	"github.com/riskibarqy/voley-club/internal/domain/clubsettings"
	"github.com/riskibarqy/voley-club/internal/domain/coach"
	"github.com/riskibarqy/voley-club/internal/domain/player"
	"github.com/riskibarqy/voley-club/internal/domain/team"
	"github.com/riskibarqy/voley-club/internal/infrastructure/account"
	cacherepo "github.com/riskibarqy/voley-club/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/voley-club/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/voley-club/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/voley-club/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/voley-club/internal/platform/cache"
	idgen "github.com/riskibarqy/voley-club/internal/platform/id"
	"github.com/riskibarqy/voley-club/internal/platform/logging"
	"github.com/riskibarqy/voley-club/internal/usecase"
)

type repositories struct {
	players    player.Repository
	teams      team.Repository
	attendance attendance.Repository
	coaches    coach.Repository
	settings   clubsettings.Repository
}

// NewHTTPServer wires stores, services and the router. The returned close
// function releases the database pool when one was opened.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, errors.New("http server addr cannot be empty")
	}
	if err := httpapi.CheckLabelTables(); err != nil {
		return nil, nil, errors.Wrap(err, "label tables")
	}

	repos, closeStore, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if cfg.CacheEnabled {
		repos = withReadCache(repos, basecache.NewStore(cfg.CacheTTL))
	}

	verifier, err := credentialVerifier(cfg, repos.coaches)
	if err != nil {
		_ = closeStore()
		return nil, nil, err
	}
	sessions, err := account.NewJWTSessions(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		_ = closeStore()
		return nil, nil, errors.Wrap(err, "session issuer")
	}

	ids := idgen.NewUUIDGenerator()
	playerSvc := usecase.NewPlayerService(repos.players, repos.settings, ids, logger.Named("player"))
	teamSvc := usecase.NewTeamService(repos.teams, repos.players, repos.coaches, repos.attendance, repos.settings, ids, logger.Named("team"))
	attendanceSvc := usecase.NewAttendanceService(repos.attendance, repos.players, cfg.AttendanceBatchWorkers, logger.Named("attendance"))
	coachSvc := usecase.NewCoachService(repos.coaches, ids, logger.Named("coach"))
	settingsSvc := usecase.NewClubSettingsService(repos.settings, logger.Named("settings"))
	dashboardSvc := usecase.NewDashboardService(repos.players, repos.teams, repos.attendance)
	authSvc := usecase.NewAuthService(verifier, sessions, logger.Named("auth"))

	handler := httpapi.NewHandler(playerSvc, teamSvc, attendanceSvc, coachSvc, settingsSvc, dashboardSvc, authSvc, logger)
	router := httpapi.NewRouter(handler, authSvc, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.StoreTimeout)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, closeStore, nil
}

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	now := time.Now()

	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		db, err := otelsqlx.Open(
			"postgres",
			withApplicationName(cfg.DBURL, cfg.ServiceName),
			otelsql.WithDBSystem("postgresql"),
			otelsql.WithDBName(databaseName(cfg.DBURL)),
			otelsql.WithQueryFormatter(formatDBQueryForTrace),
		)
		if err != nil {
			return repositories{}, nil, errors.Wrap(err, "open postgres")
		}

		pingCtx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			_ = db.Close()
			return repositories{}, nil, errors.Wrap(err, "ping postgres")
		}
		if err := postgres.BootstrapSeed(pingCtx, db, now); err != nil {
			_ = db.Close()
			return repositories{}, nil, errors.Wrap(err, "bootstrap seed")
		}

		logger.Info("store ready", "driver", cfg.StoreDriver, "db", databaseName(cfg.DBURL))
		return postgresRepositories(db), db.Close, nil
	default:
		store := memory.NewStoreWithData(memory.SeedDataset(now))
		logger.Info("store ready", "driver", config.StoreDriverMemory)
		return repositories{
			players:    memory.NewPlayerRepository(store),
			teams:      memory.NewTeamRepository(store),
			attendance: memory.NewAttendanceRepository(store),
			coaches:    memory.NewCoachRepository(store),
			settings:   memory.NewClubSettingsRepository(store),
		}, func() error { return nil }, nil
	}
}

func postgresRepositories(db *sqlx.DB) repositories {
	return repositories{
		players:    postgres.NewPlayerRepository(db),
		teams:      postgres.NewTeamRepository(db),
		attendance: postgres.NewAttendanceRepository(db),
		coaches:    postgres.NewCoachRepository(db),
		settings:   postgres.NewClubSettingsRepository(db),
	}
}

func withReadCache(repos repositories, store *basecache.Store) repositories {
	return repositories{
		players:    cacherepo.NewPlayerRepository(repos.players, store),
		teams:      cacherepo.NewTeamRepository(repos.teams, store),
		attendance: cacherepo.NewAttendanceRepository(repos.attendance, store),
		coaches:    cacherepo.NewCoachRepository(repos.coaches, store),
		settings:   cacherepo.NewClubSettingsRepository(repos.settings, store),
	}
}

// credentialVerifier checks configured staff accounts first, then coaches.
func credentialVerifier(cfg config.Config, coaches coach.Repository) (auth.CredentialVerifier, error) {
	static, err := account.NewStaticVerifier(
		account.StaticAccount{Username: cfg.AdminUsername, PasswordHash: cfg.AdminPasswordHash, Role: auth.RoleAdmin},
		account.StaticAccount{Username: cfg.SuperAdminUsername, PasswordHash: cfg.SuperAdminPasswordHash, Role: auth.RoleSuperAdmin},
	)
	if err != nil {
		return nil, errors.Wrap(err, "static accounts")
	}
	return account.ChainVerifier{static, account.NewCoachVerifier(coaches)}, nil
}
