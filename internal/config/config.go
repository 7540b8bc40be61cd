package config

import (
	"time"

	"github.com/riskibarqy/voley-club/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

// devSessionSecret lets a dev or stage instance boot without setup. Prod
// refuses to start without a real secret.
const devSessionSecret = "voley-club-dev-session-secret-change-me"

const minSessionSecretLen = 32

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	LogLevel       logging.Level

	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSAllowedOrigins []string
	SwaggerEnabled     bool

	StoreDriver  string
	DBURL        string
	StoreTimeout time.Duration
	CacheEnabled bool
	CacheTTL     time.Duration

	AdminUsername          string
	AdminPasswordHash      string
	SuperAdminUsername     string
	SuperAdminPasswordHash string
	SessionSecret          string
	SessionTTL             time.Duration

	AttendanceBatchWorkers int

	PprofEnabled bool
	PprofAddr    string

	UptraceEnabled     bool
	UptraceDSN         string
	UptraceLogsEnabled bool

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

// Load reads Config from the process environment.
func Load() (Config, error) {
	return load(newEnv())
}

func load(e *env) (Config, error) {
	var cfg Config

	cfg.AppEnv = e.oneOf("APP_ENV", EnvDev, EnvDev, EnvStage, EnvProd)
	prod := cfg.AppEnv == EnvProd
	cfg.ServiceName = e.str("APP_SERVICE_NAME", "voley-club-api")
	cfg.ServiceVersion = e.str("APP_SERVICE_VERSION", "dev")
	cfg.LogLevel = logging.ParseLevel(e.str("APP_LOG_LEVEL", "info"))

	cfg.HTTPAddr = e.str("APP_HTTP_ADDR", ":8080")
	cfg.ReadTimeout = e.positiveDuration("APP_READ_TIMEOUT", 10*time.Second)
	cfg.WriteTimeout = e.positiveDuration("APP_WRITE_TIMEOUT", 15*time.Second)
	cfg.CORSAllowedOrigins = e.csv("CORS_ALLOWED_ORIGINS", "*")
	if len(cfg.CORSAllowedOrigins) == 0 {
		e.failf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	cfg.SwaggerEnabled = e.boolean("SWAGGER_ENABLED", !prod)

	cfg.StoreDriver = e.oneOf("STORE_DRIVER", StoreDriverMemory, StoreDriverMemory, StoreDriverPostgres)
	cfg.DBURL = e.str("DB_URL", "")
	e.requireIf(cfg.StoreDriver == StoreDriverPostgres, "DB_URL", cfg.DBURL, "STORE_DRIVER=postgres")
	cfg.StoreTimeout = e.positiveDuration("APP_STORE_TIMEOUT", 5*time.Second)
	cfg.CacheEnabled = e.boolean("CACHE_ENABLED", true)
	cfg.CacheTTL = e.positiveDuration("CACHE_TTL", 30*time.Second)

	cfg.AdminUsername = e.str("ADMIN_USERNAME", "")
	cfg.AdminPasswordHash = e.str("ADMIN_PASSWORD_HASH", "")
	e.paired("ADMIN_USERNAME", cfg.AdminUsername, "ADMIN_PASSWORD_HASH", cfg.AdminPasswordHash)
	cfg.SuperAdminUsername = e.str("SUPERADMIN_USERNAME", "")
	cfg.SuperAdminPasswordHash = e.str("SUPERADMIN_PASSWORD_HASH", "")
	e.paired("SUPERADMIN_USERNAME", cfg.SuperAdminUsername, "SUPERADMIN_PASSWORD_HASH", cfg.SuperAdminPasswordHash)

	cfg.SessionSecret = e.lookup("SESSION_SECRET")
	if len(cfg.SessionSecret) < minSessionSecretLen {
		if prod {
			e.failf("SESSION_SECRET must be at least %d bytes", minSessionSecretLen)
		}
		cfg.SessionSecret = devSessionSecret
	}
	cfg.SessionTTL = e.positiveDuration("SESSION_TTL", 12*time.Hour)

	cfg.AttendanceBatchWorkers = e.atLeast("ATTENDANCE_BATCH_WORKERS", 8, 1)

	cfg.PprofEnabled = e.boolean("PPROF_ENABLED", false)
	cfg.PprofAddr = e.str("PPROF_ADDR", ":6060")

	cfg.UptraceEnabled = e.boolean("UPTRACE_ENABLED", false)
	cfg.UptraceDSN = e.str("UPTRACE_DSN", uptraceDSNFromOTLPHeaders(e.lookup("OTEL_EXPORTER_OTLP_HEADERS")))
	e.requireIf(cfg.UptraceEnabled, "UPTRACE_DSN", cfg.UptraceDSN, "UPTRACE_ENABLED=true")
	cfg.UptraceLogsEnabled = e.boolean("UPTRACE_LOGS_ENABLED", false)

	cfg.PyroscopeEnabled = e.boolean("PYROSCOPE_ENABLED", false)
	cfg.PyroscopeServerAddress = e.str("PYROSCOPE_SERVER_ADDRESS", "")
	e.requireIf(cfg.PyroscopeEnabled, "PYROSCOPE_SERVER_ADDRESS", cfg.PyroscopeServerAddress, "PYROSCOPE_ENABLED=true")
	cfg.PyroscopeAppName = e.str("PYROSCOPE_APP_NAME", cfg.ServiceName)
	cfg.PyroscopeAuthToken = e.str("PYROSCOPE_AUTH_TOKEN", "")
	cfg.PyroscopeBasicAuthUser = e.str("PYROSCOPE_BASIC_AUTH_USER", "")
	cfg.PyroscopeBasicAuthPassword = e.str("PYROSCOPE_BASIC_AUTH_PASSWORD", "")
	cfg.PyroscopeUploadRate = e.positiveDuration("PYROSCOPE_UPLOAD_RATE", 15*time.Second)

	if e.err != nil {
		return Config{}, e.err
	}
	return cfg, nil
}
