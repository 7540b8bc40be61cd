package observability

import (
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/grafana/pyroscope-go"

	"github.com/riskibarqy/voley-club/internal/config"
	"github.com/riskibarqy/voley-club/internal/platform/logging"
)

// InitPyroscope starts continuous profiling when PYROSCOPE_ENABLED is set and
// returns the function that stops it.
func InitPyroscope(cfg config.Config, logger *logging.Logger) (func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if !cfg.PyroscopeEnabled {
		logger.Info("pyroscope disabled")
		return func() error { return nil }, nil
	}

	runtime.SetMutexProfileFraction(5)
	profiler, err := pyroscope.Start(profilerConfig(cfg))
	if err != nil {
		return nil, errors.Wrap(err, "start pyroscope")
	}
	logger.Info("pyroscope enabled", "server_address", cfg.PyroscopeServerAddress, "application", cfg.PyroscopeAppName)
	return profiler.Stop, nil
}

// The attendance batch pool and the dashboard fan-out are the goroutine
// heavy paths, so goroutine and mutex profiles ride along with CPU and heap.
func profilerConfig(cfg config.Config) pyroscope.Config {
	return pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":     cfg.AppEnv,
			"service": cfg.ServiceName,
			"version": cfg.ServiceVersion,
			"store":   cfg.StoreDriver,
		},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileGoroutines,
			pyroscope.ProfileMutexDuration,
		},
	}
}
