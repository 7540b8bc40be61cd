package observability

import (
	"context"
	"strings"

	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/voley-club/internal/config"
	"github.com/riskibarqy/voley-club/internal/platform/logging"
)

// InitUptrace installs the global OpenTelemetry providers. Without a DSN the
// process keeps the no-op providers and every span helper stays inert.
func InitUptrace(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	noop := func(context.Context) error { return nil }

	switch {
	case !cfg.UptraceEnabled:
		logger.Info("uptrace disabled")
		return noop, nil
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		logger.Warn("uptrace enabled without dsn, tracing stays off")
		return noop, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(attribute.String("club.store_driver", cfg.StoreDriver)),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	)
	logger.Info("uptrace enabled", "environment", cfg.AppEnv, "logs_enabled", cfg.UptraceLogsEnabled)

	return uptrace.Shutdown, nil
}
