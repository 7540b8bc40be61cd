package observability

import (
	"context"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/voley-club/internal/config"
	"github.com/riskibarqy/voley-club/internal/platform/logging"
)

// StartPprofServer binds the runtime profiles on their own listener, away
// from the public API. The returned stop func is a no-op when pprof is off.
func StartPprofServer(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if logger == nil {
		logger = logging.Default()
	}
	if !cfg.PprofEnabled {
		logger.Debug("pprof disabled")
		return noop, nil
	}
	if cfg.PprofAddr == cfg.HTTPAddr {
		return nil, errors.Newf("PPROF_ADDR %s collides with APP_HTTP_ADDR", cfg.PprofAddr)
	}

	ln, err := net.Listen("tcp", cfg.PprofAddr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen pprof on %s", cfg.PprofAddr)
	}

	srv := &http.Server{Handler: pprofMux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("pprof server failed", "error", err)
		}
	}()
	logger.Info("pprof server listening", "addr", ln.Addr().String())

	return func(ctx context.Context) error {
		if err := srv.Shutdown(ctx); err != nil {
			return errors.Wrap(err, "shutdown pprof server")
		}
		logger.Info("pprof server stopped")
		return nil
	}, nil
}

func pprofMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /debug/pprof/", pprof.Index)
	mux.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("GET /debug/pprof/trace", pprof.Trace)
	return mux
}
