package httpapi

import (
	"net/http"
	"time"

	"github.com/riskibarqy/voley-club/internal/platform/logging"
)

// NewRouter registers every route and wraps the mux as
// tracing > access log > CORS > recover > timeout.
func NewRouter(
	handler *Handler,
	verifier TokenVerifier,
	logger *logging.Logger,
	swaggerEnabled bool,
	corsAllowedOrigins []string,
	storeTimeout time.Duration,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, swaggerEnabled)
	registerPublicRoutes(mux, handler)
	registerAuthorizedRoutes(mux, handler, verifier)

	return Chain(mux,
		Tracing("voley-club-http"),
		AccessLog(logger),
		CORS(corsAllowedOrigins),
		Recover(logger),
		WithTimeout(storeTimeout),
	)
}
