package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-market/internal/platform/logging"
)

// NewRouter wires every route behind tracing, request logs, CORS and panic
// recovery, outermost first.
func NewRouter(
	handler *Handler,
	verifier TokenVerifier,
	logger *logging.Logger,
	swaggerEnabled bool,
	corsAllowedOrigins []string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, swaggerEnabled)
	registerMarketRoutes(mux, handler)
	registerTeamRoutes(mux, handler, verifier)

	return chain(mux,
		withTracing(),
		withRequestLog(logger),
		withCORS(corsAllowedOrigins),
		withRecovery(logger),
	)
}
