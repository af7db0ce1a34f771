package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/relaykit/feishu-relay/internal/config"
	"github.com/relaykit/feishu-relay/internal/gateway"
	"github.com/relaykit/feishu-relay/internal/logging"
)

// Server exposes the gateway handler over HTTP.
type Server struct {
	cfg           config.ServerConfig
	logger        *logging.Logger
	gateway       *gateway.Handler
	invokeLimiter *rate.Limiter
}

// NewServer wraps a gateway handler in the HTTP surface. The rate limiter is
// only armed when the configured RPS is positive.
func NewServer(cfg config.ServerConfig, gw *gateway.Handler, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.Default()
	}

	var limiter *rate.Limiter
	if cfg.WriteRateRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.WriteRateRPS), cfg.WriteRateBurst)
	}

	return &Server{
		cfg:           cfg,
		logger:        logger.WithComponent("api"),
		gateway:       gw,
		invokeLimiter: limiter,
	}
}

// Handler returns the http.Handler with routes configured.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/invoke", s.requireInvoke(s.methodOnly(http.MethodPost, s.handleInvoke)))
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return s.loggingMiddleware(mux)
}

// HTTPServer binds the handler to the configured address with conservative
// timeouts. The caller owns startup and shutdown.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
