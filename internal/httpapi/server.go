// Package httpapi serves the analysis, archive and export operations over
// HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nguyentantai21042004/mediascribe/internal/archive"
	"github.com/nguyentantai21042004/mediascribe/internal/auth"
	"github.com/nguyentantai21042004/mediascribe/internal/config"
	"github.com/nguyentantai21042004/mediascribe/internal/export"
	"github.com/nguyentantai21042004/mediascribe/internal/logger"
	"github.com/nguyentantai21042004/mediascribe/internal/media"
	"github.com/nguyentantai21042004/mediascribe/internal/metrics"
	"github.com/nguyentantai21042004/mediascribe/internal/processor"
)

// Deps are the services behind the API. JWT may be nil to disable auth.
type Deps struct {
	Processor processor.Processor
	Intake    media.Intake
	Archive   archive.Store
	Exporter  export.Exporter
	Metrics   *metrics.Metrics
	JWT       *auth.JWTService
	Logger    logger.Logger
}

type Server struct {
	cfg       config.ServerConfig
	processor processor.Processor
	intake    media.Intake
	archive   archive.Store
	exporter  export.Exporter
	metrics   *metrics.Metrics
	jwt       *auth.JWTService
	limiter   *ipRateLimiter
	logger    logger.Logger
	engine    *gin.Engine
}

func New(cfg *config.Config, deps Deps) *Server {
	s := &Server{
		cfg:       cfg.Server,
		processor: deps.Processor,
		intake:    deps.Intake,
		archive:   deps.Archive,
		exporter:  deps.Exporter,
		metrics:   deps.Metrics,
		jwt:       deps.JWT,
		logger:    deps.Logger,
	}
	if cfg.RateLimit.PerMinute > 0 {
		s.limiter = newIPRateLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(s.logger), cors(s.cfg.CORSAllowedOrigins))
	engine.MaxMultipartMemory = 32 << 20
	s.engine = engine
	s.routes()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx ends, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      s.engine,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeoutSec) * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "HTTP server listening on %s", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
