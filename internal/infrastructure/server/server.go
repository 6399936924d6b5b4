package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/RootAccess/backend/internal/api/http"
	"github.com/GriffinCanCode/RootAccess/backend/internal/api/middleware"
	"github.com/GriffinCanCode/RootAccess/backend/internal/api/ws"
	"github.com/GriffinCanCode/RootAccess/backend/internal/docstore"
	"github.com/GriffinCanCode/RootAccess/backend/internal/domain/catalog"
	"github.com/GriffinCanCode/RootAccess/backend/internal/domain/session"
	"github.com/GriffinCanCode/RootAccess/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/RootAccess/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/RootAccess/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/RootAccess/backend/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/RootAccess/backend/internal/service"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router    *gin.Engine
	handler   http.Handler
	desktop   *service.Desktop
	sessions  *session.Manager
	publisher *docstore.Publisher
	tracer    *tracing.Tracer
	metrics   *monitoring.Metrics
	logger    *zap.Logger
	config    *config.Config
}

// New creates a new server instance
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("Initializing RootAccess server",
		zap.String("port", cfg.Server.Port),
		zap.Bool("docstore", cfg.Docstore.Enabled()),
	)

	commands := catalog.DefaultCommands()
	if cfg.Catalog.CommandsPath != "" {
		loaded, err := catalog.LoadCommands(cfg.Catalog.CommandsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load command catalog: %w", err)
		}
		commands = loaded
		logger.Info("Command catalog loaded",
			zap.String("path", cfg.Catalog.CommandsPath),
			zap.Int("commands", commands.Len()))
	}
	apps := catalog.DefaultApps()

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("backend", logging.Component(logger, "tracing"))

	sessionOpts := []session.Option{
		session.WithMetrics(metrics),
		session.WithLogger(logging.Component(logger, "session")),
	}

	var (
		store     service.UserFetcher
		client    *docstore.Client
		publisher *docstore.Publisher
	)
	if cfg.Docstore.Enabled() {
		client = docstore.NewClient(docstore.Config{
			BaseURL:    cfg.Docstore.URL,
			Token:      cfg.Docstore.Token,
			RPS:        cfg.Docstore.RPS,
			MaxRetries: cfg.Docstore.MaxRetries,
		}, logging.Component(logger, "docstore")).WithTracer(tracer)
		publisher = docstore.NewPublisher(client, cfg.Docstore.QueueSize, logging.Component(logger, "publisher")).
			WithMetrics(metrics)
		store = client
		sessionOpts = append(sessionOpts, session.WithSinkFactory(publisher.Sink))
		logger.Info("Document store enabled", zap.String("url", cfg.Docstore.URL))
	}

	sessions := session.NewManager(apps, commands, sessionOpts...)
	desktop := service.NewDesktop(sessions, apps, commands, store, logging.Component(logger, "desktop"))
	if store != nil {
		desktop.WithReconciler(docstore.Reconcile)
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(middleware.Logger(logging.Component(logger, "http")))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig().WithOrigins(cfg.CORS.Origins)))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}

	handlerOpts := []apihttp.Option{apihttp.WithMetrics(metrics)}
	if client != nil {
		handlerOpts = append(handlerOpts, apihttp.WithDocstore(publisher, client.Breaker()))
	}
	handlers := apihttp.NewHandlers(desktop, logging.Component(logger, "api"), handlerOpts...)
	handlers.Register(router)

	wsHandler := ws.NewHandler(desktop, logging.Component(logger, "ws"),
		ws.WithMetrics(metrics),
		ws.WithOrigins(cfg.CORS.Origins),
	)
	router.GET("/sessions/:id/stream", wsHandler.HandleConnection)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.NoRoute(spaHandler(cfg.Server.StaticDir, logger))

	s := &Server{
		router:    router,
		desktop:   desktop,
		sessions:  sessions,
		publisher: publisher,
		tracer:    tracer,
		metrics:   metrics,
		logger:    logger,
		config:    cfg,
	}
	s.handler = router
	if cfg.Server.Gzip {
		s.handler = compressExceptUpgrades(router)
	}

	logger.Info("Server initialized successfully")
	return s, nil
}

// compressExceptUpgrades gzips responses but leaves WebSocket handshakes
// untouched, since the upgrade needs the raw connection
func compressExceptUpgrades(next http.Handler) http.Handler {
	gz := gzhttp.GzipHandler(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if websocket.IsWebSocketUpgrade(r) {
			next.ServeHTTP(w, r)
			return
		}
		gz.ServeHTTP(w, r)
	})
}

// spaHandler serves files from dir and falls back to index.html for any
// other GET so client-side navigation survives reloads
func spaHandler(dir string, logger *zap.Logger) gin.HandlerFunc {
	index := filepath.Join(dir, "index.html")
	if _, err := os.Stat(index); err != nil {
		logger.Warn("Static front end not found, serving API only", zap.String("dir", dir))
		return func(c *gin.Context) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		}
	}

	root := http.Dir(dir)
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		name := path.Clean("/" + c.Request.URL.Path)
		if f, err := root.Open(name); err == nil {
			stat, statErr := f.Stat()
			f.Close()
			if statErr == nil && !stat.IsDir() && name != "/index.html" {
				c.FileFromFS(name, root)
				return
			}
		}
		c.File(index)
	}
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Desktop returns the desktop service
func (s *Server) Desktop() *service.Desktop {
	return s.desktop
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	addr := net.JoinHostPort(s.config.Server.Host, s.config.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sweepLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("Shutting down HTTP server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// sweepLoop evicts idle sessions until ctx is cancelled
func (s *Server) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(s.config.Session.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.sweep(now)
		}
	}
}

func (s *Server) sweep(now time.Time) int {
	evicted := s.sessions.Sweep(now, s.config.Session.TTL)
	if evicted > 0 {
		s.logger.Info("Evicted idle sessions",
			zap.Int("evicted", evicted),
			zap.Duration("ttl", s.config.Session.TTL))
	}
	return evicted
}

// Close flushes background workers
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")
	if s.publisher != nil {
		s.publisher.Close()
		stats := s.publisher.Stats()
		s.logger.Info("Document store publisher stopped",
			zap.Int64("sent", stats.Sent),
			zap.Int64("failed", stats.Failed),
			zap.Int64("dropped", stats.Dropped))
	}
	s.tracer.Close()
	_ = s.logger.Sync()
	return nil
}
