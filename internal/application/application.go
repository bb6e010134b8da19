package application

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/apportionment/internal/api"
	"github.com/eugenenazirov/apportionment/internal/apportion"
	"github.com/eugenenazirov/apportionment/internal/config"
	"github.com/eugenenazirov/apportionment/internal/metrics"
	"github.com/eugenenazirov/apportionment/internal/population"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	store    *population.MemoryStore
	registry *apportion.Registry
	metrics  *metrics.Prometheus
	handler  *api.Handler
	router   http.Handler
	logger   *zap.Logger
	server   *http.Server
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	dist, err := cfg.Population()
	if err != nil {
		return nil, err
	}

	store := population.NewMemoryStore()
	if err := store.Load(dist); err != nil {
		return nil, fmt.Errorf("failed to apply population table: %w", err)
	}

	registry := apportion.NewRegistry(cfg.RegistryOptions()...)
	collector := metrics.NewPrometheus("")
	handler := api.NewHandler(registry, store,
		api.WithRecorder(collector),
		api.WithDefaultSeats(cfg.Seats),
		api.WithLimits(cfg.MaxSeats, cfg.MaxRegions),
	)
	router := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		api.WithMetricsHandler(collector.Handler()),
	)

	logger.Info("population table loaded",
		zap.Int("regions", len(dist)),
		zap.Int64("total", dist.Total()),
		zap.String("source", populationSource(cfg)),
	)

	return &App{
		store:    store,
		registry: registry,
		metrics:  collector,
		handler:  handler,
		router:   router,
		logger:   logger,
		server:   NewServer(cfg, router),
	}, nil
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

func populationSource(cfg config.Config) string {
	if cfg.PopulationFile == "" {
		return "census-2013"
	}
	return cfg.PopulationFile
}
