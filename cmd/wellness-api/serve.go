package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/JonnyWalker81/wellness/backend/internal/config"
	"github.com/JonnyWalker81/wellness/backend/internal/handlers"
	"github.com/JonnyWalker81/wellness/backend/internal/logger"
	"github.com/JonnyWalker81/wellness/backend/internal/metrics"
	"github.com/JonnyWalker81/wellness/backend/internal/middleware"
	"github.com/JonnyWalker81/wellness/backend/internal/repository"
	"github.com/JonnyWalker81/wellness/backend/internal/service"
	"github.com/JonnyWalker81/wellness/backend/pkg/supabase"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

// shutdownTimeout bounds graceful shutdown of in-flight requests
const shutdownTimeout = 15 * time.Second

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

// stores groups the repositories chosen by store.driver
type stores struct {
	checkIns  repository.CheckInRepository
	phaseTags repository.PhaseTagRepository
	verifier  middleware.TokenVerifier
	close     func() error
}

func openStores(cfg *config.Config, log logger.Logger) (*stores, error) {
	var verifier middleware.TokenVerifier
	var client *supabase.Client
	if cfg.Supabase.URL != "" {
		client = supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)
		verifier = client
	}

	switch cfg.Store.Driver {
	case config.DriverSQLite:
		store, err := repository.OpenSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		if verifier == nil {
			if cfg.Server.IsProduction() {
				store.Close()
				return nil, errors.New("supabase credentials are required for auth in production")
			}
			log.Warn("no supabase configured; bearer tokens are trusted as user ids")
			verifier = middleware.DevTokenVerifier{}
		}
		return &stores{
			checkIns:  store.CheckIns(),
			phaseTags: store.PhaseTags(),
			verifier:  verifier,
			close:     store.Close,
		}, nil

	default:
		return &stores{
			checkIns:  repository.NewCheckInRepository(client),
			phaseTags: repository.NewPhaseTagRepository(client),
			verifier:  verifier,
			close:     func() error { return nil },
		}, nil
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if port != "" {
		cfg.Server.Port = port
	}

	log := logger.New(logger.Config{
		Level:   logger.ParseLevel(cfg.Log.Level),
		Format:  cfg.Log.Format,
		Backend: cfg.Log.Backend,
	})
	logger.SetDefault(log)
	defer logger.Sync(log)

	loc, err := cfg.Analytics.Location()
	if err != nil {
		return fmt.Errorf("invalid analytics timezone: %w", err)
	}

	log.Info("starting wellness API server",
		logger.String("env", cfg.Server.Env),
		logger.String("store", cfg.Store.Driver),
		logger.String("timezone", loc.String()),
	)

	st, err := openStores(cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	m := metrics.NewMetrics()

	// Initialize services
	insightService := service.NewInsightService(st.checkIns, st.phaseTags, m)
	checkInService := service.NewCheckInService(st.checkIns)
	phaseTagService := service.NewPhaseTagService(st.phaseTags)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, 10*time.Minute, "api")
	defer limiter.Stop()

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		Env:            cfg.Server.Env,
		Production:     cfg.Server.IsProduction(),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         log,
		Metrics:        m,
		Verifier:       st.verifier,
		RateLimiter:    limiter,
		Insights:       handlers.NewInsightsHandler(insightService, loc),
		CheckIns:       handlers.NewCheckInHandler(checkInService),
		PhaseTags:      handlers.NewPhaseTagHandler(phaseTagService, loc),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", logger.String("port", cfg.Server.Port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
