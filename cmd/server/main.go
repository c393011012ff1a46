package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/fintrack-ai/fintrack/internal/advisor"
	"github.com/fintrack-ai/fintrack/internal/auth"
	"github.com/fintrack-ai/fintrack/internal/config"
	"github.com/fintrack-ai/fintrack/internal/handlers"
	"github.com/fintrack-ai/fintrack/internal/ledger"
	"github.com/fintrack-ai/fintrack/internal/mirror"
	"github.com/fintrack-ai/fintrack/internal/repository"
	"github.com/fintrack-ai/fintrack/internal/routes"
	"github.com/fintrack-ai/fintrack/internal/service"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	var (
		repo    repository.Repository
		authSvc *auth.Service
		authMW  gin.HandlerFunc
	)
	if cfg.StoreConfigured() {
		sb, err := repository.NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to store")
		}
		defer sb.Close()
		repo = sb
		authSvc = auth.NewService(cfg.SupabaseURL, cfg.SupabaseKey, cfg.GoTrueURL)
		authMW = auth.Middleware(cfg.SupabaseJWTSecret)
	} else {
		log.Warn().Msg("store credentials missing, running in demo/offline mode")
		repo = repository.NewDemoRepository()
		authMW = auth.DemoMiddleware(repository.DemoUserID)
	}

	adv, err := advisor.New(context.Background(), cfg.GeminiAPIKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init advisor")
	}
	if !adv.Available() {
		log.Warn().Msg("Gemini API key missing, advice runs in fallback mode")
	}

	m := mirror.New(repo, 3*time.Second)
	h := handlers.New(cfg, repo, ledger.NewLedger(repo), service.NewTracker(repo), adv, m, authSvc)

	router := gin.Default()
	routes.Register(router, h, authMW)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
