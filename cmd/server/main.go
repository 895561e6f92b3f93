package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"healthprofile/internal/config"
	"healthprofile/internal/schema"
	"healthprofile/internal/service"
	"healthprofile/internal/session"
	"healthprofile/internal/transport/rest"
)

func main() {
	cfg := config.Load()

	zapCfg := zap.NewProductionConfig()
	if cfg.Debug {
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zapCfg.Build()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// The survey document gates everything: a failed load is fatal and the
	// process exits instead of serving a half-initialized engine.
	loader := schema.NewLoader()
	survey, err := loader.Load(ctx, cfg.SchemaSource)
	if err != nil {
		logger.Fatal("failed to load survey schema",
			zap.String("source", cfg.SchemaSource),
			zap.Error(err))
	}
	index := schema.NewIndex(survey)
	logger.Info("survey schema loaded",
		zap.String("source", cfg.SchemaSource),
		zap.String("title", survey.Title),
		zap.Int("sections", len(survey.Sections)))

	sessions := session.NewRegistry(cfg.SessionTTL)
	sessionSvc := service.NewSessionService(survey, index, sessions, logger)

	container := &rest.Container{
		Survey:         survey,
		SessionService: sessionSvc,
		Logger:         logger,
	}
	router := rest.NewRouter(container)

	// Expire idle sessions in the background
	sweepDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(cfg.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if removed := sessions.Sweep(); removed > 0 {
					logger.Info("expired idle sessions",
						zap.Int("removed", removed),
						zap.Int("live", sessions.Len()))
				}
			case <-sweepDone:
				return
			}
		}
	}()

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen and serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")
	close(sweepDone)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
