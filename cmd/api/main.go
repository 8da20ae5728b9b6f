package main

import (
	"Inkwell/internal/api"
	"Inkwell/internal/api/config"
	"Inkwell/internal/pkg/cron"
	"Inkwell/internal/pkg/database"
	"Inkwell/internal/pkg/es"
	"Inkwell/internal/pkg/logger"
	"Inkwell/internal/pkg/minio"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/wire"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

func main() {
	logger.InitLogger()

	if err := config.LoadConfig(); err != nil {
		log.Error("load config failed", "err", err)
		os.Exit(1)
	}

	db, err := database.NewGormDB(&config.Cfg.DB)
	if err != nil {
		log.Error("connect database failed", "err", err)
		os.Exit(1)
	}

	if err := redis.InitRedis(config.Cfg.Redis); err != nil {
		log.Error("connect redis failed", "err", err)
		os.Exit(1)
	}

	if err := minio.Init(); err != nil {
		log.Error("connect minio failed", "err", err)
		os.Exit(1)
	}

	if err := es.InitClient(); err != nil {
		log.Error("connect elasticsearch failed", "err", err)
		os.Exit(1)
	}

	app := wire.BuildApp(db)

	scheduler := cron.NewManager()
	if err := scheduler.Register(config.Cfg.Reindex.Spec, app.SearchReindexJob); err != nil {
		os.Exit(1)
	}
	scheduler.Start()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Cfg.Server.Port),
		Handler: api.NewRouter(app),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("server shutting down")

		scheduler.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited abnormally", "err", err)
		os.Exit(1)
	}

	log.Info("server exited")
}
