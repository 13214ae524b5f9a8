package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	"github.com/psokolov/sweeper/internal/config"
	"github.com/psokolov/sweeper/internal/database"
	"github.com/psokolov/sweeper/internal/handlers"
	"github.com/psokolov/sweeper/internal/middleware"
	"github.com/psokolov/sweeper/internal/repository"
	"github.com/psokolov/sweeper/internal/session"
)

func main() {
	var logger *slog.Logger
	if config.Development() {
		logger = slog.New(
			tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug}),
		)
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer cancel()

	jwt, err := config.NewJWT()
	if err != nil {
		logger.Error("failed to load jwt config", "error", err)
		os.Exit(1)
	}

	cookies, err := config.NewCookies(jwt)
	if err != nil {
		logger.Error("failed to load cookies config", "error", err)
		os.Exit(1)
	}

	ws, err := config.NewWebSocket()
	if err != nil {
		logger.Error("failed to load ws config", "error", err)
		os.Exit(1)
	}

	// highscores need a database; everything else runs without one
	var scores *repository.Queries
	if config.DatabaseConfigured() {
		db, migrator, err := database.ConnectAndMigrate(ctx)
		if err != nil {
			logger.Error("failed to connect to db", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		version, dirty, err := migrator.Version()
		if err != nil {
			logger.Error("failed to check migration version", "error", err)
			os.Exit(1)
		}
		logger.Info("database migrated",
			slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
		scores = repository.New(db)
	} else {
		logger.Warn("no database configured, highscores disabled")
	}

	sessions := session.NewRegistry()
	defer sessions.CloseAll()

	game := handlers.NewGameHandler(logger, sessions, cookies, ws, scores)

	port := config.Port()
	server := &http.Server{
		Addr: port,
		Handler: middleware.Wrap(
			game.ServeMux(),
			middleware.Cors(),
			middleware.Auth(cookies),
			middleware.Logging(logger),
		),
	}

	logger.Info("server listening", slog.String("addr", port))

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("exit reason", "error", err)
		os.Exit(1)
	}
}
