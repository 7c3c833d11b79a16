package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/transport/console"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	engine, err := newEngine(logger, conf)
	if err != nil {
		return err
	}

	sessionRepo, closeRepo, err := newSessionRepository(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	gameManager := usecase.NewGameManager(logger, engine, sessionRepo)

	var consoleOpts []console.Option
	if conf.NoColor {
		consoleOpts = append(consoleOpts, console.WithoutColor())
	}

	server := console.New(logger, gameManager, os.Stdin, os.Stdout, consoleOpts...)
	if err = server.Run(ctx, conf.SessionID); err != nil {
		return fmt.Errorf("console error: %w", err)
	}

	log.Info("Console closed, shutting down")

	return nil
}

func newEngine(logger *slog.Logger, conf *config.Config) (*tictactoe.Engine, error) {
	level, err := conf.GetDifficulty()
	if err != nil {
		return nil, err
	}

	opts := []tictactoe.Option{
		tictactoe.WithLogger(logger),
		tictactoe.WithDifficulty(level),
	}

	// zero keeps the engine's own random seed
	if conf.Seed != 0 {
		opts = append(opts, tictactoe.WithSeed(conf.Seed))
	}

	return tictactoe.NewEngine(opts...), nil
}

// newSessionRepository picks redis when it is enabled and process memory otherwise.
func newSessionRepository(
	ctx context.Context,
	logger *slog.Logger,
	conf *config.Config,
) (repository.SessionRepository, func(), error) {
	log := logger.With("component", "app")

	if !conf.Redis.Enabled {
		if conf.SessionID != "" {
			log.Warn("Redis disabled, session cannot be resumed across runs", "sessionID", conf.SessionID)
		}

		log.Info("Redis disabled, sessions are kept in memory")
		return repository.NewMemorySessionRepository(), func() {}, nil
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr(), conf.Redis.Password, conf.Redis.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeFn := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewSessionRepository(redisStorage.Connection, conf.Redis.SessionTTL), closeFn, nil
}
