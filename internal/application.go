package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-slack/internal/config"
	"github.com/rocketscienceinc/tictactoe-slack/internal/random"
	"github.com/rocketscienceinc/tictactoe-slack/internal/repository"
	"github.com/rocketscienceinc/tictactoe-slack/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-slack/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-slack/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	gameRepo, closeStorage, err := openGameRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeStorage(); err != nil {
			log.Error("could not close storage", "driver", conf.Storage.Driver, "error", err)
		}
	}()

	gameUseCase := usecase.NewGameManager(logger, gameRepo, random.New())
	commands := rest.NewCommandHandler(logger, conf.Slack.CommandToken, gameUseCase)
	server := rest.New(logger, conf.HTTPPort, rest.NewRouter(logger, commands), conf.TLS.CertFile, conf.TLS.KeyFile)

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "driver", conf.Storage.Driver)
	if err = server.Start(ctx); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")
	return nil
}

// openGameRepository connects the configured storage driver and returns the repository with its closer.
func openGameRepository(ctx context.Context, conf *config.Config) (repository.GameRepository, func() error, error) {
	switch conf.Storage.Driver {
	case config.DriverSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return repository.NewSQLiteGameRepository(sqliteStorage.Connection), sqliteStorage.Close, nil

	case config.DriverMemory:
		return repository.NewMemoryGameRepository(), func() error { return nil }, nil

	default:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString, conf.Redis.Password, conf.Redis.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewGameRepository(redisStorage), redisStorage.Close, nil
	}
}
