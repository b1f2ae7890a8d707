package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-sessions/internal/config"
	"github.com/rocketscienceinc/tictactoe-sessions/internal/repository"
	"github.com/rocketscienceinc/tictactoe-sessions/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-sessions/internal/usecase"
)

var (
	ErrAddrNotFound      = errors.New("redis address string is empty")
	ErrDSNNotFound       = errors.New("postgres dsn is empty")
	ErrUnknownStorage    = errors.New("unknown storage driver")
	ErrUnknownNavigation = errors.New("unknown navigation policy")
)

type store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// App - a loaded session manager bound to its storage.
type App struct {
	Manager *usecase.SessionManager

	logger *slog.Logger
	store  store
}

// New - connects the configured storage and loads the session set.
func New(ctx context.Context, logger *slog.Logger, conf *config.Config) (*App, error) {
	log := logger.With("component", "app")

	if conf.Game.Navigation != usecase.NavigationFreeze && conf.Game.Navigation != usecase.NavigationFree {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNavigation, conf.Game.Navigation)
	}

	kvStore, err := openStorage(ctx, &conf.Storage)
	if err != nil {
		return nil, err
	}

	log.Debug("storage opened", "driver", conf.Storage.Driver)

	sessionRepo := repository.NewSessionRepository(kvStore, conf.Storage.Key)
	manager := usecase.NewSessionManager(logger, sessionRepo, usecase.WithNavigationPolicy(conf.Game.Navigation))

	if err = manager.Init(ctx); err != nil {
		if closeErr := kvStore.Close(); closeErr != nil {
			log.Error("could not close storage", "error", closeErr)
		}

		return nil, fmt.Errorf("could not init sessions: %w", err)
	}

	return &App{
		Manager: manager,
		logger:  log,
		store:   kvStore,
	}, nil
}

func (that *App) Close() error {
	if err := that.store.Close(); err != nil {
		return fmt.Errorf("could not close storage: %w", err)
	}

	return nil
}

func openStorage(ctx context.Context, conf *config.Storage) (store, error) {
	switch conf.Driver {
	case config.StorageFile:
		fileStorage, err := storage.NewFileStorage(conf.Dir)
		if err != nil {
			return nil, fmt.Errorf("could not open file storage: %w", err)
		}

		return fileStorage, nil
	case config.StorageMemory:
		return storage.NewMemoryStorage(), nil
	case config.StorageRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return redisStorage, nil
	case config.StoragePostgres:
		if conf.Postgres.DSN == "" {
			return nil, ErrDSNNotFound
		}

		postgresStorage, err := storage.NewPostgresStorage(conf.Postgres.DSN)
		if err != nil {
			return nil, fmt.Errorf("could not connect to postgres storage: %w", err)
		}

		if err = postgresStorage.Init(ctx); err != nil {
			_ = postgresStorage.Close()
			return nil, fmt.Errorf("could not init postgres storage: %w", err)
		}

		return postgresStorage, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStorage, conf.Driver)
	}
}
