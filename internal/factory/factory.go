package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/matrixgame/internal/dependencies/clock"
	"github.com/mcoot/matrixgame/internal/services/auth"
	"github.com/mcoot/matrixgame/internal/services/game"
	"github.com/mcoot/matrixgame/internal/services/user"
	"github.com/mcoot/matrixgame/internal/storage"
	"github.com/mcoot/matrixgame/internal/storage/memory"
	redisstorage "github.com/mcoot/matrixgame/internal/storage/redis"
	"github.com/mcoot/matrixgame/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeSQLite = "sqlite"
)

// Session backend constants
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage  storage.Storage
	Sessions storage.SessionStore

	// External dependencies
	Clock clock.Clock

	// Services
	UserService    *user.Service
	AuthService    *auth.Service
	GameController *game.Controller

	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the relational backend ("memory" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// DatabasePath is the sqlite file (required if StorageType is "sqlite")
	DatabasePath string
	// SessionBackend selects the session store ("memory" or "redis")
	// If empty, defaults to "memory"
	SessionBackend string
	// RedisConfig holds Redis connection settings (required if SessionBackend is "redis")
	RedisConfig *redisstorage.Config
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// UserConfig holds configuration for the user service (optional)
	UserConfig user.Config
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := clock.New()
	var closers []io.Closer

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeSQLite:
		if cfg.DatabasePath == "" {
			return nil, errors.New("DatabasePath required when StorageType is sqlite")
		}
		sqliteStore, err := sqlite.New(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		store = sqliteStore
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory' or 'sqlite'", storageType)
	}
	closers = append(closers, store)

	// Create session store
	var sessions storage.SessionStore
	sessionBackend := cfg.SessionBackend
	if sessionBackend == "" {
		sessionBackend = SessionBackendMemory
	}

	switch sessionBackend {
	case SessionBackendMemory:
		if mem, ok := store.(*memory.Storage); ok {
			sessions = mem
		} else {
			sessions = memory.New()
		}
	case SessionBackendRedis:
		if cfg.RedisConfig == nil {
			closeAll(closers)
			return nil, errors.New("RedisConfig required when SessionBackend is redis")
		}
		redisSessions, err := redisstorage.New(*cfg.RedisConfig, clk)
		if err != nil {
			closeAll(closers)
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		sessions = redisSessions
		closers = append(closers, redisSessions)
	default:
		closeAll(closers)
		return nil, fmt.Errorf("invalid SessionBackend %q: must be 'memory' or 'redis'", sessionBackend)
	}

	app := newWithDependencies(store, sessions, clk, cfg.AuthConfig, cfg.UserConfig, logger)
	app.closers = closers
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	sessions storage.SessionStore,
	clk clock.Clock,
	authCfg auth.Config,
	userCfg user.Config,
	logger *slog.Logger,
) *App {
	// Create services
	userService := user.New(store, clk, userCfg, logger)
	authService := auth.New(userService, sessions, clk, authCfg, logger)
	gameController := game.NewController(store, clk, logger)

	return &App{
		Storage:        store,
		Sessions:       sessions,
		Clock:          clk,
		UserService:    userService,
		AuthService:    authService,
		GameController: gameController,
	}
}

// Close releases storage connections
func (a *App) Close() error {
	return closeAll(a.closers)
}

func closeAll(closers []io.Closer) error {
	var errs []error
	for _, c := range closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
