package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/thirtyone-go/internal/dependencies/clock"
	"github.com/mcoot/thirtyone-go/internal/dependencies/random"
	"github.com/mcoot/thirtyone-go/internal/services/auth"
	"github.com/mcoot/thirtyone-go/internal/services/game"
	"github.com/mcoot/thirtyone-go/internal/services/player"
	"github.com/mcoot/thirtyone-go/internal/services/reminder"
	"github.com/mcoot/thirtyone-go/internal/services/scoring"
	"github.com/mcoot/thirtyone-go/internal/storage"
	"github.com/mcoot/thirtyone-go/internal/storage/memory"
	redisstorage "github.com/mcoot/thirtyone-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	ScoringService  *scoring.Service
	PlayerService   *player.Service
	GameController  *game.Controller
	AuthService     *auth.Service
	ReminderService *reminder.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// ReminderConfig holds configuration for the turn reminder sweeper (optional)
	// If zero value, defaults to reminder.DefaultConfig()
	ReminderConfig reminder.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default configs if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}
	reminderCfg := cfg.ReminderConfig
	if reminderCfg.IdleThreshold == 0 {
		reminderCfg = reminder.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, authCfg, reminderCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	authCfg auth.Config,
	reminderCfg reminder.Config,
	logger *slog.Logger,
) *App {
	// Create services
	scoringService := scoring.New(store, clk)
	playerService := player.New(store, clk, logger)
	gameController := game.NewController(store, scoringService, clk, rnd, logger)
	authService := auth.New(store, playerService, clk, authCfg)
	notifier := reminder.NewLogNotifier(logger)
	reminderService := reminder.New(store, notifier, clk, logger, reminderCfg)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		ScoringService:  scoringService,
		PlayerService:   playerService,
		GameController:  gameController,
		AuthService:     authService,
		ReminderService: reminderService,
	}
}
