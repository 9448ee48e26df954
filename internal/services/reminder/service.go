package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/mcoot/thirtyone-go/internal/dependencies/clock"
	"github.com/mcoot/thirtyone-go/internal/model"
	"github.com/mcoot/thirtyone-go/internal/storage"
)

// Config holds reminder sweep settings
type Config struct {
	// IdleThreshold is how long a game may sit untouched before the player
	// to move gets a reminder
	IdleThreshold time.Duration
	// SweepInterval is how often the sweep runs
	SweepInterval time.Duration
}

// DefaultConfig returns default reminder configuration
func DefaultConfig() Config {
	return Config{
		IdleThreshold: time.Hour,
		SweepInterval: time.Hour,
	}
}

// Service periodically finds idle games and reminds the player whose turn is
// pending. Only a game's last-update time and the head of its turn order are
// consumed; the core is never mutated.
type Service struct {
	storage  storage.Storage
	notifier Notifier
	clock    clock.Clock
	logger   *slog.Logger
	cfg      Config
}

// New creates a new reminder Service
func New(storage storage.Storage, notifier Notifier, clock clock.Clock, logger *slog.Logger, cfg Config) *Service {
	if cfg.IdleThreshold == 0 {
		cfg.IdleThreshold = DefaultConfig().IdleThreshold
	}
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = DefaultConfig().SweepInterval
	}
	return &Service{
		storage:  storage,
		notifier: notifier,
		clock:    clock,
		logger:   logger,
		cfg:      cfg,
	}
}

// Sweep finds open games idle past the threshold and notifies each pending
// player once, however many stale games they are holding up.
func (s *Service) Sweep(ctx context.Context) error {
	games, err := s.storage.ListOpenGames(ctx)
	if err != nil {
		return err
	}

	pending := make(map[model.PlayerName][]*model.Game)
	for _, game := range games {
		if s.clock.Since(game.UpdatedAt) < s.cfg.IdleThreshold {
			continue
		}
		next := game.NextPlayer()
		if next == "" {
			continue
		}
		pending[next] = append(pending[next], game)
	}

	for name, stale := range pending {
		player, err := s.storage.GetPlayer(ctx, name)
		if err != nil {
			s.logger.Warn("reminder skipped, player lookup failed",
				slog.String("player", string(name)),
				slog.String("error", err.Error()),
			)
			continue
		}
		if player.Email == "" {
			continue
		}

		if err := s.notifier.NotifyPendingTurn(ctx, player, stale); err != nil {
			s.logger.Warn("reminder delivery failed",
				slog.String("player", string(name)),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}

// Run sweeps on the configured interval until ctx is cancelled
func (s *Service) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				s.logger.Error("reminder sweep failed",
					slog.String("error", err.Error()),
				)
			}
		}
	}
}
