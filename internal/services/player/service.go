package player

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mcoot/thirtyone-go/internal/dependencies/clock"
	"github.com/mcoot/thirtyone-go/internal/model"
	"github.com/mcoot/thirtyone-go/internal/storage"
)

// Service is the player directory: registration, lookup and rankings
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new player Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Create registers a new player with a unique name and, optionally, a unique
// contact email. The rating starts at zero and only match completion may
// change it.
func (s *Service) Create(ctx context.Context, name model.PlayerName, email string) (*model.Player, error) {
	if _, err := s.storage.GetPlayer(ctx, name); err == nil {
		return nil, model.ErrPlayerExists
	} else if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	if email != "" {
		if _, err := s.storage.GetPlayerNameByEmail(ctx, email); err == nil {
			return nil, model.ErrEmailExists
		} else if !errors.Is(err, model.ErrPlayerNotFound) {
			return nil, err
		}
	}

	player := &model.Player{
		Name:      name,
		Email:     email,
		Rating:    0,
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info("player registered",
		slog.String("player", string(name)),
	)

	return player, nil
}

// Get looks a player up by unique name
func (s *Service) Get(ctx context.Context, name model.PlayerName) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, name)
}

// Rankings lists all players by descending rating.
// Ties keep registration order; that tiebreak is deliberate and tested.
func (s *Service) Rankings(ctx context.Context) ([]*model.Player, error) {
	return s.storage.ListPlayersByRating(ctx)
}

// Interface for dependency injection
type ServiceInterface interface {
	Create(ctx context.Context, name model.PlayerName, email string) (*model.Player, error)
	Get(ctx context.Context, name model.PlayerName) (*model.Player, error)
	Rankings(ctx context.Context) ([]*model.Player, error)
}

var _ ServiceInterface = (*Service)(nil)
