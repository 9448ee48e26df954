package scoring

import (
	"context"

	"github.com/google/uuid"

	"github.com/mcoot/thirtyone-go/internal/dependencies/clock"
	"github.com/mcoot/thirtyone-go/internal/model"
	"github.com/mcoot/thirtyone-go/internal/storage"
)

// Service computes end-of-game results: immutable score records plus the
// rating adjustments they imply
type Service struct {
	storage storage.Storage
	clock   clock.Clock
}

// New creates a new ScoringService
func New(storage storage.Storage, clock clock.Clock) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
	}
}

// EndGame produces the EndResult for a game that has just finished with the
// given loser. Winners are every other participant still in the turn order;
// each receives an even share of 1.0 and the loser loses exactly 1.0.
// Nothing is persisted here; the returned records ride in the move outcome's
// atomic commit.
func (s *Service) EndGame(ctx context.Context, game *model.Game, loser model.PlayerName) (*model.EndResult, error) {
	winners := make([]model.PlayerName, 0, len(game.TurnOrder))
	for _, name := range game.TurnOrder {
		if name != loser {
			winners = append(winners, name)
		}
	}

	// A 2-player quit leaves a single winner; the share degenerates to 1.0
	share := 1.0 / float64(len(winners))
	now := s.clock.Now()

	result := &model.EndResult{
		Loser:   loser,
		Winners: winners,
		Scores:  make([]*model.Score, 0, len(winners)+1),
		Players: make([]*model.Player, 0, len(winners)+1),
	}

	for _, name := range winners {
		player, err := s.storage.GetPlayer(ctx, name)
		if err != nil {
			return nil, err
		}
		player.Rating += share

		result.Players = append(result.Players, player)
		result.Scores = append(result.Scores, &model.Score{
			ID:        uuid.NewString(),
			GameID:    game.ID,
			Player:    name,
			Points:    share,
			Won:       true,
			AwardedAt: now,
		})
	}

	loserPlayer, err := s.storage.GetPlayer(ctx, loser)
	if err != nil {
		return nil, err
	}
	loserPlayer.Rating -= 1.0

	result.Players = append(result.Players, loserPlayer)
	result.Scores = append(result.Scores, &model.Score{
		ID:        uuid.NewString(),
		GameID:    game.ID,
		Player:    loser,
		Points:    -1.0,
		Won:       false,
		AwardedAt: now,
	})

	return result, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	EndGame(ctx context.Context, game *model.Game, loser model.PlayerName) (*model.EndResult, error)
}

var _ ServiceInterface = (*Service)(nil)
