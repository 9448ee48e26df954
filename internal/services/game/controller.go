package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mcoot/thirtyone-go/internal/dependencies/clock"
	"github.com/mcoot/thirtyone-go/internal/dependencies/random"
	"github.com/mcoot/thirtyone-go/internal/model"
	"github.com/mcoot/thirtyone-go/internal/services/scoring"
	"github.com/mcoot/thirtyone-go/internal/storage"
)

const (
	gameIDLength   = 12
	gameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// A conflicted commit is recomputed from fresh state; bounded so a hot
	// game can't spin forever
	maxCommitAttempts = 3
)

// Controller manages the game state machine: creation, moves, quitting
type Controller struct {
	storage        storage.Storage
	scoringService *scoring.Service
	clock          clock.Clock
	random         random.Random
	logger         *slog.Logger
}

// NewController creates a new GameController
func NewController(
	storage storage.Storage,
	scoringService *scoring.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:        storage,
		scoringService: scoringService,
		clock:          clock,
		random:         random,
		logger:         logger,
	}
}

// CreateGame starts a new game between the creator and the other named
// players. The initial turn order is a uniformly random permutation of the
// full player set, so creating a game gives no turn advantage.
func (c *Controller) CreateGame(
	ctx context.Context,
	creator model.PlayerName,
	others []model.PlayerName,
	startingValue, targetValue, maxIncrement int,
) (*model.Game, error) {
	if len(others) == 0 {
		return nil, model.ErrNotEnoughPlayers
	}
	if startingValue < 0 {
		return nil, model.ErrInvalidStartingValue
	}
	if targetValue <= startingValue {
		return nil, model.ErrInvalidTarget
	}
	if maxIncrement < 2 {
		return nil, model.ErrInvalidIncrement
	}

	players := append([]model.PlayerName{creator}, others...)
	seen := make(map[model.PlayerName]bool, len(players))
	for _, name := range players {
		if seen[name] {
			return nil, model.ErrDuplicatePlayer
		}
		seen[name] = true

		if _, err := c.storage.GetPlayer(ctx, name); err != nil {
			return nil, err
		}
	}

	c.random.Shuffle(len(players), func(i, j int) {
		players[i], players[j] = players[j], players[i]
	})

	now := c.clock.Now()
	game := &model.Game{
		ID:           model.GameID(c.random.String(gameIDLength, gameIDAlphabet)),
		CurrentValue: startingValue,
		TargetValue:  targetValue,
		MaxIncrement: maxIncrement,
		TurnOrder:    players,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.Int("player_count", len(players)),
		slog.Int("target_value", targetValue),
	)

	return game, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// GetHistory returns a game's match history in move order
func (c *Controller) GetHistory(ctx context.Context, gameID model.GameID) ([]*model.MoveRecord, error) {
	if _, err := c.storage.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	return c.storage.GetMovesForGame(ctx, gameID)
}

// GetScores returns the score records of a finished game
func (c *Controller) GetScores(ctx context.Context, gameID model.GameID) ([]*model.Score, error) {
	if _, err := c.storage.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	return c.storage.GetScoresForGame(ctx, gameID)
}

// GamesForPlayer lists the games a player participates in
func (c *Controller) GamesForPlayer(ctx context.Context, name model.PlayerName) ([]*model.Game, error) {
	return c.storage.GamesForPlayer(ctx, name)
}

// ApplyMove submits actor's move. Turn and bounds violations come back as a
// rejection inside the outcome, not as an error, since the caller still needs
// the current game state to render.
func (c *Controller) ApplyMove(ctx context.Context, gameID model.GameID, actor model.PlayerName, value int) (*model.MoveOutcome, error) {
	for attempt := 0; attempt < maxCommitAttempts; attempt++ {
		game, err := c.storage.GetGame(ctx, gameID)
		if err != nil {
			return nil, err
		}

		if rejected := c.rejectMove(game, actor, value); rejected != nil {
			return rejected, nil
		}

		now := c.clock.Now()
		game.CurrentValue += value
		game.Version++
		game.UpdatedAt = now

		outcome := &model.MoveOutcome{
			Game: game,
			Move: &model.MoveRecord{
				ID:       uuid.NewString(),
				GameID:   game.ID,
				Player:   actor,
				Kind:     model.MoveIncrement,
				Value:    value,
				PlayedAt: now,
			},
		}

		if game.CurrentValue >= game.TargetValue {
			// The mover who crosses the threshold loses
			if err := c.finishGame(ctx, game, actor, outcome); err != nil {
				return nil, err
			}
			outcome.Message = fmt.Sprintf("Game over! %s is the loser.", actor)
		} else {
			game.RotateTurn()
			outcome.Message = fmt.Sprintf("Move successful! It is %s's turn.", game.NextPlayer())
		}

		if err := c.commit(ctx, outcome); err != nil {
			if errors.Is(err, model.ErrStorageConflict) {
				continue
			}
			return nil, err
		}
		return outcome, nil
	}

	return nil, model.ErrStorageConflict
}

// rejectMove returns a rejection outcome if the move must not be applied.
// Rejections never mutate state.
func (c *Controller) rejectMove(game *model.Game, actor model.PlayerName, value int) *model.MoveOutcome {
	switch {
	case game.IsOver:
		return &model.MoveOutcome{
			Game:      game,
			Rejection: model.RejectionGameFinished,
			Message:   "Game has already finished!",
		}
	case !game.HasPlayer(actor):
		return &model.MoveOutcome{
			Game:      game,
			Rejection: model.RejectionNotParticipant,
			Message:   fmt.Sprintf("%s is not part of this game", actor),
		}
	case game.TurnOrder[0] != actor:
		return &model.MoveOutcome{
			Game:      game,
			Rejection: model.RejectionNotYourTurn,
			Message:   fmt.Sprintf("It is not %s's turn yet", actor),
		}
	case value < 1 || value > game.MaxIncrement:
		return &model.MoveOutcome{
			Game:      game,
			Rejection: model.RejectionInvalidValue,
			Message:   fmt.Sprintf("Move value must be between 1 and %d", game.MaxIncrement),
		}
	}
	return nil
}

// Quit forfeits the game for actor. The quitter becomes the loser regardless
// of whose turn it is or the current value.
func (c *Controller) Quit(ctx context.Context, gameID model.GameID, actor model.PlayerName) (*model.MoveOutcome, error) {
	for attempt := 0; attempt < maxCommitAttempts; attempt++ {
		game, err := c.storage.GetGame(ctx, gameID)
		if err != nil {
			return nil, err
		}

		if game.IsOver {
			return nil, model.ErrGameFinished
		}
		if !game.HasPlayer(actor) {
			return nil, model.ErrNotParticipant
		}

		now := c.clock.Now()
		game.Version++
		game.UpdatedAt = now

		outcome := &model.MoveOutcome{
			Game: game,
			Move: &model.MoveRecord{
				ID:       uuid.NewString(),
				GameID:   game.ID,
				Player:   actor,
				Kind:     model.MoveQuit,
				PlayedAt: now,
			},
			Message: fmt.Sprintf("%s has quit. Game over!", actor),
		}

		if err := c.finishGame(ctx, game, actor, outcome); err != nil {
			return nil, err
		}

		if err := c.commit(ctx, outcome); err != nil {
			if errors.Is(err, model.ErrStorageConflict) {
				continue
			}
			return nil, err
		}
		return outcome, nil
	}

	return nil, model.ErrStorageConflict
}

// finishGame transitions the game to its terminal state and runs scoring.
// Scoring sees the full turn order; removing the loser is the last step.
func (c *Controller) finishGame(ctx context.Context, game *model.Game, loser model.PlayerName, outcome *model.MoveOutcome) error {
	game.IsOver = true
	game.Loser = loser

	ended, err := c.scoringService.EndGame(ctx, game, loser)
	if err != nil {
		return err
	}
	game.RemovePlayer(loser)

	outcome.Ended = ended
	return nil
}

// commit writes the outcome atomically and logs the result
func (c *Controller) commit(ctx context.Context, outcome *model.MoveOutcome) error {
	if err := c.storage.CommitMoveResult(ctx, outcome); err != nil {
		if errors.Is(err, model.ErrStorageConflict) {
			c.logger.Warn("move commit conflicted, retrying",
				slog.String("game_id", string(outcome.Game.ID)),
				slog.String("player", string(outcome.Move.Player)),
			)
		}
		return err
	}

	c.logger.Info("move committed",
		slog.String("game_id", string(outcome.Game.ID)),
		slog.String("player", string(outcome.Move.Player)),
		slog.String("kind", string(outcome.Move.Kind)),
		slog.Int("value", outcome.Move.Value),
		slog.Bool("game_over", outcome.Game.IsOver),
	)
	return nil
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context, creator model.PlayerName, others []model.PlayerName, startingValue, targetValue, maxIncrement int) (*model.Game, error)
	GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error)
	GetHistory(ctx context.Context, gameID model.GameID) ([]*model.MoveRecord, error)
	GetScores(ctx context.Context, gameID model.GameID) ([]*model.Score, error)
	GamesForPlayer(ctx context.Context, name model.PlayerName) ([]*model.Game, error)
	ApplyMove(ctx context.Context, gameID model.GameID, actor model.PlayerName, value int) (*model.MoveOutcome, error)
	Quit(ctx context.Context, gameID model.GameID, actor model.PlayerName) (*model.MoveOutcome, error)
}

var _ ControllerInterface = (*Controller)(nil)
