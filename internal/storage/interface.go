package storage

import (
	"context"

	"github.com/mcoot/thirtyone-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, name model.PlayerName) (*model.Player, error)
	GetPlayerNameByEmail(ctx context.Context, email string) (model.PlayerName, error)
	// ListPlayersByRating returns all players ordered by descending rating.
	// Ties keep registration order.
	ListPlayersByRating(ctx context.Context) ([]*model.Player, error)

	// Credentials operations
	SaveCredentials(ctx context.Context, creds *model.Credentials) error
	GetCredentials(ctx context.Context, name model.PlayerName) (*model.Credentials, error)

	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	GamesForPlayer(ctx context.Context, name model.PlayerName) ([]*model.Game, error)
	// ListOpenGames returns all games that have not finished
	ListOpenGames(ctx context.Context) ([]*model.Game, error)

	// Match history operations
	GetMovesForGame(ctx context.Context, id model.GameID) ([]*model.MoveRecord, error)

	// Score operations
	GetScoresForGame(ctx context.Context, id model.GameID) ([]*model.Score, error)

	// CommitMoveResult persists everything produced by a single accepted move
	// as one atomic unit: the game, its new history entry and, for a
	// game-ending move, the score records and adjusted player ratings.
	// If the game was modified since the outcome was computed it commits
	// nothing and returns model.ErrStorageConflict; the operation is safely
	// re-computable from fresh state.
	CommitMoveResult(ctx context.Context, outcome *model.MoveOutcome) error
}
