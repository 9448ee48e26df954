package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/thirtyone-go/internal/model"
	"github.com/mcoot/thirtyone-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Entities are stored as JSON values; match histories and scores live in
// append-only lists keyed by game ID.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	key := playerKey(player.Name)

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	if exists == 0 {
		pipe.RPush(ctx, playerOrderKey(), string(player.Name))
	}
	if player.Email != "" {
		pipe.Set(ctx, emailIndexKey(player.Email), string(player.Name), 0)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, name model.PlayerName) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) GetPlayerNameByEmail(ctx context.Context, email string) (model.PlayerName, error) {
	name, err := s.client.Get(ctx, emailIndexKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrPlayerNotFound
		}
		return "", err
	}
	return model.PlayerName(name), nil
}

func (s *Storage) ListPlayersByRating(ctx context.Context) ([]*model.Player, error) {
	names, err := s.client.LRange(ctx, playerOrderKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	if len(names) == 0 {
		return []*model.Player{}, nil
	}

	keys := make([]string, len(names))
	for i, name := range names {
		keys[i] = playerKey(model.PlayerName(name))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var player model.Player
		if err := json.Unmarshal([]byte(val.(string)), &player); err != nil {
			continue // Skip invalid data
		}
		players = append(players, &player)
	}

	// Stable sort keeps registration order among equal ratings
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Rating > players[j].Rating
	})

	return players, nil
}

// Credentials operations

func (s *Storage) SaveCredentials(ctx context.Context, creds *model.Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, credentialsKey(creds.PlayerName), data, 0).Err()
}

func (s *Storage) GetCredentials(ctx context.Context, name model.PlayerName) (*model.Credentials, error) {
	data, err := s.client.Get(ctx, credentialsKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var creds model.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	// Save + index updates in one pipeline
	pipe := s.client.Pipeline()
	pipe.Set(ctx, gameKey(game.ID), data, 0)
	for _, name := range game.TurnOrder {
		pipe.SAdd(ctx, gamesForPlayerIndexKey(name), string(game.ID))
	}
	if !game.IsOver {
		pipe.SAdd(ctx, openGamesIndexKey(), string(game.ID))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) GamesForPlayer(ctx context.Context, name model.PlayerName) ([]*model.Game, error) {
	ids, err := s.client.SMembers(ctx, gamesForPlayerIndexKey(name)).Result()
	if err != nil {
		return nil, err
	}
	return s.fetchGames(ctx, ids)
}

func (s *Storage) ListOpenGames(ctx context.Context) ([]*model.Game, error) {
	ids, err := s.client.SMembers(ctx, openGamesIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	return s.fetchGames(ctx, ids)
}

// fetchGames loads the given game IDs with a single MGET, ordered by creation
func (s *Storage) fetchGames(ctx context.Context, ids []string) ([]*model.Game, error) {
	if len(ids) == 0 {
		return []*model.Game{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = gameKey(model.GameID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	games := make([]*model.Game, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var game model.Game
		if err := json.Unmarshal([]byte(val.(string)), &game); err != nil {
			continue // Skip invalid data
		}
		games = append(games, &game)
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].CreatedAt.Before(games[j].CreatedAt)
	})

	return games, nil
}

// Match history operations

func (s *Storage) GetMovesForGame(ctx context.Context, id model.GameID) ([]*model.MoveRecord, error) {
	values, err := s.client.LRange(ctx, movesKey(id), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	moves := make([]*model.MoveRecord, 0, len(values))
	for _, val := range values {
		var move model.MoveRecord
		if err := json.Unmarshal([]byte(val), &move); err != nil {
			continue
		}
		moves = append(moves, &move)
	}
	return moves, nil
}

// Score operations

func (s *Storage) GetScoresForGame(ctx context.Context, id model.GameID) ([]*model.Score, error) {
	values, err := s.client.LRange(ctx, scoresKey(id), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	scores := make([]*model.Score, 0, len(values))
	for _, val := range values {
		var score model.Score
		if err := json.Unmarshal([]byte(val), &score); err != nil {
			continue
		}
		scores = append(scores, &score)
	}
	return scores, nil
}

// CommitMoveResult persists a move outcome in a WATCH/MULTI transaction.
// A concurrent write to the game key aborts the transaction and surfaces as
// model.ErrStorageConflict.
func (s *Storage) CommitMoveResult(ctx context.Context, outcome *model.MoveOutcome) error {
	key := gameKey(outcome.Game.ID)

	gameData, err := json.Marshal(outcome.Game)
	if err != nil {
		return err
	}
	moveData, err := json.Marshal(outcome.Move)
	if err != nil {
		return err
	}

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return model.ErrGameNotFound
			}
			return err
		}

		var stored model.Game
		if err := json.Unmarshal(current, &stored); err != nil {
			return err
		}

		// The outcome was computed against version-1; anything newer means
		// a concurrent move won the race
		if stored.Version != outcome.Game.Version-1 {
			return model.ErrStorageConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, gameData, 0)
			pipe.RPush(ctx, movesKey(outcome.Game.ID), moveData)

			if outcome.Ended != nil {
				for _, score := range outcome.Ended.Scores {
					scoreData, err := json.Marshal(score)
					if err != nil {
						return err
					}
					pipe.RPush(ctx, scoresKey(outcome.Game.ID), scoreData)
				}
				for _, player := range outcome.Ended.Players {
					playerData, err := json.Marshal(player)
					if err != nil {
						return err
					}
					pipe.Set(ctx, playerKey(player.Name), playerData, 0)
				}
			}

			if outcome.Game.IsOver {
				pipe.SRem(ctx, openGamesIndexKey(), string(outcome.Game.ID))
			}
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return model.ErrStorageConflict
	}
	return err
}
