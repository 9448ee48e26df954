package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/thirtyone-go/internal/model"
	"github.com/mcoot/thirtyone-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players     map[model.PlayerName]*model.Player
	playerOrder []model.PlayerName // registration order, the ranking tiebreak
	emailIndex  map[string]model.PlayerName
	credentials map[model.PlayerName]*model.Credentials
	games       map[model.GameID]*model.Game
	moves       map[model.GameID][]*model.MoveRecord
	scores      map[model.GameID][]*model.Score
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:     make(map[model.PlayerName]*model.Player),
		emailIndex:  make(map[string]model.PlayerName),
		credentials: make(map[model.PlayerName]*model.Credentials),
		games:       make(map[model.GameID]*model.Game),
		moves:       make(map[model.GameID][]*model.MoveRecord),
		scores:      make(map[model.GameID][]*model.Score),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Entities are stored and returned as copies so callers can't mutate shared
// state outside a save or commit.

func cloneGame(g *model.Game) *model.Game {
	c := *g
	c.TurnOrder = append([]model.PlayerName(nil), g.TurnOrder...)
	return &c
}

func clonePlayer(p *model.Player) *model.Player {
	c := *p
	return &c
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.players[player.Name]; !exists {
		s.playerOrder = append(s.playerOrder, player.Name)
	}
	s.players[player.Name] = clonePlayer(player)
	if player.Email != "" {
		s.emailIndex[player.Email] = player.Name
	}
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, name model.PlayerName) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[name]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return clonePlayer(player), nil
}

func (s *Storage) GetPlayerNameByEmail(ctx context.Context, email string) (model.PlayerName, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	name, ok := s.emailIndex[email]
	if !ok {
		return "", model.ErrPlayerNotFound
	}
	return name, nil
}

func (s *Storage) ListPlayersByRating(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]*model.Player, 0, len(s.playerOrder))
	for _, name := range s.playerOrder {
		players = append(players, clonePlayer(s.players[name]))
	}

	// Stable sort keeps registration order among equal ratings
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Rating > players[j].Rating
	})

	return players, nil
}

// Credentials operations

func (s *Storage) SaveCredentials(ctx context.Context, creds *model.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *creds
	s.credentials[creds.PlayerName] = &c
	return nil
}

func (s *Storage) GetCredentials(ctx context.Context, name model.PlayerName) (*model.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	creds, ok := s.credentials[name]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	c := *creds
	return &c, nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = cloneGame(game)
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return cloneGame(game), nil
}

func (s *Storage) GamesForPlayer(ctx context.Context, name model.PlayerName) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var games []*model.Game
	for _, game := range s.games {
		participant := game.HasPlayer(name)
		if !participant && game.IsOver && game.Loser == name {
			// The loser is removed from the turn order at game end but the
			// match is still theirs
			participant = true
		}
		if participant {
			games = append(games, cloneGame(game))
		}
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].CreatedAt.Before(games[j].CreatedAt)
	})

	return games, nil
}

func (s *Storage) ListOpenGames(ctx context.Context) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var games []*model.Game
	for _, game := range s.games {
		if !game.IsOver {
			games = append(games, cloneGame(game))
		}
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].CreatedAt.Before(games[j].CreatedAt)
	})

	return games, nil
}

// Match history operations

func (s *Storage) GetMovesForGame(ctx context.Context, id model.GameID) ([]*model.MoveRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	moves := make([]*model.MoveRecord, 0, len(s.moves[id]))
	for _, move := range s.moves[id] {
		m := *move
		moves = append(moves, &m)
	}
	return moves, nil
}

// Score operations

func (s *Storage) GetScoresForGame(ctx context.Context, id model.GameID) ([]*model.Score, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scores := make([]*model.Score, 0, len(s.scores[id]))
	for _, score := range s.scores[id] {
		sc := *score
		scores = append(scores, &sc)
	}
	return scores, nil
}

// CommitMoveResult persists a move outcome atomically under the write lock
func (s *Storage) CommitMoveResult(ctx context.Context, outcome *model.MoveOutcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.games[outcome.Game.ID]
	if !ok {
		return model.ErrGameNotFound
	}

	// The outcome was computed against version-1; anything newer means a
	// concurrent move won the race
	if stored.Version != outcome.Game.Version-1 {
		return model.ErrStorageConflict
	}

	s.games[outcome.Game.ID] = cloneGame(outcome.Game)

	move := *outcome.Move
	s.moves[outcome.Game.ID] = append(s.moves[outcome.Game.ID], &move)

	if outcome.Ended != nil {
		for _, score := range outcome.Ended.Scores {
			sc := *score
			s.scores[outcome.Game.ID] = append(s.scores[outcome.Game.ID], &sc)
		}
		for _, player := range outcome.Ended.Players {
			s.players[player.Name] = clonePlayer(player)
		}
	}

	return nil
}
