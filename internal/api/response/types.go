package response

import (
	"time"

	"github.com/mcoot/thirtyone-go/internal/gameref"
	"github.com/mcoot/thirtyone-go/internal/model"
	"github.com/mcoot/thirtyone-go/internal/services/auth"
)

// Player represents a player in API responses
type Player struct {
	Name   string  `json:"name"`
	Email  string  `json:"email,omitempty"`
	Rating float64 `json:"rating"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		Name:   string(p.Name),
		Email:  p.Email,
		Rating: p.Rating,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// Game represents a game in API responses. Games are addressed by their
// opaque reference, never by raw ID.
type Game struct {
	Ref          string    `json:"ref"`
	CurrentValue int       `json:"current_value"`
	TargetValue  int       `json:"target_value"`
	MaxIncrement int       `json:"max_increment"`
	GameOver     bool      `json:"game_over"`
	TurnOrder    []string  `json:"turn_order"`
	NextPlayer   string    `json:"next_player,omitempty"`
	Loser        string    `json:"loser,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// GameFromModel converts model.Game
func GameFromModel(g *model.Game) Game {
	turnOrder := make([]string, len(g.TurnOrder))
	for i, p := range g.TurnOrder {
		turnOrder[i] = string(p)
	}

	return Game{
		Ref:          gameref.Encode(g.ID),
		CurrentValue: g.CurrentValue,
		TargetValue:  g.TargetValue,
		MaxIncrement: g.MaxIncrement,
		GameOver:     g.IsOver,
		TurnOrder:    turnOrder,
		NextPlayer:   string(g.NextPlayer()),
		Loser:        string(g.Loser),
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

// GameList wraps a sequence of games
type GameList struct {
	Games []Game `json:"games"`
}

// GameListFromModel converts a slice of model.Game
func GameListFromModel(games []*model.Game) GameList {
	out := GameList{Games: make([]Game, len(games))}
	for i, g := range games {
		out.Games[i] = GameFromModel(g)
	}
	return out
}

// Move represents one match history entry
type Move struct {
	Player   string    `json:"player"`
	Action   string    `json:"action"`
	Value    int       `json:"value,omitempty"`
	PlayedAt time.Time `json:"played_at"`
}

// History wraps a game's ordered match history
type History struct {
	Moves []Move `json:"moves"`
}

// HistoryFromModel converts a slice of model.MoveRecord
func HistoryFromModel(moves []*model.MoveRecord) History {
	out := History{Moves: make([]Move, len(moves))}
	for i, m := range moves {
		out.Moves[i] = Move{
			Player:   string(m.Player),
			Action:   string(m.Kind),
			Value:    m.Value,
			PlayedAt: m.PlayedAt,
		}
	}
	return out
}

// Score represents one player's result for a finished game
type Score struct {
	Player string  `json:"player"`
	Points float64 `json:"points"`
	Won    bool    `json:"won"`
}

// EndResult represents the outcome of a finished game
type EndResult struct {
	Loser   string   `json:"loser"`
	Winners []string `json:"winners"`
	Scores  []Score  `json:"scores"`
}

// EndResultFromModel converts model.EndResult
func EndResultFromModel(e *model.EndResult) *EndResult {
	winners := make([]string, len(e.Winners))
	for i, w := range e.Winners {
		winners[i] = string(w)
	}

	scores := make([]Score, len(e.Scores))
	for i, s := range e.Scores {
		scores[i] = Score{
			Player: string(s.Player),
			Points: s.Points,
			Won:    s.Won,
		}
	}

	return &EndResult{
		Loser:   string(e.Loser),
		Winners: winners,
		Scores:  scores,
	}
}

// MoveResult is the response to a move or quit submission. Rejected moves
// still carry the current game state.
type MoveResult struct {
	Accepted  bool       `json:"accepted"`
	Message   string     `json:"message"`
	Rejection string     `json:"rejection,omitempty"`
	Game      Game       `json:"game"`
	Result    *EndResult `json:"result,omitempty"`
}

// MoveResultFromOutcome converts model.MoveOutcome
func MoveResultFromOutcome(o *model.MoveOutcome) MoveResult {
	result := MoveResult{
		Accepted:  o.Accepted(),
		Message:   o.Message,
		Rejection: string(o.Rejection),
		Game:      GameFromModel(o.Game),
	}
	if o.Ended != nil {
		result.Result = EndResultFromModel(o.Ended)
	}
	return result
}

// Ranking is one entry in the rankings listing
type Ranking struct {
	Rank   int     `json:"rank"`
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
}

// Rankings wraps the full rankings listing
type Rankings struct {
	Players []Ranking `json:"players"`
}

// RankingsFromModel converts an ordered slice of model.Player
func RankingsFromModel(players []*model.Player) Rankings {
	out := Rankings{Players: make([]Ranking, len(players))}
	for i, p := range players {
		out.Players[i] = Ranking{
			Rank:   i + 1,
			Name:   string(p.Name),
			Rating: p.Rating,
		}
	}
	return out
}
