package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Game:
		o.printGame(v)
	case GameList:
		o.printGameList(v)
	case History:
		o.printHistory(v)
	case MoveResult:
		o.printMoveResult(v)
	case Rankings:
		o.printRankings(v)
	case []Score:
		o.printScores(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	Name   string  `json:"name"`
	Email  string  `json:"email,omitempty"`
	Rating float64 `json:"rating"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// Game response type
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

// GameList response type
type GameList struct {
	Games []Game `json:"games"`
}

// Move response type
type Move struct {
	Player   string    `json:"player"`
	Action   string    `json:"action"`
	Value    int       `json:"value,omitempty"`
	PlayedAt time.Time `json:"played_at"`
}

// History response type
type History struct {
	Moves []Move `json:"moves"`
}

// Score response type
type Score struct {
	Player string  `json:"player"`
	Points float64 `json:"points"`
	Won    bool    `json:"won"`
}

// EndResult response type
type EndResult struct {
	Loser   string   `json:"loser"`
	Winners []string `json:"winners"`
	Scores  []Score  `json:"scores"`
}

// MoveResult response type
type MoveResult struct {
	Accepted  bool       `json:"accepted"`
	Message   string     `json:"message"`
	Rejection string     `json:"rejection,omitempty"`
	Game      Game       `json:"game"`
	Result    *EndResult `json:"result,omitempty"`
}

// Ranking response type
type Ranking struct {
	Rank   int     `json:"rank"`
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
}

// Rankings response type
type Rankings struct {
	Players []Ranking `json:"players"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s\n", p.Name)
	if p.Email != "" {
		fmt.Printf("Email: %s\n", p.Email)
	}
	fmt.Printf("Rating: %.2f\n", p.Rating)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Game: %s\n", g.Ref)
	fmt.Printf("Total: %d / %d (max increment %d)\n", g.CurrentValue, g.TargetValue, g.MaxIncrement)
	if g.GameOver {
		fmt.Println("State: finished")
		if g.Loser != "" {
			fmt.Printf("Loser: %s\n", g.Loser)
		}
	} else {
		fmt.Println("State: in progress")
		fmt.Printf("Next Player: %s\n", g.NextPlayer)
	}
	fmt.Printf("Turn Order: %s\n", strings.Join(g.TurnOrder, ", "))
}

func (o *Output) printGameList(l GameList) {
	fmt.Printf("Games (%d):\n", len(l.Games))
	for _, g := range l.Games {
		state := "in progress"
		if g.GameOver {
			state = "finished"
		}
		fmt.Printf("  - %s: %d / %d (%s)\n", g.Ref, g.CurrentValue, g.TargetValue, state)
	}
}

func (o *Output) printHistory(h History) {
	fmt.Printf("Moves (%d):\n", len(h.Moves))
	for i, m := range h.Moves {
		if m.Action == "quit" {
			fmt.Printf("  %d. %s quit\n", i+1, m.Player)
		} else {
			fmt.Printf("  %d. %s +%d\n", i+1, m.Player, m.Value)
		}
	}
}

func (o *Output) printMoveResult(r MoveResult) {
	fmt.Println(r.Message)
	if !r.Accepted {
		fmt.Printf("Rejected: %s\n", r.Rejection)
	}
	fmt.Printf("Total: %d / %d\n", r.Game.CurrentValue, r.Game.TargetValue)
	if r.Result != nil {
		fmt.Printf("Loser: %s\n", r.Result.Loser)
		fmt.Println("Scores:")
		for _, s := range r.Result.Scores {
			fmt.Printf("  %s: %+.2f\n", s.Player, s.Points)
		}
	}
}

func (o *Output) printRankings(r Rankings) {
	fmt.Println("Rankings:")
	for _, p := range r.Players {
		fmt.Printf("  %d. %s (%.2f)\n", p.Rank, p.Name, p.Rating)
	}
}

func (o *Output) printScores(scores []Score) {
	fmt.Println("Scores:")
	for _, s := range scores {
		fmt.Printf("  %s: %+.2f\n", s.Player, s.Points)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
