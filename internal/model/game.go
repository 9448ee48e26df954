package model

import "time"

// GameID uniquely identifies a game
type GameID string

// Game represents a single match of the counting game.
// Players take turns raising CurrentValue; whoever pushes it to or past
// TargetValue loses.
type Game struct {
	ID GameID

	CurrentValue int
	TargetValue  int
	MaxIncrement int

	// TurnOrder rotates head-to-tail after every non-terminal move.
	// The head is the player to move next.
	TurnOrder []PlayerName

	IsOver bool
	Loser  PlayerName // set when the game ends

	// Version is an optimistic concurrency stamp, incremented by every
	// accepted move. Storage commits fail on a stale version.
	Version int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NextPlayer returns the player whose turn it is, or "" for a finished game
func (g *Game) NextPlayer() PlayerName {
	if g.IsOver || len(g.TurnOrder) == 0 {
		return ""
	}
	return g.TurnOrder[0]
}

// HasPlayer returns true if name is a current participant
func (g *Game) HasPlayer(name PlayerName) bool {
	for _, p := range g.TurnOrder {
		if p == name {
			return true
		}
	}
	return false
}

// RotateTurn moves the head of the turn order to the tail
func (g *Game) RotateTurn() {
	if len(g.TurnOrder) < 2 {
		return
	}
	head := g.TurnOrder[0]
	copy(g.TurnOrder, g.TurnOrder[1:])
	g.TurnOrder[len(g.TurnOrder)-1] = head
}

// RemovePlayer drops name from the turn order, preserving relative order.
// Used only for the remove-loser step at game end.
func (g *Game) RemovePlayer(name PlayerName) {
	for i, p := range g.TurnOrder {
		if p == name {
			g.TurnOrder = append(g.TurnOrder[:i], g.TurnOrder[i+1:]...)
			return
		}
	}
}
