package model

import "time"

// MoveKind distinguishes the two record types in a match history
type MoveKind string

const (
	MoveIncrement MoveKind = "increment" // normal move raising the value
	MoveQuit      MoveKind = "quit"      // terminal forfeit
)

// MoveRecord is one entry in a game's append-only match history.
// Records are immutable once written.
type MoveRecord struct {
	ID       string
	GameID   GameID
	Player   PlayerName
	Kind     MoveKind
	Value    int // increment amount; 0 for quit
	PlayedAt time.Time
}

// Score is one player's immutable result for a finished game.
// Winners split 1.0 evenly; the loser scores exactly -1.
type Score struct {
	ID        string
	GameID    GameID
	Player    PlayerName
	Points    float64
	Won       bool
	AwardedAt time.Time
}

// RejectionReason identifies why a submitted move was not applied
type RejectionReason string

const (
	RejectionGameFinished   RejectionReason = "game_finished"
	RejectionNotParticipant RejectionReason = "not_participant"
	RejectionNotYourTurn    RejectionReason = "not_your_turn"
	RejectionInvalidValue   RejectionReason = "invalid_value"
)

// EndResult captures everything produced by a game ending: the loser, the
// surviving winners, their immutable score records, and the player records
// with ratings already adjusted.
type EndResult struct {
	Loser   PlayerName
	Winners []PlayerName
	Scores  []*Score
	Players []*Player // updated winner and loser records
}

// MoveOutcome is the fully-populated result of a move or quit submission.
// A rejected move carries the current game state and a Rejection; callers
// must still be able to render the game, so rejections are not errors.
type MoveOutcome struct {
	Game    *Game
	Move    *MoveRecord // nil when rejected
	Ended   *EndResult  // nil unless this move finished the game
	Message string

	Rejection RejectionReason // empty when the move was applied
}

// Accepted returns true if the move was applied
func (o *MoveOutcome) Accepted() bool {
	return o.Rejection == ""
}
