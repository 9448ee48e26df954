package request

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// CreateGameRequest is the request body for creating a game.
// The acting player is the creator; Players lists the other participants.
// Zero values fall back to the classic defaults (0 / 31 / 3).
type CreateGameRequest struct {
	Players       []string `json:"players"`
	StartingValue *int     `json:"starting_value,omitempty"`
	TargetValue   *int     `json:"target_value,omitempty"`
	MaxIncrement  *int     `json:"max_increment,omitempty"`
}

// MoveRequest is the request body for submitting a move
type MoveRequest struct {
	Value int `json:"value"`
}
