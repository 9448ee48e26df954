package model

import "time"

// PlayerName uniquely identifies a player across the system
type PlayerName string

// Player represents a registered participant
type Player struct {
	Name      PlayerName
	Email     string // optional contact address
	Rating    float64
	CreatedAt time.Time
}

// Credentials holds a player's authentication data
// Stored separately so the password hash never travels with the player record
type Credentials struct {
	PlayerName   PlayerName
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
