package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerExists   = errors.New("a player with that name already exists")
	ErrEmailExists    = errors.New("that email address is already registered")

	// Game creation errors
	ErrNotEnoughPlayers       = errors.New("a game needs at least two distinct players")
	ErrDuplicatePlayer        = errors.New("duplicate player in game")
	ErrInvalidStartingValue   = errors.New("starting value must not be negative")
	ErrInvalidTarget          = errors.New("target value must exceed the starting value")
	ErrInvalidIncrement       = errors.New("max increment must be at least 2")

	// Game errors
	ErrGameNotFound   = errors.New("game not found")
	ErrGameFinished   = errors.New("game has already finished")
	ErrNotParticipant = errors.New("player is not part of this game")

	// Reference errors
	ErrBadReference = errors.New("malformed game reference")

	// Storage errors
	ErrStorageConflict = errors.New("concurrent modification, retry the operation")
)
