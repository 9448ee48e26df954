package redis

import (
	"fmt"

	"github.com/mcoot/thirtyone-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "t1game"

// Key generation functions for each entity type

// playerKey returns the Redis key for a Player
func playerKey(name model.PlayerName) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, name)
}

// playerOrderKey returns the Redis key for the registration-order list.
// The list order is the documented tiebreak for rankings.
func playerOrderKey() string {
	return fmt.Sprintf("%s:players:order", keyPrefix)
}

// emailIndexKey returns the Redis key for the email -> player name index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, email)
}

// credentialsKey returns the Redis key for a player's Credentials
func credentialsKey(name model.PlayerName) string {
	return fmt.Sprintf("%s:credentials:%s", keyPrefix, name)
}

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gamesForPlayerIndexKey returns the Redis key for the SET of a player's games
func gamesForPlayerIndexKey(name model.PlayerName) string {
	return fmt.Sprintf("%s:idx:games_for_player:%s", keyPrefix, name)
}

// openGamesIndexKey returns the Redis key for the SET of unfinished games
func openGamesIndexKey() string {
	return fmt.Sprintf("%s:idx:open_games", keyPrefix)
}

// movesKey returns the Redis key for a game's match history LIST
func movesKey(id model.GameID) string {
	return fmt.Sprintf("%s:moves:%s", keyPrefix, id)
}

// scoresKey returns the Redis key for a game's score LIST
func scoresKey(id model.GameID) string {
	return fmt.Sprintf("%s:scores:%s", keyPrefix, id)
}
