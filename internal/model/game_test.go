package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextPlayerReturnsHead(t *testing.T) {
	g := &Game{TurnOrder: []PlayerName{"alice", "bob", "carol"}}
	assert.Equal(t, PlayerName("alice"), g.NextPlayer())
}

func TestNextPlayerEmptyForFinishedGame(t *testing.T) {
	g := &Game{TurnOrder: []PlayerName{"alice", "bob"}, IsOver: true}
	assert.Equal(t, PlayerName(""), g.NextPlayer())
}

func TestHasPlayer(t *testing.T) {
	g := &Game{TurnOrder: []PlayerName{"alice", "bob"}}
	assert.True(t, g.HasPlayer("alice"))
	assert.True(t, g.HasPlayer("bob"))
	assert.False(t, g.HasPlayer("carol"))
}

func TestRotateTurnMovesHeadToTail(t *testing.T) {
	g := &Game{TurnOrder: []PlayerName{"alice", "bob", "carol"}}

	g.RotateTurn()
	assert.Equal(t, []PlayerName{"bob", "carol", "alice"}, g.TurnOrder)

	g.RotateTurn()
	assert.Equal(t, []PlayerName{"carol", "alice", "bob"}, g.TurnOrder)

	g.RotateTurn()
	assert.Equal(t, []PlayerName{"alice", "bob", "carol"}, g.TurnOrder)
}

func TestRotateTurnSinglePlayerIsNoop(t *testing.T) {
	g := &Game{TurnOrder: []PlayerName{"alice"}}
	g.RotateTurn()
	assert.Equal(t, []PlayerName{"alice"}, g.TurnOrder)
}

func TestRemovePlayerPreservesOrder(t *testing.T) {
	g := &Game{TurnOrder: []PlayerName{"alice", "bob", "carol"}}
	g.RemovePlayer("bob")
	assert.Equal(t, []PlayerName{"alice", "carol"}, g.TurnOrder)
}

func TestRemovePlayerMissingIsNoop(t *testing.T) {
	g := &Game{TurnOrder: []PlayerName{"alice", "bob"}}
	g.RemovePlayer("carol")
	assert.Equal(t, []PlayerName{"alice", "bob"}, g.TurnOrder)
}

func TestMoveOutcomeAccepted(t *testing.T) {
	assert.True(t, (&MoveOutcome{}).Accepted())
	assert.False(t, (&MoveOutcome{Rejection: RejectionNotYourTurn}).Accepted())
}
