package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/thirtyone-go/internal/dependencies/mocks"
	"github.com/mcoot/thirtyone-go/internal/model"
	"github.com/mcoot/thirtyone-go/internal/services/scoring"
	"github.com/mcoot/thirtyone-go/internal/storage/memory"
	"github.com/mcoot/thirtyone-go/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage        *memory.Storage
	scoringService *scoring.Service
	clock          *mocks.MockClock
	random         *mocks.MockRandom
	controller     *Controller
	ctx            context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.scoringService = scoring.New(s.storage, s.clock)
	s.controller = NewController(s.storage, s.scoringService, s.clock, s.random, testutil.NopLogger())
	s.ctx = context.Background()

	for _, name := range []model.PlayerName{"alice", "bob", "carol", "dave"} {
		_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: name})
	}
}

// createGame registers a standard two-player game with a deterministic ID
// and turn order alice, bob.
func (s *ControllerSuite) createGame(target, maxIncrement int) *model.Game {
	s.random.QueueString("GAME12345678")
	game, err := s.controller.CreateGame(s.ctx, "alice", []model.PlayerName{"bob"}, 0, target, maxIncrement)
	s.Require().NoError(err)
	return game
}

// CreateGame tests

func (s *ControllerSuite) TestCreateGameSucceeds() {
	game := s.createGame(31, 3)

	s.Equal(model.GameID("GAME12345678"), game.ID)
	s.Equal(0, game.CurrentValue)
	s.Equal(31, game.TargetValue)
	s.Equal(3, game.MaxIncrement)
	s.Equal([]model.PlayerName{"alice", "bob"}, game.TurnOrder)
	s.False(game.IsOver)
	s.Equal(int64(0), game.Version)
	s.Equal(s.clock.CurrentTime, game.CreatedAt)
}

func (s *ControllerSuite) TestCreateGameIsPersisted() {
	game := s.createGame(31, 3)

	retrieved, err := s.controller.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(game.ID, retrieved.ID)
}

func (s *ControllerSuite) TestCreateGameShufflesTurnOrder() {
	s.random.QueueString("GAME12345678")
	s.random.ShuffleFunc = func(n int, swap func(i, j int)) {
		// Reverse the order
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			swap(i, j)
		}
	}

	game, err := s.controller.CreateGame(s.ctx, "alice", []model.PlayerName{"bob", "carol"}, 0, 31, 3)
	s.Require().NoError(err)
	s.Equal([]model.PlayerName{"carol", "bob", "alice"}, game.TurnOrder)
}

func (s *ControllerSuite) TestCreateGameFailsWithNoOpponents() {
	_, err := s.controller.CreateGame(s.ctx, "alice", nil, 0, 31, 3)
	s.ErrorIs(err, model.ErrNotEnoughPlayers)
}

func (s *ControllerSuite) TestCreateGameFailsWithNegativeStart() {
	_, err := s.controller.CreateGame(s.ctx, "alice", []model.PlayerName{"bob"}, -1, 31, 3)
	s.ErrorIs(err, model.ErrInvalidStartingValue)
}

func (s *ControllerSuite) TestCreateGameFailsWithTargetNotAboveStart() {
	_, err := s.controller.CreateGame(s.ctx, "alice", []model.PlayerName{"bob"}, 10, 10, 3)
	s.ErrorIs(err, model.ErrInvalidTarget)
}

func (s *ControllerSuite) TestCreateGameFailsWithSmallMaxIncrement() {
	_, err := s.controller.CreateGame(s.ctx, "alice", []model.PlayerName{"bob"}, 0, 31, 1)
	s.ErrorIs(err, model.ErrInvalidIncrement)
}

func (s *ControllerSuite) TestCreateGameFailsWithDuplicatePlayer() {
	_, err := s.controller.CreateGame(s.ctx, "alice", []model.PlayerName{"bob", "bob"}, 0, 31, 3)
	s.ErrorIs(err, model.ErrDuplicatePlayer)

	// The creator counts too
	_, err = s.controller.CreateGame(s.ctx, "alice", []model.PlayerName{"alice"}, 0, 31, 3)
	s.ErrorIs(err, model.ErrDuplicatePlayer)
}

func (s *ControllerSuite) TestCreateGameFailsWithUnknownPlayer() {
	_, err := s.controller.CreateGame(s.ctx, "alice", []model.PlayerName{"mallory"}, 0, 31, 3)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// ApplyMove tests

func (s *ControllerSuite) TestApplyMoveRotatesTurn() {
	game := s.createGame(31, 3)

	outcome, err := s.controller.ApplyMove(s.ctx, game.ID, "alice", 2)
	s.Require().NoError(err)

	s.True(outcome.Accepted())
	s.Equal(2, outcome.Game.CurrentValue)
	s.Equal([]model.PlayerName{"bob", "alice"}, outcome.Game.TurnOrder)
	s.Equal("Move successful! It is bob's turn.", outcome.Message)
	s.Nil(outcome.Ended)
}

func (s *ControllerSuite) TestApplyMoveIncrementsVersion() {
	game := s.createGame(31, 3)

	outcome, err := s.controller.ApplyMove(s.ctx, game.ID, "alice", 1)
	s.Require().NoError(err)
	s.Equal(int64(1), outcome.Game.Version)

	outcome, err = s.controller.ApplyMove(s.ctx, game.ID, "bob", 1)
	s.Require().NoError(err)
	s.Equal(int64(2), outcome.Game.Version)
}

func (s *ControllerSuite) TestApplyMoveAppendsHistory() {
	game := s.createGame(31, 3)

	_, _ = s.controller.ApplyMove(s.ctx, game.ID, "alice", 2)
	_, _ = s.controller.ApplyMove(s.ctx, game.ID, "bob", 3)

	moves, err := s.controller.GetHistory(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Require().Len(moves, 2)
	s.Equal(model.PlayerName("alice"), moves[0].Player)
	s.Equal(2, moves[0].Value)
	s.Equal(model.PlayerName("bob"), moves[1].Player)
	s.Equal(3, moves[1].Value)
}

func (s *ControllerSuite) TestApplyMoveTotalNeverDecreases() {
	game := s.createGame(31, 3)

	last := 0
	players := []model.PlayerName{"alice", "bob"}
	for i := 0; i < 6; i++ {
		outcome, err := s.controller.ApplyMove(s.ctx, game.ID, players[i%2], 1+i%3)
		s.Require().NoError(err)
		s.GreaterOrEqual(outcome.Game.CurrentValue, last)
		last = outcome.Game.CurrentValue
	}
}

// Rejection tests

func (s *ControllerSuite) TestApplyMoveRejectsOutOfTurn() {
	game := s.createGame(31, 3)

	outcome, err := s.controller.ApplyMove(s.ctx, game.ID, "bob", 1)
	s.Require().NoError(err)

	s.False(outcome.Accepted())
	s.Equal(model.RejectionNotYourTurn, outcome.Rejection)
	s.Equal("It is not bob's turn yet", outcome.Message)
	s.Equal(0, outcome.Game.CurrentValue)
}

func (s *ControllerSuite) TestApplyMoveRejectsNonParticipant() {
	game := s.createGame(31, 3)

	outcome, err := s.controller.ApplyMove(s.ctx, game.ID, "carol", 1)
	s.Require().NoError(err)

	s.False(outcome.Accepted())
	s.Equal(model.RejectionNotParticipant, outcome.Rejection)
}

func (s *ControllerSuite) TestApplyMoveRejectsValueOutOfBounds() {
	game := s.createGame(31, 3)

	for _, value := range []int{0, -1, 4} {
		outcome, err := s.controller.ApplyMove(s.ctx, game.ID, "alice", value)
		s.Require().NoError(err)
		s.False(outcome.Accepted())
		s.Equal(model.RejectionInvalidValue, outcome.Rejection)
		s.Equal("Move value must be between 1 and 3", outcome.Message)
	}

	// Turn did not advance
	current, _ := s.controller.GetGame(s.ctx, game.ID)
	s.Equal(model.PlayerName("alice"), current.NextPlayer())
	s.Equal(0, current.CurrentValue)
}

func (s *ControllerSuite) TestApplyMoveRejectsFinishedGame() {
	game := s.createGame(2, 3)

	// Alice pushes past the target and loses
	outcome, err := s.controller.ApplyMove(s.ctx, game.ID, "alice", 2)
	s.Require().NoError(err)
	s.True(outcome.Game.IsOver)

	outcome, err = s.controller.ApplyMove(s.ctx, game.ID, "bob", 1)
	s.Require().NoError(err)
	s.False(outcome.Accepted())
	s.Equal(model.RejectionGameFinished, outcome.Rejection)
	s.Equal("Game has already finished!", outcome.Message)
}

func (s *ControllerSuite) TestRejectionsLeaveNoHistory() {
	game := s.createGame(31, 3)

	_, _ = s.controller.ApplyMove(s.ctx, game.ID, "bob", 1)
	_, _ = s.controller.ApplyMove(s.ctx, game.ID, "alice", 99)

	moves, err := s.controller.GetHistory(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Empty(moves)
}

// Game end tests

func (s *ControllerSuite) TestMoverWhoReachesTargetLoses() {
	game := s.createGame(5, 3)

	_, _ = s.controller.ApplyMove(s.ctx, game.ID, "alice", 3) // total 3
	outcome, err := s.controller.ApplyMove(s.ctx, game.ID, "bob", 2) // total 5, bob loses
	s.Require().NoError(err)

	s.True(outcome.Game.IsOver)
	s.Equal(model.PlayerName("bob"), outcome.Game.Loser)
	s.Equal("Game over! bob is the loser.", outcome.Message)

	s.Require().NotNil(outcome.Ended)
	s.Equal(model.PlayerName("bob"), outcome.Ended.Loser)
	s.Equal([]model.PlayerName{"alice"}, outcome.Ended.Winners)
}

func (s *ControllerSuite) TestExceedingTargetAlsoLoses() {
	game := s.createGame(5, 3)

	_, _ = s.controller.ApplyMove(s.ctx, game.ID, "alice", 3) // total 3
	outcome, err := s.controller.ApplyMove(s.ctx, game.ID, "bob", 3) // total 6 > 5
	s.Require().NoError(err)

	s.True(outcome.Game.IsOver)
	s.Equal(model.PlayerName("bob"), outcome.Game.Loser)
	s.Equal(6, outcome.Game.CurrentValue)
}

func (s *ControllerSuite) TestGameEndRemovesLoserFromTurnOrder() {
	game := s.createGame(2, 3)

	outcome, err := s.controller.ApplyMove(s.ctx, game.ID, "alice", 2)
	s.Require().NoError(err)

	s.Equal([]model.PlayerName{"bob"}, outcome.Game.TurnOrder)
	s.Equal(model.PlayerName(""), outcome.Game.NextPlayer())
}

func (s *ControllerSuite) TestGameEndPersistsScoresAndRatings() {
	game := s.createGame(2, 3)

	_, err := s.controller.ApplyMove(s.ctx, game.ID, "alice", 2)
	s.Require().NoError(err)

	scores, err := s.controller.GetScores(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Require().Len(scores, 2)

	bob, _ := s.storage.GetPlayer(s.ctx, "bob")
	s.Equal(1.0, bob.Rating)
	alice, _ := s.storage.GetPlayer(s.ctx, "alice")
	s.Equal(-1.0, alice.Rating)
}

func (s *ControllerSuite) TestThreePlayerGameSplitsPot() {
	s.random.QueueString("GAME12345678")
	game, err := s.controller.CreateGame(s.ctx, "alice", []model.PlayerName{"bob", "carol"}, 0, 2, 3)
	s.Require().NoError(err)

	outcome, err := s.controller.ApplyMove(s.ctx, game.ID, "alice", 2)
	s.Require().NoError(err)
	s.Require().NotNil(outcome.Ended)

	s.ElementsMatch([]model.PlayerName{"bob", "carol"}, outcome.Ended.Winners)

	bob, _ := s.storage.GetPlayer(s.ctx, "bob")
	s.InDelta(0.5, bob.Rating, 1e-9)
	carol, _ := s.storage.GetPlayer(s.ctx, "carol")
	s.InDelta(0.5, carol.Rating, 1e-9)
	alice, _ := s.storage.GetPlayer(s.ctx, "alice")
	s.Equal(-1.0, alice.Rating)
}

// Matches the rulebook walkthrough: target 10, increments up to 3
func (s *ControllerSuite) TestFullGameToTen() {
	game := s.createGame(10, 3)

	moves := []struct {
		player model.PlayerName
		value  int
		total  int
	}{
		{"alice", 3, 3},
		{"bob", 2, 5},
		{"alice", 1, 6},
		{"bob", 3, 9},
	}

	for _, m := range moves {
		outcome, err := s.controller.ApplyMove(s.ctx, game.ID, m.player, m.value)
		s.Require().NoError(err)
		s.Require().True(outcome.Accepted())
		s.Equal(m.total, outcome.Game.CurrentValue)
		s.False(outcome.Game.IsOver)
	}

	// Alice has no move that stays below 10; any value loses
	outcome, err := s.controller.ApplyMove(s.ctx, game.ID, "alice", 1)
	s.Require().NoError(err)
	s.True(outcome.Game.IsOver)
	s.Equal(model.PlayerName("alice"), outcome.Game.Loser)
	s.Equal(10, outcome.Game.CurrentValue)
}

// Quit tests

func (s *ControllerSuite) TestQuitMakesQuitterLose() {
	game := s.createGame(31, 3)

	// Bob quits out of turn; he still becomes the loser
	outcome, err := s.controller.Quit(s.ctx, game.ID, "bob")
	s.Require().NoError(err)

	s.True(outcome.Game.IsOver)
	s.Equal(model.PlayerName("bob"), outcome.Game.Loser)
	s.Equal("bob has quit. Game over!", outcome.Message)

	s.Require().NotNil(outcome.Ended)
	s.Equal([]model.PlayerName{"alice"}, outcome.Ended.Winners)

	alice, _ := s.storage.GetPlayer(s.ctx, "alice")
	s.Equal(1.0, alice.Rating)
}

func (s *ControllerSuite) TestQuitRecordsQuitMove() {
	game := s.createGame(31, 3)

	_, err := s.controller.Quit(s.ctx, game.ID, "alice")
	s.Require().NoError(err)

	moves, err := s.controller.GetHistory(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Require().Len(moves, 1)
	s.Equal(model.MoveQuit, moves[0].Kind)
	s.Equal(model.PlayerName("alice"), moves[0].Player)
	s.Equal(0, moves[0].Value)
}

func (s *ControllerSuite) TestQuitFinishedGameFails() {
	game := s.createGame(31, 3)

	_, err := s.controller.Quit(s.ctx, game.ID, "alice")
	s.Require().NoError(err)

	_, err = s.controller.Quit(s.ctx, game.ID, "bob")
	s.ErrorIs(err, model.ErrGameFinished)
}

func (s *ControllerSuite) TestQuitByNonParticipantFails() {
	game := s.createGame(31, 3)

	_, err := s.controller.Quit(s.ctx, game.ID, "carol")
	s.ErrorIs(err, model.ErrNotParticipant)
}

// Query tests

func (s *ControllerSuite) TestGetHistoryUnknownGame() {
	_, err := s.controller.GetHistory(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ControllerSuite) TestGetScoresUnknownGame() {
	_, err := s.controller.GetScores(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ControllerSuite) TestGetScoresEmptyForOpenGame() {
	game := s.createGame(31, 3)

	scores, err := s.controller.GetScores(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Empty(scores)
}

func (s *ControllerSuite) TestGamesForPlayer() {
	game := s.createGame(31, 3)

	games, err := s.controller.GamesForPlayer(s.ctx, "alice")
	s.Require().NoError(err)
	s.Require().Len(games, 1)
	s.Equal(game.ID, games[0].ID)

	games, err = s.controller.GamesForPlayer(s.ctx, "carol")
	s.Require().NoError(err)
	s.Empty(games)
}
