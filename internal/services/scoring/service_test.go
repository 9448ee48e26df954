package scoring

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/thirtyone-go/internal/dependencies/mocks"
	"github.com/mcoot/thirtyone-go/internal/model"
	"github.com/mcoot/thirtyone-go/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock)
	s.ctx = context.Background()
}

func (s *ServiceSuite) savePlayers(names ...model.PlayerName) {
	for _, name := range names {
		_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: name})
	}
}

func (s *ServiceSuite) TestTwoPlayerGame() {
	s.savePlayers("alice", "bob")
	game := &model.Game{
		ID:        "GAME1",
		TurnOrder: []model.PlayerName{"alice", "bob"},
	}

	result, err := s.service.EndGame(s.ctx, game, "bob")
	s.Require().NoError(err)

	s.Equal(model.PlayerName("bob"), result.Loser)
	s.Equal([]model.PlayerName{"alice"}, result.Winners)

	s.Require().Len(result.Scores, 2)
	s.Equal(1.0, result.Scores[0].Points)
	s.True(result.Scores[0].Won)
	s.Equal(-1.0, result.Scores[1].Points)
	s.False(result.Scores[1].Won)
}

func (s *ServiceSuite) TestWinnersSplitSingleUnit() {
	s.savePlayers("alice", "bob", "carol", "dave")
	game := &model.Game{
		ID:        "GAME1",
		TurnOrder: []model.PlayerName{"alice", "bob", "carol", "dave"},
	}

	result, err := s.service.EndGame(s.ctx, game, "dave")
	s.Require().NoError(err)

	s.Len(result.Winners, 3)
	share := 1.0 / 3.0
	for i := 0; i < 3; i++ {
		s.InDelta(share, result.Scores[i].Points, 1e-9)
		s.True(result.Scores[i].Won)
	}

	// The winners' pool mirrors the loser's single unit
	total := 0.0
	for _, score := range result.Scores {
		total += score.Points
	}
	s.InDelta(0.0, total, 1e-9)
}

func (s *ServiceSuite) TestRatingsAdjusted() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "alice", Rating: 2.0})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "bob", Rating: 0.5})
	game := &model.Game{
		ID:        "GAME1",
		TurnOrder: []model.PlayerName{"alice", "bob"},
	}

	result, err := s.service.EndGame(s.ctx, game, "bob")
	s.Require().NoError(err)

	s.Require().Len(result.Players, 2)
	s.Equal(model.PlayerName("alice"), result.Players[0].Name)
	s.Equal(3.0, result.Players[0].Rating)
	s.Equal(model.PlayerName("bob"), result.Players[1].Name)
	s.Equal(-0.5, result.Players[1].Rating)
}

func (s *ServiceSuite) TestScoresCarryGameAndTimestamp() {
	s.savePlayers("alice", "bob")
	game := &model.Game{
		ID:        "GAME1",
		TurnOrder: []model.PlayerName{"alice", "bob"},
	}

	result, err := s.service.EndGame(s.ctx, game, "alice")
	s.Require().NoError(err)

	for _, score := range result.Scores {
		s.Equal(model.GameID("GAME1"), score.GameID)
		s.Equal(s.clock.CurrentTime, score.AwardedAt)
		s.NotEmpty(score.ID)
	}
}

func (s *ServiceSuite) TestEndGameNothingPersisted() {
	s.savePlayers("alice", "bob")
	game := &model.Game{
		ID:        "GAME1",
		TurnOrder: []model.PlayerName{"alice", "bob"},
	}

	_, err := s.service.EndGame(s.ctx, game, "bob")
	s.Require().NoError(err)

	// Ratings only change when the outcome is committed
	alice, _ := s.storage.GetPlayer(s.ctx, "alice")
	s.Equal(0.0, alice.Rating)

	scores, _ := s.storage.GetScoresForGame(s.ctx, "GAME1")
	s.Empty(scores)
}

func (s *ServiceSuite) TestEndGameUnknownPlayer() {
	s.savePlayers("alice")
	game := &model.Game{
		ID:        "GAME1",
		TurnOrder: []model.PlayerName{"alice", "bob"},
	}

	_, err := s.service.EndGame(s.ctx, game, "alice")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}
