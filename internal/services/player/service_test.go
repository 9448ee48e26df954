package player

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/thirtyone-go/internal/dependencies/mocks"
	"github.com/mcoot/thirtyone-go/internal/model"
	"github.com/mcoot/thirtyone-go/internal/storage/memory"
	"github.com/mcoot/thirtyone-go/internal/testutil"
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
	s.service = New(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestCreateSucceeds() {
	player, err := s.service.Create(s.ctx, "alice", "alice@example.com")
	s.Require().NoError(err)

	s.Equal(model.PlayerName("alice"), player.Name)
	s.Equal("alice@example.com", player.Email)
	s.Equal(0.0, player.Rating)
	s.Equal(s.clock.CurrentTime, player.CreatedAt)
}

func (s *ServiceSuite) TestCreateWithoutEmail() {
	player, err := s.service.Create(s.ctx, "alice", "")
	s.Require().NoError(err)
	s.Empty(player.Email)
}

func (s *ServiceSuite) TestCreateRejectsDuplicateName() {
	_, err := s.service.Create(s.ctx, "alice", "alice@example.com")
	s.Require().NoError(err)

	_, err = s.service.Create(s.ctx, "alice", "other@example.com")
	s.ErrorIs(err, model.ErrPlayerExists)
}

func (s *ServiceSuite) TestCreateRejectsDuplicateEmail() {
	_, err := s.service.Create(s.ctx, "alice", "shared@example.com")
	s.Require().NoError(err)

	_, err = s.service.Create(s.ctx, "bob", "shared@example.com")
	s.ErrorIs(err, model.ErrEmailExists)
}

func (s *ServiceSuite) TestGet() {
	_, err := s.service.Create(s.ctx, "alice", "alice@example.com")
	s.Require().NoError(err)

	player, err := s.service.Get(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerName("alice"), player.Name)

	_, err = s.service.Get(s.ctx, "bob")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestRankingsOrderAndTiebreak() {
	_, _ = s.service.Create(s.ctx, "alice", "")
	_, _ = s.service.Create(s.ctx, "bob", "")
	_, _ = s.service.Create(s.ctx, "carol", "")

	// Give bob a rating bump
	bob, _ := s.storage.GetPlayer(s.ctx, "bob")
	bob.Rating = 1.0
	_ = s.storage.SavePlayer(s.ctx, bob)

	rankings, err := s.service.Rankings(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(rankings, 3)

	s.Equal(model.PlayerName("bob"), rankings[0].Name)
	// Equal ratings keep registration order
	s.Equal(model.PlayerName("alice"), rankings[1].Name)
	s.Equal(model.PlayerName("carol"), rankings[2].Name)
}
