package reminder

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

// recordingNotifier captures notifications for assertions
type recordingNotifier struct {
	notified map[model.PlayerName][]*model.Game
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{notified: make(map[model.PlayerName][]*model.Game)}
}

func (n *recordingNotifier) NotifyPendingTurn(ctx context.Context, player *model.Player, games []*model.Game) error {
	n.notified[player.Name] = games
	return nil
}

type ServiceSuite struct {
	suite.Suite
	storage  *memory.Storage
	notifier *recordingNotifier
	clock    *mocks.MockClock
	service  *Service
	ctx      context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.notifier = newRecordingNotifier()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.notifier, s.clock, testutil.NopLogger(), DefaultConfig())
	s.ctx = context.Background()
}

func (s *ServiceSuite) saveGame(id model.GameID, turnOrder []model.PlayerName, updatedAt time.Time) {
	_ = s.storage.SaveGame(s.ctx, &model.Game{
		ID:        id,
		TurnOrder: turnOrder,
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	})
}

func (s *ServiceSuite) TestSweepNotifiesIdlePendingPlayer() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "alice", Email: "alice@example.com"})
	s.saveGame("GAME1", []model.PlayerName{"alice", "bob"}, s.clock.CurrentTime)

	s.clock.Advance(2 * time.Hour)

	err := s.service.Sweep(s.ctx)
	s.Require().NoError(err)

	s.Require().Contains(s.notifier.notified, model.PlayerName("alice"))
	s.Len(s.notifier.notified["alice"], 1)
}

func (s *ServiceSuite) TestSweepSkipsRecentlyActiveGames() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "alice", Email: "alice@example.com"})
	s.saveGame("GAME1", []model.PlayerName{"alice", "bob"}, s.clock.CurrentTime)

	s.clock.Advance(30 * time.Minute)

	err := s.service.Sweep(s.ctx)
	s.Require().NoError(err)
	s.Empty(s.notifier.notified)
}

func (s *ServiceSuite) TestSweepSkipsPlayersWithoutEmail() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "alice"})
	s.saveGame("GAME1", []model.PlayerName{"alice", "bob"}, s.clock.CurrentTime)

	s.clock.Advance(2 * time.Hour)

	err := s.service.Sweep(s.ctx)
	s.Require().NoError(err)
	s.Empty(s.notifier.notified)
}

func (s *ServiceSuite) TestSweepGroupsGamesPerPlayer() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "alice", Email: "alice@example.com"})
	s.saveGame("GAME1", []model.PlayerName{"alice", "bob"}, s.clock.CurrentTime)
	s.saveGame("GAME2", []model.PlayerName{"alice", "carol"}, s.clock.CurrentTime)

	s.clock.Advance(2 * time.Hour)

	err := s.service.Sweep(s.ctx)
	s.Require().NoError(err)

	// One notification listing both stale games
	s.Require().Contains(s.notifier.notified, model.PlayerName("alice"))
	s.Len(s.notifier.notified["alice"], 2)
}

func (s *ServiceSuite) TestSweepIgnoresFinishedGames() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "alice", Email: "alice@example.com"})
	_ = s.storage.SaveGame(s.ctx, &model.Game{
		ID:        "GAME1",
		TurnOrder: []model.PlayerName{"alice"},
		IsOver:    true,
		Loser:     "bob",
		UpdatedAt: s.clock.CurrentTime,
	})

	s.clock.Advance(2 * time.Hour)

	err := s.service.Sweep(s.ctx)
	s.Require().NoError(err)
	s.Empty(s.notifier.notified)
}
