package reminder

import (
	"context"
	"log/slog"

	"github.com/mcoot/thirtyone-go/internal/model"
)

// Notifier delivers a pending-turn reminder to a player.
// Implementations plug in whatever transport the deployment uses (email,
// chat, push); delivery failures are the implementation's to report.
type Notifier interface {
	NotifyPendingTurn(ctx context.Context, player *model.Player, games []*model.Game) error
}

// LogNotifier writes reminders to the log instead of delivering them.
// Useful as a default and in development.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

var _ Notifier = (*LogNotifier)(nil)

// NotifyPendingTurn logs the reminder
func (n *LogNotifier) NotifyPendingTurn(ctx context.Context, player *model.Player, games []*model.Game) error {
	n.logger.Info("turn reminder",
		slog.String("player", string(player.Name)),
		slog.String("email", player.Email),
		slog.Int("pending_games", len(games)),
	)
	return nil
}
