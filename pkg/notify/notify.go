// Package notify defines the outbound notification sink. Notifications are
// fire-and-forget: the engine emits them and never consumes a response, so
// sink failures are logged by implementations rather than propagated into the
// scheduling operation that triggered them.
package notify

import (
	"context"

	"go.uber.org/zap"
)

// Notification types emitted by the scheduling engine.
const (
	TypeAvailabilityConflict = "availability_conflict"
	TypeUnavailabilityReport = "unavailability_report"
	TypeReplacementRequested = "replacement_requested"
)

// Notification priorities.
const (
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// Notification is the payload handed to the external notification
// collaborator.
type Notification struct {
	Type     string
	Title    string
	Message  string
	Priority string
}

// Notifier is the sink interface the engine emits through.
type Notifier interface {
	Notify(ctx context.Context, notification Notification)
}

// LogNotifier writes notifications to the application log. It is the default
// sink when no external collaborator is wired in.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a log-backed sink.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, notification Notification) {
	n.logger.Info("Notification emitted",
		zap.String("type", notification.Type),
		zap.String("title", notification.Title),
		zap.String("message", notification.Message),
		zap.String("priority", notification.Priority))
}

// Capture records notifications for assertions in tests.
type Capture struct {
	Notifications []Notification
}

func (c *Capture) Notify(ctx context.Context, notification Notification) {
	c.Notifications = append(c.Notifications, notification)
}
