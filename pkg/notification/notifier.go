package notification

import (
	"context"

	"go.uber.org/zap"

	"GuardHer/pkg/logger"
)

// Kind identifies the downstream channel a notification is routed to.
type Kind string

const (
	KindHelpline    Kind = "helpline"
	KindAuthorities Kind = "authorities"
	KindHelper      Kind = "helper"
)

// Notifier is the fire-and-forget collaborator invoked by the SOS workflow.
// Failures must never propagate into the triggering operation; callers treat
// every Notify as best-effort.
type Notifier interface {
	Notify(ctx context.Context, kind Kind, payload map[string]interface{}) error
}

// Client 便于替换/注入的发送接口（适配真实渠道 SDK）
type Client interface {
	Send(ctx context.Context, kind Kind, payload map[string]interface{}) error
}

// LogNotifier logs every notification and, when a Client is configured,
// forwards it. Send failures are logged and swallowed.
type LogNotifier struct {
	cli Client
}

func NewLogNotifier(cli Client) *LogNotifier { return &LogNotifier{cli: cli} }

func (n *LogNotifier) Notify(ctx context.Context, kind Kind, payload map[string]interface{}) error {
	logger.Info("notification dispatched",
		zap.String("kind", string(kind)),
		zap.Any("payload", payload))

	if n.cli == nil {
		return nil
	}
	if err := n.cli.Send(ctx, kind, payload); err != nil {
		logger.Warn("notification send failed",
			zap.String("kind", string(kind)),
			zap.Error(err))
	}
	return nil
}
