package notify

import (
	"go.uber.org/zap"
)

// Notifier receives the transient user-facing notifications the web client
// showed as toasts. Implementations must not block.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

// LogNotifier renders notifications through zap.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Success(msg string) {
	n.logger.Info("notification", zap.String("level", "success"), zap.String("message", msg))
}

func (n *LogNotifier) Error(msg string) {
	n.logger.Warn("notification", zap.String("level", "error"), zap.String("message", msg))
}

func (n *LogNotifier) Info(msg string) {
	n.logger.Info("notification", zap.String("level", "info"), zap.String("message", msg))
}
