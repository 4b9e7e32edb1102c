package notify

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Priya8975/conflict-monitor/internal/domain"
)

// Alert kinds.
const (
	KindCriticalItem = "critical_item"
	KindThreatLevel  = "threat_level"
)

// Alert is a siren-worthy notification raised by the feed or the dashboard.
type Alert struct {
	Kind       string          `json:"kind"`
	Severity   domain.Severity `json:"severity"`
	Message    string          `json:"message"`
	LocationID string          `json:"location_id,omitempty"`
	EventID    string          `json:"event_id,omitempty"`
	At         time.Time       `json:"at"`
}

// Notifier delivers alerts to whatever plays the siren.
type Notifier interface {
	Notify(ctx context.Context, alert Alert) error
}

// LogNotifier writes alerts to the structured log.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, alert Alert) error {
	n.logger.Warn("critical alert",
		"kind", alert.Kind,
		"severity", alert.Severity,
		"location_id", alert.LocationID,
		"event_id", alert.EventID,
		"message", alert.Message,
	)
	return nil
}

// Multi fans an alert out to several notifiers. Every notifier is tried; the
// returned error joins all failures.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, alert Alert) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, alert); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
