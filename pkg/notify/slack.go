// Package notify delivers core events (tier changes, SLA breaches, site
// visit syncs) to the sales team channel. The Slack notifier posts to an
// incoming webhook; the log notifier is the fallback when no webhook is
// configured so events are never silently dropped.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/rhicrm/rhi-backend/pkg/domain"
	"github.com/rhicrm/rhi-backend/pkg/logger"
	"github.com/slack-go/slack"
)

// Slack posts events to a Slack incoming webhook.
type Slack struct {
	webhookURL string
	timeout    time.Duration
}

// NewSlack creates a Slack notifier for the given webhook URL.
func NewSlack(webhookURL string) *Slack {
	return &Slack{
		webhookURL: webhookURL,
		timeout:    10 * time.Second,
	}
}

// Notify posts one event as a formatted message.
func (s *Slack) Notify(ctx context.Context, ev domain.Event) error {
	if s.webhookURL == "" {
		return fmt.Errorf("slack webhook URL not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	msg := &slack.WebhookMessage{Text: formatEvent(ev)}
	if err := slack.PostWebhookContext(ctx, s.webhookURL, msg); err != nil {
		return fmt.Errorf("failed to post slack webhook: %w", err)
	}
	return nil
}

func formatEvent(ev domain.Event) string {
	switch ev.Type {
	case domain.EventTierChanged:
		return fmt.Sprintf("🔀 *Tier Change*\n• Client: %s\n• Now: %s\n• %s",
			ev.ClientName, ev.Tier, ev.Message)
	case domain.EventSLABreach:
		return fmt.Sprintf("🚨 *Callback Overdue*\n• Client: %s\n• Tier: %s\n• %s",
			ev.ClientName, ev.Tier, ev.Message)
	case domain.EventSiteVisitSynced:
		return fmt.Sprintf("🏗️ *Site Visit*\n• Client: %s\n• %s",
			ev.ClientName, ev.Message)
	default:
		return fmt.Sprintf("ℹ️ %s: %s", ev.Type, ev.Message)
	}
}

// Log writes events to the structured log. Used when Slack is not
// configured.
type Log struct {
	log logger.Logger
}

// NewLog creates a log-only notifier.
func NewLog(log logger.Logger) *Log {
	return &Log{log: log}
}

// Notify logs the event.
func (l *Log) Notify(_ context.Context, ev domain.Event) error {
	l.log.Info("event",
		"type", ev.Type,
		"client_id", ev.ClientID,
		"client_name", ev.ClientName,
		"tier", ev.Tier,
		"message", ev.Message)
	return nil
}

// Multi fans one event out to several notifiers, returning the first error
// after all have been attempted.
type Multi struct {
	notifiers []domain.Notifier
}

// NewMulti combines notifiers.
func NewMulti(notifiers ...domain.Notifier) *Multi {
	return &Multi{notifiers: notifiers}
}

// Notify delivers to every notifier.
func (m *Multi) Notify(ctx context.Context, ev domain.Event) error {
	var firstErr error
	for _, n := range m.notifiers {
		if err := n.Notify(ctx, ev); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
