// Package dashboard aggregates the headline views: tier distribution with
// average health, and the Red-tier callback queue with its 24h SLA state.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rhicrm/rhi-backend/pkg/domain"
	"github.com/rhicrm/rhi-backend/pkg/logger"
	"github.com/rhicrm/rhi-backend/pkg/metrics"
	"github.com/rhicrm/rhi-backend/pkg/models"
)

// SLAWindow matches the client detail view: a Red client untouched for
// longer than this is overdue for a callback.
const SLAWindow = 24 * time.Hour

const cacheTTL = 30 * time.Second

// Service handles dashboard aggregation.
type Service struct {
	store   domain.Store
	cache   domain.Cache
	metrics *metrics.Metrics
	log     logger.Logger
}

// NewService creates a new dashboard service. cache may be nil.
func NewService(st domain.Store, cache domain.Cache, m *metrics.Metrics, log logger.Logger) *Service {
	return &Service{store: st, cache: cache, metrics: m, log: log}
}

// Summary returns the tier distribution and the rounded average health score
// across all clients. Zero clients means a zero average, not a division.
func (s *Service) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	const cacheKey = "dashboard:summary"
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
			var summary models.DashboardSummary
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				return &summary, nil
			}
		}
	}

	clients, err := s.store.ListClients(ctx)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	summary := &models.DashboardSummary{TotalClients: len(clients)}
	totalHealth := 0
	for _, c := range clients {
		totalHealth += c.HealthScore
		switch c.Tier {
		case models.TierGreen:
			summary.Green++
		case models.TierAmber:
			summary.Amber++
		case models.TierRed:
			summary.Red++
		}
	}
	if len(clients) > 0 {
		summary.AvgHealthScore = int(math.Round(float64(totalHealth) / float64(len(clients))))
	}

	if s.metrics != nil {
		s.metrics.SetTierCounts(summary.Green, summary.Amber, summary.Red)
	}

	if s.cache != nil {
		if data, err := json.Marshal(summary); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, cacheTTL)
		}
	}

	return summary, nil
}

// RedQueue returns the Red-tier clients ordered most-stale first, each
// flagged overdue when its last contact is older than the SLA window.
func (s *Service) RedQueue(ctx context.Context) (*models.RedQueueResponse, error) {
	clients, err := s.store.ListClients(ctx)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	cutoff := time.Now().Add(-SLAWindow)
	queue := &models.RedQueueResponse{Clients: []models.RedQueueEntry{}}
	for _, c := range clients {
		if c.Tier != models.TierRed {
			continue
		}
		entry := models.RedQueueEntry{
			Client:  c,
			Overdue: c.LastInteraction.Before(cutoff),
		}
		if entry.Overdue {
			queue.Overdue++
		}
		queue.Clients = append(queue.Clients, entry)
	}
	queue.Total = len(queue.Clients)

	sort.Slice(queue.Clients, func(i, j int) bool {
		return queue.Clients[i].Client.LastInteraction.Before(queue.Clients[j].Client.LastInteraction)
	})

	return queue, nil
}

// SweepSLA finds overdue Red-tier clients and emits one SLA breach event per
// client through the notifier. The hourly job calls this; it returns the
// breached clients so callers can fan out further (email digests).
func (s *Service) SweepSLA(ctx context.Context, notifier domain.Notifier) ([]models.Client, error) {
	queue, err := s.RedQueue(ctx)
	if err != nil {
		return nil, err
	}

	breached := make([]models.Client, 0, queue.Overdue)
	now := time.Now()
	for _, entry := range queue.Clients {
		if !entry.Overdue {
			continue
		}
		breached = append(breached, entry.Client)
		if notifier == nil {
			continue
		}
		ev := domain.Event{
			Type:       domain.EventSLABreach,
			ClientID:   entry.Client.ID,
			ClientName: entry.Client.Name,
			Tier:       entry.Client.Tier,
			Message:    fmt.Sprintf("%s has had no contact for over 24h", entry.Client.Name),
			At:         now,
		}
		if err := notifier.Notify(ctx, ev); err != nil {
			s.log.Warn("sla notification failed", "client_id", entry.Client.ID, "error", err)
		}
	}

	return breached, nil
}
