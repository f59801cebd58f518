// Package interactions implements the interaction processor: every client
// contact is logged immutably, moves the CRFES sub-scores through the scoring
// rules, refreshes the derived health score and tier, and keeps the site
// visit checklist rows in sync.
package interactions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rhicrm/rhi-backend/pkg/domain"
	"github.com/rhicrm/rhi-backend/pkg/logger"
	"github.com/rhicrm/rhi-backend/pkg/metrics"
	"github.com/rhicrm/rhi-backend/pkg/models"
	"github.com/rhicrm/rhi-backend/pkg/scoring"
	"github.com/rhicrm/rhi-backend/pkg/store"
)

// Service handles interaction business logic.
type Service struct {
	store    domain.Store
	cache    domain.Cache
	notifier domain.Notifier
	metrics  *metrics.Metrics
	log      logger.Logger
}

// NewService creates a new interaction service. cache and notifier may be
// nil.
func NewService(st domain.Store, cache domain.Cache, notifier domain.Notifier, m *metrics.Metrics, log logger.Logger) *Service {
	return &Service{
		store:    st,
		cache:    cache,
		notifier: notifier,
		metrics:  m,
		log:      log,
	}
}

// Log records an interaction against a client and applies its outcome: score
// deltas, health recomputation, last-contact timestamp and the site visit
// checklist sync. The interaction row is append-only.
func (s *Service) Log(ctx context.Context, clientID uuid.UUID, req models.InteractionCreateRequest) (*models.InteractionResult, error) {
	c, err := s.store.GetClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.NewNotFoundError("client")
		}
		return nil, domain.NewInternalError(err)
	}

	// An interaction without a real agent behind it never reaches the log.
	if _, err := s.store.GetAgent(ctx, req.AgentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.NewValidationError("agent does not exist")
		}
		return nil, domain.NewInternalError(err)
	}

	now := time.Now()
	in := &models.Interaction{
		ID:             uuid.New(),
		ClientID:       clientID,
		AgentID:        req.AgentID,
		Type:           req.Type,
		Disposition:    req.Disposition,
		SentimentNum:   req.SentimentNum,
		PromisedAmount: req.PromisedAmount,
		NextActionDate: req.NextActionDate,
		Notes:          req.Notes,
	}
	oldTier := c.Tier
	c.Scores = scoring.ApplyInteraction(c.Scores, scoring.Outcome{
		Disposition:    req.Disposition,
		SentimentNum:   req.SentimentNum,
		PromisedAmount: req.PromisedAmount,
	})
	c.HealthScore, c.Tier = scoring.ComputeHealth(c.Scores)
	c.LastInteraction = now
	if req.NextActionDate != nil {
		c.NextAction = req.NextActionDate
	}
	if req.PromisedAmount != nil && *req.PromisedAmount > 0 &&
		c.PromiseFunnel == models.FunnelPending {
		c.PromiseFunnel = models.FunnelPromised
	}

	// One atomic write: a failure persists neither the interaction nor the
	// client, so last_interaction never lags behind the log.
	if err := s.store.LogInteraction(ctx, in, c); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.NewNotFoundError("client")
		}
		return nil, domain.NewInternalError(err)
	}

	if req.Type == models.TypeVisit {
		s.syncSiteVisit(ctx, c, req.Disposition, now)
	}

	tierChanged := c.Tier != oldTier
	if tierChanged {
		s.notify(ctx, domain.Event{
			Type:       domain.EventTierChanged,
			ClientID:   c.ID,
			ClientName: c.Name,
			Tier:       c.Tier,
			Message:    fmt.Sprintf("%s moved from %s to %s", c.Name, oldTier, c.Tier),
			At:         now,
		})
	}

	if s.metrics != nil {
		s.metrics.InteractionsLogged.WithLabelValues(
			string(req.Type), string(req.Disposition)).Inc()
	}
	s.invalidate(ctx)
	s.log.Info("interaction logged",
		"client_id", c.ID,
		"type", req.Type,
		"disposition", req.Disposition,
		"health", c.HealthScore,
		"tier", c.Tier)

	return &models.InteractionResult{
		Interaction: *in,
		Client:      *c,
		TierChanged: tierChanged,
	}, nil
}

// syncSiteVisit marks the site visit checklist rows when a visit is logged:
// any visit completes the scheduling step, a successful one completes the
// visit itself. Sync failures are logged, not surfaced; the interaction is
// already committed.
func (s *Service) syncSiteVisit(ctx context.Context, c *models.Client, disp models.Disposition, now time.Time) {
	if _, err := s.store.UpdateChecklistItem(ctx, c.ID, models.ItemSiteVisitScheduled, true, &now); err != nil {
		s.log.Warn("site visit sync failed", "client_id", c.ID, "item", models.ItemSiteVisitScheduled, "error", err)
		return
	}
	if disp == models.DispositionSuccess {
		if _, err := s.store.UpdateChecklistItem(ctx, c.ID, models.ItemSiteVisitCompleted, true, &now); err != nil {
			s.log.Warn("site visit sync failed", "client_id", c.ID, "item", models.ItemSiteVisitCompleted, "error", err)
			return
		}
	}

	s.notify(ctx, domain.Event{
		Type:       domain.EventSiteVisitSynced,
		ClientID:   c.ID,
		ClientName: c.Name,
		Tier:       c.Tier,
		Message:    fmt.Sprintf("Site visit logged for %s", c.Name),
		At:         now,
	})
}

// History returns a client's interaction log, newest first.
func (s *Service) History(ctx context.Context, clientID uuid.UUID) ([]models.Interaction, error) {
	if _, err := s.store.GetClient(ctx, clientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.NewNotFoundError("client")
		}
		return nil, domain.NewInternalError(err)
	}

	list, err := s.store.ListInteractionsByClient(ctx, clientID)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return list, nil
}

func (s *Service) notify(ctx context.Context, ev domain.Event) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, ev); err != nil {
		s.log.Warn("notification failed", "type", ev.Type, "error", err)
	}
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, "clients:*"); err != nil {
		s.log.Warn("cache invalidation failed", "error", err)
	}
	if err := s.cache.DeletePattern(ctx, "dashboard:*"); err != nil {
		s.log.Warn("cache invalidation failed", "error", err)
	}
}
