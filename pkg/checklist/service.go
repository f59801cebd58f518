// Package checklist implements the marketing touchpoint tracker: a fixed
// catalogue of items per client, toggled by agents, with a cross-client
// coverage rollup for the dashboard.
package checklist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rhicrm/rhi-backend/pkg/domain"
	"github.com/rhicrm/rhi-backend/pkg/logger"
	"github.com/rhicrm/rhi-backend/pkg/models"
	"github.com/rhicrm/rhi-backend/pkg/store"
)

// Service handles checklist business logic.
type Service struct {
	store domain.Store
	cache domain.Cache
	log   logger.Logger
}

// NewService creates a new checklist service. cache may be nil.
func NewService(st domain.Store, cache domain.Cache, log logger.Logger) *Service {
	return &Service{store: st, cache: cache, log: log}
}

// List returns a client's checklist in catalogue order.
func (s *Service) List(ctx context.Context, clientID uuid.UUID) ([]models.ChecklistItem, error) {
	if _, err := s.store.GetClient(ctx, clientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.NewNotFoundError("client")
		}
		return nil, domain.NewInternalError(err)
	}

	items, err := s.store.ListChecklist(ctx, clientID)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return items, nil
}

// Toggle sets one checklist item's done state. DoneTS is stamped when the
// item is marked done and cleared when it is unmarked; keys outside the
// catalogue are rejected before touching the store.
func (s *Service) Toggle(ctx context.Context, clientID uuid.UUID, item string, done bool) (*models.ChecklistItem, error) {
	if !models.ValidItemKey(item) {
		return nil, domain.NewValidationError(fmt.Sprintf("unknown checklist item %q", item))
	}

	if _, err := s.store.GetClient(ctx, clientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.NewNotFoundError("client")
		}
		return nil, domain.NewInternalError(err)
	}

	var doneTS *time.Time
	if done {
		now := time.Now()
		doneTS = &now
	}

	updated, err := s.store.UpdateChecklistItem(ctx, clientID, item, done, doneTS)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.NewNotFoundError("checklist item")
		}
		return nil, domain.NewInternalError(err)
	}

	if s.cache != nil {
		if err := s.cache.DeletePattern(ctx, "dashboard:*"); err != nil {
			s.log.Warn("cache invalidation failed", "error", err)
		}
	}
	s.log.Info("checklist item toggled", "client_id", clientID, "item", item, "done", done)

	return updated, nil
}

// Coverage reports, per catalogue item, the percentage of clients that have
// it done, in catalogue order. With no clients every entry is zero.
func (s *Service) Coverage(ctx context.Context) ([]models.CoverageEntry, error) {
	byItem, err := s.store.ChecklistCoverage(ctx)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	entries := make([]models.CoverageEntry, 0, len(models.ChecklistCatalogue))
	for _, e := range models.ChecklistCatalogue {
		entries = append(entries, models.CoverageEntry{
			Item:     e.Key,
			Label:    e.Label,
			Coverage: byItem[e.Key],
		})
	}
	return entries, nil
}
