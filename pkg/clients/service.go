// Package clients implements the client service: CRUD over sales leads with
// derived health scores, list filtering for the dashboard, and the
// presentation hints (suggested actions, SLA flag) the detail view shows.
package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rhicrm/rhi-backend/pkg/domain"
	"github.com/rhicrm/rhi-backend/pkg/logger"
	"github.com/rhicrm/rhi-backend/pkg/metrics"
	"github.com/rhicrm/rhi-backend/pkg/models"
	"github.com/rhicrm/rhi-backend/pkg/phone"
	"github.com/rhicrm/rhi-backend/pkg/scoring"
	"github.com/rhicrm/rhi-backend/pkg/store"
)

// SLAWindow is how long a Red-tier client may go without contact before a
// callback is overdue.
const SLAWindow = 24 * time.Hour

const listCacheTTL = 30 * time.Second

// Service handles client business logic.
type Service struct {
	store   domain.Store
	cache   domain.Cache
	metrics *metrics.Metrics
	log     logger.Logger
	region  string
}

// NewService creates a new client service. cache may be nil when Redis is
// not configured.
func NewService(st domain.Store, cache domain.Cache, m *metrics.Metrics, log logger.Logger, region string) *Service {
	if region == "" {
		region = phone.DefaultRegion
	}
	return &Service{
		store:   st,
		cache:   cache,
		metrics: m,
		log:     log,
		region:  region,
	}
}

// List returns clients filtered by tier and a case-insensitive search over
// name, phone and email, paginated.
func (s *Service) List(ctx context.Context, req models.ClientListRequest) (*models.ClientListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.Limit == 0 {
		req.Limit = 50
	}
	if req.Limit > 200 {
		req.Limit = 200
	}

	cacheKey := fmt.Sprintf("clients:list:%s:%s:%d:%d", req.Tier, strings.ToLower(req.Search), req.Page, req.Limit)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
			var response models.ClientListResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				return &response, nil
			}
		}
	}

	all, err := s.store.ListClients(ctx)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	filtered := make([]models.Client, 0, len(all))
	search := strings.ToLower(strings.TrimSpace(req.Search))
	for _, c := range all {
		if req.Tier != "" && string(c.Tier) != req.Tier {
			continue
		}
		if search != "" && !matchesSearch(c, search) {
			continue
		}
		filtered = append(filtered, c)
	}

	total := len(filtered)
	totalPages := (total + req.Limit - 1) / req.Limit
	offset := (req.Page - 1) * req.Limit
	if offset > total {
		offset = total
	}
	end := offset + req.Limit
	if end > total {
		end = total
	}

	response := &models.ClientListResponse{
		Data: filtered[offset:end],
		Pagination: models.PaginationInfo{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
	}

	if s.cache != nil {
		if data, err := json.Marshal(response); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, listCacheTTL)
		}
	}

	return response, nil
}

func matchesSearch(c models.Client, search string) bool {
	return strings.Contains(strings.ToLower(c.Name), search) ||
		strings.Contains(strings.ToLower(c.Phone), search) ||
		strings.Contains(strings.ToLower(c.Email), search)
}

// Get returns a client with its checklist progress and presentation hints.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.ClientDetail, error) {
	c, err := s.store.GetClient(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.NewNotFoundError("client")
		}
		return nil, domain.NewInternalError(err)
	}

	items, err := s.store.ListChecklist(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	detail := &models.ClientDetail{Client: *c, ChecklistTotal: len(items)}
	undone := make([]string, 0, len(items))
	for _, it := range items {
		if it.Done {
			detail.ChecklistDone++
		} else {
			undone = append(undone, it.Label)
		}
	}

	detail.SuggestedActions = suggestedActions(c.Tier, undone)
	detail.NextBestActions = nextBestActions(c.Tier)
	detail.SLACallbackNeeded = c.Tier == models.TierRed &&
		time.Since(c.LastInteraction) > SLAWindow

	return detail, nil
}

// suggestedActions proposes checklist touchpoints the team has not covered
// yet, most relevant first. Green clients get no nagging.
func suggestedActions(tier models.Tier, undone []string) []string {
	if tier == models.TierGreen || len(undone) == 0 {
		return nil
	}
	if len(undone) > 3 {
		undone = undone[:3]
	}
	actions := make([]string, len(undone))
	for i, label := range undone {
		actions[i] = fmt.Sprintf("Reach out via %s", label)
	}
	return actions
}

func nextBestActions(tier models.Tier) []string {
	switch tier {
	case models.TierGreen:
		return []string{
			"Invite for a site visit",
			"Discuss payment plan upgrade",
			"Ask for a referral",
		}
	case models.TierAmber:
		return []string{
			"Schedule a follow-up call this week",
			"Share latest development progress",
		}
	default:
		return []string{
			"Call back within 24 hours",
			"Escalate to team lead if unreachable",
		}
	}
}

// Create registers a new client, seeds its checklist and computes the initial
// health score from the supplied sub-scores.
func (s *Service) Create(ctx context.Context, req models.ClientCreateRequest) (*models.Client, error) {
	now := time.Now()

	funnel := req.PromiseFunnel
	if funnel == "" {
		funnel = models.FunnelPending
	}

	c := &models.Client{
		ID:              uuid.New(),
		Name:            strings.TrimSpace(req.Name),
		Phone:           phone.NormalizeLoose(req.Phone, s.region),
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Sector:          req.Sector,
		Category:        req.Category,
		Plot:            req.Plot,
		FileNumber:      req.FileNumber,
		Notes:           req.Notes,
		PromiseFunnel:   funnel,
		Scores:          req.Scores,
		LastInteraction: now,
		NextAction:      req.NextAction,
	}
	c.HealthScore, c.Tier = scoring.ComputeHealth(c.Scores)

	if err := s.store.CreateClient(ctx, c); err != nil {
		return nil, domain.NewInternalError(err)
	}
	if err := s.store.SeedChecklist(ctx, c.ID); err != nil {
		return nil, domain.NewInternalError(err)
	}

	if s.metrics != nil {
		s.metrics.ClientsCreated.Inc()
	}
	s.invalidate(ctx)
	s.log.Info("client created", "client_id", c.ID, "tier", c.Tier, "health", c.HealthScore)

	return c, nil
}

// Update applies a partial update and recomputes the health score, so the
// stored tier can never drift from the stored sub-scores.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req models.ClientUpdateRequest) (*models.Client, error) {
	c, err := s.store.GetClient(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.NewNotFoundError("client")
		}
		return nil, domain.NewInternalError(err)
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		c.Phone = phone.NormalizeLoose(*req.Phone, s.region)
	}
	if req.Email != nil {
		c.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Sector != nil {
		c.Sector = *req.Sector
	}
	if req.Category != nil {
		c.Category = *req.Category
	}
	if req.Plot != nil {
		c.Plot = *req.Plot
	}
	if req.FileNumber != nil {
		c.FileNumber = *req.FileNumber
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
	if req.PromiseFunnel != nil {
		c.PromiseFunnel = *req.PromiseFunnel
	}
	if req.Scores != nil {
		c.Scores = *req.Scores
	}
	if req.NextAction != nil {
		c.NextAction = req.NextAction
	}
	c.HealthScore, c.Tier = scoring.ComputeHealth(c.Scores)

	if err := s.store.UpdateClient(ctx, c); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.NewNotFoundError("client")
		}
		return nil, domain.NewInternalError(err)
	}

	s.invalidate(ctx)

	return c, nil
}

// Delete removes a client and its checklist rows.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteClient(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.NewNotFoundError("client")
		}
		return domain.NewInternalError(err)
	}

	s.invalidate(ctx)
	s.log.Info("client deleted", "client_id", id)

	return nil
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
