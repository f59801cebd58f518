// Package agents implements CRUD over sales agents and the active flag used
// to take an agent off the roster without losing their interaction history.
package agents

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rhicrm/rhi-backend/pkg/domain"
	"github.com/rhicrm/rhi-backend/pkg/logger"
	"github.com/rhicrm/rhi-backend/pkg/models"
	"github.com/rhicrm/rhi-backend/pkg/store"
)

// Service handles agent business logic.
type Service struct {
	store domain.Store
	log   logger.Logger
}

// NewService creates a new agent service.
func NewService(st domain.Store, log logger.Logger) *Service {
	return &Service{store: st, log: log}
}

// List returns all agents, oldest first.
func (s *Service) List(ctx context.Context) ([]models.Agent, error) {
	agents, err := s.store.ListAgents(ctx)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return agents, nil
}

// Get returns one agent.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Agent, error) {
	a, err := s.store.GetAgent(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.NewNotFoundError("agent")
		}
		return nil, domain.NewInternalError(err)
	}
	return a, nil
}

// Create registers a new agent. Role defaults to agent, rating to Good,
// active to true.
func (s *Service) Create(ctx context.Context, req models.AgentCreateRequest) (*models.Agent, error) {
	role := req.Role
	if role == "" {
		role = models.RoleAgent
	}
	rating := req.PerformanceRating
	if rating == "" {
		rating = "Good"
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	a := &models.Agent{
		ID:                uuid.New(),
		Name:              strings.TrimSpace(req.Name),
		Role:              role,
		Phone:             req.Phone,
		Email:             strings.ToLower(strings.TrimSpace(req.Email)),
		Department:        req.Department,
		PerformanceRating: rating,
		Active:            active,
	}

	if err := s.store.CreateAgent(ctx, a); err != nil {
		return nil, domain.NewInternalError(err)
	}

	s.log.Info("agent created", "agent_id", a.ID, "role", a.Role)

	return a, nil
}

// Update applies a partial update to an agent.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req models.AgentUpdateRequest) (*models.Agent, error) {
	a, err := s.store.GetAgent(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.NewNotFoundError("agent")
		}
		return nil, domain.NewInternalError(err)
	}

	if req.Name != nil {
		a.Name = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		a.Role = *req.Role
	}
	if req.Phone != nil {
		a.Phone = *req.Phone
	}
	if req.Email != nil {
		a.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Department != nil {
		a.Department = *req.Department
	}
	if req.PerformanceRating != nil {
		a.PerformanceRating = *req.PerformanceRating
	}
	if req.Active != nil {
		a.Active = *req.Active
	}

	if err := s.store.UpdateAgent(ctx, a); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.NewNotFoundError("agent")
		}
		return nil, domain.NewInternalError(err)
	}

	return a, nil
}

// Toggle flips an agent's active flag.
func (s *Service) Toggle(ctx context.Context, id uuid.UUID) (*models.Agent, error) {
	a, err := s.store.GetAgent(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.NewNotFoundError("agent")
		}
		return nil, domain.NewInternalError(err)
	}

	a.Active = !a.Active
	if err := s.store.UpdateAgent(ctx, a); err != nil {
		return nil, domain.NewInternalError(err)
	}

	s.log.Info("agent toggled", "agent_id", a.ID, "active", a.Active)

	return a, nil
}

// Delete removes an agent. Their logged interactions stay untouched.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteAgent(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.NewNotFoundError("agent")
		}
		return domain.NewInternalError(err)
	}
	return nil
}
