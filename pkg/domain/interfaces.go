package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rhicrm/rhi-backend/pkg/models"
)

// Store is the persistence adapter consumed by the services. It owns the
// mapping between the domain model and the persisted representation; callers
// never see column names. Every operation can fail and failures propagate as
// errors (wrapped into DomainError codes at the service layer).
type Store interface {
	// Clients
	ListClients(ctx context.Context) ([]models.Client, error)
	GetClient(ctx context.Context, id uuid.UUID) (*models.Client, error)
	CreateClient(ctx context.Context, c *models.Client) error
	UpdateClient(ctx context.Context, c *models.Client) error
	DeleteClient(ctx context.Context, id uuid.UUID) error

	// Agents
	ListAgents(ctx context.Context) ([]models.Agent, error)
	GetAgent(ctx context.Context, id uuid.UUID) (*models.Agent, error)
	CreateAgent(ctx context.Context, a *models.Agent) error
	UpdateAgent(ctx context.Context, a *models.Agent) error
	DeleteAgent(ctx context.Context, id uuid.UUID) error

	// Interactions (append-only). LogInteraction persists the interaction row
	// and the recomputed client state atomically: either both land or neither
	// does, so last_interaction can never lag behind the newest logged row.
	CreateInteraction(ctx context.Context, in *models.Interaction) error
	LogInteraction(ctx context.Context, in *models.Interaction, c *models.Client) error
	ListInteractionsByClient(ctx context.Context, clientID uuid.UUID) ([]models.Interaction, error)

	// Checklist
	ListChecklist(ctx context.Context, clientID uuid.UUID) ([]models.ChecklistItem, error)
	SeedChecklist(ctx context.Context, clientID uuid.UUID) error
	UpdateChecklistItem(ctx context.Context, clientID uuid.UUID, item string, done bool, doneTS *time.Time) (*models.ChecklistItem, error)
	ChecklistCoverage(ctx context.Context) (map[string]int, error)

	Ping(ctx context.Context) error
	Close() error
}

// Cache defines the caching operations the services depend on.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error
}

// Notifier receives events emitted by the core (tier changes, SLA breaches).
// Implementations deliver them out of band; a failed delivery never fails the
// triggering operation.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// Event is a notification emitted by the core instead of user-facing alerts.
type Event struct {
	Type       string      `json:"type"`
	ClientID   uuid.UUID   `json:"client_id"`
	ClientName string      `json:"client_name"`
	Tier       models.Tier `json:"tier,omitempty"`
	Message    string      `json:"message"`
	At         time.Time   `json:"at"`
}

// Event types.
const (
	EventTierChanged       = "tier_changed"
	EventSLABreach         = "sla_breach"
	EventSiteVisitSynced   = "site_visit_synced"
	EventInteractionLogged = "interaction_logged"
)
