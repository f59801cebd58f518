package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rhicrm/rhi-backend/pkg/models"
)

// ErrNotFound is returned when a row does not exist. Services translate it to
// a domain not-found error.
var ErrNotFound = errors.New("record not found")

// Memory is the mock variant of the persistence adapter: an explicit,
// mutex-guarded store object constructed at session start. It replaces the
// shared module-level arrays of the original mock backend.
type Memory struct {
	mu           sync.RWMutex
	clients      map[uuid.UUID]models.Client
	agents       map[uuid.UUID]models.Agent
	interactions map[uuid.UUID][]models.Interaction
	checklist    map[uuid.UUID]map[string]models.ChecklistItem
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		clients:      make(map[uuid.UUID]models.Client),
		agents:       make(map[uuid.UUID]models.Agent),
		interactions: make(map[uuid.UUID][]models.Interaction),
		checklist:    make(map[uuid.UUID]map[string]models.ChecklistItem),
	}
}

func (m *Memory) Ping(ctx context.Context) error { return nil }
func (m *Memory) Close() error                   { return nil }

// --- Clients ---

func (m *Memory) ListClients(ctx context.Context) ([]models.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Client, 0, len(m.clients))
	for _, c := range m.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) GetClient(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.clients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (m *Memory) CreateClient(ctx context.Context, c *models.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	c.CreatedAt, c.UpdatedAt = now, now
	m.clients[c.ID] = *c
	return nil
}

func (m *Memory) UpdateClient(ctx context.Context, c *models.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.clients[c.ID]
	if !ok {
		return ErrNotFound
	}
	c.CreatedAt = old.CreatedAt
	c.UpdatedAt = time.Now()
	m.clients[c.ID] = *c
	return nil
}

func (m *Memory) DeleteClient(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clients[id]; !ok {
		return ErrNotFound
	}
	delete(m.clients, id)
	delete(m.checklist, id)
	return nil
}

// --- Agents ---

func (m *Memory) ListAgents(ctx context.Context) ([]models.Agent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Agent, 0, len(m.agents))
	for _, a := range m.agents {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) GetAgent(ctx context.Context, id uuid.UUID) (*models.Agent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.agents[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (m *Memory) CreateAgent(ctx context.Context, a *models.Agent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	a.CreatedAt, a.UpdatedAt = now, now
	m.agents[a.ID] = *a
	return nil
}

func (m *Memory) UpdateAgent(ctx context.Context, a *models.Agent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.agents[a.ID]
	if !ok {
		return ErrNotFound
	}
	a.CreatedAt = old.CreatedAt
	a.UpdatedAt = time.Now()
	m.agents[a.ID] = *a
	return nil
}

func (m *Memory) DeleteAgent(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.agents[id]; !ok {
		return ErrNotFound
	}
	delete(m.agents, id)
	return nil
}

// --- Interactions ---

func (m *Memory) CreateInteraction(ctx context.Context, in *models.Interaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	in.CreatedAt = time.Now()
	m.interactions[in.ClientID] = append(m.interactions[in.ClientID], *in)
	return nil
}

// LogInteraction appends the interaction and stores the updated client under
// one lock. A missing client leaves the log untouched.
func (m *Memory) LogInteraction(ctx context.Context, in *models.Interaction, c *models.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.clients[c.ID]
	if !ok {
		return ErrNotFound
	}
	in.CreatedAt = time.Now()
	m.interactions[in.ClientID] = append(m.interactions[in.ClientID], *in)
	c.CreatedAt = old.CreatedAt
	c.UpdatedAt = time.Now()
	m.clients[c.ID] = *c
	return nil
}

func (m *Memory) ListInteractionsByClient(ctx context.Context, clientID uuid.UUID) ([]models.Interaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := m.interactions[clientID]
	out := make([]models.Interaction, len(list))
	copy(out, list)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// --- Checklist ---

func (m *Memory) ListChecklist(ctx context.Context, clientID uuid.UUID) ([]models.ChecklistItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := m.checklist[clientID]
	out := make([]models.ChecklistItem, 0, len(items))
	for _, e := range models.ChecklistCatalogue {
		if it, ok := items[e.Key]; ok {
			it.Label = e.Label
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *Memory) SeedChecklist(ctx context.Context, clientID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make(map[string]models.ChecklistItem, len(models.ChecklistCatalogue))
	for _, e := range models.ChecklistCatalogue {
		items[e.Key] = models.ChecklistItem{
			ClientID: clientID,
			Item:     e.Key,
			Done:     false,
		}
	}
	m.checklist[clientID] = items
	return nil
}

func (m *Memory) UpdateChecklistItem(ctx context.Context, clientID uuid.UUID, item string, done bool, doneTS *time.Time) (*models.ChecklistItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items, ok := m.checklist[clientID]
	if !ok {
		return nil, ErrNotFound
	}
	it, ok := items[item]
	if !ok {
		return nil, ErrNotFound
	}
	it.Done = done
	it.DoneTS = doneTS
	items[item] = it
	it.Label = models.ItemLabel(item)
	return &it, nil
}

func (m *Memory) ChecklistCoverage(ctx context.Context) (map[string]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	done := make(map[string]int)
	total := make(map[string]int)
	for _, items := range m.checklist {
		for key, it := range items {
			total[key]++
			if it.Done {
				done[key]++
			}
		}
	}
	coverage := make(map[string]int, len(total))
	for key, t := range total {
		if t == 0 {
			coverage[key] = 0
			continue
		}
		coverage[key] = int(float64(done[key])/float64(t)*100 + 0.5)
	}
	return coverage, nil
}
