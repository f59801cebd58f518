// Package store provides the persistence adapter: a GORM-backed
// implementation for Postgres (sqlite in tests) and an in-memory mock, both
// behind domain.Store. Column mapping between the domain model and the
// snake_case schema lives entirely in the model tags; nothing above this
// package knows about it.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/rhicrm/rhi-backend/pkg/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Gorm is the database-backed store.
type Gorm struct {
	db *gorm.DB
}

// NewGorm opens a Postgres connection and runs migrations.
func NewGorm(databaseURL string) (*Gorm, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed opening connection to postgres: %w", err)
	}

	s := &Gorm{db: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}

	log.Println("✅ Database connected and migrations applied")
	return s, nil
}

// NewGormWithDB wraps an already-open gorm handle (used by tests with the
// sqlite driver) and runs migrations.
func NewGormWithDB(db *gorm.DB) (*Gorm, error) {
	s := &Gorm{db: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Gorm) migrate() error {
	if err := s.db.AutoMigrate(
		&models.Client{},
		&models.Agent{},
		&models.Interaction{},
		&models.ChecklistItem{},
	); err != nil {
		return fmt.Errorf("failed creating schema resources: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *Gorm) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks if the database is reachable.
func (s *Gorm) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// --- Clients ---

func (s *Gorm) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

func (s *Gorm) GetClient(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var c models.Client
	if err := s.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &c, nil
}

func (s *Gorm) CreateClient(ctx context.Context, c *models.Client) error {
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (s *Gorm) UpdateClient(ctx context.Context, c *models.Client) error {
	res := s.db.WithContext(ctx).Model(&models.Client{}).Where("id = ?", c.ID).
		Select("*").Omit("id", "created_at").Updates(c)
	if res.Error != nil {
		return fmt.Errorf("failed to update client: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Gorm) DeleteClient(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Client{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete client: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Delete(&models.ChecklistItem{}, "client_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete client checklist: %w", err)
		}
		return nil
	})
}

// --- Agents ---

func (s *Gorm) ListAgents(ctx context.Context) ([]models.Agent, error) {
	var agents []models.Agent
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&agents).Error; err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	return agents, nil
}

func (s *Gorm) GetAgent(ctx context.Context, id uuid.UUID) (*models.Agent, error) {
	var a models.Agent
	if err := s.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}
	return &a, nil
}

func (s *Gorm) CreateAgent(ctx context.Context, a *models.Agent) error {
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("failed to create agent: %w", err)
	}
	return nil
}

func (s *Gorm) UpdateAgent(ctx context.Context, a *models.Agent) error {
	res := s.db.WithContext(ctx).Model(&models.Agent{}).Where("id = ?", a.ID).
		Select("*").Omit("id", "created_at").Updates(a)
	if res.Error != nil {
		return fmt.Errorf("failed to update agent: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Gorm) DeleteAgent(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Agent{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete agent: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Interactions ---

func (s *Gorm) CreateInteraction(ctx context.Context, in *models.Interaction) error {
	if err := s.db.WithContext(ctx).Create(in).Error; err != nil {
		return fmt.Errorf("failed to create interaction: %w", err)
	}
	return nil
}

// LogInteraction writes the interaction row and the updated client in one
// transaction. A failed client update rolls the interaction back.
func (s *Gorm) LogInteraction(ctx context.Context, in *models.Interaction, c *models.Client) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(in).Error; err != nil {
			return fmt.Errorf("failed to create interaction: %w", err)
		}
		res := tx.Model(&models.Client{}).Where("id = ?", c.ID).
			Select("*").Omit("id", "created_at").Updates(c)
		if res.Error != nil {
			return fmt.Errorf("failed to update client: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *Gorm) ListInteractionsByClient(ctx context.Context, clientID uuid.UUID) ([]models.Interaction, error) {
	var interactions []models.Interaction
	if err := s.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&interactions).Error; err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}
	return interactions, nil
}

// --- Checklist ---

func (s *Gorm) ListChecklist(ctx context.Context, clientID uuid.UUID) ([]models.ChecklistItem, error) {
	var items []models.ChecklistItem
	if err := s.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list checklist: %w", err)
	}
	// Return in catalogue order with labels attached.
	byKey := make(map[string]models.ChecklistItem, len(items))
	for _, it := range items {
		byKey[it.Item] = it
	}
	ordered := make([]models.ChecklistItem, 0, len(items))
	for _, e := range models.ChecklistCatalogue {
		if it, ok := byKey[e.Key]; ok {
			it.Label = e.Label
			ordered = append(ordered, it)
		}
	}
	return ordered, nil
}

func (s *Gorm) SeedChecklist(ctx context.Context, clientID uuid.UUID) error {
	items := make([]models.ChecklistItem, 0, len(models.ChecklistCatalogue))
	for _, e := range models.ChecklistCatalogue {
		items = append(items, models.ChecklistItem{
			ClientID: clientID,
			Item:     e.Key,
			Done:     false,
		})
	}
	if err := s.db.WithContext(ctx).Create(&items).Error; err != nil {
		return fmt.Errorf("failed to seed checklist: %w", err)
	}
	return nil
}

func (s *Gorm) UpdateChecklistItem(ctx context.Context, clientID uuid.UUID, item string, done bool, doneTS *time.Time) (*models.ChecklistItem, error) {
	res := s.db.WithContext(ctx).Model(&models.ChecklistItem{}).
		Where("client_id = ? AND item = ?", clientID, item).
		Updates(map[string]interface{}{"done": done, "done_ts": doneTS})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update checklist item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var updated models.ChecklistItem
	if err := s.db.WithContext(ctx).
		First(&updated, "client_id = ? AND item = ?", clientID, item).Error; err != nil {
		return nil, fmt.Errorf("failed to reload checklist item: %w", err)
	}
	updated.Label = models.ItemLabel(updated.Item)
	return &updated, nil
}

func (s *Gorm) ChecklistCoverage(ctx context.Context) (map[string]int, error) {
	type row struct {
		Item  string
		Done  int64
		Total int64
	}
	var rows []row
	if err := s.db.WithContext(ctx).Model(&models.ChecklistItem{}).
		Select("item, SUM(CASE WHEN done THEN 1 ELSE 0 END) AS done, COUNT(*) AS total").
		Group("item").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate coverage: %w", err)
	}

	coverage := make(map[string]int, len(rows))
	for _, r := range rows {
		if r.Total == 0 {
			coverage[r.Item] = 0
			continue
		}
		coverage[r.Item] = int(float64(r.Done)/float64(r.Total)*100 + 0.5)
	}
	return coverage, nil
}
