package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rhicrm/rhi-backend/pkg/domain"
	"github.com/rhicrm/rhi-backend/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newSQLiteStore(t *testing.T) domain.Store {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "rhi_test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	s, err := NewGormWithDB(db)
	require.NoError(t, err)
	return s
}

// Both adapter variants must behave identically; every test runs against each.
func eachStore(t *testing.T, fn func(t *testing.T, s domain.Store)) {
	t.Run("gorm", func(t *testing.T) {
		s := newSQLiteStore(t)
		defer s.Close()
		fn(t, s)
	})
	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemory())
	})
}

func testClient(name string) *models.Client {
	return &models.Client{
		ID:            uuid.New(),
		Name:          name,
		Phone:         "03001234567",
		Email:         name + "@email.com",
		Sector:        "Tulip 1",
		Category:      "B",
		Plot:          "101",
		FileNumber:    "F-0001",
		PromiseFunnel: models.FunnelPending,
		Scores: models.Scores{
			Contactability: 50, Responsiveness: 50, Financial: 50,
			Engagement: 50, Sentiment: 50,
		},
		HealthScore:     50,
		Tier:            models.TierAmber,
		LastInteraction: time.Now(),
	}
}

func TestClientCRUD(t *testing.T) {
	eachStore(t, func(t *testing.T, s domain.Store) {
		ctx := context.Background()

		c := testClient("Client 1")
		require.NoError(t, s.CreateClient(ctx, c))

		got, err := s.GetClient(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Client 1", got.Name)
		assert.Equal(t, 50, got.Scores.Financial)
		assert.Equal(t, models.TierAmber, got.Tier)

		got.Name = "Renamed"
		got.Scores.Financial = 90
		require.NoError(t, s.UpdateClient(ctx, got))

		got, err = s.GetClient(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Name)
		assert.Equal(t, 90, got.Scores.Financial)

		list, err := s.ListClients(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)

		require.NoError(t, s.DeleteClient(ctx, c.ID))
		_, err = s.GetClient(ctx, c.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		assert.ErrorIs(t, s.DeleteClient(ctx, c.ID), ErrNotFound)
	})
}

func TestAgentCRUD(t *testing.T) {
	eachStore(t, func(t *testing.T, s domain.Store) {
		ctx := context.Background()

		a := &models.Agent{
			ID:                uuid.New(),
			Name:              "Maryam",
			Role:              models.RoleAgent,
			Email:             "maryam@company.com",
			Department:        "Sales",
			PerformanceRating: "Good",
			Active:            true,
		}
		require.NoError(t, s.CreateAgent(ctx, a))

		got, err := s.GetAgent(ctx, a.ID)
		require.NoError(t, err)
		assert.True(t, got.Active)

		got.Active = false
		require.NoError(t, s.UpdateAgent(ctx, got))

		got, err = s.GetAgent(ctx, a.ID)
		require.NoError(t, err)
		assert.False(t, got.Active)

		require.NoError(t, s.DeleteAgent(ctx, a.ID))
		_, err = s.GetAgent(ctx, a.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestInteractionsAppendOnly(t *testing.T) {
	eachStore(t, func(t *testing.T, s domain.Store) {
		ctx := context.Background()

		c := testClient("Client 1")
		require.NoError(t, s.CreateClient(ctx, c))

		agentID := uuid.New()
		for _, disp := range []models.Disposition{models.DispositionSuccess, models.DispositionCallback} {
			require.NoError(t, s.CreateInteraction(ctx, &models.Interaction{
				ID:          uuid.New(),
				ClientID:    c.ID,
				AgentID:     agentID,
				Type:        models.TypeCall,
				Disposition: disp,
			}))
		}

		list, err := s.ListInteractionsByClient(ctx, c.ID)
		require.NoError(t, err)
		assert.Len(t, list, 2)

		other, err := s.ListInteractionsByClient(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, other)
	})
}

func TestLogInteractionAtomic(t *testing.T) {
	eachStore(t, func(t *testing.T, s domain.Store) {
		ctx := context.Background()

		c := testClient("Client 1")
		require.NoError(t, s.CreateClient(ctx, c))

		// Happy path: the row and the client land together.
		now := time.Now()
		c.Scores.Contactability = 52
		c.LastInteraction = now
		in := &models.Interaction{
			ID:          uuid.New(),
			ClientID:    c.ID,
			AgentID:     uuid.New(),
			Type:        models.TypeCall,
			Disposition: models.DispositionSuccess,
		}
		require.NoError(t, s.LogInteraction(ctx, in, c))

		stored, err := s.GetClient(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, 52, stored.Scores.Contactability)
		assert.WithinDuration(t, now, stored.LastInteraction, time.Second)

		list, err := s.ListInteractionsByClient(ctx, c.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		// The client's last contact never predates the newest logged row.
		assert.False(t, stored.LastInteraction.Before(list[0].CreatedAt.Add(-time.Second)))
	})
}

func TestLogInteractionRollsBackOnMissingClient(t *testing.T) {
	eachStore(t, func(t *testing.T, s domain.Store) {
		ctx := context.Background()

		c := testClient("Client 1")
		in := &models.Interaction{
			ID:          uuid.New(),
			ClientID:    c.ID,
			AgentID:     uuid.New(),
			Type:        models.TypeCall,
			Disposition: models.DispositionSuccess,
		}
		// The client row was never created: the whole write must fail and the
		// interaction must not survive on its own.
		assert.ErrorIs(t, s.LogInteraction(ctx, in, c), ErrNotFound)

		list, err := s.ListInteractionsByClient(ctx, c.ID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestChecklistSeedAndToggle(t *testing.T) {
	eachStore(t, func(t *testing.T, s domain.Store) {
		ctx := context.Background()

		c := testClient("Client 1")
		require.NoError(t, s.CreateClient(ctx, c))
		require.NoError(t, s.SeedChecklist(ctx, c.ID))

		items, err := s.ListChecklist(ctx, c.ID)
		require.NoError(t, err)
		require.Len(t, items, len(models.ChecklistCatalogue))
		for _, it := range items {
			assert.False(t, it.Done)
			assert.Nil(t, it.DoneTS)
		}
		// Catalogue order is preserved.
		assert.Equal(t, models.ItemTextSMS, items[0].Item)
		assert.Equal(t, models.ItemSiteVisitCompleted, items[len(items)-1].Item)

		now := time.Now()
		it, err := s.UpdateChecklistItem(ctx, c.ID, models.ItemWhatsApp, true, &now)
		require.NoError(t, err)
		assert.True(t, it.Done)
		require.NotNil(t, it.DoneTS)

		it, err = s.UpdateChecklistItem(ctx, c.ID, models.ItemWhatsApp, false, nil)
		require.NoError(t, err)
		assert.False(t, it.Done)
		assert.Nil(t, it.DoneTS)

		_, err = s.UpdateChecklistItem(ctx, c.ID, "NO_SUCH_ITEM", true, &now)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestChecklistCoverage(t *testing.T) {
	eachStore(t, func(t *testing.T, s domain.Store) {
		ctx := context.Background()
		now := time.Now()

		// 10 clients, 3 with WHATSAPP done → coverage 30.
		for i := 0; i < 10; i++ {
			c := testClient("Client")
			require.NoError(t, s.CreateClient(ctx, c))
			require.NoError(t, s.SeedChecklist(ctx, c.ID))
			if i < 3 {
				_, err := s.UpdateChecklistItem(ctx, c.ID, models.ItemWhatsApp, true, &now)
				require.NoError(t, err)
			}
		}

		coverage, err := s.ChecklistCoverage(ctx)
		require.NoError(t, err)
		assert.Equal(t, 30, coverage[models.ItemWhatsApp])
		assert.Equal(t, 0, coverage[models.ItemLetter])
	})
}

func TestChecklistCoverage_Empty(t *testing.T) {
	eachStore(t, func(t *testing.T, s domain.Store) {
		coverage, err := s.ChecklistCoverage(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, coverage[models.ItemWhatsApp])
	})
}

func TestDeleteClientRemovesChecklist(t *testing.T) {
	eachStore(t, func(t *testing.T, s domain.Store) {
		ctx := context.Background()

		c := testClient("Client 1")
		require.NoError(t, s.CreateClient(ctx, c))
		require.NoError(t, s.SeedChecklist(ctx, c.ID))
		require.NoError(t, s.DeleteClient(ctx, c.ID))

		items, err := s.ListChecklist(ctx, c.ID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}
