package checklist

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rhicrm/rhi-backend/pkg/domain"
	"github.com/rhicrm/rhi-backend/pkg/logger"
	"github.com/rhicrm/rhi-backend/pkg/models"
	"github.com/rhicrm/rhi-backend/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixture(t *testing.T) (*Service, domain.Store, uuid.UUID) {
	st := store.NewMemory()
	ctx := context.Background()

	c := &models.Client{ID: uuid.New(), Name: "Ahmed Raza", Tier: models.TierAmber}
	require.NoError(t, st.CreateClient(ctx, c))
	require.NoError(t, st.SeedChecklist(ctx, c.ID))

	return NewService(st, nil, logger.NewNop()), st, c.ID
}

func TestList(t *testing.T) {
	svc, _, clientID := newFixture(t)

	items, err := svc.List(context.Background(), clientID)
	require.NoError(t, err)
	require.Len(t, items, len(models.ChecklistCatalogue))
	assert.Equal(t, models.ItemTextSMS, items[0].Item)
	assert.Equal(t, "Text SMS", items[0].Label)
}

func TestList_UnknownClient(t *testing.T) {
	svc, _, _ := newFixture(t)

	_, err := svc.List(context.Background(), uuid.New())
	assert.True(t, domain.IsNotFound(err))
}

func TestToggle_DoneTimestampLifecycle(t *testing.T) {
	svc, _, clientID := newFixture(t)
	ctx := context.Background()

	it, err := svc.Toggle(ctx, clientID, models.ItemEmail, true)
	require.NoError(t, err)
	assert.True(t, it.Done)
	require.NotNil(t, it.DoneTS)
	assert.WithinDuration(t, time.Now(), *it.DoneTS, time.Second)

	it, err = svc.Toggle(ctx, clientID, models.ItemEmail, false)
	require.NoError(t, err)
	assert.False(t, it.Done)
	assert.Nil(t, it.DoneTS)
}

func TestToggle_UnknownItemRejected(t *testing.T) {
	svc, st, clientID := newFixture(t)

	_, err := svc.Toggle(context.Background(), clientID, "CARRIER_PIGEON", true)
	assert.True(t, domain.IsValidation(err))

	// The catalogue was not touched.
	items, listErr := st.ListChecklist(context.Background(), clientID)
	require.NoError(t, listErr)
	assert.Len(t, items, len(models.ChecklistCatalogue))
}

func TestToggle_UnknownClient(t *testing.T) {
	svc, _, _ := newFixture(t)

	_, err := svc.Toggle(context.Background(), uuid.New(), models.ItemEmail, true)
	assert.True(t, domain.IsNotFound(err))
}

func TestCoverage(t *testing.T) {
	svc, st, _ := newFixture(t)
	ctx := context.Background()
	now := time.Now()

	// Second client; one of two has EMAIL done → 50.
	c2 := &models.Client{ID: uuid.New(), Name: "Sana Khan", Tier: models.TierRed}
	require.NoError(t, st.CreateClient(ctx, c2))
	require.NoError(t, st.SeedChecklist(ctx, c2.ID))
	_, err := st.UpdateChecklistItem(ctx, c2.ID, models.ItemEmail, true, &now)
	require.NoError(t, err)

	entries, err := svc.Coverage(ctx)
	require.NoError(t, err)
	require.Len(t, entries, len(models.ChecklistCatalogue))

	byItem := make(map[string]int, len(entries))
	for _, e := range entries {
		byItem[e.Item] = e.Coverage
	}
	assert.Equal(t, 50, byItem[models.ItemEmail])
	assert.Equal(t, 0, byItem[models.ItemLetter])
}

func TestCoverage_NoClients(t *testing.T) {
	svc := NewService(store.NewMemory(), nil, logger.NewNop())

	entries, err := svc.Coverage(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, len(models.ChecklistCatalogue))
	for _, e := range entries {
		assert.Equal(t, 0, e.Coverage)
	}
}
