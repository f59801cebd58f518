package clients

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rhicrm/rhi-backend/pkg/domain"
	"github.com/rhicrm/rhi-backend/pkg/logger"
	"github.com/rhicrm/rhi-backend/pkg/metrics"
	"github.com/rhicrm/rhi-backend/pkg/models"
	"github.com/rhicrm/rhi-backend/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, domain.Store) {
	st := store.NewMemory()
	m := metrics.New(prometheus.NewRegistry())
	return NewService(st, nil, m, logger.NewNop(), "PK"), st
}

func createReq(name string, scores models.Scores) models.ClientCreateRequest {
	return models.ClientCreateRequest{
		Name:   name,
		Phone:  "03001234567",
		Email:  "Client@Email.com",
		Sector: "Tulip 1",
		Scores: scores,
	}
}

func uniform(v int) models.Scores {
	return models.Scores{
		Contactability: v, Responsiveness: v, Financial: v,
		Engagement: v, Sentiment: v,
	}
}

func TestCreate(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, createReq("Ahmed Raza", uniform(80)))
	require.NoError(t, err)

	assert.Equal(t, 80, c.HealthScore)
	assert.Equal(t, models.TierGreen, c.Tier)
	assert.Equal(t, "+923001234567", c.Phone)
	assert.Equal(t, "client@email.com", c.Email)
	assert.Equal(t, models.FunnelPending, c.PromiseFunnel)
	assert.WithinDuration(t, time.Now(), c.LastInteraction, time.Second)

	// Checklist is seeded undone at creation.
	items, err := st.ListChecklist(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, items, len(models.ChecklistCatalogue))
	for _, it := range items {
		assert.False(t, it.Done)
	}
}

func TestGetDetail(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, createReq("Sana Khan", uniform(20)))
	require.NoError(t, err)
	require.Equal(t, models.TierRed, c.Tier)

	now := time.Now()
	_, err = st.UpdateChecklistItem(ctx, c.ID, models.ItemWhatsApp, true, &now)
	require.NoError(t, err)

	detail, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, detail.ChecklistDone)
	assert.Equal(t, len(models.ChecklistCatalogue), detail.ChecklistTotal)
	assert.NotEmpty(t, detail.SuggestedActions)
	assert.LessOrEqual(t, len(detail.SuggestedActions), 3)
	assert.NotEmpty(t, detail.NextBestActions)
	// Fresh interaction, no SLA breach yet.
	assert.False(t, detail.SLACallbackNeeded)
}

func TestGetDetail_SLACallback(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, createReq("Sana Khan", uniform(20)))
	require.NoError(t, err)

	stored, err := st.GetClient(ctx, c.ID)
	require.NoError(t, err)
	stored.LastInteraction = time.Now().Add(-48 * time.Hour)
	require.NoError(t, st.UpdateClient(ctx, stored))

	detail, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, detail.SLACallbackNeeded)
}

func TestGetDetail_GreenHasNoSuggestions(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, createReq("Ahmed Raza", uniform(90)))
	require.NoError(t, err)

	detail, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.SuggestedActions)
	assert.NotEmpty(t, detail.NextBestActions)
	assert.False(t, detail.SLACallbackNeeded)
}

func TestGet_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), uuid.New())
	assert.True(t, domain.IsNotFound(err))
}

func TestUpdate_RecomputesHealth(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, createReq("Ahmed Raza", uniform(50)))
	require.NoError(t, err)
	require.Equal(t, models.TierAmber, c.Tier)

	scores := uniform(90)
	updated, err := svc.Update(ctx, c.ID, models.ClientUpdateRequest{Scores: &scores})
	require.NoError(t, err)
	assert.Equal(t, 90, updated.HealthScore)
	assert.Equal(t, models.TierGreen, updated.Tier)
}

func TestUpdate_PartialKeepsFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, createReq("Ahmed Raza", uniform(50)))
	require.NoError(t, err)

	name := "Ahmed R."
	updated, err := svc.Update(ctx, c.ID, models.ClientUpdateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ahmed R.", updated.Name)
	assert.Equal(t, c.Phone, updated.Phone)
	assert.Equal(t, c.HealthScore, updated.HealthScore)
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, createReq("Ahmed Raza", uniform(50)))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, c.ID))
	assert.True(t, domain.IsNotFound(svc.Delete(ctx, c.ID)))
}

func TestList_FiltersAndPaginates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, createReq("Green One", uniform(90)))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createReq("Red One", uniform(10)))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createReq("Red Two", uniform(20)))
	require.NoError(t, err)

	resp, err := svc.List(ctx, models.ClientListRequest{Tier: "Red"})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Pagination.Total)
	for _, c := range resp.Data {
		assert.Equal(t, models.TierRed, c.Tier)
	}

	resp, err = svc.List(ctx, models.ClientListRequest{Search: "green"})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Green One", resp.Data[0].Name)

	resp, err = svc.List(ctx, models.ClientListRequest{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 3, resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
	assert.True(t, resp.Pagination.HasNext)
	assert.False(t, resp.Pagination.HasPrev)

	resp, err = svc.List(ctx, models.ClientListRequest{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 1)
	assert.True(t, resp.Pagination.HasPrev)
}
