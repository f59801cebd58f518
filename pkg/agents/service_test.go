package agents

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rhicrm/rhi-backend/pkg/domain"
	"github.com/rhicrm/rhi-backend/pkg/logger"
	"github.com/rhicrm/rhi-backend/pkg/models"
	"github.com/rhicrm/rhi-backend/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(store.NewMemory(), logger.NewNop())
}

func TestCreate_Defaults(t *testing.T) {
	svc := newTestService()

	a, err := svc.Create(context.Background(), models.AgentCreateRequest{
		Name:  "Maryam Tariq",
		Email: "Maryam@Company.com",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleAgent, a.Role)
	assert.Equal(t, "Good", a.PerformanceRating)
	assert.True(t, a.Active)
	assert.Equal(t, "maryam@company.com", a.Email)
}

func TestToggle(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, models.AgentCreateRequest{Name: "Bilal", Email: "b@c.com"})
	require.NoError(t, err)
	require.True(t, a.Active)

	a, err = svc.Toggle(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, a.Active)

	a, err = svc.Toggle(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, a.Active)
}

func TestUpdate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, models.AgentCreateRequest{Name: "Bilal", Email: "b@c.com"})
	require.NoError(t, err)

	role := models.RoleTeamLead
	updated, err := svc.Update(ctx, a.ID, models.AgentUpdateRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeamLead, updated.Role)
	assert.Equal(t, "Bilal", updated.Name)
}

func TestNotFound(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Get(ctx, uuid.New())
	assert.True(t, domain.IsNotFound(err))

	_, err = svc.Toggle(ctx, uuid.New())
	assert.True(t, domain.IsNotFound(err))

	assert.True(t, domain.IsNotFound(svc.Delete(ctx, uuid.New())))
}

func TestListAndDelete(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, models.AgentCreateRequest{Name: "Bilal", Email: "b@c.com"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, models.AgentCreateRequest{Name: "Sana", Email: "s@c.com"})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, svc.Delete(ctx, a.ID))
	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
