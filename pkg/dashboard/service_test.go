package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rhicrm/rhi-backend/pkg/cache"
	"github.com/rhicrm/rhi-backend/pkg/domain"
	"github.com/rhicrm/rhi-backend/pkg/logger"
	"github.com/rhicrm/rhi-backend/pkg/metrics"
	"github.com/rhicrm/rhi-backend/pkg/models"
	"github.com/rhicrm/rhi-backend/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedClient(t *testing.T, st domain.Store, name string, tier models.Tier, health int, lastContact time.Time) models.Client {
	t.Helper()
	c := &models.Client{
		ID:              uuid.New(),
		Name:            name,
		Tier:            tier,
		HealthScore:     health,
		LastInteraction: lastContact,
	}
	require.NoError(t, st.CreateClient(context.Background(), c))
	return *c
}

func TestSummary(t *testing.T) {
	st := store.NewMemory()
	svc := NewService(st, nil, metrics.New(prometheus.NewRegistry()), logger.NewNop())
	now := time.Now()

	seedClient(t, st, "g1", models.TierGreen, 90, now)
	seedClient(t, st, "g2", models.TierGreen, 80, now)
	seedClient(t, st, "a1", models.TierAmber, 50, now)
	seedClient(t, st, "r1", models.TierRed, 21, now)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalClients)
	assert.Equal(t, 2, summary.Green)
	assert.Equal(t, 1, summary.Amber)
	assert.Equal(t, 1, summary.Red)
	// (90+80+50+21)/4 = 60.25 → 60
	assert.Equal(t, 60, summary.AvgHealthScore)
}

func TestSummary_Empty(t *testing.T) {
	svc := NewService(store.NewMemory(), nil, metrics.New(prometheus.NewRegistry()), logger.NewNop())

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalClients)
	assert.Equal(t, 0, summary.AvgHealthScore)
}

func TestSummary_Cached(t *testing.T) {
	st := store.NewMemory()
	mr := miniredis.RunT(t)
	c := cache.NewClientFromRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	svc := NewService(st, c, metrics.New(prometheus.NewRegistry()), logger.NewNop())
	ctx := context.Background()

	seedClient(t, st, "g1", models.TierGreen, 90, time.Now())

	first, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.TotalClients)

	// A new client within the TTL is not visible; the cached summary wins.
	seedClient(t, st, "g2", models.TierGreen, 80, time.Now())

	second, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, second.TotalClients)

	mr.FastForward(time.Minute)

	third, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, third.TotalClients)
}

func TestRedQueue(t *testing.T) {
	st := store.NewMemory()
	svc := NewService(st, nil, metrics.New(prometheus.NewRegistry()), logger.NewNop())
	now := time.Now()

	seedClient(t, st, "green", models.TierGreen, 90, now.Add(-72*time.Hour))
	fresh := seedClient(t, st, "red fresh", models.TierRed, 20, now.Add(-time.Hour))
	stale := seedClient(t, st, "red stale", models.TierRed, 10, now.Add(-48*time.Hour))

	queue, err := svc.RedQueue(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, queue.Total)
	assert.Equal(t, 1, queue.Overdue)
	// Most stale first.
	require.Len(t, queue.Clients, 2)
	assert.Equal(t, stale.ID, queue.Clients[0].Client.ID)
	assert.True(t, queue.Clients[0].Overdue)
	assert.Equal(t, fresh.ID, queue.Clients[1].Client.ID)
	assert.False(t, queue.Clients[1].Overdue)
}

type captureNotifier struct {
	events []domain.Event
}

func (n *captureNotifier) Notify(_ context.Context, ev domain.Event) error {
	n.events = append(n.events, ev)
	return nil
}

func TestSweepSLA(t *testing.T) {
	st := store.NewMemory()
	svc := NewService(st, nil, metrics.New(prometheus.NewRegistry()), logger.NewNop())
	now := time.Now()

	seedClient(t, st, "red fresh", models.TierRed, 20, now.Add(-time.Hour))
	stale := seedClient(t, st, "red stale", models.TierRed, 10, now.Add(-30*time.Hour))

	notifier := &captureNotifier{}
	breached, err := svc.SweepSLA(context.Background(), notifier)
	require.NoError(t, err)

	require.Len(t, breached, 1)
	assert.Equal(t, stale.ID, breached[0].ID)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, domain.EventSLABreach, notifier.events[0].Type)
	assert.Equal(t, stale.ID, notifier.events[0].ClientID)
}
