package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/backoffice-api/infrastructure/repository/mocks"
	"github.com/vfg2006/backoffice-api/infrastructure/settings"
	"github.com/vfg2006/backoffice-api/internal/config"
	"github.com/vfg2006/backoffice-api/internal/domain"
	"github.com/vfg2006/backoffice-api/internal/usecases/goalsetting"
)

type failingGoalSetter struct {
	goalsetting.GoalSetter
	failFor map[string]bool
	calls   []string
}

func (f *failingGoalSetter) Rollover(_ context.Context, sessionID string, now time.Time) (*domain.SalesGoal, error) {
	f.calls = append(f.calls, sessionID)
	if f.failFor[sessionID] {
		return nil, errors.New("settings indisponível")
	}
	return &domain.SalesGoal{Month: int(now.Month()), Year: now.Year()}, nil
}

func newRolloverConfig(enabled bool) *config.Config {
	return &config.Config{SalesGoalRollover: config.SalesGoalRollover{Enabled: enabled}}
}

func TestRunRollover_UpdatesEverySession(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockInvoiceItemRepository(ctrl)
	store := settings.NewMemoryStore()
	ctx := context.Background()

	february := &domain.Invoice{ID: "F1", CreatedAt: time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC)}
	repo.EXPECT().List(gomock.Any()).Return([]*domain.InvoiceItem{
		{ID: "I1", InvoiceID: "F1", Invoice: february, Quantity: 1, UnitPrice: 1000},
	}, nil)

	require.NoError(t, store.Set(ctx, "user-1", settings.KeySalesGoal, domain.SalesGoal{Amount: 10, Month: 2, Year: 2024}))
	require.NoError(t, store.Set(ctx, "user-2", settings.KeySalesGoal, domain.SalesGoal{Amount: 700, Month: 2, Year: 2024, IsManuallySet: true}))

	svc := NewSalesGoalRolloverService(goalsetting.NewService(repo, store), store, newRolloverConfig(true))
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) }

	require.NoError(t, svc.RunRollover(ctx))

	var automatic, manual domain.SalesGoal
	_, err := store.Get(ctx, "user-1", settings.KeySalesGoal, &automatic)
	require.NoError(t, err)
	_, err = store.Get(ctx, "user-2", settings.KeySalesGoal, &manual)
	require.NoError(t, err)

	assert.Equal(t, domain.SalesGoal{Amount: 1100, Month: 3, Year: 2024}, automatic)
	assert.Equal(t, domain.SalesGoal{Amount: 700, Month: 3, Year: 2024, IsManuallySet: true}, manual)

	status := svc.GetStatus()
	assert.Equal(t, 2, status["last_sync_processed"])
	assert.Equal(t, 0, status["last_sync_failed"])
	assert.Equal(t, false, status["sync_running"])
}

func TestRunRollover_FailureDoesNotStopOtherSessions(t *testing.T) {
	store := settings.NewMemoryStore()
	ctx := context.Background()

	for _, session := range []string{"user-1", "user-2", "user-3"} {
		require.NoError(t, store.Set(ctx, session, settings.KeyDateRange, domain.DateRange{}))
	}

	goalSetter := &failingGoalSetter{failFor: map[string]bool{"user-2": true}}
	svc := NewSalesGoalRolloverService(goalSetter, store, newRolloverConfig(true))

	require.NoError(t, svc.RunRollover(ctx))

	assert.Equal(t, []string{"user-1", "user-2", "user-3"}, goalSetter.calls)
	status := svc.GetStatus()
	assert.Equal(t, 2, status["last_sync_processed"])
	assert.Equal(t, 1, status["last_sync_failed"])
}

func TestSalesGoalRolloverService_Config(t *testing.T) {
	svc := NewSalesGoalRolloverService(&failingGoalSetter{}, settings.NewMemoryStore(), newRolloverConfig(false))

	assert.NoError(t, svc.Start(context.Background()))

	status := svc.GetStatus()
	assert.Equal(t, false, status["sync_enabled"])
	assert.Equal(t, defaultRolloverCron, status["sync_cron"])
}

func TestRunRollover_SkipsClearedRedisSessions(t *testing.T) {
	ctx := context.Background()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := settings.NewRedisStore(client, 0)

	require.NoError(t, store.Set(ctx, "user-1", settings.KeySalesGoal, domain.SalesGoal{Amount: 10, Month: 2, Year: 2024}))
	require.NoError(t, store.Set(ctx, "user-2", settings.KeySalesGoal, domain.SalesGoal{Amount: 20, Month: 2, Year: 2024}))
	require.NoError(t, store.Clear(ctx, "user-1", settings.KeySalesGoal))

	goalSetter := &failingGoalSetter{}
	svc := NewSalesGoalRolloverService(goalSetter, store, newRolloverConfig(true))
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) }

	require.NoError(t, svc.RunRollover(ctx))

	assert.Equal(t, []string{"user-2"}, goalSetter.calls)
	assert.False(t, server.Exists("settings:user-1:sales_goal"))
}
