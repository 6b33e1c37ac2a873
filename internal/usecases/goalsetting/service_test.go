package goalsetting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/backoffice-api/infrastructure/repository/mocks"
	"github.com/vfg2006/backoffice-api/infrastructure/settings"
	"github.com/vfg2006/backoffice-api/internal/domain"
)

func februaryItems() []*domain.InvoiceItem {
	feb := &domain.Invoice{ID: "F1", CreatedAt: time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC)}
	lastDay := &domain.Invoice{ID: "F2", CreatedAt: time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC)}
	march := &domain.Invoice{ID: "F3", CreatedAt: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)}

	return []*domain.InvoiceItem{
		{ID: "I1", InvoiceID: "F1", ProductID: "P1", Invoice: feb, Quantity: 3, UnitPrice: 100},
		{ID: "I2", InvoiceID: "F2", ProductID: "P1", Invoice: lastDay, Quantity: 1, UnitPrice: 33.33},
		{ID: "I3", InvoiceID: "F3", ProductID: "P1", Invoice: march, Quantity: 10, UnitPrice: 100},
	}
}

func TestRollover(t *testing.T) {
	march := time.Date(2024, 3, 1, 0, 5, 0, 0, time.UTC)

	tests := []struct {
		name     string
		stored   *domain.SalesGoal
		setup    func(repo *mocks.MockInvoiceItemRepository)
		expected domain.SalesGoal
	}{
		{
			name: "sem meta salva calcula 10% acima do mês anterior",
			setup: func(repo *mocks.MockInvoiceItemRepository) {
				repo.EXPECT().List(gomock.Any()).Return(februaryItems(), nil)
			},
			expected: domain.SalesGoal{Amount: 366.66, Month: 3, Year: 2024},
		},
		{
			name:   "meta automática de outro mês é recalculada",
			stored: &domain.SalesGoal{Amount: 50, Month: 2, Year: 2024},
			setup: func(repo *mocks.MockInvoiceItemRepository) {
				repo.EXPECT().List(gomock.Any()).Return(februaryItems(), nil)
			},
			expected: domain.SalesGoal{Amount: 366.66, Month: 3, Year: 2024},
		},
		{
			name:     "meta manual mantém o valor no novo mês",
			stored:   &domain.SalesGoal{Amount: 1500, Month: 2, Year: 2024, IsManuallySet: true},
			setup:    func(repo *mocks.MockInvoiceItemRepository) {},
			expected: domain.SalesGoal{Amount: 1500, Month: 3, Year: 2024, IsManuallySet: true},
		},
		{
			name:     "meta do mês corrente não é alterada",
			stored:   &domain.SalesGoal{Amount: 42, Month: 3, Year: 2024},
			setup:    func(repo *mocks.MockInvoiceItemRepository) {},
			expected: domain.SalesGoal{Amount: 42, Month: 3, Year: 2024},
		},
		{
			name: "sem receita no mês anterior a meta é zero",
			setup: func(repo *mocks.MockInvoiceItemRepository) {
				repo.EXPECT().List(gomock.Any()).Return([]*domain.InvoiceItem{}, nil)
			},
			expected: domain.SalesGoal{Amount: 0, Month: 3, Year: 2024},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockInvoiceItemRepository(ctrl)
			store := settings.NewMemoryStore()
			ctx := context.Background()

			if tt.stored != nil {
				require.NoError(t, store.Set(ctx, "user-1", settings.KeySalesGoal, tt.stored))
			}
			tt.setup(repo)

			svc := NewService(repo, store)
			goal, err := svc.Rollover(ctx, "user-1", march)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, *goal)

			var persisted domain.SalesGoal
			found, err := store.Get(ctx, "user-1", settings.KeySalesGoal, &persisted)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, tt.expected, persisted)
		})
	}
}

func TestRollover_JanuaryUsesPreviousDecember(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockInvoiceItemRepository(ctrl)

	december := &domain.Invoice{ID: "F1", CreatedAt: time.Date(2023, 12, 31, 20, 0, 0, 0, time.UTC)}
	repo.EXPECT().List(gomock.Any()).Return([]*domain.InvoiceItem{
		{ID: "I1", InvoiceID: "F1", Invoice: december, Quantity: 1, UnitPrice: 200},
	}, nil)

	svc := NewService(repo, settings.NewMemoryStore())
	goal, err := svc.GetCurrentGoal(context.Background(), "user-1", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, domain.SalesGoal{Amount: 220, Month: 1, Year: 2024}, *goal)
}

func TestRollover_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockInvoiceItemRepository(ctrl)
	repo.EXPECT().List(gomock.Any()).Return(nil, errors.New("db down"))

	store := settings.NewMemoryStore()
	svc := NewService(repo, store)

	_, err := svc.Rollover(context.Background(), "user-1", time.Now())
	require.Error(t, err)

	found, err := store.Get(context.Background(), "user-1", settings.KeySalesGoal, &domain.SalesGoal{})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSetManualGoalAndClear(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockInvoiceItemRepository(ctrl)
	store := settings.NewMemoryStore()
	svc := NewService(repo, store)
	ctx := context.Background()
	now := time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)

	_, err := svc.SetManualGoal(ctx, "user-1", 0, now)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.SetManualGoal(ctx, "", 10, now)
	assert.ErrorIs(t, err, ErrSessionRequired)

	goal, err := svc.SetManualGoal(ctx, "user-1", 1234.567, now)
	require.NoError(t, err)
	assert.Equal(t, domain.SalesGoal{Amount: 1234.57, Month: 5, Year: 2024, IsManuallySet: true}, *goal)

	current, err := svc.GetCurrentGoal(ctx, "user-1", now)
	require.NoError(t, err)
	assert.Equal(t, *goal, *current)

	require.NoError(t, svc.ClearGoal(ctx, "user-1"))

	// Depois de limpar, a meta volta a ser automática
	repo.EXPECT().List(gomock.Any()).Return(nil, nil)
	current, err = svc.GetCurrentGoal(ctx, "user-1", now)
	require.NoError(t, err)
	assert.False(t, current.IsManuallySet)
	assert.Equal(t, 0.0, current.Amount)
}
