package goalsetting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/backoffice-api/infrastructure/repository"
	"github.com/vfg2006/backoffice-api/infrastructure/settings"
	"github.com/vfg2006/backoffice-api/internal/domain"
	"github.com/vfg2006/backoffice-api/internal/usecases/aggregating"
	"github.com/vfg2006/backoffice-api/pkg/utils"
)

var (
	ErrSessionRequired = errors.New("session is required")
	ErrInvalidAmount   = errors.New("sales goal amount must be greater than zero")
)

// GoalSetter mantém a meta de vendas mensal de cada sessão
type GoalSetter interface {
	// GetCurrentGoal retorna a meta do mês de now, virando o mês quando a
	// meta salva pertence a outro mês
	GetCurrentGoal(ctx context.Context, sessionID string, now time.Time) (*domain.SalesGoal, error)
	SetManualGoal(ctx context.Context, sessionID string, amount float64, now time.Time) (*domain.SalesGoal, error)
	ClearGoal(ctx context.Context, sessionID string) error
	Rollover(ctx context.Context, sessionID string, now time.Time) (*domain.SalesGoal, error)
}

type Service struct {
	invoiceItemRepo repository.InvoiceItemRepository
	settings        settings.Store
}

func NewService(invoiceItemRepo repository.InvoiceItemRepository, settingsStore settings.Store) GoalSetter {
	return &Service{
		invoiceItemRepo: invoiceItemRepo,
		settings:        settingsStore,
	}
}

func (s *Service) GetCurrentGoal(ctx context.Context, sessionID string, now time.Time) (*domain.SalesGoal, error) {
	return s.Rollover(ctx, sessionID, now)
}

func (s *Service) SetManualGoal(ctx context.Context, sessionID string, amount float64, now time.Time) (*domain.SalesGoal, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	goal := &domain.SalesGoal{
		Amount:        utils.RoundWithTwoDecimalPlace(amount),
		Month:         int(now.Month()),
		Year:          now.Year(),
		IsManuallySet: true,
	}

	if err := s.settings.Set(ctx, sessionID, settings.KeySalesGoal, goal); err != nil {
		return nil, fmt.Errorf("erro ao salvar meta de vendas: %w", err)
	}

	return goal, nil
}

func (s *Service) ClearGoal(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrSessionRequired
	}

	if err := s.settings.Clear(ctx, sessionID, settings.KeySalesGoal); err != nil {
		return fmt.Errorf("erro ao limpar meta de vendas: %w", err)
	}

	return nil
}

// Rollover garante que a meta salva pertence ao mês de now. Metas definidas
// manualmente mantêm o valor; as automáticas são recalculadas a partir da
// receita do mês anterior.
func (s *Service) Rollover(ctx context.Context, sessionID string, now time.Time) (*domain.SalesGoal, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	var stored domain.SalesGoal
	found, err := s.settings.Get(ctx, sessionID, settings.KeySalesGoal, &stored)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler meta de vendas: %w", err)
	}

	if found && stored.IsFor(now) {
		return &stored, nil
	}

	var goal *domain.SalesGoal
	if found && stored.IsManuallySet {
		goal = &domain.SalesGoal{
			Amount:        stored.Amount,
			Month:         int(now.Month()),
			Year:          now.Year(),
			IsManuallySet: true,
		}
	} else {
		goal, err = s.automaticGoal(ctx, now)
		if err != nil {
			return nil, err
		}
	}

	if err := s.settings.Set(ctx, sessionID, settings.KeySalesGoal, goal); err != nil {
		return nil, fmt.Errorf("erro ao salvar meta de vendas: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"session": sessionID,
		"amount":  goal.Amount,
		"month":   fmt.Sprintf("%02d-%d", goal.Month, goal.Year),
		"manual":  goal.IsManuallySet,
	}).Info("sales-goal: meta do mês definida")

	return goal, nil
}

// automaticGoal é a receita do mês anterior acrescida de SalesGoalGrowthFactor
func (s *Service) automaticGoal(ctx context.Context, now time.Time) (*domain.SalesGoal, error) {
	items, err := s.invoiceItemRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar itens de fatura: %w", err)
	}

	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	previous := domain.MonthRange(firstOfMonth.AddDate(0, -1, 0))

	revenue := aggregating.ComputeRevenueAndProfit(items, previous).Revenue

	return &domain.SalesGoal{
		Amount:        utils.RoundWithTwoDecimalPlace(revenue * domain.SalesGoalGrowthFactor),
		Month:         int(now.Month()),
		Year:          now.Year(),
		IsManuallySet: false,
	}, nil
}
