// Package scheduler contém os serviços agendados da aplicação
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/backoffice-api/infrastructure/settings"
	"github.com/vfg2006/backoffice-api/internal/config"
	"github.com/vfg2006/backoffice-api/internal/usecases/goalsetting"
)

const defaultRolloverCron = "5 0 1 * *"

type SalesGoalRolloverConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// SalesGoalRolloverService vira a meta de vendas de todas as sessões no início do mês
type SalesGoalRolloverService struct {
	scheduler           *gocron.Scheduler
	goalSetter          goalsetting.GoalSetter
	settings            settings.Store
	config              SalesGoalRolloverConfig
	now                 func() time.Time
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncProcessed   int
	lastSyncFailed      int
}

func NewSalesGoalRolloverService(goalSetter goalsetting.GoalSetter, settingsStore settings.Store, cfg *config.Config) *SalesGoalRolloverService {
	rolloverConfig := SalesGoalRolloverConfig{
		CronSchedule: cfg.SalesGoalRollover.CronSchedule,
		SyncEnabled:  cfg.SalesGoalRollover.Enabled,
	}
	if rolloverConfig.CronSchedule == "" {
		rolloverConfig.CronSchedule = defaultRolloverCron
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": rolloverConfig.CronSchedule,
	}).Info("Configuração do agendador de virada da meta de vendas carregada")

	return &SalesGoalRolloverService{
		scheduler:  gocron.NewScheduler(time.Local),
		goalSetter: goalSetter,
		settings:   settingsStore,
		config:     rolloverConfig,
		now:        time.Now,
	}
}

func (s *SalesGoalRolloverService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de virada da meta de vendas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de virada da meta de vendas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RunRollover(ctx); err != nil {
			logrus.WithError(err).Error("Erro na virada da meta de vendas")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar virada da meta de vendas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de virada da meta de vendas")
		s.scheduler.Stop()
	}()

	return nil
}

// RunRollover executa a virada para todas as sessões conhecidas. Uma sessão
// com erro não interrompe as demais.
func (s *SalesGoalRolloverService) RunRollover(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Virada da meta de vendas já está em execução")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	s.syncMutex.Unlock()

	processed, failed := 0, 0
	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = s.now()
		s.lastSyncProcessed = processed
		s.lastSyncFailed = failed
		s.syncMutex.Unlock()
	}()

	sessions, err := s.settings.Sessions(ctx)
	if err != nil {
		return fmt.Errorf("erro ao listar sessões: %w", err)
	}

	now := s.now()
	for _, sessionID := range sessions {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if _, err := s.goalSetter.Rollover(ctx, sessionID, now); err != nil {
			failed++
			logrus.WithError(err).WithField("session", sessionID).Error("sales-goal: falha ao virar meta da sessão")
			continue
		}
		processed++
	}

	logrus.WithFields(logrus.Fields{
		"processed": processed,
		"failed":    failed,
	}).Info("Virada da meta de vendas concluída")

	return nil
}

// TriggerManualSync inicia manualmente a virada da meta de vendas
func (s *SalesGoalRolloverService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Virada da meta de vendas já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando virada manual da meta de vendas")
	go func() {
		if err := s.RunRollover(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na virada manual da meta de vendas")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *SalesGoalRolloverService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_processed":    s.lastSyncProcessed,
		"last_sync_failed":       s.lastSyncFailed,
	}
}
