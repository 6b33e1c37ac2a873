package main

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/backoffice-api/infrastructure/database/postgres"
	"github.com/vfg2006/backoffice-api/infrastructure/repository"
	"github.com/vfg2006/backoffice-api/infrastructure/settings"
	"github.com/vfg2006/backoffice-api/internal/api"
	"github.com/vfg2006/backoffice-api/internal/api/handler"
	"github.com/vfg2006/backoffice-api/internal/config"
	"github.com/vfg2006/backoffice-api/internal/scheduler"
	"github.com/vfg2006/backoffice-api/internal/usecases/authenticating"
	"github.com/vfg2006/backoffice-api/internal/usecases/dashboarding"
	"github.com/vfg2006/backoffice-api/internal/usecases/goalsetting"
	"github.com/vfg2006/backoffice-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	settingsStore, closer := settingsStore(ctx, cfg)
	defer closer.Close()

	productRepo := repository.NewProductRepository(pgConn)
	invoiceRepo := repository.NewInvoiceRepository(pgConn)
	invoiceItemRepo := repository.NewInvoiceItemRepository(pgConn)
	quoteRepo := repository.NewQuoteRepository(pgConn)
	quoteItemRepo := repository.NewQuoteItemRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, settingsStore, cfg)

	dashboardService := dashboarding.NewService(
		productRepo,
		invoiceRepo,
		invoiceItemRepo,
		quoteRepo,
		quoteItemRepo,
		settingsStore,
		cfg.Dashboard.FrequentCustomerThreshold,
	)

	goalService := goalsetting.NewService(invoiceItemRepo, settingsStore)

	rolloverService := scheduler.NewSalesGoalRolloverService(goalService, settingsStore, cfg)
	if err := rolloverService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de virada da meta de vendas")
	} else {
		logrus.Info("Agendador de virada da meta de vendas iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticator,
		dashboardService,
		goalService,
		handler.CronJobServices{
			handler.CronJobTypeSalesGoalRollover: rolloverService,
		},
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// settingsStore escolhe o backend das configurações de sessão
func settingsStore(ctx context.Context, cfg *config.Config) (settings.Store, io.Closer) {
	if cfg.Settings.Backend != config.SettingsBackendRedis {
		logrus.Info("Configurações de sessão em memória")
		return settings.NewMemoryStore(), nopCloser{}
	}

	client, err := settings.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao Redis")
	}

	logrus.WithField("addr", cfg.Redis.Addr).Info("Configurações de sessão no Redis")
	return settings.NewRedisStore(client, cfg.Settings.TTL), client
}
