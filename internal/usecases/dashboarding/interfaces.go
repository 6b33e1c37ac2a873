package dashboarding

import (
	"context"

	"github.com/vfg2006/backoffice-api/internal/domain"
)

// Dashboarder monta as seções do painel financeiro
type Dashboarder interface {
	// GetDashboard monta todas as seções. Sem período explícito usa o período
	// salvo na sessão. O período restringe as faturas e orçamentos de todas as
	// seções, exceto rentabilidade e demanda orçada, que cobrem o catálogo todo.
	GetDashboard(ctx context.Context, sessionID string, dateRange *domain.DateRange) (*domain.Dashboard, error)

	GetProductProfitability(ctx context.Context) ([]domain.ProductProfitability, error)
	GetPendingPayments(ctx context.Context, sessionID string, dateRange *domain.DateRange) ([]domain.PendingPayment, error)
	GetPaymentMethodBreakdown(ctx context.Context, sessionID string, dateRange *domain.DateRange) (map[string]domain.PaymentMethodSummary, error)
	GetFrequentCustomers(ctx context.Context, sessionID string, dateRange *domain.DateRange, threshold int) ([]domain.FrequentCustomer, error)
	GetQuotedProductDemand(ctx context.Context) ([]domain.QuotedProductDemand, error)

	DateRangeKeeper
}

// DateRangeKeeper guarda o período selecionado por sessão
type DateRangeKeeper interface {
	GetDateRange(ctx context.Context, sessionID string) (*domain.DateRange, error)
	SetDateRange(ctx context.Context, sessionID string, dateRange *domain.DateRange) error
	ClearDateRange(ctx context.Context, sessionID string) error
}
