package dashboarding

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vfg2006/backoffice-api/infrastructure/repository"
	"github.com/vfg2006/backoffice-api/infrastructure/settings"
	"github.com/vfg2006/backoffice-api/internal/domain"
	"github.com/vfg2006/backoffice-api/internal/usecases/aggregating"
	"github.com/vfg2006/backoffice-api/pkg/apiErrors"
)

// Nomes das coleções reportadas em Dashboard.UnavailableCollections
const (
	CollectionProducts     = "products"
	CollectionInvoices     = "invoices"
	CollectionInvoiceItems = "invoice_items"
	CollectionQuotes       = "quotes"
	CollectionQuoteItems   = "quote_items"
)

type Service struct {
	productRepo     repository.ProductRepository
	invoiceRepo     repository.InvoiceRepository
	invoiceItemRepo repository.InvoiceItemRepository
	quoteRepo       repository.QuoteRepository
	quoteItemRepo   repository.QuoteItemRepository
	settings        settings.Store
	threshold       int
}

func NewService(
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
	invoiceItemRepo repository.InvoiceItemRepository,
	quoteRepo repository.QuoteRepository,
	quoteItemRepo repository.QuoteItemRepository,
	settingsStore settings.Store,
	frequentCustomerThreshold int,
) Dashboarder {
	if frequentCustomerThreshold <= 0 {
		frequentCustomerThreshold = aggregating.DefaultFrequentCustomerThreshold
	}

	return &Service{
		productRepo:     productRepo,
		invoiceRepo:     invoiceRepo,
		invoiceItemRepo: invoiceItemRepo,
		quoteRepo:       quoteRepo,
		quoteItemRepo:   quoteItemRepo,
		settings:        settingsStore,
		threshold:       frequentCustomerThreshold,
	}
}

// collections agrupa o resultado das buscas de uma página
type collections struct {
	products     []*domain.Product
	invoices     []*domain.Invoice
	invoiceItems []*domain.InvoiceItem
	quotes       []*domain.Quote
	quoteItems   []*domain.QuoteItem

	mu          sync.Mutex
	unavailable []string
}

func (c *collections) markUnavailable(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unavailable = append(c.unavailable, name)
}

// fetch executa as buscas em paralelo. Uma falha é registrada e a coleção
// fica vazia, as demais seções continuam sendo calculadas.
func fetch[T any](ctx context.Context, c *collections, name string, list func(context.Context) ([]T, error), dest *[]T) func() error {
	return func() error {
		rows, err := list(ctx)
		if err != nil {
			logrus.WithError(err).WithField("collection", name).Error("dashboard: falha ao buscar coleção, usando coleção vazia")
			c.markUnavailable(name)
			*dest = []T{}
			return nil
		}
		*dest = rows
		return nil
	}
}

type fetchSet struct {
	products, invoices, invoiceItems, quotes, quoteItems bool
}

var fetchAll = fetchSet{true, true, true, true, true}

func (s *Service) load(ctx context.Context, set fetchSet) *collections {
	c := &collections{}
	g, gctx := errgroup.WithContext(ctx)

	if set.products {
		g.Go(fetch(gctx, c, CollectionProducts, s.productRepo.List, &c.products))
	}
	if set.invoices {
		g.Go(fetch(gctx, c, CollectionInvoices, s.invoiceRepo.List, &c.invoices))
	}
	if set.invoiceItems {
		g.Go(fetch(gctx, c, CollectionInvoiceItems, s.invoiceItemRepo.List, &c.invoiceItems))
	}
	if set.quotes {
		g.Go(fetch(gctx, c, CollectionQuotes, s.quoteRepo.List, &c.quotes))
	}
	if set.quoteItems {
		g.Go(fetch(gctx, c, CollectionQuoteItems, s.quoteItemRepo.List, &c.quoteItems))
	}

	// fetch nunca retorna erro
	_ = g.Wait()

	sort.Strings(c.unavailable)
	return c
}

func (s *Service) GetDashboard(ctx context.Context, sessionID string, dateRange *domain.DateRange) (*domain.Dashboard, error) {
	effective, err := s.resolveDateRange(ctx, sessionID, dateRange)
	if err != nil {
		return nil, err
	}

	c := s.load(ctx, fetchAll)
	invoicesInRange := aggregating.FilterInvoices(c.invoices, effective)

	dashboard := &domain.Dashboard{
		DateRange:            effective,
		RevenueAndProfit:     aggregating.ComputeRevenueAndProfit(c.invoiceItems, effective),
		ProductProfitability: aggregating.ComputeProductProfitability(c.products, c.invoiceItems),
		PendingPayments:      aggregating.ComputePendingPayments(invoicesInRange, c.invoiceItems),
		PaymentMethods:       aggregating.ComputePaymentMethodBreakdown(invoicesInRange),
		FrequentCustomers:    aggregating.ComputeFrequentCustomers(invoicesInRange, s.threshold),
		QuoteConversion: domain.QuoteConversion{
			Rate:          aggregating.ComputeQuoteConversionRate(c.quotes, effective),
			QuotesInRange: aggregating.CountQuotesInRange(c.quotes, effective),
		},
		QuotedProductDemand:    aggregating.ComputeQuotedProductDemand(c.quoteItems),
		UnavailableCollections: c.unavailable,
	}

	logrus.WithFields(logrus.Fields{
		"session":     sessionID,
		"unavailable": len(c.unavailable),
	}).Debug("dashboard: painel calculado")

	return dashboard, nil
}

func (s *Service) GetProductProfitability(ctx context.Context) ([]domain.ProductProfitability, error) {
	c := s.load(ctx, fetchSet{products: true, invoiceItems: true})
	return aggregating.ComputeProductProfitability(c.products, c.invoiceItems), nil
}

func (s *Service) GetPendingPayments(ctx context.Context, sessionID string, dateRange *domain.DateRange) ([]domain.PendingPayment, error) {
	effective, err := s.resolveDateRange(ctx, sessionID, dateRange)
	if err != nil {
		return nil, err
	}

	c := s.load(ctx, fetchSet{invoices: true, invoiceItems: true})
	return aggregating.ComputePendingPayments(aggregating.FilterInvoices(c.invoices, effective), c.invoiceItems), nil
}

func (s *Service) GetPaymentMethodBreakdown(ctx context.Context, sessionID string, dateRange *domain.DateRange) (map[string]domain.PaymentMethodSummary, error) {
	effective, err := s.resolveDateRange(ctx, sessionID, dateRange)
	if err != nil {
		return nil, err
	}

	c := s.load(ctx, fetchSet{invoices: true})
	return aggregating.ComputePaymentMethodBreakdown(aggregating.FilterInvoices(c.invoices, effective)), nil
}

// GetFrequentCustomers usa o limite configurado quando threshold é negativo
func (s *Service) GetFrequentCustomers(ctx context.Context, sessionID string, dateRange *domain.DateRange, threshold int) ([]domain.FrequentCustomer, error) {
	if threshold < 0 {
		threshold = s.threshold
	}

	effective, err := s.resolveDateRange(ctx, sessionID, dateRange)
	if err != nil {
		return nil, err
	}

	c := s.load(ctx, fetchSet{invoices: true})
	return aggregating.ComputeFrequentCustomers(aggregating.FilterInvoices(c.invoices, effective), threshold), nil
}

func (s *Service) GetQuotedProductDemand(ctx context.Context) ([]domain.QuotedProductDemand, error) {
	c := s.load(ctx, fetchSet{quoteItems: true})
	return aggregating.ComputeQuotedProductDemand(c.quoteItems), nil
}

// resolveDateRange prioriza o período explícito, depois o salvo na sessão
func (s *Service) resolveDateRange(ctx context.Context, sessionID string, dateRange *domain.DateRange) (*domain.DateRange, error) {
	if dateRange != nil && !dateRange.IsEmpty() {
		return dateRange, nil
	}
	if sessionID == "" {
		return nil, nil
	}

	cached, err := s.GetDateRange(ctx, sessionID)
	if err != nil {
		// Sem período salvo o painel ainda pode ser exibido
		logrus.WithError(err).WithField("session", sessionID).Warn("dashboard: falha ao ler período salvo")
		return nil, nil
	}

	return cached, nil
}

func (s *Service) GetDateRange(ctx context.Context, sessionID string) (*domain.DateRange, error) {
	if sessionID == "" {
		return nil, NewDashboardError(ErrSessionRequired, apiErrors.ErrMissingRequiredData, "")
	}

	var dateRange domain.DateRange
	found, err := s.settings.Get(ctx, sessionID, settings.KeyDateRange, &dateRange)
	if err != nil {
		return nil, NewDashboardError(ErrSettingsStore, apiErrors.ErrInternalServer, err.Error())
	}
	if !found || dateRange.IsEmpty() {
		return nil, nil
	}

	return &dateRange, nil
}

func (s *Service) SetDateRange(ctx context.Context, sessionID string, dateRange *domain.DateRange) error {
	if sessionID == "" {
		return NewDashboardError(ErrSessionRequired, apiErrors.ErrMissingRequiredData, "")
	}
	if dateRange == nil || dateRange.IsEmpty() {
		return NewDashboardError(ErrDateRangeRequired, apiErrors.ErrMissingRequiredData, "")
	}

	if err := s.settings.Set(ctx, sessionID, settings.KeyDateRange, dateRange); err != nil {
		return NewDashboardError(ErrSettingsStore, apiErrors.ErrInternalServer, fmt.Sprintf("erro ao salvar período: %v", err))
	}

	return nil
}

func (s *Service) ClearDateRange(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return NewDashboardError(ErrSessionRequired, apiErrors.ErrMissingRequiredData, "")
	}

	if err := s.settings.Clear(ctx, sessionID, settings.KeyDateRange); err != nil {
		return NewDashboardError(ErrSettingsStore, apiErrors.ErrInternalServer, fmt.Sprintf("erro ao limpar período: %v", err))
	}

	return nil
}
