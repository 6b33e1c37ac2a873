package dashboarding

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

type repoMocks struct {
	products     *mocks.MockProductRepository
	invoices     *mocks.MockInvoiceRepository
	invoiceItems *mocks.MockInvoiceItemRepository
	quotes       *mocks.MockQuoteRepository
	quoteItems   *mocks.MockQuoteItemRepository
}

func newTestService(t *testing.T) (Dashboarder, *repoMocks, settings.Store) {
	ctrl := gomock.NewController(t)
	m := &repoMocks{
		products:     mocks.NewMockProductRepository(ctrl),
		invoices:     mocks.NewMockInvoiceRepository(ctrl),
		invoiceItems: mocks.NewMockInvoiceItemRepository(ctrl),
		quotes:       mocks.NewMockQuoteRepository(ctrl),
		quoteItems:   mocks.NewMockQuoteItemRepository(ctrl),
	}
	store := settings.NewMemoryStore()

	svc := NewService(m.products, m.invoices, m.invoiceItems, m.quotes, m.quoteItems, store, 0)
	return svc, m, store
}

func day(d int) time.Time {
	return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC)
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func stringPtr(s string) *string {
	return &s
}

func fixtures() ([]*domain.Product, []*domain.Invoice, []*domain.InvoiceItem, []*domain.Quote, []*domain.QuoteItem) {
	cafe := &domain.Product{ID: "P1", Name: "Café", Price: 10, CostPrice: 4, Available: true}
	bolo := &domain.Product{ID: "P2", Name: "Bolo", Price: 30, CostPrice: 12, Available: true}

	f1 := &domain.Invoice{ID: "F1", CreatedAt: day(2), PaymentStatus: domain.PaymentStatusPaid, PaymentMethod: stringPtr("Efectivo"), CustomerID: "C1", TotalAmount: 50}
	f2 := &domain.Invoice{ID: "F2", CreatedAt: day(10), PaymentStatus: domain.PaymentStatusPending, CustomerID: "C1", TotalAmount: 30}
	f3 := &domain.Invoice{ID: "F3", CreatedAt: day(25), PaymentStatus: domain.PaymentStatusPaid, PaymentMethod: stringPtr("Tarjeta"), CustomerID: "C1", TotalAmount: 20}

	items := []*domain.InvoiceItem{
		{ID: "I1", InvoiceID: "F1", ProductID: "P1", Product: cafe, Invoice: f1, Quantity: 2, UnitPrice: 10},
		{ID: "I2", InvoiceID: "F1", ProductID: "P2", Product: bolo, Invoice: f1, Quantity: 1, UnitPrice: 30},
		{ID: "I3", InvoiceID: "F2", ProductID: "P2", Product: bolo, Invoice: f2, Quantity: 1, UnitPrice: 30},
		{ID: "I4", InvoiceID: "F3", ProductID: "P1", Product: cafe, Invoice: f3, Quantity: 2, UnitPrice: 10},
	}

	q1 := &domain.Quote{ID: "Q1", CreatedAt: day(3), Status: domain.QuoteStatusConverted, CustomerID: "C2"}
	q2 := &domain.Quote{ID: "Q2", CreatedAt: day(4), Status: domain.QuoteStatusPending, CustomerID: "C2"}
	quoteItems := []*domain.QuoteItem{
		{ID: "QI1", QuoteID: "Q1", ProductID: "P2", Quote: q1, Product: bolo, Quantity: 4, UnitPrice: 30},
		{ID: "QI2", QuoteID: "Q2", ProductID: "P1", Quote: q2, Product: cafe, Quantity: 5, UnitPrice: 10},
	}

	return []*domain.Product{cafe, bolo}, []*domain.Invoice{f1, f2, f3}, items, []*domain.Quote{q1, q2}, quoteItems
}

func expectAll(m *repoMocks) {
	products, invoices, items, quotes, quoteItems := fixtures()
	m.products.EXPECT().List(gomock.Any()).Return(products, nil)
	m.invoices.EXPECT().List(gomock.Any()).Return(invoices, nil)
	m.invoiceItems.EXPECT().List(gomock.Any()).Return(items, nil)
	m.quotes.EXPECT().List(gomock.Any()).Return(quotes, nil)
	m.quoteItems.EXPECT().List(gomock.Any()).Return(quoteItems, nil)
}

func TestGetDashboard_WithoutDateRange(t *testing.T) {
	svc, m, _ := newTestService(t)
	expectAll(m)

	dashboard, err := svc.GetDashboard(context.Background(), "user-1", nil)
	require.NoError(t, err)

	assert.Nil(t, dashboard.DateRange)
	assert.Equal(t, domain.RevenueAndProfit{Revenue: 100, Cost: 40, Profit: 60}, dashboard.RevenueAndProfit)

	require.Len(t, dashboard.ProductProfitability, 2)
	assert.Equal(t, "P2", dashboard.ProductProfitability[0].Product.ID)
	assert.Equal(t, 60.0, dashboard.ProductProfitability[0].Revenue)

	require.Len(t, dashboard.PendingPayments, 1)
	assert.Equal(t, "F2", dashboard.PendingPayments[0].Invoice.ID)
	assert.Equal(t, 30.0, dashboard.PendingPayments[0].Total)

	assert.Equal(t, map[string]domain.PaymentMethodSummary{
		"Efectivo":                      {Count: 1, Total: 50},
		"Tarjeta":                       {Count: 1, Total: 20},
		domain.UnspecifiedPaymentMethod: {Count: 1, Total: 30},
	}, dashboard.PaymentMethods)

	require.Len(t, dashboard.FrequentCustomers, 1)
	assert.Equal(t, "C1", dashboard.FrequentCustomers[0].CustomerID)
	assert.Equal(t, 3, dashboard.FrequentCustomers[0].InvoiceCount)

	assert.Equal(t, domain.QuoteConversion{Rate: 50, QuotesInRange: 2}, dashboard.QuoteConversion)
	require.Len(t, dashboard.QuotedProductDemand, 2)
	assert.Equal(t, "P2", dashboard.QuotedProductDemand[0].Product.ID)
	assert.Empty(t, dashboard.UnavailableCollections)
}

func TestGetDashboard_UsesCachedDateRange(t *testing.T) {
	svc, m, _ := newTestService(t)
	expectAll(m)

	ctx := context.Background()
	cached := &domain.DateRange{From: timePtr(day(1)), To: timePtr(day(15))}
	require.NoError(t, svc.SetDateRange(ctx, "user-1", cached))

	dashboard, err := svc.GetDashboard(ctx, "user-1", nil)
	require.NoError(t, err)

	require.NotNil(t, dashboard.DateRange)
	assert.True(t, dashboard.DateRange.From.Equal(day(1)))
	assert.Equal(t, 80.0, dashboard.RevenueAndProfit.Revenue)
	assert.NotContains(t, dashboard.PaymentMethods, "Tarjeta")

	// C1 tem só duas faturas no período
	assert.Empty(t, dashboard.FrequentCustomers)
	require.Len(t, dashboard.PendingPayments, 1)
}

func TestGetDashboard_ExplicitDateRangeWins(t *testing.T) {
	svc, m, _ := newTestService(t)
	expectAll(m)

	ctx := context.Background()
	require.NoError(t, svc.SetDateRange(ctx, "user-1", &domain.DateRange{From: timePtr(day(1)), To: timePtr(day(15))}))

	explicit := &domain.DateRange{From: timePtr(day(20)), To: timePtr(day(31))}
	dashboard, err := svc.GetDashboard(ctx, "user-1", explicit)
	require.NoError(t, err)

	assert.Equal(t, 20.0, dashboard.RevenueAndProfit.Revenue)
	assert.Equal(t, domain.QuoteConversion{Rate: 0, QuotesInRange: 0}, dashboard.QuoteConversion)
	assert.Empty(t, dashboard.PendingPayments, "F2 é anterior ao período")
	assert.Empty(t, dashboard.FrequentCustomers)
}

func TestGetDashboard_InvertedRangeYieldsEmptyRangedSections(t *testing.T) {
	svc, m, _ := newTestService(t)
	expectAll(m)

	inverted := &domain.DateRange{From: timePtr(day(20)), To: timePtr(day(1))}
	dashboard, err := svc.GetDashboard(context.Background(), "", inverted)
	require.NoError(t, err)

	assert.Equal(t, domain.RevenueAndProfit{}, dashboard.RevenueAndProfit)
	assert.Empty(t, dashboard.PaymentMethods)
	assert.Empty(t, dashboard.PendingPayments)
	assert.Empty(t, dashboard.FrequentCustomers)
	assert.Equal(t, 0.0, dashboard.QuoteConversion.Rate)
}

func TestGetDashboard_FetchFailureFallsBackToEmpty(t *testing.T) {
	svc, m, _ := newTestService(t)
	products, _, items, quotes, _ := fixtures()

	m.products.EXPECT().List(gomock.Any()).Return(products, nil)
	m.invoices.EXPECT().List(gomock.Any()).Return(nil, errors.New("connection refused"))
	m.invoiceItems.EXPECT().List(gomock.Any()).Return(items, nil)
	m.quotes.EXPECT().List(gomock.Any()).Return(quotes, nil)
	m.quoteItems.EXPECT().List(gomock.Any()).Return(nil, errors.New("timeout"))

	dashboard, err := svc.GetDashboard(context.Background(), "user-1", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{CollectionInvoices, CollectionQuoteItems}, dashboard.UnavailableCollections)
	assert.Empty(t, dashboard.PendingPayments)
	assert.Empty(t, dashboard.PaymentMethods)
	assert.Empty(t, dashboard.FrequentCustomers)
	assert.Empty(t, dashboard.QuotedProductDemand)

	// Seções que não dependem das coleções indisponíveis continuam calculadas
	assert.Equal(t, 100.0, dashboard.RevenueAndProfit.Revenue)
	assert.Equal(t, 50.0, dashboard.QuoteConversion.Rate)
}

func TestSectionGetters(t *testing.T) {
	ctx := context.Background()
	products, invoices, items, _, quoteItems := fixtures()

	t.Run("rentabilidade por produto", func(t *testing.T) {
		svc, m, _ := newTestService(t)
		m.products.EXPECT().List(gomock.Any()).Return(products, nil)
		m.invoiceItems.EXPECT().List(gomock.Any()).Return(items, nil)

		result, err := svc.GetProductProfitability(ctx)
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, 0.6, result[0].Margin)
	})

	t.Run("pagamentos pendentes", func(t *testing.T) {
		svc, m, _ := newTestService(t)
		m.invoices.EXPECT().List(gomock.Any()).Return(invoices, nil)
		m.invoiceItems.EXPECT().List(gomock.Any()).Return(items, nil)

		result, err := svc.GetPendingPayments(ctx, "", nil)
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Len(t, result[0].Items, 1)
	})

	t.Run("clientes frequentes com limite explícito", func(t *testing.T) {
		svc, m, _ := newTestService(t)
		m.invoices.EXPECT().List(gomock.Any()).Return(invoices, nil)

		result, err := svc.GetFrequentCustomers(ctx, "", nil, 4)
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("pagamentos pendentes fora do período salvo", func(t *testing.T) {
		svc, m, _ := newTestService(t)
		m.invoices.EXPECT().List(gomock.Any()).Return(invoices, nil)
		m.invoiceItems.EXPECT().List(gomock.Any()).Return(items, nil)
		require.NoError(t, svc.SetDateRange(ctx, "user-1", &domain.DateRange{From: timePtr(day(20))}))

		result, err := svc.GetPendingPayments(ctx, "user-1", nil)
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("clientes frequentes no período", func(t *testing.T) {
		svc, m, _ := newTestService(t)
		m.invoices.EXPECT().List(gomock.Any()).Return(invoices, nil)

		result, err := svc.GetFrequentCustomers(ctx, "", &domain.DateRange{From: timePtr(day(1)), To: timePtr(day(15))}, 2)
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, 2, result[0].InvoiceCount)
	})

	t.Run("clientes frequentes com limite padrão", func(t *testing.T) {
		svc, m, _ := newTestService(t)
		m.invoices.EXPECT().List(gomock.Any()).Return(invoices, nil)

		result, err := svc.GetFrequentCustomers(ctx, "", nil, -1)
		require.NoError(t, err)
		assert.Len(t, result, 1)
	})

	t.Run("demanda orçada", func(t *testing.T) {
		svc, m, _ := newTestService(t)
		m.quoteItems.EXPECT().List(gomock.Any()).Return(quoteItems, nil)

		result, err := svc.GetQuotedProductDemand(ctx)
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, 120.0, result[0].EstimatedValue)
	})

	t.Run("formas de pagamento no período", func(t *testing.T) {
		svc, m, _ := newTestService(t)
		m.invoices.EXPECT().List(gomock.Any()).Return(invoices, nil)

		result, err := svc.GetPaymentMethodBreakdown(ctx, "", &domain.DateRange{From: timePtr(day(20))})
		require.NoError(t, err)
		assert.Equal(t, map[string]domain.PaymentMethodSummary{"Tarjeta": {Count: 1, Total: 20}}, result)
	})
}

func TestDateRangeLifecycle(t *testing.T) {
	svc, _, store := newTestService(t)
	ctx := context.Background()

	current, err := svc.GetDateRange(ctx, "user-7")
	require.NoError(t, err)
	assert.Nil(t, current)

	require.NoError(t, svc.SetDateRange(ctx, "user-7", &domain.DateRange{From: timePtr(day(1))}))

	current, err = svc.GetDateRange(ctx, "user-7")
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.True(t, current.From.Equal(day(1)))
	assert.Nil(t, current.To)

	sessions, err := store.Sessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"user-7"}, sessions)

	require.NoError(t, svc.ClearDateRange(ctx, "user-7"))
	current, err = svc.GetDateRange(ctx, "user-7")
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestDateRangeValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	err := svc.SetDateRange(ctx, "", &domain.DateRange{From: timePtr(day(1))})
	assert.ErrorIs(t, err, ErrSessionRequired)

	err = svc.SetDateRange(ctx, "user-1", &domain.DateRange{})
	assert.ErrorIs(t, err, ErrDateRangeRequired)

	var dashErr *DashboardError
	require.ErrorAs(t, err, &dashErr)
	assert.Equal(t, "VAL_002", dashErr.Code)

	_, err = svc.GetDateRange(ctx, "")
	assert.ErrorIs(t, err, ErrSessionRequired)
}
