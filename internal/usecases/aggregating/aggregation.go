// Package aggregating contém as agregações financeiras do dashboard.
// As funções são puras: recebem as coleções já buscadas no banco e nunca falham.
// Joins ausentes (produto, fatura ou orçamento removidos) são tratados como zero.
package aggregating

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/backoffice-api/internal/domain"
)

// DefaultFrequentCustomerThreshold é a quantidade mínima de faturas para um
// cliente ser considerado frequente
const DefaultFrequentCustomerThreshold = 3

const (
	moneyPlaces  = 2
	marginPlaces = 4
)

var hundred = decimal.NewFromInt(100)

// ComputeRevenueAndProfit soma receita (quantidade x preço de venda) e custo
// (quantidade x preço de custo do produto) dos itens cuja fatura foi criada
// dentro do período. Itens sem produto contam receita e custo zero.
func ComputeRevenueAndProfit(items []*domain.InvoiceItem, dateRange *domain.DateRange) domain.RevenueAndProfit {
	revenue := decimal.Zero
	cost := decimal.Zero

	for _, item := range items {
		if item == nil || !invoiceItemInRange(item, dateRange) {
			continue
		}

		quantity := decimal.NewFromFloat(item.Quantity)
		revenue = revenue.Add(quantity.Mul(decimal.NewFromFloat(item.UnitPrice)))

		if item.Product != nil {
			cost = cost.Add(quantity.Mul(decimal.NewFromFloat(item.Product.CostPrice)))
		}
	}

	return domain.RevenueAndProfit{
		Revenue: money(revenue),
		Cost:    money(cost),
		Profit:  money(revenue.Sub(cost)),
	}
}

// productTotals acumula os valores de um produto durante o agrupamento
type productTotals struct {
	product  domain.Product
	quantity decimal.Decimal
	revenue  decimal.Decimal
	cost     decimal.Decimal
}

// ComputeProductProfitability agrupa os itens de fatura por produto.
// Produtos sem vendas aparecem zerados e itens de produtos fora do catálogo
// ganham sua própria linha, então a soma das unidades sempre bate com os itens.
func ComputeProductProfitability(products []*domain.Product, items []*domain.InvoiceItem) []domain.ProductProfitability {
	totals := make(map[string]*productTotals, len(products))

	for _, product := range products {
		if product == nil || product.ID == "" {
			continue
		}
		totals[product.ID] = newProductTotals(*product)
	}

	for _, item := range items {
		if item == nil {
			continue
		}

		productID := itemProductID(item.ProductID, item.Product)
		entry, exists := totals[productID]
		if !exists {
			entry = newProductTotals(joinedProduct(productID, item.Product))
			totals[productID] = entry
		}

		quantity := decimal.NewFromFloat(item.Quantity)
		entry.quantity = entry.quantity.Add(quantity)
		entry.revenue = entry.revenue.Add(quantity.Mul(decimal.NewFromFloat(item.UnitPrice)))

		costPrice := entry.product.CostPrice
		if item.Product != nil {
			costPrice = item.Product.CostPrice
		}
		entry.cost = entry.cost.Add(quantity.Mul(decimal.NewFromFloat(costPrice)))
	}

	result := make([]domain.ProductProfitability, 0, len(totals))
	for _, entry := range totals {
		margin := decimal.Zero
		if !entry.revenue.IsZero() {
			margin = entry.revenue.Sub(entry.cost).Div(entry.revenue)
		}

		result = append(result, domain.ProductProfitability{
			Product:   entry.product,
			UnitsSold: entry.quantity.InexactFloat64(),
			Revenue:   money(entry.revenue),
			Cost:      money(entry.cost),
			Margin:    margin.Round(marginPlaces).InexactFloat64(),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return byValueThenName(
			result[i].Revenue, result[j].Revenue,
			result[i].Product, result[j].Product,
		)
	})

	return result
}

// ComputePendingPayments retorna as faturas pendentes com seus itens, da mais
// recente para a mais antiga. Faturas criadas no mesmo instante mantêm a ordem
// de entrada. O total é a soma dos itens, ou o total gravado na fatura quando
// ela não tem itens.
func ComputePendingPayments(invoices []*domain.Invoice, items []*domain.InvoiceItem) []domain.PendingPayment {
	itemsByInvoice := make(map[string][]*domain.InvoiceItem)
	for _, item := range items {
		if item == nil || item.InvoiceID == "" {
			continue
		}
		itemsByInvoice[item.InvoiceID] = append(itemsByInvoice[item.InvoiceID], item)
	}

	result := make([]domain.PendingPayment, 0)
	for _, invoice := range invoices {
		if invoice == nil || invoice.ID == "" || !invoice.IsPending() {
			continue
		}

		invoiceItems := itemsByInvoice[invoice.ID]
		if invoiceItems == nil {
			invoiceItems = []*domain.InvoiceItem{}
		}

		total := decimal.NewFromFloat(invoice.TotalAmount)
		if len(invoiceItems) > 0 {
			total = sumItems(invoiceItems)
		}

		result = append(result, domain.PendingPayment{
			Invoice: *invoice,
			Items:   invoiceItems,
			Total:   money(total),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Invoice.CreatedAt.After(result[j].Invoice.CreatedAt)
	})

	return result
}

// ComputePaymentMethodBreakdown agrupa as faturas por forma de pagamento.
// Faturas sem forma de pagamento vão para domain.UnspecifiedPaymentMethod.
func ComputePaymentMethodBreakdown(invoices []*domain.Invoice) map[string]domain.PaymentMethodSummary {
	counts := make(map[string]int)
	totals := make(map[string]decimal.Decimal)

	for _, invoice := range invoices {
		if invoice == nil {
			continue
		}

		method := domain.UnspecifiedPaymentMethod
		if invoice.PaymentMethod != nil && strings.TrimSpace(*invoice.PaymentMethod) != "" {
			method = strings.TrimSpace(*invoice.PaymentMethod)
		}

		counts[method]++
		totals[method] = totals[method].Add(decimal.NewFromFloat(invoice.TotalAmount))
	}

	result := make(map[string]domain.PaymentMethodSummary, len(counts))
	for method, count := range counts {
		result[method] = domain.PaymentMethodSummary{
			Count: count,
			Total: money(totals[method]),
		}
	}

	return result
}

// ComputeFrequentCustomers retorna os clientes com pelo menos threshold faturas,
// ordenados por quantidade de faturas, depois por valor gasto (ambos decrescentes)
// e por fim pelo identificador do cliente.
func ComputeFrequentCustomers(invoices []*domain.Invoice, threshold int) []domain.FrequentCustomer {
	type customerTotals struct {
		name  string
		count int
		spent decimal.Decimal
	}

	customers := make(map[string]*customerTotals)
	for _, invoice := range invoices {
		if invoice == nil || invoice.CustomerID == "" {
			continue
		}

		entry, exists := customers[invoice.CustomerID]
		if !exists {
			entry = &customerTotals{spent: decimal.Zero}
			customers[invoice.CustomerID] = entry
		}

		if entry.name == "" {
			entry.name = invoice.CustomerName
		}
		entry.count++
		entry.spent = entry.spent.Add(decimal.NewFromFloat(invoice.TotalAmount))
	}

	result := make([]domain.FrequentCustomer, 0)
	for customerID, entry := range customers {
		if entry.count < threshold {
			continue
		}

		result = append(result, domain.FrequentCustomer{
			CustomerID:   customerID,
			CustomerName: entry.name,
			InvoiceCount: entry.count,
			TotalSpent:   money(entry.spent),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].InvoiceCount != result[j].InvoiceCount {
			return result[i].InvoiceCount > result[j].InvoiceCount
		}
		if result[i].TotalSpent != result[j].TotalSpent {
			return result[i].TotalSpent > result[j].TotalSpent
		}
		return result[i].CustomerID < result[j].CustomerID
	})

	return result
}

// ComputeQuoteConversionRate retorna o percentual de orçamentos convertidos
// dentro do período. Sem orçamentos no período a taxa é 0; use
// CountQuotesInRange para diferenciar "sem dados" de "0% de conversão".
func ComputeQuoteConversionRate(quotes []*domain.Quote, dateRange *domain.DateRange) float64 {
	total, converted := 0, 0
	for _, quote := range quotes {
		if quote == nil || !dateRange.Contains(quote.CreatedAt) {
			continue
		}

		total++
		if quote.IsConverted() {
			converted++
		}
	}

	if total == 0 {
		return 0
	}

	rate := decimal.NewFromInt(int64(converted)).Mul(hundred).Div(decimal.NewFromInt(int64(total)))
	return money(rate)
}

// CountQuotesInRange conta os orçamentos criados dentro do período
func CountQuotesInRange(quotes []*domain.Quote, dateRange *domain.DateRange) int {
	count := 0
	for _, quote := range quotes {
		if quote != nil && dateRange.Contains(quote.CreatedAt) {
			count++
		}
	}
	return count
}

// ComputeQuotedProductDemand agrupa os itens de orçamento por produto com a
// quantidade orçada e o valor estimado, com o mesmo agrupamento e ordem da
// rentabilidade. Itens sem produto ficam na linha de id vazio.
func ComputeQuotedProductDemand(items []*domain.QuoteItem) []domain.QuotedProductDemand {
	totals := make(map[string]*productTotals)

	for _, item := range items {
		if item == nil {
			continue
		}

		productID := itemProductID(item.ProductID, item.Product)
		entry, exists := totals[productID]
		if !exists {
			entry = newProductTotals(joinedProduct(productID, item.Product))
			totals[productID] = entry
		}

		quantity := decimal.NewFromFloat(item.Quantity)
		entry.quantity = entry.quantity.Add(quantity)
		entry.revenue = entry.revenue.Add(quantity.Mul(decimal.NewFromFloat(item.UnitPrice)))
	}

	result := make([]domain.QuotedProductDemand, 0, len(totals))
	for _, entry := range totals {
		result = append(result, domain.QuotedProductDemand{
			Product:        entry.product,
			QuantityQuoted: entry.quantity.InexactFloat64(),
			EstimatedValue: money(entry.revenue),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return byValueThenName(
			result[i].EstimatedValue, result[j].EstimatedValue,
			result[i].Product, result[j].Product,
		)
	})

	return result
}

// FilterInvoices retorna as faturas criadas dentro do período
func FilterInvoices(invoices []*domain.Invoice, dateRange *domain.DateRange) []*domain.Invoice {
	if dateRange.IsEmpty() {
		return invoices
	}

	filtered := make([]*domain.Invoice, 0, len(invoices))
	for _, invoice := range invoices {
		if invoice != nil && dateRange.Contains(invoice.CreatedAt) {
			filtered = append(filtered, invoice)
		}
	}
	return filtered
}

// invoiceItemInRange só aceita itens sem fatura quando não há filtro de período
func invoiceItemInRange(item *domain.InvoiceItem, dateRange *domain.DateRange) bool {
	if dateRange.IsEmpty() {
		return true
	}

	if item.Invoice == nil {
		return false
	}

	return dateRange.Contains(item.Invoice.CreatedAt)
}

func sumItems(items []*domain.InvoiceItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(decimal.NewFromFloat(item.Quantity).Mul(decimal.NewFromFloat(item.UnitPrice)))
	}
	return total
}

func newProductTotals(product domain.Product) *productTotals {
	return &productTotals{
		product:  product,
		quantity: decimal.Zero,
		revenue:  decimal.Zero,
		cost:     decimal.Zero,
	}
}

func itemProductID(productID string, product *domain.Product) string {
	if productID == "" && product != nil {
		return product.ID
	}
	return productID
}

func joinedProduct(productID string, product *domain.Product) domain.Product {
	if product == nil {
		return domain.Product{ID: productID}
	}

	joined := *product
	joined.ID = productID
	return joined
}

func byValueThenName(valueI, valueJ float64, productI, productJ domain.Product) bool {
	if valueI != valueJ {
		return valueI > valueJ
	}
	if productI.Name != productJ.Name {
		return productI.Name < productJ.Name
	}
	return productI.ID < productJ.ID
}

func money(value decimal.Decimal) float64 {
	return value.Round(moneyPlaces).InexactFloat64()
}
