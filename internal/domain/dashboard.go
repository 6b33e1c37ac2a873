package domain

// UnspecifiedPaymentMethod agrupa faturas sem forma de pagamento informada
const UnspecifiedPaymentMethod = "unspecified"

type RevenueAndProfit struct {
	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
	Profit  float64 `json:"profit"`
}

type ProductProfitability struct {
	Product   Product `json:"product"`
	UnitsSold float64 `json:"units_sold"`
	Revenue   float64 `json:"revenue"`
	Cost      float64 `json:"cost"`
	Margin    float64 `json:"margin"` // (receita - custo) / receita, 0 quando não há receita
}

type PendingPayment struct {
	Invoice Invoice        `json:"invoice"`
	Items   []*InvoiceItem `json:"items"`
	Total   float64        `json:"total"`
}

type PaymentMethodSummary struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

type FrequentCustomer struct {
	CustomerID   string  `json:"customer_id"`
	CustomerName string  `json:"customer_name,omitempty"`
	InvoiceCount int     `json:"invoice_count"`
	TotalSpent   float64 `json:"total_spent"`
}

type QuotedProductDemand struct {
	Product        Product `json:"product"`
	QuantityQuoted float64 `json:"quantity_quoted"`
	EstimatedValue float64 `json:"estimated_value"`
}

type QuoteConversion struct {
	Rate          float64 `json:"rate"`
	QuotesInRange int     `json:"quotes_in_range"`
}

// Dashboard reúne todas as seções do painel financeiro para um período
type Dashboard struct {
	DateRange              *DateRange                      `json:"date_range,omitempty"`
	RevenueAndProfit       RevenueAndProfit                `json:"revenue_and_profit"`
	ProductProfitability   []ProductProfitability          `json:"product_profitability"`
	PendingPayments        []PendingPayment                `json:"pending_payments"`
	PaymentMethods         map[string]PaymentMethodSummary `json:"payment_methods"`
	FrequentCustomers      []FrequentCustomer              `json:"frequent_customers"`
	QuoteConversion        QuoteConversion                 `json:"quote_conversion"`
	QuotedProductDemand    []QuotedProductDemand           `json:"quoted_product_demand"`
	UnavailableCollections []string                        `json:"unavailable_collections,omitempty"`
}
