package domain

import "time"

const (
	PaymentStatusPending = "Pendiente"
	PaymentStatusPaid    = "Pagada"
)

type Invoice struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	PaymentStatus string    `json:"payment_status"`
	PaymentMethod *string   `json:"payment_method,omitempty"`
	CustomerID    string    `json:"customer_id"`
	CustomerName  string    `json:"customer_name,omitempty"`
	TotalAmount   float64   `json:"total_amount"`
}

// InvoiceItem é uma linha de fatura. Product e Invoice são joins opcionais:
// nil significa que o registro relacionado não existe mais no banco.
type InvoiceItem struct {
	ID        string   `json:"id"`
	InvoiceID string   `json:"invoice_id"`
	ProductID string   `json:"product_id"`
	Product   *Product `json:"product,omitempty"`
	Invoice   *Invoice `json:"-"`
	Quantity  float64  `json:"quantity"`
	UnitPrice float64  `json:"unit_price"`
}

// IsPending indica se a fatura ainda aguarda pagamento
func (i *Invoice) IsPending() bool {
	return i.PaymentStatus == PaymentStatusPending
}
