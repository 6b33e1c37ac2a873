package domain

import "time"

const (
	QuoteStatusPending   = "Pendiente"
	QuoteStatusConverted = "Convertida"
)

type Quote struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Status       string    `json:"status"`
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name,omitempty"`
}

type QuoteItem struct {
	ID        string   `json:"id"`
	QuoteID   string   `json:"quote_id"`
	ProductID string   `json:"product_id"`
	Quote     *Quote   `json:"-"`
	Product   *Product `json:"product,omitempty"`
	Quantity  float64  `json:"quantity"`
	UnitPrice float64  `json:"unit_price"`
}

func (q *Quote) IsConverted() bool {
	return q.Status == QuoteStatusConverted
}
