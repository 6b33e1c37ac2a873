// Package domain contém as estruturas de dados do domínio da aplicação
package domain

type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CostPrice   float64 `json:"cost_price"`
	Available   bool    `json:"available"`
	ImageURL    *string `json:"image_url,omitempty"`
}
