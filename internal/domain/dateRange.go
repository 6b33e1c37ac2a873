package domain

import "time"

// DateRange é o filtro de período do dashboard. Limites nil são abertos.
type DateRange struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// Contains indica se a data está dentro do período (limites inclusivos).
// Um período com From depois de To não contém nenhuma data.
func (r *DateRange) Contains(t time.Time) bool {
	if r == nil {
		return true
	}

	if r.From != nil && t.Before(*r.From) {
		return false
	}

	if r.To != nil && t.After(*r.To) {
		return false
	}

	return true
}

// IsInverted indica se o período tem From posterior a To
func (r *DateRange) IsInverted() bool {
	return r != nil && r.From != nil && r.To != nil && r.From.After(*r.To)
}

// IsEmpty indica se nenhum limite foi informado
func (r *DateRange) IsEmpty() bool {
	return r == nil || (r.From == nil && r.To == nil)
}

// MonthRange retorna o período que cobre o mês inteiro da data informada
func MonthRange(date time.Time) *DateRange {
	from := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	return &DateRange{From: &from, To: &to}
}
