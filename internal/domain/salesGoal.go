package domain

import "time"

// SalesGoalGrowthFactor é o multiplicador aplicado à receita do mês anterior
// para gerar a meta automática (10% acima do mês anterior)
const SalesGoalGrowthFactor = 1.10

type SalesGoal struct {
	Amount        float64 `json:"amount"`
	Month         int     `json:"month"`
	Year          int     `json:"year"`
	IsManuallySet bool    `json:"is_manually_set"`
}

// IsFor indica se a meta pertence ao mês calendário da data informada
func (g *SalesGoal) IsFor(date time.Time) bool {
	return g != nil && g.Month == int(date.Month()) && g.Year == date.Year()
}
