package utils

import (
	"fmt"
	"time"

	"github.com/vfg2006/backoffice-api/internal/domain"
)

// ParseDate converte uma data no formato yyyy-mm-dd. String vazia retorna nil.
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// ParseDateRange monta o filtro de período a partir dos parâmetros da requisição.
// O limite final cobre o dia inteiro. Retorna nil quando nenhum limite foi informado.
func ParseDateRange(fromStr, toStr string) (*domain.DateRange, error) {
	from, err := ParseDate(fromStr)
	if err != nil {
		return nil, fmt.Errorf("data inicial inválida: %w", err)
	}

	to, err := ParseDate(toStr)
	if err != nil {
		return nil, fmt.Errorf("data final inválida: %w", err)
	}

	if from == nil && to == nil {
		return nil, nil
	}

	if to != nil {
		endOfDay := to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		to = &endOfDay
	}

	return &domain.DateRange{From: from, To: to}, nil
}
