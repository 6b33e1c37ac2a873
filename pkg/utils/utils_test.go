package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
	assert.Equal(t, 10.13, RoundWithTwoDecimalPlace(10.125))
	assert.Equal(t, 66.67, RoundWithTwoDecimalPlace(200.0/3.0))
}

func TestParseDateRange(t *testing.T) {
	t.Run("sem parâmetros retorna nil", func(t *testing.T) {
		dateRange, err := ParseDateRange("", "")
		require.NoError(t, err)
		assert.Nil(t, dateRange)
	})

	t.Run("data final cobre o dia inteiro", func(t *testing.T) {
		dateRange, err := ParseDateRange("2024-01-01", "2024-01-31")
		require.NoError(t, err)
		require.NotNil(t, dateRange)

		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *dateRange.From)
		assert.True(t, dateRange.Contains(time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)))
		assert.False(t, dateRange.Contains(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("somente data inicial", func(t *testing.T) {
		dateRange, err := ParseDateRange("2024-03-10", "")
		require.NoError(t, err)
		require.NotNil(t, dateRange)
		assert.Nil(t, dateRange.To)
	})

	t.Run("formato inválido", func(t *testing.T) {
		_, err := ParseDateRange("10/03/2024", "")
		assert.Error(t, err)
	})
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID()
	require.NoError(t, err)
	assert.Len(t, id, idLength)
}
