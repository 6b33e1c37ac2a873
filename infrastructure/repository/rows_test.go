package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRow_MissingJoinReturnsNil(t *testing.T) {
	row := productRow{}
	assert.Nil(t, row.toDomain())

	row = productRow{
		ID:        sql.NullString{String: "P1", Valid: true},
		Name:      sql.NullString{String: "Mouse", Valid: true},
		CostPrice: sql.NullFloat64{Float64: 12.5, Valid: true},
	}

	product := row.toDomain()
	require.NotNil(t, product)
	assert.Equal(t, "Mouse", product.Name)
	assert.Equal(t, 12.5, product.CostPrice)
	assert.Nil(t, product.ImageURL)
	assert.False(t, product.Available)
}

func TestInvoiceRow_NullColumnsAreDefaulted(t *testing.T) {
	createdAt := time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC)
	row := invoiceRow{
		ID:        sql.NullString{String: "F1", Valid: true},
		CreatedAt: sql.NullTime{Time: createdAt, Valid: true},
	}

	invoice := row.toDomain()
	require.NotNil(t, invoice)
	assert.Equal(t, createdAt, invoice.CreatedAt)
	assert.Nil(t, invoice.PaymentMethod)
	assert.Equal(t, 0.0, invoice.TotalAmount)
	assert.Empty(t, invoice.CustomerID)
}

func TestQuoteRow_WithoutIDIsDiscarded(t *testing.T) {
	row := quoteRow{Status: sql.NullString{String: "Convertida", Valid: true}}
	assert.Nil(t, row.toDomain())
}
