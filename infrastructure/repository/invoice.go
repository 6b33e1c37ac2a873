package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/backoffice-api/infrastructure/database/postgres"
	"github.com/vfg2006/backoffice-api/internal/domain"
)

const (
	invoicesTable = "invoices i"
)

var invoiceColumns = []string{
	"i.id",
	"i.created_at",
	"i.payment_status",
	"i.payment_method",
	"i.customer_id",
	"c.name",
	"i.total_amount",
}

type InvoiceRepository interface {
	List(ctx context.Context) ([]*domain.Invoice, error)
}

type invoiceRepository struct {
	conn postgres.Queryer
}

func NewInvoiceRepository(conn postgres.Queryer) InvoiceRepository {
	return &invoiceRepository{
		conn: conn,
	}
}

func (r *invoiceRepository) List(ctx context.Context) ([]*domain.Invoice, error) {
	sqlQuery, args, err := squirrel.
		Select(invoiceColumns...).
		From(invoicesTable).
		LeftJoin("customers c ON c.id = i.customer_id").
		OrderBy("i.created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	invoices := make([]*domain.Invoice, 0)
	for rows.Next() {
		row := invoiceRow{}
		if err := rows.Scan(row.targets()...); err != nil {
			return nil, fmt.Errorf("erro ao escanear fatura: %w", err)
		}

		invoice := row.toDomain()
		if invoice == nil {
			logrus.Warn("repository: fatura sem id ignorada")
			continue
		}

		invoices = append(invoices, invoice)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return invoices, nil
}

type invoiceRow struct {
	ID            sql.NullString
	CreatedAt     sql.NullTime
	PaymentStatus sql.NullString
	PaymentMethod sql.NullString
	CustomerID    sql.NullString
	CustomerName  sql.NullString
	TotalAmount   sql.NullFloat64
}

func (i *invoiceRow) targets() []any {
	return []any{
		&i.ID,
		&i.CreatedAt,
		&i.PaymentStatus,
		&i.PaymentMethod,
		&i.CustomerID,
		&i.CustomerName,
		&i.TotalAmount,
	}
}

func (i *invoiceRow) toDomain() *domain.Invoice {
	if !i.ID.Valid || i.ID.String == "" {
		return nil
	}

	return &domain.Invoice{
		ID:            i.ID.String,
		CreatedAt:     i.CreatedAt.Time,
		PaymentStatus: i.PaymentStatus.String,
		PaymentMethod: nullableString(i.PaymentMethod),
		CustomerID:    i.CustomerID.String,
		CustomerName:  i.CustomerName.String,
		TotalAmount:   i.TotalAmount.Float64,
	}
}
