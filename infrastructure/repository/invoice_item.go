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
	invoiceItemsTable = "invoice_items ii"
)

type InvoiceItemRepository interface {
	// List retorna os itens com produto e fatura via LEFT JOIN
	List(ctx context.Context) ([]*domain.InvoiceItem, error)
}

type invoiceItemRepository struct {
	conn postgres.Queryer
}

func NewInvoiceItemRepository(conn postgres.Queryer) InvoiceItemRepository {
	return &invoiceItemRepository{
		conn: conn,
	}
}

func (r *invoiceItemRepository) List(ctx context.Context) ([]*domain.InvoiceItem, error) {
	columns := append([]string{
		"ii.id",
		"ii.invoice_id",
		"ii.product_id",
		"ii.quantity",
		"ii.unit_price",
	}, productColumns...)
	columns = append(columns, invoiceColumns...)

	sqlQuery, args, err := squirrel.
		Select(columns...).
		From(invoiceItemsTable).
		LeftJoin("products p ON p.id = ii.product_id").
		LeftJoin("invoices i ON i.id = ii.invoice_id").
		LeftJoin("customers c ON c.id = i.customer_id").
		OrderBy("ii.invoice_id ASC", "ii.id ASC").
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

	items := make([]*domain.InvoiceItem, 0)
	for rows.Next() {
		var (
			id, invoiceID, productID sql.NullString
			quantity, unitPrice      sql.NullFloat64
			product                  productRow
			invoice                  invoiceRow
		)

		targets := []any{&id, &invoiceID, &productID, &quantity, &unitPrice}
		targets = append(targets, product.targets()...)
		targets = append(targets, invoice.targets()...)

		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("erro ao escanear item de fatura: %w", err)
		}

		if !id.Valid || id.String == "" {
			logrus.Warn("repository: item de fatura sem id ignorado")
			continue
		}

		items = append(items, &domain.InvoiceItem{
			ID:        id.String,
			InvoiceID: invoiceID.String,
			ProductID: productID.String,
			Product:   product.toDomain(),
			Invoice:   invoice.toDomain(),
			Quantity:  quantity.Float64,
			UnitPrice: unitPrice.Float64,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return items, nil
}
