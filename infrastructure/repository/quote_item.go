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
	quoteItemsTable = "quote_items qi"
)

type QuoteItemRepository interface {
	// List retorna os itens com orçamento e produto via LEFT JOIN
	List(ctx context.Context) ([]*domain.QuoteItem, error)
}

type quoteItemRepository struct {
	conn postgres.Queryer
}

func NewQuoteItemRepository(conn postgres.Queryer) QuoteItemRepository {
	return &quoteItemRepository{
		conn: conn,
	}
}

func (r *quoteItemRepository) List(ctx context.Context) ([]*domain.QuoteItem, error) {
	columns := append([]string{
		"qi.id",
		"qi.quote_id",
		"qi.product_id",
		"qi.quantity",
		"qi.unit_price",
	}, quoteColumns...)
	columns = append(columns, productColumns...)

	sqlQuery, args, err := squirrel.
		Select(columns...).
		From(quoteItemsTable).
		LeftJoin("quotes q ON q.id = qi.quote_id").
		LeftJoin("customers qc ON qc.id = q.customer_id").
		LeftJoin("products p ON p.id = qi.product_id").
		OrderBy("qi.quote_id ASC", "qi.id ASC").
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

	items := make([]*domain.QuoteItem, 0)
	for rows.Next() {
		var (
			id, quoteID, productID sql.NullString
			quantity, unitPrice    sql.NullFloat64
			quote                  quoteRow
			product                productRow
		)

		targets := []any{&id, &quoteID, &productID, &quantity, &unitPrice}
		targets = append(targets, quote.targets()...)
		targets = append(targets, product.targets()...)

		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("erro ao escanear item de orçamento: %w", err)
		}

		if !id.Valid || id.String == "" {
			logrus.Warn("repository: item de orçamento sem id ignorado")
			continue
		}

		items = append(items, &domain.QuoteItem{
			ID:        id.String,
			QuoteID:   quoteID.String,
			ProductID: productID.String,
			Quote:     quote.toDomain(),
			Product:   product.toDomain(),
			Quantity:  quantity.Float64,
			UnitPrice: unitPrice.Float64,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return items, nil
}
