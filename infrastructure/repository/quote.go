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
	quotesTable = "quotes q"
)

var quoteColumns = []string{
	"q.id",
	"q.created_at",
	"q.status",
	"q.customer_id",
	"qc.name",
}

type QuoteRepository interface {
	List(ctx context.Context) ([]*domain.Quote, error)
}

type quoteRepository struct {
	conn postgres.Queryer
}

func NewQuoteRepository(conn postgres.Queryer) QuoteRepository {
	return &quoteRepository{
		conn: conn,
	}
}

func (r *quoteRepository) List(ctx context.Context) ([]*domain.Quote, error) {
	sqlQuery, args, err := squirrel.
		Select(quoteColumns...).
		From(quotesTable).
		LeftJoin("customers qc ON qc.id = q.customer_id").
		OrderBy("q.created_at DESC").
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

	quotes := make([]*domain.Quote, 0)
	for rows.Next() {
		row := quoteRow{}
		if err := rows.Scan(row.targets()...); err != nil {
			return nil, fmt.Errorf("erro ao escanear orçamento: %w", err)
		}

		quote := row.toDomain()
		if quote == nil {
			logrus.Warn("repository: orçamento sem id ignorado")
			continue
		}

		quotes = append(quotes, quote)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return quotes, nil
}

type quoteRow struct {
	ID           sql.NullString
	CreatedAt    sql.NullTime
	Status       sql.NullString
	CustomerID   sql.NullString
	CustomerName sql.NullString
}

func (q *quoteRow) targets() []any {
	return []any{
		&q.ID,
		&q.CreatedAt,
		&q.Status,
		&q.CustomerID,
		&q.CustomerName,
	}
}

func (q *quoteRow) toDomain() *domain.Quote {
	if !q.ID.Valid || q.ID.String == "" {
		return nil
	}

	return &domain.Quote{
		ID:           q.ID.String,
		CreatedAt:    q.CreatedAt.Time,
		Status:       q.Status.String,
		CustomerID:   q.CustomerID.String,
		CustomerName: q.CustomerName.String,
	}
}
