// Package repository contém as implementações dos repositórios para acesso aos dados
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
	productsTable = "products p"
)

var productColumns = []string{
	"p.id",
	"p.name",
	"p.description",
	"p.price",
	"p.cost_price",
	"p.available",
	"p.image_url",
}

type ProductRepository interface {
	List(ctx context.Context) ([]*domain.Product, error)
}

type productRepository struct {
	conn postgres.Queryer
}

func NewProductRepository(conn postgres.Queryer) ProductRepository {
	return &productRepository{
		conn: conn,
	}
}

func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	sqlQuery, args, err := squirrel.
		Select(productColumns...).
		From(productsTable).
		OrderBy("p.name ASC").
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

	products := make([]*domain.Product, 0)
	for rows.Next() {
		row := productRow{}
		if err := rows.Scan(row.targets()...); err != nil {
			return nil, fmt.Errorf("erro ao escanear produto: %w", err)
		}

		product := row.toDomain()
		if product == nil {
			logrus.Warn("repository: produto sem id ignorado")
			continue
		}

		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return products, nil
}

// productRow recebe as colunas de produto, que podem vir nulas em LEFT JOINs
type productRow struct {
	ID          sql.NullString
	Name        sql.NullString
	Description sql.NullString
	Price       sql.NullFloat64
	CostPrice   sql.NullFloat64
	Available   sql.NullBool
	ImageURL    sql.NullString
}

func (p *productRow) targets() []any {
	return []any{
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.CostPrice,
		&p.Available,
		&p.ImageURL,
	}
}

// toDomain retorna nil quando o join não encontrou o produto
func (p *productRow) toDomain() *domain.Product {
	if !p.ID.Valid || p.ID.String == "" {
		return nil
	}

	return &domain.Product{
		ID:          p.ID.String,
		Name:        p.Name.String,
		Description: p.Description.String,
		Price:       p.Price.Float64,
		CostPrice:   p.CostPrice.Float64,
		Available:   p.Available.Bool,
		ImageURL:    nullableString(p.ImageURL),
	}
}

func nullableString(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	return &value.String
}
