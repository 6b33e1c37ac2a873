// Script de migração: cria o schema do back-office e popula dados iniciais.
//
//	go run ./infrastructure/migration/script
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/vfg2006/backoffice-api/infrastructure/database/postgres"
	"github.com/vfg2006/backoffice-api/internal/config"
	"github.com/vfg2006/backoffice-api/internal/domain"
)

const (
	idLength   = 12
	characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id         VARCHAR(32) PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT,
		phone      TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id          VARCHAR(32) PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT,
		price       NUMERIC(12,2) NOT NULL DEFAULT 0,
		cost_price  NUMERIC(12,2) NOT NULL DEFAULT 0,
		available   BOOLEAN NOT NULL DEFAULT TRUE,
		image_url   TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id             VARCHAR(32) PRIMARY KEY,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		payment_status TEXT NOT NULL DEFAULT 'Pendiente',
		payment_method TEXT,
		customer_id    VARCHAR(32) REFERENCES customers(id) ON DELETE SET NULL,
		total_amount   NUMERIC(12,2) NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS invoice_items (
		id         VARCHAR(32) PRIMARY KEY,
		invoice_id VARCHAR(32) REFERENCES invoices(id) ON DELETE CASCADE,
		product_id VARCHAR(32) REFERENCES products(id) ON DELETE SET NULL,
		quantity   NUMERIC(12,3) NOT NULL DEFAULT 0,
		unit_price NUMERIC(12,2) NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS quotes (
		id          VARCHAR(32) PRIMARY KEY,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		status      TEXT NOT NULL DEFAULT 'Pendiente',
		customer_id VARCHAR(32) REFERENCES customers(id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS quote_items (
		id         VARCHAR(32) PRIMARY KEY,
		quote_id   VARCHAR(32) REFERENCES quotes(id) ON DELETE CASCADE,
		product_id VARCHAR(32) REFERENCES products(id) ON DELETE SET NULL,
		quantity   NUMERIC(12,3) NOT NULL DEFAULT 0,
		unit_price NUMERIC(12,2) NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            SERIAL PRIMARY KEY,
		name          TEXT NOT NULL,
		lastname      TEXT NOT NULL DEFAULT '',
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		active        BOOLEAN NOT NULL DEFAULT TRUE,
		role_id       INT NOT NULL DEFAULT 2,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_created_at ON invoices (created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_invoice_items_invoice_id ON invoice_items (invoice_id)`,
	`CREATE INDEX IF NOT EXISTS idx_quotes_created_at ON quotes (created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_quote_items_quote_id ON quote_items (quote_id)`,
}

type seedProduct struct {
	Name      string
	Price     float64
	CostPrice float64
}

var catalogue = []seedProduct{
	{Name: "Café molido 500g", Price: 8.50, CostPrice: 4.20},
	{Name: "Té verde 20u", Price: 3.90, CostPrice: 1.60},
	{Name: "Taza cerámica", Price: 12.00, CostPrice: 5.75},
	{Name: "Filtro de papel 100u", Price: 2.40, CostPrice: 0.90},
}

func generateID() string {
	id, err := gonanoid.Generate(characters, idLength)
	if err != nil {
		logrus.WithError(err).Fatal("ERRO ao gerar id")
	}
	return id
}

func createSchema(ctx context.Context, tx *sql.Tx) error {
	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("erro no comando %d do schema: %w", i+1, err)
		}
	}
	logrus.Infof("Schema criado (%d comandos)", len(schema))
	return nil
}

func seedAdmin(ctx context.Context, tx *sql.Tx, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("erro ao gerar hash da senha: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO users (name, lastname, email, password_hash, active, role_id)
		 VALUES ($1, $2, $3, $4, TRUE, $5)
		 ON CONFLICT (email) DO NOTHING`,
		"Admin", "Backoffice", email, string(hash), 1,
	)
	if err != nil {
		return fmt.Errorf("erro ao inserir administrador: %w", err)
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		logrus.WithField("email", email).Info("Administrador já existe, mantido")
		return nil
	}

	logrus.WithField("email", email).Info("Administrador criado")
	return nil
}

// seedSample grava um catálogo, um cliente, uma fatura paga, uma pendente e um
// orçamento. Só roda com a tabela de produtos vazia.
func seedSample(ctx context.Context, tx *sql.Tx) error {
	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("erro ao contar produtos: %w", err)
	}
	if count > 0 {
		logrus.Info("Catálogo já populado, dados de exemplo ignorados")
		return nil
	}

	startTime := time.Now()

	productIDs := make([]string, 0, len(catalogue))
	for _, p := range catalogue {
		id := generateID()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO products (id, name, price, cost_price, available) VALUES ($1, $2, $3, $4, TRUE)`,
			id, p.Name, p.Price, p.CostPrice,
		); err != nil {
			return fmt.Errorf("erro ao inserir produto %s: %w", p.Name, err)
		}
		productIDs = append(productIDs, id)
	}

	customerID := generateID()
	if _, err := tx.ExecContext(ctx, `INSERT INTO customers (id, name) VALUES ($1, $2)`, customerID, "Cliente de exemplo"); err != nil {
		return fmt.Errorf("erro ao inserir cliente: %w", err)
	}

	invoices := []struct {
		status string
		method *string
		qty    float64
	}{
		{status: domain.PaymentStatusPaid, method: stringPtr("Efectivo"), qty: 2},
		{status: domain.PaymentStatusPending, qty: 1},
	}
	for _, inv := range invoices {
		invoiceID := generateID()
		total := inv.qty * catalogue[0].Price

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO invoices (id, payment_status, payment_method, customer_id, total_amount) VALUES ($1, $2, $3, $4, $5)`,
			invoiceID, inv.status, inv.method, customerID, total,
		); err != nil {
			return fmt.Errorf("erro ao inserir fatura: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO invoice_items (id, invoice_id, product_id, quantity, unit_price) VALUES ($1, $2, $3, $4, $5)`,
			generateID(), invoiceID, productIDs[0], inv.qty, catalogue[0].Price,
		); err != nil {
			return fmt.Errorf("erro ao inserir item de fatura: %w", err)
		}
	}

	quoteID := generateID()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO quotes (id, status, customer_id) VALUES ($1, $2, $3)`,
		quoteID, domain.QuoteStatusPending, customerID,
	); err != nil {
		return fmt.Errorf("erro ao inserir orçamento: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO quote_items (id, quote_id, product_id, quantity, unit_price) VALUES ($1, $2, $3, $4, $5)`,
		generateID(), quoteID, productIDs[2], 6, catalogue[2].Price,
	); err != nil {
		return fmt.Errorf("erro ao inserir item de orçamento: %w", err)
	}

	logrus.Infof("Dados de exemplo inseridos em %v", time.Since(startTime))
	return nil
}

func stringPtr(s string) *string {
	return &s
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	logrus.Info("Iniciando script de migração...")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("ERRO ao carregar configuração")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("ERRO ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	adminEmail := os.Getenv("SEED_ADMIN_EMAIL")
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	withSample := os.Getenv("SEED_SAMPLE_DATA") == "true"

	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := createSchema(ctx, tx); err != nil {
			return err
		}

		if adminEmail != "" && adminPassword != "" {
			if err := seedAdmin(ctx, tx, adminEmail, adminPassword); err != nil {
				return err
			}
		} else {
			logrus.Warn("SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD não informados, administrador não criado")
		}

		if withSample {
			return seedSample(ctx, tx)
		}
		return nil
	})
	if err != nil {
		logrus.WithError(err).Fatal("ERRO na migração, transação desfeita")
	}

	logrus.Info("Migração concluída com sucesso")
}
