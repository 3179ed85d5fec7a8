package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// migrations sentencias idempotentes aplicadas en orden al arrancar.
// El nombre registra qué migración ya corrió (tabla migrations).
var migrations = []struct {
	name string
	sql  string
}{
	{
		name: "001_create_users",
		sql: `CREATE TABLE IF NOT EXISTS users (
			id            UUID PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			name          TEXT NOT NULL,
			role          TEXT NOT NULL DEFAULT 'cajero',
			status        TEXT NOT NULL DEFAULT 'active',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	},
	{
		name: "002_create_categories",
		sql: `CREATE TABLE IF NOT EXISTS categories (
			id          UUID PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	},
	{
		name: "003_create_products",
		sql: `CREATE TABLE IF NOT EXISTS products (
			id          UUID PRIMARY KEY,
			category_id UUID REFERENCES categories(id),
			sku         TEXT NOT NULL UNIQUE,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price       NUMERIC(12,2) NOT NULL,
			stock       INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	},
	{
		name: "004_create_customers",
		sql: `CREATE TABLE IF NOT EXISTS customers (
			id         UUID PRIMARY KEY,
			name       TEXT NOT NULL,
			email      TEXT NOT NULL DEFAULT '',
			phone      TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	},
	{
		name: "005_create_sales",
		sql: `CREATE TABLE IF NOT EXISTS sales (
			id           UUID PRIMARY KEY,
			user_id      UUID NOT NULL REFERENCES users(id),
			customer_id  UUID REFERENCES customers(id),
			total        NUMERIC(12,2) NOT NULL CHECK (total >= 0),
			discount     NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (discount >= 0),
			payment_type TEXT NOT NULL DEFAULT 'CASH',
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	},
	{
		name: "006_create_sale_items",
		sql: `CREATE TABLE IF NOT EXISTS sale_items (
			id         UUID PRIMARY KEY,
			sale_id    UUID NOT NULL REFERENCES sales(id),
			product_id UUID NOT NULL REFERENCES products(id),
			quantity   INTEGER NOT NULL CHECK (quantity > 0),
			price      NUMERIC(12,2) NOT NULL
		)`,
	},
	{
		name: "007_index_sales_created_at",
		sql:  `CREATE INDEX IF NOT EXISTS idx_sales_user_created ON sales (user_id, created_at DESC)`,
	},
}

// RunMigrations aplica las migraciones pendientes sobre el pool.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS migrations (
			id         SERIAL PRIMARY KEY,
			name       TEXT NOT NULL UNIQUE,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("crear tabla migrations: %w", err)
	}

	applied := make(map[string]bool)
	rows, err := pool.Query(ctx, `SELECT name FROM migrations`)
	if err != nil {
		return fmt.Errorf("leer migraciones aplicadas: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scan migración: %w", err)
		}
		applied[name] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.name] {
			continue
		}
		if _, err := pool.Exec(ctx, m.sql); err != nil {
			return fmt.Errorf("aplicar %s: %w", m.name, err)
		}
		if _, err := pool.Exec(ctx, `INSERT INTO migrations (name) VALUES ($1)`, m.name); err != nil {
			return fmt.Errorf("registrar %s: %w", m.name, err)
		}
	}
	return nil
}
