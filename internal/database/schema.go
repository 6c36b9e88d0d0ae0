package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/matheusmosca/techstore/internal/storefront"
)

const createProducts = `
CREATE TABLE IF NOT EXISTS products (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	price       NUMERIC(10, 2) NOT NULL CHECK (price >= 0),
	description TEXT NOT NULL DEFAULT '',
	image       TEXT NOT NULL DEFAULT '',
	stock       INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
	position    INTEGER NOT NULL DEFAULT 0
)`

const upsertProduct = `
INSERT INTO products (id, name, price, description, image, stock, position)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	price = EXCLUDED.price,
	description = EXCLUDED.description,
	image = EXCLUDED.image,
	stock = EXCLUDED.stock,
	position = EXCLUDED.position`

// SeedCatalog cria a tabela products e grava o catálogo numa única transação
func SeedCatalog(ctx context.Context, db *sql.DB, products []storefront.Product) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, createProducts); err != nil {
		return fmt.Errorf("failed to create products table: %w", err)
	}

	for i, p := range products {
		_, err := tx.ExecContext(ctx, upsertProduct,
			p.ID, p.Name, p.Price.StringFixed(2), p.Description, p.Image, p.Stock, i,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert product %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}
