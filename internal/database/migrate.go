package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Schema is the DDL for the products and cart tables.
// cart_items.product_id carries no foreign key: cart lines may reference
// products that do not exist.
const Schema = `
	CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		price DOUBLE PRECISION NOT NULL,
		image TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS cart_items (
		id BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL,
		quantity INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_cart_items_product_id ON cart_items(product_id);
`

// Migrate creates the tables if they do not exist.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		logger.Error().Err(err).Msg("failed to apply database schema")
		return fmt.Errorf("failed to apply database schema: %w", err)
	}

	logger.Info().Msg("database schema applied")

	return nil
}
