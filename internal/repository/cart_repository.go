package repository

import (
	"context"
	"errors"
	"fmt"

	"shopql/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// GetAll retrieves all cart items in storage order.
func (r *cartRepository) GetAll(ctx context.Context) ([]model.CartItem, error) {
	query := `
		SELECT id, product_id, quantity
		FROM cart_items
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	items := []model.CartItem{}
	for rows.Next() {
		var item model.CartItem
		if err := rows.Scan(&item.ID, &item.ProductID, &item.Quantity); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart item row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart item rows")
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

// GetByID retrieves a single cart item by its ID.
func (r *cartRepository) GetByID(ctx context.Context, id int64) (*model.CartItem, error) {
	query := `
		SELECT id, product_id, quantity
		FROM cart_items
		WHERE id = $1
	`

	var item model.CartItem
	err := r.pool.QueryRow(ctx, query, id).Scan(&item.ID, &item.ProductID, &item.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("cart_item_id", id).Msg("cart item not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("cart_item_id", id).Msg("failed to query cart item")
		return nil, fmt.Errorf("failed to query cart item: %w", err)
	}

	return &item, nil
}

// Create inserts a new cart item and returns it with its assigned ID.
func (r *cartRepository) Create(ctx context.Context, input model.CartItemInput) (*model.CartItem, error) {
	query := `
		INSERT INTO cart_items (product_id, quantity)
		VALUES ($1, $2)
		RETURNING id, product_id, quantity
	`

	var item model.CartItem
	err := r.pool.QueryRow(ctx, query, input.ProductID, input.Quantity).
		Scan(&item.ID, &item.ProductID, &item.Quantity)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("product_id", input.ProductID).
			Int("quantity", input.Quantity).
			Msg("failed to create cart item")
		return nil, fmt.Errorf("failed to create cart item: %w", err)
	}

	r.logger.Debug().
		Int64("cart_item_id", item.ID).
		Int64("product_id", item.ProductID).
		Msg("cart item created successfully")

	return &item, nil
}

// Delete removes the cart item with the given ID.
func (r *cartRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("cart_item_id", id).Msg("failed to delete cart item")
		return false, fmt.Errorf("failed to delete cart item: %w", err)
	}

	deleted := tag.RowsAffected() > 0
	r.logger.Debug().
		Int64("cart_item_id", id).
		Bool("deleted", deleted).
		Msg("cart item delete executed")

	return deleted, nil
}
