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

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// GetAll retrieves all products in storage order.
func (r *productRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT id, name, price, image
		FROM products
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Image); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `
		SELECT id, name, price, image
		FROM products
		WHERE id = $1
	`

	var p model.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Price, &p.Image)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// Create inserts a new product and returns it with its assigned ID.
func (r *productRepository) Create(ctx context.Context, input model.ProductInput) (*model.Product, error) {
	query := `
		INSERT INTO products (name, price, image)
		VALUES ($1, $2, $3)
		RETURNING id, name, price, image
	`

	var p model.Product
	err := r.pool.QueryRow(ctx, query, input.Name, input.Price, input.Image).
		Scan(&p.ID, &p.Name, &p.Price, &p.Image)
	if err != nil {
		r.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Int64("product_id", p.ID).Msg("product created successfully")

	return &p, nil
}

// CreateBatch inserts every product in one transaction, in input order.
func (r *productRepository) CreateBatch(ctx context.Context, inputs []model.ProductInput) (products []model.Product, err error) {
	if len(inputs) == 0 {
		return []model.Product{}, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				r.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	query := `
		INSERT INTO products (name, price, image)
		VALUES ($1, $2, $3)
		RETURNING id, name, price, image
	`

	batch := &pgx.Batch{}
	for _, input := range inputs {
		batch.Queue(query, input.Name, input.Price, input.Image)
	}

	products, err = r.scanBatch(tx.SendBatch(ctx, batch), inputs)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Int("count", len(inputs)).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create products: %w", err)
	}

	r.logger.Debug().Int("count", len(products)).Msg("products created successfully")

	return products, nil
}

// scanBatch reads one RETURNING row per queued insert and closes the results.
func (r *productRepository) scanBatch(results pgx.BatchResults, inputs []model.ProductInput) ([]model.Product, error) {
	defer results.Close()

	products := make([]model.Product, 0, len(inputs))
	for i := range inputs {
		var p model.Product
		if err := results.QueryRow().Scan(&p.ID, &p.Name, &p.Price, &p.Image); err != nil {
			r.logger.Error().
				Err(err).
				Int("row", i).
				Str("name", inputs[i].Name).
				Msg("failed to create product")
			return nil, fmt.Errorf("failed to create product %q: %w", inputs[i].Name, err)
		}
		products = append(products, p)
	}

	return products, nil
}

// Count returns the number of stored products.
func (r *productRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}
