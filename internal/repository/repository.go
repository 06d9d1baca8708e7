package repository

import (
	"context"

	"shopql/internal/model"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves all products in storage order.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	// Returns nil without error when no product has that ID.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// Create inserts a new product and returns it with its assigned ID.
	Create(ctx context.Context, input model.ProductInput) (*model.Product, error)

	// CreateBatch inserts every product in one transaction, in input order.
	// Either all rows are stored or none are.
	CreateBatch(ctx context.Context, inputs []model.ProductInput) ([]model.Product, error)

	// Count returns the number of stored products.
	Count(ctx context.Context) (int, error)
}

// CartRepository defines the interface for cart data access operations.
type CartRepository interface {
	// GetAll retrieves all cart items in storage order.
	GetAll(ctx context.Context) ([]model.CartItem, error)

	// GetByID retrieves a single cart item by its ID.
	// Returns nil without error when no cart item has that ID.
	GetByID(ctx context.Context, id int64) (*model.CartItem, error)

	// Create inserts a new cart item and returns it with its assigned ID.
	Create(ctx context.Context, input model.CartItemInput) (*model.CartItem, error)

	// Delete removes the cart item with the given ID.
	// Reports false when no row was deleted.
	Delete(ctx context.Context, id int64) (bool, error)
}
