package service

import (
	"context"

	"shopql/internal/model"
)

// ProductService defines operations for product management.
type ProductService interface {
	// List retrieves every product in storage order.
	List(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	// Returns nil without error when the product does not exist.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// Create stores a new product.
	Create(ctx context.Context, input model.ProductInput) (*model.Product, error)

	// CreateBatch stores every product or none of them.
	CreateBatch(ctx context.Context, inputs []model.ProductInput) ([]model.Product, error)

	// Count returns the number of products in the catalogue.
	Count(ctx context.Context) (int, error)
}

// CartService defines operations for cart management.
type CartService interface {
	// List retrieves every cart line joined with its product.
	List(ctx context.Context) ([]model.CartView, error)

	// Add stores a new cart line. The product reference is not checked.
	Add(ctx context.Context, input model.CartItemInput) (*model.CartItem, error)

	// Remove deletes a cart line and returns it as it was before deletion.
	Remove(ctx context.Context, id int64) (*model.CartItem, error)
}
