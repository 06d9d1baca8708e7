// Package catalog seeds the product catalogue from gzipped CSV files held on
// the local file system or in S3.
//
// Each file starts with a header row naming the columns name, price and image,
// followed by one product per row.
package catalog

import (
	"context"

	"shopql/internal/model"
)

// Loader defines the interface for loading catalogue seed files.
type Loader interface {
	// Load reads a gzipped CSV seed file and returns its rows in file order.
	Load(ctx context.Context, path string) ([]model.ProductInput, error)
}

// ProductStore is the subset of the product service the seeder writes through.
// CreateBatch must store every row or none.
type ProductStore interface {
	Count(ctx context.Context) (int, error)
	CreateBatch(ctx context.Context, inputs []model.ProductInput) ([]model.Product, error)
}
