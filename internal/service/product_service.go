package service

import (
	"context"
	"fmt"

	"shopql/internal/model"
	"shopql/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves every product in storage order.
func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().Int("count", len(products)).Msg("retrieved products")

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// Create stores a new product. Fields are persisted as given; the price is not range checked.
func (s *productService) Create(ctx context.Context, input model.ProductInput) (*model.Product, error) {
	product, err := s.productRepo.Create(ctx, input)
	if err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Int64("product_id", product.ID).
		Str("name", product.Name).
		Msg("product created")

	return product, nil
}

// CreateBatch stores every product in one transaction, or none of them.
func (s *productService) CreateBatch(ctx context.Context, inputs []model.ProductInput) ([]model.Product, error) {
	products, err := s.productRepo.CreateBatch(ctx, inputs)
	if err != nil {
		s.logger.Error().Err(err).Int("count", len(inputs)).Msg("failed to create products")
		return nil, fmt.Errorf("failed to create products: %w", err)
	}

	s.logger.Info().Int("count", len(products)).Msg("products created")

	return products, nil
}

// Count returns the number of products in the catalogue.
func (s *productService) Count(ctx context.Context) (int, error) {
	count, err := s.productRepo.Count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}
