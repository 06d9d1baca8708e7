package service

import (
	"context"
	"fmt"

	"shopql/internal/model"
	"shopql/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// cartService implements CartService.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	// maxLookups bounds concurrent product lookups during List; zero means unbounded.
	maxLookups int
	logger     zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	maxLookups int,
	logger zerolog.Logger,
) CartService {
	if maxLookups < 0 {
		maxLookups = 0
	}

	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		maxLookups:  maxLookups,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// List retrieves every cart line joined with its product.
//
// Product lookups run concurrently and each result is written to the slot of
// its cart line, so the output order is the storage order of the cart. A line
// whose product does not exist is returned with a nil Product. Any lookup
// failure fails the whole read.
func (s *cartService) List(ctx context.Context) ([]model.CartView, error) {
	items, err := s.cartRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list cart items")
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}

	views := make([]model.CartView, len(items))
	g, gctx := errgroup.WithContext(ctx)
	if s.maxLookups > 0 {
		g.SetLimit(s.maxLookups)
	}

	for i := range items {
		g.Go(func() error {
			item := items[i]

			product, err := s.productRepo.GetByID(gctx, item.ProductID)
			if err != nil {
				return fmt.Errorf("failed to get product %d for cart item %d: %w", item.ProductID, item.ID, err)
			}

			if product == nil {
				s.logger.Warn().
					Int64("cart_item_id", item.ID).
					Int64("product_id", item.ProductID).
					Msg("cart item references missing product")
			}

			views[i] = model.CartView{
				CartItem: item,
				Product:  product,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Int("item_count", len(items)).Msg("failed to resolve cart products")
		return nil, fmt.Errorf("failed to resolve cart: %w", err)
	}

	s.logger.Debug().Int("count", len(views)).Msg("retrieved cart")

	return views, nil
}

// Add stores a new cart line. The product reference is not checked.
func (s *cartService) Add(ctx context.Context, input model.CartItemInput) (*model.CartItem, error) {
	if input.Quantity <= 0 {
		s.logger.Warn().
			Int64("product_id", input.ProductID).
			Int("quantity", input.Quantity).
			Msg("invalid quantity")
		return nil, model.ErrInvalidQuantity
	}

	item, err := s.cartRepo.Create(ctx, input)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("product_id", input.ProductID).
			Msg("failed to add cart item")
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	s.logger.Info().
		Int64("cart_item_id", item.ID).
		Int64("product_id", item.ProductID).
		Int("quantity", item.Quantity).
		Msg("cart item added")

	return item, nil
}

// Remove deletes a cart line and returns it as it was before deletion.
// Returns model.ErrCartItemNotFound when the line does not exist.
func (s *cartService) Remove(ctx context.Context, id int64) (*model.CartItem, error) {
	item, err := s.cartRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("cart_item_id", id).Msg("failed to look up cart item")
		return nil, fmt.Errorf("failed to remove from cart: %w", err)
	}

	if item == nil {
		s.logger.Debug().Int64("cart_item_id", id).Msg("cart item not found")
		return nil, model.ErrCartItemNotFound
	}

	deleted, err := s.cartRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("cart_item_id", id).Msg("failed to delete cart item")
		return nil, fmt.Errorf("failed to remove from cart: %w", err)
	}

	// Another request removed it between the lookup and the delete.
	if !deleted {
		s.logger.Debug().Int64("cart_item_id", id).Msg("cart item already removed")
		return nil, model.ErrCartItemNotFound
	}

	s.logger.Info().Int64("cart_item_id", id).Msg("cart item removed")

	return item, nil
}
