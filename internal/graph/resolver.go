package graph

import (
	"context"
	"errors"
	"strconv"

	"shopql/internal/model"
	"shopql/internal/service"

	"github.com/graph-gophers/graphql-go"
	"github.com/rs/zerolog"
)

// Resolver is the root resolver for queries and mutations.
type Resolver struct {
	products service.ProductService
	cart     service.CartService
	logger   zerolog.Logger
}

// NewResolver creates a root resolver backed by the given services.
func NewResolver(products service.ProductService, cart service.CartService, logger zerolog.Logger) *Resolver {
	return &Resolver{
		products: products,
		cart:     cart,
		logger:   logger.With().Str("component", "resolver").Logger(),
	}
}

// Products resolves Query.products.
func (r *Resolver) Products(ctx context.Context) ([]*productResolver, error) {
	products, err := r.products.List(ctx)
	if err != nil {
		return nil, r.clientError(ctx, "products", err)
	}

	out := make([]*productResolver, len(products))
	for i := range products {
		out[i] = &productResolver{product: products[i]}
	}
	return out, nil
}

// Cart resolves Query.cart.
func (r *Resolver) Cart(ctx context.Context) ([]*cartResolver, error) {
	views, err := r.cart.List(ctx)
	if err != nil {
		return nil, r.clientError(ctx, "cart", err)
	}

	out := make([]*cartResolver, len(views))
	for i, v := range views {
		out[i] = &cartResolver{
			item:     v.CartItem,
			product:  v.Product,
			resolved: true,
		}
	}
	return out, nil
}

type addProductArgs struct {
	Name  string
	Price float64
	Image string
}

// AddProduct resolves Mutation.addProduct.
func (r *Resolver) AddProduct(ctx context.Context, args addProductArgs) (*productResolver, error) {
	product, err := r.products.Create(ctx, model.ProductInput{
		Name:  args.Name,
		Price: args.Price,
		Image: args.Image,
	})
	if err != nil {
		return nil, r.clientError(ctx, "addProduct", err)
	}
	return &productResolver{product: *product}, nil
}

type addToCartArgs struct {
	ProductID graphql.ID
	Quantity  int32
}

// AddToCart resolves Mutation.addToCart.
func (r *Resolver) AddToCart(ctx context.Context, args addToCartArgs) (*cartResolver, error) {
	productID, err := parseID(args.ProductID)
	if err != nil {
		r.logger.Debug().Str("product_id", string(args.ProductID)).Msg("rejected product ID")
		return nil, err
	}

	item, err := r.cart.Add(ctx, model.CartItemInput{
		ProductID: productID,
		Quantity:  int(args.Quantity),
	})
	if err != nil {
		return nil, r.clientError(ctx, "addToCart", err)
	}
	return &cartResolver{item: *item, root: r}, nil
}

type removeFromCartArgs struct {
	CartID graphql.ID
}

// RemoveFromCart resolves Mutation.removeFromCart.
func (r *Resolver) RemoveFromCart(ctx context.Context, args removeFromCartArgs) (*cartResolver, error) {
	cartID, err := parseID(args.CartID)
	if err != nil {
		r.logger.Debug().Str("cart_id", string(args.CartID)).Msg("rejected cart ID")
		return nil, err
	}

	item, err := r.cart.Remove(ctx, cartID)
	if err != nil {
		return nil, r.clientError(ctx, "removeFromCart", err)
	}
	return &cartResolver{item: *item, root: r}, nil
}

// clientError passes domain errors through and replaces anything else with
// model.ErrInternal, logging the original.
func (r *Resolver) clientError(ctx context.Context, operation string, err error) error {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}

	logger := zerolog.Ctx(ctx)
	if logger.GetLevel() == zerolog.Disabled {
		logger = &r.logger
	}
	logger.Error().Err(err).Str("operation", operation).Msg("operation failed")

	return model.ErrInternal
}

// parseID converts a GraphQL ID into a store key.
func parseID(id graphql.ID) (int64, error) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil || n <= 0 {
		return 0, model.ErrInvalidID
	}
	return n, nil
}

func formatID(id int64) graphql.ID {
	return graphql.ID(strconv.FormatInt(id, 10))
}

type productResolver struct {
	product model.Product
}

func (r *productResolver) ID() graphql.ID { return formatID(r.product.ID) }
func (r *productResolver) Name() string   { return r.product.Name }
func (r *productResolver) Price() float64 { return r.product.Price }
func (r *productResolver) Image() string  { return r.product.Image }

// cartResolver resolves a Cart. Lines read through Query.cart arrive with their
// product already joined; lines returned by mutations look it up on demand.
type cartResolver struct {
	item     model.CartItem
	product  *model.Product
	resolved bool
	root     *Resolver
}

func (r *cartResolver) ID() graphql.ID        { return formatID(r.item.ID) }
func (r *cartResolver) ProductID() graphql.ID { return formatID(r.item.ProductID) }
func (r *cartResolver) Quantity() int32       { return int32(r.item.Quantity) }

func (r *cartResolver) Product(ctx context.Context) (*productResolver, error) {
	product := r.product
	if !r.resolved {
		var err error
		product, err = r.root.products.GetByID(ctx, r.item.ProductID)
		if err != nil {
			return nil, r.root.clientError(ctx, "cart.product", err)
		}
	}

	if product == nil {
		return nil, nil
	}
	return &productResolver{product: *product}, nil
}
