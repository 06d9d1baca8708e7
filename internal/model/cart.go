package model

// CartItem represents one line in the shopping cart.
// ProductID is not guaranteed to reference an existing product.
type CartItem struct {
	ID        int64 `json:"id" db:"id"`
	ProductID int64 `json:"productId" db:"product_id"`
	Quantity  int   `json:"quantity" db:"quantity"`
}

// CartItemInput represents the fields required to add a cart line.
type CartItemInput struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// CartView is a cart line joined with the product it references at read time.
// Product is nil when the reference is dangling.
type CartView struct {
	CartItem
	Product *Product `json:"product"`
}
