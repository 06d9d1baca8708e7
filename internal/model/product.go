package model

// Product represents a sellable item in the catalogue.
type Product struct {
	ID    int64   `json:"id" db:"id"`
	Name  string  `json:"name" db:"name"`
	Price float64 `json:"price" db:"price"`
	Image string  `json:"image" db:"image"`
}

// ProductInput represents the fields required to create a product.
type ProductInput struct {
	Name  string  `json:"name" csv:"name"`
	Price float64 `json:"price" csv:"price"`
	Image string  `json:"image" csv:"image"`
}
