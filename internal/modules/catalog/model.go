package catalog

import "time"

// Product is an item sold at the counter. Stock is decremented by completed
// sales and clamped at zero; prices are whole FCFA amounts.
type Product struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Category  string    `json:"category" bson:"category"`
	Price     int64     `json:"price" bson:"price"`
	Stock     int64     `json:"stock" bson:"stock"`
	Desc      string    `json:"desc,omitempty" bson:"desc,omitempty"`
	Image     string    `json:"image,omitempty" bson:"image,omitempty"`
	Active    bool      `json:"active" bson:"active"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// CreateProductRequest holds the data for adding a product to the catalog.
type CreateProductRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int64  `json:"price"`
	Stock    int64  `json:"stock"`
	Desc     string `json:"desc"`
	Image    string `json:"image"`
}

// UpdateProductRequest holds the updatable fields; nil fields are left as-is.
type UpdateProductRequest struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	Price    *int64  `json:"price,omitempty"`
	Stock    *int64  `json:"stock,omitempty"`
	Desc     *string `json:"desc,omitempty"`
	Image    *string `json:"image,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}
