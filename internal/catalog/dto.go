package catalog

// CreateProductRequest is the POST /products payload.
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl" validate:"omitempty,url"`
	Category    string  `json:"category" validate:"max=100"`
	Brand       string  `json:"brand" validate:"max=100"`
	Weight      float64 `json:"weight" validate:"gte=0"`
}

// UpdateProductRequest carries partial updates; nil fields are left
// untouched.
type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=200"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"imageUrl" validate:"omitempty,url"`
	Category    *string  `json:"category" validate:"omitempty,max=100"`
	Brand       *string  `json:"brand" validate:"omitempty,max=100"`
	Weight      *float64 `json:"weight" validate:"omitempty,gte=0"`
}

// ListProductsRequest holds the query filters for GET /products.
type ListProductsRequest struct {
	Search   string
	Category string
	Brand    string
	Page     int
	Limit    int
}
