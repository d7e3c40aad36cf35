package catalog

import "time"

// Product is a tenant-owned catalog entry. Category and brand are free
// text; the report dimensions group on them verbatim.
type Product struct {
	ID          int64     `json:"id"`
	TenantID    int64     `json:"tenantId"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Category    string    `json:"category,omitempty"`
	Brand       string    `json:"brand,omitempty"`
	Weight      float64   `json:"weight,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
