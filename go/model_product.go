package gomitasserver

import "encoding/json"

// CreateProductRequest - price accepts 12.9 as well as "12.90".
type CreateProductRequest struct {
	Name         string      `json:"name" binding:"required"`
	Flavor       string      `json:"flavor,omitempty"`
	Size         string      `json:"size,omitempty"`
	Price        json.Number `json:"price" binding:"required"`
	InitialStock *int64      `json:"initialStock,omitempty"`
}

// UpdateProductRequest - omitted fields are left unchanged.
type UpdateProductRequest struct {
	Name   *string      `json:"name,omitempty"`
	Flavor *string      `json:"flavor,omitempty"`
	Size   *string      `json:"size,omitempty"`
	Price  *json.Number `json:"price,omitempty"`
}
