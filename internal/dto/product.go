package dto

import (
	"time"

	"github.com/saricycle/saricycle_backend/internal/core/domain"
)

// ListProductsParams defines query parameters for listing products.
type ListProductsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// CreateProductRequest defines the data needed to create a catalog product.
type CreateProductRequest struct {
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description"`
	PointsRequired int64  `json:"pointsRequired" binding:"required,gt=0"`
	Stock          int64  `json:"stock" binding:"gte=0"`
	Category       string `json:"category"`
}

// UpdateProductRequest defines the data allowed for updating a product.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateProductRequest struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	PointsRequired *int64  `json:"pointsRequired" binding:"omitempty,gt=0"`
	Stock          *int64  `json:"stock" binding:"omitempty,gte=0"`
	Category       *string `json:"category"`
	IsActive       *bool   `json:"isActive"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID      string    `json:"productID"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	PointsRequired int64     `json:"pointsRequired"`
	Stock          int64     `json:"stock"`
	Category       string    `json:"category,omitempty"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToProductResponse converts a domain.Product to its response DTO
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:      p.ProductID,
		Name:           p.Name,
		Description:    p.Description,
		PointsRequired: p.PointsRequired,
		Stock:          p.Stock,
		Category:       p.Category,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
	}
}

// ToListProductResponse converts a slice of domain.Product to response DTOs
func ToListProductResponse(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i := range products {
		res[i] = ToProductResponse(&products[i])
	}
	return res
}
