package services

import (
	"context"

	"github.com/saricycle/saricycle_backend/internal/core/domain"
	"github.com/saricycle/saricycle_backend/internal/dto"
)

// ProductSvcFacade manages the redeemable product catalog.
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorID string) (*domain.Product, error)
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, updaterID string) (*domain.Product, error)
	DeactivateProduct(ctx context.Context, productID string, updaterID string) error
}
