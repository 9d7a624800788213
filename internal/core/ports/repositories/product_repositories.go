package repositories

import (
	"context"
	"time"

	"github.com/saricycle/saricycle_backend/internal/core/domain"
)

// ProductReader defines read operations for the product catalog.
type ProductReader interface {
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error)
}

// ProductWriter defines write operations for the product catalog.
type ProductWriter interface {
	SaveProduct(ctx context.Context, product domain.Product) error
	UpdateProduct(ctx context.Context, product domain.Product) error
	DeactivateProduct(ctx context.Context, productID string, userID string, now time.Time) error

	// DecrementStock conditionally decrements stock by one; it fails with
	// apperrors.ErrOutOfStock when stock is already zero. Not atomic with any
	// ledger operation.
	DecrementStock(ctx context.Context, productID string) error
}

// ProductRepositoryFacade combines all product repository interfaces.
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}
