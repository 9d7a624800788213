package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/saricycle/saricycle_backend/internal/core/domain"
	portsrepo "github.com/saricycle/saricycle_backend/internal/core/ports/repositories"
	portssvc "github.com/saricycle/saricycle_backend/internal/core/ports/services"
	"github.com/saricycle/saricycle_backend/internal/dto"
	"github.com/saricycle/saricycle_backend/internal/middleware"
)

// ProductService manages the redeemable product catalog.
type ProductService struct {
	productRepo portsrepo.ProductRepositoryFacade
}

func NewProductService(productRepo portsrepo.ProductRepositoryFacade) *ProductService {
	return &ProductService{productRepo: productRepo}
}

var _ portssvc.ProductSvcFacade = (*ProductService)(nil)

// CreateProduct adds a new catalog item.
func (s *ProductService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorID string) (*domain.Product, error) {
	now := time.Now()
	product := domain.Product{
		ProductID:      uuid.NewString(),
		Name:           req.Name,
		Description:    req.Description,
		PointsRequired: req.PointsRequired,
		Stock:          req.Stock,
		Category:       req.Category,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}
	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}
	middleware.GetLoggerFromCtx(ctx).Info("created product", "productID", product.ProductID, "name", product.Name)
	return &product, nil
}

// GetProductByID retrieves a single product.
func (s *ProductService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	return s.productRepo.FindProductByID(ctx, productID)
}

// ListProducts retrieves one page of active products.
func (s *ProductService) ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.productRepo.ListProducts(ctx, limit, offset)
}

// UpdateProduct applies the provided fields; nil fields are left unchanged.
func (s *ProductService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, updaterID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.PointsRequired != nil {
		product.PointsRequired = *req.PointsRequired
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	product.LastUpdatedAt = time.Now()
	product.LastUpdatedBy = updaterID

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeactivateProduct hides a product from the catalog without removing it.
func (s *ProductService) DeactivateProduct(ctx context.Context, productID string, updaterID string) error {
	return s.productRepo.DeactivateProduct(ctx, productID, updaterID, time.Now())
}
