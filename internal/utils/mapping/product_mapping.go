package mapping

import (
	"github.com/saricycle/saricycle_backend/internal/core/domain"
	"github.com/saricycle/saricycle_backend/internal/models"
)

// ToModelProduct converts a domain Product to a model Product
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:      d.ProductID,
		Name:           d.Name,
		Description:    d.Description,
		PointsRequired: d.PointsRequired,
		Stock:          d.Stock,
		Category:       d.Category,
		IsActive:       d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:      m.ProductID,
		Name:           m.Name,
		Description:    m.Description,
		PointsRequired: m.PointsRequired,
		Stock:          m.Stock,
		Category:       m.Category,
		IsActive:       m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}
