package domain

// Product is a catalog item exchangeable for points.
type Product struct {
	ProductID      string `json:"productID"` // Primary key (UUID)
	Name           string `json:"name"`
	Description    string `json:"description"`
	PointsRequired int64  `json:"pointsRequired"`
	Stock          int64  `json:"stock"`
	Category       string `json:"category,omitempty"`
	IsActive       bool   `json:"isActive"`
	AuditFields
}
