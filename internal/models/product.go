package models

// Product represents a catalog row as persisted.
type Product struct {
	ProductID      string `db:"product_id"`
	Name           string `db:"name"`
	Description    string `db:"description"`
	PointsRequired int64  `db:"points_required"`
	Stock          int64  `db:"stock"`
	Category       string `db:"category"`
	IsActive       bool   `db:"is_active"`
	AuditFields
}
