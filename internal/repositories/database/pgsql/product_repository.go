package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saricycle/saricycle_backend/internal/apperrors"
	"github.com/saricycle/saricycle_backend/internal/core/domain"
	portsrepo "github.com/saricycle/saricycle_backend/internal/core/ports/repositories"
	"github.com/saricycle/saricycle_backend/internal/models"
	"github.com/saricycle/saricycle_backend/internal/utils/mapping"
)

type PgxProductRepository struct {
	BaseRepository
}

func newPgxProductRepository(pool *pgxpool.Pool, timeout time.Duration) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{BaseRepository{Pool: pool, Timeout: timeout}}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

const productColumns = `product_id, name, description, points_required, stock, category, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanProduct(row pgx.Row) (models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID,
		&m.Name,
		&m.Description,
		&m.PointsRequired,
		&m.Stock,
		&m.Category,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveProduct inserts a new catalog row.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	ctx, cancel := r.storeCtx(ctx)
	defer cancel()

	m := mapping.ToModelProduct(product)

	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ProductID,
		m.Name,
		m.Description,
		m.PointsRequired,
		m.Stock,
		m.Category,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: product %s already exists", apperrors.ErrDuplicate, m.ProductID)
		}
		return mapStoreError(fmt.Sprintf("failed to save product %s", m.ProductID), err)
	}
	return nil
}

// UpdateProduct updates an existing catalog row.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	ctx, cancel := r.storeCtx(ctx)
	defer cancel()

	m := mapping.ToModelProduct(product)

	query := `
		UPDATE products
		SET name = $2, description = $3, points_required = $4, stock = $5, category = $6, is_active = $7, last_updated_at = $8, last_updated_by = $9
		WHERE product_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ProductID,
		m.Name,
		m.Description,
		m.PointsRequired,
		m.Stock,
		m.Category,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapStoreError(fmt.Sprintf("failed to update product %s", m.ProductID), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %s not found", apperrors.ErrNotFound, m.ProductID)
	}
	return nil
}

// DeactivateProduct marks a product inactive without removing it.
func (r *PgxProductRepository) DeactivateProduct(ctx context.Context, productID string, userID string, now time.Time) error {
	ctx, cancel := r.storeCtx(ctx)
	defer cancel()

	query := `
		UPDATE products
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE product_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, productID, now, userID)
	if err != nil {
		return mapStoreError(fmt.Sprintf("failed to deactivate product %s", productID), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %s not found", apperrors.ErrNotFound, productID)
	}
	return nil
}

// DecrementStock decrements stock by one only while stock remains positive.
// The guard lives in the WHERE clause so concurrent redemptions cannot take
// the count below zero.
func (r *PgxProductRepository) DecrementStock(ctx context.Context, productID string) error {
	ctx, cancel := r.storeCtx(ctx)
	defer cancel()

	query := `
		UPDATE products
		SET stock = stock - 1, last_updated_at = NOW()
		WHERE product_id = $1 AND stock > 0;
	`
	tag, err := r.Pool.Exec(ctx, query, productID)
	if err != nil {
		return mapStoreError(fmt.Sprintf("failed to decrement stock for product %s", productID), err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if checkErr := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE product_id = $1);`, productID).Scan(&exists); checkErr != nil {
			return mapStoreError(fmt.Sprintf("failed to check product %s", productID), checkErr)
		}
		if !exists {
			return fmt.Errorf("%w: product %s not found", apperrors.ErrNotFound, productID)
		}
		return fmt.Errorf("%w: product %s has no stock left", apperrors.ErrOutOfStock, productID)
	}
	return nil
}

// FindProductByID retrieves a single product.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	ctx, cancel := r.storeCtx(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`

	m, err := scanProduct(r.Pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: product %s not found", apperrors.ErrNotFound, productID)
		}
		return nil, mapStoreError(fmt.Sprintf("failed to find product %s", productID), err)
	}

	p := mapping.ToDomainProduct(m)
	return &p, nil
}

// ListProducts retrieves active products ordered by name.
func (r *PgxProductRepository) ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error) {
	ctx, cancel := r.storeCtx(ctx)
	defer cancel()

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active = TRUE
		ORDER BY name ASC, product_id ASC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, mapStoreError("failed to list products", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, mapping.ToDomainProduct(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapStoreError("error iterating product rows", err)
	}
	return products, nil
}
