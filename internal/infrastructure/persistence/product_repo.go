package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
	"storefront/internal/domain/entity"
	"storefront/pkg/errcodes"
)

type ProductRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}
	return nil
}

// Create inserts a product and fills in the generated ID.
func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		schema := fromProduct(product)
		if schema.CreatedAt.IsZero() {
			schema.CreatedAt = time.Now()
		}
		schema.UpdatedAt = schema.CreatedAt

		query := `
			INSERT INTO products (slug, name, description, price_cents, image_url, stock, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id`

		if err := tx.QueryRowxContext(ctx, query,
			schema.Slug, schema.Name, schema.Description, schema.PriceCents,
			schema.ImageURL, schema.Stock, schema.CreatedAt, schema.UpdatedAt,
		).Scan(&product.ID); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to insert product")
		}

		product.CreatedAt = schema.CreatedAt
		product.UpdatedAt = schema.UpdatedAt

		return nil
	})
}

func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	query := `
		SELECT id, slug, name, description, price_cents, image_url, stock, created_at, updated_at
		FROM products
		WHERE slug = $1`

	var schema productSchema
	if err := r.db.GetContext(ctx, &schema, query, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.ProductNotFound, "product not found")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get product")
	}

	return schema.toDomain(), nil
}

// ListNewArrivals returns the most recently added products, newest first.
func (r *ProductRepository) ListNewArrivals(ctx context.Context, limit int) ([]entity.Product, error) {
	query := `
		SELECT id, slug, name, description, price_cents, image_url, stock, created_at, updated_at
		FROM products
		ORDER BY created_at DESC
		LIMIT $1`

	var schemas []productSchema
	if err := r.db.SelectContext(ctx, &schemas, query, limit); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list new arrivals")
	}

	result := make([]entity.Product, 0, len(schemas))
	for _, s := range schemas {
		result = append(result, *s.toDomain())
	}
	return result, nil
}

// DecreaseStock takes units off the shelf, refusing to go below zero.
func (r *ProductRepository) DecreaseStock(ctx context.Context, id int64, units int) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			UPDATE products
			SET stock = stock - $1,
			    updated_at = $2
			WHERE id = $3 AND stock >= $1`

		res, err := tx.ExecContext(ctx, query, units, time.Now(), id)
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to decrease stock")
		}

		rows, _ := res.RowsAffected()
		if rows == 0 {
			var exists bool
			_ = tx.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, id)
			if !exists {
				return domain.NewError(errcodes.ProductNotFound, "product not found")
			}
			return domain.NewError(errcodes.ProductOutOfStock, "product out of stock")
		}
		return nil
	})
}
