package persistence

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
	"storefront/internal/domain/entity"
	"storefront/pkg/errcodes"
)

type SalesRepository struct {
	db *sqlx.DB
}

func NewSalesRepository(db *sqlx.DB) *SalesRepository {
	return &SalesRepository{db: db}
}

// Record stores one order line.
func (r *SalesRepository) Record(ctx context.Context, sale *entity.Sale) error {
	soldAt := sale.SoldAt
	if soldAt.IsZero() {
		soldAt = time.Now()
	}

	query := `
		INSERT INTO sales (product_id, units, sold_at)
		VALUES ($1, $2, $3)
		RETURNING id`

	if err := r.db.QueryRowxContext(ctx, query, sale.ProductID, sale.Units, soldAt).Scan(&sale.ID); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to record sale")
	}

	sale.SoldAt = soldAt

	return nil
}

// TopSellers ranks products by units sold since the cutoff.
func (r *SalesRepository) TopSellers(ctx context.Context, since time.Time, limit int) ([]entity.TopSeller, error) {
	query := `
		SELECT p.id, p.slug, p.name, p.description, p.price_cents, p.image_url, p.stock,
		       p.created_at, p.updated_at,
		       SUM(s.units)::int AS units_sold
		FROM sales s
		JOIN products p ON p.id = s.product_id
		WHERE s.sold_at >= $1
		GROUP BY p.id
		ORDER BY units_sold DESC, p.id ASC
		LIMIT $2`

	var schemas []topSellerSchema
	if err := r.db.SelectContext(ctx, &schemas, query, since, limit); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to rank top sellers")
	}

	result := make([]entity.TopSeller, 0, len(schemas))
	for _, s := range schemas {
		result = append(result, s.toDomain())
	}
	return result, nil
}
