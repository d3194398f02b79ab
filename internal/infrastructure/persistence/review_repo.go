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

type ReviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
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

// Upsert stores a review, replacing the customer's previous review of the
// same product.
func (r *ReviewRepository) Upsert(ctx context.Context, review *entity.Review) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		createdAt := review.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}

		query := `
			INSERT INTO reviews (product_id, customer_id, score, title, body, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (product_id, customer_id) DO UPDATE
			SET score = EXCLUDED.score,
			    title = EXCLUDED.title,
			    body = EXCLUDED.body,
			    created_at = EXCLUDED.created_at
			RETURNING id`

		if err := tx.QueryRowxContext(ctx, query,
			review.ProductID, review.CustomerID, review.Score,
			review.Title, review.Body, createdAt,
		).Scan(&review.ID); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to upsert review")
		}

		review.CreatedAt = createdAt

		return nil
	})
}

// ListByProduct returns reviews newest first, with the author's display name
// joined in.
func (r *ReviewRepository) ListByProduct(ctx context.Context, productID int64, limit, offset int) ([]entity.Review, []string, error) {
	query := `
		SELECT r.id, r.product_id, r.customer_id, r.score, r.title, r.body, r.created_at,
		       c.name AS author_name
		FROM reviews r
		JOIN customers c ON c.id = r.customer_id
		WHERE r.product_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3`

	var schemas []reviewSchema
	if err := r.db.SelectContext(ctx, &schemas, query, productID, limit, offset); err != nil {
		return nil, nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list reviews")
	}

	reviews := make([]entity.Review, 0, len(schemas))
	authors := make([]string, 0, len(schemas))
	for _, s := range schemas {
		reviews = append(reviews, *s.toDomain())
		authors = append(authors, s.AuthorName)
	}
	return reviews, authors, nil
}

// Summary computes the live aggregate for one product. Products without
// reviews get a zero-count summary, not an error.
func (r *ReviewRepository) Summary(ctx context.Context, productID int64) (*entity.RatingSummary, error) {
	query := `
		SELECT COALESCE(AVG(score), 0) AS average, COUNT(*) AS count
		FROM reviews
		WHERE product_id = $1`

	var row struct {
		Average float64 `db:"average"`
		Count   int     `db:"count"`
	}
	if err := r.db.GetContext(ctx, &row, query, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &entity.RatingSummary{ProductID: productID}, nil
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get summary")
	}

	summary := &entity.RatingSummary{
		ProductID:    productID,
		Average:      row.Average,
		Count:        row.Count,
		Distribution: map[int]int{},
	}

	distQuery := `
		SELECT GREATEST(1, FLOOR(score))::int AS bucket, COUNT(*) AS count
		FROM reviews
		WHERE product_id = $1
		GROUP BY bucket`

	var buckets []struct {
		Bucket int `db:"bucket"`
		Count  int `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &buckets, distQuery, productID); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get distribution")
	}

	for _, b := range buckets {
		summary.Distribution[b.Bucket] = b.Count
	}

	return summary, nil
}

// RefreshSummary recomputes and stores the denormalized per-product aggregate
// row that list queries read.
func (r *ReviewRepository) RefreshSummary(ctx context.Context, productID int64) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO product_rating_summaries (product_id, average, count, updated_at)
			SELECT $1, COALESCE(AVG(score), 0), COUNT(*), $2
			FROM reviews
			WHERE product_id = $1
			ON CONFLICT (product_id) DO UPDATE
			SET average = EXCLUDED.average,
			    count = EXCLUDED.count,
			    updated_at = EXCLUDED.updated_at`

		if _, err := tx.ExecContext(ctx, query, productID, time.Now()); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to refresh summary")
		}
		return nil
	})
}

// SummariesByProducts reads the denormalized aggregates for a product list.
func (r *ReviewRepository) SummariesByProducts(ctx context.Context, productIDs []int64) (map[int64]entity.RatingSummary, error) {
	if len(productIDs) == 0 {
		return map[int64]entity.RatingSummary{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT product_id, average, count
		FROM product_rating_summaries
		WHERE product_id IN (?)`, productIDs)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to build query")
	}

	var rows []struct {
		ProductID int64   `db:"product_id"`
		Average   float64 `db:"average"`
		Count     int     `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get summaries")
	}

	result := make(map[int64]entity.RatingSummary, len(rows))
	for _, row := range rows {
		result[row.ProductID] = entity.RatingSummary{
			ProductID: row.ProductID,
			Average:   row.Average,
			Count:     row.Count,
		}
	}
	return result, nil
}
