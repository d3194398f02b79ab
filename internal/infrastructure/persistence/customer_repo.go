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

type CustomerRepository struct {
	db *sqlx.DB
}

func NewCustomerRepository(db *sqlx.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// UpsertByGoogleID creates the customer on first sign-in and refreshes the
// profile fields on every later one.
func (r *CustomerRepository) UpsertByGoogleID(ctx context.Context, customer *entity.Customer) (*entity.Customer, error) {
	createdAt := customer.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO customers (google_id, email, name, avatar_url, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (google_id) DO UPDATE
		SET email = EXCLUDED.email,
		    name = EXCLUDED.name,
		    avatar_url = EXCLUDED.avatar_url
		RETURNING id, google_id, email, name, avatar_url, created_at`

	var schema customerSchema
	if err := r.db.GetContext(ctx, &schema, query,
		customer.GoogleID, customer.Email, customer.Name, customer.AvatarURL, createdAt,
	); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to upsert customer")
	}

	return schema.toDomain(), nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	query := `
		SELECT id, google_id, email, name, avatar_url, created_at
		FROM customers
		WHERE id = $1`

	var schema customerSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.CustomerNotFound, "customer not found")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get customer")
	}

	return schema.toDomain(), nil
}
