package persistence

import (
	"time"

	"storefront/internal/domain/entity"
)

// productSchema maps one row of the products table.
type productSchema struct {
	ID          int64     `db:"id"`
	Slug        string    `db:"slug"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	PriceCents  int64     `db:"price_cents"`
	ImageURL    string    `db:"image_url"`
	Stock       int       `db:"stock"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func fromProduct(e *entity.Product) *productSchema {
	return &productSchema{
		ID:          e.ID,
		Slug:        e.Slug,
		Name:        e.Name,
		Description: e.Description,
		PriceCents:  e.PriceCents,
		ImageURL:    e.ImageURL,
		Stock:       e.Stock,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (s *productSchema) toDomain() *entity.Product {
	return &entity.Product{
		ID:          s.ID,
		Slug:        s.Slug,
		Name:        s.Name,
		Description: s.Description,
		PriceCents:  s.PriceCents,
		ImageURL:    s.ImageURL,
		Stock:       s.Stock,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// reviewSchema maps one row of the reviews table.
type reviewSchema struct {
	ID         int64     `db:"id"`
	ProductID  int64     `db:"product_id"`
	CustomerID int64     `db:"customer_id"`
	Score      float64   `db:"score"`
	Title      string    `db:"title"`
	Body       string    `db:"body"`
	AuthorName string    `db:"author_name"`
	CreatedAt  time.Time `db:"created_at"`
}

func (s *reviewSchema) toDomain() *entity.Review {
	return &entity.Review{
		ID:         s.ID,
		ProductID:  s.ProductID,
		CustomerID: s.CustomerID,
		Score:      s.Score,
		Title:      s.Title,
		Body:       s.Body,
		CreatedAt:  s.CreatedAt,
	}
}

// customerSchema maps one row of the customers table.
type customerSchema struct {
	ID        int64     `db:"id"`
	GoogleID  string    `db:"google_id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	AvatarURL string    `db:"avatar_url"`
	CreatedAt time.Time `db:"created_at"`
}

func (s *customerSchema) toDomain() *entity.Customer {
	return &entity.Customer{
		ID:        s.ID,
		GoogleID:  s.GoogleID,
		Email:     s.Email,
		Name:      s.Name,
		AvatarURL: s.AvatarURL,
		CreatedAt: s.CreatedAt,
	}
}

// topSellerSchema maps one ranked row of the weekly top-sellers query.
type topSellerSchema struct {
	productSchema
	UnitsSold int `db:"units_sold"`
}

func (s *topSellerSchema) toDomain() entity.TopSeller {
	return entity.TopSeller{
		Product:   *s.productSchema.toDomain(),
		UnitsSold: s.UnitsSold,
	}
}
