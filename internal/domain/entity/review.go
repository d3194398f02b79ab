package entity

import "time"

// Review is one customer's rating of a product. A customer keeps at most one
// review per product; resubmitting replaces the previous one.
type Review struct {
	ID         int64     `json:"id" db:"id"`
	ProductID  int64     `json:"product_id" db:"product_id"`
	CustomerID int64     `json:"customer_id" db:"customer_id"`
	Score      float64   `json:"score" db:"score"`
	Title      string    `json:"title" db:"title"`
	Body       string    `json:"body" db:"body"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// RatingSummary aggregates all reviews of one product. Distribution is keyed
// by the whole-star bucket (1..5) a score rounds down to.
type RatingSummary struct {
	ProductID    int64
	Average      float64
	Count        int
	Distribution map[int]int
}
