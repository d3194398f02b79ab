package entity

import "time"

// Sale is one order line, recorded at checkout. Top-seller ranking sums Units
// per product over a trailing window.
type Sale struct {
	ID        int64     `json:"id" db:"id"`
	ProductID int64     `json:"product_id" db:"product_id"`
	Units     int       `json:"units" db:"units"`
	SoldAt    time.Time `json:"sold_at" db:"sold_at"`
}

// TopSeller is one ranked row of the weekly top-sellers page.
type TopSeller struct {
	Product   Product
	UnitsSold int
}
