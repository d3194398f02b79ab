// This file should be generated from the openapi specification and be named types.gen.go
package rest

// Error is the error envelope returned by every endpoint.
type Error struct {
	// Code error code.
	Code ErrorCode `json:"code"`

	// Message human readable error message (for displaying in UI).
	Message string `json:"message"`

	// FieldErrors per-field validation failures, present only for ValidationError.
	FieldErrors []FieldError `json:"fieldErrors,omitempty"`
}

// ErrorCode error code.
type ErrorCode string

// FieldError describes a single invalid form field so the display layer can
// render the message next to the field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Star is one slot of the five-star rating strip, ready for display.
type Star struct {
	Position int    `json:"position"`
	Variant  string `json:"variant"`
	Size     int    `json:"size"`
	Color    string `json:"color"`
}

// RatingSummary aggregates the reviews of one product.
type RatingSummary struct {
	Average      float64     `json:"average"`
	Count        int         `json:"count"`
	Distribution map[int]int `json:"distribution,omitempty"`
}

// ProductCard is the list representation used by the new-arrivals and
// top-sellers pages.
type ProductCard struct {
	Slug       string        `json:"slug"`
	Name       string        `json:"name"`
	PriceCents int64         `json:"priceCents"`
	ImageURL   string        `json:"imageUrl,omitempty"`
	Rating     RatingSummary `json:"rating"`
	Stars      []Star        `json:"stars"`
	UnitsSold  int           `json:"unitsSold,omitempty"`
}

// Product is the full product page representation.
type Product struct {
	Slug        string        `json:"slug"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	PriceCents  int64         `json:"priceCents"`
	ImageURL    string        `json:"imageUrl,omitempty"`
	Stock       int           `json:"stock"`
	Rating      RatingSummary `json:"rating"`
	Stars       []Star        `json:"stars"`
	CreatedAt   string        `json:"createdAt"`
}

// Review is one customer review of a product.
type Review struct {
	ID        string  `json:"id"`
	Score     float64 `json:"score"`
	Title     string  `json:"title,omitempty"`
	Body      string  `json:"body,omitempty"`
	Author    string  `json:"author"`
	Stars     []Star  `json:"stars"`
	CreatedAt string  `json:"createdAt"`
}

// ReviewPage is a paged list of reviews with the product summary.
type ReviewPage struct {
	Reviews []Review      `json:"reviews"`
	Summary RatingSummary `json:"summary"`
	Limit   int           `json:"limit"`
	Offset  int           `json:"offset"`
}

// SubmitReviewRequest is the review form payload.
type SubmitReviewRequest struct {
	Score float64 `json:"score" validate:"required,gte=0.5,lte=5"`
	Title string  `json:"title" validate:"max=120"`
	Body  string  `json:"body" validate:"max=4000"`
}

// GoogleSignInRequest carries the authorization code obtained by the client.
type GoogleSignInRequest struct {
	AuthorizationCode string `json:"authorizationCode" validate:"required"`
	RedirectURI       string `json:"redirectUri" validate:"omitempty,url"`
}

// PurchaseRequest is the checkout payload.
type PurchaseRequest struct {
	Units int `json:"units" validate:"required,gte=1,lte=99"`
}

// Purchase confirms a recorded sale.
type Purchase struct {
	ProductSlug string `json:"productSlug"`
	Units       int    `json:"units"`
	SoldAt      string `json:"soldAt"`
}

// Customer is the public representation of an authenticated customer.
type Customer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Session is returned after a successful sign-in.
type Session struct {
	AccessToken string   `json:"accessToken"`
	ExpiresIn   int64    `json:"expiresIn"`
	Customer    Customer `json:"customer"`
}
