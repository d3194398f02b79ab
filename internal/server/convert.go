package server

import (
	"strconv"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service/catalog"
	"storefront/internal/domain/service/stars"
	"storefront/pkg/lox"
	"storefront/pkg/rest"
)

// Default icon sizes per surface; the display layer may override via the
// starSize query parameter.
const (
	cardStarSize   = 16
	detailStarSize = 24
)

func newRESTStars(seq stars.Sequence) []rest.Star {
	return lox.Map(seq[:], func(star stars.Star) rest.Star {
		return rest.Star{
			Position: star.Position,
			Variant:  string(star.Variant),
			Size:     star.Size,
			Color:    star.Color,
		}
	})
}

// starsFor renders the star strip for a product aggregate. Products without
// reviews have no score and render all-empty.
func starsFor(summary entity.RatingSummary, size int) []rest.Star {
	var score *float64
	if summary.Count > 0 {
		score = &summary.Average
	}

	return newRESTStars(stars.Render(score, size))
}

func newRESTSummary(summary entity.RatingSummary) rest.RatingSummary {
	return rest.RatingSummary{
		Average:      summary.Average,
		Count:        summary.Count,
		Distribution: summary.Distribution,
	}
}

func newRESTCard(card catalog.Card, starSize int) rest.ProductCard {
	return rest.ProductCard{
		Slug:       card.Product.Slug,
		Name:       card.Product.Name,
		PriceCents: card.Product.PriceCents,
		ImageURL:   card.Product.ImageURL,
		Rating:     newRESTSummary(card.Summary),
		Stars:      starsFor(card.Summary, starSize),
		UnitsSold:  card.UnitsSold,
	}
}

func newRESTCards(cards []catalog.Card, starSize int) []rest.ProductCard {
	return lox.Map(cards, func(card catalog.Card) rest.ProductCard {
		return newRESTCard(card, starSize)
	})
}

func newRESTProduct(product entity.Product, summary entity.RatingSummary, starSize int) rest.Product {
	return rest.Product{
		Slug:        product.Slug,
		Name:        product.Name,
		Description: product.Description,
		PriceCents:  product.PriceCents,
		ImageURL:    product.ImageURL,
		Stock:       product.Stock,
		Rating:      newRESTSummary(summary),
		Stars:       starsFor(summary, starSize),
		CreatedAt:   product.CreatedAt.Format(time.RFC3339),
	}
}

func newRESTReview(review entity.Review, author string, starSize int) rest.Review {
	score := review.Score

	return rest.Review{
		ID:        strconv.FormatInt(review.ID, 10),
		Score:     review.Score,
		Title:     review.Title,
		Body:      review.Body,
		Author:    author,
		Stars:     newRESTStars(stars.Render(&score, starSize)),
		CreatedAt: review.CreatedAt.Format(time.RFC3339),
	}
}

func newRESTCustomer(customer entity.Customer) rest.Customer {
	return rest.Customer{
		ID:        strconv.FormatInt(customer.ID, 10),
		Name:      customer.Name,
		Email:     customer.Email,
		AvatarURL: customer.AvatarURL,
	}
}
