package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service/catalog"
	"storefront/pkg/httpx/reply"
	"storefront/pkg/rest"
)

type catalogService interface {
	NewArrivals(ctx context.Context, limit int) ([]catalog.Card, error)
	TopSellers(ctx context.Context, limit int) ([]catalog.Card, error)
	ProductDetail(ctx context.Context, slug string) (*entity.Product, *entity.RatingSummary, error)
}

type CatalogServer struct {
	catalogService catalogService
}

func NewCatalogServer(catalogService catalogService) CatalogServer {
	return CatalogServer{
		catalogService: catalogService,
	}
}

func (s CatalogServer) getV1NewArrivals(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	cards, err := s.catalogService.NewArrivals(ctx, queryInt(r, "limit", 0))
	if err != nil {
		return fmt.Errorf("catalogService.NewArrivals: %w", err)
	}

	response := struct {
		Products []rest.ProductCard `json:"products"`
	}{
		Products: newRESTCards(cards, queryInt(r, "starSize", cardStarSize)),
	}

	reply.JSON(ctx, w, http.StatusOK, response)

	return nil
}

func (s CatalogServer) getV1TopSellers(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	cards, err := s.catalogService.TopSellers(ctx, queryInt(r, "limit", 0))
	if err != nil {
		return fmt.Errorf("catalogService.TopSellers: %w", err)
	}

	response := struct {
		Products []rest.ProductCard `json:"products"`
	}{
		Products: newRESTCards(cards, queryInt(r, "starSize", cardStarSize)),
	}

	reply.JSON(ctx, w, http.StatusOK, response)

	return nil
}

func (s CatalogServer) getV1Product(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	product, summary, err := s.catalogService.ProductDetail(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		return fmt.Errorf("catalogService.ProductDetail: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTProduct(*product, *summary, queryInt(r, "starSize", detailStarSize)))

	return nil
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}
