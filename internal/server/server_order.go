package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"storefront/internal/domain/entity"
	"storefront/pkg/httpx/reply"
	"storefront/pkg/httpx/req"
	"storefront/pkg/rest"
)

type orderService interface {
	Purchase(ctx context.Context, slug string, units int) (*entity.Sale, error)
}

type OrderServer struct {
	orderService orderService
}

func NewOrderServer(orderService orderService) OrderServer {
	return OrderServer{
		orderService: orderService,
	}
}

func (s OrderServer) postV1ProductPurchase(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	if _, err := customerIDFromContext(ctx); err != nil {
		return err
	}

	slug := chi.URLParam(r, "slug")

	var request rest.PurchaseRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	sale, err := s.orderService.Purchase(ctx, slug, request.Units)
	if err != nil {
		return fmt.Errorf("orderService.Purchase: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, rest.Purchase{
		ProductSlug: slug,
		Units:       sale.Units,
		SoldAt:      sale.SoldAt.Format(time.RFC3339),
	})

	return nil
}
