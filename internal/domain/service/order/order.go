package order

import (
	"context"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/domain/entity"
	"storefront/pkg/errcodes"
)

type ProductRepository interface {
	GetBySlug(ctx context.Context, slug string) (*entity.Product, error)
	DecreaseStock(ctx context.Context, id int64, units int) error
}

type SalesRepository interface {
	Record(ctx context.Context, sale *entity.Sale) error
}

// Service handles checkout. Every purchase feeds the sales log the weekly
// top-sellers ranking is computed from.
type Service struct {
	productRepo ProductRepository
	salesRepo   SalesRepository
}

func NewService(productRepo ProductRepository, salesRepo SalesRepository) *Service {
	return &Service{
		productRepo: productRepo,
		salesRepo:   salesRepo,
	}
}

// Purchase takes units off the shelf and records the sale.
func (s *Service) Purchase(ctx context.Context, slug string, units int) (*entity.Sale, error) {
	if units <= 0 {
		return nil, domain.NewError(errcodes.ValidationError, "units must be positive")
	}

	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("productRepo.GetBySlug: %w", err)
	}

	if err := s.productRepo.DecreaseStock(ctx, product.ID, units); err != nil {
		return nil, fmt.Errorf("productRepo.DecreaseStock: %w", err)
	}

	sale := &entity.Sale{
		ProductID: product.ID,
		Units:     units,
	}

	if err := s.salesRepo.Record(ctx, sale); err != nil {
		return nil, fmt.Errorf("salesRepo.Record: %w", err)
	}

	return sale, nil
}
