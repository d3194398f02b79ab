package order_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service/order"
	"storefront/pkg/errcodes"
)

type fakeProductRepo struct {
	product   entity.Product
	stockErr  error
	decreased []int
}

func (f *fakeProductRepo) GetBySlug(context.Context, string) (*entity.Product, error) {
	p := f.product
	return &p, nil
}

func (f *fakeProductRepo) DecreaseStock(_ context.Context, _ int64, units int) error {
	if f.stockErr != nil {
		return f.stockErr
	}
	f.decreased = append(f.decreased, units)
	return nil
}

type fakeSalesRepo struct {
	recorded []entity.Sale
}

func (f *fakeSalesRepo) Record(_ context.Context, sale *entity.Sale) error {
	sale.ID = int64(len(f.recorded) + 1)
	f.recorded = append(f.recorded, *sale)
	return nil
}

func TestPurchase(t *testing.T) {
	rq := require.New(t)

	productRepo := &fakeProductRepo{product: entity.Product{ID: 7, Slug: "hoodie", Stock: 3}}
	salesRepo := &fakeSalesRepo{}
	svc := order.NewService(productRepo, salesRepo)

	sale, err := svc.Purchase(context.Background(), "hoodie", 2)
	rq.NoError(err)
	rq.NotZero(sale.ID)
	rq.Equal(int64(7), sale.ProductID)
	rq.Equal(2, sale.Units)

	rq.Equal([]int{2}, productRepo.decreased)
	rq.Len(salesRepo.recorded, 1)
}

func TestPurchaseRejectsNonPositiveUnits(t *testing.T) {
	rq := require.New(t)

	svc := order.NewService(&fakeProductRepo{}, &fakeSalesRepo{})

	for _, units := range []int{0, -1} {
		_, err := svc.Purchase(context.Background(), "hoodie", units)
		rq.Error(err)

		code, ok := domain.GetCode(err)
		rq.True(ok)
		rq.Equal(errcodes.ValidationError, code)
	}
}

func TestPurchaseOutOfStock(t *testing.T) {
	rq := require.New(t)

	productRepo := &fakeProductRepo{
		product:  entity.Product{ID: 7, Slug: "hoodie", Stock: 1},
		stockErr: domain.NewError(errcodes.ProductOutOfStock, "product out of stock"),
	}
	salesRepo := &fakeSalesRepo{}
	svc := order.NewService(productRepo, salesRepo)

	_, err := svc.Purchase(context.Background(), "hoodie", 5)
	rq.Error(err)

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.ProductOutOfStock, code)
	rq.Empty(salesRepo.recorded)
}
