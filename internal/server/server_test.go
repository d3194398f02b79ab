package server_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service/catalog"
	"storefront/internal/infrastructure/auth"
	"storefront/internal/server"
	"storefront/pkg/middlewarex"
	"storefront/pkg/rest"
	"storefront/pkg/tests"
)

type fakeCatalog struct {
	cards   []catalog.Card
	product *entity.Product
	summary *entity.RatingSummary
}

func (f *fakeCatalog) NewArrivals(context.Context, int) ([]catalog.Card, error) {
	return f.cards, nil
}

func (f *fakeCatalog) TopSellers(context.Context, int) ([]catalog.Card, error) {
	return f.cards, nil
}

func (f *fakeCatalog) ProductDetail(context.Context, string) (*entity.Product, *entity.RatingSummary, error) {
	return f.product, f.summary, nil
}

type fakeReviews struct {
	submitted []entity.Review
	reviews   []entity.Review
	authors   []string
	summary   entity.RatingSummary
}

func (f *fakeReviews) Submit(_ context.Context, productID, customerID int64, score float64, title, body string) (*entity.Review, error) {
	review := entity.Review{
		ID:         int64(len(f.submitted) + 1),
		ProductID:  productID,
		CustomerID: customerID,
		Score:      score,
		Title:      title,
		Body:       body,
		CreatedAt:  time.Now(),
	}
	f.submitted = append(f.submitted, review)
	return &review, nil
}

func (f *fakeReviews) ListByProduct(context.Context, int64, int, int) ([]entity.Review, []string, error) {
	return f.reviews, f.authors, nil
}

func (f *fakeReviews) ProductSummary(context.Context, int64) (*entity.RatingSummary, error) {
	summary := f.summary
	return &summary, nil
}

type fakeResolver struct {
	product entity.Product
}

func (f *fakeResolver) GetBySlug(context.Context, string) (*entity.Product, error) {
	p := f.product
	return &p, nil
}

type fakeCustomers struct {
	customer entity.Customer
}

func (f *fakeCustomers) GetByID(context.Context, int64) (*entity.Customer, error) {
	c := f.customer
	return &c, nil
}

func (f *fakeCustomers) UpsertByGoogleID(_ context.Context, customer *entity.Customer) (*entity.Customer, error) {
	stored := *customer
	stored.ID = f.customer.ID
	f.customer = stored
	return &stored, nil
}

type fakeOrders struct{}

func (fakeOrders) Purchase(_ context.Context, _ string, units int) (*entity.Sale, error) {
	return &entity.Sale{ID: 1, ProductID: 7, Units: units, SoldAt: time.Now()}, nil
}

type fakeGoogle struct {
	profile auth.GoogleProfile
}

func (f *fakeGoogle) Exchange(context.Context, string, string) (*auth.GoogleProfile, error) {
	p := f.profile
	return &p, nil
}

type fakeSessions struct{}

func (fakeSessions) Issue(customerID int64, _ time.Time) (string, error) {
	return "token-for-" + strconv.FormatInt(customerID, 10), nil
}

func (fakeSessions) TTL() time.Duration { return time.Hour }

type fakeVerifier struct {
	customerID int64
}

func (f fakeVerifier) Verify(token string) (int64, error) {
	if token != "valid-token" {
		return 0, errors.New("unknown token")
	}
	return f.customerID, nil
}

func newTestAPI(
	t *testing.T,
	catalogSvc *fakeCatalog,
	reviews *fakeReviews,
	customers *fakeCustomers,
) tests.APIClient {
	t.Helper()

	srv := server.NewServer(
		server.NewCatalogServer(catalogSvc),
		server.NewReviewServer(reviews, &fakeResolver{product: *catalogSvc.product}, customers),
		server.NewOrderServer(&fakeOrders{}),
		server.NewAuthServer(
			&fakeGoogle{profile: auth.GoogleProfile{Sub: "g-1", Email: "jo@example.com", Name: "Jo"}},
			fakeSessions{},
			customers,
		),
	)

	router := chi.NewRouter()
	srv.RegisterRoutes(router, middlewarex.Auth(fakeVerifier{customerID: 42}))

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	return tests.NewAPIClient(ts.URL, ts.Client())
}

func fixtures() (*fakeCatalog, *fakeReviews, *fakeCustomers) {
	hoodie := entity.Product{
		ID:         7,
		Slug:       "hoodie",
		Name:       "Hoodie",
		PriceCents: 4900,
		Stock:      3,
		CreatedAt:  time.Now(),
	}

	catalogSvc := &fakeCatalog{
		cards: []catalog.Card{
			{
				Product: hoodie,
				Summary: entity.RatingSummary{ProductID: 7, Average: 3.5, Count: 11},
			},
		},
		product: &hoodie,
		summary: &entity.RatingSummary{ProductID: 7, Average: 3.5, Count: 11},
	}

	reviews := &fakeReviews{
		reviews: []entity.Review{
			{ID: 1, ProductID: 7, CustomerID: 42, Score: 4.5, Title: "Warm", CreatedAt: time.Now()},
		},
		authors: []string{"Jo"},
		summary: entity.RatingSummary{ProductID: 7, Average: 3.5, Count: 11},
	}

	customers := &fakeCustomers{
		customer: entity.Customer{ID: 42, Name: "Jo", Email: "jo@example.com"},
	}

	return catalogSvc, reviews, customers
}

func variants(stars []rest.Star) []string {
	out := make([]string, 0, len(stars))
	for _, star := range stars {
		out = append(out, star.Variant)
	}
	return out
}

func TestGetNewArrivals(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	api := newTestAPI(t, fixtures())

	var response struct {
		Products []rest.ProductCard `json:"products"`
	}

	resp, err := api.Get(ctx, "/v1/catalog/new-arrivals", nil, &response, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	rq.Len(response.Products, 1)
	card := response.Products[0]
	rq.Equal("hoodie", card.Slug)
	rq.Equal(3.5, card.Rating.Average)

	rq.Equal([]string{"full", "full", "full", "half", "empty"}, variants(card.Stars))
	for i, star := range card.Stars {
		rq.Equal(i+1, star.Position)
		rq.Equal(16, star.Size)
	}
	rq.Equal("accent", card.Stars[3].Color)
	rq.Equal("muted", card.Stars[4].Color)
}

func TestGetProductStarSizeOverride(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	api := newTestAPI(t, fixtures())

	var product rest.Product

	resp, err := api.Get(ctx, "/v1/products/hoodie?starSize=32", nil, &product, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	rq.Len(product.Stars, 5)
	for _, star := range product.Stars {
		rq.Equal(32, star.Size)
	}
}

func TestGetProductWithoutReviews(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	catalogSvc, reviews, customers := fixtures()
	catalogSvc.summary = &entity.RatingSummary{ProductID: 7}
	api := newTestAPI(t, catalogSvc, reviews, customers)

	var product rest.Product

	resp, err := api.Get(ctx, "/v1/products/hoodie", nil, &product, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	rq.Equal([]string{"empty", "empty", "empty", "empty", "empty"}, variants(product.Stars))
	for _, star := range product.Stars {
		rq.Equal("muted", star.Color)
		rq.Equal(24, star.Size)
	}
}

func TestGetProductReviews(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	api := newTestAPI(t, fixtures())

	var page rest.ReviewPage

	resp, err := api.Get(ctx, "/v1/products/hoodie/reviews", nil, &page, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	rq.Len(page.Reviews, 1)
	rq.Equal("Jo", page.Reviews[0].Author)
	rq.Equal(4.5, page.Reviews[0].Score)
	rq.Equal([]string{"full", "full", "full", "full", "half"}, variants(page.Reviews[0].Stars))
	rq.Equal(11, page.Summary.Count)
}

func TestPostReviewRequiresAuth(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	api := newTestAPI(t, fixtures())

	request := rest.SubmitReviewRequest{Score: 4}

	resp, err := api.Post(ctx, "/v1/products/hoodie/reviews", nil, request, nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusUnauthorized, resp.StatusCode)

	headers := http.Header{}
	headers.Set("Authorization", "Bearer bogus")

	resp, err = api.Post(ctx, "/v1/products/hoodie/reviews", headers, request, nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func TestPostReview(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	catalogSvc, reviews, customers := fixtures()
	api := newTestAPI(t, catalogSvc, reviews, customers)

	headers := http.Header{}
	headers.Set("Authorization", "Bearer valid-token")

	request := rest.SubmitReviewRequest{Score: 5, Title: "Perfect"}

	var created rest.Review

	resp, err := api.Post(ctx, "/v1/products/hoodie/reviews", headers, request, &created, nil)
	rq.NoError(err)
	rq.Equal(http.StatusCreated, resp.StatusCode)

	rq.Equal("Jo", created.Author)
	rq.Equal(float64(5), created.Score)
	rq.Equal([]string{"full", "full", "full", "full", "full"}, variants(created.Stars))

	rq.Len(reviews.submitted, 1)
	rq.Equal(int64(42), reviews.submitted[0].CustomerID)
	rq.Equal(int64(7), reviews.submitted[0].ProductID)
}

func TestPostReviewValidation(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	api := newTestAPI(t, fixtures())

	headers := http.Header{}
	headers.Set("Authorization", "Bearer valid-token")

	var errResponse rest.Error

	resp, err := api.PostJSON(ctx, "/v1/products/hoodie/reviews", headers, `{"score": 0}`, nil, &errResponse)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)

	rq.NotEmpty(errResponse.FieldErrors)
	rq.Equal("score", errResponse.FieldErrors[0].Field)
}

func TestPostPurchase(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	api := newTestAPI(t, fixtures())

	headers := http.Header{}
	headers.Set("Authorization", "Bearer valid-token")

	var purchase rest.Purchase

	resp, err := api.Post(ctx, "/v1/products/hoodie/purchase", headers, rest.PurchaseRequest{Units: 2}, &purchase, nil)
	rq.NoError(err)
	rq.Equal(http.StatusCreated, resp.StatusCode)

	rq.Equal("hoodie", purchase.ProductSlug)
	rq.Equal(2, purchase.Units)
}

func TestGoogleSignIn(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	api := newTestAPI(t, fixtures())

	request := rest.GoogleSignInRequest{AuthorizationCode: "4/abc"}

	var session rest.Session

	resp, err := api.Post(ctx, "/v1/auth/google", nil, request, &session, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	rq.NotEmpty(session.AccessToken)
	rq.Equal(int64(3600), session.ExpiresIn)
	rq.Equal("Jo", session.Customer.Name)
}

func TestGetProfile(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	api := newTestAPI(t, fixtures())

	headers := http.Header{}
	headers.Set("Authorization", "Bearer valid-token")

	var customer rest.Customer

	resp, err := api.Get(ctx, "/v1/profile", headers, &customer, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	rq.Equal("42", customer.ID)
	rq.Equal("jo@example.com", customer.Email)
}
