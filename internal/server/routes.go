package server

import (
	"net/http"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-chi/chi/v5"

	"storefront/internal/domain"
	"storefront/pkg/errcodes"
	"storefront/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router, auth func(http.Handler) http.Handler) {
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			// unauthorized zone
			r.Route("/catalog", func(r chi.Router) {
				r.Get("/new-arrivals", handler(s.getV1NewArrivals))
				r.Get("/top-sellers", handler(s.getV1TopSellers))
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/{slug}", handler(s.getV1Product))
				r.Get("/{slug}/reviews", handler(s.getV1ProductReviews))
			})

			r.Post("/auth/google", handler(s.postV1AuthGoogle))

			// authorized zone
			r.Group(func(r chi.Router) {
				r.Use(auth)

				r.Post("/products/{slug}/reviews", handler(s.postV1ProductReview))
				r.Post("/products/{slug}/purchase", handler(s.postV1ProductPurchase))
				r.Get("/profile", handler(s.getV1Profile))
			})
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, asFailure(err))
		}
	}
}

// asFailure lifts domain error codes into failure kinds so reply.Error picks
// the right HTTP status.
func asFailure(err error) error {
	code, ok := domain.GetCode(err)
	if !ok {
		return err
	}

	switch code {
	case errcodes.ProductNotFound, errcodes.ReviewNotFound, errcodes.CustomerNotFound, errcodes.NotFound:
		return failure.NewNotFoundErrorFromError(err, failure.WithCode(code))
	case errcodes.InvalidReviewScore, errcodes.InvalidReview, errcodes.InvalidProductSlug,
		errcodes.InvalidPaging, errcodes.ValidationError:
		return failure.NewInvalidArgumentErrorFromError(err, failure.WithCode(code))
	case errcodes.AccessTokenExpired, errcodes.AccessTokenInvalid, errcodes.GoogleAuthFailed:
		return failure.NewUnauthorizedErrorFromError(err, failure.WithCode(code))
	case errcodes.Forbidden:
		return failure.NewForbiddenErrorFromError(err, failure.WithCode(code))
	case errcodes.ProductOutOfStock:
		return failure.NewConflictErrorFromError(err, failure.WithCode(code))
	default:
		return err
	}
}
