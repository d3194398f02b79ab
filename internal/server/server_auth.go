package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/infrastructure/auth"
	"storefront/pkg/httpx/reply"
	"storefront/pkg/httpx/req"
	"storefront/pkg/rest"
)

type googleExchanger interface {
	Exchange(ctx context.Context, code, redirectURI string) (*auth.GoogleProfile, error)
}

type sessionIssuer interface {
	Issue(customerID int64, now time.Time) (string, error)
	TTL() time.Duration
}

type customerRepository interface {
	UpsertByGoogleID(ctx context.Context, customer *entity.Customer) (*entity.Customer, error)
	GetByID(ctx context.Context, id int64) (*entity.Customer, error)
}

type AuthServer struct {
	google    googleExchanger
	sessions  sessionIssuer
	customers customerRepository
}

func NewAuthServer(
	google googleExchanger,
	sessions sessionIssuer,
	customers customerRepository,
) AuthServer {
	return AuthServer{
		google:    google,
		sessions:  sessions,
		customers: customers,
	}
}

func (s AuthServer) postV1AuthGoogle(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.GoogleSignInRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	profile, err := s.google.Exchange(ctx, request.AuthorizationCode, request.RedirectURI)
	if err != nil {
		return fmt.Errorf("google.Exchange: %w", err)
	}

	customer, err := s.customers.UpsertByGoogleID(ctx, &entity.Customer{
		GoogleID:  profile.Sub,
		Email:     profile.Email,
		Name:      profile.Name,
		AvatarURL: profile.Picture,
	})
	if err != nil {
		return fmt.Errorf("customers.UpsertByGoogleID: %w", err)
	}

	accessToken, err := s.sessions.Issue(customer.ID, time.Now())
	if err != nil {
		return fmt.Errorf("sessions.Issue: %w", err)
	}

	session := rest.Session{
		AccessToken: accessToken,
		ExpiresIn:   int64(s.sessions.TTL().Seconds()),
		Customer:    newRESTCustomer(*customer),
	}

	reply.JSON(ctx, w, http.StatusOK, session)

	return nil
}

func (s AuthServer) getV1Profile(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	customerID, err := customerIDFromContext(ctx)
	if err != nil {
		return err
	}

	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return fmt.Errorf("customers.GetByID: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTCustomer(*customer))

	return nil
}
