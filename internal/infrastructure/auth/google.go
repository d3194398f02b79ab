package auth

import (
	"context"
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"storefront/internal/domain"
	"storefront/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const userinfoEndpoint = "https://openidconnect.googleapis.com/v1/userinfo"

// GoogleProfile is the subset of the OpenID userinfo response the storefront
// keeps.
type GoogleProfile struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// GoogleProvider exchanges sign-in authorization codes and fetches the
// customer's Google profile.
type GoogleProvider struct {
	oauth      *oauth2.Config
	httpClient *http.Client
}

func NewGoogleProvider(clientID, clientSecret, redirectURL string, httpClient *http.Client) *GoogleProvider {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &GoogleProvider{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		httpClient: httpClient,
	}
}

// Exchange trades the authorization code for tokens and resolves the profile.
// redirectURI overrides the configured redirect when the client used another
// registered one.
func (p *GoogleProvider) Exchange(ctx context.Context, code, redirectURI string) (*GoogleProfile, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	opts := []oauth2.AuthCodeOption{}
	if redirectURI != "" {
		opts = append(opts, oauth2.SetAuthURLParam("redirect_uri", redirectURI))
	}

	token, err := p.oauth.Exchange(ctx, code, opts...)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.GoogleAuthFailed, "code exchange failed")
	}

	profile, err := p.fetchProfile(ctx, token)
	if err != nil {
		return nil, err
	}

	if !profile.EmailVerified {
		return nil, domain.NewError(errcodes.GoogleAuthFailed, "google account email is not verified")
	}

	return profile, nil
}

func (p *GoogleProvider) fetchProfile(ctx context.Context, token *oauth2.Token) (*GoogleProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userinfoEndpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	token.SetAuthHeader(req)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.GoogleAuthFailed, "userinfo request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewError(errcodes.GoogleAuthFailed,
			fmt.Sprintf("userinfo returned status %d", resp.StatusCode))
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, domain.WrapError(err, errcodes.GoogleAuthFailed, "userinfo decode failed")
	}

	return &profile, nil
}
