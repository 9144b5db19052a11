// Package auth implements social login against OAuth2 providers. The API
// never sees provider passwords: it hands out the provider's consent URL,
// exchanges the returned authorization code for a token, and fetches the
// provider's userinfo document to identify the account.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"

	"budgetwise/internal/config"
)

const (
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"

	googleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
	facebookUserInfoURL = "https://graph.facebook.com/me?fields=id,name,email,picture.type(large)"
)

// UserInfo is the provider-agnostic identity extracted from a provider's
// userinfo endpoint.
type UserInfo struct {
	ID     string
	Name   string
	Email  string
	Avatar string
}

// Provider wraps one configured OAuth2 provider.
type Provider struct {
	name        string
	cfg         *oauth2.Config
	userInfoURL string
}

// NewGoogle builds the Google provider from application config.
func NewGoogle(cfg *config.Config) *Provider {
	return &Provider{
		name: ProviderGoogle,
		cfg: &oauth2.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
	}
}

// NewFacebook builds the Facebook provider from application config.
func NewFacebook(cfg *config.Config) *Provider {
	return &Provider{
		name: ProviderFacebook,
		cfg: &oauth2.Config{
			ClientID:     cfg.Facebook.ClientID,
			ClientSecret: cfg.Facebook.ClientSecret,
			RedirectURL:  cfg.Facebook.RedirectURL,
			Scopes:       []string{"email", "public_profile"},
			Endpoint:     facebook.Endpoint,
		},
		userInfoURL: facebookUserInfoURL,
	}
}

// Name returns the provider identifier stored on linked users.
func (p *Provider) Name() string { return p.name }

// AuthURL returns the provider consent page URL for the given state.
func (p *Provider) AuthURL(state string) string {
	return p.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades an authorization code for a token and fetches the
// provider's userinfo document.
func (p *Provider) Exchange(ctx context.Context, code string) (*UserInfo, error) {
	token, err := p.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%s token exchange: %w", p.name, err)
	}

	client := p.cfg.Client(ctx, token)
	resp, err := client.Get(p.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("%s userinfo: %w", p.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s userinfo: status %d: %s", p.name, resp.StatusCode, body)
	}

	return p.parseUserInfo(resp.Body)
}

func (p *Provider) parseUserInfo(r io.Reader) (*UserInfo, error) {
	switch p.name {
	case ProviderGoogle:
		var payload struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			Email   string `json:"email"`
			Picture string `json:"picture"`
		}
		if err := json.NewDecoder(r).Decode(&payload); err != nil {
			return nil, fmt.Errorf("decode google userinfo: %w", err)
		}
		return &UserInfo{ID: payload.ID, Name: payload.Name, Email: payload.Email, Avatar: payload.Picture}, nil

	case ProviderFacebook:
		var payload struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			Email   string `json:"email"`
			Picture struct {
				Data struct {
					URL string `json:"url"`
				} `json:"data"`
			} `json:"picture"`
		}
		if err := json.NewDecoder(r).Decode(&payload); err != nil {
			return nil, fmt.Errorf("decode facebook userinfo: %w", err)
		}
		return &UserInfo{ID: payload.ID, Name: payload.Name, Email: payload.Email, Avatar: payload.Picture.Data.URL}, nil

	default:
		return nil, fmt.Errorf("unknown provider %q", p.name)
	}
}
