package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	googleTokenEndpoint    = "https://oauth2.googleapis.com/token"
	googleUserinfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var ErrGoogleCodeInvalid = errors.New("google authorization code rejected")

// GoogleProfile is the subset of the Google userinfo response the platform needs.
type GoogleProfile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

// GoogleOAuthService exchanges an authorization code for the user's Google profile.
type GoogleOAuthService interface {
	ExchangeCode(ctx context.Context, code string) (*GoogleProfile, error)
}

type GoogleOAuthServiceImpl struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	HTTPClient   *http.Client

	tokenURL    string
	userinfoURL string
}

func NewGoogleOAuthService(clientID, clientSecret, redirectURL string, timeout time.Duration) GoogleOAuthService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GoogleOAuthServiceImpl{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		HTTPClient:   &http.Client{Timeout: timeout},
		tokenURL:     googleTokenEndpoint,
		userinfoURL:  googleUserinfoEndpoint,
	}
}

type googleTokenResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// ExchangeCode trades the authorization code for an access token, then fetches
// the userinfo profile with it.
func (s *GoogleOAuthServiceImpl) ExchangeCode(ctx context.Context, code string) (*GoogleProfile, error) {
	form := url.Values{}
	form.Set("code", code)
	form.Set("client_id", s.ClientID)
	form.Set("client_secret", s.ClientSecret)
	form.Set("redirect_uri", s.RedirectURL)
	form.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
			return nil, ErrGoogleCodeInvalid
		}
		return nil, fmt.Errorf("google token endpoint: status %d", resp.StatusCode)
	}

	var token googleTokenResp
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, ErrGoogleCodeInvalid
	}

	return s.fetchProfile(ctx, token.AccessToken)
}

func (s *GoogleOAuthServiceImpl) fetchProfile(ctx context.Context, accessToken string) (*GoogleProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userinfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google userinfo endpoint: status %d", resp.StatusCode)
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}
	if profile.ID == "" || profile.Email == "" {
		return nil, fmt.Errorf("google userinfo response missing id or email")
	}

	return &profile, nil
}
