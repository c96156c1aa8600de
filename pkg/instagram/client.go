package instagram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/HUNTSTAR747/referred-space-server/pkg/config"
	"github.com/HUNTSTAR747/referred-space-server/pkg/logger"
)

const oauthScopes = "user_profile,user_media"

var (
	errClientIDRequired     = errors.New("instagram client id is required")
	errClientSecretRequired = errors.New("instagram client secret is required")
	errRedirectURIRequired  = errors.New("instagram redirect uri is required")
)

// Token is the payload returned by the access_token endpoint.
type Token struct {
	AccessToken string      `json:"access_token"`
	UserID      json.Number `json:"user_id"`
}

// Profile is the identity fetched from the Graph API.
type Profile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Client wraps the two Instagram round-trips the OAuth exchange needs:
// code-for-token and token-for-profile.
type Client struct {
	cfg    config.InstagramConfig
	http   *http.Client
	logger *logger.Logger
}

// NewClient validates the OAuth credentials and returns a ready client.
func NewClient(cfg config.InstagramConfig, logg *logger.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.ClientID) == "" {
		return nil, errClientIDRequired
	}
	if strings.TrimSpace(cfg.ClientSecret) == "" {
		return nil, errClientSecretRequired
	}
	if strings.TrimSpace(cfg.RedirectURI) == "" {
		return nil, errRedirectURIRequired
	}

	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: 15 * time.Second},
		logger: logg,
	}, nil
}

// AuthorizeURL builds the third-party authorize redirect target.
func (c *Client) AuthorizeURL() string {
	q := url.Values{}
	q.Set("client_id", c.cfg.ClientID)
	q.Set("redirect_uri", c.cfg.RedirectURI)
	q.Set("scope", oauthScopes)
	q.Set("response_type", "code")
	return c.cfg.AuthorizeURL + "?" + q.Encode()
}

// ExchangeCode swaps an authorization code for an access token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	if strings.TrimSpace(code) == "" {
		return nil, errors.New("authorization code is required")
	}

	form := url.Values{}
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("grant_type", "authorization_code")
	form.Set("redirect_uri", c.cfg.RedirectURI)
	form.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("building token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var token Token
	if err := c.do(req, &token); err != nil {
		return nil, fmt.Errorf("exchanging code: %w", err)
	}
	if token.AccessToken == "" {
		return nil, errors.New("token response missing access_token")
	}
	return &token, nil
}

// FetchProfile loads the id and username tied to the access token.
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, errors.New("access token is required")
	}

	q := url.Values{}
	q.Set("fields", "id,username")
	q.Set("access_token", accessToken)
	endpoint := strings.TrimRight(c.cfg.GraphURL, "/") + "/me?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building profile request: %w", err)
	}

	var profile Profile
	if err := c.do(req, &profile); err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}
	if profile.ID == "" {
		return nil, errors.New("profile response missing id")
	}
	return &profile, nil
}

func (c *Client) do(req *http.Request, dest any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("instagram responded %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
