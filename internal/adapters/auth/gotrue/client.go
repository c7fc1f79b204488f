package gotrue

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"livestock-management/internal/platform/httpclient"
	"livestock-management/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("gotrue client not configured")
	ErrUnauthorized  = errors.New("gotrue unauthorized")
	ErrUpstream      = errors.New("gotrue upstream error")
)

// Config del cliente GoTrue. BaseURL y la anon key vienen de env vars
// en quien lo instancie (main).
type Config struct {
	BaseURL string
	AnonKey string

	Timeout time.Duration
}

type Client struct {
	http    *httpclient.Client
	anonKey string
}

func NewClient(cfg Config) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &Client{
		http:    hc,
		anonKey: strings.TrimSpace(cfg.AnonKey),
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.anonKey != ""
}

// userResponse es el shape de GET /user de GoTrue.
type userResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Audience string `json:"aud"`
}

// GetUser valida el access token contra GoTrue (GET /user) y devuelve
// los claims del usuario.
func (c *Client) GetUser(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrUnauthorized
	}

	headers := map[string]string{
		"apikey":        c.anonKey,
		"Authorization": "Bearer " + token,
	}

	var out userResponse
	err := c.http.DoJSON(ctx, http.MethodGet, "/user", headers, nil, &out)
	if err != nil {
		var he *httpclient.HTTPError
		if errors.As(err, &he) {
			if he.StatusCode == http.StatusUnauthorized || he.StatusCode == http.StatusForbidden {
				return auth.Claims{}, ErrUnauthorized
			}
			return auth.Claims{}, fmt.Errorf("%w: status=%d", ErrUpstream, he.StatusCode)
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	out.ID = strings.TrimSpace(out.ID)
	if out.ID == "" {
		return auth.Claims{}, errors.New("gotrue response missing user id")
	}

	return auth.Claims{
		UserID:   out.ID,
		Email:    strings.TrimSpace(out.Email),
		TenantID: strings.TrimSpace(out.Audience),
	}, nil
}
