package gotrue

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"livestock-management/internal/ports/auth"
)

var (
	ErrTokenEmpty = errors.New("token is empty")
)

// Verifier implementa auth.AuthVerifier contra GoTrue.
// Se instancia desde main cuando hay credenciales; sin él, el
// middleware opera en modo dev.
type Verifier struct {
	client *Client
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	claims, err := v.client.GetUser(ctx, token)
	if err != nil {
		// El middleware decide si corta o no; aquí solo normalizamos.
		return auth.Claims{}, fmt.Errorf("gotrue verify failed: %w", err)
	}

	if strings.TrimSpace(claims.UserID) == "" {
		return auth.Claims{}, errors.New("gotrue claims missing user id")
	}

	return claims, nil
}
