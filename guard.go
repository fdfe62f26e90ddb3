package authflow

import (
	"context"
	"fmt"
	"time"

	"github.com/MrEthical07/authflow/gateway"
	"github.com/MrEthical07/authflow/store"
	"github.com/golang-jwt/jwt/v5"
)

// IsAuthenticated reports whether a session token is persisted. That
// presence is the whole contract — no freshness or signature check happens
// client-side; a stale token simply earns a 401 on the next authenticated
// call.
func (c *Client) IsAuthenticated(ctx context.Context) bool {
	if c == nil || c.creds == nil {
		return false
	}
	_, ok, err := c.creds.Get(ctx, store.KindSession)
	return err == nil && ok
}

// SessionToken returns the persisted bearer token, if any.
func (c *Client) SessionToken(ctx context.Context) (string, bool) {
	if c == nil || c.creds == nil {
		return "", false
	}
	token, ok, err := c.creds.Get(ctx, store.KindSession)
	if err != nil {
		return "", false
	}
	return token, ok
}

// SessionClaims is the display-only projection of the stored session
// token's claims.
type SessionClaims struct {
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// SessionClaims peeks at the stored session token without verifying its
// signature. Strictly for display (who is logged in, when the token was
// minted) — token validity remains the server's decision and nothing here
// may gate access on these values.
func (c *Client) SessionClaims(ctx context.Context) (*SessionClaims, error) {
	token, ok := c.SessionToken(ctx)
	if !ok {
		return nil, ErrClientNotReady
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("%w: session token is not a JWT: %v", ErrTransport, err)
	}

	claims := &SessionClaims{}
	if sub, err := parsed.Claims.GetSubject(); err == nil {
		claims.UserID = sub
	}
	if iat, err := parsed.Claims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}

// StoreTokenSource adapts any credential store's session slot to the
// gateway bearer hook. Useful before a [Client] exists, since the gateway
// is usually constructed first:
//
//	creds := store.NewMemory()
//	gw, _ := gateway.NewHTTP(baseURL, gateway.WithTokenSource(authflow.StoreTokenSource(creds)))
//	client, _ := authflow.New().WithGateway(gw).WithStore(creds).Build()
func StoreTokenSource(s store.Store) gateway.TokenSource {
	return func(ctx context.Context) (string, bool) {
		if s == nil {
			return "", false
		}
		token, ok, err := s.Get(ctx, store.KindSession)
		if err != nil || !ok {
			return "", false
		}
		return token, true
	}
}
