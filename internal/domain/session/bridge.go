// internal/domain/session/bridge.go
package session

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/your-org/viber-store/internal/config"
)

var (
	// ErrMissingCredentials is returned when username or password is empty.
	// This is the only login failure mode: there is no credential check.
	ErrMissingCredentials = errors.New("please provide both username and password")

	// ErrUnauthenticated is returned when no valid session backs a request
	ErrUnauthenticated = errors.New("not authenticated")
)

// CartClearer is the single cart operation the bridge needs for the
// clear-cart logout variant.
type CartClearer interface {
	Clear(ctx context.Context, ownerKey string) error
}

// Bridge translates session tokens into cart owner keys. The username is
// reused verbatim as the owner key, so the same username always rejoins
// the same cart; a real identity system can replace this behind the same
// interface without touching the cart store.
type Bridge struct {
	tokens *TokenManager
	store  TokenStore
	carts  CartClearer
	config *config.Config
}

// NewBridge creates a new session bridge
func NewBridge(cfg *config.Config, store TokenStore, carts CartClearer) *Bridge {
	return &Bridge{
		tokens: NewTokenManager(cfg),
		store:  store,
		carts:  carts,
		config: cfg,
	}
}

// Login establishes a session for any non-empty username/password pair.
// No password verification takes place and no user record is consulted.
func (b *Bridge) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrMissingCredentials
	}

	sessionID := uuid.New().String()
	if err := b.store.Put(ctx, sessionID, username, b.config.Session.Lifetime); err != nil {
		return "", err
	}

	return b.tokens.Generate(username, sessionID)
}

// Resolve returns the owner key for a session token. Both the token
// signature and the server-side record must hold; a revoked session fails
// even if the token itself has not expired.
func (b *Bridge) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrUnauthenticated
	}

	claims, err := b.tokens.Validate(token)
	if err != nil {
		return "", ErrUnauthenticated
	}

	username, ok, err := b.store.Get(ctx, claims.SessionID)
	if err != nil {
		return "", err
	}
	if !ok || username != claims.Username {
		return "", ErrUnauthenticated
	}

	return username, nil
}

// Logout invalidates the session. With clearCart set, the owner's cart is
// emptied first; otherwise cart lines persist keyed by the username, to be
// rejoined on the next login. Logging out without a valid session is a
// no-op.
func (b *Bridge) Logout(ctx context.Context, token string, clearCart bool) error {
	ownerKey, err := b.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			return nil
		}
		return err
	}

	if clearCart {
		if err := b.carts.Clear(ctx, ownerKey); err != nil {
			return err
		}
	}

	claims, err := b.tokens.Validate(token)
	if err != nil {
		return nil
	}
	return b.store.Delete(ctx, claims.SessionID)
}

// SafeNext returns next if it is a same-origin relative path, otherwise
// the default landing page. Protocol-relative URLs ("//host") are
// rejected along with absolute ones.
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}
