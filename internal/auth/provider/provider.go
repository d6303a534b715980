package provider

import (
	"context"

	"github.com/CETEN-BDE/bot-discord/internal/auth"
)

// OAuthProvider defines the contract for the external identity
// provider. Implementations return identity facts only and must not
// perform role decisions or record storage.
type OAuthProvider interface {
	// AuthCodeURL returns the provider's authorization URL. The state
	// parameter carries the caller's correlation token and is echoed
	// back unmodified on the callback.
	AuthCodeURL(state string) string

	// Exchange swaps the authorization code for provider credentials
	// and returns a normalized profile. No auth decisions are made here.
	Exchange(ctx context.Context, code string) (*auth.Profile, error)
}
