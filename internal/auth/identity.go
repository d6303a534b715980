package auth

// Profile represents a normalized external identity returned by the
// OAuth provider after a successful authorization-code exchange. It
// contains facts only, no decisions, and is scoped to a single
// verification flow.
type Profile struct {
	ProviderUserID string // provider-scoped unique user identifier (sub)
	Email          string // email returned by provider
	DisplayName    string // human-readable name
	AvatarURL      string // profile picture URL
	EmailVerified  bool   // whether provider asserts email ownership
}
