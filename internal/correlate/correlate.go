// Package correlate issues and resolves the correlation token threaded
// through the external OAuth redirect. The token binds the Discord user
// and guild that started a verification flow; it rides in the provider's
// `state` parameter, so no server-side session is needed between the
// login redirect and the callback.
//
// The token is neither signed nor time-boxed. Anyone who completes a
// Google login can present a forged state and have roles granted to a
// Discord user of their choosing, and an old token replays forever.
// This mirrors the deployed wire contract; hardening it (signature +
// expiry) changes the format and must be coordinated with operators.
package correlate

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed is returned when a token cannot be decoded back into a
// complete Link. Callers treat it as a terminal flow failure, never as
// a partial result.
var ErrMalformed = errors.New("correlate: malformed token")

// Link identifies the Discord user and guild a verification flow
// belongs to.
type Link struct {
	UserID  string `json:"discordUserId"`
	GuildID string `json:"guildId"`
}

// Issue encodes a Link into a URL-safe opaque token. Pure encoding, no
// side effects.
func Issue(userID, guildID string) (string, error) {
	if userID == "" || guildID == "" {
		return "", errors.New("correlate: missing user or guild id")
	}

	data, err := json.Marshal(Link{
		UserID:  userID,
		GuildID: guildID,
	})
	if err != nil {
		return "", fmt.Errorf("correlate: failed to encode link: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Resolve decodes a token back into the Link it was issued for.
// Undecodable input and tokens missing either field fail with
// ErrMalformed.
func Resolve(token string) (Link, error) {
	if token == "" {
		return Link{}, fmt.Errorf("%w: empty", ErrMalformed)
	}

	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Link{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var link Link
	if err := json.Unmarshal(data, &link); err != nil {
		return Link{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if link.UserID == "" || link.GuildID == "" {
		return Link{}, fmt.Errorf("%w: missing user or guild id", ErrMalformed)
	}

	return link, nil
}
