// Package identity keeps the mapping from Discord users to the external
// identity they verified with. The table is an advisory cache, not a
// source of truth: role grants already issued stand on their own, and
// the mapping is lost on restart by design.
package identity

import (
	"context"

	"github.com/CETEN-BDE/bot-discord/internal/auth/policy"
)

// Record links a Discord user to the external identity that verified
// them, along with the labels resolved at that time. Each successful
// callback overwrites the previous record for the same user.
type Record struct {
	ExternalIdentity string         // provider email the user verified with
	Labels           []policy.Label // labels resolved during that flow
}

// Store defines how identity records are stored and retrieved.
// Implementations must tolerate concurrent callbacks for the same user;
// last write wins, no merge.
type Store interface {
	Put(ctx context.Context, discordUserID string, r Record) error
	Get(ctx context.Context, discordUserID string) (*Record, error)
}
