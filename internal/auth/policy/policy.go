// Package policy decides which abstract role labels a verified external
// identity is entitled to. It is the ONLY place where profile-to-role
// logic lives; translating labels into Discord role grants happens in
// the roles package.
package policy

import (
	"strings"

	"github.com/CETEN-BDE/bot-discord/internal/auth"
)

// Label is an abstract role tag, decoupled from any Discord role ID.
// The set is open-ended; these are the labels the canonical policy
// knows about.
type Label string

const (
	LabelAdmin     Label = "admin"
	LabelModerator Label = "moderator"
	LabelPremium   Label = "premium"
	LabelVerified  Label = "verified"
)

// Resolver maps a verified profile to the role labels it earns.
type Resolver interface {
	Resolve(profile *auth.Profile) []Label
}

// Canonical resolves labels from the profile's email domain suffix.
// It is a pure function of the email: identical input always yields an
// identical label set. A profile with an email always earns "verified"
// on top of any domain matches; a profile without one earns nothing,
// not even "verified" (no email means no asserted identity to verify).
type Canonical struct {
	domains map[string]Label
}

// NewCanonical builds a resolver from a domain-suffix-to-label table.
func NewCanonical(domains map[string]Label) *Canonical {
	return &Canonical{domains: domains}
}

func (c *Canonical) Resolve(profile *auth.Profile) []Label {
	if profile == nil || profile.Email == "" {
		return nil
	}

	email := strings.ToLower(profile.Email)

	var labels []Label
	for domain, label := range c.domains {
		if strings.HasSuffix(email, "@"+strings.ToLower(domain)) {
			labels = append(labels, label)
		}
	}

	return append(labels, LabelVerified)
}
