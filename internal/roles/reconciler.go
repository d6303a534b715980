// Package roles translates abstract role labels into Discord role
// grants. Reconciliation is best-effort over the label set: one failed
// grant never blocks the rest, and the outcome of every label is
// reported back to the caller instead of raised.
package roles

import (
	"context"
	"errors"
	"fmt"

	"github.com/CETEN-BDE/bot-discord/internal/auth/policy"
)

var (
	// ErrGuildNotFound aborts reconciliation before any grant is attempted.
	ErrGuildNotFound = errors.New("roles: guild not found")
	// ErrMemberNotFound aborts reconciliation before any grant is attempted.
	ErrMemberNotFound = errors.New("roles: member not found in guild")
)

// Platform is the narrow slice of the chat platform the reconciler
// needs. The production implementation wraps the Discord session; tests
// use a fake.
type Platform interface {
	// Guild confirms the guild is reachable by the bot.
	Guild(ctx context.Context, guildID string) error
	// Member confirms the user is a member of the guild.
	Member(ctx context.Context, guildID, userID string) error
	// GrantRole adds a role to a member. Granting an already-held role
	// is a no-op success on Discord's side.
	GrantRole(ctx context.Context, guildID, userID, roleID string) error
}

// Outcome classifies what happened to a single label during
// reconciliation.
type Outcome string

const (
	OutcomeGranted Outcome = "granted"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped" // label has no configured role mapping
)

// Grant is the per-label result of one reconciliation.
type Grant struct {
	Label   policy.Label
	RoleID  string // empty when skipped
	Outcome Outcome
	Err     error // set when Outcome is OutcomeFailed
}

// Report collects the per-label results of one reconciliation run.
type Report struct {
	Grants []Grant
}

// Failed returns the grants that errored.
func (r *Report) Failed() []Grant {
	var out []Grant
	for _, g := range r.Grants {
		if g.Outcome == OutcomeFailed {
			out = append(out, g)
		}
	}
	return out
}

// Granted returns the grants that succeeded.
func (r *Report) Granted() []Grant {
	var out []Grant
	for _, g := range r.Grants {
		if g.Outcome == OutcomeGranted {
			out = append(out, g)
		}
	}
	return out
}

// Reconciler applies a resolved label set to a guild member. The
// label-to-role table is static configuration; a label with no entry is
// silently skipped. When a verified role is configured it is granted on
// every run regardless of the label set, mirroring "every authenticated
// user gets verified".
type Reconciler struct {
	platform       Platform
	mapping        map[policy.Label]string
	verifiedRoleID string
}

func NewReconciler(platform Platform, mapping map[policy.Label]string, verifiedRoleID string) *Reconciler {
	return &Reconciler{
		platform:       platform,
		mapping:        mapping,
		verifiedRoleID: verifiedRoleID,
	}
}

// Apply grants the mapped role for each label to the member. Guild and
// member are checked up front; either missing aborts with no grants
// attempted. After that, failures are recorded per label and the run
// continues.
func (r *Reconciler) Apply(ctx context.Context, guildID, memberID string, labels []policy.Label) (*Report, error) {
	if err := r.platform.Guild(ctx, guildID); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrGuildNotFound, guildID, err)
	}

	if err := r.platform.Member(ctx, guildID, memberID); err != nil {
		return nil, fmt.Errorf("%w: %s in %s: %v", ErrMemberNotFound, memberID, guildID, err)
	}

	report := &Report{}

	for _, label := range labels {
		roleID, ok := r.mapping[label]
		if !ok {
			report.Grants = append(report.Grants, Grant{
				Label:   label,
				Outcome: OutcomeSkipped,
			})
			continue
		}

		report.Grants = append(report.Grants, r.grant(ctx, guildID, memberID, label, roleID))
	}

	if r.verifiedRoleID != "" {
		report.Grants = append(report.Grants, r.grant(ctx, guildID, memberID, policy.LabelVerified, r.verifiedRoleID))
	}

	return report, nil
}

func (r *Reconciler) grant(ctx context.Context, guildID, memberID string, label policy.Label, roleID string) Grant {
	if err := r.platform.GrantRole(ctx, guildID, memberID, roleID); err != nil {
		return Grant{
			Label:   label,
			RoleID:  roleID,
			Outcome: OutcomeFailed,
			Err:     err,
		}
	}

	return Grant{
		Label:   label,
		RoleID:  roleID,
		Outcome: OutcomeGranted,
	}
}
