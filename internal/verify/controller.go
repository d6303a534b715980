// Package verify orchestrates one verification flow: command trigger,
// correlation token issuance, redirect to the identity provider,
// callback, policy resolution, role reconciliation, and identity
// record storage. Flow state between the redirect and the callback
// lives entirely inside the correlation token.
package verify

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/CETEN-BDE/bot-discord/internal/auth/policy"
	"github.com/CETEN-BDE/bot-discord/internal/auth/provider"
	"github.com/CETEN-BDE/bot-discord/internal/correlate"
	"github.com/CETEN-BDE/bot-discord/internal/identity"
	"github.com/CETEN-BDE/bot-discord/internal/logger"
	"github.com/CETEN-BDE/bot-discord/internal/roles"
)

// ErrAuthentication covers failures of the provider exchange itself:
// the user never authenticated, so they are sent to the failure page
// rather than shown an internal error.
var ErrAuthentication = errors.New("verify: provider authentication failed")

// Reconciler is the slice of the roles package the controller calls.
type Reconciler interface {
	Apply(ctx context.Context, guildID, memberID string, labels []policy.Label) (*roles.Report, error)
}

// Controller drives a flow instance from start to completion. It holds
// no per-flow state; every dependency is injected so the flow logic is
// testable against fakes.
type Controller struct {
	provider   provider.OAuthProvider
	policy     policy.Resolver
	reconciler Reconciler
	store      identity.Store
	appURL     string
}

func NewController(
	oauthProvider provider.OAuthProvider,
	policyResolver policy.Resolver,
	reconciler Reconciler,
	store identity.Store,
	appURL string,
) *Controller {
	return &Controller{
		provider:   oauthProvider,
		policy:     policyResolver,
		reconciler: reconciler,
		store:      store,
		appURL:     appURL,
	}
}

// LoginURL builds the link handed to the invoking Discord user. The
// user follows it to /auth/login, which starts the provider redirect.
func (c *Controller) LoginURL(userID, guildID string) string {
	q := url.Values{}
	q.Set("userId", userID)
	q.Set("guildId", guildID)
	return c.appURL + "/auth/login?" + q.Encode()
}

// Begin issues the correlation token for a flow and returns the
// provider authorization URL carrying it as state.
func (c *Controller) Begin(userID, guildID string) (string, error) {
	token, err := correlate.Issue(userID, guildID)
	if err != nil {
		return "", err
	}
	return c.provider.AuthCodeURL(token), nil
}

// Complete handles the provider callback: resolve the correlation
// token, exchange the code, resolve the role labels, reconcile them
// against the guild, and record the identity mapping.
//
// Error mapping for callers:
//   - correlate.ErrMalformed: bad state, HTTP 400, Discord never contacted
//   - ErrAuthentication: exchange failed, send user to the failure page
//   - anything else: internal failure, HTTP 500, generic body
func (c *Controller) Complete(ctx context.Context, state, code string) (*roles.Report, error) {
	link, err := correlate.Resolve(state)
	if err != nil {
		return nil, err
	}

	profile, err := c.provider.Exchange(ctx, code)
	if err != nil {
		logger.Error("oauth exchange failed", map[string]any{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}

	labels := c.policy.Resolve(profile)

	report, err := c.reconciler.Apply(ctx, link.GuildID, link.UserID, labels)
	if err != nil {
		logger.Error("role reconciliation aborted", map[string]any{
			"guild_id": link.GuildID,
			"user_id":  link.UserID,
			"error":    err.Error(),
		})
		return nil, err
	}

	for _, g := range report.Failed() {
		logger.Warn("role grant failed", map[string]any{
			"guild_id": link.GuildID,
			"user_id":  link.UserID,
			"label":    string(g.Label),
			"role_id":  g.RoleID,
			"error":    g.Err.Error(),
		})
	}

	if err := c.store.Put(ctx, link.UserID, identity.Record{
		ExternalIdentity: profile.Email,
		Labels:           labels,
	}); err != nil {
		return nil, fmt.Errorf("verify: failed to store identity record: %w", err)
	}

	logger.Info("verification completed", map[string]any{
		"guild_id": link.GuildID,
		"user_id":  link.UserID,
		"granted":  len(report.Granted()),
		"failed":   len(report.Failed()),
	})

	return report, nil
}
