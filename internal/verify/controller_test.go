package verify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CETEN-BDE/bot-discord/internal/auth"
	"github.com/CETEN-BDE/bot-discord/internal/auth/policy"
	"github.com/CETEN-BDE/bot-discord/internal/correlate"
	"github.com/CETEN-BDE/bot-discord/internal/identity"
	"github.com/CETEN-BDE/bot-discord/internal/roles"
)

type fakeProvider struct {
	profile     *auth.Profile
	exchangeErr error
	lastState   string
}

func (f *fakeProvider) AuthCodeURL(state string) string {
	f.lastState = state
	return "https://provider.example/authorize?state=" + state
}

func (f *fakeProvider) Exchange(ctx context.Context, code string) (*auth.Profile, error) {
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return f.profile, nil
}

type applyCall struct {
	guildID, memberID string
	labels            []policy.Label
}

type fakeReconciler struct {
	report *roles.Report
	err    error
	calls  []applyCall
}

func (f *fakeReconciler) Apply(ctx context.Context, guildID, memberID string, labels []policy.Label) (*roles.Report, error) {
	f.calls = append(f.calls, applyCall{guildID, memberID, labels})
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

func newTestController(p *fakeProvider, r *fakeReconciler, store identity.Store) *Controller {
	resolver := policy.NewCanonical(map[string]policy.Label{
		"yourcompany.com": policy.LabelAdmin,
	})
	return NewController(p, resolver, r, store, "https://bot.example")
}

func TestLoginURLEscapesParameters(t *testing.T) {
	c := newTestController(&fakeProvider{}, &fakeReconciler{}, identity.NewInMemory())

	u := c.LoginURL("123", "456")
	require.Equal(t, "https://bot.example/auth/login?guildId=456&userId=123", u)
}

func TestBeginEmbedsResolvableState(t *testing.T) {
	p := &fakeProvider{}
	c := newTestController(p, &fakeReconciler{}, identity.NewInMemory())

	_, err := c.Begin("123", "456")
	require.NoError(t, err)

	link, err := correlate.Resolve(p.lastState)
	require.NoError(t, err)
	require.Equal(t, "123", link.UserID)
	require.Equal(t, "456", link.GuildID)
}

func TestCompleteHappyPath(t *testing.T) {
	p := &fakeProvider{profile: &auth.Profile{
		ProviderUserID: "sub-1",
		Email:          "a@yourcompany.com",
	}}
	rec := &fakeReconciler{report: &roles.Report{Grants: []roles.Grant{
		{Label: policy.LabelAdmin, RoleID: "role-admin", Outcome: roles.OutcomeGranted},
	}}}
	store := identity.NewInMemory()
	c := newTestController(p, rec, store)

	state, err := correlate.Issue("u1", "g1")
	require.NoError(t, err)

	report, err := c.Complete(context.Background(), state, "auth-code")
	require.NoError(t, err)
	require.Len(t, report.Granted(), 1)

	require.Len(t, rec.calls, 1)
	require.Equal(t, "g1", rec.calls[0].guildID)
	require.Equal(t, "u1", rec.calls[0].memberID)
	require.ElementsMatch(t,
		[]policy.Label{policy.LabelAdmin, policy.LabelVerified},
		rec.calls[0].labels)

	got, err := store.Get(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "a@yourcompany.com", got.ExternalIdentity)
}

func TestCompleteRejectsMalformedState(t *testing.T) {
	rec := &fakeReconciler{}
	c := newTestController(&fakeProvider{}, rec, identity.NewInMemory())

	_, err := c.Complete(context.Background(), "not-a-token", "auth-code")
	require.ErrorIs(t, err, correlate.ErrMalformed)
	require.Empty(t, rec.calls)
}

func TestCompleteWrapsExchangeFailure(t *testing.T) {
	p := &fakeProvider{exchangeErr: errors.New("invalid_grant")}
	rec := &fakeReconciler{}
	c := newTestController(p, rec, identity.NewInMemory())

	state, err := correlate.Issue("u1", "g1")
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), state, "bad-code")
	require.ErrorIs(t, err, ErrAuthentication)
	require.Empty(t, rec.calls)
}

func TestCompletePropagatesReconcileAbort(t *testing.T) {
	p := &fakeProvider{profile: &auth.Profile{Email: "a@random.org"}}
	rec := &fakeReconciler{err: roles.ErrGuildNotFound}
	store := identity.NewInMemory()
	c := newTestController(p, rec, store)

	state, err := correlate.Issue("u1", "g1")
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), state, "auth-code")
	require.ErrorIs(t, err, roles.ErrGuildNotFound)

	// No record is stored when reconciliation aborts.
	got, err := store.Get(context.Background(), "u1")
	require.NoError(t, err)
	require.Nil(t, got)
}
