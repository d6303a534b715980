package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CETEN-BDE/bot-discord/internal/auth/policy"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_URL", "https://bot.example")
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("SSO_CLIENT_ID", "client-id")
	t.Setenv("SSO_CLIENT_SECRET", "client-secret")
	t.Setenv("SSO_CALLBACK_URL", "https://bot.example/auth/callback")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "3000", cfg.Port)
	require.Equal(t, "yourcompany.com", cfg.AdminEmailDomain)
	require.Equal(t, "partner.com", cfg.ModeratorEmailDomain)
}

func TestLoadRequiresDiscordToken(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DISCORD_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
}

func TestRoleMappingSkipsUnconfiguredLabels(t *testing.T) {
	cfg := Config{
		AdminRoleID:   "role-admin",
		PremiumRoleID: "role-premium",
	}

	m := cfg.RoleMapping()
	require.Equal(t, map[policy.Label]string{
		policy.LabelAdmin:   "role-admin",
		policy.LabelPremium: "role-premium",
	}, m)
	require.NotContains(t, m, policy.LabelModerator)
}

func TestDomainLabels(t *testing.T) {
	cfg := Config{
		AdminEmailDomain:     "yourcompany.com",
		ModeratorEmailDomain: "partner.com",
	}

	require.Equal(t, map[string]policy.Label{
		"yourcompany.com": policy.LabelAdmin,
		"partner.com":     policy.LabelModerator,
	}, cfg.DomainLabels())
}
