package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/CETEN-BDE/bot-discord/internal/auth/policy"
)

type Config struct {
	Port   string `env:"PORT" envDefault:"3000"`
	AppURL string `env:"APP_URL,required,notEmpty"`

	DiscordToken string `env:"DISCORD_TOKEN,required,notEmpty"`

	SSOClientID     string `env:"SSO_CLIENT_ID,required,notEmpty"`
	SSOClientSecret string `env:"SSO_CLIENT_SECRET,required,notEmpty"`
	SSOCallbackURL  string `env:"SSO_CALLBACK_URL,required,notEmpty"`

	AdminRoleID     string `env:"ADMIN_ROLE_ID"`
	ModeratorRoleID string `env:"MODERATOR_ROLE_ID"`
	PremiumRoleID   string `env:"PREMIUM_ROLE_ID"`
	VerifiedRoleID  string `env:"VERIFIED_ROLE_ID"`

	AdminEmailDomain     string `env:"ADMIN_EMAIL_DOMAIN" envDefault:"yourcompany.com"`
	ModeratorEmailDomain string `env:"MODERATOR_EMAIL_DOMAIN" envDefault:"partner.com"`
}

func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// RoleMapping builds the label-to-role table from the configured role
// IDs. Labels without a configured role are absent, which the
// reconciler treats as "skip".
func (c Config) RoleMapping() map[policy.Label]string {
	m := make(map[policy.Label]string)
	if c.AdminRoleID != "" {
		m[policy.LabelAdmin] = c.AdminRoleID
	}
	if c.ModeratorRoleID != "" {
		m[policy.LabelModerator] = c.ModeratorRoleID
	}
	if c.PremiumRoleID != "" {
		m[policy.LabelPremium] = c.PremiumRoleID
	}
	return m
}

// DomainLabels builds the email-domain-to-label table for the policy
// resolver.
func (c Config) DomainLabels() map[string]policy.Label {
	m := make(map[string]policy.Label)
	if c.AdminEmailDomain != "" {
		m[c.AdminEmailDomain] = policy.LabelAdmin
	}
	if c.ModeratorEmailDomain != "" {
		m[c.ModeratorEmailDomain] = policy.LabelModerator
	}
	return m
}
