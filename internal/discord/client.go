// Package discord owns everything that touches the Discord gateway:
// the session wrapper, slash-command registration, and the interaction
// dispatcher for /verify and /assign.
package discord

import (
	"context"
	"fmt"
	"slices"

	"github.com/bwmarrin/discordgo"

	"github.com/CETEN-BDE/bot-discord/internal/roles"
)

// Client wraps the gateway session behind the narrow operations the
// rest of the codebase needs, so flow and reconciliation logic never
// see the full discordgo surface.
type Client struct {
	session *discordgo.Session
}

var _ roles.Platform = (*Client)(nil)

func NewClient(token string) (*Client, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord: failed to create session: %w", err)
	}

	// Role mutation needs member access on top of the guild events.
	session.Identify.Intents = discordgo.IntentGuilds | discordgo.IntentGuildMembers

	return &Client{session: session}, nil
}

// Session exposes the underlying gateway session for handler
// attachment and lifecycle control.
func (c *Client) Session() *discordgo.Session {
	return c.session
}

func (c *Client) Open() error {
	return c.session.Open()
}

func (c *Client) Close() error {
	return c.session.Close()
}

// Guild confirms the guild is reachable by the bot.
func (c *Client) Guild(ctx context.Context, guildID string) error {
	_, err := c.session.Guild(guildID, discordgo.WithContext(ctx))
	return err
}

// Member confirms the user is a member of the guild.
func (c *Client) Member(ctx context.Context, guildID, userID string) error {
	_, err := c.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	return err
}

// GrantRole adds a role to a member. Discord treats granting an
// already-held role as a no-op success.
func (c *Client) GrantRole(ctx context.Context, guildID, userID, roleID string) error {
	return c.session.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx))
}

// BotHasManageRoles reports whether the bot's own member holds Manage
// Roles in the guild, computed from its role set. Administrator
// implies it.
func (c *Client) BotHasManageRoles(ctx context.Context, guildID string) (bool, error) {
	botID := c.session.State.User.ID

	guild, err := c.session.Guild(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("discord: failed to fetch guild %s: %w", guildID, err)
	}

	member, err := c.session.GuildMember(guildID, botID, discordgo.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("discord: failed to fetch bot member in %s: %w", guildID, err)
	}

	var perms int64
	for _, role := range guild.Roles {
		// The @everyone role shares the guild's ID.
		if role.ID == guildID || slices.Contains(member.Roles, role.ID) {
			perms |= role.Permissions
		}
	}

	if perms&discordgo.PermissionAdministrator != 0 {
		return true, nil
	}
	return perms&discordgo.PermissionManageRoles != 0, nil
}
