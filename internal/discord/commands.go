package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/CETEN-BDE/bot-discord/internal/logger"
)

const (
	commandVerify = "verify"
	commandAssign = "assign"
)

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        commandVerify,
		Description: "Verify your account with SSO and get roles",
	},
	{
		Name:        commandAssign,
		Description: "Assigns a role to a user.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "The user to assign the role to",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionRole,
				Name:        "role",
				Description: "The role to assign",
				Required:    true,
			},
		},
	},
}

// registerCommands replaces the global application commands on every
// startup, as the source bot did. Failures are logged per command and
// do not stop the session.
func registerCommands(s *discordgo.Session) {
	appID := s.State.User.ID

	for _, cmd := range commands {
		if _, err := s.ApplicationCommandCreate(appID, "", cmd); err != nil {
			logger.Error("failed to register command", map[string]any{
				"command": cmd.Name,
				"error":   err.Error(),
			})
		}
	}

	logger.Info("application commands registered", map[string]any{
		"count": len(commands),
	})
}
