package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/CETEN-BDE/bot-discord/internal/logger"
)

// User-visible command responses. Platform errors never leak into
// these; full detail goes to the operator log.
const (
	msgInvokerDenied = "You do not have permission to assign roles."
	msgBotDenied     = "I do not have permission to manage roles in this server."
	msgAssignFailed  = "Failed to assign role. Make sure the bot has the necessary permissions."
)

// assignPlatform is the slice of the client the assign command needs.
type assignPlatform interface {
	BotHasManageRoles(ctx context.Context, guildID string) (bool, error)
	GrantRole(ctx context.Context, guildID, userID, roleID string) error
}

type assignRequest struct {
	guildID      string
	invokerPerms int64
	targetID     string
	targetName   string
	roleID       string
	roleName     string
}

// runAssign grants one role to one member. Both the invoker and the
// bot must hold Manage Roles; either check failing denies the request
// before any mutation is attempted.
func runAssign(ctx context.Context, platform assignPlatform, req assignRequest) string {
	if req.invokerPerms&discordgo.PermissionManageRoles == 0 {
		return msgInvokerDenied
	}

	botOK, err := platform.BotHasManageRoles(ctx, req.guildID)
	if err != nil {
		logger.Error("failed to check bot permissions", map[string]any{
			"guild_id": req.guildID,
			"error":    err.Error(),
		})
		return msgAssignFailed
	}
	if !botOK {
		return msgBotDenied
	}

	if err := platform.GrantRole(ctx, req.guildID, req.targetID, req.roleID); err != nil {
		logger.Error("role assignment failed", map[string]any{
			"guild_id": req.guildID,
			"user_id":  req.targetID,
			"role_id":  req.roleID,
			"error":    err.Error(),
		})
		return msgAssignFailed
	}

	logger.Info("role assigned", map[string]any{
		"guild_id": req.guildID,
		"user_id":  req.targetID,
		"role_id":  req.roleID,
	})

	return fmt.Sprintf("Successfully assigned %s to %s", req.roleName, req.targetName)
}
