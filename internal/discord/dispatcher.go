package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/CETEN-BDE/bot-discord/internal/logger"
	"github.com/CETEN-BDE/bot-discord/internal/verify"
)

// Dispatcher routes incoming interactions to the verify flow or the
// direct assign command. Unrecognized commands are ignored.
type Dispatcher struct {
	client *Client
	flow   *verify.Controller
}

func NewDispatcher(client *Client, flow *verify.Controller) *Dispatcher {
	return &Dispatcher{
		client: client,
		flow:   flow,
	}
}

// Attach registers the gateway handlers on the session. Call before
// opening the session.
func (d *Dispatcher) Attach(s *discordgo.Session) {
	s.AddHandler(d.onReady)
	s.AddHandler(d.onInteraction)
}

func (d *Dispatcher) onReady(s *discordgo.Session, r *discordgo.Ready) {
	logger.Info("discord session ready", map[string]any{
		"user": r.User.Username,
	})
	registerCommands(s)
}

func (d *Dispatcher) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case commandVerify:
		d.handleVerify(s, i)
	case commandAssign:
		d.handleAssign(s, i)
	default:
		// Not ours. Ignore.
	}
}

func (d *Dispatcher) handleVerify(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.GuildID == "" || i.Member == nil || i.Member.User == nil {
		respondEphemeral(s, i, "Run /verify inside the server you want roles in.")
		return
	}

	loginURL := d.flow.LoginURL(i.Member.User.ID, i.GuildID)

	logger.Info("verification flow started", map[string]any{
		"guild_id": i.GuildID,
		"user_id":  i.Member.User.ID,
	})

	respondEphemeral(s, i, "Please authenticate using this link: "+loginURL)
}

func (d *Dispatcher) handleAssign(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.GuildID == "" || i.Member == nil {
		respondEphemeral(s, i, "Run /assign inside a server.")
		return
	}

	data := i.ApplicationCommandData()

	var (
		target *discordgo.User
		role   *discordgo.Role
	)
	for _, opt := range data.Options {
		switch opt.Name {
		case "user":
			target = opt.UserValue(s)
		case "role":
			role = opt.RoleValue(s, i.GuildID)
		}
	}

	if target == nil || role == nil {
		respondEphemeral(s, i, msgAssignFailed)
		return
	}

	msg := runAssign(context.Background(), d.client, assignRequest{
		guildID:      i.GuildID,
		invokerPerms: i.Member.Permissions,
		targetID:     target.ID,
		targetName:   target.Username,
		roleID:       role.ID,
		roleName:     role.Name,
	})

	respondEphemeral(s, i, msg)
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		logger.Error("failed to respond to interaction", map[string]any{
			"error": err.Error(),
		})
	}
}
