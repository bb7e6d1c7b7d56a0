package bot

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

func invoker(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

func isAdmin(i *discordgo.InteractionCreate) bool {
	return hasPermission(i, discordgo.PermissionAdministrator)
}

func hasPermission(i *discordgo.InteractionCreate, perm int64) bool {
	return i.Member != nil && i.Member.Permissions&perm != 0
}

func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, o := range opts {
		m[o.Name] = o
	}
	return m
}

func modalValue(data discordgo.ModalSubmitInteractionData, id string) string {
	for _, c := range data.Components {
		row, ok := c.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, rc := range row.Components {
			if in, ok := rc.(*discordgo.TextInput); ok && in.CustomID == id {
				return in.Value
			}
		}
	}
	return ""
}

func displayName(u *discordgo.User) string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

// memberName resolves a guild member's display name for listings.
func (b *Bot) memberName(guildID, userID string) string {
	m, err := b.session.GuildMember(guildID, userID)
	if err != nil {
		return "Unknown User"
	}
	if m.Nick != "" {
		return m.Nick
	}
	return displayName(m.User)
}

func (b *Bot) respond(i *discordgo.InteractionCreate, content string, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	b.respondData(i, discordgo.InteractionResponseChannelMessageWithSource, data)
}

func (b *Bot) respondData(i *discordgo.InteractionCreate, typ discordgo.InteractionResponseType, data *discordgo.InteractionResponseData) {
	err := b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{Type: typ, Data: data})
	if err != nil {
		b.log.Error("interaction response failed", "error", err)
	}
}

func (b *Bot) followup(i *discordgo.InteractionCreate, content string) {
	_, err := b.session.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		b.log.Error("interaction followup failed", "error", err)
	}
}

// discordTimestamp renders the current time as a client-localized Discord
// timestamp.
func discordTimestamp() string {
	return fmt.Sprintf("<t:%d:F>", time.Now().Unix())
}
