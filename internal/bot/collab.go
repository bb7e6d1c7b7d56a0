package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"vending-bot/internal/service"
)

// roleGranter implements service.RoleGranter over the Discord session.
type roleGranter struct {
	s *discordgo.Session
}

func NewRoleGranter(s *discordgo.Session) service.RoleGranter {
	return &roleGranter{s: s}
}

func (g *roleGranter) GrantVerifiedRole(guildID, userID string) (bool, error) {
	roles, err := g.s.GuildRoles(guildID)
	if err != nil {
		return false, fmt.Errorf("list guild roles: %w", err)
	}
	for _, r := range roles {
		if r.Name != verifiedRoleName {
			continue
		}
		if err := g.s.GuildMemberRoleAdd(guildID, userID, r.ID); err != nil {
			return true, fmt.Errorf("add role: %w", err)
		}
		return true, nil
	}
	return false, nil
}

// channelProvisioner implements service.ChannelProvisioner: it keeps the
// ticket category alive and creates one private text channel per ticket,
// readable by the creator, the guild owner and administrator roles.
type channelProvisioner struct {
	s *discordgo.Session
}

func NewChannelProvisioner(s *discordgo.Session) service.ChannelProvisioner {
	return &channelProvisioner{s: s}
}

func (p *channelProvisioner) ProvisionTicketChannel(guildID, ticketID, userID, username string) (string, error) {
	categoryID, err := p.ensureCategory(guildID)
	if err != nil {
		return "", err
	}

	guild, err := p.s.Guild(guildID)
	if err != nil {
		return "", fmt.Errorf("lookup guild: %w", err)
	}

	memberPerms := int64(discordgo.PermissionViewChannel | discordgo.PermissionSendMessages)
	overwrites := []*discordgo.PermissionOverwrite{
		// The @everyone role shares the guild's id.
		{ID: guildID, Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionViewChannel},
		{ID: userID, Type: discordgo.PermissionOverwriteTypeMember, Allow: memberPerms},
		{ID: guild.OwnerID, Type: discordgo.PermissionOverwriteTypeMember, Allow: memberPerms},
	}
	for _, r := range guild.Roles {
		if r.Permissions&discordgo.PermissionAdministrator != 0 {
			overwrites = append(overwrites, &discordgo.PermissionOverwrite{
				ID:    r.ID,
				Type:  discordgo.PermissionOverwriteTypeRole,
				Allow: memberPerms,
			})
		}
	}

	ch, err := p.s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:                 fmt.Sprintf("ticket-%s-%s", ticketID, username),
		Type:                 discordgo.ChannelTypeGuildText,
		ParentID:             categoryID,
		PermissionOverwrites: overwrites,
	})
	if err != nil {
		return "", fmt.Errorf("create ticket channel: %w", err)
	}
	return ch.ID, nil
}

func (p *channelProvisioner) ensureCategory(guildID string) (string, error) {
	channels, err := p.s.GuildChannels(guildID)
	if err != nil {
		return "", fmt.Errorf("list guild channels: %w", err)
	}
	for _, c := range channels {
		if c.Type == discordgo.ChannelTypeGuildCategory && c.Name == ticketCategoryName {
			return c.ID, nil
		}
	}
	c, err := p.s.GuildChannelCreate(guildID, ticketCategoryName, discordgo.ChannelTypeGuildCategory)
	if err != nil {
		return "", fmt.Errorf("create ticket category: %w", err)
	}
	return c.ID, nil
}
