package bot

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"vending-bot/internal/domain"
)

func catalogEmbed(vm *domain.VendingMachine) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{Title: "🏪 自動販売機", Color: 0x00ff00}
	if len(vm.Items) == 0 {
		embed.Description = "商品がありません。"
		return embed
	}
	for _, id := range sortedItemIDs(vm) {
		item := vm.Items[id]
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%s - %dコイン", item.Name, item.Price),
			Value:  fmt.Sprintf("在庫: %d個\nID: %s", item.Stock, id),
			Inline: true,
		})
	}
	return embed
}

// catalogComponents builds one buy button per item, five per row, capped at
// the platform's 25-button limit. Out-of-stock items render disabled.
func catalogComponents(vm *domain.VendingMachine) []discordgo.MessageComponent {
	ids := sortedItemIDs(vm)
	if len(ids) > maxCatalogButtons {
		ids = ids[:maxCatalogButtons]
	}

	var rows []discordgo.MessageComponent
	var row []discordgo.MessageComponent
	for _, id := range ids {
		item := vm.Items[id]
		style := discordgo.PrimaryButton
		if item.Stock <= 0 {
			style = discordgo.SecondaryButton
		}
		row = append(row, discordgo.Button{
			Label:    fmt.Sprintf("%s (%dコイン)", item.Name, item.Price),
			Style:    style,
			CustomID: buyButtonPrefix + id,
			Disabled: item.Stock <= 0,
		})
		if len(row) == 5 {
			rows = append(rows, discordgo.ActionsRow{Components: row})
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, discordgo.ActionsRow{Components: row})
	}
	return rows
}

func sortedItemIDs(vm *domain.VendingMachine) []string {
	ids := make([]string, 0, len(vm.Items))
	for id := range vm.Items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.Atoi(ids[i])
		b, errB := strconv.Atoi(ids[j])
		if errA != nil || errB != nil {
			return ids[i] < ids[j]
		}
		return a < b
	})
	return ids
}

func openTicketEmbed(id, subject, description, creatorID string) *discordgo.MessageEmbed {
	if description == "" {
		description = "なし"
	}
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🎫 チケット #%s", id),
		Description: fmt.Sprintf("**件名:** %s\n**説明:** %s\n**作成者:** <@%s>", subject, description, creatorID),
		Color:       0xff9900,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "ステータス", Value: "🟢 オープン", Inline: true},
			{Name: "作成日時", Value: discordTimestamp(), Inline: true},
		},
	}
}

func closedTicketEmbed(id string, t *domain.Ticket) *discordgo.MessageEmbed {
	description := t.Description
	if description == "" {
		description = "なし"
	}
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🎫 チケット #%s (クローズ済み)", id),
		Description: fmt.Sprintf("**件名:** %s\n**説明:** %s\n**作成者:** <@%s>", t.Subject, description, t.UserID),
		Color:       0x808080,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "ステータス", Value: "🔴 クローズ済み", Inline: true},
			{Name: "クローズ日時", Value: discordTimestamp(), Inline: true},
			{Name: "クローズ実行者", Value: fmt.Sprintf("<@%s>", t.ClosedBy), Inline: true},
		},
	}
}

func closeButtonRow(ticketID string, disabled bool) discordgo.MessageComponent {
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{discordgo.Button{
		Label:    "チケットを閉じる",
		Style:    discordgo.DangerButton,
		CustomID: closeButtonPrefix + ticketID,
		Disabled: disabled,
		Emoji:    &discordgo.ComponentEmoji{Name: "🔒"},
	}}}
}

func transactionsEmbed(txs []domain.Transaction) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{Title: "📊 取引履歴", Color: 0x0099ff}
	for n, t := range txs {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%d. %s", n+1, t.ItemName),
			Value:  fmt.Sprintf("価格: %dコイン\n日時: %s", t.Price, t.Timestamp.Format("2006-01-02")),
			Inline: true,
		})
	}
	return embed
}
