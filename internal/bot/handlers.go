package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"vending-bot/internal/domain"
	"vending-bot/internal/service"
)

func (b *Bot) handleAuth(i *discordgo.InteractionCreate) {
	user := invoker(i)
	res, err := b.svc.Authenticate(context.Background(), i.GuildID, user.ID)
	if err != nil {
		b.log.Error("authentication failed", "user", user.ID, "error", err)
		b.respond(i, "❌ 認証に失敗しました。しばらくしてからもう一度お試しください。", true)
		return
	}

	var msg string
	switch res.Role {
	case service.RoleGranted:
		msg = "✅ 認証が完了しました！ロールが付与されました。"
	case service.RoleMissing:
		msg = "✅ 認証が完了しました！（ロールが見つかりませんでした）"
	default:
		msg = "✅ 認証が完了しましたが、ロールの付与に失敗しました。"
	}
	b.respond(i, msg, true)
}

func (b *Bot) handleShow(i *discordgo.InteractionCreate) {
	vm, err := b.svc.Catalog(context.Background(), i.GuildID)
	if err != nil {
		b.log.Error("catalogue load failed", "guild", i.GuildID, "error", err)
		b.respond(i, "❌ 自動販売機の表示に失敗しました。", true)
		return
	}
	b.respondData(i, discordgo.InteractionResponseChannelMessageWithSource, &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{catalogEmbed(vm)},
		Components: catalogComponents(vm),
	})
}

func (b *Bot) handleNewItem(i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	name := opts["name"].StringValue()
	price := int(opts["price"].IntValue())
	stock := 1
	if o, ok := opts["stock"]; ok {
		stock = int(o.IntValue())
	}

	id, err := b.svc.AddItem(context.Background(), i.GuildID, invoker(i).ID, name, price, stock)
	if err != nil {
		b.log.Error("item creation failed", "guild", i.GuildID, "error", err)
		b.respond(i, "❌ アイテムの追加に失敗しました。", true)
		return
	}
	b.respond(i, fmt.Sprintf("✅ アイテム \"%s\" を追加しました！（ID: %s）", name, id), false)
}

func (b *Bot) handleAddCoins(i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	target := opts["user"].UserValue(b.session)
	amount := int(opts["amount"].IntValue())

	if _, err := b.svc.AddCoins(context.Background(), target.ID, amount); err != nil {
		b.log.Error("coin grant failed", "user", target.ID, "error", err)
		b.respond(i, "❌ コインの追加に失敗しました。", true)
		return
	}
	b.respond(i, fmt.Sprintf("✅ %s に %d コインを追加しました！", displayName(target), amount), false)
}

func (b *Bot) handleDeleteItem(i *discordgo.InteractionCreate) {
	itemID := optionMap(i)["item_id"].StringValue()
	name, err := b.svc.DeleteItem(context.Background(), i.GuildID, itemID)
	if err != nil {
		b.respond(i, b.itemErrorMessage(err, "アイテムの削除"), false)
		return
	}
	b.respond(i, fmt.Sprintf("✅ アイテム \"%s\" を削除しました！", name), false)
}

func (b *Bot) handleChangePrice(i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	itemID := opts["item_id"].StringValue()
	newPrice := int(opts["new_price"].IntValue())

	oldPrice, err := b.svc.ChangePrice(context.Background(), i.GuildID, itemID, newPrice)
	if err != nil {
		b.respond(i, b.itemErrorMessage(err, "価格の変更"), false)
		return
	}
	b.respond(i, fmt.Sprintf("✅ 価格を %d → %d コインに変更しました！", oldPrice, newPrice), false)
}

func (b *Bot) handleAddStock(i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	itemID := opts["item_id"].StringValue()
	amount := int(opts["amount"].IntValue())

	if err := b.svc.AddStock(context.Background(), i.GuildID, itemID, amount); err != nil {
		b.respond(i, b.itemErrorMessage(err, "在庫の追加"), false)
		return
	}
	b.respond(i, fmt.Sprintf("✅ 在庫を %d 個追加しました！", amount), false)
}

func (b *Bot) handleBuy(i *discordgo.InteractionCreate) {
	itemID := optionMap(i)["item_id"].StringValue()
	res, err := b.svc.Purchase(context.Background(), i.GuildID, invoker(i).ID, itemID)
	if err != nil {
		b.respond(i, b.purchaseErrorMessage(err), false)
		return
	}
	b.respond(i, fmt.Sprintf("✅ %s を購入しました！残りコイン: %d", res.ItemName, res.CoinsLeft), false)
}

// handleBuyButton is the button-driven purchase variant: same validation and
// mutation as /buy, then the catalogue message is re-rendered so button
// states follow the new stock.
func (b *Bot) handleBuyButton(i *discordgo.InteractionCreate, itemID string) {
	res, err := b.svc.Purchase(context.Background(), i.GuildID, invoker(i).ID, itemID)
	if err != nil {
		b.respond(i, b.purchaseErrorMessage(err), true)
		return
	}

	vm, err := b.svc.Catalog(context.Background(), i.GuildID)
	if err != nil {
		b.log.Error("catalogue reload failed", "guild", i.GuildID, "error", err)
		b.respond(i, fmt.Sprintf("✅ %s を購入しました！残りコイン: %d", res.ItemName, res.CoinsLeft), true)
		return
	}
	b.respondData(i, discordgo.InteractionResponseUpdateMessage, &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{catalogEmbed(vm)},
		Components: catalogComponents(vm),
	})
	b.followup(i, fmt.Sprintf("✅ %s を購入しました！残りコイン: %d", res.ItemName, res.CoinsLeft))
}

func (b *Bot) handleTransactions(i *discordgo.InteractionCreate) {
	txs, err := b.svc.Transactions(context.Background(), invoker(i).ID)
	if err != nil {
		b.log.Error("transaction history load failed", "error", err)
		b.respond(i, "❌ 取引履歴の表示に失敗しました。", true)
		return
	}
	if len(txs) == 0 {
		b.respond(i, "取引履歴がありません。", false)
		return
	}
	b.respondData(i, discordgo.InteractionResponseChannelMessageWithSource, &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{transactionsEmbed(txs)},
	})
}

func (b *Bot) handleCreateTicket(i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	subject := opts["subject"].StringValue()
	description := ""
	if o, ok := opts["description"]; ok {
		description = o.StringValue()
	}
	b.createTicket(i, subject, description)
}

// createTicket is shared between the /ticket command and the panel modal.
func (b *Bot) createTicket(i *discordgo.InteractionCreate, subject, description string) {
	user := invoker(i)
	res, err := b.svc.CreateTicket(context.Background(), i.GuildID, user.ID, user.Username, subject, description)
	if err != nil {
		b.log.Error("ticket creation failed", "guild", i.GuildID, "user", user.ID, "error", err)
		b.respond(i, "❌ チケットチャンネルの作成に失敗しました。", true)
		return
	}

	// Opening message in the freshly provisioned channel. Best effort: the
	// ticket record is already persisted.
	_, err = b.session.ChannelMessageSendComplex(res.ChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{openTicketEmbed(res.ID, subject, description, user.ID)},
		Components: []discordgo.MessageComponent{closeButtonRow(res.ID, false)},
	})
	if err != nil {
		b.log.Warn("failed to post ticket opening message", "ticket", res.ID, "error", err)
	}

	b.respond(i, fmt.Sprintf("✅ チケット #%s を作成しました！\n専用チャンネル: <#%s>", res.ID, res.ChannelID), true)
}

func (b *Bot) handleCloseButton(i *discordgo.InteractionCreate, ticketID string) {
	user := invoker(i)
	t, err := b.svc.CloseTicket(context.Background(), ticketID, user.ID, isAdmin(i))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		b.respond(i, "❌ チケットが見つかりません。", true)
		return
	case errors.Is(err, domain.ErrForbidden):
		b.respond(i, "❌ このチケットを閉じる権限がありません。", true)
		return
	case err != nil:
		b.log.Error("ticket close failed", "ticket", ticketID, "error", err)
		b.respond(i, "❌ チケットのクローズに失敗しました。", true)
		return
	}

	b.respondData(i, discordgo.InteractionResponseUpdateMessage, &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{closedTicketEmbed(ticketID, t)},
		Components: []discordgo.MessageComponent{closeButtonRow(ticketID, true)},
	})
	b.followup(i, "🔒 チケットがクローズされました。")
}

func (b *Bot) handleListTickets(i *discordgo.InteractionCreate) {
	entries, err := b.svc.ListTickets(context.Background(), i.GuildID)
	if err != nil {
		b.log.Error("ticket list load failed", "guild", i.GuildID, "error", err)
		b.respond(i, "❌ チケット一覧の表示に失敗しました。", true)
		return
	}
	if len(entries) == 0 {
		b.respond(i, "チケットがありません。", true)
		return
	}

	embed := &discordgo.MessageEmbed{Title: "🎫 チケット一覧", Color: 0x0099ff}
	for _, e := range entries {
		statusEmoji := "🟢"
		if e.Ticket.Status == domain.TicketClosed {
			statusEmoji = "🔴"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: fmt.Sprintf("%s チケット #%s", statusEmoji, e.ID),
			Value: fmt.Sprintf("**件名:** %s\n**作成者:** %s\n**ステータス:** %s",
				e.Ticket.Subject, b.memberName(i.GuildID, e.Ticket.UserID), e.Ticket.Status),
			Inline: true,
		})
	}
	b.respondData(i, discordgo.InteractionResponseChannelMessageWithSource, &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
		Flags:  discordgo.MessageFlagsEphemeral,
	})
}

// handleNuke recreates the invoking channel with its settings carried over
// and deletes the old one.
func (b *Bot) handleNuke(i *discordgo.InteractionCreate) {
	if !hasPermission(i, discordgo.PermissionManageChannels) {
		b.respond(i, "❌ チャンネル管理権限が必要です。", false)
		return
	}

	ch, err := b.session.Channel(i.ChannelID)
	if err != nil {
		b.log.Error("channel lookup failed", "channel", i.ChannelID, "error", err)
		b.respond(i, "❌ チャンネルの再生成に失敗しました。", true)
		return
	}

	// Acknowledge before the channel disappears with the interaction.
	b.respond(i, "💥 チャンネルを再生成しています…", true)

	newCh, err := b.session.GuildChannelCreateComplex(i.GuildID, discordgo.GuildChannelCreateData{
		Name:     ch.Name,
		Type:     ch.Type,
		Topic:    ch.Topic,
		ParentID: ch.ParentID,
		Position: ch.Position,
	})
	if err != nil {
		b.log.Error("channel recreation failed", "channel", i.ChannelID, "error", err)
		return
	}
	if _, err := b.session.ChannelDelete(ch.ID); err != nil {
		b.log.Error("old channel deletion failed", "channel", ch.ID, "error", err)
	}

	_, err = b.session.ChannelMessageSendEmbed(newCh.ID, &discordgo.MessageEmbed{
		Title:       "💥 チャンネルがヌークされました！",
		Description: "チャンネルが正常に再生成されました。",
		Color:       0xff0000,
	})
	if err != nil {
		b.log.Warn("nuke confirmation failed", "channel", newCh.ID, "error", err)
	}
}

func (b *Bot) handleProfile(i *discordgo.InteractionCreate) {
	target := invoker(i)
	if o, ok := optionMap(i)["user"]; ok {
		target = o.UserValue(b.session)
	}

	res, err := b.svc.Profile(context.Background(), target.ID)
	if errors.Is(err, domain.ErrNotFound) {
		b.respond(i, "❌ ユーザーが見つかりません。", false)
		return
	}
	if err != nil {
		b.log.Error("profile load failed", "user", target.ID, "error", err)
		b.respond(i, "❌ プロフィールの表示に失敗しました。", true)
		return
	}

	authStatus := "未認証"
	if res.Authenticated {
		authStatus = "認証済み"
	}
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("👤 %s のプロフィール", displayName(target)),
		Color: 0x00ff00,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "💰 コイン", Value: fmt.Sprintf("%d", res.Coins), Inline: true},
			{Name: "🛒 購入回数", Value: fmt.Sprintf("%d", res.Purchases), Inline: true},
			{Name: "✅ 認証状態", Value: authStatus, Inline: true},
		},
	}
	b.respondData(i, discordgo.InteractionResponseChannelMessageWithSource, &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
}

func (b *Bot) handleHelp(i *discordgo.InteractionCreate) {
	name := ""
	if o, ok := optionMap(i)["command"]; ok {
		name = o.StringValue()
	}

	if name == "" {
		embed := &discordgo.MessageEmbed{
			Title:       "🤖 ボットコマンド一覧",
			Description: "使用可能なコマンドの一覧です。詳細は `/help コマンド名` で確認できます。",
			Color:       0x0099ff,
			Footer:      &discordgo.MessageEmbedFooter{Text: "例: /help auth - authコマンドの詳細を表示"},
		}
		for _, n := range b.svc.HelpIndex() {
			h, _ := b.svc.Help(n)
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  "/" + n,
				Value: h.Description,
			})
		}
		b.respondData(i, discordgo.InteractionResponseChannelMessageWithSource, &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		})
		return
	}

	h, ok := b.svc.Help(name)
	if !ok {
		b.respond(i, fmt.Sprintf("❌ コマンド \"%s\" が見つかりません。\n利用可能なコマンド: %s",
			name, strings.Join(b.svc.HelpIndex(), ", ")), false)
		return
	}
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📖 /%s コマンドヘルプ", name),
		Color: 0x00ff00,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "説明", Value: h.Description},
			{Name: "使用方法", Value: fmt.Sprintf("`%s`", h.Usage)},
			{Name: "詳細", Value: h.Details},
		},
	}
	b.respondData(i, discordgo.InteractionResponseChannelMessageWithSource, &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
}

func (b *Bot) handleTicketPanel(i *discordgo.InteractionCreate) {
	if !hasPermission(i, discordgo.PermissionManageChannels) {
		b.respond(i, "❌ チャンネル管理権限が必要です。", true)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "🎫 サポートチケット",
		Description: "何かお困りのことがありましたら、下のボタンをクリックしてサポートチケットを作成してください。\n\n" +
			"**チケットについて:**\n" +
			"• 専用のプライベートチャンネルが作成されます\n" +
			"• あなたとサーバーの管理者のみがアクセス可能です\n" +
			"• 問題が解決したらチケットをクローズしてください",
		Color:  0x00ff99,
		Footer: &discordgo.MessageEmbedFooter{Text: "24時間365日サポート対応"},
	}
	b.respondData(i, discordgo.InteractionResponseChannelMessageWithSource, &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{discordgo.Button{
				Label:    "🎫 チケットを作成",
				Style:    discordgo.PrimaryButton,
				CustomID: panelButtonID,
			}},
		}},
	})
}

func (b *Bot) handlePanelButton(i *discordgo.InteractionCreate) {
	b.respondData(i, discordgo.InteractionResponseModal, &discordgo.InteractionResponseData{
		CustomID: ticketModalID,
		Title:    "🎫 チケット作成",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{discordgo.TextInput{
				CustomID:    "subject",
				Label:       "件名",
				Style:       discordgo.TextInputShort,
				Placeholder: "チケットの件名を入力してください...",
				Required:    true,
				MaxLength:   100,
			}}},
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{discordgo.TextInput{
				CustomID:    "description",
				Label:       "説明",
				Style:       discordgo.TextInputParagraph,
				Placeholder: "問題の詳細を入力してください...",
				Required:    false,
				MaxLength:   1000,
			}}},
		},
	})
}

func (b *Bot) handleTicketModal(i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()
	b.createTicket(i, modalValue(data, "subject"), modalValue(data, "description"))
}

// purchaseErrorMessage converts a purchase failure into its user-facing
// reply.
func (b *Bot) purchaseErrorMessage(err error) string {
	var funds *domain.InsufficientFundsError
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		return "❌ 先に /auth で認証してください。"
	case errors.Is(err, domain.ErrNotFound):
		return "❌ アイテムが見つかりません。"
	case errors.Is(err, domain.ErrOutOfStock):
		return "❌ 在庫がありません。"
	case errors.As(err, &funds):
		return fmt.Sprintf("❌ コインが不足しています。必要: %d、所持: %d", funds.Required, funds.Held)
	default:
		b.log.Error("purchase failed", "error", err)
		return "❌ 購入に失敗しました。しばらくしてからもう一度お試しください。"
	}
}

func (b *Bot) itemErrorMessage(err error, action string) string {
	if errors.Is(err, domain.ErrNotFound) {
		return "❌ アイテムが見つかりません。"
	}
	b.log.Error("catalogue mutation failed", "action", action, "error", err)
	return fmt.Sprintf("❌ %sに失敗しました。", action)
}
