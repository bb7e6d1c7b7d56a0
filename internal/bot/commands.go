package bot

import "github.com/bwmarrin/discordgo"

// commands declares the full slash command surface. Registration overwrites
// whatever the application had before, so removed commands disappear too.
func commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "auth",
			Description: "認証してロールを取得",
		},
		{
			Name:        "show",
			Description: "自動販売機を表示",
		},
		{
			Name:        "newitem",
			Description: "自動販売機に新しいアイテムを追加",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "商品名", Required: true},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "price", Description: "価格（コイン）", Required: true},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "stock", Description: "在庫数（省略時は1）"},
			},
		},
		{
			Name:        "addcoins",
			Description: "ユーザーにコインを追加",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "対象ユーザー", Required: true},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "amount", Description: "数量", Required: true},
			},
		},
		{
			Name:        "del",
			Description: "自動販売機からアイテムを削除",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "item_id", Description: "アイテムID", Required: true},
			},
		},
		{
			Name:        "change",
			Description: "アイテムの価格を変更",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "item_id", Description: "アイテムID", Required: true},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "new_price", Description: "新しい価格", Required: true},
			},
		},
		{
			Name:        "additem",
			Description: "アイテムの在庫を追加",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "item_id", Description: "アイテムID", Required: true},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "amount", Description: "追加する数量", Required: true},
			},
		},
		{
			Name:        "buy",
			Description: "自動販売機からアイテムを購入",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "item_id", Description: "アイテムID", Required: true},
			},
		},
		{
			Name:        "transaction",
			Description: "取引履歴を表示",
		},
		{
			Name:        "ticket",
			Description: "サポートチケットを作成",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "subject", Description: "件名", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "description", Description: "説明"},
			},
		},
		{
			Name:        "tickets",
			Description: "チケット一覧を表示",
		},
		{
			Name:        "nuke",
			Description: "チャンネルを再生成（設定を引き継ぎ）",
		},
		{
			Name:        "profile",
			Description: "ユーザープロフィールを表示",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "対象ユーザー（省略時は自分）"},
			},
		},
		{
			Name:        "help",
			Description: "ヘルプを表示",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "command", Description: "コマンド名"},
			},
		},
		{
			Name:        "ticket-panel",
			Description: "チケット作成パネルを設置",
		},
	}
}
