package domain

import "time"

// Ticket lifecycle states. A ticket moves from open to closed exactly once
// and never back.
const (
	TicketOpen   = "open"
	TicketClosed = "closed"
)

// User is keyed by the Discord user id. A user created through
// authentication starts with 100 coins and a join date; a user created
// implicitly by a coin grant starts with 0 coins and no join date.
type User struct {
	Coins         int       `json:"coins"`
	Authenticated bool      `json:"authenticated"`
	JoinDate      time.Time `json:"join_date,omitzero"`
}

// Item is a purchasable catalogue entry.
type Item struct {
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Stock     int    `json:"stock"`
	CreatedBy string `json:"created_by"`
}

// VendingMachine is the per-guild catalogue. Item ids are assigned as
// len(items)+1 rendered as a string; after a deletion an id can be reused.
type VendingMachine struct {
	Items     map[string]*Item `json:"items"`
	CreatedAt time.Time        `json:"created_at,omitzero"`
}

// Transaction is one append-only purchase record.
type Transaction struct {
	UserID    string    `json:"user_id"`
	ItemName  string    `json:"item_name"`
	Price     int       `json:"price"`
	Timestamp time.Time `json:"timestamp"`
	GuildID   string    `json:"guild_id"`
}

// Ticket is keyed by a counter that is global across guilds.
type Ticket struct {
	UserID      string    `json:"user_id"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	GuildID     string    `json:"guild_id"`
	ChannelID   string    `json:"channel_id"`
	ClosedAt    time.Time `json:"closed_at,omitzero"`
	ClosedBy    string    `json:"closed_by,omitempty"`
}

// Document is the whole persisted state tree. The four collections are
// always present, even when empty.
type Document struct {
	Users        map[string]*User           `json:"users"`
	Machines     map[string]*VendingMachine `json:"vending_machines"`
	Transactions []Transaction              `json:"transactions"`
	Tickets      map[string]*Ticket         `json:"tickets"`
}

// NewDocument returns an empty document with all collections allocated.
func NewDocument() *Document {
	return &Document{
		Users:        map[string]*User{},
		Machines:     map[string]*VendingMachine{},
		Transactions: []Transaction{},
		Tickets:      map[string]*Ticket{},
	}
}
