package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"vending-bot/internal/domain"
)

type TicketResult struct {
	ID        string
	ChannelID string
}

// CreateTicket assigns the next ticket id, provisions the private channel
// and persists the record. The counter is global across guilds. Channel
// provisioning runs inside the update critical section so a concurrent
// create cannot take the same id; if it fails nothing is saved.
func (s *Service) CreateTicket(ctx context.Context, guildID, userID, username, subject, description string) (*TicketResult, error) {
	res := &TicketResult{}
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		id := strconv.Itoa(len(doc.Tickets) + 1)
		channelID, err := s.channels.ProvisionTicketChannel(guildID, id, userID, username)
		if err != nil {
			return fmt.Errorf("provision ticket channel: %w", err)
		}
		doc.Tickets[id] = &domain.Ticket{
			UserID:      userID,
			Subject:     subject,
			Description: description,
			Status:      domain.TicketOpen,
			CreatedAt:   time.Now(),
			GuildID:     guildID,
			ChannelID:   channelID,
		}
		res.ID = id
		res.ChannelID = channelID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// CloseTicket transitions a ticket to closed. Only the creator or an
// administrator may close it. Closing an already-closed ticket keeps the
// status closed and overwrites the close metadata.
func (s *Service) CloseTicket(ctx context.Context, ticketID, invoker string, admin bool) (*domain.Ticket, error) {
	var out *domain.Ticket
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		t, ok := doc.Tickets[ticketID]
		if !ok {
			return domain.ErrNotFound
		}
		if invoker != t.UserID && !admin {
			return domain.ErrForbidden
		}
		t.Status = domain.TicketClosed
		t.ClosedAt = time.Now()
		t.ClosedBy = invoker
		c := *t
		out = &c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type TicketEntry struct {
	ID     string
	Ticket domain.Ticket
}

// ListTickets returns the guild's tickets sorted by numeric id.
func (s *Service) ListTickets(ctx context.Context, guildID string) ([]TicketEntry, error) {
	var out []TicketEntry
	err := s.store.View(ctx, func(doc *domain.Document) error {
		for id, t := range doc.Tickets {
			if t.GuildID == guildID {
				out = append(out, TicketEntry{ID: id, Ticket: *t})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		a, _ := strconv.Atoi(out[i].ID)
		b, _ := strconv.Atoi(out[j].ID)
		return a < b
	})
	return out, nil
}
