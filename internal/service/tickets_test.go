package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vending-bot/internal/domain"
)

func TestCreateTicket_GlobalSequentialIDs(t *testing.T) {
	svc, db, _, channels := newTestService(t)
	ctx := context.Background()

	res, err := svc.CreateTicket(ctx, "g1", "u1", "alice", "購入できない", "")
	require.NoError(t, err)
	assert.Equal(t, "1", res.ID)
	assert.Equal(t, "chan-1", res.ChannelID)

	// The counter is global: a ticket in another guild continues it.
	res, err = svc.CreateTicket(ctx, "g2", "u2", "bob", "ロールが付与されない", "詳細")
	require.NoError(t, err)
	assert.Equal(t, "2", res.ID)
	assert.Equal(t, []string{"1", "2"}, channels.calls)

	doc, err := db.Load()
	require.NoError(t, err)
	require.Len(t, doc.Tickets, 2)
	ticket := doc.Tickets["2"]
	assert.Equal(t, "u2", ticket.UserID)
	assert.Equal(t, "ロールが付与されない", ticket.Subject)
	assert.Equal(t, "詳細", ticket.Description)
	assert.Equal(t, domain.TicketOpen, ticket.Status)
	assert.Equal(t, "g2", ticket.GuildID)
	assert.Equal(t, "chan-2", ticket.ChannelID)
	assert.False(t, ticket.CreatedAt.IsZero())
}

func TestCreateTicket_ProvisionFailureLeavesNoRecord(t *testing.T) {
	svc, db, _, channels := newTestService(t)
	channels.err = errors.New("missing permission")

	_, err := svc.CreateTicket(context.Background(), "g1", "u1", "alice", "help", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provision ticket channel")

	doc, err := db.Load()
	require.NoError(t, err)
	assert.Empty(t, doc.Tickets)
}

func TestCloseTicket_NotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.CloseTicket(context.Background(), "42", "u1", false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCloseTicket_Permissions(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()
	res, err := svc.CreateTicket(ctx, "g1", "u1", "alice", "help", "")
	require.NoError(t, err)

	// A non-admin stranger may not close someone else's ticket.
	_, err = svc.CloseTicket(ctx, res.ID, "u2", false)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// An administrator may.
	ticket, err := svc.CloseTicket(ctx, res.ID, "u2", true)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketClosed, ticket.Status)
	assert.Equal(t, "u2", ticket.ClosedBy)
}

func TestCloseTicket_IsOneWay(t *testing.T) {
	svc, db, _, _ := newTestService(t)
	ctx := context.Background()
	res, err := svc.CreateTicket(ctx, "g1", "u1", "alice", "help", "")
	require.NoError(t, err)

	first, err := svc.CloseTicket(ctx, res.ID, "u1", false)
	require.NoError(t, err)

	// Re-closing keeps the status closed and overwrites the metadata.
	second, err := svc.CloseTicket(ctx, res.ID, "admin", true)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketClosed, second.Status)
	assert.Equal(t, "admin", second.ClosedBy)
	assert.False(t, second.ClosedAt.Before(first.ClosedAt))

	doc, err := db.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.TicketClosed, doc.Tickets[res.ID].Status)
}

func TestListTickets_FiltersByGuildAndSorts(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateTicket(ctx, "g1", "u1", "alice", "first", "")
	require.NoError(t, err)
	_, err = svc.CreateTicket(ctx, "g2", "u2", "bob", "other guild", "")
	require.NoError(t, err)
	_, err = svc.CreateTicket(ctx, "g1", "u3", "carol", "second", "")
	require.NoError(t, err)

	entries, err := svc.ListTickets(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "1", entries[0].ID)
	assert.Equal(t, "first", entries[0].Ticket.Subject)
	assert.Equal(t, "3", entries[1].ID)
	assert.Equal(t, "second", entries[1].Ticket.Subject)

	entries, err = svc.ListTickets(ctx, "g3")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
