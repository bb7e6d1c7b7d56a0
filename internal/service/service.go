// Package service holds the business rules behind every slash command. Each
// operation is one load/validate/mutate/save cycle against the document
// store; read-only operations load and never save.
package service

import (
	"context"

	"vending-bot/internal/domain"
	"vending-bot/internal/logger"
)

// Store is the document store handlers run their cycles against.
// *storage.FileDB implements it; tests may substitute an in-memory fake.
type Store interface {
	View(ctx context.Context, fn func(*domain.Document) error) error
	Update(ctx context.Context, fn func(*domain.Document) error) error
}

// RoleGranter grants the verified role to a guild member. The bool reports
// whether the role exists in the guild at all; a missing role is not an
// error, a failed grant is.
type RoleGranter interface {
	GrantVerifiedRole(guildID, userID string) (bool, error)
}

// ChannelProvisioner creates the private support channel for a ticket and
// returns its id.
type ChannelProvisioner interface {
	ProvisionTicketChannel(guildID, ticketID, userID, username string) (string, error)
}

type Service struct {
	store    Store
	roles    RoleGranter
	channels ChannelProvisioner
	log      *logger.Logger
}

func New(store Store, roles RoleGranter, channels ChannelProvisioner, log *logger.Logger) *Service {
	return &Service{store: store, roles: roles, channels: channels, log: log}
}
