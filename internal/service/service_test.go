package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"vending-bot/internal/logger"
	"vending-bot/internal/storage"
)

type fakeRoles struct {
	found  bool
	err    error
	grants []string
}

func (f *fakeRoles) GrantVerifiedRole(guildID, userID string) (bool, error) {
	f.grants = append(f.grants, userID)
	return f.found, f.err
}

type fakeChannels struct {
	err   error
	calls []string
}

func (f *fakeChannels) ProvisionTicketChannel(guildID, ticketID, userID, username string) (string, error) {
	f.calls = append(f.calls, ticketID)
	if f.err != nil {
		return "", f.err
	}
	return "chan-" + ticketID, nil
}

func newTestService(t *testing.T) (*Service, *storage.FileDB, *fakeRoles, *fakeChannels) {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "bot_data.json"))
	require.NoError(t, err)
	roles := &fakeRoles{found: true}
	channels := &fakeChannels{}
	return New(db, roles, channels, logger.New(0)), db, roles, channels
}
