package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vending-bot/internal/domain"
)

func testDB(t *testing.T) (*FileDB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bot_data.json")
	db, err := Open(path)
	require.NoError(t, err)
	return db, path
}

func TestLoad_MissingFileIsEmptyDocument(t *testing.T) {
	db, path := testDB(t)

	doc, err := db.Load()
	require.NoError(t, err)
	assert.Empty(t, doc.Users)
	assert.Empty(t, doc.Machines)
	assert.Empty(t, doc.Transactions)
	assert.Empty(t, doc.Tickets)

	// A read must not create the file.
	_, err = os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	db, _ := testDB(t)

	joined := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := domain.NewDocument()
	doc.Users["u1"] = &domain.User{Coins: 130, Authenticated: true, JoinDate: joined}
	doc.Users["u2"] = &domain.User{Coins: 0}
	doc.Machines["g1"] = &domain.VendingMachine{
		Items: map[string]*domain.Item{
			"1": {Name: "コーラ", Price: 20, Stock: 3, CreatedBy: "u1"},
		},
		CreatedAt: joined,
	}
	doc.Transactions = append(doc.Transactions, domain.Transaction{
		UserID: "u1", ItemName: "コーラ", Price: 20, Timestamp: joined, GuildID: "g1",
	})
	doc.Tickets["1"] = &domain.Ticket{
		UserID: "u1", Subject: "help", Status: domain.TicketClosed,
		CreatedAt: joined, GuildID: "g1", ChannelID: "c1",
		ClosedAt: joined.Add(time.Hour), ClosedBy: "u2",
	}

	require.NoError(t, db.Save(doc))
	got, err := db.Load()
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestLoad_CorruptFile(t *testing.T) {
	db, path := testDB(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := db.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse state file")
}

func TestUpdate_PersistsMutation(t *testing.T) {
	db, _ := testDB(t)

	err := db.Update(context.Background(), func(doc *domain.Document) error {
		doc.Users["u1"] = &domain.User{Coins: 100, Authenticated: true}
		return nil
	})
	require.NoError(t, err)

	got, err := db.Load()
	require.NoError(t, err)
	require.Contains(t, got.Users, "u1")
	assert.Equal(t, 100, got.Users["u1"].Coins)
}

func TestUpdate_ValidationFailureDoesNotSave(t *testing.T) {
	db, _ := testDB(t)
	require.NoError(t, db.Update(context.Background(), func(doc *domain.Document) error {
		doc.Users["u1"] = &domain.User{Coins: 100}
		return nil
	}))

	boom := errors.New("validation failed")
	err := db.Update(context.Background(), func(doc *domain.Document) error {
		doc.Users["u1"].Coins = 0
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := db.Load()
	require.NoError(t, err)
	assert.Equal(t, 100, got.Users["u1"].Coins)
}

func TestView_DoesNotCreateFile(t *testing.T) {
	db, path := testDB(t)

	err := db.View(context.Background(), func(doc *domain.Document) error {
		assert.Empty(t, doc.Users)
		return nil
	})
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
