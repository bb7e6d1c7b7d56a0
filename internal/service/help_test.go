package service

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelp_KnownCommand(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	h, ok := svc.Help("auth")
	require.True(t, ok)
	assert.Equal(t, "/auth", h.Usage)
	assert.NotEmpty(t, h.Description)
	assert.NotEmpty(t, h.Details)
}

func TestHelp_UnknownCommand(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, ok := svc.Help("frobnicate")
	assert.False(t, ok)
}

func TestHelpIndex_ListsEveryCommandSorted(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	names := svc.HelpIndex()
	assert.True(t, sort.StringsAreSorted(names))

	want := []string{
		"addcoins", "additem", "auth", "buy", "change", "del", "help",
		"newitem", "nuke", "profile", "show", "ticket", "ticket-panel",
		"tickets", "transaction",
	}
	assert.Equal(t, want, names)
}
