package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vending-bot/internal/domain"
)

func TestCatalog_CreatesMachineExactlyOnce(t *testing.T) {
	svc, db, _, _ := newTestService(t)
	ctx := context.Background()

	vm, err := svc.Catalog(ctx, "g1")
	require.NoError(t, err)
	assert.Empty(t, vm.Items)

	doc, err := db.Load()
	require.NoError(t, err)
	require.Contains(t, doc.Machines, "g1")
	created := doc.Machines["g1"].CreatedAt
	assert.False(t, created.IsZero())

	_, err = svc.AddItem(ctx, "g1", "u1", "コーラ", 20, 1)
	require.NoError(t, err)

	// A second display must not reset the existing machine.
	vm, err = svc.Catalog(ctx, "g1")
	require.NoError(t, err)
	assert.Len(t, vm.Items, 1)

	doc, err = db.Load()
	require.NoError(t, err)
	assert.Equal(t, created, doc.Machines["g1"].CreatedAt)
}

func TestAddItem_SequentialIDs(t *testing.T) {
	svc, db, _, _ := newTestService(t)
	ctx := context.Background()

	for n, name := range []string{"コーラ", "お茶", "水"} {
		id, err := svc.AddItem(ctx, "g1", "u1", name, 10*(n+1), 1)
		require.NoError(t, err)
		assert.Equal(t, string(rune('1'+n)), id)
	}

	doc, err := db.Load()
	require.NoError(t, err)
	item := doc.Machines["g1"].Items["2"]
	require.NotNil(t, item)
	assert.Equal(t, "お茶", item.Name)
	assert.Equal(t, 20, item.Price)
	assert.Equal(t, "u1", item.CreatedBy)
}

func TestAddItem_CountBasedIDReuseAfterDelete(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "g1", "u1", "コーラ", 10, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "g1", "u1", "お茶", 20, 1)
	require.NoError(t, err)
	_, err = svc.DeleteItem(ctx, "g1", "1")
	require.NoError(t, err)

	// The count-based scheme hands out len+1 again, reusing "2".
	id, err := svc.AddItem(ctx, "g1", "u1", "水", 30, 1)
	require.NoError(t, err)
	assert.Equal(t, "2", id)

	vm, err := svc.Catalog(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, vm.Items, 1)
	assert.Equal(t, "水", vm.Items["2"].Name)
}

func TestDeleteItem(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.DeleteItem(ctx, "g1", "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	id, err := svc.AddItem(ctx, "g1", "u1", "コーラ", 10, 1)
	require.NoError(t, err)

	_, err = svc.DeleteItem(ctx, "g1", "99")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	name, err := svc.DeleteItem(ctx, "g1", id)
	require.NoError(t, err)
	assert.Equal(t, "コーラ", name)
}

func TestChangePrice(t *testing.T) {
	svc, db, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.ChangePrice(ctx, "g1", "1", 50)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	id, err := svc.AddItem(ctx, "g1", "u1", "コーラ", 10, 1)
	require.NoError(t, err)

	oldPrice, err := svc.ChangePrice(ctx, "g1", id, 50)
	require.NoError(t, err)
	assert.Equal(t, 10, oldPrice)

	doc, err := db.Load()
	require.NoError(t, err)
	assert.Equal(t, 50, doc.Machines["g1"].Items[id].Price)
}

func TestAddStock(t *testing.T) {
	svc, db, _, _ := newTestService(t)
	ctx := context.Background()

	err := svc.AddStock(ctx, "g1", "1", 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	id, err := svc.AddItem(ctx, "g1", "u1", "コーラ", 10, 1)
	require.NoError(t, err)
	require.NoError(t, svc.AddStock(ctx, "g1", id, 5))

	// Negative adjustments are allowed; only purchases enforce the floor.
	require.NoError(t, svc.AddStock(ctx, "g1", id, -2))

	doc, err := db.Load()
	require.NoError(t, err)
	assert.Equal(t, 4, doc.Machines["g1"].Items[id].Stock)
}
