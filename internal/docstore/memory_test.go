package docstore

import (
	"context"
	"testing"
	"time"

	"money_tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Profiles(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	require.NoError(t, store.EnsureProfile(ctx, "u1", "a@x.com"))
	first, ok := store.Profile("u1")
	require.True(t, ok)
	assert.Equal(t, clock, first.CreatedAt)
	assert.Zero(t, first.TotalMoney)

	clock = clock.Add(time.Hour)
	require.NoError(t, store.EnsureProfile(ctx, "u1", "other@x.com"))
	kept, _ := store.Profile("u1")
	assert.Equal(t, first, kept)

	require.NoError(t, store.CreateProfile(ctx, "u1", "new@x.com"))
	replaced, _ := store.Profile("u1")
	assert.Equal(t, "new@x.com", replaced.Email)
	assert.Equal(t, clock, replaced.CreatedAt)
}

func TestMemoryStore_List(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	id1, err := store.Add(ctx, domain.TrackerRecord{Name: "alice", AllMoney: domain.MoneyText("1")})
	require.NoError(t, err)
	id2, err := store.Add(ctx, domain.TrackerRecord{Name: "alice", AllMoney: domain.MoneyText("1")})
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	records, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, id1, records[0].ID)

	require.NoError(t, store.Delete(ctx, "missing"))
	require.NoError(t, store.Delete(ctx, id1))

	records, err = store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, id2, records[0].ID)
}
