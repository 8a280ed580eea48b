package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcardle/gatewalker/pkg/state"
)

func TestMockStorage(t *testing.T) {
	store := NewMockStorage()
	ctx := context.Background()
	id := uuid.New()

	loaded, err := store.LoadSnapshot(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	snap := &state.Snapshot{Version: state.SnapshotVersion, ID: id, Status: state.StatusActive}
	require.NoError(t, store.SaveSnapshot(ctx, id, snap))

	loaded, err = store.LoadSnapshot(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)

	require.NoError(t, store.DeleteSnapshot(ctx, id))
	loaded, err = store.LoadSnapshot(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestMockStorage_PingError(t *testing.T) {
	store := NewMockStorage()
	ctx := context.Background()

	assert.NoError(t, store.Ping(ctx))

	store.SetPingError(errors.New("redis down"))
	assert.Error(t, store.Ping(ctx))

	store.SetPingError(nil)
	assert.NoError(t, store.Ping(ctx))
}
