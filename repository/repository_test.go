package repository

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-splendor/config"
	"go-splendor/engine"
	"go-splendor/entities"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.MySQLConfig{
		Addr:     "db:3306",
		User:     "game",
		Password: "secret",
		Database: "splendor",
	})
	assert.Equal(t, "game:secret@tcp(db:3306)/splendor?parseTime=true", dsn)
}

func TestStateKey(t *testing.T) {
	assert.Equal(t, "room:ab12cd34:state", stateKey("ab12cd34"))
}

func TestDecodeSnapshot(t *testing.T) {
	_, err := decodeSnapshot([]byte("{"))
	assert.ErrorContains(t, err, "decode snapshot")
}

func TestDecodeAllSkipsCorruptKeys(t *testing.T) {
	good := `{"room":{"roomID":"r1","maxPlayers":2,"status":"waiting"}}`
	keys := []string{"room:r1:state", "room:bad:state", "room:gone:state"}
	values := []interface{}{good, "{", nil}

	snaps, corrupt := decodeAll(keys, values)
	require.Len(t, snaps, 1)
	assert.Equal(t, "r1", snaps[0].Room.RoomID)
	assert.ErrorContains(t, corrupt, "room:bad:state: decode snapshot")
	assert.NotContains(t, corrupt.Error(), "room:gone:state")
}

func TestDecodeAllOnlyCorrupt(t *testing.T) {
	snaps, corrupt := decodeAll([]string{"room:x:state"}, []interface{}{""})
	assert.Empty(t, snaps)
	assert.ErrorContains(t, corrupt, "room:x:state")
}

// Runs against a real server when SPLENDOR_TEST_REDIS_ADDR is set.
func TestRedisGameRepository(t *testing.T) {
	addr := os.Getenv("SPLENDOR_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SPLENDOR_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	rdb, err := NewRedis(ctx, config.RedisConfig{Addr: addr, DB: 15})
	require.NoError(t, err)
	t.Cleanup(func() { rdb.FlushDB(ctx); rdb.Close() })
	repo := NewRedisGameRepository(rdb)

	state, err := engine.NewGame(engine.Config{Players: []engine.PlayerInfo{{ID: "a"}, {ID: "b"}}})
	require.NoError(t, err)
	store := engine.NewStore(state)
	_, err = store.Start()
	require.NoError(t, err)
	played, err := store.PerformAction(engine.TakeGems("a", entities.Gems{entities.Ruby: 1}))
	require.NoError(t, err)

	snap := entities.RoomSnapshot{
		Room:  entities.RoomInfo{RoomID: "r1", MaxPlayers: 2, Status: entities.RoomStatusPlaying},
		State: &played,
	}
	require.NoError(t, repo.Save(ctx, snap))

	loaded, err := repo.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, snap.Room.RoomID, loaded.Room.RoomID)
	require.NotNil(t, loaded.State)
	assert.Equal(t, played.Actions[0].Details, loaded.State.Actions[0].Details)

	require.NoError(t, rdb.Set(ctx, stateKey("broken"), "{", 0).Err())
	all, corrupt, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.ErrorContains(t, corrupt, "room:broken:state")

	require.NoError(t, repo.Delete(ctx, "r1"))
	_, err = repo.Load(ctx, "r1")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}
