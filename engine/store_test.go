package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"go-splendor/entities"
)

func TestStoreStart(t *testing.T) {
	state, err := NewGame(Config{Players: roster()})
	require.NoError(t, err)
	store := newStore(t, state)

	_, err = store.PerformAction(EndTurn("p1"))
	assert.ErrorIs(t, err, ErrGameNotInProgress)

	started, err := store.Start()
	require.NoError(t, err)
	assert.Equal(t, entities.GameStatusPlaying, started.Status)

	_, err = store.Start()
	assert.ErrorIs(t, err, ErrGameNotInProgress)
}

func TestStorePerformAction(t *testing.T) {
	store := newStore(t, startedState(t))

	next, err := store.PerformAction(TakeGems("p1", entities.Gems{entities.Ruby: 1, entities.Emerald: 1, entities.Onyx: 1}))
	require.NoError(t, err)

	require.Len(t, next.Actions, 1)
	assert.Equal(t, "name-p1", next.Actions[0].PlayerName)
	assert.Equal(t, testNow.UnixMilli(), next.Actions[0].Timestamp)
	assert.Equal(t, next, store.GetState())

	_, err = store.PerformAction(TakeGems("p1", entities.Gems{entities.Diamond: 1}))
	assert.ErrorIs(t, err, ErrActionAlreadyTaken)

	next, err = store.PerformAction(EndTurn("p1"))
	require.NoError(t, err)
	assert.Equal(t, 1, next.CurrentPlayer)
}

func TestStoreRejectionIsIdempotent(t *testing.T) {
	state := startedState(t)
	state.Gems[entities.Sapphire] = 3
	state.Supply[entities.Sapphire] = 3
	store := newStore(t, state)

	calls := 0
	store.Subscribe(func(entities.GameState) { calls++ })

	before := store.GetState()
	action := TakeGems("p1", entities.Gems{entities.Sapphire: 2})

	_, first := store.PerformAction(action)
	_, second := store.PerformAction(action)

	require.ErrorIs(t, first, ErrInvalidGemSelection)
	assert.Equal(t, first, second)
	assert.Equal(t, before, store.GetState())
	assert.Zero(t, calls)
}

func TestStoreTokenLimitLeavesStateUnchanged(t *testing.T) {
	state := startedState(t)
	give(&state, 0, entities.Gems{entities.Diamond: 4, entities.Sapphire: 4, entities.Gold: 1})
	store := newStore(t, state)
	before := store.GetState()

	_, err := store.PerformAction(TakeGems("p1", entities.Gems{entities.Ruby: 1, entities.Onyx: 1}))

	assert.ErrorIs(t, err, ErrTokenLimitExceeded)
	assert.Equal(t, before, store.GetState())
}

func TestStoreSubscribe(t *testing.T) {
	store := newStore(t, startedState(t))

	var got []entities.GameState
	unsubscribe := store.Subscribe(func(s entities.GameState) { got = append(got, s) })

	_, err := store.PerformAction(TakeGems("p1", entities.Gems{entities.Ruby: 1}))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Players[0].Gems[entities.Ruby])

	// listeners get their own copy
	got[0].Players[0].Gems[entities.Ruby] = 99
	assert.Equal(t, 1, store.GetState().Players[0].Gems[entities.Ruby])

	unsubscribe()
	_, err = store.PerformAction(EndTurn("p1"))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestStoreGetStateIsACopy(t *testing.T) {
	store := newStore(t, startedState(t))

	snapshot := store.GetState()
	snapshot.Gems[entities.Ruby] = 0
	snapshot.Cards.Level1 = nil

	fresh := store.GetState()
	assert.Equal(t, 7, fresh.Gems[entities.Ruby])
	assert.Len(t, fresh.Cards.Level1, 4)
}

func TestStoreReset(t *testing.T) {
	store := newStore(t, startedState(t))
	_, err := store.PerformAction(TakeGems("p1", entities.Gems{entities.Ruby: 1}))
	require.NoError(t, err)

	notified := false
	store.Subscribe(func(entities.GameState) { notified = true })

	fresh, err := NewGame(Config{Players: roster("a", "b", "c")})
	require.NoError(t, err)
	store.Reset(fresh)

	assert.True(t, notified)
	assert.Len(t, store.GetState().Players, 3)
	assert.Empty(t, store.GetState().Actions)
}

func TestStoreTimestampsNeverGoBack(t *testing.T) {
	now := testNow
	store := newStore(t, startedState(t), WithClock(func() time.Time { return now }))

	_, err := store.PerformAction(TakeGems("p1", entities.Gems{entities.Ruby: 1}))
	require.NoError(t, err)

	now = testNow.Add(-time.Second)
	next, err := store.PerformAction(EndTurn("p1"))
	require.NoError(t, err)

	assert.Equal(t, testNow.UnixMilli(), next.Actions[1].Timestamp)
}

func TestStoreIgnoresCallerTimestamps(t *testing.T) {
	store := newStore(t, startedState(t))

	future := TakeGems("p1", entities.Gems{entities.Ruby: 1})
	future.Timestamp = testNow.Add(24 * time.Hour).UnixMilli()
	_, err := store.PerformAction(future)
	require.NoError(t, err)

	past := EndTurn("p1")
	past.Timestamp = 1
	next, err := store.PerformAction(past)
	require.NoError(t, err)

	assert.Equal(t, testNow.UnixMilli(), next.Actions[0].Timestamp)
	assert.Equal(t, testNow.UnixMilli(), next.Actions[1].Timestamp)
}

func TestStoreLogsRejections(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	store := newStore(t, startedState(t), WithLogger(zap.New(core)))

	_, err := store.PerformAction(EndTurn("p2"))
	require.Error(t, err)

	entries := logs.FilterMessage("action rejected").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "p2", entries[0].ContextMap()["player"])
}

func TestStoreFullGame(t *testing.T) {
	state := lastRoundState(t)
	store := newStore(t, state)

	finished := 0
	store.Subscribe(func(s entities.GameState) {
		if s.Status == entities.GameStatusFinished {
			finished++
		}
	})

	steps := []entities.GameAction{
		TakeGems("p1", entities.Gems{entities.Ruby: 1}),
		EndTurn("p1"),
		PurchaseCard("p2", 500),
		EndTurn("p2"),
		EndTurn("p3"),
		EndTurn("p1"),
	}
	for _, step := range steps {
		_, err := store.PerformAction(step)
		require.NoError(t, err, "step %s by %s", step.Type, step.PlayerID)
	}

	final := store.GetState()
	assert.Equal(t, entities.GameStatusFinished, final.Status)
	assert.Equal(t, "p2", *final.Winner)
	assert.Equal(t, 1, finished)

	_, err := store.PerformAction(EndTurn("p2"))
	assert.ErrorIs(t, err, ErrGameNotInProgress)
	requireConserved(t, final)
}
