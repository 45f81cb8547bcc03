package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-splendor/entities"
)

var testNow = time.UnixMilli(1_700_000_000_000)

func testClock() time.Time { return testNow }

func roster(ids ...string) []PlayerInfo {
	if len(ids) == 0 {
		ids = []string{"p1", "p2"}
	}
	out := make([]PlayerInfo, len(ids))
	for i, id := range ids {
		out[i] = PlayerInfo{ID: id, Name: "name-" + id}
	}
	return out
}

// startedState deals the unshuffled catalog and puts the game in play.
func startedState(t *testing.T, players ...string) entities.GameState {
	t.Helper()
	state, err := NewGame(Config{Players: roster(players...)})
	require.NoError(t, err)
	state.Status = entities.GameStatusPlaying
	return state
}

func newStore(t *testing.T, state entities.GameState, opts ...Option) *Store {
	t.Helper()
	return NewStore(state, append([]Option{WithClock(testClock)}, opts...)...)
}

// give moves tokens from the bank to the player at seat.
func give(state *entities.GameState, seat int, gems entities.Gems) {
	for color, n := range gems {
		state.Gems[color] -= n
		state.Players[seat].Gems[color] += n
	}
}

// giveBonus hands the player at seat n purchased cards of color.
func giveBonus(state *entities.GameState, seat int, color entities.GemType, n int) {
	p := &state.Players[seat]
	for i := 0; i < n; i++ {
		p.Cards = append(p.Cards, entities.Card{
			ID:    1000 + len(p.Cards),
			Level: 1,
			Gem:   color,
			Cost:  entities.Gems{},
		})
	}
}

func requireConserved(t *testing.T, state entities.GameState) {
	t.Helper()
	inPlay := state.TokensInPlay()
	for _, gem := range entities.AllGems {
		require.Equal(t, state.Supply[gem], inPlay[gem], "tokens of %s", gem)
	}
}
