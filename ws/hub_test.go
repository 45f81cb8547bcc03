package ws

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-splendor/config"
	"go-splendor/dto"
	"go-splendor/engine"
	"go-splendor/entities"
	"go-splendor/service"
	"go-splendor/utils"
)

type nopSnapshots struct{}

func (nopSnapshots) Save(context.Context, entities.RoomSnapshot) error { return nil }
func (nopSnapshots) Delete(context.Context, string) error { return nil }
func (nopSnapshots) List(context.Context) ([]entities.RoomSnapshot, error, error) {
	return nil, nil, nil
}

type fakeConn struct {
	in     chan []byte
	mu     sync.Mutex
	out    []map[string]interface{}
	closed bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{in: make(chan []byte, 8)}
}

func (f *fakeConn) ReadMessage() (int, []byte, error) {
	msg, ok := <-f.in
	if !ok {
		return 0, nil, io.EOF
	}
	return websocket.TextMessage, msg, nil
}

func (f *fakeConn) WriteMessage(_ int, data []byte) error {
	var msg map[string]interface{}
	if err := json.Unmarshal(data, &msg); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.out = append(f.out, msg)
	return nil
}

func (f *fakeConn) SetWriteDeadline(time.Time) error { return nil }

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) messages() []map[string]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]interface{}(nil), f.out...)
}

func (f *fakeConn) last() map[string]interface{} {
	msgs := f.messages()
	if len(msgs) == 0 {
		return nil
	}
	return msgs[len(msgs)-1]
}

func (f *fakeConn) waitFor(t *testing.T, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return len(f.messages()) >= n }, time.Second, 5*time.Millisecond)
}

// stalledConn takes the first write and then blocks every later one until
// released, like a peer that stopped reading.
type stalledConn struct {
	*fakeConn
	writes    int
	release   chan struct{}
	closed    chan struct{}
	closeOnce sync.Once
}

func newStalledConn() *stalledConn {
	return &stalledConn{
		fakeConn: newFakeConn(),
		release:  make(chan struct{}),
		closed:   make(chan struct{}),
	}
}

func (s *stalledConn) WriteMessage(mt int, data []byte) error {
	s.mu.Lock()
	s.writes++
	n := s.writes
	s.mu.Unlock()
	if n > 1 {
		<-s.release
		return errors.New("i/o timeout")
	}
	return s.fakeConn.WriteMessage(mt, data)
}

func (s *stalledConn) ReadMessage() (int, []byte, error) {
	<-s.closed
	return 0, nil, io.EOF
}

func (s *stalledConn) Close() error {
	s.closeOnce.Do(func() { close(s.closed) })
	return nil
}

type fixture struct {
	hub    *Hub
	rooms  *service.RoomService
	tokens *utils.TokenIssuer
	roomID string
}

func newFixture(t *testing.T, start bool) fixture {
	t.Helper()
	rooms := service.NewRoomService(nopSnapshots{}, service.WithShuffle(false))
	tokens := utils.NewTokenIssuer(config.JWTConfig{AccessSecret: "a", RefreshSecret: "r", AccessTTL: time.Minute})
	hub := NewHub(rooms, tokens, zap.NewNop())

	ctx := context.Background()
	info, err := rooms.CreateRoom(ctx, entities.RoomPlayer{PlayerID: "alice", Name: "Alice"}, 2)
	require.NoError(t, err)
	_, err = rooms.JoinRoom(ctx, info.RoomID, entities.RoomPlayer{PlayerID: "bob", Name: "Bob"})
	require.NoError(t, err)
	if start {
		_, err = rooms.StartGame(ctx, info.RoomID, "alice")
		require.NoError(t, err)
	}
	return fixture{hub: hub, rooms: rooms, tokens: tokens, roomID: info.RoomID}
}

func (f fixture) connect(t *testing.T, playerID string) *fakeConn {
	t.Helper()
	conn := newFakeConn()
	go f.hub.Serve(context.Background(), f.roomID, playerID, conn)
	conn.waitFor(t, 1)
	t.Cleanup(func() { close(conn.in) })
	return conn
}

func state(t *testing.T, msg map[string]interface{}) map[string]interface{} {
	t.Helper()
	require.Equal(t, "sync", msg["type"])
	s, ok := msg["state"].(map[string]interface{})
	require.True(t, ok, "sync carries a state")
	return s
}

func TestServeSendsInitialSync(t *testing.T) {
	f := newFixture(t, false)
	conn := f.connect(t, "alice")

	first := conn.messages()[0]
	assert.Equal(t, "sync", first["type"])
	assert.Equal(t, f.roomID, first["roomID"])
	assert.Nil(t, first["state"], "no game before start")
	assert.Equal(t, 1, f.hub.Online(f.roomID))
}

func TestStartAndTakeGemsBroadcast(t *testing.T) {
	f := newFixture(t, false)
	alice := f.connect(t, "alice")
	bob := f.connect(t, "bob")

	alice.in <- []byte(`{"type":"start_game"}`)
	bob.waitFor(t, 2)
	assert.Equal(t, "playing", state(t, bob.last())["status"])

	alice.in <- []byte(`{"type":"get_gem","payload":{"ruby":1,"onyx":"1"}}`)
	bob.waitFor(t, 3)

	s := state(t, bob.last())
	players := s["players"].([]interface{})
	gems := players[0].(map[string]interface{})["gems"].(map[string]interface{})
	assert.Equal(t, float64(1), gems["ruby"])
	assert.Equal(t, float64(1), gems["onyx"])
}

func TestRejectionGoesToSenderOnly(t *testing.T) {
	f := newFixture(t, true)
	alice := f.connect(t, "alice")
	bob := f.connect(t, "bob")

	bob.in <- []byte(`{"type":"end_turn"}`)
	bob.waitFor(t, 2)

	msg := bob.last()
	assert.Equal(t, "error", msg["type"])
	assert.Equal(t, "NOT_PLAYERS_TURN", msg["code"])
	assert.Len(t, alice.messages(), 1)
}

func TestBadMessages(t *testing.T) {
	f := newFixture(t, true)
	alice := f.connect(t, "alice")

	alice.in <- []byte(`not json`)
	alice.waitFor(t, 2)
	assert.Equal(t, "INVALID_MESSAGE", alice.last()["code"])

	alice.in <- []byte(`{"type":"fly"}`)
	alice.waitFor(t, 3)
	assert.Equal(t, "INVALID_MESSAGE", alice.last()["code"])

	alice.in <- []byte(`{"type":"buy_card"}`)
	alice.waitFor(t, 4)
	assert.Equal(t, "INVALID_MESSAGE", alice.last()["code"])

	alice.in <- []byte(`{"type":"buy_card","payload":"12x"}`)
	alice.waitFor(t, 5)
	assert.Equal(t, "INVALID_MESSAGE", alice.last()["code"])
}

func TestCardPayloads(t *testing.T) {
	tests := []struct {
		name    string
		payload interface{}
		want    int
		deck    int
	}{
		{name: "bare number", payload: float64(12), want: 12},
		{name: "numeric string", payload: "7", want: 7},
		{name: "object", payload: map[string]interface{}{"cardId": float64(3)}, want: 3},
		{name: "deck", payload: map[string]interface{}{"cardId": 0, "deck": "2"}, deck: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cardPayload(tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.CardID)
			assert.Equal(t, tt.deck, got.Deck)
		})
	}
}

func TestReserveFromDeckOverWebSocket(t *testing.T) {
	f := newFixture(t, true)
	alice := f.connect(t, "alice")

	alice.in <- []byte(`{"type":"preserve_card","payload":{"deck":3}}`)
	alice.waitFor(t, 2)

	s := state(t, alice.last())
	reserved := s["players"].([]interface{})[0].(map[string]interface{})["reservedCards"].([]interface{})
	require.Len(t, reserved, 1)
	assert.Equal(t, float64(3), reserved[0].(map[string]interface{})["level"])
}

func TestHandleWebSocket(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := newFixture(t, true)
	r := gin.New()
	r.GET("/ws", f.hub.HandleWebSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()

	t.Run("rejects a bad token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ws?roomID="+f.roomID+"&token=nope", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects outsiders", func(t *testing.T) {
		token, err := f.tokens.GenerateAccessToken("mallory", "Mallory")
		require.NoError(t, err)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ws?roomID="+f.roomID+"&token="+token, nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("plays over a real connection", func(t *testing.T) {
		token, err := f.tokens.GenerateAccessToken("alice", "Alice")
		require.NoError(t, err)
		url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?roomID=" + f.roomID + "&token=" + token

		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		defer conn.Close()

		var msg dto.SyncMessage
		require.NoError(t, conn.ReadJSON(&msg))
		assert.Equal(t, "sync", msg.Type)
		require.NotNil(t, msg.State)

		require.NoError(t, conn.WriteJSON(map[string]interface{}{
			"type":    "get_gem",
			"payload": map[string]int{"diamond": 2},
		}))
		var next dto.SyncMessage
		require.NoError(t, conn.ReadJSON(&next))
		require.NotNil(t, next.State)
		assert.Equal(t, 2, next.State.Players[0].Gems[entities.Diamond])
	})
}

func TestStalledClientDoesNotBlockRoom(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	bob := newStalledConn()
	t.Cleanup(func() { close(bob.release) })
	served := make(chan struct{})
	go func() {
		f.hub.Serve(ctx, f.roomID, "bob", bob)
		close(served)
	}()
	bob.waitFor(t, 1)

	done := make(chan error, 1)
	go func() {
		seats := []string{"alice", "bob"}
		for i := 0; i < 2*sendBuffer; i++ {
			if _, err := f.rooms.PerformAction(ctx, f.roomID, engine.EndTurn(seats[i%2])); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("room blocked behind a client that stopped reading")
	}

	snap, err := f.rooms.GetRoom(ctx, f.roomID)
	require.NoError(t, err)
	assert.Equal(t, 2*sendBuffer, snap.State.Turn)

	select {
	case <-served:
	case <-time.After(time.Second):
		t.Fatal("stalled client was not dropped")
	}
	assert.Zero(t, f.hub.Online(f.roomID))
}

func TestClientEnqueue(t *testing.T) {
	cl := newClient("alice", newFakeConn())
	for i := 0; i < sendBuffer; i++ {
		require.True(t, cl.enqueue([]byte("x")))
	}
	assert.False(t, cl.enqueue([]byte("x")), "full queue")

	cl = newClient("bob", newFakeConn())
	cl.close()
	cl.close()
	assert.False(t, cl.enqueue([]byte("x")), "closed client")
}
