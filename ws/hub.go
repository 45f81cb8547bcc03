package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"go-splendor/dto"
	"go-splendor/entities"
	"go-splendor/service"
	"go-splendor/utils"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 32
)

// ReadWriteConn is the part of *websocket.Conn the hub uses.
type ReadWriteConn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// client queues outgoing messages for a single writer goroutine, so a peer
// that stops reading never blocks the room publishing to it.
type client struct {
	playerID string
	conn     ReadWriteConn
	send     chan []byte
	done     chan struct{}
	once     sync.Once
}

func newClient(playerID string, conn ReadWriteConn) *client {
	return &client{
		playerID: playerID,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		done:     make(chan struct{}),
	}
}

// enqueue reports false when the client is closed or its queue is full.
func (c *client) enqueue(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// Hub keeps the live connections of every room and pushes a sync message to
// all of them whenever the room service publishes a change.
type Hub struct {
	rooms    *service.RoomService
	tokens   *utils.TokenIssuer
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]map[*client]struct{}
}

func NewHub(rooms *service.RoomService, tokens *utils.TokenIssuer, logger *zap.Logger) *Hub {
	h := &Hub{
		rooms:  rooms,
		tokens: tokens,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[string]map[*client]struct{}),
	}
	rooms.OnChange(h.Broadcast)
	return h
}

// HandleWebSocket upgrades GET /ws?roomID=..&token=.. for a seated player.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	roomID := c.Query("roomID")
	claims, err := h.tokens.ParseAccessToken(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
		return
	}

	snap, err := h.rooms.GetRoom(c.Request.Context(), roomID)
	if err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Code: service.Code(err), Message: err.Error()})
		return
	}
	if !snap.Room.HasPlayer(claims.UserID) {
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Code: service.Code(service.ErrNotInRoom), Message: service.ErrNotInRoom.Error()})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	h.Serve(c.Request.Context(), roomID, claims.UserID, conn)
}

// Serve runs the read loop of one connection until it fails or closes.
func (h *Hub) Serve(ctx context.Context, roomID, playerID string, conn ReadWriteConn) {
	cl := h.register(roomID, playerID, conn)
	defer h.unregister(roomID, cl)
	defer cl.close()
	go h.writeLoop(cl)

	if snap, err := h.rooms.GetRoom(ctx, roomID); err == nil {
		h.write(cl, syncMessage(snap))
	}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			h.logger.Debug("connection closed",
				zap.String("room", roomID),
				zap.String("player", playerID),
				zap.Error(err))
			return
		}
		if err := h.handleMessage(ctx, roomID, playerID, raw); err != nil {
			h.logger.Debug("message rejected",
				zap.String("room", roomID),
				zap.String("player", playerID),
				zap.Error(err))
			h.write(cl, errorMessage(err))
		}
	}
}

// Broadcast sends snap to every connection in its room.
func (h *Hub) Broadcast(snap entities.RoomSnapshot) {
	msg := syncMessage(snap)

	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients[snap.Room.RoomID]))
	for cl := range h.clients[snap.Room.RoomID] {
		targets = append(targets, cl)
	}
	h.mu.RUnlock()

	for _, cl := range targets {
		h.write(cl, msg)
	}
}

// Online counts the open connections of a room.
func (h *Hub) Online(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[roomID])
}

func (h *Hub) register(roomID, playerID string, conn ReadWriteConn) *client {
	cl := newClient(playerID, conn)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[roomID] == nil {
		h.clients[roomID] = make(map[*client]struct{})
	}
	h.clients[roomID][cl] = struct{}{}
	h.logger.Info("player connected", zap.String("room", roomID), zap.String("player", playerID))
	return cl
}

func (h *Hub) unregister(roomID string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients[roomID], cl)
	if len(h.clients[roomID]) == 0 {
		delete(h.clients, roomID)
	}
	h.logger.Info("player disconnected", zap.String("room", roomID), zap.String("player", cl.playerID))
}

func (h *Hub) write(cl *client, msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("encode message failed", zap.Error(err))
		return
	}
	if !cl.enqueue(data) {
		h.logger.Warn("client not keeping up, closing connection", zap.String("player", cl.playerID))
		cl.close()
	}
}

func (h *Hub) writeLoop(cl *client) {
	for {
		select {
		case <-cl.done:
			return
		case data := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.logger.Warn("send failed, closing connection", zap.String("player", cl.playerID), zap.Error(err))
				cl.close()
				return
			}
		}
	}
}

func syncMessage(snap entities.RoomSnapshot) dto.SyncMessage {
	return dto.SyncMessage{
		Type:   dto.MsgSync,
		RoomID: snap.Room.RoomID,
		Room:   snap.Room,
		State:  snap.State,
	}
}

func errorMessage(err error) dto.ErrorMessage {
	return dto.ErrorMessage{
		Type:    dto.MsgError,
		Code:    messageCode(err),
		Message: err.Error(),
	}
}
