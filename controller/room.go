package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-splendor/dto"
	"go-splendor/entities"
	"go-splendor/middleware"
	"go-splendor/service"
)

type RoomController struct {
	rooms *service.RoomService
}

func NewRoomController(rooms *service.RoomService) *RoomController {
	return &RoomController{rooms: rooms}
}

func caller(c *gin.Context) entities.RoomPlayer {
	return entities.RoomPlayer{
		PlayerID: c.GetString(middleware.ContextUserID),
		Name:     c.GetString(middleware.ContextUserName),
	}
}

func (r *RoomController) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	room, err := r.rooms.CreateRoom(c.Request.Context(), caller(c), req.MaxPlayers)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "room created", dto.CreateRoomResponse{RoomID: room.RoomID, Room: room})
}

func (r *RoomController) GetRoomList(c *gin.Context) {
	ok(c, "ok", dto.GetRoomList{Rooms: r.rooms.ListRooms()})
}

func (r *RoomController) GetRoomInfo(c *gin.Context) {
	snap, err := r.rooms.GetRoom(c.Request.Context(), c.Param("roomID"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "ok", snap)
}

func (r *RoomController) JoinRoom(c *gin.Context) {
	var req dto.JoinRoomRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	player := caller(c)
	if req.Name != "" {
		player.Name = req.Name
	}
	room, err := r.rooms.JoinRoom(c.Request.Context(), c.Param("roomID"), player)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "joined", room)
}

func (r *RoomController) StartGame(c *gin.Context) {
	state, err := r.rooms.StartGame(c.Request.Context(), c.Param("roomID"), caller(c).PlayerID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "game started", state)
}

func (r *RoomController) RestartGame(c *gin.Context) {
	state, err := r.rooms.RestartGame(c.Request.Context(), c.Param("roomID"), caller(c).PlayerID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "game restarted", state)
}

// PerformAction takes a GameAction body. The player is always the caller.
func (r *RoomController) PerformAction(c *gin.Context) {
	var action entities.GameAction
	if err := c.ShouldBindJSON(&action); err != nil {
		badRequest(c, err)
		return
	}
	action.PlayerID = caller(c).PlayerID
	action.PlayerName = ""
	action.Timestamp = 0

	state, err := r.rooms.PerformAction(c.Request.Context(), c.Param("roomID"), action)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "ok", state)
}

func (r *RoomController) DeleteRoom(c *gin.Context) {
	if err := r.rooms.DeleteRoom(c.Request.Context(), c.Param("roomID"), caller(c).PlayerID); err != nil {
		fail(c, err)
		return
	}
	ok(c, "room deleted", nil)
}

func Health(rooms *service.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "rooms": len(rooms.ListRooms())})
	}
}
