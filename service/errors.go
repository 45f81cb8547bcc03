package service

import (
	"errors"

	"go-splendor/engine"
)

var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomFull           = errors.New("room is full")
	ErrRoomStarted        = errors.New("game already started")
	ErrGameNotStarted     = errors.New("game not started")
	ErrNotInRoom          = errors.New("player is not in the room")
	ErrNotRoomOwner       = errors.New("only the room owner can do that")
	ErrNotEnoughPlayers   = errors.New("not enough players")
	ErrInvalidMaxPlayers  = errors.New("max players must be between 2 and 4")
	ErrInvalidPlayerInput = errors.New("invalid player input")
)

var errorCodes = map[error]string{
	ErrRoomNotFound:       "ROOM_NOT_FOUND",
	ErrRoomFull:           "ROOM_FULL",
	ErrRoomStarted:        "ROOM_STARTED",
	ErrGameNotStarted:     "GAME_NOT_STARTED",
	ErrNotInRoom:          "NOT_IN_ROOM",
	ErrNotRoomOwner:       "NOT_ROOM_OWNER",
	ErrNotEnoughPlayers:   "NOT_ENOUGH_PLAYERS",
	ErrInvalidMaxPlayers:  "INVALID_MAX_PLAYERS",
	ErrInvalidPlayerInput: "INVALID_INPUT",
}

// Code returns a stable machine-readable code for err.
func Code(err error) string {
	var rej *engine.Rejection
	if errors.As(err, &rej) {
		return string(rej.Code)
	}
	for target, code := range errorCodes {
		if errors.Is(err, target) {
			return code
		}
	}
	return "INTERNAL"
}
