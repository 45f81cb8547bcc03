package dto

import "go-splendor/entities"

type GuestLoginRequest struct {
	Name string `json:"name" binding:"required,max=32"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type TokenResponse struct {
	UserID       string `json:"userID"`
	Name         string `json:"name"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

type CreateRoomRequest struct {
	MaxPlayers int `json:"maxPlayers" binding:"required,min=2,max=4"`
}

type CreateRoomResponse struct {
	RoomID string            `json:"roomID"`
	Room   entities.RoomInfo `json:"room"`
}

type JoinRoomRequest struct {
	Name string `json:"name"` // overrides the name in the token
}

type GetRoomList struct {
	Rooms []entities.RoomInfo `json:"rooms"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
