package dto

import "go-splendor/entities"

// Client message types.
const (
	MsgGetGem       = "get_gem"
	MsgBuyCard      = "buy_card"
	MsgPreserveCard = "preserve_card"
	MsgEndTurn      = "end_turn"
	MsgStartGame    = "start_game"
	MsgRestartGame  = "restart_game"
)

// Server message types.
const (
	MsgSync  = "sync"
	MsgError = "error"
)

type ClientMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// CardPayload addresses a card by id, or a deck when Deck is 1..3.
type CardPayload struct {
	CardID int `mapstructure:"cardId"`
	Deck   int `mapstructure:"deck"`
}

type SyncMessage struct {
	Type   string              `json:"type"`
	RoomID string              `json:"roomID"`
	Room   entities.RoomInfo   `json:"room"`
	State  *entities.GameState `json:"state,omitempty"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
