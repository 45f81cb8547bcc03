package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"

	"go-splendor/dto"
	"go-splendor/engine"
	"go-splendor/entities"
	"go-splendor/service"
)

var errBadMessage = errors.New("invalid message")

func messageCode(err error) string {
	if errors.Is(err, errBadMessage) {
		return "INVALID_MESSAGE"
	}
	return service.Code(err)
}

type messageHandler func(h *Hub, ctx context.Context, roomID, playerID string, payload interface{}) error

var messageHandlers = map[string]messageHandler{
	dto.MsgGetGem:       handleGetGemMessage,
	dto.MsgBuyCard:      handleBuyCardMessage,
	dto.MsgPreserveCard: handleReserveCardMessage,
	dto.MsgEndTurn:      handleEndTurnMessage,
	dto.MsgStartGame:    handleStartGameMessage,
	dto.MsgRestartGame:  handleRestartGameMessage,
}

func (h *Hub) handleMessage(ctx context.Context, roomID, playerID string, raw []byte) error {
	var msg dto.ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return fmt.Errorf("%w: %v", errBadMessage, err)
	}
	handler, ok := messageHandlers[msg.Type]
	if !ok {
		return fmt.Errorf("%w: unknown type %q", errBadMessage, msg.Type)
	}
	return handler(h, ctx, roomID, playerID, msg.Payload)
}

func handleGetGemMessage(h *Hub, ctx context.Context, roomID, playerID string, payload interface{}) error {
	var counts map[string]int
	if err := decodePayload(payload, &counts); err != nil {
		return err
	}
	gems := entities.Gems{}
	for color, n := range counts {
		gems[entities.GemType(color)] = n
	}
	_, err := h.rooms.PerformAction(ctx, roomID, engine.TakeGems(playerID, gems))
	return err
}

func handleBuyCardMessage(h *Hub, ctx context.Context, roomID, playerID string, payload interface{}) error {
	card, err := cardPayload(payload)
	if err != nil {
		return err
	}
	_, err = h.rooms.PerformAction(ctx, roomID, engine.PurchaseCard(playerID, card.CardID))
	return err
}

func handleReserveCardMessage(h *Hub, ctx context.Context, roomID, playerID string, payload interface{}) error {
	card, err := cardPayload(payload)
	if err != nil {
		return err
	}
	action := engine.ReserveCard(playerID, card.CardID)
	if card.Deck != 0 {
		action = engine.ReserveFromDeck(playerID, card.Deck)
	}
	_, err = h.rooms.PerformAction(ctx, roomID, action)
	return err
}

func handleEndTurnMessage(h *Hub, ctx context.Context, roomID, playerID string, _ interface{}) error {
	_, err := h.rooms.PerformAction(ctx, roomID, engine.EndTurn(playerID))
	return err
}

func handleStartGameMessage(h *Hub, ctx context.Context, roomID, playerID string, _ interface{}) error {
	_, err := h.rooms.StartGame(ctx, roomID, playerID)
	return err
}

func handleRestartGameMessage(h *Hub, ctx context.Context, roomID, playerID string, _ interface{}) error {
	_, err := h.rooms.RestartGame(ctx, roomID, playerID)
	return err
}

// cardPayload accepts either a bare card id or {cardId, deck}.
func cardPayload(payload interface{}) (dto.CardPayload, error) {
	var p dto.CardPayload
	target := interface{}(&p.CardID)
	if _, ok := payload.(map[string]interface{}); ok {
		target = &p
	}
	if err := decodePayload(payload, target); err != nil {
		return dto.CardPayload{}, err
	}
	return p, nil
}

func decodePayload(payload interface{}, out interface{}) error {
	if payload == nil {
		return fmt.Errorf("%w: missing payload", errBadMessage)
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       stringToIntHookFunc(),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(payload); err != nil {
		return fmt.Errorf("%w: %v", errBadMessage, err)
	}
	return nil
}

// Clients send ids as numbers or numeric strings.
func stringToIntHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Kind, to reflect.Kind, data interface{}) (interface{}, error) {
		if from == reflect.String && to == reflect.Int {
			return strconv.Atoi(data.(string))
		}
		return data, nil
	}
}
