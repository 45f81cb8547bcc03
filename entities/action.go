package entities

import (
	"encoding/json"
	"fmt"
)

type ActionType string

const (
	ActionTakeGems     ActionType = "takeGems"
	ActionPurchaseCard ActionType = "purchaseCard"
	ActionReserveCard  ActionType = "reserveCard"
	ActionEndTurn      ActionType = "endTurn"
	ActionAcquireNoble ActionType = "acquireNoble"
)

type CardRef struct {
	ID     int     `json:"id"`
	Gem    GemType `json:"gem,omitempty"`
	Points int     `json:"points"`
}

type NobleRef struct {
	ID     int `json:"id"`
	Points int `json:"points"`
}

// ActionDetails is the payload of a GameAction. Each action type has exactly
// one details type.
type ActionDetails interface {
	ActionType() ActionType
}

type TakeGemsDetails struct {
	Gems Gems `json:"gems"`
}

// PurchaseCardDetails names the card to buy. Gems is the payment and is
// filled in when the action is committed.
type PurchaseCardDetails struct {
	Card CardRef `json:"card"`
	Gems Gems    `json:"gems,omitempty"`
}

// ReserveCardDetails names a face-up card, or with Deck set to 1..3 the top
// card of that deck. Gems holds the gold bonus once committed. A committed
// deck reservation leaves Card empty.
type ReserveCardDetails struct {
	Card CardRef `json:"card"`
	Deck int     `json:"deck,omitempty"`
	Gems Gems    `json:"gems,omitempty"`
}

type AcquireNobleDetails struct {
	Noble NobleRef `json:"noble"`
}

type EndTurnDetails struct{}

func (TakeGemsDetails) ActionType() ActionType     { return ActionTakeGems }
func (PurchaseCardDetails) ActionType() ActionType { return ActionPurchaseCard }
func (ReserveCardDetails) ActionType() ActionType  { return ActionReserveCard }
func (AcquireNobleDetails) ActionType() ActionType { return ActionAcquireNoble }
func (EndTurnDetails) ActionType() ActionType      { return ActionEndTurn }

type GameAction struct {
	Type       ActionType    `json:"type"`
	PlayerID   string        `json:"playerId"`
	PlayerName string        `json:"playerName"` // denormalized for display
	Details    ActionDetails `json:"details"`
	Timestamp  int64         `json:"timestamp"` // unix millis
}

type gameActionJSON struct {
	Type       ActionType      `json:"type"`
	PlayerID   string          `json:"playerId"`
	PlayerName string          `json:"playerName"`
	Details    json.RawMessage `json:"details"`
	Timestamp  int64           `json:"timestamp"`
}

// UnmarshalJSON picks the details type from the action type.
func (a *GameAction) UnmarshalJSON(data []byte) error {
	var raw gameActionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	details, err := decodeDetails(raw.Type, raw.Details)
	if err != nil {
		return err
	}

	*a = GameAction{
		Type:       raw.Type,
		PlayerID:   raw.PlayerID,
		PlayerName: raw.PlayerName,
		Details:    details,
		Timestamp:  raw.Timestamp,
	}
	return nil
}

func decodeDetails(t ActionType, raw json.RawMessage) (ActionDetails, error) {
	switch t {
	case ActionTakeGems:
		var d TakeGemsDetails
		if err := unmarshalDetails(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case ActionPurchaseCard:
		var d PurchaseCardDetails
		if err := unmarshalDetails(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case ActionReserveCard:
		var d ReserveCardDetails
		if err := unmarshalDetails(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case ActionAcquireNoble:
		var d AcquireNobleDetails
		if err := unmarshalDetails(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case ActionEndTurn:
		return EndTurnDetails{}, nil
	}
	return nil, fmt.Errorf("unknown action type %q", t)
}

func unmarshalDetails(raw json.RawMessage, target any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode details: %w", err)
	}
	return nil
}
