package engine

import "go-splendor/entities"

func TakeGems(playerID string, gems entities.Gems) entities.GameAction {
	return entities.GameAction{
		Type:     entities.ActionTakeGems,
		PlayerID: playerID,
		Details:  entities.TakeGemsDetails{Gems: gems},
	}
}

func PurchaseCard(playerID string, cardID int) entities.GameAction {
	return entities.GameAction{
		Type:     entities.ActionPurchaseCard,
		PlayerID: playerID,
		Details:  entities.PurchaseCardDetails{Card: entities.CardRef{ID: cardID}},
	}
}

func ReserveCard(playerID string, cardID int) entities.GameAction {
	return entities.GameAction{
		Type:     entities.ActionReserveCard,
		PlayerID: playerID,
		Details:  entities.ReserveCardDetails{Card: entities.CardRef{ID: cardID}},
	}
}

// ReserveFromDeck reserves the top card of the level's deck without seeing it.
func ReserveFromDeck(playerID string, level int) entities.GameAction {
	return entities.GameAction{
		Type:     entities.ActionReserveCard,
		PlayerID: playerID,
		Details:  entities.ReserveCardDetails{Deck: level},
	}
}

func EndTurn(playerID string) entities.GameAction {
	return entities.GameAction{
		Type:     entities.ActionEndTurn,
		PlayerID: playerID,
		Details:  entities.EndTurnDetails{},
	}
}

// normalizeDetails turns pointer details into values so the rest of the
// engine only switches on value types.
func normalizeDetails(d entities.ActionDetails) entities.ActionDetails {
	switch p := d.(type) {
	case *entities.TakeGemsDetails:
		if p == nil {
			return nil
		}
		return *p
	case *entities.PurchaseCardDetails:
		if p == nil {
			return nil
		}
		return *p
	case *entities.ReserveCardDetails:
		if p == nil {
			return nil
		}
		return *p
	case *entities.AcquireNobleDetails:
		if p == nil {
			return nil
		}
		return *p
	case *entities.EndTurnDetails:
		if p == nil {
			return nil
		}
		return *p
	}
	return d
}
