package engine

import "go-splendor/entities"

type cardSource int

const (
	sourceOffer cardSource = iota + 1
	sourceReserve
	sourceDeck
)

type cardLocation struct {
	source cardSource
	level  int
	index  int
	card   entities.Card
}

func findOffered(rows *entities.CardRows, cardID int) (cardLocation, bool) {
	for level := entities.MinCardLevel; level <= entities.MaxCardLevel; level++ {
		for i, c := range *rows.Offer(level) {
			if c.ID == cardID {
				return cardLocation{source: sourceOffer, level: level, index: i, card: c}, true
			}
		}
	}
	return cardLocation{}, false
}

// locatePurchase looks in the offer rows, then in the buyer's reserve.
func locatePurchase(state *entities.GameState, player *entities.Player, cardID int) (cardLocation, bool) {
	if loc, ok := findOffered(&state.Cards, cardID); ok {
		return loc, true
	}
	if i := player.ReservedIndex(cardID); i >= 0 {
		return cardLocation{source: sourceReserve, index: i, card: player.ReservedCards[i]}, true
	}
	return cardLocation{}, false
}

// locateReserve resolves a face-up card, or the top of a deck when the
// details name one.
func locateReserve(state *entities.GameState, d entities.ReserveCardDetails) (cardLocation, bool) {
	if d.Deck != 0 {
		deck := state.Cards.Deck(d.Deck)
		if deck == nil || len(*deck) == 0 {
			return cardLocation{}, false
		}
		return cardLocation{source: sourceDeck, level: d.Deck, card: (*deck)[0]}, true
	}
	return findOffered(&state.Cards, d.Card.ID)
}

// takeFromOffer removes the card at index and refills the same slot from the
// deck top. With an empty deck the row shrinks.
func takeFromOffer(rows *entities.CardRows, level, index int) {
	offer, deck := rows.Offer(level), rows.Deck(level)
	if len(*deck) > 0 {
		(*offer)[index] = (*deck)[0]
		*deck = (*deck)[1:]
		return
	}
	*offer = append((*offer)[:index], (*offer)[index+1:]...)
}

// Payment returns the tokens spent to buy card. Bonuses apply first, then
// tokens of the card's colors, then gold for the remaining shortfall. ok is
// false when gold cannot cover it.
func Payment(player *entities.Player, card entities.Card) (entities.Gems, bool) {
	bonus := player.Bonuses()
	pay := entities.Gems{}
	shortfall := 0
	for _, color := range entities.GemColors {
		need := card.Cost[color] - bonus[color]
		if need <= 0 {
			continue
		}
		held := player.Gems[color]
		if held >= need {
			pay[color] = need
			continue
		}
		if held > 0 {
			pay[color] = held
		}
		shortfall += need - held
	}
	if shortfall > player.Gems[entities.Gold] {
		return nil, false
	}
	if shortfall > 0 {
		pay[entities.Gold] = shortfall
	}
	return pay, true
}
