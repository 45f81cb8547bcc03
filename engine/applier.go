package engine

import "go-splendor/entities"

// Applier commits validated actions. Apply never fails: it works on a clone
// and returns the next state, leaving its input untouched.
type Applier struct {
	rules     Rules
	validator Validator
}

func NewApplier(rules Rules) Applier {
	return Applier{rules: rules, validator: NewValidator(rules)}
}

func (a Applier) Apply(state entities.GameState, action entities.GameAction) entities.GameState {
	next := state.Clone()
	player := next.Current()
	if player == nil {
		return next
	}
	if player.Gems == nil {
		player.Gems = entities.NewGems()
	}

	switch d := normalizeDetails(action.Details).(type) {
	case entities.TakeGemsDetails:
		a.takeGems(&next, player, d, action.Timestamp)
	case entities.ReserveCardDetails:
		a.reserve(&next, player, d, action.Timestamp)
	case entities.PurchaseCardDetails:
		a.purchase(&next, player, d, action.Timestamp)
	case entities.EndTurnDetails:
		a.endTurn(&next, action.Timestamp)
	}
	return next
}

func (a Applier) record(state *entities.GameState, player *entities.Player, details entities.ActionDetails, ts int64) {
	state.Actions = append(state.Actions, entities.GameAction{
		Type:       details.ActionType(),
		PlayerID:   player.ID,
		PlayerName: player.Name,
		Details:    details,
		Timestamp:  ts,
	})
}

func (a Applier) takeGems(state *entities.GameState, player *entities.Player, d entities.TakeGemsDetails, ts int64) {
	taken := entities.Gems{}
	for color, n := range d.Gems {
		if n == 0 {
			continue
		}
		state.Gems[color] -= n
		player.Gems[color] += n
		taken[color] = n
	}
	state.TurnActionTaken = true
	a.record(state, player, entities.TakeGemsDetails{Gems: taken}, ts)
}

func (a Applier) reserve(state *entities.GameState, player *entities.Player, d entities.ReserveCardDetails, ts int64) {
	loc, ok := locateReserve(state, d)
	if !ok {
		return
	}
	switch loc.source {
	case sourceDeck:
		deck := state.Cards.Deck(loc.level)
		*deck = (*deck)[1:]
	case sourceOffer:
		takeFromOffer(&state.Cards, loc.level, loc.index)
	}
	player.ReservedCards = append(player.ReservedCards, loc.card)

	// A blind reservation stays hidden from the other seats.
	logged := entities.ReserveCardDetails{Deck: d.Deck}
	if loc.source != sourceDeck {
		logged.Card = loc.card.Ref()
	}
	// A player at the token cap reserves without the gold.
	if state.Gems[entities.Gold] > 0 && player.TokenCount() < a.rules.MaxTokens {
		state.Gems[entities.Gold]--
		player.Gems[entities.Gold]++
		logged.Gems = entities.Gems{entities.Gold: 1}
	}
	state.TurnActionTaken = true
	a.record(state, player, logged, ts)
}

func (a Applier) purchase(state *entities.GameState, player *entities.Player, d entities.PurchaseCardDetails, ts int64) {
	loc, ok := locatePurchase(state, player, d.Card.ID)
	if !ok {
		return
	}
	pay, ok := Payment(player, loc.card)
	if !ok {
		return
	}
	for color, n := range pay {
		player.Gems[color] -= n
		state.Gems[color] += n
	}

	switch loc.source {
	case sourceOffer:
		takeFromOffer(&state.Cards, loc.level, loc.index)
	case sourceReserve:
		player.ReservedCards = append(player.ReservedCards[:loc.index], player.ReservedCards[loc.index+1:]...)
	}
	player.Cards = append(player.Cards, loc.card)
	player.Points += loc.card.Points

	state.TurnActionTaken = true
	a.record(state, player, entities.PurchaseCardDetails{Card: loc.card.Ref(), Gems: pay}, ts)
	a.awardNoble(state, player, ts)
}

// awardNoble gives the player at most one qualifying noble.
func (a Applier) awardNoble(state *entities.GameState, player *entities.Player, ts int64) {
	best := -1
	for i, n := range state.Nobles {
		if !a.validator.NobleQualifies(player, n) {
			continue
		}
		if best < 0 {
			best = i
			if a.rules.NoblePolicy == NobleTableOrder {
				break
			}
			continue
		}
		if n.ID < state.Nobles[best].ID {
			best = i
		}
	}
	if best < 0 {
		return
	}

	noble := state.Nobles[best]
	state.Nobles = append(state.Nobles[:best], state.Nobles[best+1:]...)
	player.Nobles = append(player.Nobles, noble)
	player.Points += noble.Points
	a.record(state, player, entities.AcquireNobleDetails{Noble: noble.Ref()}, ts)
}

func (a Applier) endTurn(state *entities.GameState, ts int64) {
	a.record(state, state.Current(), entities.EndTurnDetails{}, ts)

	if !state.LastRound && a.thresholdReached(state) {
		seat := state.CurrentPlayer
		state.LastRound = true
		state.LastRoundStartPlayer = &seat
	}

	state.CurrentPlayer = (state.CurrentPlayer + 1) % len(state.Players)
	state.Turn++
	state.TurnActionTaken = false

	if state.LastRound && state.CurrentPlayer == a.closingSeat(state) {
		winner := state.Players[pickWinner(state.Players)].ID
		state.Winner = &winner
		state.Status = entities.GameStatusFinished
	}
}

func (a Applier) thresholdReached(state *entities.GameState) bool {
	for _, p := range state.Players {
		if p.Points >= a.rules.VictoryPoints {
			return true
		}
	}
	return false
}

func (a Applier) closingSeat(state *entities.GameState) int {
	if a.rules.LastRoundPolicy == CloseAtFirstSeat || state.LastRoundStartPlayer == nil {
		return 0
	}
	return *state.LastRoundStartPlayer
}

// pickWinner ranks by points, then fewest purchased cards, then earliest seat.
func pickWinner(players []entities.Player) int {
	best := 0
	for i := 1; i < len(players); i++ {
		p, b := players[i], players[best]
		if p.Points > b.Points || (p.Points == b.Points && len(p.Cards) < len(b.Cards)) {
			best = i
		}
	}
	return best
}
