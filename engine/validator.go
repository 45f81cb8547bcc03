package engine

import (
	"sort"
	"strconv"

	"go-splendor/entities"
)

// Validator checks an action against a state without changing it. Checks run
// in a fixed order so the same input always yields the same rejection.
type Validator struct {
	rules Rules
}

func NewValidator(rules Rules) Validator {
	return Validator{rules: rules}
}

func (v Validator) Validate(state *entities.GameState, action entities.GameAction) error {
	if state.Status != entities.GameStatusPlaying {
		return reject(CodeGameNotInProgress, "game is %s", state.Status)
	}

	seat := state.PlayerIndex(action.PlayerID)
	if seat < 0 || seat != state.CurrentPlayer {
		current := ""
		if p := state.Current(); p != nil {
			current = p.ID
		}
		return rejectWithMetadata(CodeNotPlayersTurn,
			map[string]string{"playerId": action.PlayerID, "currentPlayerId": current},
			"it is not %s's turn", action.PlayerID)
	}

	details := normalizeDetails(action.Details)
	if details == nil || details.ActionType() != action.Type {
		return reject(CodeInvalidAction, "details do not match action type %q", action.Type)
	}

	player := &state.Players[seat]
	switch d := details.(type) {
	case entities.EndTurnDetails:
		return nil
	case entities.AcquireNobleDetails:
		return reject(CodeInvalidAction, "nobles are awarded automatically after a purchase")
	case entities.TakeGemsDetails:
		if state.TurnActionTaken {
			return v.alreadyActed(player)
		}
		return v.validateTakeGems(state, player, d.Gems)
	case entities.ReserveCardDetails:
		if state.TurnActionTaken {
			return v.alreadyActed(player)
		}
		return v.validateReserve(state, player, d)
	case entities.PurchaseCardDetails:
		if state.TurnActionTaken {
			return v.alreadyActed(player)
		}
		return v.validatePurchase(state, player, d)
	}
	return reject(CodeInvalidAction, "unsupported action type %q", action.Type)
}

func (v Validator) alreadyActed(player *entities.Player) error {
	return reject(CodeActionAlreadyTaken, "%s already acted this turn, end the turn first", player.ID)
}

func (v Validator) validateTakeGems(state *entities.GameState, player *entities.Player, gems entities.Gems) error {
	keys := make([]string, 0, len(gems))
	for color := range gems {
		keys = append(keys, string(color))
	}
	sort.Strings(keys)

	var colors []entities.GemType
	total := 0
	for _, k := range keys {
		color, n := entities.GemType(k), gems[entities.GemType(k)]
		switch {
		case n == 0:
			continue
		case n < 0:
			return reject(CodeInvalidGemSelection, "negative count %d for %s", n, color)
		case color == entities.Gold:
			return reject(CodeInvalidGemSelection, "gold can only be gained by reserving")
		case !color.Valid():
			return reject(CodeInvalidGemSelection, "unknown gem %q", color)
		}
		colors = append(colors, color)
		total += n
	}

	switch {
	case len(colors) == 0:
		return reject(CodeInvalidGemSelection, "no gems selected")
	case len(colors) == 1 && gems[colors[0]] == 2:
		color := colors[0]
		if state.Gems[color] < v.rules.TakeTwoMinimum {
			return rejectWithMetadata(CodeInvalidGemSelection,
				map[string]string{"gem": string(color), "bank": strconv.Itoa(state.Gems[color])},
				"taking two %s needs %d in the bank, %d left", color, v.rules.TakeTwoMinimum, state.Gems[color])
		}
	default:
		if len(colors) > 3 {
			return reject(CodeInvalidGemSelection, "at most 3 different colors, got %d", len(colors))
		}
		for _, color := range colors {
			if gems[color] != 1 {
				return reject(CodeInvalidGemSelection, "take one each of up to 3 colors or two of a single color")
			}
			if state.Gems[color] < 1 {
				return rejectWithMetadata(CodeInvalidGemSelection,
					map[string]string{"gem": string(color)},
					"no %s left in the bank", color)
			}
		}
	}

	if held := player.TokenCount(); held+total > v.rules.MaxTokens {
		return rejectWithMetadata(CodeTokenLimitExceeded,
			map[string]string{"held": strconv.Itoa(held), "requested": strconv.Itoa(total)},
			"holding %d plus %d exceeds %d tokens", held, total, v.rules.MaxTokens)
	}
	return nil
}

func (v Validator) validateReserve(state *entities.GameState, player *entities.Player, d entities.ReserveCardDetails) error {
	if _, ok := locateReserve(state, d); !ok {
		if d.Deck != 0 {
			return rejectWithMetadata(CodeEntityNotFound,
				map[string]string{"deck": strconv.Itoa(d.Deck)},
				"no card left in deck %d", d.Deck)
		}
		return rejectWithMetadata(CodeEntityNotFound,
			map[string]string{"cardId": strconv.Itoa(d.Card.ID)},
			"card %d is not on the table", d.Card.ID)
	}
	if len(player.ReservedCards) >= v.rules.MaxReserved {
		return reject(CodeReservationLimitExceeded, "%s already holds %d reserved cards", player.ID, len(player.ReservedCards))
	}
	return nil
}

func (v Validator) validatePurchase(state *entities.GameState, player *entities.Player, d entities.PurchaseCardDetails) error {
	loc, ok := locatePurchase(state, player, d.Card.ID)
	if !ok {
		return rejectWithMetadata(CodeEntityNotFound,
			map[string]string{"cardId": strconv.Itoa(d.Card.ID)},
			"card %d is neither on the table nor reserved by %s", d.Card.ID, player.ID)
	}
	if _, ok := Payment(player, loc.card); !ok {
		return rejectWithMetadata(CodeInsufficientFunds,
			map[string]string{"cardId": strconv.Itoa(loc.card.ID)},
			"%s cannot afford card %d", player.ID, loc.card.ID)
	}
	return nil
}

// NobleQualifies reports whether the player's card bonuses meet every
// requirement of the noble. Tokens never count.
func (v Validator) NobleQualifies(player *entities.Player, noble entities.Noble) bool {
	bonus := player.Bonuses()
	for color, need := range noble.Requirements {
		if bonus[color] < need {
			return false
		}
	}
	return true
}
