package engine

import "fmt"

// NoblePolicy picks the noble awarded when several qualify on the same turn.
type NoblePolicy string

const (
	NobleLowestID   NoblePolicy = "lowest_id"   // smallest noble id wins
	NobleTableOrder NoblePolicy = "table_order" // first qualifying noble on the table wins
)

// LastRoundPolicy decides which seat closes the final round once a player
// reaches the victory threshold.
type LastRoundPolicy string

const (
	// CloseAtTriggerSeat ends the game when play returns to the seat that
	// triggered the last round.
	CloseAtTriggerSeat LastRoundPolicy = "trigger_seat"
	// CloseAtFirstSeat ends the game when play returns to seat 0, so every
	// seat has had the same number of turns.
	CloseAtFirstSeat LastRoundPolicy = "first_seat"
)

type Rules struct {
	VictoryPoints   int // points that trigger the last round
	MaxTokens       int // tokens a player may hold
	MaxReserved     int // reserved cards a player may hold
	OfferSize       int // face-up cards per level
	TakeTwoMinimum  int // bank count needed before taking two of a color
	NoblePolicy     NoblePolicy
	LastRoundPolicy LastRoundPolicy
}

func DefaultRules() Rules {
	return Rules{
		VictoryPoints:   15,
		MaxTokens:       10,
		MaxReserved:     3,
		OfferSize:       4,
		TakeTwoMinimum:  4,
		NoblePolicy:     NobleLowestID,
		LastRoundPolicy: CloseAtTriggerSeat,
	}
}

// ParseNoblePolicy accepts the string form used in configuration.
func ParseNoblePolicy(s string) (NoblePolicy, error) {
	switch p := NoblePolicy(s); p {
	case NobleLowestID, NobleTableOrder:
		return p, nil
	case "":
		return NobleLowestID, nil
	}
	return "", fmt.Errorf("unknown noble policy %q", s)
}

// ParseLastRoundPolicy accepts the string form used in configuration.
func ParseLastRoundPolicy(s string) (LastRoundPolicy, error) {
	switch p := LastRoundPolicy(s); p {
	case CloseAtTriggerSeat, CloseAtFirstSeat:
		return p, nil
	case "":
		return CloseAtTriggerSeat, nil
	}
	return "", fmt.Errorf("unknown last round policy %q", s)
}
