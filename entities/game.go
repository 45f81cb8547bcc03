package entities

type GameStatus string

const (
	GameStatusWaiting  GameStatus = "waiting"
	GameStatusPlaying  GameStatus = "playing"
	GameStatusFinished GameStatus = "finished"
)

// GameState is the aggregate root of one game. The engine store owns it; every
// copy handed out is produced by Clone.
type GameState struct {
	Players              []Player     `json:"players"`
	CurrentPlayer        int          `json:"currentPlayer"`
	Gems                 Gems         `json:"gems"`   // bank
	Supply               Gems         `json:"supply"` // bank at setup, constant
	Cards                CardRows     `json:"cards"`
	Nobles               []Noble      `json:"nobles"`
	Status               GameStatus   `json:"status"`
	LastRound            bool         `json:"lastRound"`
	LastRoundStartPlayer *int         `json:"lastRoundStartPlayer"`
	Winner               *string      `json:"winner"`
	Turn                 int          `json:"turn"`            // completed turns
	TurnActionTaken      bool         `json:"turnActionTaken"` // current player already acted
	Actions              []GameAction `json:"actions"`
}

// Clone returns a deep copy. Logged actions are immutable and only the slice
// holding them is copied.
func (s GameState) Clone() GameState {
	out := s
	out.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		out.Players[i] = p.clone()
	}
	out.Gems = s.Gems.Clone()
	out.Supply = s.Supply.Clone()
	out.Cards = s.Cards.clone()
	out.Nobles = cloneNobles(s.Nobles)
	if s.LastRoundStartPlayer != nil {
		seat := *s.LastRoundStartPlayer
		out.LastRoundStartPlayer = &seat
	}
	if s.Winner != nil {
		winner := *s.Winner
		out.Winner = &winner
	}
	out.Actions = make([]GameAction, len(s.Actions))
	copy(out.Actions, s.Actions)
	return out
}

// PlayerIndex returns the seat of the player, or -1.
func (s *GameState) PlayerIndex(playerID string) int {
	for i, p := range s.Players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

// Current returns the player whose turn it is, nil before players are seated.
func (s *GameState) Current() *Player {
	if s.CurrentPlayer < 0 || s.CurrentPlayer >= len(s.Players) {
		return nil
	}
	return &s.Players[s.CurrentPlayer]
}

// TokensInPlay sums bank and player holdings per token type.
func (s *GameState) TokensInPlay() Gems {
	total := s.Gems.Clone()
	if total == nil {
		total = Gems{}
	}
	for _, p := range s.Players {
		for t, n := range p.Gems {
			total[t] += n
		}
	}
	return total
}
