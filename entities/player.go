package entities

type Player struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Gems          Gems    `json:"gems"`          // held tokens
	Cards         []Card  `json:"cards"`         // purchased, grant bonuses
	ReservedCards []Card  `json:"reservedCards"` // at most 3
	Nobles        []Noble `json:"nobles"`
	Points        int     `json:"points"`
}

func NewPlayer(id, name string) Player {
	return Player{
		ID:            id,
		Name:          name,
		Gems:          NewGems(),
		Cards:         []Card{},
		ReservedCards: []Card{},
		Nobles:        []Noble{},
	}
}

// Bonuses counts the purchased cards per color.
func (p *Player) Bonuses() Gems {
	bonus := Gems{}
	for _, c := range p.Cards {
		bonus[c.Gem]++
	}
	return bonus
}

// TokenCount is the number of tokens held, gold included.
func (p *Player) TokenCount() int {
	return p.Gems.Total()
}

// ReservedIndex returns the position of the card in the reserve, or -1.
func (p *Player) ReservedIndex(cardID int) int {
	for i, c := range p.ReservedCards {
		if c.ID == cardID {
			return i
		}
	}
	return -1
}

func (p Player) clone() Player {
	p.Gems = p.Gems.Clone()
	p.Cards = cloneCards(p.Cards)
	p.ReservedCards = cloneCards(p.ReservedCards)
	p.Nobles = cloneNobles(p.Nobles)
	return p
}
