package entities

const (
	MinCardLevel = 1
	MaxCardLevel = 3
)

type SpritePosition struct {
	X int `json:"x"` // column in the sprite sheet
	Y int `json:"y"` // row in the sprite sheet
}

// Card is a development card. Catalog entries are never mutated.
type Card struct {
	ID             int            `json:"id"`
	Level          int            `json:"level"`  // 1/2/3
	Points         int            `json:"points"` // prestige points
	Gem            GemType        `json:"gem"`    // permanent bonus color
	Cost           Gems           `json:"cost"`   // never contains gold
	SpritePosition SpritePosition `json:"spritePosition"`
}

// Ref is the short form of the card stored in the action log.
func (c Card) Ref() CardRef {
	return CardRef{ID: c.ID, Gem: c.Gem, Points: c.Points}
}

func (c Card) clone() Card {
	c.Cost = c.Cost.Clone()
	return c
}

type Noble struct {
	ID           int    `json:"id"`
	Points       int    `json:"points"`
	Name         string `json:"name"`
	Requirements Gems   `json:"requirements"` // card bonuses needed, never gold
}

func (n Noble) Ref() NobleRef {
	return NobleRef{ID: n.ID, Points: n.Points}
}

func (n Noble) clone() Noble {
	n.Requirements = n.Requirements.Clone()
	return n
}

// CardRows holds the face-up offer and face-down deck of each level.
type CardRows struct {
	Level1 []Card `json:"level1"`
	Level2 []Card `json:"level2"`
	Level3 []Card `json:"level3"`
	Deck1  []Card `json:"deck1"`
	Deck2  []Card `json:"deck2"`
	Deck3  []Card `json:"deck3"`
}

// Offer returns the face-up row of the level, nil for an unknown level.
func (r *CardRows) Offer(level int) *[]Card {
	switch level {
	case 1:
		return &r.Level1
	case 2:
		return &r.Level2
	case 3:
		return &r.Level3
	}
	return nil
}

// Deck returns the draw pile of the level, nil for an unknown level.
// The top of the pile is index 0.
func (r *CardRows) Deck(level int) *[]Card {
	switch level {
	case 1:
		return &r.Deck1
	case 2:
		return &r.Deck2
	case 3:
		return &r.Deck3
	}
	return nil
}

func (r CardRows) clone() CardRows {
	return CardRows{
		Level1: cloneCards(r.Level1),
		Level2: cloneCards(r.Level2),
		Level3: cloneCards(r.Level3),
		Deck1:  cloneCards(r.Deck1),
		Deck2:  cloneCards(r.Deck2),
		Deck3:  cloneCards(r.Deck3),
	}
}

func cloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[i] = c.clone()
	}
	return out
}

func cloneNobles(nobles []Noble) []Noble {
	if nobles == nil {
		return nil
	}
	out := make([]Noble, len(nobles))
	for i, n := range nobles {
		out[i] = n.clone()
	}
	return out
}
