package entities

type GemType string

const (
	Diamond  GemType = "diamond"
	Sapphire GemType = "sapphire"
	Emerald  GemType = "emerald"
	Ruby     GemType = "ruby"
	Onyx     GemType = "onyx"
	Gold     GemType = "gold" // wildcard, only handed out on reservation
)

// GemColors are the five colors a player can take and a card can grant as bonus.
var GemColors = []GemType{Diamond, Sapphire, Emerald, Ruby, Onyx}

// AllGems is GemColors plus gold, in bank display order.
var AllGems = []GemType{Diamond, Sapphire, Emerald, Ruby, Onyx, Gold}

// Valid reports whether g is one of the six token types.
func (g GemType) Valid() bool {
	for _, t := range AllGems {
		if t == g {
			return true
		}
	}
	return false
}

// Gems maps a token type to a count. Used for the bank, player pools, card
// costs and noble requirements.
type Gems map[GemType]int

// NewGems returns a pool with every token type present at zero.
func NewGems() Gems {
	g := make(Gems, len(AllGems))
	for _, t := range AllGems {
		g[t] = 0
	}
	return g
}

func (g Gems) Total() int {
	total := 0
	for _, n := range g {
		total += n
	}
	return total
}

func (g Gems) Clone() Gems {
	if g == nil {
		return nil
	}
	out := make(Gems, len(g))
	for t, n := range g {
		out[t] = n
	}
	return out
}

// NonZero drops the zero entries, which keeps action log payloads compact.
func (g Gems) NonZero() Gems {
	out := Gems{}
	for t, n := range g {
		if n != 0 {
			out[t] = n
		}
	}
	return out
}
