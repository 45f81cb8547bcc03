package engine

import (
	"fmt"

	"go.uber.org/multierr"
	"golang.org/x/exp/rand"

	"go-splendor/const_data"
	"go-splendor/entities"
)

const (
	MinPlayers = 2
	MaxPlayers = 4
)

type PlayerInfo struct {
	ID   string
	Name string
}

// Config describes a new game. Zero values fall back to the printed game:
// the full catalog, the 7-per-color supply and players+1 nobles.
type Config struct {
	Players    []PlayerInfo
	Cards      []entities.Card
	Nobles     []entities.Noble
	Supply     entities.Gems
	NobleCount int
	OfferSize  int
	Shuffle    bool
	Seed       uint64
}

// DefaultSupply is the bank at setup.
func DefaultSupply() entities.Gems {
	supply := entities.NewGems()
	for _, color := range entities.GemColors {
		supply[color] = 7
	}
	supply[entities.Gold] = 5
	return supply
}

func (c Config) withDefaults() Config {
	if c.Cards == nil {
		c.Cards = const_data.AllCards()
	}
	if c.Nobles == nil {
		c.Nobles = const_data.AllNobles()
	}
	if c.Supply == nil {
		c.Supply = DefaultSupply()
	}
	if c.NobleCount == 0 {
		c.NobleCount = len(c.Players) + 1
	}
	if c.OfferSize == 0 {
		c.OfferSize = DefaultRules().OfferSize
	}
	return c
}

// Validate reports every problem with the config at once.
func (c Config) Validate() error {
	c = c.withDefaults()
	var err error

	if n := len(c.Players); n < MinPlayers || n > MaxPlayers {
		err = multierr.Append(err, fmt.Errorf("need %d to %d players, got %d", MinPlayers, MaxPlayers, n))
	}
	seen := make(map[string]bool, len(c.Players))
	for i, p := range c.Players {
		switch {
		case p.ID == "":
			err = multierr.Append(err, fmt.Errorf("player %d has no id", i))
		case seen[p.ID]:
			err = multierr.Append(err, fmt.Errorf("duplicate player id %q", p.ID))
		}
		seen[p.ID] = true
	}

	for gem, n := range c.Supply {
		if !gem.Valid() || n < 0 {
			err = multierr.Append(err, fmt.Errorf("bad supply entry %s=%d", gem, n))
		}
	}

	cardIDs := make(map[int]bool, len(c.Cards))
	for _, card := range c.Cards {
		if cardIDs[card.ID] {
			err = multierr.Append(err, fmt.Errorf("duplicate card id %d", card.ID))
		}
		cardIDs[card.ID] = true
		if card.Level < entities.MinCardLevel || card.Level > entities.MaxCardLevel {
			err = multierr.Append(err, fmt.Errorf("card %d has level %d", card.ID, card.Level))
		}
		if !card.Gem.Valid() || card.Gem == entities.Gold {
			err = multierr.Append(err, fmt.Errorf("card %d has bonus %q", card.ID, card.Gem))
		}
		if bad := badCost(card.Cost); bad != "" {
			err = multierr.Append(err, fmt.Errorf("card %d cost: %s", card.ID, bad))
		}
	}

	nobleIDs := make(map[int]bool, len(c.Nobles))
	for _, noble := range c.Nobles {
		if nobleIDs[noble.ID] {
			err = multierr.Append(err, fmt.Errorf("duplicate noble id %d", noble.ID))
		}
		nobleIDs[noble.ID] = true
		if bad := badCost(noble.Requirements); bad != "" {
			err = multierr.Append(err, fmt.Errorf("noble %d requirements: %s", noble.ID, bad))
		}
	}
	if c.NobleCount < 0 || c.NobleCount > len(c.Nobles) {
		err = multierr.Append(err, fmt.Errorf("cannot deal %d nobles from %d", c.NobleCount, len(c.Nobles)))
	}
	if c.OfferSize < 1 {
		err = multierr.Append(err, fmt.Errorf("offer size must be positive, got %d", c.OfferSize))
	}
	return err
}

func badCost(cost entities.Gems) string {
	for gem, n := range cost {
		if gem == entities.Gold || !gem.Valid() {
			return fmt.Sprintf("unexpected gem %q", gem)
		}
		if n < 0 {
			return fmt.Sprintf("negative %s", gem)
		}
	}
	return ""
}

// NewGame seats the players in roster order and deals the table. The game
// starts in the waiting status.
func NewGame(cfg Config) (entities.GameState, error) {
	if err := cfg.Validate(); err != nil {
		return entities.GameState{}, fmt.Errorf("invalid game config: %w", err)
	}
	cfg = cfg.withDefaults()

	var rng *rand.Rand
	if cfg.Shuffle {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}
	shuffle := func(n int, swap func(i, j int)) {
		if rng != nil {
			rng.Shuffle(n, swap)
		}
	}

	state := entities.GameState{
		Players: make([]entities.Player, 0, len(cfg.Players)),
		Gems:    cfg.Supply.Clone(),
		Supply:  cfg.Supply.Clone(),
		Status:  entities.GameStatusWaiting,
		Actions: []entities.GameAction{},
	}
	for _, gem := range entities.AllGems {
		if _, ok := state.Gems[gem]; !ok {
			state.Gems[gem] = 0
			state.Supply[gem] = 0
		}
	}
	for _, p := range cfg.Players {
		state.Players = append(state.Players, entities.NewPlayer(p.ID, p.Name))
	}

	for level := entities.MinCardLevel; level <= entities.MaxCardLevel; level++ {
		var deck []entities.Card
		for _, card := range cfg.Cards {
			if card.Level == level {
				deck = append(deck, card)
			}
		}
		shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

		n := min(cfg.OfferSize, len(deck))
		offer := append([]entities.Card{}, deck[:n]...)
		rest := append([]entities.Card{}, deck[n:]...)
		*state.Cards.Offer(level) = offer
		*state.Cards.Deck(level) = rest
	}

	nobles := append([]entities.Noble{}, cfg.Nobles...)
	shuffle(len(nobles), func(i, j int) { nobles[i], nobles[j] = nobles[j], nobles[i] })
	state.Nobles = nobles[:cfg.NobleCount]

	return state.Clone(), nil
}
