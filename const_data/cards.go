package const_data

import "go-splendor/entities"

// cost shorthand in bank order: diamond, sapphire, emerald, ruby, onyx
type cost [5]int

func (c cost) gems() entities.Gems {
	g := entities.Gems{}
	for i, n := range c {
		if n > 0 {
			g[entities.GemColors[i]] = n
		}
	}
	return g
}

type cardRow struct {
	gem    entities.GemType
	points int
	cost   cost
}

var level1 = []cardRow{
	{entities.Onyx, 0, cost{1, 1, 1, 1, 0}},
	{entities.Onyx, 0, cost{1, 2, 1, 1, 0}},
	{entities.Onyx, 0, cost{2, 2, 0, 1, 0}},
	{entities.Onyx, 0, cost{0, 0, 1, 3, 1}},
	{entities.Onyx, 0, cost{0, 0, 2, 1, 0}},
	{entities.Onyx, 0, cost{2, 0, 2, 0, 0}},
	{entities.Onyx, 0, cost{0, 0, 3, 0, 0}},
	{entities.Onyx, 1, cost{0, 4, 0, 0, 0}},

	{entities.Sapphire, 0, cost{1, 0, 1, 1, 1}},
	{entities.Sapphire, 0, cost{1, 0, 1, 2, 1}},
	{entities.Sapphire, 0, cost{1, 0, 2, 2, 0}},
	{entities.Sapphire, 0, cost{0, 1, 3, 1, 0}},
	{entities.Sapphire, 0, cost{1, 0, 0, 0, 2}},
	{entities.Sapphire, 0, cost{0, 0, 2, 0, 2}},
	{entities.Sapphire, 0, cost{0, 0, 0, 0, 3}},
	{entities.Sapphire, 1, cost{0, 0, 0, 4, 0}},

	{entities.Diamond, 0, cost{0, 1, 1, 1, 1}},
	{entities.Diamond, 0, cost{0, 1, 2, 1, 1}},
	{entities.Diamond, 0, cost{0, 2, 2, 0, 1}},
	{entities.Diamond, 0, cost{3, 1, 0, 0, 1}},
	{entities.Diamond, 0, cost{0, 0, 0, 2, 1}},
	{entities.Diamond, 0, cost{0, 2, 0, 0, 2}},
	{entities.Diamond, 0, cost{0, 3, 0, 0, 0}},
	{entities.Diamond, 1, cost{0, 0, 4, 0, 0}},

	{entities.Emerald, 0, cost{1, 1, 0, 1, 1}},
	{entities.Emerald, 0, cost{1, 1, 0, 1, 2}},
	{entities.Emerald, 0, cost{0, 1, 0, 2, 2}},
	{entities.Emerald, 0, cost{1, 3, 1, 0, 0}},
	{entities.Emerald, 0, cost{2, 1, 0, 0, 0}},
	{entities.Emerald, 0, cost{0, 2, 0, 2, 0}},
	{entities.Emerald, 0, cost{0, 0, 0, 3, 0}},
	{entities.Emerald, 1, cost{0, 0, 0, 0, 4}},

	{entities.Ruby, 0, cost{1, 1, 1, 0, 1}},
	{entities.Ruby, 0, cost{2, 1, 1, 0, 1}},
	{entities.Ruby, 0, cost{2, 0, 1, 0, 2}},
	{entities.Ruby, 0, cost{1, 0, 0, 1, 3}},
	{entities.Ruby, 0, cost{0, 2, 1, 0, 0}},
	{entities.Ruby, 0, cost{2, 0, 0, 2, 0}},
	{entities.Ruby, 0, cost{3, 0, 0, 0, 0}},
	{entities.Ruby, 1, cost{4, 0, 0, 0, 0}},
}

var level2 = []cardRow{
	{entities.Onyx, 1, cost{3, 2, 2, 0, 0}},
	{entities.Onyx, 1, cost{3, 0, 3, 0, 2}},
	{entities.Onyx, 2, cost{0, 1, 4, 2, 0}},
	{entities.Onyx, 2, cost{0, 0, 5, 3, 0}},
	{entities.Onyx, 2, cost{5, 0, 0, 0, 0}},
	{entities.Onyx, 3, cost{0, 0, 0, 0, 6}},

	{entities.Sapphire, 1, cost{0, 2, 2, 3, 0}},
	{entities.Sapphire, 1, cost{0, 2, 3, 0, 3}},
	{entities.Sapphire, 2, cost{5, 3, 0, 0, 0}},
	{entities.Sapphire, 2, cost{2, 0, 0, 1, 4}},
	{entities.Sapphire, 2, cost{0, 5, 0, 0, 0}},
	{entities.Sapphire, 3, cost{0, 6, 0, 0, 0}},

	{entities.Diamond, 1, cost{0, 0, 3, 2, 2}},
	{entities.Diamond, 1, cost{2, 3, 0, 3, 0}},
	{entities.Diamond, 2, cost{0, 0, 1, 4, 2}},
	{entities.Diamond, 2, cost{0, 0, 0, 5, 3}},
	{entities.Diamond, 2, cost{0, 0, 0, 5, 0}},
	{entities.Diamond, 3, cost{6, 0, 0, 0, 0}},

	{entities.Emerald, 1, cost{3, 0, 2, 3, 0}},
	{entities.Emerald, 1, cost{2, 3, 0, 0, 2}},
	{entities.Emerald, 2, cost{4, 2, 0, 0, 1}},
	{entities.Emerald, 2, cost{0, 5, 3, 0, 0}},
	{entities.Emerald, 2, cost{0, 0, 5, 0, 0}},
	{entities.Emerald, 3, cost{0, 0, 6, 0, 0}},

	{entities.Ruby, 1, cost{2, 0, 0, 2, 3}},
	{entities.Ruby, 1, cost{0, 3, 0, 2, 3}},
	{entities.Ruby, 2, cost{1, 4, 2, 0, 0}},
	{entities.Ruby, 2, cost{3, 0, 0, 0, 5}},
	{entities.Ruby, 2, cost{0, 0, 0, 0, 5}},
	{entities.Ruby, 3, cost{0, 0, 0, 6, 0}},
}

var level3 = []cardRow{
	{entities.Onyx, 3, cost{3, 3, 5, 3, 0}},
	{entities.Onyx, 4, cost{0, 0, 0, 7, 0}},
	{entities.Onyx, 4, cost{0, 0, 3, 6, 3}},
	{entities.Onyx, 5, cost{0, 0, 0, 7, 3}},

	{entities.Sapphire, 3, cost{3, 0, 3, 3, 5}},
	{entities.Sapphire, 4, cost{7, 0, 0, 0, 0}},
	{entities.Sapphire, 4, cost{6, 3, 0, 0, 3}},
	{entities.Sapphire, 5, cost{7, 3, 0, 0, 0}},

	{entities.Diamond, 3, cost{0, 3, 3, 5, 3}},
	{entities.Diamond, 4, cost{0, 0, 0, 0, 7}},
	{entities.Diamond, 4, cost{3, 0, 0, 3, 6}},
	{entities.Diamond, 5, cost{3, 0, 0, 0, 7}},

	{entities.Emerald, 3, cost{5, 3, 0, 3, 3}},
	{entities.Emerald, 4, cost{0, 7, 0, 0, 0}},
	{entities.Emerald, 4, cost{3, 6, 3, 0, 0}},
	{entities.Emerald, 5, cost{0, 7, 3, 0, 0}},

	{entities.Ruby, 3, cost{3, 5, 3, 0, 3}},
	{entities.Ruby, 4, cost{0, 0, 7, 0, 0}},
	{entities.Ruby, 4, cost{0, 3, 6, 3, 0}},
	{entities.Ruby, 5, cost{0, 0, 7, 3, 0}},
}

// SplendorCards is the printed deck, 40/30/20 cards by level. Ids run from
// 1 to 90 in level order.
var SplendorCards = buildCards()

func buildCards() map[int][]entities.Card {
	out := make(map[int][]entities.Card, 3)
	id := 1
	for level, rows := range [][]cardRow{level1, level2, level3} {
		cards := make([]entities.Card, 0, len(rows))
		for i, r := range rows {
			cards = append(cards, entities.Card{
				ID:     id,
				Level:  level + 1,
				Points: r.points,
				Gem:    r.gem,
				Cost:   r.cost.gems(),
				SpritePosition: entities.SpritePosition{
					X: i % 8,
					Y: level*5 + i/8,
				},
			})
			id++
		}
		out[level+1] = cards
	}
	return out
}

// AllCards flattens SplendorCards in id order. Each call returns fresh copies.
func AllCards() []entities.Card {
	var out []entities.Card
	for level := entities.MinCardLevel; level <= entities.MaxCardLevel; level++ {
		for _, c := range SplendorCards[level] {
			c.Cost = c.Cost.Clone()
			out = append(out, c)
		}
	}
	return out
}
