package const_data

import "go-splendor/entities"

const NoblePoints = 3

var NobleTilesList = []entities.Noble{
	{ID: 1, Name: "Mary Stuart", Points: NoblePoints, Requirements: cost{0, 0, 4, 4, 0}.gems()},
	{ID: 2, Name: "Charles Quint", Points: NoblePoints, Requirements: cost{0, 0, 0, 4, 4}.gems()},
	{ID: 3, Name: "Niccolo Machiavelli", Points: NoblePoints, Requirements: cost{0, 4, 4, 0, 0}.gems()},
	{ID: 4, Name: "Isabella of Castile", Points: NoblePoints, Requirements: cost{4, 0, 0, 0, 4}.gems()},
	{ID: 5, Name: "Suleiman the Magnificent", Points: NoblePoints, Requirements: cost{4, 4, 0, 0, 0}.gems()},
	{ID: 6, Name: "Catherine de' Medici", Points: NoblePoints, Requirements: cost{0, 3, 3, 3, 0}.gems()},
	{ID: 7, Name: "Anne of Brittany", Points: NoblePoints, Requirements: cost{3, 3, 3, 0, 0}.gems()},
	{ID: 8, Name: "Henry VIII", Points: NoblePoints, Requirements: cost{3, 0, 0, 3, 3}.gems()},
	{ID: 9, Name: "Elisabeth of Austria", Points: NoblePoints, Requirements: cost{3, 3, 0, 0, 3}.gems()},
	{ID: 10, Name: "Francis I of France", Points: NoblePoints, Requirements: cost{0, 0, 3, 3, 3}.gems()},
}

// AllNobles returns a copy of NobleTilesList.
func AllNobles() []entities.Noble {
	out := make([]entities.Noble, len(NobleTilesList))
	for i, n := range NobleTilesList {
		n.Requirements = n.Requirements.Clone()
		out[i] = n
	}
	return out
}
