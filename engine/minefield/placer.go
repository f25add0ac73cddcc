package minefield

import (
	"math/rand"

	"github.com/ferdynandzaposki-spec/globesweeper2/types"
)

// placeMines lays b.Mines mines uniformly over every cell except safe and
// then computes the adjacency counts. It runs once per game.
func placeMines(b *Board, safe types.Coord, rng *rand.Rand) {
	candidates := make([]types.Coord, 0, b.Total()-1)
	b.each(func(pos types.Coord, _ *Cell) {
		if pos != safe {
			candidates = append(candidates, pos)
		}
	})

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	for _, pos := range candidates[:b.Mines] {
		b.At(pos).Mine = true
	}
	countAdjacent(b)
	b.Placed = true
}

// countAdjacent fills in Adjacent for every safe cell.
func countAdjacent(b *Board) {
	b.each(func(pos types.Coord, cell *Cell) {
		if cell.Mine {
			return
		}
		count := 0
		for _, n := range b.Neighbors(pos) {
			if b.At(n).Mine {
				count++
			}
		}
		cell.Adjacent = count
	})
}
