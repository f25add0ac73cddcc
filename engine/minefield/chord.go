package minefield

import "github.com/ferdynandzaposki-spec/globesweeper2/types"

// flaggedAround counts flagged neighbors of pos.
func flaggedAround(b *Board, pos types.Coord) int {
	count := 0
	for _, n := range b.Neighbors(pos) {
		if b.At(n).Flagged {
			count++
		}
	}
	return count
}

// chordTargets returns the neighbors a chord on pos would reveal, or nil if
// the chord does not apply: pos must be a revealed numbered cell whose
// flagged neighbor count equals its number.
func chordTargets(b *Board, pos types.Coord) []types.Coord {
	cell := b.At(pos)
	if !cell.Revealed || cell.Adjacent == 0 {
		return nil
	}
	if flaggedAround(b, pos) != cell.Adjacent {
		return nil
	}
	var targets []types.Coord
	for _, n := range b.Neighbors(pos) {
		nc := b.At(n)
		if !nc.Revealed && !nc.Flagged {
			targets = append(targets, n)
		}
	}
	return targets
}
