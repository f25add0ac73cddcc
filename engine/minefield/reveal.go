package minefield

import (
	"github.com/gammazero/deque"

	"github.com/ferdynandzaposki-spec/globesweeper2/types"
)

// reveal uncovers a safe cell and floods outward through zero cells with an
// explicit FIFO worklist. It returns the positions that flipped to revealed
// in the order they flipped. Revealed or flagged targets are left alone.
// The caller handles mines before calling reveal.
func reveal(b *Board, start types.Coord) []types.Coord {
	if c := b.At(start); c.Revealed || c.Flagged {
		return nil
	}

	var (
		flipped []types.Coord
		work    deque.Deque[types.Coord]
	)
	work.PushBack(start)
	for work.Len() > 0 {
		pos := work.PopFront()
		cell := b.At(pos)
		// Small tori list the same neighbor more than once.
		if cell.Revealed || cell.Flagged {
			continue
		}
		cell.Revealed = true
		b.Revealed++
		flipped = append(flipped, pos)

		if cell.Adjacent > 0 {
			continue
		}
		for _, n := range b.Neighbors(pos) {
			nc := b.At(n)
			if !nc.Revealed && !nc.Flagged {
				work.PushBack(n)
			}
		}
	}
	return flipped
}
