// Package minefield implements the engine.GameEngine interface for a
// hexagonal minesweeper board whose edges wrap around into a torus.
package minefield

import "github.com/ferdynandzaposki-spec/globesweeper2/types"

// Cell is the state of one board position.
type Cell struct {
	Mine     bool // set once by placement
	Revealed bool // never reverts
	Flagged  bool // false whenever Revealed
	Adjacent int  // mine neighbors, valid for safe cells after placement
}

// Board is a fixed rows x cols grid of cells plus board wide counters.
// Cells are stored row-major.
type Board struct {
	Rows     int
	Cols     int
	Mines    int
	Flags    int
	Revealed int
	Placed   bool
	cells    []Cell
}

// NewBoard creates an empty board. The caller validates the dimensions.
func NewBoard(rows, cols, mines int) *Board {
	return &Board{
		Rows:  rows,
		Cols:  cols,
		Mines: mines,
		cells: make([]Cell, rows*cols),
	}
}

// InBounds returns true if pos lies on the board.
func (b *Board) InBounds(pos types.Coord) bool {
	return pos.Row >= 0 && pos.Row < b.Rows && pos.Col >= 0 && pos.Col < b.Cols
}

// At returns the cell at pos. pos must be in bounds.
func (b *Board) At(pos types.Coord) *Cell {
	return &b.cells[pos.Row*b.Cols+pos.Col]
}

// Neighbors returns the six wraparound neighbors of pos.
func (b *Board) Neighbors(pos types.Coord) [6]types.Coord {
	return Neighbors(b.Rows, b.Cols, pos)
}

// Total returns the number of cells.
func (b *Board) Total() int {
	return len(b.cells)
}

// Cleared returns true once every safe cell is revealed.
func (b *Board) Cleared() bool {
	return b.Placed && b.Revealed == b.Total()-b.Mines
}

// MinesLeft is the remaining mine counter shown to the player.
// Over-flagging makes it negative.
func (b *Board) MinesLeft() int {
	return b.Mines - b.Flags
}

// ToggleFlag flips the flag on an unrevealed cell and reports whether
// anything changed.
func (b *Board) ToggleFlag(pos types.Coord) bool {
	cell := b.At(pos)
	if cell.Revealed {
		return false
	}
	cell.Flagged = !cell.Flagged
	if cell.Flagged {
		b.Flags++
	} else {
		b.Flags--
	}
	return true
}

// MinePositions returns every mine position in row-major order.
func (b *Board) MinePositions() []types.Coord {
	var mines []types.Coord
	for i, cell := range b.cells {
		if cell.Mine {
			mines = append(mines, types.Coord{Row: i / b.Cols, Col: i % b.Cols})
		}
	}
	return mines
}

// each calls fn for every cell in row-major order.
func (b *Board) each(fn func(pos types.Coord, cell *Cell)) {
	for i := range b.cells {
		fn(types.Coord{Row: i / b.Cols, Col: i % b.Cols}, &b.cells[i])
	}
}
