// Package types contains shared data structures for globesweeper.
package types

import (
	"fmt"
	"time"
)

// Coord is a cell position on the board. Row 0 is the top row, column 0 the
// leftmost column.
type Coord struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// GameState is the lifecycle phase of a single game.
type GameState int

const (
	// Ready means no mines have been placed yet.
	Ready GameState = iota
	Playing
	Won
	Lost
)

func (s GameState) String() string {
	switch s {
	case Ready:
		return "ready"
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Finished returns true for the terminal states.
func (s GameState) Finished() bool {
	return s == Won || s == Lost
}

// CellState is what a player is allowed to see of a cell.
type CellState int

const (
	CellHidden CellState = iota
	CellFlagged
	CellRevealed
	CellMine      // mine exposed at the end of a game
	CellExploded  // the mine that ended the game
	CellWrongFlag // flag on a safe cell, shown after a loss
)

// CellView is the read-only view of one cell. Adjacent is only meaningful
// for CellRevealed.
type CellView struct {
	State    CellState
	Adjacent int
}

// CellUpdate pairs a position with its new view.
type CellUpdate struct {
	Pos  Coord
	View CellView
}

// Change describes the outcome of one accepted engine operation.
// A change with no cells and no state transition is a no-op.
type Change struct {
	Cells      []CellUpdate
	State      GameState
	Transition bool // State differs from the state before the operation
	MinesLeft  int  // mines total minus flags placed, may be negative
	Revealed   int
	Elapsed    time.Duration
	Mines      []Coord // every mine position, set on Lost only
	Detonated  *Coord
}

// Empty returns true if the operation had no observable effect.
func (c *Change) Empty() bool {
	return c == nil || (len(c.Cells) == 0 && !c.Transition)
}

// BoardState is a full read view of the board, indexed as Cells[row][col].
type BoardState struct {
	Rows       int
	Cols       int
	Cells      [][]CellView
	State      GameState
	MinesTotal int
	MinesLeft  int
	Revealed   int
	Elapsed    time.Duration
	Chording   bool
	Detonated  *Coord
}

// Finished returns true if the game is over.
func (b *BoardState) Finished() bool {
	return b.State.Finished()
}

// Height returns the number of rows.
func (b *BoardState) Height() int {
	return len(b.Cells)
}

// Width returns the number of columns.
func (b *BoardState) Width() int {
	if b.Height() == 0 {
		return 0
	}
	return len(b.Cells[0])
}

// At returns the view of the cell at pos. The caller must pass an in-range
// coordinate.
func (b *BoardState) At(pos Coord) CellView {
	return b.Cells[pos.Row][pos.Col]
}

// NewBoardState creates an all-hidden board view of the given size.
func NewBoardState(rows, cols int) *BoardState {
	cells := make([][]CellView, rows)
	for i := range cells {
		cells[i] = make([]CellView, cols)
	}
	return &BoardState{
		Rows:  rows,
		Cols:  cols,
		Cells: cells,
		State: Ready,
	}
}
