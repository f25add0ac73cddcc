package ui

import "github.com/ferdynandzaposki-spec/globesweeper2/types"

const (
	cellWidth  = 3 // characters per hex column
	cellHeight = 2 // lines per hex row; odd columns drop by one line
)

// viewport maps a window of the torus onto the screen. The window scrolls
// with the cursor and wraps around every board edge.
type viewport struct {
	rows, cols int
	originRow  int
	originCol  int
	visRows    int
	visCols    int
	left, top  int
}

func newViewport(rows, cols int) *viewport {
	return &viewport{rows: rows, cols: cols}
}

// resize fits the window into a width x height area whose top left corner
// is (left, top). An extra line is kept for the odd column drop.
func (v *viewport) resize(left, top, width, height int) {
	v.left, v.top = left, top
	v.visCols = clamp(width/cellWidth, 0, v.cols)
	v.visRows = clamp((height-1)/cellHeight, 0, v.rows)
	if v.visRows == v.rows {
		v.originRow = 0
	}
	if v.visCols == v.cols {
		v.originCol = 0
	}
}

// follow scrolls the window the shortest way until pos is visible.
func (v *viewport) follow(pos types.Coord) {
	v.originRow = scrollTo(v.originRow, pos.Row, v.visRows, v.rows)
	v.originCol = scrollTo(v.originCol, pos.Col, v.visCols, v.cols)
}

func scrollTo(origin, target, visible, size int) int {
	if visible <= 0 || visible >= size {
		return 0
	}
	off := mod(target-origin, size)
	if off < visible {
		return origin
	}
	below := off - visible + 1
	above := size - off
	if above < below {
		return target
	}
	return mod(target-visible+1, size)
}

// cell returns the board position drawn at window slot (dr, dc).
func (v *viewport) cell(dr, dc int) types.Coord {
	return types.Coord{
		Row: mod(v.originRow+dr, v.rows),
		Col: mod(v.originCol+dc, v.cols),
	}
}

// screenPos returns the top left screen cell of pos, or false when pos is
// outside the window.
func (v *viewport) screenPos(pos types.Coord) (int, int, bool) {
	dr := mod(pos.Row-v.originRow, v.rows)
	dc := mod(pos.Col-v.originCol, v.cols)
	if dr >= v.visRows || dc >= v.visCols {
		return 0, 0, false
	}
	return v.left + dc*cellWidth, v.top + dr*cellHeight + pos.Col%2, true
}

// cellAt maps a screen position back to the board, for mouse input.
func (v *viewport) cellAt(x, y int) (types.Coord, bool) {
	if x < v.left || y < v.top {
		return types.Coord{}, false
	}
	dc := (x - v.left) / cellWidth
	if dc >= v.visCols {
		return types.Coord{}, false
	}
	col := mod(v.originCol+dc, v.cols)
	dy := y - v.top - col%2
	if dy < 0 {
		return types.Coord{}, false
	}
	dr := dy / cellHeight
	if dr >= v.visRows {
		return types.Coord{}, false
	}
	return v.cell(dr, dc), true
}

// size returns the screen area the window covers.
func (v *viewport) size() (int, int) {
	return v.visCols * cellWidth, v.visRows*cellHeight + 1
}

func mod(v, n int) int {
	if n <= 0 {
		return 0
	}
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
