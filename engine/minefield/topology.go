package minefield

import "github.com/ferdynandzaposki-spec/globesweeper2/types"

// Column offset hex layout: odd columns sit half a cell lower than even
// ones, so the row offsets of the diagonal neighbors depend on parity.
// Order: north, south, then the west pair, then the east pair.
var (
	oddColOffsets = [6]types.Coord{
		{Row: -1, Col: 0}, {Row: 1, Col: 0},
		{Row: 0, Col: -1}, {Row: 1, Col: -1},
		{Row: 0, Col: 1}, {Row: 1, Col: 1},
	}
	evenColOffsets = [6]types.Coord{
		{Row: -1, Col: 0}, {Row: 1, Col: 0},
		{Row: -1, Col: -1}, {Row: 0, Col: -1},
		{Row: -1, Col: 1}, {Row: 0, Col: 1},
	}
)

// Neighbors returns the six hexagonal neighbors of pos on a rows x cols
// torus. Positions wrap around every edge.
func Neighbors(rows, cols int, pos types.Coord) [6]types.Coord {
	offsets := &evenColOffsets
	if pos.Col%2 == 1 {
		offsets = &oddColOffsets
	}
	var res [6]types.Coord
	for i, off := range offsets {
		res[i] = types.Coord{
			Row: wrap(pos.Row+off.Row, rows),
			Col: wrap(pos.Col+off.Col, cols),
		}
	}
	return res
}

// wrap reduces v into [0, n).
func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
