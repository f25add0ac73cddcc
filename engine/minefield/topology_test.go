package minefield

import (
	"testing"

	"github.com/ferdynandzaposki-spec/globesweeper2/types"
)

func TestNeighbors(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		at         types.Coord
		want       [6]types.Coord
	}{
		{"even column", 5, 6, pos(2, 2),
			[6]types.Coord{pos(1, 2), pos(3, 2), pos(1, 1), pos(2, 1), pos(1, 3), pos(2, 3)}},
		{"odd column", 5, 6, pos(2, 3),
			[6]types.Coord{pos(1, 3), pos(3, 3), pos(2, 2), pos(3, 2), pos(2, 4), pos(3, 4)}},
		{"top left corner wraps", 5, 6, pos(0, 0),
			[6]types.Coord{pos(4, 0), pos(1, 0), pos(4, 5), pos(0, 5), pos(4, 1), pos(0, 1)}},
		{"bottom right corner wraps", 5, 6, pos(4, 5),
			[6]types.Coord{pos(3, 5), pos(0, 5), pos(4, 4), pos(0, 4), pos(4, 0), pos(0, 0)}},
		{"odd column count seam", 4, 5, pos(1, 4),
			[6]types.Coord{pos(0, 4), pos(2, 4), pos(0, 3), pos(1, 3), pos(0, 0), pos(1, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Neighbors(tt.rows, tt.cols, tt.at)
			if got != tt.want {
				t.Errorf("Neighbors(%d, %d, %v) = %v, want %v", tt.rows, tt.cols, tt.at, got, tt.want)
			}
		})
	}
}

func TestNeighborsWrapAroundEveryEdge(t *testing.T) {
	rows, cols := 7, 8
	for col := 0; col < cols; col++ {
		if !contains(Neighbors(rows, cols, pos(0, col)), rows-1, -1) {
			t.Errorf("cell (0, %d) has no neighbor in row %d", col, rows-1)
		}
		if !contains(Neighbors(rows, cols, pos(rows-1, col)), 0, -1) {
			t.Errorf("cell (%d, %d) has no neighbor in row 0", rows-1, col)
		}
	}
	for row := 0; row < rows; row++ {
		if !contains(Neighbors(rows, cols, pos(row, 0)), -1, cols-1) {
			t.Errorf("cell (%d, 0) has no neighbor in column %d", row, cols-1)
		}
		if !contains(Neighbors(rows, cols, pos(row, cols-1)), -1, 0) {
			t.Errorf("cell (%d, %d) has no neighbor in column 0", row, cols-1)
		}
	}
}

func TestNeighborsSymmetricOnEvenColumnTorus(t *testing.T) {
	rows, cols := 6, 8
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			a := pos(r, c)
			seen := make(map[types.Coord]bool)
			for _, b := range Neighbors(rows, cols, a) {
				if b == a {
					t.Fatalf("%v lists itself as a neighbor", a)
				}
				if seen[b] {
					t.Fatalf("%v lists %v twice", a, b)
				}
				seen[b] = true
				back := Neighbors(rows, cols, b)
				found := false
				for _, n := range back {
					if n == a {
						found = true
					}
				}
				if !found {
					t.Errorf("%v is a neighbor of %v but not the other way round", b, a)
				}
			}
		}
	}
}

// contains reports whether any neighbor matches row and col; -1 matches
// anything.
func contains(ns [6]types.Coord, row, col int) bool {
	for _, n := range ns {
		if (row == -1 || n.Row == row) && (col == -1 || n.Col == col) {
			return true
		}
	}
	return false
}

func TestWrap(t *testing.T) {
	tests := []struct {
		v, n, want int
	}{
		{0, 5, 0},
		{4, 5, 4},
		{5, 5, 0},
		{-1, 5, 4},
		{-6, 5, 4},
		{12, 5, 2},
	}
	for _, tt := range tests {
		if got := wrap(tt.v, tt.n); got != tt.want {
			t.Errorf("wrap(%d, %d) = %d, want %d", tt.v, tt.n, got, tt.want)
		}
	}
}
