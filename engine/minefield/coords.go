package minefield

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ferdynandzaposki-spec/globesweeper2/types"
)

// Label coordinate system:
// - Columns: A, B, ..., Z, AA, AB, ... (left to right)
// - Rows: 1, 2, ... (top to bottom)
// - Example: (0, 0) -> A1, (6, 2) -> C7, (49, 49) -> AX50

// Label converts a board position to its display label.
func Label(pos types.Coord) string {
	return colLetters(pos.Col) + strconv.Itoa(pos.Row+1)
}

// ParseLabel converts a label such as "C7" back to a board position.
// It does not check the position against a board.
func ParseLabel(label string) (types.Coord, error) {
	label = strings.TrimSpace(strings.ToUpper(label))

	split := 0
	for split < len(label) && label[split] >= 'A' && label[split] <= 'Z' {
		split++
	}
	if split == 0 || split == len(label) {
		return types.Coord{}, fmt.Errorf("invalid label: %q", label)
	}

	col := 0
	for _, ch := range label[:split] {
		col = col*26 + int(ch-'A') + 1
	}
	row, err := strconv.Atoi(label[split:])
	if err != nil || row < 1 {
		return types.Coord{}, fmt.Errorf("invalid row in label: %q", label)
	}
	return types.Coord{Row: row - 1, Col: col - 1}, nil
}

// colLetters converts a zero based column to bijective base-26 letters.
func colLetters(col int) string {
	var buf []byte
	for n := col + 1; n > 0; n = (n - 1) / 26 {
		buf = append([]byte{byte('A' + (n-1)%26)}, buf...)
	}
	return string(buf)
}
