// Package record keeps the gestures played in the current game and replays
// them against an engine. Records live in memory only.
package record

import (
	"fmt"
	"strings"

	"github.com/ferdynandzaposki-spec/globesweeper2/engine"
	"github.com/ferdynandzaposki-spec/globesweeper2/engine/minefield"
	"github.com/ferdynandzaposki-spec/globesweeper2/types"
)

// Gesture is the kind of player input.
type Gesture byte

const (
	Reveal Gesture = 'R' // primary activate
	Flag   Gesture = 'F' // secondary activate
	Chord  Gesture = 'D' // dual activate
)

// Move is one gesture aimed at a cell.
type Move struct {
	Gesture Gesture
	Pos     types.Coord
}

// String renders the move as "R C7".
func (m Move) String() string {
	return fmt.Sprintf("%c %s", m.Gesture, minefield.Label(m.Pos))
}

// ParseMove parses the notation produced by Move.String.
func ParseMove(s string) (Move, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 || len(fields[0]) != 1 {
		return Move{}, fmt.Errorf("invalid move: %q", s)
	}
	g := Gesture(strings.ToUpper(fields[0])[0])
	switch g {
	case Reveal, Flag, Chord:
	default:
		return Move{}, fmt.Errorf("unknown gesture %q in move %q", fields[0], s)
	}
	pos, err := minefield.ParseLabel(fields[1])
	if err != nil {
		return Move{}, fmt.Errorf("parse move %q: %w", s, err)
	}
	return Move{Gesture: g, Pos: pos}, nil
}

// ParseMoves parses a comma separated list such as "R C7, F D8". Empty
// entries are skipped.
func ParseMoves(s string) ([]Move, error) {
	var moves []Move
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		m, err := ParseMove(part)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// Apply dispatches the move to the matching engine operation.
func (m Move) Apply(eng engine.GameEngine) (*types.Change, error) {
	switch m.Gesture {
	case Reveal:
		return eng.Reveal(m.Pos)
	case Flag:
		return eng.ToggleFlag(m.Pos)
	case Chord:
		return eng.Chord(m.Pos)
	default:
		return nil, fmt.Errorf("unknown gesture %q", m.Gesture)
	}
}

// Log is the ordered list of gestures that changed the game.
type Log struct {
	moves []Move
}

// Add appends a move.
func (l *Log) Add(m Move) {
	l.moves = append(l.moves, m)
}

// Moves returns a copy of the recorded moves.
func (l *Log) Moves() []Move {
	return append([]Move(nil), l.moves...)
}

// Len returns the number of recorded moves.
func (l *Log) Len() int {
	return len(l.moves)
}

// Last returns up to n of the most recent moves, oldest first.
func (l *Log) Last(n int) []Move {
	if n >= len(l.moves) {
		return l.Moves()
	}
	return append([]Move(nil), l.moves[len(l.moves)-n:]...)
}

// String renders the log in the form accepted by ParseMoves.
func (l *Log) String() string {
	parts := make([]string, len(l.moves))
	for i, m := range l.moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, ", ")
}

// Reset drops all moves.
func (l *Log) Reset() {
	l.moves = nil
}

// Replay applies moves in order and stops at the first error or once the
// game has ended. It returns the number of moves applied.
func Replay(eng engine.GameEngine, moves []Move) (int, error) {
	for i, m := range moves {
		if eng.State().Finished() {
			return i, nil
		}
		if _, err := m.Apply(eng); err != nil {
			return i, fmt.Errorf("move %d (%s): %w", i+1, m, err)
		}
	}
	return len(moves), nil
}
