package record

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/ferdynandzaposki-spec/globesweeper2/engine"
	"github.com/ferdynandzaposki-spec/globesweeper2/engine/minefield"
	"github.com/ferdynandzaposki-spec/globesweeper2/types"
)

// scriptedEngine records every call and ends the game after finishAfter calls.
type scriptedEngine struct {
	calls       []Move
	finishAfter int
	failAt      int
	state       types.GameState
}

func (e *scriptedEngine) do(g Gesture, pos types.Coord) (*types.Change, error) {
	e.calls = append(e.calls, Move{g, pos})
	if e.failAt > 0 && len(e.calls) == e.failAt {
		return nil, engine.ErrOutOfRange
	}
	if e.finishAfter > 0 && len(e.calls) >= e.finishAfter {
		e.state = types.Lost
	}
	return &types.Change{State: e.state}, nil
}

func (e *scriptedEngine) ID() string                   { return "scripted" }
func (e *scriptedEngine) Config() engine.GameConfig    { return engine.DefaultConfig() }
func (e *scriptedEngine) State() types.GameState       { return e.state }
func (e *scriptedEngine) Snapshot() *types.BoardState  { return types.NewBoardState(15, 20) }
func (e *scriptedEngine) Mines() []types.Coord         { return nil }
func (e *scriptedEngine) OnChange(func(*types.Change)) {}
func (e *scriptedEngine) Close()                       {}

func (e *scriptedEngine) Reveal(p types.Coord) (*types.Change, error) {
	return e.do(Reveal, p)
}
func (e *scriptedEngine) ToggleFlag(p types.Coord) (*types.Change, error) {
	return e.do(Flag, p)
}
func (e *scriptedEngine) Chord(p types.Coord) (*types.Change, error) {
	return e.do(Chord, p)
}

func TestMoveNotation(t *testing.T) {
	tests := []struct {
		move Move
		text string
	}{
		{Move{Reveal, types.Coord{Row: 6, Col: 2}}, "R C7"},
		{Move{Flag, types.Coord{Row: 0, Col: 0}}, "F A1"},
		{Move{Chord, types.Coord{Row: 49, Col: 49}}, "D AX50"},
	}
	for _, tt := range tests {
		if got := tt.move.String(); got != tt.text {
			t.Errorf("String() = %q, want %q", got, tt.text)
		}
		parsed, err := ParseMove(tt.text)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", tt.text, err)
		}
		if parsed != tt.move {
			t.Errorf("ParseMove(%q) = %+v, want %+v", tt.text, parsed, tt.move)
		}
	}
}

func TestParseMoveLenient(t *testing.T) {
	m, err := ParseMove("  f   c7 ")
	if err != nil {
		t.Fatal(err)
	}
	if m.Gesture != Flag || m.Pos != (types.Coord{Row: 6, Col: 2}) {
		t.Fatalf("got %+v", m)
	}
}

func TestParseMoveInvalid(t *testing.T) {
	for _, s := range []string{"", "R", "RC7", "X C7", "R 7", "R C0", "RR C7", "R C7 extra"} {
		if _, err := ParseMove(s); err == nil {
			t.Errorf("ParseMove(%q) should fail", s)
		}
	}
}

func TestParseMoves(t *testing.T) {
	moves, err := ParseMoves("R C7, f d8,, D AX50 ,")
	if err != nil {
		t.Fatal(err)
	}
	want := []Move{
		{Reveal, types.Coord{Row: 6, Col: 2}},
		{Flag, types.Coord{Row: 7, Col: 3}},
		{Chord, types.Coord{Row: 49, Col: 49}},
	}
	if !reflect.DeepEqual(moves, want) {
		t.Fatalf("ParseMoves() = %v, want %v", moves, want)
	}

	var l Log
	for _, m := range moves {
		l.Add(m)
	}
	if got := l.String(); got != "R C7, F D8, D AX50" {
		t.Fatalf("Log.String() = %q", got)
	}
	again, err := ParseMoves(l.String())
	if err != nil || !reflect.DeepEqual(again, want) {
		t.Fatalf("ParseMoves(%q) = %v, %v", l.String(), again, err)
	}

	if _, err := ParseMoves("R C7, X D8"); err == nil {
		t.Fatal("an unknown gesture should fail the whole list")
	}
	if moves, err := ParseMoves(" "); err != nil || len(moves) != 0 {
		t.Fatalf("blank list = %v, %v", moves, err)
	}
}

func TestLog(t *testing.T) {
	var l Log
	for i := 0; i < 5; i++ {
		l.Add(Move{Reveal, types.Coord{Row: i}})
	}
	if l.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", l.Len())
	}
	last := l.Last(2)
	if len(last) != 2 || last[0].Pos.Row != 3 || last[1].Pos.Row != 4 {
		t.Fatalf("Last(2) = %v", last)
	}
	if got := l.Last(10); len(got) != 5 {
		t.Fatalf("Last(10) returned %d moves", len(got))
	}

	moves := l.Moves()
	moves[0].Gesture = Flag
	if l.Moves()[0].Gesture != Reveal {
		t.Fatal("Moves() must return a copy")
	}

	l.Reset()
	if l.Len() != 0 {
		t.Fatal("Reset() should drop all moves")
	}
}

func TestReplayDispatches(t *testing.T) {
	eng := &scriptedEngine{}
	moves := []Move{
		{Reveal, types.Coord{Row: 1, Col: 1}},
		{Flag, types.Coord{Row: 2, Col: 2}},
		{Chord, types.Coord{Row: 1, Col: 1}},
	}
	n, err := Replay(eng, moves)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("applied %d moves, want 3", n)
	}
	for i, m := range moves {
		if eng.calls[i] != m {
			t.Errorf("call %d = %v, want %v", i, eng.calls[i], m)
		}
	}
}

func TestReplayStopsAtTerminalState(t *testing.T) {
	eng := &scriptedEngine{finishAfter: 2}
	moves := make([]Move, 5)
	for i := range moves {
		moves[i] = Move{Reveal, types.Coord{Col: i}}
	}
	n, err := Replay(eng, moves)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 || len(eng.calls) != 2 {
		t.Fatalf("applied %d moves with %d calls, want 2", n, len(eng.calls))
	}
}

func TestReplayStopsOnError(t *testing.T) {
	eng := &scriptedEngine{failAt: 2}
	moves := []Move{
		{Reveal, types.Coord{}},
		{Flag, types.Coord{Row: 99}},
		{Reveal, types.Coord{Row: 1}},
	}
	n, err := Replay(eng, moves)
	if !errors.Is(err, engine.ErrOutOfRange) {
		t.Fatalf("Replay() error = %v, want ErrOutOfRange", err)
	}
	if n != 1 {
		t.Fatalf("applied %d moves, want 1", n)
	}
}

func TestReplayAgainstSession(t *testing.T) {
	// Seven mines on a 3x3 torus leave a single safe cell besides the
	// first click, so revealing every cell must end the game.
	s, err := minefield.New(engine.GameConfig{Rows: 3, Cols: 3, Mines: 7, Seed: 7},
		minefield.WithTimer(&idleTimer{}))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var moves []Move
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			moves = append(moves, Move{Reveal, types.Coord{Row: r, Col: c}})
		}
	}
	n, err := Replay(s, moves)
	if err != nil {
		t.Fatal(err)
	}
	if !s.State().Finished() {
		t.Fatalf("state = %v after replaying every cell", s.State())
	}
	if n < 2 {
		t.Fatalf("applied %d moves, the first reveal cannot end this game", n)
	}
}

type idleTimer struct{}

func (idleTimer) Start()                 {}
func (idleTimer) Stop()                  {}
func (idleTimer) Elapsed() time.Duration { return 0 }
