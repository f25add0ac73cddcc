package minefield

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ferdynandzaposki-spec/globesweeper2/engine"
	"github.com/ferdynandzaposki-spec/globesweeper2/types"
)

// layBoard builds a board with mines at the given positions and the
// adjacency counts filled in, bypassing random placement.
func layBoard(rows, cols int, mines ...types.Coord) *Board {
	b := NewBoard(rows, cols, len(mines))
	for _, m := range mines {
		b.At(m).Mine = true
	}
	countAdjacent(b)
	b.Placed = true
	return b
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// fakeTimer records Start and Stop calls and reports a fixed elapsed time.
type fakeTimer struct {
	starts  int
	stops   int
	elapsed time.Duration
}

func (f *fakeTimer) Start()                 { f.starts++ }
func (f *fakeTimer) Stop()                  { f.stops++ }
func (f *fakeTimer) Elapsed() time.Duration { return f.elapsed }

// playingSession returns a session already in the Playing state with mines
// laid at the given positions.
func playingSession(t *testing.T, cfg engine.GameConfig, mines ...types.Coord) (*Session, *fakeTimer) {
	t.Helper()
	cfg.Mines = len(mines)
	timer := &fakeTimer{elapsed: 3 * time.Second}
	s, err := New(cfg, WithLogger(quietLogger()), WithTimer(timer))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.board = layBoard(cfg.Rows, cfg.Cols, mines...)
	s.state = types.Playing
	timer.Start()
	return s, timer
}

func pos(row, col int) types.Coord {
	return types.Coord{Row: row, Col: col}
}
