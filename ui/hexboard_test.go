package ui

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"

	"github.com/ferdynandzaposki-spec/globesweeper2/config"
	"github.com/ferdynandzaposki-spec/globesweeper2/engine"
	"github.com/ferdynandzaposki-spec/globesweeper2/record"
	"github.com/ferdynandzaposki-spec/globesweeper2/types"
)

func testBoard(t *testing.T, gameCfg engine.GameConfig) *HexBoardUI {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := config.DefaultConfig
	board := NewHexBoard(nil, &cfg, tview.NewTextView(), log)
	CreateGameLayout(board, board.hint)
	if err := board.NewGame(gameCfg); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(board.Close)
	return board
}

func TestNewGameRejectsInvalidConfig(t *testing.T) {
	board := testBoard(t, engine.DefaultConfig())
	id := board.eng.ID()
	if err := board.NewGame(engine.GameConfig{Rows: 3, Cols: 3, Mines: 8}); err == nil {
		t.Fatal("NewGame should reject a board without room for the first click")
	}
	if board.eng == nil || board.eng.ID() != id {
		t.Fatal("a rejected config must keep the running game")
	}
}

func TestCursorWraps(t *testing.T) {
	board := testBoard(t, engine.GameConfig{Rows: 5, Cols: 6, Mines: 3})
	if board.Cursor() != (types.Coord{Row: 2, Col: 3}) {
		t.Fatalf("cursor starts at %v, want the board center", board.Cursor())
	}
	board.MoveCursor(-3, 0)
	board.MoveCursor(0, 4)
	if board.Cursor() != (types.Coord{Row: 4, Col: 1}) {
		t.Fatalf("cursor = %v, want (4, 1)", board.Cursor())
	}
}

func TestPlayFoldsChangesIntoView(t *testing.T) {
	board := testBoard(t, engine.GameConfig{Rows: 8, Cols: 8, Mines: 10, Seed: 3})

	board.Reveal()
	board.MoveCursor(0, 1)
	board.Flag()
	board.Flag() // unflag
	board.Flag()

	snap := board.eng.Snapshot()
	for r := 0; r < snap.Rows; r++ {
		for c := 0; c < snap.Cols; c++ {
			pos := types.Coord{Row: r, Col: c}
			if got, want := board.BoardState.At(pos), snap.At(pos); got != want {
				t.Fatalf("view at %v = %+v, engine has %+v", pos, got, want)
			}
		}
	}
	if board.BoardState.State != snap.State || board.BoardState.MinesLeft != snap.MinesLeft ||
		board.BoardState.Revealed != snap.Revealed {
		t.Fatalf("counters drifted: view %+v, engine %+v", board.BoardState, snap)
	}
}

func TestPlayRecordsOnlyAcceptedGestures(t *testing.T) {
	board := testBoard(t, engine.GameConfig{Rows: 8, Cols: 8, Mines: 10, Seed: 3})

	board.Chord() // chording is off
	if board.moves.Len() != 0 {
		t.Fatal("a no-op gesture should not be recorded")
	}
	board.Reveal()
	board.Reveal() // already revealed
	if board.moves.Len() != 1 {
		t.Fatalf("recorded %d moves, want 1", board.moves.Len())
	}
	got := board.moves.Moves()[0]
	if got.Gesture != record.Reveal || got.Pos != (types.Coord{Row: 4, Col: 4}) {
		t.Fatalf("recorded %v", got)
	}
	if !strings.Contains(board.infoPanel.render(), "R[-] E5") {
		t.Fatalf("info panel does not list the move:\n%s", board.infoPanel.render())
	}
}

func TestRestartStartsFreshGame(t *testing.T) {
	board := testBoard(t, engine.GameConfig{Rows: 8, Cols: 8, Mines: 10})
	board.Reveal()
	id := board.eng.ID()
	if err := board.Restart(); err != nil {
		t.Fatal(err)
	}
	if board.eng.ID() == id {
		t.Fatal("Restart should create a new session")
	}
	if board.moves.Len() != 0 || board.BoardState.State != types.Ready || board.BoardState.Revealed != 0 {
		t.Fatal("Restart must not carry state over")
	}
}

func TestInfoPanelShowsCounters(t *testing.T) {
	board := testBoard(t, engine.LargeConfig())
	text := board.infoPanel.render()
	for _, want := range []string{"50x50 torus", "Chording:[-:-:-] on", "400 left of 400", "0/2100", "ready"} {
		if !strings.Contains(text, want) {
			t.Errorf("panel is missing %q:\n%s", want, text)
		}
	}
}

func TestReplayReproducesGame(t *testing.T) {
	cfg := engine.GameConfig{Rows: 8, Cols: 8, Mines: 10, Seed: 3}
	played := testBoard(t, cfg)
	played.Reveal()
	played.MoveCursor(1, 1)
	played.Flag()
	played.MoveCursor(-3, 2)
	played.Reveal()

	moves, err := record.ParseMoves(played.moves.String())
	if err != nil {
		t.Fatal(err)
	}
	replayed := testBoard(t, cfg)
	n, err := replayed.Replay(moves)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(moves) || replayed.moves.Len() != len(moves) {
		t.Fatalf("applied %d of %d moves, logged %d", n, len(moves), replayed.moves.Len())
	}
	if replayed.Cursor() != moves[len(moves)-1].Pos {
		t.Fatalf("cursor = %v, want the last replayed move", replayed.Cursor())
	}

	want, got := played.eng.Snapshot(), replayed.eng.Snapshot()
	want.Elapsed, got.Elapsed = 0, 0
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("replayed board differs:\ngot  %+v\nwant %+v", got, want)
	}
	view := *replayed.BoardState
	view.Elapsed = 0
	if !reflect.DeepEqual(&view, got) {
		t.Fatal("replayed changes were not folded into the view")
	}
}

func TestReplayStopsAtRejectedMove(t *testing.T) {
	board := testBoard(t, engine.GameConfig{Rows: 8, Cols: 8, Mines: 10, Seed: 3})
	moves, err := record.ParseMoves("F B2, F J9, R A1")
	if err != nil {
		t.Fatal(err)
	}
	n, err := board.Replay(moves)
	if !errors.Is(err, engine.ErrOutOfRange) {
		t.Fatalf("Replay() error = %v, want ErrOutOfRange", err)
	}
	if n != 1 || board.moves.Len() != 1 {
		t.Fatalf("applied %d moves, logged %d, want 1", n, board.moves.Len())
	}
	if board.lastErr == "" {
		t.Fatal("the rejected move should show in the status line")
	}
	if board.BoardState.State != types.Ready || board.BoardState.MinesLeft != 9 {
		t.Fatalf("state = %v with %d mines left", board.BoardState.State, board.BoardState.MinesLeft)
	}
}

func TestFocusSizeFitsBoard(t *testing.T) {
	board := testBoard(t, engine.GameConfig{Rows: 8, Cols: 8, Mines: 10})
	if w, h := focusSize(board.BoardState); w != 28 || h != 18 {
		t.Fatalf("focusSize() = %dx%d, want 28x18", w, h)
	}
	if w, h := focusSize(nil); w != 64 || h != 32 {
		t.Fatalf("focusSize(nil) = %dx%d, want 64x32", w, h)
	}
}
