// Package ui specifies custom controls for tview to play hexagonal
// minesweeper on a torus in the terminal.
package ui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"

	"github.com/ferdynandzaposki-spec/globesweeper2/clock"
	"github.com/ferdynandzaposki-spec/globesweeper2/config"
	"github.com/ferdynandzaposki-spec/globesweeper2/engine"
	"github.com/ferdynandzaposki-spec/globesweeper2/engine/minefield"
	"github.com/ferdynandzaposki-spec/globesweeper2/record"
	"github.com/ferdynandzaposki-spec/globesweeper2/types"
)

const (
	labelWidth  = 4 // row labels left of the board
	headerLines = 1 // column labels above the board
)

// Style slots.
const (
	styleHidden = iota
	styleHiddenAlt
	styleRevealed
	styleRevealedAlt
	styleFlag
	styleMine
	styleExploded
	styleCursorFG
	styleCursorBG
	styleNumber // six slots follow
)

type HexBoardUI struct {
	Box        *tview.Box
	BoardState *types.BoardState
	hint       *tview.TextView
	cfg        *config.Config
	app        *tview.Application
	eng        engine.GameEngine
	gameCfg    engine.GameConfig
	clock      *clock.Clock
	moves      record.Log
	styles     []tcell.Color
	infoPanel  *GameInfoPanel
	view       *viewport
	cursor     types.Coord
	focusMode  bool
	lastErr    string
	log        logrus.FieldLogger
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (g *HexBoardUI) ToggleFocusMode() bool {
	g.focusMode = !g.focusMode
	g.refreshHint()
	return g.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (g *HexBoardUI) SetFocusMode(enabled bool) {
	g.focusMode = enabled
	g.refreshHint()
}

// Cursor returns the selected cell.
func (g *HexBoardUI) Cursor() types.Coord {
	return g.cursor
}

// MoveCursor moves the selection by the given rows and columns, wrapping
// around the board edges.
func (g *HexBoardUI) MoveCursor(dRow, dCol int) {
	if g.BoardState == nil || g.BoardState.Width() == 0 {
		return
	}
	g.cursor = types.Coord{
		Row: mod(g.cursor.Row+dRow, g.BoardState.Height()),
		Col: mod(g.cursor.Col+dCol, g.BoardState.Width()),
	}
	g.view.follow(g.cursor)
	g.refreshHint()
}

func NewHexBoard(app *tview.Application, c *config.Config, hint *tview.TextView, log logrus.FieldLogger) *HexBoardUI {
	hexBoard := &HexBoardUI{
		Box:        tview.NewBox(),
		BoardState: &types.BoardState{},
		hint:       hint,
		app:        app,
		view:       newViewport(0, 0),
		log:        log,
	}
	hexBoard.SetConfig(c)
	hexBoard.Box.SetDrawFunc(hexBoard.draw)
	hexBoard.Box.SetMouseCapture(hexBoard.mouse)
	return hexBoard
}

func (g *HexBoardUI) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	if g.BoardState == nil || g.BoardState.Width() == 0 {
		return x, y, width, height
	}
	// Fixed size layouts may be larger than the terminal.
	sw, sh := screen.Size()
	width, height = clamp(width, 0, sw-x), clamp(height, 0, sh-y)
	g.view.resize(x+labelWidth, y+headerLines, width-labelWidth, height-headerLines)
	g.view.follow(g.cursor)

	for dr := 0; dr < g.view.visRows; dr++ {
		for dc := 0; dc < g.view.visCols; dc++ {
			pos := g.view.cell(dr, dc)
			sx, sy, _ := g.view.screenPos(pos)
			g.drawCell(screen, pos, sx, sy)
		}
	}
	g.drawCoordinates(screen, x, y)
	return x, y, width, height
}

func (g *HexBoardUI) drawCell(s tcell.Screen, pos types.Coord, x, y int) {
	cell := g.BoardState.At(pos)
	alt := g.cfg.Theme.ShadeAltColumns && pos.Col%2 == 1
	bg := g.styles[styleHidden]
	if alt {
		bg = g.styles[styleHiddenAlt]
	}
	fg := tcell.ColorDefault
	r := rune(g.cfg.Theme.Symbols.Hidden)

	switch cell.State {
	case types.CellFlagged:
		r, fg = rune(g.cfg.Theme.Symbols.Flag), g.styles[styleFlag]
	case types.CellWrongFlag:
		r, fg = rune(g.cfg.Theme.Symbols.WrongFlag), g.styles[styleExploded]
	case types.CellRevealed, types.CellMine, types.CellExploded:
		bg = g.styles[styleRevealed]
		if alt {
			bg = g.styles[styleRevealedAlt]
		}
		switch {
		case cell.State == types.CellMine:
			r, fg = rune(g.cfg.Theme.Symbols.Mine), g.styles[styleMine]
		case cell.State == types.CellExploded:
			r, fg, bg = rune(g.cfg.Theme.Symbols.Exploded), g.styles[styleMine], g.styles[styleExploded]
		case cell.Adjacent > 0:
			r, fg = rune('0'+cell.Adjacent), g.styles[styleNumber+cell.Adjacent-1]
		default:
			r = ' '
		}
	}

	left, right := ' ', ' '
	if pos == g.cursor && !g.BoardState.Finished() {
		if g.cfg.Theme.DrawCursorBackground {
			bg = g.styles[styleCursorBG]
			if cell.State == types.CellHidden {
				fg = g.styles[styleCursorFG]
			}
		} else {
			left, right = '[', ']'
		}
	}
	style := tcell.StyleDefault.Background(bg).Foreground(fg)
	s.SetContent(x, y, left, nil, style)
	s.SetContent(x+1, y, r, nil, style)
	s.SetContent(x+2, y, right, nil, style)
	for i := 0; i < cellWidth; i++ {
		s.SetContent(x+i, y+1, ' ', nil, style)
	}
}

func (g *HexBoardUI) drawCoordinates(s tcell.Screen, x, y int) {
	style := tcell.StyleDefault
	highlight := tcell.StyleDefault.Background(g.styles[styleCursorBG])

	for dc := 0; dc < g.view.visCols; dc++ {
		col := g.view.cell(0, dc).Col
		_style := style
		if col == g.cursor.Col {
			_style = highlight
		}
		label := minefield.Label(types.Coord{Col: col})
		label = label[:len(label)-1] // drop the row number
		cx := g.view.left + dc*cellWidth
		for i := 0; i < cellWidth; i++ {
			ch := ' '
			if i < len(label) {
				ch = rune(label[i])
			}
			s.SetContent(cx+i, y, ch, nil, _style)
		}
	}

	for dr := 0; dr < g.view.visRows; dr++ {
		row := g.view.cell(dr, 0).Row
		_style := style
		if row == g.cursor.Row {
			_style = highlight
		}
		num := fmt.Sprintf("%3d", row+1)
		ry := g.view.top + dr*cellHeight
		for i, ch := range num {
			s.SetContent(x+i, ry, ch, nil, _style)
		}
	}
}

// mouse maps clicks to gestures: left reveals, right flags, double or
// middle click chords.
func (g *HexBoardUI) mouse(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
	if g.eng == nil {
		return action, event
	}
	var gesture record.Gesture
	switch action {
	case tview.MouseLeftClick:
		gesture = record.Reveal
	case tview.MouseRightClick:
		gesture = record.Flag
	case tview.MouseLeftDoubleClick, tview.MouseMiddleClick:
		gesture = record.Chord
	default:
		return action, event
	}
	pos, ok := g.view.cellAt(event.Position())
	if !ok {
		return action, event
	}
	if g.app != nil {
		g.app.SetFocus(g.Box)
	}
	g.cursor = pos
	g.Play(gesture)
	return action, nil
}

// NewGame discards the current game and starts a fresh one.
func (g *HexBoardUI) NewGame(cfg engine.GameConfig) error {
	clk := clock.New(func(time.Duration) {
		if g.app == nil {
			return
		}
		// QueueUpdateDraw must not run on the clock goroutine that Stop waits for.
		go func() {
			g.app.QueueUpdateDraw(g.refreshInfo)
		}()
	})
	eng, err := minefield.New(cfg, minefield.WithTimer(clk), minefield.WithLogger(g.log))
	if err != nil {
		return err
	}
	g.Close()

	g.eng = eng
	g.gameCfg = cfg
	g.clock = clk
	g.moves.Reset()
	g.lastErr = ""
	g.BoardState = eng.Snapshot()
	g.view = newViewport(cfg.Rows, cfg.Cols)
	g.cursor = types.Coord{Row: cfg.Rows / 2, Col: cfg.Cols / 2}
	eng.OnChange(g.applyChange)
	if g.infoPanel != nil {
		g.infoPanel.SetGame(eng.ID(), cfg, &g.moves)
	}
	g.refreshHint()
	return nil
}

// Restart starts a new game with the current settings.
func (g *HexBoardUI) Restart() error {
	return g.NewGame(g.gameCfg)
}

// applyChange folds an engine change into the board view.
func (g *HexBoardUI) applyChange(change *types.Change) {
	for _, u := range change.Cells {
		g.BoardState.Cells[u.Pos.Row][u.Pos.Col] = u.View
	}
	g.BoardState.State = change.State
	g.BoardState.MinesLeft = change.MinesLeft
	g.BoardState.Revealed = change.Revealed
	g.BoardState.Elapsed = change.Elapsed
	if change.Detonated != nil {
		g.BoardState.Detonated = change.Detonated
	}
}

// Reveal, Flag and Chord apply a gesture at the cursor.
func (g *HexBoardUI) Reveal() { g.Play(record.Reveal) }
func (g *HexBoardUI) Flag() { g.Play(record.Flag) }
func (g *HexBoardUI) Chord() { g.Play(record.Chord) }

// Play sends a gesture at the cursor to the engine.
func (g *HexBoardUI) Play(gesture record.Gesture) {
	if g.eng == nil {
		return
	}
	move := record.Move{Gesture: gesture, Pos: g.cursor}
	change, err := move.Apply(g.eng)
	if err != nil {
		g.lastErr = err.Error()
		g.log.WithError(err).Warn("gesture rejected")
		g.refreshHint()
		return
	}
	g.lastErr = ""
	if !change.Empty() {
		g.moves.Add(move)
	}
	if change.Transition && change.State.Finished() {
		g.logGameOver()
	}
	g.refreshHint()
}

// Replay plays a recorded gesture list against the current game. Applied
// moves are added to the move list and the cursor ends on the last one.
func (g *HexBoardUI) Replay(moves []record.Move) (int, error) {
	if g.eng == nil {
		return 0, nil
	}
	n, err := record.Replay(g.eng, moves)
	for _, m := range moves[:n] {
		g.moves.Add(m)
	}
	if n > 0 {
		g.cursor = moves[n-1].Pos
		g.view.follow(g.cursor)
	}
	g.lastErr = ""
	if err != nil {
		g.lastErr = err.Error()
		g.log.WithError(err).Warn("replay stopped")
	}
	g.log.WithFields(logrus.Fields{"applied": n, "moves": len(moves)}).Debug("replayed moves")
	if g.BoardState.Finished() {
		g.logGameOver()
	}
	g.refreshHint()
	return n, err
}

func (g *HexBoardUI) logGameOver() {
	g.log.WithFields(logrus.Fields{
		"state":   g.BoardState.State.String(),
		"seed":    g.gameCfg.Seed,
		"elapsed": g.BoardState.Elapsed.Round(time.Second).String(),
		"moves":   g.moves.String(),
	}).Info("game over")
}

// Close stops the running game.
func (g *HexBoardUI) Close() {
	if g.eng == nil {
		return
	}
	g.eng.Close()
	g.eng = nil
}

func (g *HexBoardUI) SetConfig(c *config.Config) {
	colors := c.Theme.Colors
	g.styles = []tcell.Color{
		tcell.PaletteColor(colors.Hidden),      // 0
		tcell.PaletteColor(colors.HiddenAlt),   // 1
		tcell.PaletteColor(colors.Revealed),    // 2
		tcell.PaletteColor(colors.RevealedAlt), // 3
		tcell.PaletteColor(colors.Flag),        // 4
		tcell.PaletteColor(colors.Mine),        // 5
		tcell.PaletteColor(colors.Exploded),    // 6
		tcell.PaletteColor(colors.CursorFG),    // 7
		tcell.PaletteColor(colors.CursorBG),    // 8
	}
	for _, n := range colors.Numbers {
		g.styles = append(g.styles, tcell.PaletteColor(n))
	}
	g.cfg = c
}

// refreshInfo updates the side panel, including the running clock.
func (g *HexBoardUI) refreshInfo() {
	if g.infoPanel == nil || g.BoardState == nil {
		return
	}
	elapsed := g.BoardState.Elapsed
	if g.clock != nil && g.clock.Running() {
		elapsed = g.clock.Elapsed()
	}
	g.infoPanel.SetBoardState(g.BoardState, elapsed)
}

func (g *HexBoardUI) refreshHint() {
	g.refreshInfo()

	if g.focusMode {
		g.hint.SetText("  z to toggle")
		return
	}

	var statusLine, controlsLine string
	switch {
	case g.BoardState.State == types.Won:
		statusLine = fmt.Sprintf("  ⚑ Cleared in %s", formatElapsed(g.BoardState.Elapsed))
		controlsLine = "\n  n · new game   q · return to menu"
	case g.BoardState.State == types.Lost:
		statusLine = "  ✸ Boom"
		if g.BoardState.Detonated != nil {
			statusLine += " at " + minefield.Label(*g.BoardState.Detonated)
		}
		controlsLine = "\n  n · new game   q · return to menu"
	default:
		statusLine = fmt.Sprintf("  %s", minefield.Label(g.cursor))
		if g.lastErr != "" {
			statusLine += "  [red]" + tview.Escape(g.lastErr) + "[-]"
		}
		controlsLine = "\n  hjkl/↑↓←→ move  ⏎/space reveal  f flag"
		if g.gameCfg.Chording {
			controlsLine += "  d chord"
		}
		controlsLine += "  z focus  q quit"
	}
	g.hint.SetText(statusLine + controlsLine)
}

func formatElapsed(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
