package ui

import (
	"fmt"
	"time"

	"github.com/rivo/tview"

	"github.com/ferdynandzaposki-spec/globesweeper2/engine"
	"github.com/ferdynandzaposki-spec/globesweeper2/engine/minefield"
	"github.com/ferdynandzaposki-spec/globesweeper2/record"
	"github.com/ferdynandzaposki-spec/globesweeper2/types"
)

const panelWidth = 26

// GameInfoPanel displays game information and recent gestures alongside the board.
type GameInfoPanel struct {
	box        *tview.TextView
	boardState *types.BoardState
	elapsed    time.Duration
	sessionID  string
	gameCfg    engine.GameConfig
	moves      *record.Log
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box: tview.NewTextView(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetGame points the panel at a new game.
func (p *GameInfoPanel) SetGame(id string, cfg engine.GameConfig, moves *record.Log) {
	p.sessionID = id
	p.gameCfg = cfg
	p.moves = moves
}

// SetBoardState updates the panel with current board state.
func (p *GameInfoPanel) SetBoardState(state *types.BoardState, elapsed time.Duration) {
	p.boardState = state
	p.elapsed = elapsed
	p.refresh()
}

// refresh updates the panel text.
func (p *GameInfoPanel) refresh() {
	p.box.SetText(p.render())
}

func (p *GameInfoPanel) render() string {
	if p.boardState == nil || p.boardState.Width() == 0 {
		return ""
	}
	b := p.boardState

	var text string
	text += "[white::b]Game Info[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"

	text += fmt.Sprintf("[white]Board:[-:-:-] %dx%d torus\n", b.Height(), b.Width())
	chording := "off"
	if b.Chording {
		chording = "on"
	}
	text += fmt.Sprintf("[white]Chording:[-:-:-] %s\n", chording)
	text += fmt.Sprintf("[white]Mines:[-:-:-] %d left of %d\n", b.MinesLeft, b.MinesTotal)
	text += fmt.Sprintf("[white]Time:[-:-:-] %s\n", formatElapsed(p.elapsed))
	text += fmt.Sprintf("[white]Revealed:[-:-:-] %d/%d\n", b.Revealed, b.Height()*b.Width()-b.MinesTotal)

	switch b.State {
	case types.Won:
		text += "[white]State:[-:-:-] [green::b]won[-:-:-]\n"
	case types.Lost:
		text += "[white]State:[-:-:-] [red::b]lost[-:-:-]\n"
	default:
		text += fmt.Sprintf("[white]State:[-:-:-] %s\n", b.State)
	}
	if p.gameCfg.Seed != 0 {
		text += fmt.Sprintf("[white]Seed:[-:-:-] %d\n", p.gameCfg.Seed)
	}
	if len(p.sessionID) >= 8 {
		text += fmt.Sprintf("[dimgray]game %s[-]\n", p.sessionID[:8])
	}

	if p.moves == nil || p.moves.Len() == 0 {
		return text
	}
	text += "\n[white::b]Moves[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"

	maxVisible := 12
	moves := p.moves.Last(maxVisible)
	start := p.moves.Len() - len(moves)
	for i, m := range moves {
		marker := " "
		if start+i == p.moves.Len()-1 {
			marker = "[white]>[-]"
		}
		text += fmt.Sprintf("%s[dimgray]%3d.[-] %s\n", marker, start+i+1, gestureText(m))
	}
	if start > 0 {
		text += fmt.Sprintf("[dimgray]  ··· %d earlier[-]\n", start)
	}
	return text
}

func gestureText(m record.Move) string {
	color := "white"
	switch m.Gesture {
	case record.Flag:
		color = "yellow"
	case record.Chord:
		color = "aqua"
	}
	return fmt.Sprintf("[%s]%c[-] %s", color, m.Gesture, minefield.Label(m.Pos))
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(board *HexBoardUI, hint *tview.TextView) *tview.Flex {
	mainFlex := tview.NewFlex()
	RebuildNormalLayout(mainFlex, board, hint)
	return mainFlex
}

// CreateCenteredForm creates a centered form container for the setup screen.
func CreateCenteredForm(form tview.Primitive, maxWidth int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)
	centered.AddItem(form, maxWidth, 0, true)
	centered.AddItem(nil, 0, 1, false)

	return centered
}

// RebuildNormalLayout restores the normal game layout with board, info panel, and hint.
func RebuildNormalLayout(gameFrame *tview.Flex, board *HexBoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	infoPanel := NewGameInfoPanel()
	board.infoPanel = infoPanel
	if board.eng != nil {
		infoPanel.SetGame(board.eng.ID(), board.gameCfg, &board.moves)
	}
	board.refreshInfo()

	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)
	boardRow.AddItem(infoPanel.Box(), panelWidth, 0, false)

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, 4, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered board.
func BuildFocusLayout(gameFrame *tview.Flex, board *HexBoardUI) {
	gameFrame.Clear()

	boardWidth, boardHeight := focusSize(board.BoardState)

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false)

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)
	centerRow.AddItem(board.Box, boardWidth, 0, true)
	centerRow.AddItem(nil, 0, 1, false)

	gameFrame.AddItem(centerRow, boardHeight, 0, true)
	gameFrame.AddItem(nil, 0, 1, false)
}

// focusSize returns the screen area needed to show the whole board.
func focusSize(state *types.BoardState) (int, int) {
	d := engine.DefaultConfig()
	rows, cols := d.Rows, d.Cols
	if state != nil && state.Width() > 0 {
		rows, cols = state.Height(), state.Width()
	}
	v := newViewport(rows, cols)
	v.resize(0, 0, cols*cellWidth, rows*cellHeight+1)
	w, h := v.size()
	return labelWidth + w, headerLines + h
}
