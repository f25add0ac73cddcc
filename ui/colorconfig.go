package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"

	"github.com/ferdynandzaposki-spec/globesweeper2/config"
	"github.com/ferdynandzaposki-spec/globesweeper2/types"
)

// ColorConfigUI provides a color configuration screen with live preview.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	cfg       *config.Config
	onDone    func()
	log       logrus.FieldLogger

	// Current selection
	selectedHidden   int
	selectedRevealed int
	editingRevealed  bool // true = editing revealed cells, false = editing hidden cells
}

type paletteEntry struct {
	code int
	name string
}

// Colors for covered cells.
var hiddenColors = []paletteEntry{
	{66, "Slate Teal"},
	{60, "Dusk Blue"},
	{24, "Deep Cyan"},
	{25, "Ocean"},
	{61, "Lavender Gray"},
	{95, "Plum Gray"},
	{101, "Olive Gray"},
	{65, "Moss"},
	{29, "Pine"},
	{94, "Saddle Brown"},
	{130, "Rust"},
	{240, "Gray"},
	{244, "Medium Gray"},
}

// Colors for uncovered cells.
var revealedColors = []paletteEntry{
	{232, "Black"},
	{234, "Charcoal"},
	{236, "Dark Gray"},
	{238, "Graphite"},
	{17, "Navy Blue"},
	{22, "Dark Green"},
	{52, "Dark Maroon"},
	{230, "Light Cream"},
	{252, "Light Gray"},
	{255, "White"},
}

// NewColorConfig creates a new color configuration screen.
func NewColorConfig(cfg *config.Config, log logrus.FieldLogger, onDone func()) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:              cfg,
		onDone:           onDone,
		log:              log,
		selectedHidden:   cfg.Theme.Colors.Hidden,
		selectedRevealed: cfg.Theme.Colors.Revealed,
	}

	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.SetBorderColor(MenuColors.Border)
	cc.colorList.SetTitleColor(MenuColors.Title)
	cc.colorList.SetSelectedBackgroundColor(MenuColors.Selected)
	cc.colorList.ShowSecondaryText(false)
	cc.populateColorList()

	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		palette := cc.palette()
		if index < 0 || index >= len(palette) {
			return
		}
		if cc.editingRevealed {
			cc.selectedRevealed = palette[index].code
		} else {
			cc.selectedHidden = palette[index].code
		}
	})

	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if index < 0 || index >= len(cc.palette()) {
			return
		}
		if cc.editingRevealed {
			cc.cfg.Theme.Colors.Revealed = cc.selectedRevealed
			cc.cfg.Theme.Colors.RevealedAlt = altShade(cc.selectedRevealed)
			cc.save()
			// Switch back to hidden color selection
			cc.editingRevealed = false
			cc.populateColorList()
			return
		}
		cc.cfg.Theme.Colors.Hidden = cc.selectedHidden
		cc.cfg.Theme.Colors.HiddenAlt = altShade(cc.selectedHidden)
		cc.save()
		onDone()
	})

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetBorderColor(MenuColors.Border)
	cc.preview.SetTitle(" Board Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	cc.flex = tview.NewFlex().
		AddItem(cc.colorList, 34, 0, true).
		AddItem(cc.preview, 0, 1, false)

	return cc
}

func (cc *ColorConfigUI) palette() []paletteEntry {
	if cc.editingRevealed {
		return revealedColors
	}
	return hiddenColors
}

func (cc *ColorConfigUI) save() {
	if err := cc.cfg.Save(); err != nil {
		cc.log.WithError(err).Warn("could not save config")
	}
}

// populateColorList fills the list with appropriate colors based on editing mode.
func (cc *ColorConfigUI) populateColorList() {
	cc.colorList.Clear()

	current := cc.selectedHidden
	cc.colorList.SetTitle(" Covered Cells (Tab: uncovered) ")
	if cc.editingRevealed {
		current = cc.selectedRevealed
		cc.colorList.SetTitle(" Uncovered Cells (Tab: covered) ")
	}
	for i, c := range cc.palette() {
		cc.colorList.AddItem(fmt.Sprintf("[#%06x]████[-] %s (%d)",
			tcell.PaletteColor(c.code).Hex(), c.name, c.code),
			"", rune('a'+i), nil)
	}
	for i, c := range cc.palette() {
		if c.code == current {
			cc.colorList.SetCurrentItem(i)
			break
		}
	}
}

// previewCells is a small patch of board shown with the selected colors.
var previewCells = [4][7]types.CellView{
	{{}, {State: types.CellRevealed, Adjacent: 1}, {State: types.CellRevealed}, {State: types.CellRevealed}, {}, {State: types.CellFlagged}, {}},
	{{State: types.CellFlagged}, {State: types.CellRevealed, Adjacent: 2}, {State: types.CellRevealed}, {State: types.CellRevealed, Adjacent: 1}, {State: types.CellRevealed, Adjacent: 3}, {}, {}},
	{{}, {State: types.CellRevealed, Adjacent: 1}, {State: types.CellRevealed}, {State: types.CellRevealed}, {State: types.CellRevealed, Adjacent: 2}, {}, {State: types.CellFlagged}},
	{{}, {}, {State: types.CellRevealed, Adjacent: 1}, {State: types.CellRevealed, Adjacent: 1}, {}, {}, {}},
}

func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	rows, cols := len(previewCells), len(previewCells[0])
	if width < cols*cellWidth+4 || height < rows*cellHeight+5 {
		return x, y, width, height
	}

	colors := cc.cfg.Theme.Colors
	symbols := cc.cfg.Theme.Symbols
	startX, startY := x+2, y+1
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cell := previewCells[row][col]
			alt := cc.cfg.Theme.ShadeAltColumns && col%2 == 1

			bg := cc.selectedHidden
			if alt {
				bg = altShade(bg)
			}
			fg := tcell.ColorDefault
			r := rune(symbols.Hidden)
			switch {
			case cell.State == types.CellFlagged:
				r, fg = rune(symbols.Flag), tcell.PaletteColor(colors.Flag)
			case cell.State == types.CellRevealed:
				bg = cc.selectedRevealed
				if alt {
					bg = altShade(bg)
				}
				r = ' '
				if cell.Adjacent > 0 {
					r, fg = rune('0'+cell.Adjacent), tcell.PaletteColor(colors.Numbers[cell.Adjacent-1])
				}
			}

			style := tcell.StyleDefault.Background(tcell.PaletteColor(bg)).Foreground(fg)
			sx, sy := startX+col*cellWidth, startY+row*cellHeight+col%2
			screen.SetContent(sx, sy, ' ', nil, style)
			screen.SetContent(sx+1, sy, r, nil, style)
			screen.SetContent(sx+2, sy, ' ', nil, style)
			for i := 0; i < cellWidth; i++ {
				screen.SetContent(sx+i, sy+1, ' ', nil, style)
			}
		}
	}

	info := fmt.Sprintf("Covered: %d  Uncovered: %d", cc.selectedHidden, cc.selectedRevealed)
	for i, ch := range info {
		if startX+i < x+width-1 {
			screen.SetContent(startX+i, startY+rows*cellHeight+2, ch, nil, tcell.StyleDefault)
		}
	}

	return x, y, width, height
}

// altShade returns the neighboring palette entry used for odd columns.
func altShade(code int) int {
	if code >= 232 && code < 255 {
		return code + 1
	}
	if code == 255 {
		return 254
	}
	return code
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// SetInputCapture sets the input capture for the color list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.colorList.SetInputCapture(capture)
}

// ToggleMode switches between covered and uncovered cell color editing.
func (cc *ColorConfigUI) ToggleMode() {
	cc.editingRevealed = !cc.editingRevealed
	cc.populateColorList()
}
