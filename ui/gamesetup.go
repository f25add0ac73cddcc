package ui

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/ferdynandzaposki-spec/globesweeper2/config"
	"github.com/ferdynandzaposki-spec/globesweeper2/engine"
)

const defaultHelp = "Tab/Shift+Tab: navigate fields  |  Arrow keys: change dropdown  |  Enter: confirm"

// GameSetupUI provides a form for configuring a new game.
type GameSetupUI struct {
	form     *tview.Form
	flex     *tview.Flex
	help     *tview.TextView
	presets  []config.Preset
	onStart  func(engine.GameConfig)
	onCancel func()
	onColors func()

	rows     string
	cols     string
	mines    string
	chording bool
}

// NewGameSetup creates a new game setup form.
func NewGameSetup(cfg *config.Config, onStart func(engine.GameConfig), onCancel func(), onColors func()) *GameSetupUI {
	setup := &GameSetupUI{
		presets:  cfg.Game.Presets,
		onStart:  onStart,
		onCancel: onCancel,
		onColors: onColors,
	}

	initial := 0
	if p, ok := cfg.Preset(""); ok {
		for i, name := range cfg.PresetNames() {
			if name == p.Name {
				initial = i
			}
		}
	}
	setup.loadPreset(initial)

	form := tview.NewForm()
	setup.form = form

	form.AddDropDown("Preset", cfg.PresetNames(), initial, func(option string, index int) {
		setup.applyPreset(index)
	})

	digits := func(text string, lastChar rune) bool {
		return lastChar >= '0' && lastChar <= '9'
	}
	form.AddInputField("Rows", setup.rows, 6, digits, func(text string) {
		setup.rows = text
	})
	form.AddInputField("Columns", setup.cols, 6, digits, func(text string) {
		setup.cols = text
	})
	form.AddInputField("Mines", setup.mines, 6, digits, func(text string) {
		setup.mines = text
	})
	form.AddCheckbox("Chording", setup.chording, func(checked bool) {
		setup.chording = checked
	})

	form.AddButton("Start Game", func() {
		gameCfg, err := setup.GameConfig()
		if err != nil {
			setup.showError(err)
			return
		}
		setup.help.SetText(defaultHelp).SetTextColor(tcell.ColorGray)
		onStart(gameCfg)
	})

	form.AddButton("Colors", func() {
		if onColors != nil {
			onColors()
		}
	})

	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetTitle(" New Game ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetButtonBackgroundColor(MenuColors.ButtonBG)
	form.SetButtonTextColor(MenuColors.ButtonText)
	form.SetFieldBackgroundColor(MenuColors.CardBG)
	form.SetLabelColor(MenuColors.Label)
	form.SetBorderColor(MenuColors.Border)
	form.SetTitleColor(MenuColors.Title)

	setup.help = tview.NewTextView().
		SetText(defaultHelp).
		SetTextAlign(tview.AlignCenter)
	setup.help.SetTextColor(MenuColors.Hint)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(setup.help, 1, 0, false)

	setup.flex = flex
	return setup
}

// loadPreset copies a preset into the form values.
func (s *GameSetupUI) loadPreset(index int) {
	if index < 0 || index >= len(s.presets) {
		return
	}
	p := s.presets[index]
	s.rows = strconv.Itoa(p.Rows)
	s.cols = strconv.Itoa(p.Cols)
	s.mines = strconv.Itoa(p.Mines)
	s.chording = p.Chording
}

// applyPreset loads a preset and updates the visible fields. The dropdown
// fires once while the form is still being built.
func (s *GameSetupUI) applyPreset(index int) {
	s.loadPreset(index)
	if s.form == nil {
		return
	}
	if item, ok := s.form.GetFormItemByLabel("Rows").(*tview.InputField); ok {
		item.SetText(s.rows)
	}
	if item, ok := s.form.GetFormItemByLabel("Columns").(*tview.InputField); ok {
		item.SetText(s.cols)
	}
	if item, ok := s.form.GetFormItemByLabel("Mines").(*tview.InputField); ok {
		item.SetText(s.mines)
	}
	if item, ok := s.form.GetFormItemByLabel("Chording").(*tview.Checkbox); ok {
		item.SetChecked(s.chording)
	}
}

// GameConfig builds and validates the configuration entered in the form.
func (s *GameSetupUI) GameConfig() (engine.GameConfig, error) {
	var cfg engine.GameConfig
	fields := []struct {
		name string
		text string
		dst  *int
	}{
		{"rows", s.rows, &cfg.Rows},
		{"cols", s.cols, &cfg.Cols},
		{"mines", s.mines, &cfg.Mines},
	}
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f.text))
		if err != nil {
			return cfg, &engine.InvalidConfigError{Field: f.name, Reason: "must be a number"}
		}
		*f.dst = n
	}
	cfg.Chording = s.chording
	return cfg, cfg.Validate()
}

func (s *GameSetupUI) showError(err error) {
	s.help.SetText(err.Error()).SetTextColor(tcell.ColorRed)
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// SetInputCapture sets the input capture function for the form.
func (s *GameSetupUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	s.form.SetInputCapture(capture)
}
