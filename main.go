// globesweeper is a terminal minesweeper played on a hexagonal torus.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/adrg/xdg"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"

	"github.com/ferdynandzaposki-spec/globesweeper2/config"
	"github.com/ferdynandzaposki-spec/globesweeper2/engine"
	"github.com/ferdynandzaposki-spec/globesweeper2/record"
	"github.com/ferdynandzaposki-spec/globesweeper2/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagPreset  = flag.String("preset", "", "Board preset from the config file (classic, large, ...)")
	flagRows    = flag.Int("rows", 0, "Number of rows")
	flagCols    = flag.Int("cols", 0, "Number of columns")
	flagMines   = flag.Int("mines", 0, "Number of mines")
	flagChord   = flag.Bool("chord", false, "Enable chording")
	flagSeed    = flag.Int64("seed", 0, "Seed for mine placement (0 picks one)")
	flagMoves   = flag.String("moves", "", "Gestures to replay after starting, e.g. \"R C7, F D8\" (needs -seed)")
	flagPlay    = flag.Bool("play", false, "Start game immediately")
	flagFocus   = flag.Bool("focus", false, "Start in focus mode (fullscreen board)")
	flagDebug   = flag.Bool("debug", false, "Write debug output to the log file")
	flagVersion = flag.Bool("version", false, "Print version and exit")
)

var log = logrus.New()

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.HexBoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var cfg *config.Config

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("globesweeper %s\n", Version)
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	closeLog := setupLogging()
	defer closeLog()

	startCfg, err := buildGameConfigFromFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	replay, err := parseReplay()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	quickStart := *flagPlay || *flagPreset != "" || *flagRows > 0 || *flagCols > 0 || *flagMines > 0 || *flagFocus ||
		len(replay) > 0

	app = tview.NewApplication()
	app.EnableMouse(true)
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ⬡ globesweeper ")

	gameHint = tview.NewTextView()
	gameHint.SetDynamicColors(true)
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewHexBoard(app, cfg, gameHint, log)

	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)

	gameBoard.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp:
			gameBoard.MoveCursor(-1, 0)
		case tcell.KeyDown:
			gameBoard.MoveCursor(1, 0)
		case tcell.KeyLeft:
			gameBoard.MoveCursor(0, -1)
		case tcell.KeyRight:
			gameBoard.MoveCursor(0, 1)
		case tcell.KeyEnter:
			gameBoard.Reveal()
		case tcell.KeyRune:
			switch event.Rune() {
			case 'h':
				gameBoard.MoveCursor(0, -1)
			case 'j':
				gameBoard.MoveCursor(1, 0)
			case 'k':
				gameBoard.MoveCursor(-1, 0)
			case 'l':
				gameBoard.MoveCursor(0, 1)
			case ' ':
				gameBoard.Reveal()
			case 'f':
				gameBoard.Flag()
			case 'd':
				gameBoard.Chord()
			case 'n':
				if err := gameBoard.Restart(); err != nil {
					showError(fmt.Errorf("Failed to start game:\n%w", err))
				}
			case 'z':
				if gameBoard.ToggleFocusMode() {
					ui.BuildFocusLayout(gameFrame, gameBoard)
				} else {
					ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint)
				}
			case 'q':
				gameBoard.Close()
				rootPage.SwitchToPage("setup")
			}
		}
		return event
	})

	setupUI := ui.NewGameSetup(cfg,
		func(gameCfg engine.GameConfig) {
			gameCfg.Seed = *flagSeed
			startGame(gameCfg)
		},
		func() {
			app.Stop()
		},
		func() {
			rootPage.SwitchToPage("colors")
		},
	)

	colorConfig := ui.NewColorConfig(cfg, log, func() {
		gameBoard.SetConfig(cfg)
		rootPage.SwitchToPage("setup")
	})
	colorConfig.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			rootPage.SwitchToPage("setup")
			return nil
		}
		if event.Key() == tcell.KeyTab {
			colorConfig.ToggleMode()
			return nil
		}
		return event
	})

	rootPage.AddPage("setup", ui.CreateCenteredForm(setupUI.Form(), 60), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("colors", colorConfig.Flex(), true, false)

	if quickStart {
		startGame(startCfg)
		if len(replay) > 0 {
			if _, err := gameBoard.Replay(replay); err != nil {
				showError(fmt.Errorf("replay: %w", err))
			}
		}
		if *flagFocus {
			gameBoard.SetFocusMode(true)
			ui.BuildFocusLayout(gameFrame, gameBoard)
		}
	}

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		log.WithError(err).Error("terminal ui failed")
		panic(err)
	}
	gameBoard.Close()
}

// startGame starts a game with the given configuration.
func startGame(gameCfg engine.GameConfig) {
	if err := gameBoard.NewGame(gameCfg); err != nil {
		showError(fmt.Errorf("Failed to start game:\n%w", err))
		return
	}
	rootPage.SwitchToPage("gameview")
	app.SetFocus(gameBoard.Box)
}

func showError(err error) {
	log.WithError(err).Warn("game error")
	modal := tview.NewModal().
		SetText(err.Error()).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			rootPage.RemovePage("error")
		})
	rootPage.AddPage("error", modal, true, true)
}

// buildGameConfigFromFlags creates a GameConfig from the chosen preset and
// command-line overrides.
func buildGameConfigFromFlags() (engine.GameConfig, error) {
	preset, ok := cfg.Preset(*flagPreset)
	if !ok {
		return engine.GameConfig{}, fmt.Errorf("unknown preset %q, have %v", *flagPreset, cfg.PresetNames())
	}
	gameCfg := preset.GameConfig()

	if *flagRows > 0 {
		gameCfg.Rows = *flagRows
	}
	if *flagCols > 0 {
		gameCfg.Cols = *flagCols
	}
	if *flagMines > 0 {
		gameCfg.Mines = *flagMines
	}
	if *flagChord {
		gameCfg.Chording = true
	}
	gameCfg.Seed = *flagSeed

	return gameCfg, gameCfg.Validate()
}

// parseReplay reads the -moves flag. Mine placement depends on the seed, so
// a replay without one would not reproduce the game.
func parseReplay() ([]record.Move, error) {
	moves, err := record.ParseMoves(*flagMoves)
	if err != nil {
		return nil, fmt.Errorf("-moves: %w", err)
	}
	if len(moves) > 0 && *flagSeed == 0 {
		return nil, fmt.Errorf("-moves needs -seed")
	}
	return moves, nil
}

// setupLogging sends log output to the state directory. The terminal belongs
// to the UI, so nothing is written to stderr while it runs.
func setupLogging() func() {
	log.SetOutput(io.Discard)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	if *flagDebug {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	path, err := xdg.StateFile("globesweeper/debug.log")
	if err != nil {
		return func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return func() {}
	}
	log.SetOutput(f)
	log.WithField("version", Version).Debug("starting")
	return func() {
		f.Close()
	}
}
