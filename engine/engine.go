// Package engine defines the interface for minefield game engines.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/ferdynandzaposki-spec/globesweeper2/types"
)

// ErrOutOfRange is returned for gestures aimed outside the board.
var ErrOutOfRange = errors.New("coordinate out of range")

// GameEngine defines the interface for playing a single game.
// Operations that have no legal effect return an empty change and a nil error.
type GameEngine interface {
	// ID returns the unique identifier of this game.
	ID() string

	// Config returns the configuration the game was created with.
	Config() GameConfig

	// State returns the current game state.
	State() types.GameState

	// Reveal uncovers the cell at pos. The first reveal of a game places
	// the mines, keeping pos safe.
	Reveal(pos types.Coord) (*types.Change, error)

	// ToggleFlag flags or unflags an unrevealed cell.
	ToggleFlag(pos types.Coord) (*types.Change, error)

	// Chord reveals the unflagged neighbors of a revealed numbered cell once
	// its flagged neighbor count matches its number.
	Chord(pos types.Coord) (*types.Change, error)

	// Snapshot returns a read view of the whole board.
	Snapshot() *types.BoardState

	// Mines returns every mine position once the game is over, nil before.
	Mines() []types.Coord

	// OnChange registers a callback invoked after every accepted operation.
	OnChange(func(change *types.Change))

	// Close stops the timer and drops callbacks.
	Close()
}

// Timer is the elapsed-time collaborator. The engine starts it when mines
// are placed and stops it when the game ends; it never mutates the game.
type Timer interface {
	Start()
	Stop()
	Elapsed() time.Duration
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	Rows     int   // number of rows, wraps vertically
	Cols     int   // number of columns, wraps horizontally
	Mines    int   // must leave at least two free cells
	Chording bool  // enables the dual-activate gesture
	Seed     int64 // 0 picks a time based seed
}

// InvalidConfigError reports a configuration that cannot start a game.
type InvalidConfigError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid game config: %s %s", e.Field, e.Reason)
}

// TotalCells returns the number of cells on the board.
func (c GameConfig) TotalCells() int {
	return c.Rows * c.Cols
}

// Validate checks the dimensions and the mine count against the first-click
// safety bound.
func (c GameConfig) Validate() error {
	if c.Rows <= 0 {
		return &InvalidConfigError{"rows", fmt.Sprintf("must be positive, got %d", c.Rows)}
	}
	if c.Cols <= 0 {
		return &InvalidConfigError{"cols", fmt.Sprintf("must be positive, got %d", c.Cols)}
	}
	if c.Mines <= 0 {
		return &InvalidConfigError{"mines", fmt.Sprintf("must be positive, got %d", c.Mines)}
	}
	if c.Mines >= c.TotalCells()-1 {
		return &InvalidConfigError{"mines", fmt.Sprintf("must be below %d for a %dx%d board, got %d",
			c.TotalCells()-1, c.Rows, c.Cols, c.Mines)}
	}
	return nil
}

// DefaultConfig returns the small board variant.
func DefaultConfig() GameConfig {
	return GameConfig{
		Rows:  15,
		Cols:  20,
		Mines: 40,
	}
}

// LargeConfig returns the large board variant, which allows chording.
func LargeConfig() GameConfig {
	return GameConfig{
		Rows:     50,
		Cols:     50,
		Mines:    400,
		Chording: true,
	}
}
