package minefield

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ferdynandzaposki-spec/globesweeper2/engine"
	"github.com/ferdynandzaposki-spec/globesweeper2/types"
)

// Session is one game: a board, its state machine and its collaborators.
// It is not safe for concurrent use; every operation runs to completion on
// the caller's goroutine.
type Session struct {
	id        uuid.UUID
	cfg       engine.GameConfig
	board     *Board
	state     types.GameState
	detonated *types.Coord

	rng      *rand.Rand
	timer    engine.Timer
	log      logrus.FieldLogger
	onChange func(change *types.Change)
}

// Option customizes a Session.
type Option func(*Session)

// WithRand sets the random source used for mine placement.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) {
		s.rng = rng
	}
}

// WithTimer attaches the elapsed-time collaborator.
func WithTimer(t engine.Timer) Option {
	return func(s *Session) {
		s.timer = t
	}
}

// WithLogger sets the logger. The session id is added as a field.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// New validates cfg and creates a fresh game in the Ready state.
func New(cfg engine.GameConfig, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		id:    uuid.New(),
		cfg:   cfg,
		board: NewBoard(cfg.Rows, cfg.Cols, cfg.Mines),
		state: types.Ready,
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		s.rng = rand.New(rand.NewSource(seed))
	}
	s.log = s.log.WithField("session", s.id.String())
	s.log.WithFields(logrus.Fields{
		"rows":     cfg.Rows,
		"cols":     cfg.Cols,
		"mines":    cfg.Mines,
		"chording": cfg.Chording,
	}).Info("new game")
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id.String()
}

// Config returns the game configuration.
func (s *Session) Config() engine.GameConfig {
	return s.cfg
}

// State returns the current game state.
func (s *Session) State() types.GameState {
	return s.state
}

// OnChange registers a callback for accepted operations.
func (s *Session) OnChange(callback func(change *types.Change)) {
	s.onChange = callback
}

// Reveal uncovers the cell at pos.
func (s *Session) Reveal(pos types.Coord) (*types.Change, error) {
	if !s.board.InBounds(pos) {
		s.rejectInput("reveal", pos)
		return nil, fmt.Errorf("reveal %s: %w", pos, engine.ErrOutOfRange)
	}
	if s.state.Finished() {
		return s.noChange(), nil
	}
	if cell := s.board.At(pos); cell.Revealed || cell.Flagged {
		return s.noChange(), nil
	}

	prev := s.state
	if s.state == types.Ready {
		s.start(pos)
	}
	changed := newChangeSet()
	s.revealCell(pos, changed)
	s.checkCleared(changed)
	return s.emit(prev, changed), nil
}

// ToggleFlag flags or unflags the cell at pos.
func (s *Session) ToggleFlag(pos types.Coord) (*types.Change, error) {
	if !s.board.InBounds(pos) {
		s.rejectInput("flag", pos)
		return nil, fmt.Errorf("flag %s: %w", pos, engine.ErrOutOfRange)
	}
	if s.state.Finished() || !s.board.ToggleFlag(pos) {
		return s.noChange(), nil
	}
	changed := newChangeSet()
	changed.add(pos)
	return s.emit(s.state, changed), nil
}

// Chord reveals every unflagged neighbor of a revealed numbered cell when
// the flags around it match its number. A mismatch is a silent no-op.
func (s *Session) Chord(pos types.Coord) (*types.Change, error) {
	if !s.board.InBounds(pos) {
		s.rejectInput("chord", pos)
		return nil, fmt.Errorf("chord %s: %w", pos, engine.ErrOutOfRange)
	}
	if !s.cfg.Chording || s.state != types.Playing {
		return s.noChange(), nil
	}
	targets := chordTargets(s.board, pos)
	if len(targets) == 0 {
		return s.noChange(), nil
	}

	prev := s.state
	changed := newChangeSet()
	for _, t := range targets {
		if !s.revealCell(t, changed) {
			break
		}
	}
	s.checkCleared(changed)
	return s.emit(prev, changed), nil
}

// Mines returns every mine position once the game has ended.
func (s *Session) Mines() []types.Coord {
	if !s.state.Finished() {
		return nil
	}
	return s.board.MinePositions()
}

// Snapshot returns a read view of the board.
func (s *Session) Snapshot() *types.BoardState {
	state := types.NewBoardState(s.board.Rows, s.board.Cols)
	s.board.each(func(pos types.Coord, _ *Cell) {
		state.Cells[pos.Row][pos.Col] = s.view(pos)
	})
	state.State = s.state
	state.MinesTotal = s.board.Mines
	state.MinesLeft = s.board.MinesLeft()
	state.Revealed = s.board.Revealed
	state.Elapsed = s.elapsed()
	state.Chording = s.cfg.Chording
	state.Detonated = s.detonated
	return state
}

// Close stops the timer and drops the change callback.
func (s *Session) Close() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.onChange = nil
}

// start places the mines around the first revealed cell and starts the clock.
func (s *Session) start(safe types.Coord) {
	placeMines(s.board, safe, s.rng)
	s.state = types.Playing
	if s.timer != nil {
		s.timer.Start()
	}
	s.log.WithFields(logrus.Fields{
		"row": safe.Row,
		"col": safe.Col,
	}).Debug("mines placed")
}

// revealCell reveals pos, or ends the game if pos is a mine. It returns
// false once the game is lost.
func (s *Session) revealCell(pos types.Coord, changed *changeSet) bool {
	cell := s.board.At(pos)
	if cell.Revealed || cell.Flagged {
		return true
	}
	if cell.Mine {
		s.detonate(pos, changed)
		return false
	}
	changed.add(reveal(s.board, pos)...)
	return true
}

func (s *Session) detonate(pos types.Coord, changed *changeSet) {
	s.state = types.Lost
	s.detonated = &pos
	s.stopTimer()

	changed.add(pos)
	s.board.each(func(p types.Coord, cell *Cell) {
		// Mines are exposed and wrong flags marked.
		if cell.Mine != cell.Flagged {
			changed.add(p)
		}
	})
	s.log.WithFields(logrus.Fields{
		"row":      pos.Row,
		"col":      pos.Col,
		"revealed": s.board.Revealed,
	}).Info("game lost")
}

func (s *Session) checkCleared(changed *changeSet) {
	if s.state != types.Playing || !s.board.Cleared() {
		return
	}
	s.state = types.Won
	s.stopTimer()
	s.board.each(func(p types.Coord, cell *Cell) {
		if cell.Mine && !cell.Flagged {
			changed.add(p)
		}
	})
	s.log.WithFields(logrus.Fields{
		"revealed": s.board.Revealed,
		"elapsed":  s.elapsed(),
	}).Info("game won")
}

func (s *Session) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
	}
}

func (s *Session) elapsed() time.Duration {
	if s.timer == nil {
		return 0
	}
	return s.timer.Elapsed()
}

// view derives what the player sees of pos in the current state.
func (s *Session) view(pos types.Coord) types.CellView {
	cell := s.board.At(pos)
	switch {
	case cell.Revealed:
		return types.CellView{State: types.CellRevealed, Adjacent: cell.Adjacent}
	case s.state == types.Lost && cell.Mine:
		if s.detonated != nil && *s.detonated == pos {
			return types.CellView{State: types.CellExploded}
		}
		if cell.Flagged {
			return types.CellView{State: types.CellFlagged}
		}
		return types.CellView{State: types.CellMine}
	case s.state == types.Lost && cell.Flagged:
		return types.CellView{State: types.CellWrongFlag}
	case s.state == types.Won && cell.Mine:
		return types.CellView{State: types.CellFlagged}
	case cell.Flagged:
		return types.CellView{State: types.CellFlagged}
	default:
		return types.CellView{State: types.CellHidden}
	}
}

func (s *Session) noChange() *types.Change {
	return &types.Change{
		State:     s.state,
		MinesLeft: s.board.MinesLeft(),
		Revealed:  s.board.Revealed,
		Elapsed:   s.elapsed(),
	}
}

// emit builds the change for an accepted operation and notifies the
// registered callback.
func (s *Session) emit(prev types.GameState, changed *changeSet) *types.Change {
	change := s.noChange()
	change.Transition = prev != s.state
	change.Cells = make([]types.CellUpdate, 0, changed.len())
	for _, pos := range changed.order {
		change.Cells = append(change.Cells, types.CellUpdate{Pos: pos, View: s.view(pos)})
	}
	if s.state == types.Lost {
		change.Mines = s.board.MinePositions()
		change.Detonated = s.detonated
	}
	if s.onChange != nil && !change.Empty() {
		s.onChange(change)
	}
	return change
}

func (s *Session) rejectInput(op string, pos types.Coord) {
	s.log.WithFields(logrus.Fields{
		"op":  op,
		"row": pos.Row,
		"col": pos.Col,
	}).Debug("coordinate out of range")
}

var _ engine.GameEngine = (*Session)(nil)
