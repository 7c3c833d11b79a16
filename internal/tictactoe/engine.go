package tictactoe

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// WinCombos lists every line in scan order: rows, columns, diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Engine owns the board, the difficulty level and its own random source.
// It is not safe for concurrent use.
type Engine struct {
	board      Board
	difficulty DifficultyLevel

	rand   *rand.Rand
	logger *slog.Logger
}

type Option func(*Engine)

// WithRand injects the random source used for random moves.
func WithRand(source *rand.Rand) Option {
	return func(that *Engine) {
		that.rand = source
	}
}

func WithSeed(seed int64) Option {
	return func(that *Engine) {
		that.rand = rand.New(rand.NewSource(seed)) //nolint: gosec // game moves, not secrets
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(that *Engine) {
		that.logger = logger
	}
}

func WithDifficulty(level DifficultyLevel) Option {
	return func(that *Engine) {
		if level.IsValid() {
			that.difficulty = level
		}
	}
}

// NewEngine returns an engine with an empty board and Expert difficulty.
func NewEngine(opts ...Option) *Engine {
	engine := &Engine{
		difficulty: Expert,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(engine)
	}

	if engine.rand == nil {
		engine.rand = rand.New(rand.NewSource(newSeed())) //nolint: gosec // game moves, not secrets
	}

	engine.ClearBoard()

	return engine
}

func newSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}

	return int64(binary.LittleEndian.Uint64(b[:]))
}

// ClearBoard sets every cell to Empty. Difficulty is kept.
func (that *Engine) ClearBoard() {
	for i := range that.board {
		that.board[i] = Empty
	}
}

// SetMove places player at location. An occupied cell is overwritten.
func (that *Engine) SetMove(player Symbol, location int) error {
	if err := validateMove(player, location); err != nil {
		return err
	}

	that.board[location] = player

	return nil
}

// Play is SetMove that refuses to overwrite an occupied cell.
func (that *Engine) Play(player Symbol, location int) error {
	if err := validateMove(player, location); err != nil {
		return err
	}

	if that.board[location] != Empty {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, location)
	}

	that.board[location] = player

	return nil
}

// validateMove - checks the location range and the player symbol.
func validateMove(player Symbol, location int) error {
	if location < 0 || location >= BoardSize {
		return fmt.Errorf("%w: location must be between 0 and %d inclusive: %d",
			apperror.ErrInvalidArgument, BoardSize-1, location)
	}

	if !player.IsPlayer() {
		return fmt.Errorf("%w: player must be %s or %s: %q",
			apperror.ErrInvalidArgument, Human, Computer, string(player))
	}

	return nil
}

func (that *Engine) CheckOutcome() Outcome {
	return checkOutcome(that.board)
}

func checkOutcome(board Board) Outcome {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != b || b != c {
			continue
		}

		switch a {
		case Human:
			return HumanWins
		case Computer:
			return ComputerWins
		}
	}

	for _, cell := range board {
		if cell == Empty {
			return Undecided
		}
	}

	return Tie
}

// RandomMove picks uniformly among the empty cells without placing a mark.
func (that *Engine) RandomMove() (int, error) {
	available := that.board.EmptyCells()
	if len(available) == 0 {
		return NoMove, apperror.ErrNoAvailableMoves
	}

	return available[that.rand.Intn(len(available))], nil
}

// WinningMove returns the first empty cell that completes a Computer line.
func (that *Engine) WinningMove() (int, bool) {
	return findCompletingMove(that.board, Computer, ComputerWins)
}

// BlockingMove returns the first empty cell that would complete a Human line.
func (that *Engine) BlockingMove() (int, bool) {
	return findCompletingMove(that.board, Human, HumanWins)
}

// findCompletingMove probes a copy of the board, so the engine state is never touched.
func findCompletingMove(board Board, player Symbol, want Outcome) (int, bool) {
	for i, cell := range board {
		if cell != Empty {
			continue
		}

		probe := board
		probe[i] = player
		if checkOutcome(probe) == want {
			return i, true
		}
	}

	return NoMove, false
}

// SelectComputerMove chooses the computer's next cell for the current difficulty.
// The board is left unchanged.
func (that *Engine) SelectComputerMove() (int, error) {
	log := that.logger.With("method", "SelectComputerMove", "difficulty", that.difficulty.String())

	switch that.difficulty {
	case Harder:
		if move, ok := that.WinningMove(); ok {
			log.Debug("computer moving to win", "cell", move)
			return move, nil
		}
	case Expert:
		if move, ok := that.WinningMove(); ok {
			log.Debug("computer moving to win", "cell", move)
			return move, nil
		}

		if move, ok := that.BlockingMove(); ok {
			log.Debug("computer moving to block win", "cell", move)
			return move, nil
		}
	case Easy:
	default:
		return NoMove, fmt.Errorf("%w: difficulty %d", apperror.ErrInvalidArgument, int(that.difficulty))
	}

	move, err := that.RandomMove()
	if err != nil {
		return NoMove, fmt.Errorf("failed to select random move: %w", err)
	}

	log.Debug("computer moving to random cell", "cell", move)

	return move, nil
}

// ComputerMove selects the computer's move and places it. It returns the cell played.
func (that *Engine) ComputerMove() (int, error) {
	move, err := that.SelectComputerMove()
	if err != nil {
		return NoMove, err
	}

	if err = that.SetMove(Computer, move); err != nil {
		return NoMove, fmt.Errorf("failed to place computer move: %w", err)
	}

	return move, nil
}

func (that *Engine) DifficultyLevel() DifficultyLevel {
	return that.difficulty
}

func (that *Engine) SetDifficultyLevel(level DifficultyLevel) error {
	if !level.IsValid() {
		return fmt.Errorf("%w: difficulty %d", apperror.ErrInvalidArgument, int(level))
	}

	that.difficulty = level

	return nil
}

// Board returns a copy of the current board.
func (that *Engine) Board() Board {
	return that.board
}

// LoadBoard replaces the board with a previously saved one.
func (that *Engine) LoadBoard(board Board) error {
	for i, cell := range board {
		if !cell.isValid() {
			return fmt.Errorf("%w: cell %d holds %q", apperror.ErrInvalidArgument, i, string(cell))
		}
	}

	that.board = board

	return nil
}
