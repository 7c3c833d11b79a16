package tictactoe

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	BoardSize = 9

	// NoMove is returned alongside a false flag or an error when no cell qualifies.
	NoMove = -1
)

// Symbol is the mark occupying a cell.
type Symbol string

const (
	Empty    Symbol = ""
	Human    Symbol = "X"
	Computer Symbol = "O"
)

// IsPlayer reports whether the symbol can be placed on the board.
func (that Symbol) IsPlayer() bool {
	return that == Human || that == Computer
}

func (that Symbol) isValid() bool {
	return that == Empty || that.IsPlayer()
}

// Board is a fixed 3x3 board stored row-major: index = row*3 + col.
type Board [BoardSize]Symbol

// EmptyCells returns the indices of all empty cells in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, len(that))
	for i, cell := range that {
		if cell == Empty {
			cells = append(cells, i)
		}
	}

	return cells
}

// Outcome is derived from the board, never stored.
type Outcome int

const (
	Undecided Outcome = iota
	Tie
	HumanWins
	ComputerWins
)

func (that Outcome) String() string {
	switch that {
	case Undecided:
		return "undecided"
	case Tie:
		return "tie"
	case HumanWins:
		return "human_wins"
	case ComputerWins:
		return "computer_wins"
	default:
		return fmt.Sprintf("outcome(%d)", int(that))
	}
}

// IsFinished reports whether the outcome ends the game.
func (that Outcome) IsFinished() bool {
	return that == Tie || that == HumanWins || that == ComputerWins
}

// DifficultyLevel selects the computer move policy.
type DifficultyLevel int

const (
	Easy DifficultyLevel = iota
	Harder
	Expert
)

var difficultyNames = map[DifficultyLevel]string{
	Easy:   "easy",
	Harder: "harder",
	Expert: "expert",
}

func (that DifficultyLevel) String() string {
	if name, ok := difficultyNames[that]; ok {
		return name
	}

	return fmt.Sprintf("difficulty(%d)", int(that))
}

func (that DifficultyLevel) IsValid() bool {
	_, ok := difficultyNames[that]
	return ok
}

// ParseDifficultyLevel parses "easy", "harder" or "expert", ignoring case.
func ParseDifficultyLevel(name string) (DifficultyLevel, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for level, levelName := range difficultyNames {
		if levelName == normalized {
			return level, nil
		}
	}

	return Expert, fmt.Errorf("%w: unknown difficulty level %q", apperror.ErrInvalidArgument, name)
}

func (that DifficultyLevel) MarshalText() ([]byte, error) {
	if !that.IsValid() {
		return nil, fmt.Errorf("%w: difficulty %d", apperror.ErrInvalidArgument, int(that))
	}

	return []byte(that.String()), nil
}

func (that *DifficultyLevel) UnmarshalText(text []byte) error {
	level, err := ParseDifficultyLevel(string(text))
	if err != nil {
		return err
	}

	*that = level

	return nil
}
