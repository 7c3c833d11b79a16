package console

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var errUnknownDifficulty = errors.New("unknown difficulty")

const helpText = `Commands:
  1-9                       place your mark on that cell
  new                       start the next game
  difficulty [easy|harder|expert]
                            show or change the computer's difficulty
  score                     show the tallies and games played
  reset                     set the tallies to zero
  board                     draw the board again
  help                      show this text
  quit                      leave the game
`

// handleMove - cells are numbered 1-9 for the player and 0-8 for the engine.
func (that *Server) handleMove(ctx context.Context, cell int) error {
	result, err := that.manager.HumanMove(ctx, cell-1)
	if err != nil {
		return fmt.Errorf("failed to make move: %w", err)
	}

	that.renderResult(result, false)

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, _ []string) error {
	result, err := that.manager.NewGame(ctx)
	if err != nil {
		return fmt.Errorf("failed to start new game: %w", err)
	}

	that.renderResult(result, true)

	return nil
}

func (that *Server) handleDifficulty(ctx context.Context, args []string) error {
	if len(args) == 0 {
		that.printf("Difficulty: %s\n", that.manager.Session().Difficulty)
		return nil
	}

	level, err := tictactoe.ParseDifficultyLevel(args[0])
	if err != nil {
		return fmt.Errorf("%w: %q", errUnknownDifficulty, args[0])
	}

	if err = that.manager.SetDifficulty(ctx, level); err != nil {
		return fmt.Errorf("failed to set difficulty: %w", err)
	}

	that.printf("Difficulty set to %s.\n", level)

	return nil
}

func (that *Server) handleScore(_ context.Context, _ []string) error {
	that.renderScore(that.manager.Session())
	return nil
}

func (that *Server) handleReset(ctx context.Context, _ []string) error {
	if err := that.manager.ResetScores(ctx); err != nil {
		return fmt.Errorf("failed to reset scores: %w", err)
	}

	that.renderScore(that.manager.Session())

	return nil
}

func (that *Server) handleBoard(_ context.Context, _ []string) error {
	that.renderBoard(that.manager.Session().Board)
	return nil
}

func (that *Server) handleHelp(_ context.Context, _ []string) error {
	that.printf("%s", helpText)
	return nil
}

func (that *Server) handleQuit(_ context.Context, _ []string) error {
	return errQuit
}

// userMessage maps an error to the text shown to the player. The flag is false
// for errors the player cannot cause.
func userMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, apperror.ErrCellOccupied):
		return "That cell is taken.", true
	case errors.Is(err, apperror.ErrGameFinished):
		return "The game is over. Type new to play again.", true
	case errors.Is(err, errUnknownDifficulty):
		return "Unknown difficulty. Choose easy, harder or expert.", true
	case errors.Is(err, apperror.ErrInvalidArgument):
		return fmt.Sprintf("Pick a cell from 1 to %d.", tictactoe.BoardSize), true
	default:
		return "Something went wrong: " + strings.TrimSpace(err.Error()), false
	}
}
