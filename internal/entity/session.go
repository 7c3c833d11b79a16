package entity

import (
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

// Session is the saved state of the match being played. Only the latest
// snapshot is kept; finished games are not recorded.
type Session struct {
	ID           string                    `json:"id"`
	Board        tictactoe.Board           `json:"board"`
	Difficulty   tictactoe.DifficultyLevel `json:"difficulty"`
	HumanWins    int                       `json:"human_wins"`
	ComputerWins int                       `json:"computer_wins"`
	Ties         int                       `json:"ties"`
	FirstTurn    tictactoe.Symbol          `json:"first_turn"`
	GameOver     bool                      `json:"game_over"`
	GamesPlayed  int                       `json:"games_played"`
}

func NewSession(id string, difficulty tictactoe.DifficultyLevel) *Session {
	return &Session{
		ID:         id,
		Difficulty: difficulty,
	}
}

// RecordOutcome adds a finished game to the tallies and marks the game over.
// Undecided outcomes are ignored.
func (that *Session) RecordOutcome(outcome tictactoe.Outcome) {
	switch outcome {
	case tictactoe.HumanWins:
		that.HumanWins++
	case tictactoe.ComputerWins:
		that.ComputerWins++
	case tictactoe.Tie:
		that.Ties++
	default:
		return
	}

	that.GamesPlayed++
	that.GameOver = true
}

// NextFirstTurn returns who opens the next game. The human opens the first one.
func (that *Session) NextFirstTurn() tictactoe.Symbol {
	if that.FirstTurn == tictactoe.Human {
		return tictactoe.Computer
	}

	return tictactoe.Human
}

func (that *Session) ResetScores() {
	that.HumanWins = 0
	that.ComputerWins = 0
	that.Ties = 0
}
