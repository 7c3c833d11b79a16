package console

import (
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

const (
	humanColor    = "#00C800"
	computerColor = "#C80000"
)

func (that *Server) renderResult(result *usecase.Result, gameStart bool) {
	if gameStart {
		if result.Session.FirstTurn == tictactoe.Computer {
			that.printf("Computer goes first.\n")
		} else {
			that.printf("You go first.\n")
		}
	}

	if result.ComputerCell != tictactoe.NoMove {
		that.printf("Computer moved to %d.\n", result.ComputerCell+1)
	}

	that.renderBoard(result.Session.Board)

	switch result.Outcome {
	case tictactoe.Undecided:
		that.printf("Your turn.\n")
		return
	case tictactoe.Tie:
		that.printf("It's a tie!\n")
	case tictactoe.HumanWins:
		that.printf("You won!\n")
	case tictactoe.ComputerWins:
		that.printf("Computer won!\n")
	}

	that.renderScore(result.Session)
	that.printf("Type new to play again.\n")
}

func (that *Server) renderBoard(board tictactoe.Board) {
	var sb strings.Builder

	for row := 0; row < 3; row++ {
		if row > 0 {
			sb.WriteString("-----------\n")
		}

		for col := 0; col < 3; col++ {
			if col > 0 {
				sb.WriteString("|")
			}

			sb.WriteString(" ")
			sb.WriteString(that.cell(board, row*3+col))
			sb.WriteString(" ")
		}

		sb.WriteString("\n")
	}

	that.printf("%s", sb.String())
}

func (that *Server) cell(board tictactoe.Board, location int) string {
	switch symbol := board[location]; symbol {
	case tictactoe.Human:
		return that.out.String(string(symbol)).Foreground(that.out.Color(humanColor)).Bold().String()
	case tictactoe.Computer:
		return that.out.String(string(symbol)).Foreground(that.out.Color(computerColor)).Bold().String()
	default:
		return that.out.String(strconv.Itoa(location + 1)).Faint().String()
	}
}

func (that *Server) renderScore(session entity.Session) {
	that.printf("Human: %d  Computer: %d  Ties: %d  Games: %d\n",
		session.HumanWins, session.ComputerWins, session.Ties, session.GamesPlayed)
}
