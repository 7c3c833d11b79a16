package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

func TestSession_RecordOutcome(t *testing.T) {
	t.Run("Counts each finished outcome", func(t *testing.T) {
		// Given: a new session
		session := NewSession("123", tictactoe.Expert)

		// When: one game of each result is recorded
		session.RecordOutcome(tictactoe.HumanWins)
		session.RecordOutcome(tictactoe.ComputerWins)
		session.RecordOutcome(tictactoe.Tie)

		// Then: each tally is one and the game is over
		assert.Equal(t, 1, session.HumanWins)
		assert.Equal(t, 1, session.ComputerWins)
		assert.Equal(t, 1, session.Ties)
		assert.Equal(t, 3, session.GamesPlayed)
		assert.True(t, session.GameOver)
	})

	t.Run("Ignores undecided", func(t *testing.T) {
		// Given: a new session
		session := NewSession("123", tictactoe.Expert)

		// When: an undecided outcome is recorded
		session.RecordOutcome(tictactoe.Undecided)

		// Then: nothing changes
		assert.Equal(t, NewSession("123", tictactoe.Expert), session)
	})
}

func TestSession_NextFirstTurn(t *testing.T) {
	session := NewSession("123", tictactoe.Expert)

	// The human opens the first game, then the opener alternates.
	assert.Equal(t, tictactoe.Human, session.NextFirstTurn())

	session.FirstTurn = tictactoe.Human
	assert.Equal(t, tictactoe.Computer, session.NextFirstTurn())

	session.FirstTurn = tictactoe.Computer
	assert.Equal(t, tictactoe.Human, session.NextFirstTurn())
}

func TestSession_ResetScores(t *testing.T) {
	session := &Session{ID: "123", HumanWins: 3, ComputerWins: 2, Ties: 1, GamesPlayed: 6}

	session.ResetScores()

	assert.Equal(t, &Session{ID: "123", GamesPlayed: 6}, session)
}

func TestSession_JSON(t *testing.T) {
	// Given: a session in the middle of a game
	session := &Session{
		ID: "abc",
		Board: tictactoe.Board{
			tictactoe.Human, tictactoe.Empty, tictactoe.Empty,
			tictactoe.Empty, tictactoe.Computer, tictactoe.Empty,
			tictactoe.Empty, tictactoe.Empty, tictactoe.Empty,
		},
		Difficulty: tictactoe.Harder,
		HumanWins:  2,
		FirstTurn:  tictactoe.Human,
	}

	// When: it is encoded
	data, err := json.Marshal(session)
	require.NoError(t, err)

	// Then: symbols and difficulty are written as text
	assert.JSONEq(t, `{
		"id": "abc",
		"board": ["X", "", "", "", "O", "", "", "", ""],
		"difficulty": "harder",
		"human_wins": 2,
		"computer_wins": 0,
		"ties": 0,
		"first_turn": "X",
		"game_over": false,
		"games_played": 0
	}`, string(data))
}
