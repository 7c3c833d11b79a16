package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var ErrNotStarted = errors.New("game manager is not started")

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

// Result describes what changed on the board after a manager call.
type Result struct {
	HumanCell    int
	ComputerCell int
	Outcome      tictactoe.Outcome
	Resumed      bool
	Session      entity.Session
}

// GameManager runs a match of consecutive games between the human and the
// engine: it alternates the opener, keeps the tallies and saves the session
// after every change.
type GameManager struct {
	mu sync.Mutex

	logger      *slog.Logger
	engine      *tictactoe.Engine
	sessionRepo sessionRepo

	session *entity.Session
}

func NewGameManager(logger *slog.Logger, engine *tictactoe.Engine, sessionRepo sessionRepo) *GameManager {
	return &GameManager{
		logger:      logger.With("component", "game_manager"),
		engine:      engine,
		sessionRepo: sessionRepo,
	}
}

// Start resumes the session with the given ID, or opens a new session and its
// first game when the ID is empty or unknown. A stored session that cannot be
// restored is deleted and replaced by a new one under the same ID.
func (that *GameManager) Start(ctx context.Context, sessionID string) (*Result, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "Start")

	if sessionID != "" {
		session, err := that.sessionRepo.GetByID(ctx, sessionID)
		switch {
		case err == nil:
			restoreErr := that.restore(session)
			if restoreErr == nil {
				log.Info("session resumed", "sessionID", session.ID)

				return that.result(tictactoe.NoMove, tictactoe.NoMove, true), nil
			}

			log.Warn("discarding session that cannot be restored", "sessionID", sessionID, "error", restoreErr)

			if err = that.sessionRepo.DeleteByID(ctx, sessionID); err != nil {
				return nil, fmt.Errorf("failed to delete broken session: %w", err)
			}
		case errors.Is(err, repository.ErrSessionNotFound):
			log.Info("session not found, starting a new one", "sessionID", sessionID)
		default:
			return nil, fmt.Errorf("failed to get session by id: %w", err)
		}
	}

	if sessionID == "" {
		sessionID = pkg.GenerateNewSessionID()
	}

	that.session = entity.NewSession(sessionID, that.engine.DifficultyLevel())

	log.Info("session created", "sessionID", sessionID)

	return that.newGame(ctx)
}

// NewGame clears the board and starts the next game of the match.
func (that *GameManager) NewGame(ctx context.Context) (*Result, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.session == nil {
		return nil, ErrNotStarted
	}

	return that.newGame(ctx)
}

func (that *GameManager) newGame(ctx context.Context) (*Result, error) {
	log := that.logger.With("method", "newGame", "sessionID", that.session.ID)

	that.engine.ClearBoard()

	opener := that.session.NextFirstTurn()
	that.session.FirstTurn = opener
	that.session.GameOver = false

	computerCell := tictactoe.NoMove
	if opener == tictactoe.Computer {
		move, err := that.engine.ComputerMove()
		if err != nil {
			return nil, fmt.Errorf("computer failed to make first move: %w", err)
		}

		computerCell = move
	}

	if err := that.save(ctx); err != nil {
		return nil, err
	}

	log.Info("new game started", "opener", string(opener), "difficulty", that.engine.DifficultyLevel().String())

	return that.result(tictactoe.NoMove, computerCell, false), nil
}

// HumanMove places the human mark and, if the game goes on, answers with the
// computer's move.
func (that *GameManager) HumanMove(ctx context.Context, location int) (*Result, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.session == nil {
		return nil, ErrNotStarted
	}

	log := that.logger.With("method", "HumanMove", "sessionID", that.session.ID)

	if that.session.GameOver {
		return nil, apperror.ErrGameFinished
	}

	if err := that.engine.Play(tictactoe.Human, location); err != nil {
		return nil, fmt.Errorf("failed to make human move: %w", err)
	}

	computerCell := tictactoe.NoMove
	outcome := that.engine.CheckOutcome()
	if outcome == tictactoe.Undecided {
		move, err := that.engine.ComputerMove()
		if err != nil {
			return nil, fmt.Errorf("computer failed to make move: %w", err)
		}

		computerCell = move
		outcome = that.engine.CheckOutcome()
	}

	that.session.RecordOutcome(outcome)

	if err := that.save(ctx); err != nil {
		return nil, err
	}

	if outcome.IsFinished() {
		log.Info("game finished", "outcome", outcome.String())
	}

	return that.result(location, computerCell, false), nil
}

// SetDifficulty changes the policy used from the computer's next move on.
func (that *GameManager) SetDifficulty(ctx context.Context, level tictactoe.DifficultyLevel) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.session == nil {
		return ErrNotStarted
	}

	if err := that.engine.SetDifficultyLevel(level); err != nil {
		return fmt.Errorf("failed to set difficulty: %w", err)
	}

	return that.save(ctx)
}

func (that *GameManager) ResetScores(ctx context.Context) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.session == nil {
		return ErrNotStarted
	}

	that.session.ResetScores()

	return that.save(ctx)
}

// Session returns a copy of the current session.
func (that *GameManager) Session() entity.Session {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.session == nil {
		return entity.Session{}
	}

	return *that.session
}

func (that *GameManager) restore(session *entity.Session) error {
	if err := that.engine.LoadBoard(session.Board); err != nil {
		return fmt.Errorf("failed to load board: %w", err)
	}

	if err := that.engine.SetDifficultyLevel(session.Difficulty); err != nil {
		return fmt.Errorf("failed to load difficulty: %w", err)
	}

	that.session = session

	return nil
}

func (that *GameManager) save(ctx context.Context) error {
	that.session.Board = that.engine.Board()
	that.session.Difficulty = that.engine.DifficultyLevel()

	if err := that.sessionRepo.CreateOrUpdate(ctx, that.session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (that *GameManager) result(humanCell, computerCell int, resumed bool) *Result {
	return &Result{
		HumanCell:    humanCell,
		ComputerCell: computerCell,
		Outcome:      that.engine.CheckOutcome(),
		Resumed:      resumed,
		Session:      *that.session,
	}
}
