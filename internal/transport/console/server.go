package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

var errQuit = errors.New("quit")

type gameManager interface {
	Start(ctx context.Context, sessionID string) (*usecase.Result, error)
	NewGame(ctx context.Context) (*usecase.Result, error)
	HumanMove(ctx context.Context, location int) (*usecase.Result, error)
	SetDifficulty(ctx context.Context, level tictactoe.DifficultyLevel) error
	ResetScores(ctx context.Context) error
	Session() entity.Session
}

type handler func(ctx context.Context, args []string) error

// Server plays the match on a line-oriented terminal.
type Server struct {
	logger  *slog.Logger
	manager gameManager

	in  io.Reader
	out *termenv.Output

	handlers map[string]handler
}

type Option func(*options)

type options struct {
	noColor bool
}

// WithoutColor renders plain ASCII regardless of the terminal.
func WithoutColor() Option {
	return func(o *options) {
		o.noColor = true
	}
}

func New(logger *slog.Logger, manager gameManager, in io.Reader, out io.Writer, opts ...Option) *Server {
	var conf options
	for _, opt := range opts {
		opt(&conf)
	}

	outputOpts := []termenv.OutputOption{termenv.WithColorCache(true)}
	if conf.noColor {
		outputOpts = append(outputOpts, termenv.WithProfile(termenv.Ascii))
	}

	server := &Server{
		logger:  logger.With("component", "console"),
		manager: manager,
		in:      in,
		out:     termenv.NewOutput(out, outputOpts...),
	}

	server.handlers = map[string]handler{
		"new":        server.handleNewGame,
		"difficulty": server.handleDifficulty,
		"score":      server.handleScore,
		"reset":      server.handleReset,
		"board":      server.handleBoard,
		"help":       server.handleHelp,
		"quit":       server.handleQuit,
		"exit":       server.handleQuit,
	}

	return server
}

// Run starts or resumes the session and processes commands until quit, end of
// input or context cancellation.
func (that *Server) Run(ctx context.Context, sessionID string) error {
	log := that.logger.With("method", "Run")

	result, err := that.manager.Start(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	that.printf("Tic-tac-toe. You are %s, the computer is %s. Type help for commands.\n",
		tictactoe.Human, tictactoe.Computer)
	if result.Resumed {
		that.printf("Resumed session %s.\n", result.Session.ID)
	} else {
		that.printf("Session %s.\n", result.Session.ID)
	}
	that.renderResult(result, true)

	// the reader must not outlive Run when input continues after quit
	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()

	lines, scanErr := that.readLines(readCtx)

	for {
		that.printf("> ")

		select {
		case <-ctx.Done():
			log.Info("context canceled, leaving console")
			return nil
		case line, ok := <-lines:
			if !ok {
				if err = <-scanErr; err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}

				return nil
			}

			if err = that.handleLine(ctx, line); errors.Is(err, errQuit) {
				that.printf("Bye.\n")
				return nil
			}
		}
	}
}

// readLines - scans input in the background so that Run can honour ctx.
func (that *Server) readLines(ctx context.Context) (<-chan string, <-chan error) {
	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		var err error
		defer func() {
			scanErr <- err
			close(lines)
		}()

		scanner := bufio.NewScanner(that.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		err = scanner.Err()
	}()

	return lines, scanErr
}

func (that *Server) handleLine(ctx context.Context, line string) error {
	log := that.logger.With("method", "handleLine")

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	name := strings.ToLower(fields[0])

	var err error
	if cell, convErr := strconv.Atoi(name); convErr == nil {
		err = that.handleMove(ctx, cell)
	} else if h, ok := that.handlers[name]; ok {
		err = h(ctx, fields[1:])
	} else {
		that.printf("Unknown command %q. Type help for commands.\n", fields[0])
		return nil
	}

	if err == nil || errors.Is(err, errQuit) {
		return err
	}

	message, known := userMessage(err)
	if !known {
		log.Error("command failed", "command", name, "error", err)
	}

	that.printf("%s\n", message)

	return nil
}

func (that *Server) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(that.out, format, args...)
}
