package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/storage"
)

// Game is one session. All methods are safe for concurrent use; moves on
// the same game are applied one at a time.
type Game struct {
	mu sync.Mutex

	id         int64
	white      string
	black      string
	gameType   GameType
	startState int64

	board  board.Board
	status Status
	plies  int

	startedAt  time.Time
	lastMoveAt time.Time

	recorder Recorder
	logger   zerolog.Logger
	now      func() time.Time
}

// Recorder receives the summary of every finished game.
type Recorder interface {
	RecordGame(rec storage.GameRecord) error
}

// MoveResult describes an applied move.
type MoveResult struct {
	Move      string
	Side      board.Color
	Capture   bool
	Castling  bool
	Elapsed   time.Duration
	Check     bool
	Checkmate bool
	Status    Status
}

// Snapshot is a copy of a game's state taken under its lock.
type Snapshot struct {
	ID         int64
	White      string
	Black      string
	Type       GameType
	StartState int64
	Status     Status
	Turn       board.Color
	Layout     string
	FEN        string
	Check      [2]bool
	Checkmate  [2]bool
	Castling   board.CastlingRights
	Plies      int
	StartedAt  time.Time
	LastMoveAt time.Time
}

// ID returns the game id.
func (g *Game) ID() int64 {
	return g.id
}

// Move applies notation for the side to move. A rejected move returns the
// board error and leaves the game unchanged.
func (g *Game) Move(notation string) (MoveResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status.Over() {
		return MoveResult{}, fmt.Errorf("%w: %s", ErrGameOver, g.status)
	}

	side := g.board.Turn()
	mi, err := g.board.Apply(notation)
	if err != nil {
		g.logger.Warn().Err(err).Str("notation", notation).Stringer("side", side).Msg("move rejected")
		return MoveResult{}, err
	}

	now := g.now()
	res := MoveResult{
		Move:      mi.String(),
		Side:      side,
		Capture:   mi.Capture,
		Castling:  mi.Castling,
		Elapsed:   now.Sub(g.lastMoveAt),
		Check:     g.board.InCheck(side.Other()),
		Checkmate: g.board.InCheckmate(side.Other()),
	}
	g.lastMoveAt = now
	g.plies++

	g.logger.Debug().
		Str("move", res.Move).
		Stringer("side", side).
		Int64("elapsed_ms", res.Elapsed.Milliseconds()).
		Msg("move applied")

	if res.Checkmate {
		winner := WhiteWon
		if side == board.Black {
			winner = BlackWon
		}
		g.logger.Info().Stringer("winner", side).Int("plies", g.plies).Msg("checkmate")
		g.finish(winner)
	}
	res.Status = g.status
	return res, nil
}

// Resign ends the game in favour of c's opponent.
func (g *Game) Resign(c board.Color) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.status.Over() {
		return fmt.Errorf("%w: %s", ErrGameOver, g.status)
	}
	result := WhiteWon
	if c == board.White {
		result = BlackWon
	}
	g.logger.Info().Stringer("side", c).Msg("resigned")
	g.finish(result)
	return nil
}

// AgreeDraw ends the game as a draw.
func (g *Game) AgreeDraw() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.status.Over() {
		return fmt.Errorf("%w: %s", ErrGameOver, g.status)
	}
	g.logger.Info().Msg("draw agreed")
	g.finish(Draw)
	return nil
}

// finish sets the final status and records the game. g.mu must be held.
func (g *Game) finish(status Status) {
	g.status = status
	if g.recorder == nil {
		return
	}
	rec := storage.GameRecord{
		ID:        g.id,
		White:     g.white,
		Black:     g.black,
		Type:      string(g.gameType),
		Status:    status.String(),
		Plies:     g.plies,
		StartedAt: g.startedAt,
		EndedAt:   g.now(),
	}
	if err := g.recorder.RecordGame(rec); err != nil {
		g.logger.Error().Err(err).Msg("record game")
	}
}

// Snapshot copies the current state.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Snapshot{
		ID:         g.id,
		White:      g.white,
		Black:      g.black,
		Type:       g.gameType,
		StartState: g.startState,
		Status:     g.status,
		Turn:       g.board.Turn(),
		Layout:     g.board.Layout(),
		FEN:        g.board.FEN(),
		Check:      [2]bool{g.board.InCheck(board.White), g.board.InCheck(board.Black)},
		Checkmate:  [2]bool{g.board.InCheckmate(board.White), g.board.InCheckmate(board.Black)},
		Castling:   g.board.CastlingRights(),
		Plies:      g.plies,
		StartedAt:  g.startedAt,
		LastMoveAt: g.lastMoveAt,
	}
}

// Board returns a copy of the board for read-only use such as rendering.
func (g *Game) Board() board.Board {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board
}

// PossibleMoves lists the legal destinations of the piece on cell.
func (g *Game) PossibleMoves(cell string) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.PossibleMoves(cell)
}

// PossibleMovesWithNotation lists the legal moves of the piece on cell.
func (g *Game) PossibleMovesWithNotation(cell string) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.PossibleMovesWithNotation(cell)
}
