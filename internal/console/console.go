// Package console runs games from a line-based command protocol, one
// command per line, replies written to the output.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/render"
	"github.com/hailam/chessrules/internal/storage"
)

var errNoGame = errors.New("no game selected, use new or use <id>")

// Store is the part of storage the console reads and writes directly.
type Store interface {
	ListStartStates() ([]storage.StartState, error)
	SaveStartState(st *storage.StartState) error
	LoadStats() (*storage.GameStats, error)
}

// Options tunes the console.
type Options struct {
	GameType game.GameType
	NoColor  bool
}

// Console reads commands and drives the manager.
type Console struct {
	manager *game.Manager
	store   Store
	out     io.Writer
	logger  zerolog.Logger
	opts    Options
	printer *message.Printer

	current *game.Game
}

// New creates a console. store may be nil; the commands that need it then
// report an error.
func New(m *game.Manager, store Store, out io.Writer, logger zerolog.Logger, opts Options) *Console {
	if opts.GameType == "" {
		opts.GameType = game.TypeDefault
	}
	return &Console{
		manager: m,
		store:   store,
		out:     out,
		logger:  logger,
		opts:    opts,
		printer: message.NewPrinter(language.English),
	}
}

// Run reads commands until quit or end of input.
func (c *Console) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]
		if cmd == "quit" || cmd == "exit" {
			return nil
		}
		if err := c.dispatch(cmd, args); err != nil {
			c.logger.Debug().Err(err).Str("cmd", cmd).Msg("command failed")
			fmt.Fprintf(c.out, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

func (c *Console) dispatch(cmd string, args []string) error {
	switch cmd {
	case "new":
		return c.handleNew(args)
	case "use":
		return c.handleUse(args)
	case "games":
		return c.handleGames()
	case "move":
		return c.handleMove(args)
	case "moves":
		return c.handleMoves(args)
	case "board", "d":
		return c.handleBoard(args)
	case "layout":
		return c.withSnapshot(func(s game.Snapshot) { fmt.Fprintln(c.out, s.Layout) })
	case "fen":
		return c.withSnapshot(func(s game.Snapshot) { fmt.Fprintln(c.out, s.FEN) })
	case "status":
		return c.withSnapshot(c.printStatus)
	case "svg", "png":
		return c.handleImage(cmd, args)
	case "resign":
		return c.handleResign()
	case "draw":
		return c.handleDraw()
	case "states":
		return c.handleStates()
	case "savestate":
		return c.handleSaveState(args)
	case "stats":
		return c.handleStats()
	case "perft":
		return c.handlePerft(args)
	case "help":
		c.printHelp()
		return nil
	default:
		fmt.Fprintf(c.out, "unknown command: %s\n", cmd)
		return nil
	}
}

const helpText = `commands:
  new [standard|state <id>|layout <layout> <W|B>] [white] [black]
  use <id>            switch to a running game
  games               list running games
  move <notation>     play a move, e.g. move Pe2e4/ or move O-O/
  moves <cell>        list the legal moves of the piece on cell
  board [cell] [threats]
                      show the board, highlighting cell's moves and
                      the squares the opponent attacks
  layout | fen        print the position
  status              side to move, check and castling state
  svg <file> [size]   write the board as SVG, size is the square edge in px
  png <file> [size]   write the board as PNG
  resign | draw       end the game
  states              list stored start positions
  savestate <name>    store the current position as a start position
  stats               finished game statistics
  perft <depth>       count positions
  quit
`

func (c *Console) printHelp() {
	fmt.Fprint(c.out, helpText)
	types := make([]string, 0, len(game.GameTypes()))
	for _, t := range game.GameTypes() {
		types = append(types, string(t))
	}
	fmt.Fprintf(c.out, "game types: %s (current %s)\n", strings.Join(types, ", "), c.opts.GameType)
}

func (c *Console) game() (*game.Game, error) {
	if c.current == nil {
		return nil, errNoGame
	}
	return c.current, nil
}

func (c *Console) withSnapshot(fn func(game.Snapshot)) error {
	g, err := c.game()
	if err != nil {
		return err
	}
	fn(g.Snapshot())
	return nil
}

// handleNew parses the start position then the optional player names.
func (c *Console) handleNew(args []string) error {
	opts := game.Options{Type: c.opts.GameType}
	if len(args) > 0 {
		switch args[0] {
		case "standard":
			args = args[1:]
		case "state":
			if len(args) < 2 {
				return errors.New("usage: new state <id> [white] [black]")
			}
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("start state id %q: %w", args[1], err)
			}
			opts.StartStateID = id
			args = args[2:]
		case "layout":
			if len(args) < 3 {
				return errors.New("usage: new layout <layout> <W|B> [white] [black]")
			}
			opts.Layout = args[1]
			opts.Side = args[2]
			args = args[3:]
		}
	}
	if len(args) > 0 {
		opts.White = args[0]
	}
	if len(args) > 1 {
		opts.Black = args[1]
	}

	g, err := c.manager.Create(opts)
	if err != nil {
		return err
	}
	c.current = g
	s := g.Snapshot()
	fmt.Fprintf(c.out, "game %d: %s vs %s (%s), %s to move\n", s.ID, s.White, s.Black, s.Type, s.Turn)
	return nil
}

func (c *Console) handleUse(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: use <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("game id %q: %w", args[0], err)
	}
	g, err := c.manager.Get(id)
	if err != nil {
		return err
	}
	c.current = g
	fmt.Fprintf(c.out, "using game %d\n", id)
	return nil
}

func (c *Console) handleGames() error {
	snaps := c.manager.Snapshots()
	if len(snaps) == 0 {
		fmt.Fprintln(c.out, "no games")
		return nil
	}
	for _, s := range snaps {
		marker := " "
		if c.current != nil && c.current.ID() == s.ID {
			marker = "*"
		}
		fmt.Fprintf(c.out, "%s %d %s vs %s %s %s turn=%s plies=%d\n",
			marker, s.ID, s.White, s.Black, s.Type, s.Status, s.Turn, s.Plies)
	}
	return nil
}

func (c *Console) handleMove(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: move <notation>")
	}
	g, err := c.game()
	if err != nil {
		return err
	}
	res, err := g.Move(args[0])
	if err != nil {
		return err
	}

	line := res.Move
	switch {
	case res.Checkmate:
		line += " checkmate"
	case res.Check:
		line += " check"
	}
	fmt.Fprintf(c.out, "%s (%s)\n", line, res.Elapsed.Round(time.Millisecond))
	if res.Status.Over() {
		fmt.Fprintf(c.out, "game over: %s\n", res.Status)
	}
	return nil
}

func (c *Console) handleMoves(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: moves <cell>")
	}
	g, err := c.game()
	if err != nil {
		return err
	}
	moves, err := g.PossibleMovesWithNotation(args[0])
	if err != nil {
		return err
	}
	if len(moves) == 0 {
		fmt.Fprintln(c.out, "no moves")
		return nil
	}
	fmt.Fprintln(c.out, strings.Join(moves, " "))
	return nil
}

func (c *Console) handleBoard(args []string) error {
	g, err := c.game()
	if err != nil {
		return err
	}
	b := g.Board()
	opts := render.Options{NoColor: c.opts.NoColor}
	for _, arg := range args {
		if arg == "threats" {
			opts.Threats = true
			continue
		}
		sq, err := board.ParseSquare(arg)
		if err != nil {
			return err
		}
		opts.Highlight = b.LegalDestinations(sq)
	}
	fmt.Fprint(c.out, render.Text(&b, opts))
	return nil
}

func (c *Console) printStatus(s game.Snapshot) {
	fmt.Fprintf(c.out, "game %d: %s\n", s.ID, s.Status)
	if base, inc := s.Type.Clock(); base > 0 {
		fmt.Fprintf(c.out, "clock: %s + %s per move\n", base, inc)
	} else {
		fmt.Fprintln(c.out, "clock: none")
	}
	fmt.Fprintf(c.out, "turn: %s\n", s.Turn)
	fmt.Fprintf(c.out, "check: white=%t black=%t\n", s.Check[board.White], s.Check[board.Black])
	fmt.Fprintf(c.out, "checkmate: white=%t black=%t\n", s.Checkmate[board.White], s.Checkmate[board.Black])
	fmt.Fprintf(c.out, "castling: %s\n", s.Castling)
	fmt.Fprintf(c.out, "plies: %d\n", s.Plies)
}

func (c *Console) handleImage(kind string, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: %s <file> [size]", kind)
	}
	var opts render.Options
	if len(args) == 2 {
		size, err := strconv.Atoi(args[1])
		if err != nil || size < 8 || size > 512 {
			return fmt.Errorf("square size %q: want 8..512", args[1])
		}
		opts.SquareSize = size
	}
	g, err := c.game()
	if err != nil {
		return err
	}
	b := g.Board()

	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	if kind == "svg" {
		render.SVG(f, &b, opts)
	} else if err := render.PNG(f, &b, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "wrote %s\n", args[0])
	return nil
}

func (c *Console) handleResign() error {
	g, err := c.game()
	if err != nil {
		return err
	}
	side := g.Snapshot().Turn
	if err := g.Resign(side); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s resigns, game over: %s\n", side, g.Snapshot().Status)
	return nil
}

func (c *Console) handleDraw() error {
	g, err := c.game()
	if err != nil {
		return err
	}
	if err := g.AgreeDraw(); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "game over: DRAW")
	return nil
}

func (c *Console) handleStates() error {
	if c.store == nil {
		return errors.New("no storage")
	}
	states, err := c.store.ListStartStates()
	if err != nil {
		return err
	}
	for _, st := range states {
		fmt.Fprintf(c.out, "%d %s (%s to move)\n", st.ID, st.Name, st.SideToMove)
	}
	return nil
}

func (c *Console) handleSaveState(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: savestate <name>")
	}
	if c.store == nil {
		return errors.New("no storage")
	}
	g, err := c.game()
	if err != nil {
		return err
	}
	s := g.Snapshot()
	st := &storage.StartState{Name: args[0], Layout: s.Layout, SideToMove: s.Turn.Token()}
	if err := c.store.SaveStartState(st); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "saved start state %d\n", st.ID)
	return nil
}

func (c *Console) handleStats() error {
	if c.store == nil {
		return errors.New("no storage")
	}
	stats, err := c.store.LoadStats()
	if err != nil {
		return err
	}
	p := c.printer
	p.Fprintf(c.out, "games played: %d\n", stats.GamesPlayed)
	p.Fprintf(c.out, "white wins: %d, black wins: %d, draws: %d\n", stats.WhiteWins, stats.BlackWins, stats.Draws)
	p.Fprintf(c.out, "white score: %.1f%%\n", stats.WhiteScore())
	p.Fprintf(c.out, "longest game: %d plies\n", stats.LongestGame)
	p.Fprintf(c.out, "total play time: %s\n", stats.TotalPlayTime.Round(time.Second))

	types := make([]string, 0, len(stats.GamesByType))
	for t := range stats.GamesByType {
		types = append(types, t)
	}
	slices.Sort(types)
	for _, t := range types {
		p.Fprintf(c.out, "  %s: %d\n", t, stats.GamesByType[t])
	}
	return nil
}

func (c *Console) handlePerft(args []string) error {
	g, err := c.game()
	if err != nil {
		return err
	}
	depth := 3
	if len(args) > 0 {
		if depth, err = strconv.Atoi(args[0]); err != nil || depth < 1 {
			return fmt.Errorf("perft depth %q", args[0])
		}
	}
	b := g.Board()

	start := time.Now()
	nodes := board.Perft(&b, depth)
	elapsed := time.Since(start)

	c.printer.Fprintf(c.out, "nodes: %d\n", nodes)
	fmt.Fprintf(c.out, "time: %v\n", elapsed.Round(time.Millisecond))
	return nil
}
