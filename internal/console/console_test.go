package console

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/storage"
)

func newConsole(t *testing.T) (*Console, *bytes.Buffer) {
	t.Helper()
	s, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.SeedStandard())

	var out bytes.Buffer
	m := game.NewManager(s, zerolog.Nop())
	return New(m, s, &out, zerolog.Nop(), Options{NoColor: true}), &out
}

func run(t *testing.T, c *Console, out *bytes.Buffer, script ...string) string {
	t.Helper()
	out.Reset()
	require.NoError(t, c.Run(strings.NewReader(strings.Join(script, "\n"))))
	return out.String()
}

func TestNewAndMove(t *testing.T) {
	c, out := newConsole(t)
	got := run(t, c, out, "new standard alice bob", "move Pe2e4/", "fen")
	assert.Contains(t, got, "game 1: alice vs bob (DEFAULT), White to move")
	assert.Contains(t, got, "Pe2e4 (")
	assert.Contains(t, got, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
}

func TestScholarsMateRecorded(t *testing.T) {
	c, out := newConsole(t)
	got := run(t, c, out,
		"new",
		"move Pe2e4/", "move pe7e5/", "move Bf1c4/", "move nb8c6/",
		"move Qd1h5/", "move ng8f6/", "move Qh5xf7#",
		"status",
		"move pa7a6/",
		"stats",
	)
	assert.Contains(t, got, "Qh5xf7 checkmate")
	assert.Contains(t, got, "game over: WHITE_WON")
	assert.Contains(t, got, "checkmate: white=false black=true")
	assert.Contains(t, got, "error: game is over")
	assert.Contains(t, got, "games played: 1")
	assert.Contains(t, got, "white score: 100.0%")
	assert.Contains(t, got, "DEFAULT: 1")
}

func TestRejectedMove(t *testing.T) {
	c, out := newConsole(t)
	got := run(t, c, out, "new", "move pe7e5/", "move Ke1g1/")
	assert.Contains(t, got, "error: "+board.ErrWrongTurn.Error())
	assert.Contains(t, got, "error: ")
	assert.Equal(t, 3, strings.Count(got, "\n"))
}

func TestMovesAndBoard(t *testing.T) {
	c, out := newConsole(t)
	got := run(t, c, out, "new", "moves g1", "moves e7", "board e2")
	assert.Contains(t, got, "Ng1f3 Ng1h3")
	assert.Contains(t, got, "no moves")
	assert.Contains(t, got, "4  .  .  .  .  *  .  .  . ")
}

func TestGamesAndUse(t *testing.T) {
	c, out := newConsole(t)
	got := run(t, c, out, "new", "new", "games", "use 1", "move Pd2d4/", "games", "use 9")
	lines := strings.Split(got, "\n")
	assert.Contains(t, lines, "  1 white vs black DEFAULT ONGOING turn=White plies=0")
	assert.Contains(t, lines, "* 2 white vs black DEFAULT ONGOING turn=White plies=0")
	assert.Contains(t, lines, "* 1 white vs black DEFAULT ONGOING turn=Black plies=1")
	assert.Contains(t, got, "error: game not found: 9")
}

func TestStartStates(t *testing.T) {
	c, out := newConsole(t)
	got := run(t, c, out, "new", "move Pe2e4/", "savestate opening", "states", "new state 2", "status")
	assert.Contains(t, got, "saved start state 2")
	assert.Contains(t, got, "1 standard (W to move)")
	assert.Contains(t, got, "2 opening (B to move)")
	assert.Contains(t, got, "turn: Black")
}

func TestNewFromLayout(t *testing.T) {
	c, out := newConsole(t)
	tokens := make([]string, 64)
	tokens[board.E1] = "WK"
	tokens[board.H8] = "BK"
	layout := strings.Join(tokens, "/")

	got := run(t, c, out, "new layout "+layout+" B", "layout", "new layout WK W")
	assert.Contains(t, got, "Black to move")
	assert.Contains(t, got, layout)
	assert.Contains(t, got, "error: ")
}

func TestResignAndDraw(t *testing.T) {
	c, out := newConsole(t)
	got := run(t, c, out, "new", "resign", "new", "draw", "stats")
	assert.Contains(t, got, "White resigns, game over: BLACK_WON")
	assert.Contains(t, got, "game over: DRAW")
	assert.Contains(t, got, "games played: 2")
	assert.Contains(t, got, "draws: 1")
}

func TestImages(t *testing.T) {
	c, out := newConsole(t)
	dir := t.TempDir()
	svgPath := filepath.Join(dir, "board.svg")
	pngPath := filepath.Join(dir, "board.png")
	run(t, c, out, "new", "svg "+svgPath, "png "+pngPath)

	data, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")

	data, err = os.ReadFile(pngPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestMiscCommands(t *testing.T) {
	c, out := newConsole(t)
	got := run(t, c, out, "fen", "frobnicate", "help", "new", "perft 2", "quit", "board")
	assert.Contains(t, got, "error: no game selected")
	assert.Contains(t, got, "unknown command: frobnicate")
	assert.Contains(t, got, "commands:")
	assert.Contains(t, got, "nodes: 400")
	assert.NotContains(t, got, "8  r  n", "nothing runs after quit")
}

func TestBoardOptionsAndImageSize(t *testing.T) {
	c, out := newConsole(t)
	path := filepath.Join(t.TempDir(), "small.svg")
	got := run(t, c, out, "new", "board threats", "svg "+path+" 20", "svg "+path+" huge")
	assert.Contains(t, got, "6  +  +  +  +  +  +  +  + ")
	assert.Contains(t, got, "error: square size \"huge\"")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `viewBox="0 0 180 180"`)
}

func TestHelpAndClock(t *testing.T) {
	c, out := newConsole(t)
	got := run(t, c, out, "help", "new", "status")
	assert.Contains(t, got, "game types: 90+30, 60+0, 30+0, 15+10, 10+0, 5+3, 3+2, 1+0, DEFAULT (current DEFAULT)")
	assert.Contains(t, got, "clock: none")

	c.opts.GameType = game.TypeBlitz5
	got = run(t, c, out, "new", "status")
	assert.Contains(t, got, "clock: 5m0s + 3s per move")
}
