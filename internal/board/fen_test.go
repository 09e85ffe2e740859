package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFENStart(t *testing.T) {
	b, err := FromFEN(StartFEN)
	require.NoError(t, err)
	assert.Equal(t, *NewStandard(), *b)
	assert.Equal(t, StartFEN, b.FEN())
}

func TestFENAfterMoves(t *testing.T) {
	b := NewStandard()
	play(t, b, "Pe2e4/", "pc7c5/", "Ng1f3/")
	assert.Equal(t, "rnbqkbnr/pp1ppppp/8/2p5/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 0 1", b.FEN())

	again, err := FromFEN(b.FEN())
	require.NoError(t, err)
	assert.Equal(t, *b, *again)
}

func TestFENCastlingNeedsHomePieces(t *testing.T) {
	b, err := FromFEN("4k3/8/8/8/8/8/8/4K2R w KQkq - 0 1")
	require.NoError(t, err)
	assert.Equal(t, WhiteKingSideCastle, b.CastlingRights())
}

func TestFENRejects(t *testing.T) {
	for _, fen := range []string{
		"",
		"8/8/8/8/8/8/8 w - -",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQxq - 0 1",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNZ w KQkq - 0 1",
	} {
		t.Run(fen, func(t *testing.T) {
			_, err := FromFEN(fen)
			assert.ErrorIs(t, err, ErrInvalidFEN)
		})
	}
}
