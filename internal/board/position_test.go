package board

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardInit(t *testing.T) {
	b, err := New(StandardLayout, "W")
	require.NoError(t, err)

	assert.Equal(t, Bitboard(0x000000000000FF00), b.Bitboard(WhitePawn))
	assert.Equal(t, Bitboard(0x10), b.Bitboard(WhiteKing))
	assert.Equal(t, Bitboard(0x1000000000000000), b.Bitboard(BlackKing))
	assert.Equal(t, Bitboard(0x00FF000000000000), b.Bitboard(BlackPawn))
	assert.Equal(t, Bitboard(0x81), b.Bitboard(WhiteRook))
	assert.Equal(t, AllCastling, b.CastlingRights())
	assert.Equal(t, White, b.Turn())
	assert.False(t, b.InCheck(White))
	assert.False(t, b.InCheck(Black))
	assert.False(t, b.InCheckmate(White))
	assert.Equal(t, Empty, b.Bitboard(NoPiece))
	require.NoError(t, b.validate())
}

func TestLayoutRoundTrip(t *testing.T) {
	b := NewStandard()
	assert.Equal(t, StandardLayout, b.Layout())

	require.True(t, b.ApplyMove("Pe2e4/"))
	again, err := New(b.Layout(), "B")
	require.NoError(t, err)
	assert.Equal(t, b.Bitboard(WhitePawn), again.Bitboard(WhitePawn))
	assert.Equal(t, Black, again.Turn())
}

func TestNewRejectsBadLayouts(t *testing.T) {
	short := strings.Repeat("/", 62)
	tests := []struct {
		name   string
		layout string
		side   string
	}{
		{"too few tokens", short, "W"},
		{"too many tokens", StandardLayout + "/", "W"},
		{"bad colour", strings.Replace(StandardLayout, "WK", "XK", 1), "W"},
		{"bad piece", strings.Replace(StandardLayout, "WK", "WX", 1), "W"},
		{"lower case piece", strings.Replace(StandardLayout, "WK", "Wk", 1), "W"},
		{"long token", strings.Replace(StandardLayout, "WK", "WKK", 1), "W"},
		{"bad side", StandardLayout, "white"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.layout, tc.side)
			assert.ErrorIs(t, err, ErrInvalidLayout)
		})
	}
}

func TestCastlingRightsFollowHomeSquares(t *testing.T) {
	// Kings at home, only the h1 and a8 rooks present.
	tokens := make([]string, 64)
	tokens[E1], tokens[H1] = "WK", "WR"
	tokens[E8], tokens[A8] = "BK", "BR"
	b, err := New(strings.Join(tokens, "/"), "W")
	require.NoError(t, err)
	assert.Equal(t, WhiteKingSideCastle|BlackQueenSideCastle, b.CastlingRights())
	assert.Equal(t, "Kq", b.CastlingRights().String())
}

func TestMatrix(t *testing.T) {
	m := NewStandard().Matrix()
	assert.Equal(t, "rnbqkbnr", string(m[0][:]))
	assert.Equal(t, "pppppppp", string(m[1][:]))
	assert.Equal(t, "        ", string(m[4][:]))
	assert.Equal(t, "RNBQKBNR", string(m[7][:]))
}

func TestInitialCheckFlags(t *testing.T) {
	// Black to move, already mated on the back rank.
	b, err := FromFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	require.NoError(t, err)
	assert.True(t, b.InCheck(Black))
	assert.True(t, b.InCheckmate(Black))
	assert.False(t, b.InCheck(White))
}
