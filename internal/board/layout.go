package board

import (
	"fmt"
	"strings"
)

// StandardLayout is the starting position as a layout string.
const StandardLayout = "WR/WN/WB/WQ/WK/WB/WN/WR/WP/WP/WP/WP/WP/WP/WP/WP/" +
	"///////////////////////////////" +
	"/BP/BP/BP/BP/BP/BP/BP/BP/BR/BN/BB/BQ/BK/BB/BN/BR"

// New builds a board from a layout and the side to start ("W" or "B").
//
// A layout is 64 '/'-separated tokens for a1, b1, ..., h8. Each token is
// empty or a side letter followed by a piece letter, e.g. "WK" or "BP".
// A castling right is granted when its king and rook stand on their home
// squares.
func New(layout, side string) (*Board, error) {
	tokens := strings.Split(layout, "/")
	if len(tokens) != 64 {
		return nil, fmt.Errorf("%w: need 64 tokens, got %d", ErrInvalidLayout, len(tokens))
	}

	b := &Board{}
	for i, tok := range tokens {
		p, err := pieceFromToken(tok)
		if err != nil {
			return nil, fmt.Errorf("square %s: %w", Square(i), err)
		}
		b.setPiece(p, Square(i))
	}

	c, err := ParseColor(side)
	if err != nil {
		return nil, err
	}
	b.sideToMove = c
	b.castling = b.homeRights()
	b.refresh()
	return b, nil
}

// homeRights returns the rights whose king and rook are on their home squares.
func (b *Board) homeRights() CastlingRights {
	var cr CastlingRights
	for c := White; c <= Black; c++ {
		for side := KingSide; side <= QueenSide; side++ {
			cs := castles[c][side]
			if b.pieces[c][King].IsSet(cs.kingFrom) && b.pieces[c][Rook].IsSet(cs.rookFrom) {
				cr |= cs.right
			}
		}
	}
	return cr
}

// Layout writes the board back as a 64-token layout string.
func (b *Board) Layout() string {
	tokens := make([]string, 64)
	for sq := A1; sq <= H8; sq++ {
		tokens[sq] = b.PieceAt(sq).Token()
	}
	return strings.Join(tokens, "/")
}
