// Package render draws a board as coloured text, SVG or PNG.
package render

import (
	"github.com/hailam/chessrules/internal/board"
)

// Options controls what is drawn.
type Options struct {
	// Highlight marks squares, typically the legal destinations of a piece.
	Highlight board.Bitboard
	// Threats marks the squares the side not to move attacks.
	Threats bool
	// NoColor turns off ANSI colours in Text.
	NoColor bool
	// SquareSize is the edge of one square in pixels for SVG and PNG.
	SquareSize int
}

const defaultSquareSize = 60

func (o Options) squareSize() int {
	if o.SquareSize <= 0 {
		return defaultSquareSize
	}
	return o.SquareSize
}

// Board palette
const (
	lightSquare     = "#f0d9b5"
	darkSquare      = "#b58863"
	highlightSquare = "#cdd26a"
	threatSquare    = "#e07b6a"
	checkSquare     = "#d9443a"
)

type squareKind int

const (
	plainSquare squareKind = iota
	highlighted
	threatened
	kingInCheck
)

// classify decides how each square is painted. A king in check wins over a
// highlight, which wins over a threat.
func classify(b *board.Board, opts Options) [64]squareKind {
	var kinds [64]squareKind
	if opts.Threats {
		by := b.Turn().Other()
		for sq := board.A1; sq <= board.H8; sq++ {
			if b.IsSquareAttacked(sq, by) {
				kinds[sq] = threatened
			}
		}
	}
	for bb := opts.Highlight; bb != 0; {
		kinds[bb.PopLSB()] = highlighted
	}
	for c := board.White; c <= board.Black; c++ {
		if !b.InCheck(c) {
			continue
		}
		if sq := b.Bitboard(board.NewPiece(board.King, c)).LSB(); sq != board.NoSquare {
			kinds[sq] = kingInCheck
		}
	}
	return kinds
}

func isLight(sq board.Square) bool {
	return (sq.File()+sq.Rank())%2 == 1
}

func fill(sq board.Square, kind squareKind) string {
	switch kind {
	case highlighted:
		return highlightSquare
	case threatened:
		return threatSquare
	case kingInCheck:
		return checkSquare
	}
	if isLight(sq) {
		return lightSquare
	}
	return darkSquare
}

var glyphs = map[board.Piece]string{
	board.WhiteKing: "♔", board.WhiteQueen: "♕", board.WhiteRook: "♖",
	board.WhiteBishop: "♗", board.WhiteKnight: "♘", board.WhitePawn: "♙",
	board.BlackKing: "♚", board.BlackQueen: "♛", board.BlackRook: "♜",
	board.BlackBishop: "♝", board.BlackKnight: "♞", board.BlackPawn: "♟",
}
