package board

import (
	"fmt"
	"strings"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling field.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, side CastleSide) bool {
	return cr&castles[c][side].right != 0
}

// rightsOf returns both castling rights of a color.
func rightsOf(c Color) CastlingRights {
	if c == White {
		return WhiteKingSideCastle | WhiteQueenSideCastle
	}
	return BlackKingSideCastle | BlackQueenSideCastle
}

// colorFlags holds one bit per color.
type colorFlags uint8

func (f colorFlags) has(c Color) bool {
	return f&(1<<c) != 0
}

func (f colorFlags) with(c Color, on bool) colorFlags {
	if on {
		return f | 1<<c
	}
	return f &^ (1 << c)
}

// Board is the state of one game. It is a plain value: assigning it makes an
// independent copy, which is how every move is simulated before it is
// committed. A Board is not safe for concurrent use.
type Board struct {
	// Piece bitboards: [Color][PieceType]
	pieces [2][6]Bitboard

	sideToMove Color
	castling   CastlingRights

	// Derived after every committed move.
	check colorFlags
	mate  colorFlags
}

// NewStandard returns the standard starting position with white to move.
func NewStandard() *Board {
	b, err := New(StandardLayout, "W")
	if err != nil {
		panic(err)
	}
	return b
}

// Bitboard returns the occupancy mask of a piece.
func (b *Board) Bitboard(p Piece) Bitboard {
	if p >= NoPiece {
		return Empty
	}
	return b.pieces[p.Color()][p.Type()]
}

// Turn returns the side to move.
func (b *Board) Turn() Color {
	return b.sideToMove
}

// CastlingRights returns the rights still granted.
func (b *Board) CastlingRights() CastlingRights {
	return b.castling
}

// InCheck reports the check flag of c as of the last committed move.
func (b *Board) InCheck(c Color) bool {
	return b.check.has(c)
}

// InCheckmate reports the checkmate flag of c as of the last committed move.
func (b *Board) InCheckmate(c Color) bool {
	return b.mate.has(c)
}

// occupancy returns all squares held by c.
func (b *Board) occupancy(c Color) Bitboard {
	p := &b.pieces[c]
	return p[Pawn] | p[Knight] | p[Bishop] | p[Rook] | p[Queen] | p[King]
}

// Occupied returns every occupied square.
func (b *Board) Occupied() Bitboard {
	return b.occupancy(White) | b.occupancy(Black)
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (b *Board) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			if b.pieces[c][pt]&bb != 0 {
				return NewPiece(pt, c)
			}
		}
	}
	return NoPiece
}

// setPiece places a piece on an empty square.
func (b *Board) setPiece(p Piece, sq Square) {
	if p == NoPiece {
		return
	}
	b.pieces[p.Color()][p.Type()] |= SquareBB(sq)
}

// removePiece clears sq from whichever mask holds it.
func (b *Board) removePiece(sq Square) Piece {
	p := b.PieceAt(sq)
	if p != NoPiece {
		b.pieces[p.Color()][p.Type()] &^= SquareBB(sq)
	}
	return p
}

// Matrix renders the board as an 8x8 grid of piece letters, rank 8 in row 0.
// White is upper case, black lower case and empty squares are spaces.
func (b *Board) Matrix() [8][8]byte {
	var m [8][8]byte
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			m[7-rank][file] = b.PieceAt(NewSquare(file, rank)).Char()
		}
	}
	return m
}

// refresh recomputes the check and checkmate flags for both colors.
func (b *Board) refresh() {
	for c := White; c <= Black; c++ {
		inCheck := b.IsKingInCheck(c)
		b.check = b.check.with(c, inCheck)
		b.mate = b.mate.with(c, inCheck && b.isCheckmated(c))
	}
}

// String returns the board with coordinates and the game flags.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	m := b.Matrix()
	for row := 0; row < 8; row++ {
		fmt.Fprintf(&sb, "%d ", 8-row)
		for file := 0; file < 8; file++ {
			ch := m[row][file]
			if ch == ' ' {
				ch = '.'
			}
			sb.WriteByte(ch)
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d\n", 8-row)
	}
	sb.WriteString("  a b c d e f g h\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", b.sideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", b.castling)
	return sb.String()
}

// validate checks that no square is held by two pieces.
func (b *Board) validate() error {
	var seen Bitboard
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			if seen&b.pieces[c][pt] != 0 {
				return fmt.Errorf("%w: overlapping pieces on %v", ErrInvalidLayout, (seen & b.pieces[c][pt]).Cells())
			}
			seen |= b.pieces[c][pt]
		}
	}
	return nil
}
