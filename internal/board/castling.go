package board

import "fmt"

// CastleSide selects kingside (O-O) or queenside (O-O-O).
type CastleSide uint8

const (
	KingSide CastleSide = iota
	QueenSide
)

func (s CastleSide) String() string {
	if s == QueenSide {
		return "O-O-O"
	}
	return "O-O"
}

type castleGeometry struct {
	right            CastlingRights
	kingFrom, kingTo Square
	rookFrom, rookTo Square
	between          Bitboard // squares strictly between king and rook
}

var castles = [2][2]castleGeometry{
	White: {
		KingSide:  {WhiteKingSideCastle, E1, G1, H1, F1, SquareBB(F1) | SquareBB(G1)},
		QueenSide: {WhiteQueenSideCastle, E1, C1, A1, D1, SquareBB(B1) | SquareBB(C1) | SquareBB(D1)},
	},
	Black: {
		KingSide:  {BlackKingSideCastle, E8, G8, H8, F8, SquareBB(F8) | SquareBB(G8)},
		QueenSide: {BlackQueenSideCastle, E8, C8, A8, D8, SquareBB(B8) | SquareBB(C8) | SquareBB(D8)},
	},
}

// rookHomes maps each corner square to the right it guards.
var rookHomes = [4]struct {
	sq    Square
	right CastlingRights
}{
	{A1, WhiteQueenSideCastle},
	{H1, WhiteKingSideCastle},
	{A8, BlackQueenSideCastle},
	{H8, BlackKingSideCastle},
}

// castlingSideFor returns the side whose king move from -> to is a castle.
func castlingSideFor(c Color, from, to Square) (CastleSide, bool) {
	for side := KingSide; side <= QueenSide; side++ {
		if castles[c][side].kingFrom == from && castles[c][side].kingTo == to {
			return side, true
		}
	}
	return KingSide, false
}

// checkCastle tests every castling precondition for c on the given side.
func (b *Board) checkCastle(c Color, side CastleSide) error {
	cs := castles[c][side]
	switch {
	case !b.castling.CanCastle(c, side):
		return fmt.Errorf("%w: %s %s right already lost", ErrCastlingBlocked, c, side)
	case !b.pieces[c][King].IsSet(cs.kingFrom):
		return fmt.Errorf("%w: king not on %s", ErrCastlingBlocked, cs.kingFrom)
	case !b.pieces[c][Rook].IsSet(cs.rookFrom):
		return fmt.Errorf("%w: no rook on %s", ErrCastlingBlocked, cs.rookFrom)
	case b.Occupied()&cs.between != 0:
		return fmt.Errorf("%w: path occupied at %v", ErrCastlingBlocked, (b.Occupied() & cs.between).Cells())
	case b.IsKingInCheck(c):
		return fmt.Errorf("%w: king is in check", ErrCastlingThroughCheck)
	}

	// Walk the king one square at a time up to and including its destination.
	d := direction{1, 0}
	if cs.kingTo < cs.kingFrom {
		d.df = -1
	}
	for sq, _ := step(cs.kingFrom, d); ; sq, _ = step(sq, d) {
		scratch := *b
		scratch.relocateKing(c, sq)
		if scratch.IsKingInCheck(c) {
			return fmt.Errorf("%w: %s is attacked", ErrCastlingThroughCheck, sq)
		}
		if sq == cs.kingTo {
			return nil
		}
	}
}

// castle moves king and rook together. Preconditions must already hold.
func (b *Board) castle(c Color, side CastleSide) {
	cs := castles[c][side]
	b.pieces[c][King] = b.pieces[c][King].Clear(cs.kingFrom).Set(cs.kingTo)
	b.pieces[c][Rook] = b.pieces[c][Rook].Clear(cs.rookFrom).Set(cs.rookTo)
}

// CastlingMoves returns the king destinations (g1, c1, g8, c8) of every
// castle c could play right now.
func (b *Board) CastlingMoves(c Color) Bitboard {
	var moves Bitboard
	for side := KingSide; side <= QueenSide; side++ {
		if b.checkCastle(c, side) == nil {
			moves = moves.Set(castles[c][side].kingTo)
		}
	}
	return moves
}
