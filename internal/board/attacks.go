package board

// attackGenerator is the generator used to decide whether a piece attacks a
// square. It only differs from GeneratorFor for pawns.
func attackGenerator(pt PieceType) Generator {
	if pt == Pawn {
		return PawnAttacks
	}
	return GeneratorFor(pt)
}

// attacked reports whether any piece of color by reaches a square in target.
// Every piece is taken one at a time by isolating the lowest set bit. The
// target counts as occupied so pawn captures onto an empty square register.
func (b *Board) attacked(target Bitboard, by Color) bool {
	friendly := b.occupancy(by)
	enemy := b.occupancy(by.Other()) | target
	for pt := Pawn; pt <= King; pt++ {
		gen := attackGenerator(pt)
		piece := NewPiece(pt, by)
		for bb := b.pieces[by][pt]; bb != 0; {
			sq := bb.PopLSB()
			if gen(SquareBB(sq), friendly, enemy, piece)&target != 0 {
				return true
			}
		}
	}
	return false
}

// IsKingInCheck computes, without using the cached flag, whether c's king
// is attacked. A side without a king is never in check.
func (b *Board) IsKingInCheck(c Color) bool {
	king := b.pieces[c][King]
	if king == 0 {
		return false
	}
	return b.attacked(king, c.Other())
}

// isCheckmated tries every pseudo-legal move of c, castling included, on a
// scratch copy. c is mated when it is in check and none of them gets the
// king out.
func (b *Board) isCheckmated(c Color) bool {
	if !b.IsKingInCheck(c) {
		return false
	}
	for pt := Pawn; pt <= King; pt++ {
		for bb := b.pieces[c][pt]; bb != 0; {
			from := bb.PopLSB()
			dests := b.pseudoMoves(from)
			if pt == King {
				dests |= b.CastlingMoves(c)
			}
			for dests != 0 {
				to := dests.PopLSB()
				scratch := *b
				scratch.play(from, to)
				if !scratch.IsKingInCheck(c) {
					return false
				}
			}
		}
	}
	return true
}

// IsSquareAttacked reports whether any piece of color by attacks sq.
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	return b.attacked(SquareBB(sq), by)
}
