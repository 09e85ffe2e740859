package board

// Simulation helpers. They mutate the receiver without any rule checks, so
// callers run them on a copy (scratch := *b) and only assign the copy back
// once every check has passed.

// play moves the piece on from to to, removing whatever stood on to.
// It returns the captured piece, or NoPiece.
func (b *Board) play(from, to Square) Piece {
	captured := b.removePiece(to)
	if p := b.removePiece(from); p != NoPiece {
		b.setPiece(p, to)
	}
	return captured
}

// relocateKing puts c's king on sq. Castling uses it to test transit squares.
func (b *Board) relocateKing(c Color, sq Square) {
	b.pieces[c][King] = SquareBB(sq)
}
