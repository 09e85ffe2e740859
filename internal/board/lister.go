package board

// LegalDestinations returns the squares the piece on sq can legally move to,
// castling destinations included for the king. Only the side to move has
// moves; an empty square or an opposing piece yields Empty.
func (b *Board) LegalDestinations(sq Square) Bitboard {
	p := b.PieceAt(sq)
	if p == NoPiece || p.Color() != b.sideToMove {
		return Empty
	}
	c := p.Color()

	var legal Bitboard
	for dests := b.pseudoMoves(sq); dests != 0; {
		to := dests.PopLSB()
		scratch := *b
		scratch.play(sq, to)
		if !scratch.IsKingInCheck(c) {
			legal = legal.Set(to)
		}
	}
	if p.Type() == King {
		legal |= b.CastlingMoves(c)
	}
	return legal
}

// PossibleMoves lists the legal destinations of the piece on cell.
func (b *Board) PossibleMoves(cell string) ([]string, error) {
	sq, err := ParseSquare(cell)
	if err != nil {
		return nil, err
	}
	return b.LegalDestinations(sq).Cells(), nil
}

// PossibleMovesWithNotation lists the legal moves of the piece on cell as
// notation, castles as "O-O" and "O-O-O".
func (b *Board) PossibleMovesWithNotation(cell string) ([]string, error) {
	sq, err := ParseSquare(cell)
	if err != nil {
		return nil, err
	}
	var moves []MoveInfo
	for dests := b.LegalDestinations(sq); dests != 0; {
		moves = append(moves, b.describe(sq, dests.PopLSB()))
	}
	return MovesToNotation(moves), nil
}

// LegalMoves lists every legal move of the side to move.
func (b *Board) LegalMoves() []MoveInfo {
	var moves []MoveInfo
	for bb := b.occupancy(b.sideToMove); bb != 0; {
		from := bb.PopLSB()
		for dests := b.LegalDestinations(from); dests != 0; {
			moves = append(moves, b.describe(from, dests.PopLSB()))
		}
	}
	return moves
}
