package board

// String writes the move back in the notation ParseNotation reads, without
// the terminator: "Pe2e4", "Qh5xf7", "O-O".
func (m MoveInfo) String() string {
	if m.Castling {
		return m.Side.String()
	}
	if m.Piece == NoPiece {
		return "-"
	}
	s := string(m.Piece.Char()) + m.From.String()
	if m.Capture {
		s += "x"
	}
	return s + m.To.String()
}

// describe builds the MoveInfo for a legal move from -> to of the piece on from.
func (b *Board) describe(from, to Square) MoveInfo {
	p := b.PieceAt(from)
	mi := MoveInfo{Piece: p, From: from, To: to}
	if p.Type() == King {
		if side, ok := castlingSideFor(p.Color(), from, to); ok {
			mi.Castling = true
			mi.Side = side
			return mi
		}
	}
	mi.Capture = b.occupancy(p.Color().Other()).IsSet(to)
	return mi
}

// MovesToNotation renders a list of moves.
func MovesToNotation(moves []MoveInfo) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}
