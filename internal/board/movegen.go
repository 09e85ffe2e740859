package board

// Generator computes the pseudo-legal destinations of the piece standing on
// the single square in pos. friendly and enemy are the full occupancy masks
// from that piece's point of view. Self-check is not considered.
type Generator func(pos, friendly, enemy Bitboard, piece Piece) Bitboard

type direction struct{ df, dr int }

var (
	knightSteps = [8]direction{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps   = [8]direction{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}
	diagonals   = [4]direction{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	orthogonals = [4]direction{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
)

// GeneratorFor returns the generator for a piece type.
func GeneratorFor(pt PieceType) Generator {
	switch pt {
	case Pawn:
		return PawnMoves
	case Knight:
		return KnightMoves
	case Bishop:
		return BishopMoves
	case Rook:
		return RookMoves
	case Queen:
		return QueenMoves
	case King:
		return KingMoves
	}
	return nil
}

// step returns the square reached from sq by d, or false when it would leave
// the board. File and rank are bounded separately so nothing wraps.
func step(sq Square, d direction) (Square, bool) {
	f, r := sq.File()+d.df, sq.Rank()+d.dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return NoSquare, false
	}
	return NewSquare(f, r), true
}

func forward(c Color) int {
	if c == Black {
		return -1
	}
	return 1
}

// PawnMoves: single push onto an empty square, double push from the pawn's
// start rank through two empty squares, diagonal steps onto enemy pieces only.
func PawnMoves(pos, friendly, enemy Bitboard, piece Piece) Bitboard {
	sq := pos.LSB()
	if sq == NoSquare {
		return Empty
	}
	c := piece.Color()
	occupied := friendly | enemy
	var moves Bitboard

	if one, ok := step(sq, direction{0, forward(c)}); ok && !occupied.IsSet(one) {
		moves = moves.Set(one)
		if sq.relativeRank(c) == 1 {
			if two, ok := step(one, direction{0, forward(c)}); ok && !occupied.IsSet(two) {
				moves = moves.Set(two)
			}
		}
	}
	return moves | PawnAttacks(pos, friendly, enemy, piece)
}

// PawnAttacks is the capturing half of PawnMoves: the forward diagonals that
// hold an enemy piece. Check detection uses it instead of PawnMoves, since a
// pawn never attacks the square in front of it.
func PawnAttacks(pos, _, enemy Bitboard, piece Piece) Bitboard {
	sq := pos.LSB()
	if sq == NoSquare {
		return Empty
	}
	dr := forward(piece.Color())
	var attacks Bitboard
	for _, df := range [2]int{-1, 1} {
		if to, ok := step(sq, direction{df, dr}); ok && enemy.IsSet(to) {
			attacks = attacks.Set(to)
		}
	}
	return attacks
}

// KnightMoves tries the eight L-shaped jumps.
func KnightMoves(pos, friendly, _ Bitboard, _ Piece) Bitboard {
	return leaps(pos, friendly, knightSteps[:])
}

// KingMoves tries the eight neighbours. Castling is handled by the board.
func KingMoves(pos, friendly, _ Bitboard, _ Piece) Bitboard {
	return leaps(pos, friendly, kingSteps[:])
}

func leaps(pos, friendly Bitboard, steps []direction) Bitboard {
	sq := pos.LSB()
	if sq == NoSquare {
		return Empty
	}
	var moves Bitboard
	for _, d := range steps {
		if to, ok := step(sq, d); ok && !friendly.IsSet(to) {
			moves = moves.Set(to)
		}
	}
	return moves
}

// BishopMoves casts the four diagonal rays.
func BishopMoves(pos, friendly, enemy Bitboard, _ Piece) Bitboard {
	return rays(pos, friendly, enemy, diagonals[:])
}

// RookMoves casts the four orthogonal rays.
func RookMoves(pos, friendly, enemy Bitboard, _ Piece) Bitboard {
	return rays(pos, friendly, enemy, orthogonals[:])
}

// QueenMoves casts all eight rays.
func QueenMoves(pos, friendly, enemy Bitboard, p Piece) Bitboard {
	return BishopMoves(pos, friendly, enemy, p) | RookMoves(pos, friendly, enemy, p)
}

// rays walks each direction one square at a time. A friendly blocker ends
// the ray before its square, an enemy blocker ends it on its square.
func rays(pos, friendly, enemy Bitboard, dirs []direction) Bitboard {
	from := pos.LSB()
	if from == NoSquare {
		return Empty
	}
	var moves Bitboard
	for _, d := range dirs {
		for sq, ok := step(from, d); ok; sq, ok = step(sq, d) {
			if friendly.IsSet(sq) {
				break
			}
			moves = moves.Set(sq)
			if enemy.IsSet(sq) {
				break
			}
		}
	}
	return moves
}

// pseudoMoves runs the generator of the piece on sq, from its own side.
func (b *Board) pseudoMoves(sq Square) Bitboard {
	p := b.PieceAt(sq)
	if p == NoPiece {
		return Empty
	}
	c := p.Color()
	return GeneratorFor(p.Type())(SquareBB(sq), b.occupancy(c), b.occupancy(c.Other()), p)
}
