package board

import (
	"fmt"

	"github.com/rs/zerolog"
)

var logger = zerolog.Nop()

// SetLogger sets the logger ApplyMove reports rejected moves to. Call it
// before any board is in use.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// ApplyMove plays notation and reports whether it was legal. The reason for
// a rejection is logged; the board is unchanged in that case.
func (b *Board) ApplyMove(notation string) bool {
	side := b.sideToMove
	mi, err := b.Apply(notation)
	if err != nil {
		logger.Warn().Err(err).Str("notation", notation).Stringer("side", side).Msg("move rejected")
		return false
	}
	logger.Debug().Stringer("move", mi).Stringer("side", side).Msg("move applied")
	return true
}

// Apply plays notation for the side to move. Every check runs against a
// copy of the board; the copy replaces b only when the move is legal, so a
// returned error always leaves b exactly as it was.
func (b *Board) Apply(notation string) (MoveInfo, error) {
	mi, err := ParseNotation(notation)
	if err != nil {
		return mi, err
	}

	us := b.sideToMove
	next := *b

	if !mi.Castling {
		if mi.Piece.Color() != us {
			return mi, fmt.Errorf("%w: %q is a %s move, %s to play", ErrWrongTurn, notation, mi.Piece.Color(), us)
		}
		if !next.pieces[us][mi.Piece.Type()].IsSet(mi.From) {
			return mi, fmt.Errorf("%w: no %s %s on %s", ErrNoPieceAtSquare, us, mi.Piece.Type(), mi.From)
		}
		if mi.Piece.Type() == King {
			// Ke1g1 and friends are castles written in the generic grammar.
			if side, ok := castlingSideFor(us, mi.From, mi.To); ok {
				mi.Castling = true
				mi.Side = side
			}
		}
	}

	if mi.Castling {
		if err := next.checkCastle(us, mi.Side); err != nil {
			return mi, err
		}
		cs := castles[us][mi.Side]
		mi.Piece, mi.From, mi.To, mi.Capture = NewPiece(King, us), cs.kingFrom, cs.kingTo, false
		next.castle(us, mi.Side)
	} else {
		if err := next.playNormal(&mi); err != nil {
			return mi, err
		}
	}

	next.afterMove(mi)
	*b = next

	if mi.ClaimsMate && !b.mate.has(us.Other()) {
		logger.Warn().Stringer("move", mi).Msg("checkmate claimed but not delivered")
	}
	if b.mate.has(us.Other()) {
		logger.Info().Stringer("winner", us).Stringer("move", mi).Msg("checkmate")
	}
	return mi, nil
}

// playNormal validates a non-castling move against the piece's generator,
// plays it and rejects it if it leaves the mover's king attacked.
func (b *Board) playNormal(mi *MoveInfo) error {
	us := mi.Piece.Color()
	friendly, enemy := b.occupancy(us), b.occupancy(us.Other())
	dests := GeneratorFor(mi.Piece.Type())(SquareBB(mi.From), friendly, enemy, mi.Piece)

	if !dests.IsSet(mi.To) {
		return fmt.Errorf("%w: %s cannot reach %s from %s", ErrIllegalMove, mi.Piece.Type(), mi.To, mi.From)
	}

	// The capture flag reports what was taken, whatever the notation says.
	mi.Capture = b.play(mi.From, mi.To) != NoPiece
	if b.IsKingInCheck(us) {
		return fmt.Errorf("%w: %s", ErrMoveExposesKing, mi)
	}
	return nil
}

// afterMove updates castling rights, passes the turn and refreshes the
// check and checkmate flags.
func (b *Board) afterMove(mi MoveInfo) {
	us := mi.Piece.Color()
	if mi.Piece.Type() == King {
		b.castling &^= rightsOf(us)
	}
	for _, home := range rookHomes {
		if mi.From == home.sq || mi.To == home.sq {
			b.castling &^= home.right
		}
	}
	b.sideToMove = us.Other()
	b.refresh()
}
