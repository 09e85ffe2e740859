package board

import "errors"

// Move rejection reasons. Callers match them with errors.Is; the returned
// errors carry the offending notation or square as context.
var (
	ErrInvalidNotation      = errors.New("invalid notation")
	ErrInvalidSquare        = errors.New("invalid square")
	ErrNoPieceAtSquare      = errors.New("no piece at square")
	ErrWrongTurn            = errors.New("not this side's turn")
	ErrIllegalMove          = errors.New("illegal move")
	ErrCastlingBlocked      = errors.New("castling blocked")
	ErrCastlingThroughCheck = errors.New("castling through check")
	ErrMoveExposesKing      = errors.New("move exposes king")
)

// Position codec errors.
var (
	ErrInvalidLayout = errors.New("invalid layout")
	ErrInvalidFEN    = errors.New("invalid FEN")
)
