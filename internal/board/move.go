package board

import (
	"fmt"
	"strings"
)

// MoveInfo is one parsed move attempt.
type MoveInfo struct {
	Piece    Piece
	From, To Square
	Capture  bool

	Castling bool
	Side     CastleSide

	// ClaimsMate is set when the notation ended in '#'.
	ClaimsMate bool
}

// castlingTokens are accepted outside the generic grammar.
var castlingTokens = map[string]CastleSide{
	"O-O":   KingSide,
	"0-0":   KingSide,
	"O-O-O": QueenSide,
	"0-0-0": QueenSide,
}

// ParseNotation parses move text of the form <Piece><From>['x']<To></>,
// e.g. "Pe2e4/" or "Qh5xf7/", or one of the castling tokens.
// Upper-case piece letters are white. A '#' terminator claims mate and is
// treated as '/'; a missing terminator is supplied.
func ParseNotation(text string) (MoveInfo, error) {
	s := text
	mi := MoveInfo{Piece: NoPiece, From: NoSquare, To: NoSquare}

	if strings.HasSuffix(s, "#") {
		s = strings.TrimSuffix(s, "#") + "/"
		mi.ClaimsMate = true
	}
	if !strings.HasSuffix(s, "/") {
		s += "/"
	}

	if side, ok := castlingTokens[strings.TrimSuffix(s, "/")]; ok {
		mi.Castling = true
		mi.Side = side
		return mi, nil
	}

	var fromText, toText string
	switch len(s) {
	case 6:
		fromText, toText = s[1:3], s[3:5]
	case 7:
		if s[3] != 'x' {
			return mi, fmt.Errorf("%w: %q: expected 'x' at index 3", ErrInvalidNotation, text)
		}
		fromText, toText = s[1:3], s[4:6]
		mi.Capture = true
	default:
		return mi, fmt.Errorf("%w: %q: bad length", ErrInvalidNotation, text)
	}

	mi.Piece = PieceFromChar(s[0])
	if mi.Piece == NoPiece {
		return mi, fmt.Errorf("%w: %q: unknown piece %q", ErrInvalidNotation, text, s[0])
	}

	var err error
	if mi.From, err = ParseSquare(fromText); err != nil {
		return mi, fmt.Errorf("%w: %q: %w", ErrInvalidNotation, text, err)
	}
	if mi.To, err = ParseSquare(toText); err != nil {
		return mi, fmt.Errorf("%w: %q: %w", ErrInvalidNotation, text, err)
	}
	return mi, nil
}
