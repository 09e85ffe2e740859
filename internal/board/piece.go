package board

import "fmt"

// Color is the side a piece belongs to.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// Token is the single-letter side token used by layouts: "W" or "B".
func (c Color) Token() string {
	if c == Black {
		return "B"
	}
	return "W"
}

// ParseColor accepts the side tokens "W" and "B".
func ParseColor(s string) (Color, error) {
	switch s {
	case "W":
		return White, nil
	case "B":
		return Black, nil
	}
	return NoColor, fmt.Errorf("%w: side %q", ErrInvalidLayout, s)
}

// PieceType is one of the six closed piece kinds.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the upper-case letter for the piece type.
func (pt PieceType) Char() byte {
	if pt >= NoPieceType {
		return ' '
	}
	return "PNBRQK"[pt]
}

// Piece combines PieceType and Color: pieceType + color*6.
type Piece uint8

const (
	WhitePawn   Piece = Piece(Pawn) + Piece(White)*6
	WhiteKnight Piece = Piece(Knight) + Piece(White)*6
	WhiteBishop Piece = Piece(Bishop) + Piece(White)*6
	WhiteRook   Piece = Piece(Rook) + Piece(White)*6
	WhiteQueen  Piece = Piece(Queen) + Piece(White)*6
	WhiteKing   Piece = Piece(King) + Piece(White)*6
	BlackPawn   Piece = Piece(Pawn) + Piece(Black)*6
	BlackKnight Piece = Piece(Knight) + Piece(Black)*6
	BlackBishop Piece = Piece(Bishop) + Piece(Black)*6
	BlackRook   Piece = Piece(Rook) + Piece(Black)*6
	BlackQueen  Piece = Piece(Queen) + Piece(Black)*6
	BlackKing   Piece = Piece(King) + Piece(Black)*6
	NoPiece     Piece = 12
)

// AllPieces lists the twelve pieces, white first, in type order.
var AllPieces = [12]Piece{
	WhitePawn, WhiteKnight, WhiteBishop, WhiteRook, WhiteQueen, WhiteKing,
	BlackPawn, BlackKnight, BlackBishop, BlackRook, BlackQueen, BlackKing,
}

// NewPiece creates a Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(pt) + Piece(c)*6
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

// Color returns the Color of the piece.
func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 6)
}

// Char is the notation letter: upper case for white, lower case for black.
func (p Piece) Char() byte {
	if p >= NoPiece {
		return ' '
	}
	return "PNBRQKpnbrqk"[p]
}

func (p Piece) String() string {
	return string(p.Char())
}

// Token is the two-letter layout token, e.g. "WK" or "BP".
func (p Piece) Token() string {
	if p >= NoPiece {
		return ""
	}
	return p.Color().Token() + string(p.Type().Char())
}

// PieceFromChar maps a notation letter to a Piece. Case selects the color.
func PieceFromChar(c byte) Piece {
	for i := 0; i < len(AllPieces); i++ {
		if AllPieces[i].Char() == c {
			return AllPieces[i]
		}
	}
	return NoPiece
}

// pieceFromToken parses a layout token. The empty token is NoPiece.
func pieceFromToken(tok string) (Piece, error) {
	if tok == "" {
		return NoPiece, nil
	}
	if len(tok) != 2 {
		return NoPiece, fmt.Errorf("%w: token %q", ErrInvalidLayout, tok)
	}
	c, err := ParseColor(tok[:1])
	if err != nil {
		return NoPiece, fmt.Errorf("%w: token %q", ErrInvalidLayout, tok)
	}
	p := PieceFromChar(tok[1])
	if p == NoPiece || p.Color() != White {
		return NoPiece, fmt.Errorf("%w: token %q", ErrInvalidLayout, tok)
	}
	return NewPiece(p.Type(), c), nil
}
