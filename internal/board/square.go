// Package board implements the chess position: bitboards, move generation,
// rule enforcement and the notation used to drive it.
package board

import "fmt"

// Square is a board square index in 0..63, a1 = 0 and h8 = 63.
type Square uint8

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 64
)

// File returns the file index (0 = a, 7 = h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the rank index (0 = rank 1, 7 = rank 8).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// String returns the cell text, e.g. "e4".
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

// NewSquare creates a square from zero-based file and rank.
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// IsValid returns true for 0..63.
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// ParseSquare converts two-character cell text into a square index.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	if s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return NewSquare(int(s[0]-'a'), int(s[1]-'1')), nil
}

// MustParseSquare is ParseSquare for inputs known to be valid. It panics
// on bad input.
func MustParseSquare(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}

// SquareFromIndex checks that i names a board square.
func SquareFromIndex(i int) (Square, error) {
	if i < 0 || i >= int(NoSquare) {
		return NoSquare, fmt.Errorf("%w: index %d", ErrInvalidSquare, i)
	}
	return Square(i), nil
}

// relativeRank is the rank as seen from c's side of the board.
func (sq Square) relativeRank(c Color) int {
	if c == White {
		return sq.Rank()
	}
	return 7 - sq.Rank()
}
