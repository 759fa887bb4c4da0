// Package board implements a bitboard chess position model: move
// generation, legality filtering, FEN, and Zobrist hashing.
package board

import "fmt"

// Square indexes a board square using little-endian rank-file mapping:
// A1=0, H1=7, A8=56, H8=63.
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

// NewSquare builds a square from 0-indexed file and rank.
func NewSquare(file, rank int) Square {
	return Square(rank<<3 | file)
}

// ParseSquare parses coordinate notation such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return NewSquare(file, rank), nil
}

// File returns the file of the square, 0=a .. 7=h.
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the rank of the square, 0=first .. 7=eighth.
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// IsValid reports whether sq is a real board square.
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// Mirror flips the square vertically, mapping A1 to A8.
func (sq Square) Mirror() Square {
	return sq ^ 56
}

func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}
