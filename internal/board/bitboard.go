package board

import (
	"math/bits"
	"strings"
)

// Bitboard is a 64-bit set of squares, one bit per square in
// little-endian rank-file order (bit 0 = A1, bit 63 = H8).
type Bitboard uint64

// File masks.
const (
	FileA Bitboard = 0x0101010101010101 << iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

// Rank masks.
const (
	Rank1 Bitboard = 0xFF << (8 * iota)
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

const (
	NotFileA Bitboard = ^FileA
	NotFileH Bitboard = ^FileH
)

// SquareBB returns a bitboard with only sq set.
func SquareBB(sq Square) Bitboard {
	return 1 << sq
}

// Set returns b with the bit at sq set.
func (b Bitboard) Set(sq Square) Bitboard {
	return b | 1<<sq
}

// Clear returns b with the bit at sq cleared.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b &^ (1 << sq)
}

// IsSet reports whether the bit at sq is set.
func (b Bitboard) IsSet(sq Square) bool {
	return b&(1<<sq) != 0
}

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the lowest set square, NoSquare when empty.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// MSB returns the highest set square, NoSquare when empty.
func (b Bitboard) MSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(63 - bits.LeadingZeros64(uint64(b)))
}

// PopLSB removes and returns the lowest set square.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// Directional single-step shifts. The diagonal and horizontal shifts
// mask off wraparound across the a/h file edge.

func (b Bitboard) North() Bitboard { return b << 8 }
func (b Bitboard) South() Bitboard { return b >> 8 }
func (b Bitboard) East() Bitboard  { return (b << 1) & NotFileA }
func (b Bitboard) West() Bitboard  { return (b >> 1) & NotFileH }

func (b Bitboard) NorthEast() Bitboard { return (b << 9) & NotFileA }
func (b Bitboard) NorthWest() Bitboard { return (b << 7) & NotFileH }
func (b Bitboard) SouthEast() Bitboard { return (b >> 7) & NotFileA }
func (b Bitboard) SouthWest() Bitboard { return (b >> 9) & NotFileH }

// String renders the bitboard as an 8x8 diagram, rank 8 first.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			if b.IsSet(NewSquare(file, rank)) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('.')
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
