package board

// Color of a side. White moves first.
type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposing color.
func (c Color) Other() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceType is a piece kind independent of color.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

// PieceValue holds the centipawn values used by the exchange evaluator
// and move ordering, indexed by PieceType.
var PieceValue = [7]int{100, 320, 330, 500, 900, 20000, 0}

// Value returns the centipawn value of the piece type.
func (pt PieceType) Value() int {
	return PieceValue[pt]
}

// Char returns the lowercase letter for the piece type, as used in
// promotion suffixes of coordinate notation.
func (pt PieceType) Char() byte {
	return "pnbrqk?"[pt]
}

// Piece combines a piece type and a color: white pieces occupy 0-5,
// black pieces 6-11.
type Piece uint8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	NoPiece
)

// NewPiece builds a piece from its type and color.
func NewPiece(pt PieceType, c Color) Piece {
	return Piece(uint8(pt) + uint8(c)*6)
}

// Type returns the piece type, NoPieceType for NoPiece.
func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

// Color returns the color of the piece. Only meaningful for real pieces.
func (p Piece) Color() Color {
	return Color(p / 6)
}

// Value returns the centipawn value of the piece.
func (p Piece) Value() int {
	return PieceValue[p.Type()]
}

const fenPieceChars = "PNBRQKpnbrqk"

// String returns the FEN letter for the piece, uppercase for white.
func (p Piece) String() string {
	if p >= NoPiece {
		return "."
	}
	return string(fenPieceChars[p])
}

// PieceFromChar maps a FEN letter to a piece, NoPiece for anything else.
func PieceFromChar(c byte) Piece {
	for i := 0; i < len(fenPieceChars); i++ {
		if fenPieceChars[i] == c {
			return Piece(i)
		}
	}
	return NoPiece
}
