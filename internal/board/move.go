package board

import "fmt"

// Move packs a move into 16 bits:
//
//	bits 0-5   from square
//	bits 6-11  to square
//	bits 12-13 promotion piece (0=knight .. 3=queen)
//	bits 14-15 flag (normal, promotion, en passant, castling)
//
// The zero value NoMove doubles as the "no legal move" sentinel: no real
// move has from == to.
type Move uint16

const (
	FlagNormal    uint16 = 0 << 14
	FlagPromotion uint16 = 1 << 14
	FlagEnPassant uint16 = 2 << 14
	FlagCastling  uint16 = 3 << 14
)

// NoMove is the null move sentinel.
const NoMove Move = 0

// NewMove builds a normal move.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewPromotion builds a promotion to promo (Knight..Queen).
func NewPromotion(from, to Square, promo PieceType) Move {
	return Move(from) | Move(to)<<6 | Move(promo-Knight)<<12 | Move(FlagPromotion)
}

// NewEnPassant builds an en passant capture.
func NewEnPassant(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(FlagEnPassant)
}

// NewCastling builds a castling move given the king's from/to squares.
func NewCastling(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(FlagCastling)
}

func (m Move) From() Square {
	return Square(m & 0x3F)
}

func (m Move) To() Square {
	return Square(m >> 6 & 0x3F)
}

func (m Move) Flag() uint16 {
	return uint16(m) & 0xC000
}

// Promotion returns the promotion piece type; meaningful only when
// IsPromotion reports true.
func (m Move) Promotion() PieceType {
	return PieceType(m>>12&3) + Knight
}

func (m Move) IsPromotion() bool { return m.Flag() == FlagPromotion }
func (m Move) IsEnPassant() bool { return m.Flag() == FlagEnPassant }
func (m Move) IsCastling() bool  { return m.Flag() == FlagCastling }

// IsCapture reports whether the move takes a piece in pos.
func (m Move) IsCapture(pos *Position) bool {
	return m.IsEnPassant() || pos.PieceAt(m.To()) != NoPiece
}

// String renders the move in coordinate notation, e.g. "e2e4", "e7e8q".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(m.Promotion().Char())
	}
	return s
}

// ParseMove parses coordinate notation against a position. The position
// disambiguates castling (king moving two files) and en passant (pawn
// moving to the en passant square).
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("invalid move %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}
	if len(s) == 5 {
		promo := PieceType(NoPieceType)
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece %q", s[4])
		}
		return NewPromotion(from, to, promo), nil
	}

	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return NoMove, fmt.Errorf("no piece on %s", from)
	}
	switch piece.Type() {
	case King:
		diff := int(to) - int(from)
		if diff == 2 || diff == -2 {
			return NewCastling(from, to), nil
		}
	case Pawn:
		if to == pos.EnPassant {
			return NewEnPassant(from, to), nil
		}
	}
	return NewMove(from, to), nil
}

// MoveList is a fixed-capacity move buffer. 256 exceeds the maximum
// number of moves in any legal position.
type MoveList struct {
	moves [256]Move
	count int
}

func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

func (ml *MoveList) Len() int {
	return ml.count
}

func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// UndoInfo snapshots everything MakeMove changes, so UnmakeMove (and the
// reject path of an illegal move) can restore the position wholesale.
type UndoInfo struct {
	CapturedPiece  Piece
	CastlingRights CastlingRights
	EnPassant      Square
	HalfMoveClock  int
	FullMoveNumber int
	Hash           uint64
	KingSquare     [2]Square
	Pieces         [2][6]Bitboard
	Occupied       [2]Bitboard
	AllOccupied    Bitboard

	// Valid is false when the move left the mover's own king attacked
	// and the position was rolled back.
	Valid bool
}
