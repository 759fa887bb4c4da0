package board

// Precomputed attack tables. Leaper tables are filled once at startup by
// walking board-clipped deltas; sliding attacks use the classic ray-walk
// scheme: a full ray per direction per square, truncated at the first
// blocker in the given occupancy.

type direction int

const (
	dirNorth direction = iota
	dirNorthEast
	dirEast
	dirNorthWest
	dirSouth
	dirSouthWest
	dirWest
	dirSouthEast
)

var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard

	rayAttacks [8][64]Bitboard
)

var dirDeltas = [8][2]int{
	dirNorth:     {0, 1},
	dirNorthEast: {1, 1},
	dirEast:      {1, 0},
	dirNorthWest: {-1, 1},
	dirSouth:     {0, -1},
	dirSouthWest: {-1, -1},
	dirWest:      {-1, 0},
	dirSouthEast: {1, -1},
}

func init() {
	initLeapers()
	initRays()
}

func initLeapers() {
	knightDeltas := [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	for sq := A1; sq <= H8; sq++ {
		f, r := sq.File(), sq.Rank()
		for _, d := range knightDeltas {
			if tf, tr := f+d[0], r+d[1]; tf >= 0 && tf <= 7 && tr >= 0 && tr <= 7 {
				knightAttacks[sq] = knightAttacks[sq].Set(NewSquare(tf, tr))
			}
		}
		for _, d := range dirDeltas {
			if tf, tr := f+d[0], r+d[1]; tf >= 0 && tf <= 7 && tr >= 0 && tr <= 7 {
				kingAttacks[sq] = kingAttacks[sq].Set(NewSquare(tf, tr))
			}
		}
		bb := SquareBB(sq)
		pawnAttacks[White][sq] = bb.NorthEast() | bb.NorthWest()
		pawnAttacks[Black][sq] = bb.SouthEast() | bb.SouthWest()
	}
}

func initRays() {
	for dir := dirNorth; dir <= dirSouthEast; dir++ {
		df, dr := dirDeltas[dir][0], dirDeltas[dir][1]
		for sq := A1; sq <= H8; sq++ {
			f, r := sq.File()+df, sq.Rank()+dr
			for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
				rayAttacks[dir][sq] = rayAttacks[dir][sq].Set(NewSquare(f, r))
				f += df
				r += dr
			}
		}
	}
}

func rayAttack(dir direction, sq Square, occupied Bitboard) Bitboard {
	attacks := rayAttacks[dir][sq]
	blockers := attacks & occupied
	if blockers == 0 {
		return attacks
	}
	var first Square
	if dir < dirSouth { // positive rays scan from the low end
		first = blockers.LSB()
	} else {
		first = blockers.MSB()
	}
	return attacks &^ rayAttacks[dir][first]
}

// KnightAttacks returns the knight attack set from sq.
func KnightAttacks(sq Square) Bitboard {
	return knightAttacks[sq]
}

// KingAttacks returns the king attack set from sq.
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// PawnAttacks returns the capture squares of a c-colored pawn on sq.
func PawnAttacks(sq Square, c Color) Bitboard {
	return pawnAttacks[c][sq]
}

// BishopAttacks returns diagonal slider attacks from sq given occupancy.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return rayAttack(dirNorthEast, sq, occupied) |
		rayAttack(dirNorthWest, sq, occupied) |
		rayAttack(dirSouthEast, sq, occupied) |
		rayAttack(dirSouthWest, sq, occupied)
}

// RookAttacks returns orthogonal slider attacks from sq given occupancy.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	return rayAttack(dirNorth, sq, occupied) |
		rayAttack(dirSouth, sq, occupied) |
		rayAttack(dirEast, sq, occupied) |
		rayAttack(dirWest, sq, occupied)
}

// QueenAttacks returns combined rook and bishop attacks from sq.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}

// AttackersByColor returns the pieces of color c attacking sq.
func (p *Position) AttackersByColor(sq Square, c Color, occupied Bitboard) Bitboard {
	return (pawnAttacks[c.Other()][sq] & p.Pieces[c][Pawn]) |
		(knightAttacks[sq] & p.Pieces[c][Knight]) |
		(kingAttacks[sq] & p.Pieces[c][King]) |
		(BishopAttacks(sq, occupied) & (p.Pieces[c][Bishop] | p.Pieces[c][Queen])) |
		(RookAttacks(sq, occupied) & (p.Pieces[c][Rook] | p.Pieces[c][Queen]))
}

// IsSquareAttacked reports whether byColor attacks sq in the current
// occupancy.
func (p *Position) IsSquareAttacked(sq Square, byColor Color) bool {
	return p.AttackersByColor(sq, byColor, p.AllOccupied) != 0
}
