package board

// Zobrist keys for position signatures. A fixed-seed xorshift64* stream
// keeps signatures stable across runs, which the repetition detector and
// the persisted analysis records rely on.
var (
	zobristPiece      [2][6][64]uint64
	zobristEnPassant  [8]uint64 // keyed by file
	zobristCastling   [16]uint64
	zobristSideToMove uint64
)

type zobristPRNG struct {
	state uint64
}

func (r *zobristPRNG) next() uint64 {
	r.state ^= r.state >> 12
	r.state ^= r.state << 25
	r.state ^= r.state >> 27
	return r.state * 0x2545F4914F6CDD1D
}

func init() {
	rng := zobristPRNG{state: 0x9E3779B97F4A7C15}
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := A1; sq <= H8; sq++ {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}
	for file := 0; file < 8; file++ {
		zobristEnPassant[file] = rng.next()
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}
	zobristSideToMove = rng.next()
}

// ComputeHash builds the Zobrist signature from scratch. MakeMove keeps
// the hash current incrementally; this is the ground truth it must agree
// with.
func (p *Position) ComputeHash() uint64 {
	var hash uint64
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for bb := p.Pieces[c][pt]; bb != 0; {
				hash ^= zobristPiece[c][pt][bb.PopLSB()]
			}
		}
	}
	if p.SideToMove == Black {
		hash ^= zobristSideToMove
	}
	hash ^= zobristCastling[p.CastlingRights]
	if p.EnPassant != NoSquare {
		hash ^= zobristEnPassant[p.EnPassant.File()]
	}
	return hash
}
