package engine

import "github.com/pssnyder/static-evaluation-engine/internal/board"

// Ordering score bands, highest searched first. Losing captures rank
// below quiet moves but are never dropped.
const (
	hashMoveScore      = 10000000
	winningCaptureBase = 8000000
	promotionBase      = 7500000
	killerScore1       = 7000000
	killerScore2       = 6990000
	quietBase          = 1000000
	losingCaptureBase  = 100000

	historyCap = 400000
)

// MoveOrderer holds the per-search ordering state: two killer slots per
// ply and a from/to history table. A fresh orderer starts every Search
// call.
type MoveOrderer struct {
	killers [MaxPly][2]board.Move
	history [64][64]int
}

func NewMoveOrderer() *MoveOrderer {
	return &MoveOrderer{}
}

// ScoreMoves assigns an ordering score to each move in the list.
// hashMove is the principal variation move from the previous iteration
// for this node, board.NoMove when unknown.
func (mo *MoveOrderer) ScoreMoves(pos *board.Position, moves *board.MoveList, ply int, hashMove board.Move) []int {
	scores := make([]int, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		scores[i] = mo.scoreMove(pos, moves.Get(i), ply, hashMove)
	}
	return scores
}

func (mo *MoveOrderer) scoreMove(pos *board.Position, m board.Move, ply int, hashMove board.Move) int {
	if m == hashMove && m != board.NoMove {
		return hashMoveScore
	}

	if m.IsCapture(pos) {
		attacker := pos.PieceAt(m.From()).Type()
		victim := board.Pawn
		if !m.IsEnPassant() {
			victim = pos.PieceAt(m.To()).Type()
		}
		see := SEE(pos, m)
		if see >= 0 {
			return winningCaptureBase + victim.Value()*10 - attacker.Value() + see
		}
		return losingCaptureBase + see
	}

	if m.IsPromotion() {
		return promotionBase + m.Promotion().Value()
	}

	if ply < MaxPly {
		if m == mo.killers[ply][0] {
			return killerScore1
		}
		if m == mo.killers[ply][1] {
			return killerScore2
		}
	}

	return quietBase + mo.history[m.From()][m.To()]
}

// PickMove swaps the best-scored remaining move into position index:
// lazy selection instead of a full sort, since a cutoff usually arrives
// within the first few moves.
func PickMove(moves *board.MoveList, scores []int, index int) {
	best := index
	for j := index + 1; j < moves.Len(); j++ {
		if scores[j] > scores[best] {
			best = j
		}
	}
	if best != index {
		moves.Swap(index, best)
		scores[index], scores[best] = scores[best], scores[index]
	}
}

// UpdateKillers records a quiet cutoff move, most recent first. Callers
// must not pass captures.
func (mo *MoveOrderer) UpdateKillers(m board.Move, ply int) {
	if ply >= MaxPly || mo.killers[ply][0] == m {
		return
	}
	mo.killers[ply][1] = mo.killers[ply][0]
	mo.killers[ply][0] = m
}

// UpdateHistory rewards a quiet cutoff move by depth squared. The table
// halves wholesale when any cell reaches the cap, preserving relative
// order.
func (mo *MoveOrderer) UpdateHistory(m board.Move, depth int) {
	from, to := m.From(), m.To()
	mo.history[from][to] += depth * depth
	if mo.history[from][to] >= historyCap {
		for i := range mo.history {
			for j := range mo.history[i] {
				mo.history[i][j] /= 2
			}
		}
	}
}
