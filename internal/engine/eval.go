package engine

import "github.com/pssnyder/static-evaluation-engine/internal/board"

// Evaluator scores a position in centipawns from the side to move's
// perspective. It is only called on legal, non-terminal positions: the
// search handles checkmate, stalemate, and draws before evaluating.
type Evaluator interface {
	Evaluate(pos *board.Position) int
}

// StaticEvaluator is the default evaluator: material plus piece-square
// tables and a small tempo bonus.
type StaticEvaluator struct{}

func NewStaticEvaluator() *StaticEvaluator {
	return &StaticEvaluator{}
}

const tempoBonus = 10

// Piece-square tables, written rank 8 first so they read like a board
// diagram. White pieces index with sq.Mirror(), black with sq directly.

var pawnTable = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	80, 80, 80, 80, 80, 80, 80, 80,
	25, 25, 35, 45, 45, 35, 25, 25,
	15, 15, 20, 35, 35, 20, 15, 15,
	10, 10, 15, 30, 30, 15, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightTable = [64]int{
	-80, -40, -30, -25, -25, -30, -40, -80,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-25, 5, 20, 25, 25, 20, 5, -25,
	-25, 5, 20, 25, 25, 20, 5, -25,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-80, -40, -30, -25, -25, -30, -40, -80,
}

var bishopTable = [64]int{
	-25, -15, -15, -15, -15, -15, -15, -25,
	-15, 0, 5, 5, 5, 5, 0, -15,
	-15, 5, 10, 15, 15, 10, 5, -15,
	-15, 5, 15, 20, 20, 15, 5, -15,
	-15, 5, 15, 20, 20, 15, 5, -15,
	-15, 10, 15, 15, 15, 15, 10, -15,
	-15, 5, 0, 0, 0, 0, 5, -15,
	-25, -15, -25, -15, -15, -25, -15, -25,
}

var rookTable = [64]int{
	5, 5, 5, 5, 5, 5, 5, 5,
	15, 20, 20, 20, 20, 20, 20, 15,
	0, 0, 5, 5, 5, 5, 0, 0,
	0, 0, 5, 5, 5, 5, 0, 0,
	0, 0, 5, 5, 5, 5, 0, 0,
	0, 0, 5, 5, 5, 5, 0, 0,
	0, 5, 5, 10, 10, 5, 5, 0,
	0, 0, 0, 10, 10, 0, 0, 0,
}

var queenTable = [64]int{
	-50, -40, -30, -20, -20, -30, -40, -50,
	-40, -20, -10, -5, -5, -10, -20, -40,
	-30, -10, 10, 15, 15, 10, -10, -30,
	-20, -5, 15, 20, 20, 15, -5, -20,
	-20, -5, 15, 20, 20, 15, -5, -20,
	-30, -10, 10, 15, 15, 10, -10, -30,
	-40, -20, -10, -5, -5, -10, -20, -40,
	-75, -50, -40, -30, -30, -40, -50, -75,
}

var kingTable = [64]int{
	-40, -50, -50, -60, -60, -50, -50, -40,
	-40, -50, -50, -60, -60, -50, -50, -40,
	-40, -50, -50, -60, -60, -50, -50, -40,
	-40, -50, -50, -60, -60, -50, -50, -40,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -30, -30, -30, -30, -20,
	15, 15, -5, -5, -5, -5, 15, 15,
	15, 25, 5, -5, -5, 5, 25, 15,
}

var pieceTables = [6]*[64]int{
	&pawnTable, &knightTable, &bishopTable, &rookTable, &queenTable, &kingTable,
}

// Evaluate returns material plus piece-square score for the side to
// move. The king contributes placement only, never material.
func (e *StaticEvaluator) Evaluate(pos *board.Position) int {
	score := 0
	for pt := board.Pawn; pt <= board.King; pt++ {
		table := pieceTables[pt]
		value := pt.Value()
		if pt == board.King {
			value = 0
		}
		for bb := pos.Pieces[board.White][pt]; bb != 0; {
			score += value + table[bb.PopLSB().Mirror()]
		}
		for bb := pos.Pieces[board.Black][pt]; bb != 0; {
			score -= value + table[bb.PopLSB()]
		}
	}
	if pos.SideToMove == board.Black {
		score = -score
	}
	return score + tempoBonus
}
