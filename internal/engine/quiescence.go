package engine

import "github.com/pssnyder/static-evaluation-engine/internal/board"

// quiescence resolves captures before the static evaluation is
// trusted: stand pat first, then forcing moves only. Checks extend the
// forcing set at the first quiescence ply; the extension is capped at
// MaxQuiescencePly plies regardless.
func (s *Searcher) quiescence(alpha, beta, ply, qPly int) int {
	if s.shouldStop() {
		return 0
	}
	s.nodes++

	standPat := s.eval.Evaluate(s.pos)
	if qPly >= MaxQuiescencePly {
		return standPat
	}
	if standPat >= beta {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}

	var forcing board.MoveList
	s.pos.GenerateForcing(&forcing)
	if qPly == 0 {
		s.pos.GenerateQuietChecks(&forcing)
	}
	if forcing.Len() == 0 {
		return standPat
	}

	scores := s.orderer.ScoreMoves(s.pos, &forcing, MaxPly-1, board.NoMove)

	best := standPat
	for i := 0; i < forcing.Len(); i++ {
		PickMove(&forcing, scores, i)
		m := forcing.Get(i)

		undo := s.pos.MakeMove(m)
		score := -s.quiescence(-beta, -alpha, ply+1, qPly+1)
		s.pos.UnmakeMove(m, undo)

		if s.stop.Load() {
			return 0
		}

		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return best
}
