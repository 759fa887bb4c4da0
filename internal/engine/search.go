package engine

import (
	"sync/atomic"
	"time"

	"github.com/pssnyder/static-evaluation-engine/internal/board"

	"github.com/rs/zerolog"
)

const (
	// Infinity bounds the alpha-beta window; no score reaches it.
	Infinity = 30000

	// MateScore anchors mate scores: a side mated at ply p scores
	// -MateScore + p, so faster mates score higher.
	MateScore = 29000

	// MaxPly caps the main search stack.
	MaxPly = 64

	// MaxQuiescencePly caps the capture-resolution extension.
	MaxQuiescencePly = 16
)

// IsMateScore reports whether score lies in the forced-mate band.
func IsMateScore(score int) bool {
	if score < 0 {
		score = -score
	}
	return score >= MateScore-MaxPly
}

// MateIn converts a mate-band score into full moves to mate, negative
// when the side to move is being mated.
func MateIn(score int) int {
	if score > 0 {
		return (MateScore - score + 1) / 2
	}
	return -(MateScore + score + 1) / 2
}

// pvTable collects the principal variation by the triangular scheme:
// each ply's line is its best move followed by the child's line.
type pvTable struct {
	length [MaxPly + 1]int
	moves  [MaxPly + 1][MaxPly + 1]board.Move
}

func (pv *pvTable) reset(ply int) {
	pv.length[ply] = 0
}

func (pv *pvTable) update(ply int, m board.Move) {
	pv.moves[ply][0] = m
	copy(pv.moves[ply][1:], pv.moves[ply+1][:pv.length[ply+1]])
	pv.length[ply] = pv.length[ply+1] + 1
}

func (pv *pvTable) line(ply int) []board.Move {
	return append([]board.Move(nil), pv.moves[ply][:pv.length[ply]]...)
}

// Iteration reports one completed depth of the iterative deepening
// loop.
type Iteration struct {
	Depth   int
	Score   int
	Nodes   int64
	Elapsed time.Duration
	PV      []board.Move
}

// Searcher runs an iterative-deepening negascout over a single
// position. It is single-threaded; cancellation arrives through the
// shared stop flag and the time manager, both polled at every node.
type Searcher struct {
	pos     *board.Position
	eval    Evaluator
	orderer *MoveOrderer
	tm      *TimeManager
	stop    *atomic.Bool
	log     zerolog.Logger

	nodes int64
	pv    pvTable

	// prevPV is the principal variation of the last completed
	// iteration; ordering follows it while the current line matches.
	prevPV []board.Move
	onPV   bool

	// sigHistory holds the Zobrist signatures of the game so far plus
	// the current search path, for repetition detection.
	sigHistory []uint64
}

func NewSearcher(eval Evaluator, stop *atomic.Bool, log zerolog.Logger) *Searcher {
	return &Searcher{
		eval: eval,
		stop: stop,
		log:  log,
	}
}

// Search runs iterative deepening on pos until the depth or time budget
// runs out. Only fully completed iterations contribute the final
// result; a cancelled iteration is discarded. When no legal move
// exists the result carries board.NoMove and the terminal score.
func (s *Searcher) Search(pos *board.Position, limits Limits, onIter func(Iteration)) Result {
	started := time.Now()
	s.pos = pos
	s.tm = NewTimeManager(limits, started)
	s.orderer = NewMoveOrderer()
	s.nodes = 0
	s.prevPV = nil
	s.sigHistory = pos.Signatures()

	var legal board.MoveList
	pos.GenerateLegalMoves(&legal)
	if legal.Len() == 0 {
		score := 0
		if pos.InCheck() {
			score = -MateScore
		}
		return Result{Move: board.NoMove, Score: score, Elapsed: time.Since(started)}
	}

	maxDepth := limits.Depth
	if maxDepth <= 0 || maxDepth > MaxPly {
		maxDepth = MaxPly
	}

	// Any legal move beats returning the sentinel on a tiny budget.
	result := Result{Move: legal.Get(0)}

	for depth := 1; depth <= maxDepth; depth++ {
		s.onPV = len(s.prevPV) > 0
		score := s.negascout(depth, 0, -Infinity, Infinity, true)
		if s.stop.Load() && depth > 1 {
			break
		}
		if s.pv.length[0] == 0 {
			break
		}

		line := s.pv.line(0)
		result = Result{
			Move:    line[0],
			Score:   score,
			Depth:   depth,
			PV:      line,
			Nodes:   s.nodes,
			Elapsed: time.Since(started),
		}
		s.prevPV = line

		iter := Iteration{Depth: depth, Score: score, Nodes: s.nodes, Elapsed: result.Elapsed, PV: line}
		s.log.Info().
			Int("depth", depth).
			Int("score", score).
			Int64("nodes", s.nodes).
			Dur("elapsed", result.Elapsed).
			Str("pv", movesString(line)).
			Msg("iteration complete")
		if onIter != nil {
			onIter(iter)
		}

		if s.stop.Load() {
			break
		}
		if IsMateScore(score) {
			break
		}
		if s.tm.NoTimeForNextIteration(time.Since(started)) {
			break
		}
	}

	result.Nodes = s.nodes
	result.Elapsed = time.Since(started)
	return result
}

// shouldStop polls the cancellation flag and the deadline. Called on
// every node entry, so a deadline overrun is bounded by one node.
func (s *Searcher) shouldStop() bool {
	if s.stop.Load() {
		return true
	}
	if s.tm.Expired() {
		s.stop.Store(true)
		return true
	}
	return false
}

// negascout is a principal variation search: the first move gets the
// full window, later moves a null-window probe, re-searched only when
// the probe lands strictly inside the window on a PV node.
func (s *Searcher) negascout(depth, ply, alpha, beta int, isPV bool) int {
	s.pv.reset(ply)

	if s.shouldStop() {
		return 0
	}
	s.nodes++

	if ply > 0 && s.isRepetitionOrClockDraw() {
		return 0
	}
	if ply >= MaxPly {
		return s.eval.Evaluate(s.pos)
	}

	var moves board.MoveList
	s.pos.GenerateLegalMoves(&moves)
	if moves.Len() == 0 {
		if s.pos.InCheck() {
			return -MateScore + ply
		}
		return 0
	}
	if s.pos.IsInsufficientMaterial() {
		return 0
	}

	if depth <= 0 {
		return s.quiescence(alpha, beta, ply, 0)
	}

	hashMove := board.NoMove
	if s.onPV && ply < len(s.prevPV) {
		hashMove = s.prevPV[ply]
	}
	scores := s.orderer.ScoreMoves(s.pos, &moves, ply, hashMove)

	wasOnPV := s.onPV
	best := -Infinity
	for i := 0; i < moves.Len(); i++ {
		PickMove(&moves, scores, i)
		m := moves.Get(i)
		isQuiet := !m.IsCapture(s.pos) && !m.IsPromotion()

		s.onPV = wasOnPV && m == hashMove
		undo := s.pos.MakeMove(m)
		s.sigHistory = append(s.sigHistory, s.pos.Hash)

		var score int
		if i == 0 {
			score = -s.negascout(depth-1, ply+1, -beta, -alpha, isPV)
		} else {
			score = -s.negascout(depth-1, ply+1, -alpha-1, -alpha, false)
			if score > alpha && score < beta && isPV {
				score = -s.negascout(depth-1, ply+1, -beta, -score, true)
			}
		}

		s.sigHistory = s.sigHistory[:len(s.sigHistory)-1]
		s.pos.UnmakeMove(m, undo)

		if s.stop.Load() {
			s.onPV = wasOnPV
			return 0
		}

		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
			s.pv.update(ply, m)
		}
		if alpha >= beta {
			if isQuiet {
				s.orderer.UpdateKillers(m, ply)
				s.orderer.UpdateHistory(m, depth)
			}
			break
		}
	}
	s.onPV = wasOnPV
	return best
}

// isRepetitionOrClockDraw covers the draw rules that depend on the path
// to the node: fifty-move clock and threefold repetition against the
// combined game and search history.
func (s *Searcher) isRepetitionOrClockDraw() bool {
	if s.pos.HalfMoveClock >= 100 {
		return true
	}
	count := 0
	for _, sig := range s.sigHistory {
		if sig == s.pos.Hash {
			count++
			if count >= 3 {
				return true
			}
		}
	}
	return false
}

func movesString(moves []board.Move) string {
	s := ""
	for i, m := range moves {
		if i > 0 {
			s += " "
		}
		s += m.String()
	}
	return s
}
