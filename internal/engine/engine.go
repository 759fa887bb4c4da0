// Package engine implements the search half of the engine: static
// exchange evaluation, move ordering, quiescence, and an
// iterative-deepening negascout driver over internal/board.
package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/pssnyder/static-evaluation-engine/internal/board"

	"github.com/rs/zerolog"
)

// Limits bounds a search. Zero values leave the corresponding dimension
// unbounded; Infinite searches until Stop.
type Limits struct {
	Depth    int
	MoveTime time.Duration
	Infinite bool
}

// Result is the outcome of a search: the best move of the deepest fully
// completed iteration. Move is board.NoMove exactly when the position
// has no legal moves.
type Result struct {
	Move    board.Move
	Score   int
	Depth   int
	PV      []board.Move
	Nodes   int64
	Elapsed time.Duration
}

// Engine ties a position to a searcher and an evaluator. Search runs on
// the caller's goroutine; Stop may be called from any other.
type Engine struct {
	pos      *board.Position
	searcher *Searcher
	stop     atomic.Bool
	log      zerolog.Logger

	// OnIter, when set, receives every completed deepening iteration.
	OnIter func(Iteration)
}

// New creates an engine at the starting position. A nil evaluator
// selects the default static evaluator.
func New(eval Evaluator, log zerolog.Logger) *Engine {
	e := &Engine{
		pos: board.NewPosition(),
		log: log,
	}
	if eval == nil {
		eval = NewStaticEvaluator()
	}
	e.searcher = NewSearcher(eval, &e.stop, log)
	return e
}

// SetPosition loads a FEN (empty means the starting position) and plays
// the given coordinate-notation moves on top of it.
func (e *Engine) SetPosition(fen string, moves []string) error {
	if fen == "" {
		fen = board.StartFEN
	}
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return err
	}
	for _, s := range moves {
		m, err := board.ParseMove(s, pos)
		if err != nil {
			return err
		}
		if !pos.ApplyMove(m) {
			return fmt.Errorf("illegal move %s in position %s", s, pos.ToFEN())
		}
	}
	e.pos = pos
	return nil
}

// Position returns the engine's current position.
func (e *Engine) Position() *board.Position {
	return e.pos
}

// Search runs a time- and depth-boxed search and returns the best move
// found. The position is unchanged afterwards, including after a Stop.
func (e *Engine) Search(limits Limits) Result {
	e.stop.Store(false)
	return e.searcher.Search(e.pos, limits, e.OnIter)
}

// Stop cancels a running search; the search still returns its last
// completed iteration's move.
func (e *Engine) Stop() {
	e.stop.Store(true)
}

// ScoreString formats a score as centipawns, or "mate N" inside the
// mate band.
func ScoreString(score int) string {
	if IsMateScore(score) {
		return fmt.Sprintf("mate %d", MateIn(score))
	}
	return fmt.Sprintf("cp %d", score)
}
