// Command perft counts leaf nodes of the move generation tree to a
// fixed depth, split by root move. The totals are compared against
// published reference counts when validating generator changes.
package main

import (
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/pssnyder/static-evaluation-engine/internal/board"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var (
	fenFlag   = flag.String("fen", board.StartFEN, "position to count from")
	depthFlag = flag.Int("depth", 5, "perft depth")
)

func main() {
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	pos, err := board.ParseFEN(*fenFlag)
	if err != nil {
		log.Fatal().Err(err).Str("fen", *fenFlag).Msg("bad position")
	}
	if *depthFlag < 1 {
		log.Fatal().Int("depth", *depthFlag).Msg("depth must be at least 1")
	}

	started := time.Now()
	total, err := splitPerft(pos, *depthFlag, log)
	if err != nil {
		log.Fatal().Err(err).Msg("perft failed")
	}
	elapsed := time.Since(started)

	log.Info().
		Int("depth", *depthFlag).
		Int64("nodes", total).
		Dur("elapsed", elapsed).
		Float64("mnps", float64(total)/elapsed.Seconds()/1e6).
		Msg("perft complete")
}

// splitPerft counts the subtree under each root move on its own copy of
// the position, bounded to one worker per CPU.
func splitPerft(pos *board.Position, depth int, log zerolog.Logger) (int64, error) {
	var moves board.MoveList
	pos.GenerateLegalMoves(&moves)

	results := make([]int64, moves.Len())

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i := 0; i < moves.Len(); i++ {
		i, m := i, moves.Get(i)
		g.Go(func() error {
			sub := pos.Copy()
			undo := sub.MakeMove(m)
			if !undo.Valid {
				return nil
			}
			results[i] = perft(sub, depth-1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var total int64
	for i := 0; i < moves.Len(); i++ {
		log.Info().Str("move", moves.Get(i).String()).Int64("nodes", results[i]).Msg("root split")
		total += results[i]
	}
	return total, nil
}

func perft(pos *board.Position, depth int) int64 {
	if depth == 0 {
		return 1
	}

	var moves board.MoveList
	pos.GeneratePseudoLegalMoves(&moves)

	var nodes int64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := pos.MakeMove(m)
		if !undo.Valid {
			continue
		}
		nodes += perft(pos, depth-1)
		pos.UnmakeMove(m, undo)
	}
	return nodes
}
