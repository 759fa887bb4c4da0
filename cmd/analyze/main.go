// Command analyze searches a single position and prints the best move,
// optionally persisting the result and running totals to the local
// analysis database.
package main

import (
	"flag"
	"os"
	"strings"

	"github.com/pssnyder/static-evaluation-engine/internal/board"
	"github.com/pssnyder/static-evaluation-engine/internal/engine"
	"github.com/pssnyder/static-evaluation-engine/internal/storage"

	"github.com/rs/zerolog"
)

var (
	fenFlag      = flag.String("fen", "", "position to analyze (empty for the starting position)")
	movesFlag    = flag.String("moves", "", "space-separated moves to play after the position")
	depthFlag    = flag.Int("depth", 0, "search depth (0 uses the stored default)")
	moveTimeFlag = flag.Duration("movetime", 0, "search time budget (0 uses the stored default)")
	saveFlag     = flag.Bool("save", false, "record the result in the analysis database")
	dbFlag       = flag.String("db", "", "database directory (empty for the platform default)")
)

func main() {
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	var store *storage.Store
	if *saveFlag {
		var err error
		store, err = storage.Open(*dbFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("open analysis database")
		}
		defer store.Close()
	}

	limits, err := resolveLimits(store)
	if err != nil {
		log.Fatal().Err(err).Msg("load stored options")
	}

	eng := engine.New(nil, log)
	if err := eng.SetPosition(*fenFlag, strings.Fields(*movesFlag)); err != nil {
		log.Fatal().Err(err).Msg("bad position")
	}

	res := eng.Search(limits)
	if res.Move == board.NoMove {
		log.Info().Str("score", engine.ScoreString(res.Score)).Msg("no legal moves")
		return
	}

	log.Info().
		Str("bestmove", res.Move.String()).
		Str("score", engine.ScoreString(res.Score)).
		Int("depth", res.Depth).
		Int64("nodes", res.Nodes).
		Dur("elapsed", res.Elapsed).
		Msg("analysis complete")

	if store != nil {
		record := storage.Analysis{
			FEN:      eng.Position().ToFEN(),
			BestMove: res.Move.String(),
			PV:       pvString(res.PV),
			Score:    res.Score,
			Mate:     engine.IsMateScore(res.Score),
			Depth:    res.Depth,
			Nodes:    res.Nodes,
			Elapsed:  res.Elapsed,
		}
		if err := store.RecordSearch(record); err != nil {
			log.Fatal().Err(err).Msg("record analysis")
		}
		stats, err := store.LoadStats()
		if err != nil {
			log.Fatal().Err(err).Msg("load statistics")
		}
		log.Info().
			Int("searches", stats.Searches).
			Int64("nodes", stats.Nodes).
			Float64("nps", stats.NodesPerSecond()).
			Int("deepest", stats.DeepestDepth).
			Msg("running totals")
	}
}

func pvString(pv []board.Move) string {
	parts := make([]string, len(pv))
	for i, m := range pv {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

// resolveLimits fills unset flags from the stored options, or from the
// built-in defaults when no database is in use.
func resolveLimits(store *storage.Store) (engine.Limits, error) {
	opts := storage.DefaultOptions()
	if store != nil {
		var err error
		opts, err = store.LoadOptions()
		if err != nil {
			return engine.Limits{}, err
		}
	}

	limits := engine.Limits{Depth: *depthFlag, MoveTime: *moveTimeFlag}
	if limits.Depth == 0 && limits.MoveTime == 0 {
		limits.Depth = opts.Depth
		limits.MoveTime = opts.MoveTime
	}
	return limits, nil
}
