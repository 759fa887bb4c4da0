package board

import (
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/notnil/chess"
)

// Cross-checks move generation against the notnil/chess rules engine.

func legalMoveStrings(p *Position) []string {
	var ml MoveList
	p.GenerateLegalMoves(&ml)
	out := make([]string, ml.Len())
	for i := 0; i < ml.Len(); i++ {
		out[i] = ml.Get(i).String()
	}
	sort.Strings(out)
	return out
}

func oracleMoveStrings(g *chess.Game) []string {
	moves := g.ValidMoves()
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	sort.Strings(out)
	return out
}

func TestMovegenAgainstOracle(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1",
		"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
		"8/P1k5/K7/8/8/8/8/8 w - - 0 1",
	}
	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		opt, err := chess.FEN(fen)
		if err != nil {
			t.Fatalf("oracle rejected %q: %v", fen, err)
		}
		game := chess.NewGame(opt)

		mine := legalMoveStrings(pos)
		theirs := oracleMoveStrings(game)
		if strings.Join(mine, " ") != strings.Join(theirs, " ") {
			t.Errorf("move set mismatch for %q:\n mine   %v\n oracle %v", fen, mine, theirs)
		}
	}
}

func TestRandomWalkAgainstOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for game := 0; game < 5; game++ {
		pos := NewPosition()
		oracle := chess.NewGame()

		for ply := 0; ply < 80; ply++ {
			mine := legalMoveStrings(pos)
			theirs := oracleMoveStrings(oracle)
			if strings.Join(mine, " ") != strings.Join(theirs, " ") {
				t.Fatalf("game %d ply %d: move set mismatch at %s:\n mine   %v\n oracle %v",
					game, ply, pos.ToFEN(), mine, theirs)
			}
			if len(mine) == 0 {
				break
			}

			pick := mine[rng.Intn(len(mine))]
			m, err := ParseMove(pick, pos)
			if err != nil {
				t.Fatal(err)
			}
			if !pos.ApplyMove(m) {
				t.Fatalf("own move %s rejected", pick)
			}
			om, err := chess.UCINotation{}.Decode(oracle.Position(), pick)
			if err != nil {
				t.Fatalf("oracle could not decode %s: %v", pick, err)
			}
			if err := oracle.Move(om); err != nil {
				t.Fatalf("oracle rejected %s: %v", pick, err)
			}

			// Compare placement, side, and castling; en passant encoding
			// differs between libraries when no capture is possible.
			myFields := strings.Fields(pos.ToFEN())
			oracleFields := strings.Fields(oracle.Position().String())
			for _, idx := range []int{0, 1, 2} {
				if myFields[idx] != oracleFields[idx] {
					t.Fatalf("game %d ply %d: FEN field %d mismatch: %s vs %s",
						game, ply, idx, myFields[idx], oracleFields[idx])
				}
			}
		}
	}
}
