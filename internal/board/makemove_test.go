package board

import (
	"math/rand"
	"testing"
)

// positionsEqual compares every state field except the game history.
func positionsEqual(a, b *Position) bool {
	return a.Pieces == b.Pieces &&
		a.Occupied == b.Occupied &&
		a.AllOccupied == b.AllOccupied &&
		a.SideToMove == b.SideToMove &&
		a.CastlingRights == b.CastlingRights &&
		a.EnPassant == b.EnPassant &&
		a.HalfMoveClock == b.HalfMoveClock &&
		a.FullMoveNumber == b.FullMoveNumber &&
		a.Hash == b.Hash &&
		a.KingSquare == b.KingSquare
}

// TestMakeUnmakeRandomWalk plays random legal games and checks that
// every unmake restores the exact prior state and that the incremental
// hash always agrees with a from-scratch recompute.
func TestMakeUnmakeRandomWalk(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for game := 0; game < 20; game++ {
		pos := NewPosition()
		for ply := 0; ply < 120; ply++ {
			var moves MoveList
			pos.GenerateLegalMoves(&moves)
			if moves.Len() == 0 {
				break
			}
			m := moves.Get(rng.Intn(moves.Len()))

			before := pos.Copy()
			undo := pos.MakeMove(m)
			if !undo.Valid {
				t.Fatalf("legal move %v rejected by MakeMove", m)
			}
			if pos.Hash != pos.ComputeHash() {
				t.Fatalf("incremental hash diverged after %v at ply %d", m, ply)
			}
			pos.UnmakeMove(m, undo)
			if !positionsEqual(pos, before) {
				t.Fatalf("unmake of %v did not restore position at ply %d:\n%s\nvs\n%s",
					m, ply, pos, before)
			}

			pos.MakeMove(m)
		}
	}
}

func TestMakeMoveRejectsIllegal(t *testing.T) {
	// The knight is pinned to the king by the e8 rook.
	pos, err := ParseFEN("4r3/8/8/8/4N3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	before := pos.Copy()
	undo := pos.MakeMove(NewMove(E4, C3))
	if undo.Valid {
		t.Fatal("pinned knight move accepted")
	}
	if !positionsEqual(pos, before) {
		t.Error("rejected move left the position modified")
	}
}

func TestCastlingMoveAndRights(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	m := NewCastling(E1, G1)
	undo := pos.MakeMove(m)
	if !undo.Valid {
		t.Fatal("castling rejected")
	}
	if pos.PieceAt(G1) != WhiteKing || pos.PieceAt(F1) != WhiteRook {
		t.Error("king or rook not on castled squares")
	}
	if pos.CastlingRights&(WhiteKingSide|WhiteQueenSide) != 0 {
		t.Error("white rights should be gone after castling")
	}
	if pos.CastlingRights&(BlackKingSide|BlackQueenSide) != BlackKingSide|BlackQueenSide {
		t.Error("black rights must survive")
	}
	pos.UnmakeMove(m, undo)
	if pos.ToFEN() != "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1" {
		t.Errorf("unmake broke the position: %s", pos.ToFEN())
	}
}

func TestRookCaptureClearsRights(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if undo := pos.MakeMove(NewMove(A1, A8)); !undo.Valid {
		t.Fatal("RxR rejected")
	}
	if pos.CastlingRights != WhiteKingSide|BlackKingSide {
		t.Errorf("rights = %s, want Kk", pos.CastlingRights)
	}
}

func TestEnPassantCapture(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/3Pp3/8/8/8/4K3 w - e6 0 1")
	if err != nil {
		t.Fatal(err)
	}
	m := NewEnPassant(D5, E6)
	undo := pos.MakeMove(m)
	if !undo.Valid {
		t.Fatal("en passant rejected")
	}
	if pos.PieceAt(E6) != WhitePawn {
		t.Error("capturing pawn not on e6")
	}
	if pos.PieceAt(E5) != NoPiece {
		t.Error("captured pawn still on e5")
	}
	if undo.CapturedPiece != BlackPawn {
		t.Errorf("CapturedPiece = %v, want black pawn", undo.CapturedPiece)
	}
}

func TestDoublePushSetsEnPassant(t *testing.T) {
	pos := NewPosition()
	if undo := pos.MakeMove(NewMove(E2, E4)); !undo.Valid {
		t.Fatal("e2e4 rejected")
	}
	if pos.EnPassant != E3 {
		t.Errorf("EnPassant = %v, want e3", pos.EnPassant)
	}
	if undo := pos.MakeMove(NewMove(G8, F6)); !undo.Valid {
		t.Fatal("g8f6 rejected")
	}
	if pos.EnPassant != NoSquare {
		t.Error("en passant square must clear after the reply")
	}
}

func TestPromotion(t *testing.T) {
	pos, err := ParseFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	m := NewPromotion(A7, A8, Queen)
	if undo := pos.MakeMove(m); !undo.Valid {
		t.Fatal("promotion rejected")
	}
	if pos.PieceAt(A8) != WhiteQueen {
		t.Errorf("PieceAt(a8) = %v, want white queen", pos.PieceAt(A8))
	}
	if pos.Pieces[White][Pawn] != 0 {
		t.Error("pawn bitboard should be empty after promoting the last pawn")
	}
}

func TestApplyMoveValidatesAndRecords(t *testing.T) {
	pos := NewPosition()
	if pos.ApplyMove(NewMove(E2, E5)) {
		t.Fatal("illegal move accepted by ApplyMove")
	}
	if pos.ApplyMove(NewMove(A8, A1)) {
		t.Fatal("moving the opponent's piece accepted")
	}
	if !pos.ApplyMove(NewMove(E2, E4)) {
		t.Fatal("e2e4 rejected")
	}
	if !pos.ApplyMove(NewMove(E7, E5)) {
		t.Fatal("e7e5 rejected")
	}
	if got := pos.MoveHistory(); len(got) != 2 || got[0] != NewMove(E2, E4) {
		t.Errorf("MoveHistory = %v", got)
	}
	if sigs := pos.Signatures(); len(sigs) != 3 {
		t.Errorf("Signatures length = %d, want 3", len(sigs))
	}
	if !pos.UndoLast() {
		t.Fatal("UndoLast failed")
	}
	if len(pos.MoveHistory()) != 1 {
		t.Error("history not popped")
	}
	if pos.SideToMove != Black {
		t.Error("side to move not restored")
	}
}

func TestHalfMoveClock(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/8/8/8/4P3/R3K3 w - - 7 30")
	if err != nil {
		t.Fatal(err)
	}
	pos.MakeMove(NewMove(A1, A5)) // quiet rook move increments
	if pos.HalfMoveClock != 8 {
		t.Errorf("clock = %d, want 8", pos.HalfMoveClock)
	}
	pos, _ = ParseFEN("4k3/8/8/8/8/8/4P3/R3K3 w - - 7 30")
	pos.MakeMove(NewMove(E2, E3)) // pawn move resets
	if pos.HalfMoveClock != 0 {
		t.Errorf("clock = %d, want 0", pos.HalfMoveClock)
	}
}
