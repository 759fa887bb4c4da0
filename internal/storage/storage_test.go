package storage

import (
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOptionsRoundTrip(t *testing.T) {
	s := openTestStore(t)

	opts, err := s.LoadOptions()
	if err != nil {
		t.Fatalf("LoadOptions: %v", err)
	}
	if opts.Depth != 6 || opts.MoveTime != 5*time.Second {
		t.Errorf("defaults = %+v", opts)
	}

	opts.Depth = 10
	opts.MoveTime = time.Second
	if err := s.SaveOptions(opts); err != nil {
		t.Fatalf("SaveOptions: %v", err)
	}

	loaded, err := s.LoadOptions()
	if err != nil {
		t.Fatalf("LoadOptions: %v", err)
	}
	if loaded.Depth != 10 || loaded.MoveTime != time.Second {
		t.Errorf("loaded = %+v", loaded)
	}
	if loaded.LastUsed.IsZero() {
		t.Error("LastUsed not stamped on save")
	}
}

func TestRecordSearchAccumulatesStats(t *testing.T) {
	s := openTestStore(t)

	results := []Analysis{
		{FEN: "fen-a", BestMove: "e2e4", Score: 35, Depth: 6, Nodes: 10000, Elapsed: time.Second},
		{FEN: "fen-b", BestMove: "e1e8", Score: 28999, Mate: true, Depth: 3, Nodes: 500, Elapsed: 100 * time.Millisecond},
		{FEN: "fen-c", BestMove: "g1f3", Score: -12, Depth: 8, Nodes: 90000, Elapsed: 2 * time.Second},
	}
	for _, a := range results {
		if err := s.RecordSearch(a); err != nil {
			t.Fatalf("RecordSearch(%s): %v", a.FEN, err)
		}
	}

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats: %v", err)
	}
	if stats.Searches != 3 {
		t.Errorf("Searches = %d, want 3", stats.Searches)
	}
	if stats.Nodes != 100500 {
		t.Errorf("Nodes = %d, want 100500", stats.Nodes)
	}
	if stats.DeepestDepth != 8 {
		t.Errorf("DeepestDepth = %d, want 8", stats.DeepestDepth)
	}
	if stats.MatesFound != 1 {
		t.Errorf("MatesFound = %d, want 1", stats.MatesFound)
	}
	if nps := stats.NodesPerSecond(); nps < 30000 || nps > 35000 {
		t.Errorf("NodesPerSecond = %.0f, want about 32419", nps)
	}
}

func TestLoadAnalysisHitAndMiss(t *testing.T) {
	s := openTestStore(t)

	if err := s.RecordSearch(Analysis{FEN: "fen-a", BestMove: "d2d4", Score: 20, Depth: 5}); err != nil {
		t.Fatalf("RecordSearch: %v", err)
	}

	a, ok, err := s.LoadAnalysis("fen-a")
	if err != nil {
		t.Fatalf("LoadAnalysis: %v", err)
	}
	if !ok {
		t.Fatal("stored analysis not found")
	}
	if a.BestMove != "d2d4" || a.Depth != 5 {
		t.Errorf("loaded = %+v", a)
	}
	if a.CreatedAt.IsZero() {
		t.Error("CreatedAt not stamped on record")
	}

	if _, ok, err := s.LoadAnalysis("unknown"); err != nil || ok {
		t.Errorf("miss: ok=%v err=%v, want false, nil", ok, err)
	}
}

func TestRecordSearchReplacesSamePosition(t *testing.T) {
	s := openTestStore(t)

	if err := s.RecordSearch(Analysis{FEN: "fen-a", BestMove: "e2e4", Depth: 4}); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordSearch(Analysis{FEN: "fen-a", BestMove: "d2d4", Depth: 8}); err != nil {
		t.Fatal(err)
	}

	a, ok, err := s.LoadAnalysis("fen-a")
	if err != nil || !ok {
		t.Fatalf("LoadAnalysis: ok=%v err=%v", ok, err)
	}
	if a.BestMove != "d2d4" || a.Depth != 8 {
		t.Errorf("deeper search did not replace the record: %+v", a)
	}

	all, err := s.Analyses()
	if err != nil {
		t.Fatalf("Analyses: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("Analyses returned %d records, want 1", len(all))
	}
}

func TestAnalysesListsAllRecords(t *testing.T) {
	s := openTestStore(t)

	for _, fen := range []string{"fen-a", "fen-b", "fen-c"} {
		if err := s.RecordSearch(Analysis{FEN: fen, BestMove: "e2e4"}); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.Analyses()
	if err != nil {
		t.Fatalf("Analyses: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d records, want 3", len(all))
	}
	for i, want := range []string{"fen-a", "fen-b", "fen-c"} {
		if all[i].FEN != want {
			t.Errorf("record %d FEN = %q, want %q", i, all[i].FEN, want)
		}
	}
}

func TestReopenPersists(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.RecordSearch(Analysis{FEN: "fen-a", BestMove: "e2e4", Nodes: 42}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, ok, err := s.LoadAnalysis("fen-a"); err != nil || !ok {
		t.Errorf("record lost across reopen: ok=%v err=%v", ok, err)
	}
	stats, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Searches != 1 || stats.Nodes != 42 {
		t.Errorf("stats lost across reopen: %+v", stats)
	}
}
