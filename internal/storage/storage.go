package storage

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyOptions = "options"
	keyStats   = "stats"

	analysisPrefix = "analysis:"
)

// Options stores the analysis settings used when the caller passes none.
type Options struct {
	Depth    int           `json:"depth"`
	MoveTime time.Duration `json:"move_time"`
	LastUsed time.Time     `json:"last_used"`
}

// DefaultOptions returns the built-in analysis settings.
func DefaultOptions() *Options {
	return &Options{
		Depth:    6,
		MoveTime: 5 * time.Second,
	}
}

// SearchStats accumulates totals across every recorded search.
type SearchStats struct {
	Searches     int           `json:"searches"`
	Nodes        int64         `json:"nodes"`
	TotalElapsed time.Duration `json:"total_elapsed"`
	DeepestDepth int           `json:"deepest_depth"`
	MatesFound   int           `json:"mates_found"`
}

func NewSearchStats() *SearchStats {
	return &SearchStats{}
}

// NodesPerSecond returns the overall search speed, 0 before any search.
func (s *SearchStats) NodesPerSecond() float64 {
	if s.TotalElapsed <= 0 {
		return 0
	}
	return float64(s.Nodes) / s.TotalElapsed.Seconds()
}

// Analysis is one persisted search result, keyed by the position's FEN.
type Analysis struct {
	FEN       string        `json:"fen"`
	BestMove  string        `json:"best_move"`
	PV        string        `json:"pv,omitempty"`
	Score     int           `json:"score"`
	Mate      bool          `json:"mate"`
	Depth     int           `json:"depth"`
	Nodes     int64         `json:"nodes"`
	Elapsed   time.Duration `json:"elapsed"`
	CreatedAt time.Time     `json:"created_at"`
}

// Store wraps BadgerDB for persistent analysis storage.
type Store struct {
	db *badger.DB
}

// Open opens the database at dir; an empty dir selects the platform
// default location.
func Open(dir string) (*Store, error) {
	if dir == "" {
		var err error
		dir, err = DefaultDir()
		if err != nil {
			return nil, err
		}
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveOptions persists the analysis settings.
func (s *Store) SaveOptions(opts *Options) error {
	opts.LastUsed = time.Now()

	data, err := json.Marshal(opts)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyOptions), data)
	})
}

// LoadOptions loads the analysis settings, falling back to defaults
// when none were saved yet.
func (s *Store) LoadOptions() (*Options, error) {
	opts := DefaultOptions()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyOptions))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, opts)
		})
	})
	return opts, err
}

// LoadStats loads the cumulative statistics, empty when none exist.
func (s *Store) LoadStats() (*SearchStats, error) {
	stats := NewSearchStats()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})
	return stats, err
}

func (s *Store) saveStats(stats *SearchStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// RecordSearch persists one analysis result and folds it into the
// cumulative statistics. A later search of the same position replaces
// the stored record.
func (s *Store) RecordSearch(a Analysis) error {
	a.CreatedAt = time.Now()

	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(analysisPrefix+a.FEN), data)
	})
	if err != nil {
		return err
	}

	stats, err := s.LoadStats()
	if err != nil {
		return err
	}
	stats.Searches++
	stats.Nodes += a.Nodes
	stats.TotalElapsed += a.Elapsed
	if a.Depth > stats.DeepestDepth {
		stats.DeepestDepth = a.Depth
	}
	if a.Mate {
		stats.MatesFound++
	}
	return s.saveStats(stats)
}

// LoadAnalysis returns the stored result for a FEN, reporting whether
// one exists.
func (s *Store) LoadAnalysis(fen string) (*Analysis, bool, error) {
	var a Analysis
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(analysisPrefix + fen))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &a)
		})
	})
	if err != nil || !found {
		return nil, false, err
	}
	return &a, true, nil
}

// Analyses returns every stored analysis record, in key order.
func (s *Store) Analyses() ([]Analysis, error) {
	var out []Analysis

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(analysisPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var a Analysis
				if err := json.Unmarshal(val, &a); err != nil {
					return err
				}
				out = append(out, a)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return out, err
}
