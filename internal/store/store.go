// Package store persists ambient engine telemetry — aggregate search
// statistics keyed by session — across process runs. It never touches
// board or transposition-table state, which stays purely in-memory per
// spec §3 ("all fields are in-memory; no persistence").
package store

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const keyAggregate = "aggregate"

// SearchRecord summarizes one completed get_best_move call, written after
// the façade returns its best move.
type SearchRecord struct {
	Session   uuid.UUID `json:"session"`
	FEN       string    `json:"fen"`
	BestMove  string    `json:"best_move"`
	Depth     int       `json:"depth"`
	Nodes     uint64    `json:"nodes"`
	ElapsedMs int64     `json:"elapsed_ms"`
	Recorded  time.Time `json:"recorded"`
}

// Aggregate accumulates totals across every recorded search.
type Aggregate struct {
	SearchCount int64 `json:"search_count"`
	TotalNodes  uint64 `json:"total_nodes"`
	TotalDepth  int64 `json:"total_depth"`
}

// Store wraps an embedded key-value database for session telemetry.
type Store struct {
	db *badger.DB
}

// Open opens (creating if necessary) a badger database rooted at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordSearch stores rec under its session ID and folds it into the
// running aggregate.
func (s *Store) RecordSearch(rec SearchRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	agg, err := s.loadAggregate()
	if err != nil {
		return err
	}
	agg.SearchCount++
	agg.TotalNodes += rec.Nodes
	agg.TotalDepth += int64(rec.Depth)
	aggData, err := json.Marshal(agg)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte("session:"+rec.Session.String()), data); err != nil {
			return err
		}
		return txn.Set([]byte(keyAggregate), aggData)
	})
}

// LoadSearch retrieves a previously recorded session, if any.
func (s *Store) LoadSearch(session uuid.UUID) (*SearchRecord, bool, error) {
	var rec SearchRecord
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte("session:" + session.String()))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	return &rec, found, err
}

// Aggregate returns the running totals across every recorded search.
func (s *Store) Aggregate() (Aggregate, error) {
	return s.loadAggregate()
}

func (s *Store) loadAggregate() (Aggregate, error) {
	var agg Aggregate
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyAggregate))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &agg)
		})
	})
	return agg, err
}

// NewSession generates a fresh session identifier for a new engine run.
func NewSession() uuid.UUID {
	return uuid.New()
}
