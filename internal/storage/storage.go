// Package storage keeps start layouts, finished-game records and statistics
// in a badger database.
package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"golang.org/x/exp/slices"

	"github.com/hailam/chessrules/internal/board"
)

// ErrNotFound is returned when a key does not exist.
var ErrNotFound = errors.New("not found")

// Storage keys
const (
	keyStats          = "stats"
	keyGameSeq        = "seq:game"
	keyStartStateSeq  = "seq:startstate"
	prefixStartState  = "startstate:"
	prefixGameRecord  = "game:"
	StandardStateID   = 1
	standardStateName = "standard"
)

// Final statuses of a game record.
const (
	StatusWhiteWon = "WHITE_WON"
	StatusBlackWon = "BLACK_WON"
	StatusDraw     = "DRAW"
)

// StartState is a named starting position.
type StartState struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Layout     string `json:"layout"`
	SideToMove string `json:"side_to_move"`
}

// GameRecord is the summary of a finished game. It holds no board state.
type GameRecord struct {
	ID        int64     `json:"id"`
	White     string    `json:"white"`
	Black     string    `json:"black"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	Plies     int       `json:"plies"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
}

// Duration is the wall-clock length of the game.
func (r GameRecord) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// GameStats aggregates every recorded game.
type GameStats struct {
	GamesPlayed   int            `json:"games_played"`
	WhiteWins     int            `json:"white_wins"`
	BlackWins     int            `json:"black_wins"`
	Draws         int            `json:"draws"`
	GamesByType   map[string]int `json:"games_by_type"`
	TotalPlayTime time.Duration  `json:"total_play_time"`
	LongestGame   int            `json:"longest_game_plies"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{GamesByType: make(map[string]int)}
}

// WhiteScore returns white's score in percent, draws counting half.
func (s *GameStats) WhiteScore() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return (float64(s.WhiteWins) + float64(s.Draws)/2) / float64(s.GamesPlayed) * 100
}

// Options configures Open.
type Options struct {
	Dir      string // database directory, ignored in memory
	InMemory bool
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db       *badger.DB
	codec    *codec
	gameSeq  *badger.Sequence
	stateSeq *badger.Sequence
}

// Open opens (or creates) the database.
func Open(opts Options) (*Storage, error) {
	bopts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	bopts.Logger = nil // Disable logging

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	c, err := newCodec()
	if err != nil {
		db.Close()
		return nil, err
	}
	seq, err := db.GetSequence([]byte(keyGameSeq), 16)
	if err != nil {
		c.close()
		db.Close()
		return nil, fmt.Errorf("game sequence: %w", err)
	}
	stateSeq, err := db.GetSequence([]byte(keyStartStateSeq), 4)
	if err != nil {
		seq.Release()
		c.close()
		db.Close()
		return nil, fmt.Errorf("start state sequence: %w", err)
	}
	return &Storage{db: db, codec: c, gameSeq: seq, stateSeq: stateSeq}, nil
}

// Close releases the sequence and closes the database.
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.gameSeq.Release()
	if serr := s.stateSeq.Release(); err == nil {
		err = serr
	}
	s.codec.close()
	if cerr := s.db.Close(); err == nil {
		err = cerr
	}
	return err
}

// NextGameID returns a game id never handed out before, starting at 1.
func (s *Storage) NextGameID() (int64, error) {
	n, err := s.gameSeq.Next()
	if err != nil {
		return 0, err
	}
	return int64(n) + 1, nil
}

func startStateKey(id int64) []byte {
	return []byte(fmt.Sprintf("%s%020d", prefixStartState, id))
}

func gameRecordKey(id int64) []byte {
	return []byte(fmt.Sprintf("%s%020d", prefixGameRecord, id))
}

func (s *Storage) put(txn *badger.Txn, key []byte, v any) error {
	data, err := s.codec.marshal(v)
	if err != nil {
		return err
	}
	return txn.Set(key, data)
}

func (s *Storage) get(txn *badger.Txn, key []byte, v any) error {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return s.codec.unmarshal(val, v)
	})
}

// scan decodes every value under prefix, in key order.
func (s *Storage) scan(prefix string, decode func(val []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			if err := it.Item().Value(decode); err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveStartState stores st. A zero ID is replaced by a fresh id from the
// start state sequence; ids below 2 are kept for the standard position.
func (s *Storage) SaveStartState(st *StartState) error {
	if _, err := board.New(st.Layout, st.SideToMove); err != nil {
		return err
	}
	if st.ID == 0 {
		n, err := s.stateSeq.Next()
		if err != nil {
			return fmt.Errorf("start state id: %w", err)
		}
		st.ID = int64(n) + StandardStateID + 1
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return s.put(txn, startStateKey(st.ID), st)
	})
}

// LoadStartState loads a start state by id.
func (s *Storage) LoadStartState(id int64) (*StartState, error) {
	st := &StartState{}
	err := s.db.View(func(txn *badger.Txn) error {
		return s.get(txn, startStateKey(id), st)
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// ListStartStates returns every start state ordered by id.
func (s *Storage) ListStartStates() ([]StartState, error) {
	var states []StartState
	err := s.scan(prefixStartState, func(val []byte) error {
		var st StartState
		if err := s.codec.unmarshal(val, &st); err != nil {
			return err
		}
		states = append(states, st)
		return nil
	})
	return states, err
}

// SeedStandard installs the standard position as start state 1 unless it
// already exists.
func (s *Storage) SeedStandard() error {
	_, err := s.LoadStartState(StandardStateID)
	if err == nil || !errors.Is(err, ErrNotFound) {
		return err
	}
	return s.SaveStartState(&StartState{
		ID:         StandardStateID,
		Name:       standardStateName,
		Layout:     board.StandardLayout,
		SideToMove: board.White.Token(),
	})
}

// LoadGameRecord loads a finished game by id.
func (s *Storage) LoadGameRecord(id int64) (*GameRecord, error) {
	rec := &GameRecord{}
	err := s.db.View(func(txn *badger.Txn) error {
		return s.get(txn, gameRecordKey(id), rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListGameRecords returns every recorded game, most recent first.
func (s *Storage) ListGameRecords() ([]GameRecord, error) {
	var recs []GameRecord
	err := s.scan(prefixGameRecord, func(val []byte) error {
		var rec GameRecord
		if err := s.codec.unmarshal(val, &rec); err != nil {
			return err
		}
		recs = append(recs, rec)
		return nil
	})
	slices.SortStableFunc(recs, func(a, b GameRecord) int { return b.EndedAt.Compare(a.EndedAt) })
	return recs, err
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()
	err := s.db.View(func(txn *badger.Txn) error {
		return s.loadStats(txn, stats)
	})
	return stats, err
}

func (s *Storage) loadStats(txn *badger.Txn, stats *GameStats) error {
	err := s.get(txn, []byte(keyStats), stats)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if stats.GamesByType == nil {
		stats.GamesByType = make(map[string]int)
	}
	return err
}

// RecordGame stores the record of a finished game and folds it into the
// statistics in one transaction.
func (s *Storage) RecordGame(rec GameRecord) error {
	return s.db.Update(func(txn *badger.Txn) error {
		stats := NewGameStats()
		if err := s.loadStats(txn, stats); err != nil {
			return err
		}

		stats.GamesPlayed++
		stats.GamesByType[rec.Type]++
		stats.TotalPlayTime += rec.Duration()
		if rec.Plies > stats.LongestGame {
			stats.LongestGame = rec.Plies
		}
		switch rec.Status {
		case StatusWhiteWon:
			stats.WhiteWins++
		case StatusBlackWon:
			stats.BlackWins++
		case StatusDraw:
			stats.Draws++
		}

		if err := s.put(txn, gameRecordKey(rec.ID), rec); err != nil {
			return err
		}
		return s.put(txn, []byte(keyStats), stats)
	})
}
