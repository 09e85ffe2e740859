package game

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/storage"
)

// Store is the persistence the manager needs. *storage.Storage satisfies it.
type Store interface {
	Recorder
	NextGameID() (int64, error)
	LoadStartState(id int64) (*storage.StartState, error)
}

// Options describes a new game. When Layout is set it wins over
// StartStateID; when neither is set the standard position is used.
type Options struct {
	White        string
	Black        string
	Type         GameType
	StartStateID int64
	Layout       string
	Side         string
}

// Manager holds the running games keyed by id.
type Manager struct {
	mu     sync.RWMutex
	games  map[int64]*Game
	store  Store
	logger zerolog.Logger
	now    func() time.Time
	lastID atomic.Int64
}

// NewManager creates a manager. store may be nil, in which case ids come from
// a local counter and finished games are not recorded.
func NewManager(store Store, logger zerolog.Logger) *Manager {
	return &Manager{
		games:  make(map[int64]*Game),
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Create starts a new game.
func (m *Manager) Create(opts Options) (*Game, error) {
	gt, err := ParseGameType(string(opts.Type))
	if err != nil {
		return nil, err
	}

	b, startState, err := m.startBoard(opts)
	if err != nil {
		return nil, err
	}

	id, err := m.nextID()
	if err != nil {
		return nil, err
	}

	now := m.now()
	g := &Game{
		id:         id,
		white:      orDefault(opts.White, "white"),
		black:      orDefault(opts.Black, "black"),
		gameType:   gt,
		startState: startState,
		board:      *b,
		startedAt:  now,
		lastMoveAt: now,
		logger:     m.logger.With().Int64("game", id).Logger(),
		now:        m.now,
	}
	if m.store != nil {
		g.recorder = m.store
	}

	m.mu.Lock()
	m.games[id] = g
	m.mu.Unlock()

	g.logger.Info().
		Str("white", g.white).
		Str("black", g.black).
		Str("type", string(gt)).
		Int64("start_state", startState).
		Msg("game created")
	return g, nil
}

func (m *Manager) startBoard(opts Options) (*board.Board, int64, error) {
	if opts.Layout != "" {
		side := opts.Side
		if side == "" {
			side = board.White.Token()
		}
		b, err := board.New(opts.Layout, side)
		return b, 0, err
	}

	id := opts.StartStateID
	if id == 0 {
		id = storage.StandardStateID
	}
	if m.store == nil {
		if id != storage.StandardStateID {
			return nil, 0, fmt.Errorf("start state %d: %w", id, storage.ErrNotFound)
		}
		return board.NewStandard(), id, nil
	}
	st, err := m.store.LoadStartState(id)
	if err != nil {
		return nil, 0, fmt.Errorf("start state %d: %w", id, err)
	}
	b, err := board.New(st.Layout, st.SideToMove)
	return b, id, err
}

func (m *Manager) nextID() (int64, error) {
	if m.store == nil {
		return m.lastID.Add(1), nil
	}
	return m.store.NextGameID()
}

// Get returns a running game.
func (m *Manager) Get(id int64) (*Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrGameNotFound, id)
	}
	return g, nil
}

// List returns the ids of all held games in ascending order.
func (m *Manager) List() []int64 {
	m.mu.RLock()
	ids := make([]int64, 0, len(m.games))
	for id := range m.games {
		ids = append(ids, id)
	}
	m.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

// Snapshots returns a snapshot of every held game ordered by id.
func (m *Manager) Snapshots() []Snapshot {
	ids := m.List()
	out := make([]Snapshot, 0, len(ids))
	for _, id := range ids {
		if g, err := m.Get(id); err == nil {
			out = append(out, g.Snapshot())
		}
	}
	return out
}

// Remove drops a game from the manager.
func (m *Manager) Remove(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return fmt.Errorf("%w: %d", ErrGameNotFound, id)
	}
	delete(m.games, id)
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
