package game

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/storage"
)

type fakeStore struct {
	mu      sync.Mutex
	next    int64
	states  map[int64]*storage.StartState
	records []storage.GameRecord
}

func newFakeStore() *fakeStore {
	return &fakeStore{states: map[int64]*storage.StartState{
		storage.StandardStateID: {ID: storage.StandardStateID, Name: "standard", Layout: board.StandardLayout, SideToMove: "W"},
	}}
}

func (s *fakeStore) NextGameID() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.next, nil
}

func (s *fakeStore) LoadStartState(id int64) (*storage.StartState, error) {
	st, ok := s.states[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return st, nil
}

func (s *fakeStore) RecordGame(rec storage.GameRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

func newGame(t *testing.T, store Store) *Game {
	t.Helper()
	m := NewManager(store, zerolog.Nop())
	g, err := m.Create(Options{White: "alice", Black: "bob"})
	require.NoError(t, err)
	return g
}

func TestMoveAndCheckmate(t *testing.T) {
	store := newFakeStore()
	g := newGame(t, store)

	for _, mv := range []string{"Pe2e4/", "pe7e5/", "Bf1c4/", "nb8c6/", "Qd1h5/", "ng8f6/"} {
		res, err := g.Move(mv)
		require.NoError(t, err, mv)
		assert.Equal(t, Ongoing, res.Status)
	}

	res, err := g.Move("Qh5xf7#")
	require.NoError(t, err)
	assert.True(t, res.Capture)
	assert.True(t, res.Check)
	assert.True(t, res.Checkmate)
	assert.Equal(t, board.White, res.Side)
	assert.Equal(t, WhiteWon, res.Status)

	snap := g.Snapshot()
	assert.Equal(t, 7, snap.Plies)
	assert.True(t, snap.Checkmate[board.Black])
	assert.False(t, snap.Checkmate[board.White])

	require.Len(t, store.records, 1)
	rec := store.records[0]
	assert.Equal(t, storage.StatusWhiteWon, rec.Status)
	assert.Equal(t, "alice", rec.White)
	assert.Equal(t, 7, rec.Plies)
	assert.Equal(t, string(TypeDefault), rec.Type)

	_, err = g.Move("pa7a6/")
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestRejectedMoveLeavesGame(t *testing.T) {
	g := newGame(t, nil)
	before := g.Snapshot()

	_, err := g.Move("pe7e5/")
	assert.ErrorIs(t, err, board.ErrWrongTurn)
	_, err = g.Move("Pe2e5/")
	assert.ErrorIs(t, err, board.ErrIllegalMove)

	after := g.Snapshot()
	assert.Equal(t, before.FEN, after.FEN)
	assert.Equal(t, 0, after.Plies)
}

func TestMoveElapsed(t *testing.T) {
	m := NewManager(nil, zerolog.Nop())
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	g, err := m.Create(Options{Type: TypeBlitz5})
	require.NoError(t, err)

	clock = clock.Add(3 * time.Second)
	res, err := g.Move("Pe2e4/")
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, res.Elapsed)

	clock = clock.Add(1500 * time.Millisecond)
	res, err = g.Move("pe7e5/")
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, res.Elapsed)
}

func TestResignAndDraw(t *testing.T) {
	store := newFakeStore()

	g := newGame(t, store)
	require.NoError(t, g.Resign(board.White))
	assert.Equal(t, BlackWon, g.Snapshot().Status)
	assert.ErrorIs(t, g.AgreeDraw(), ErrGameOver)

	g2 := newGame(t, store)
	require.NoError(t, g2.AgreeDraw())
	assert.Equal(t, Draw, g2.Snapshot().Status)
	assert.ErrorIs(t, g2.Resign(board.Black), ErrGameOver)

	require.Len(t, store.records, 2)
	assert.Equal(t, storage.StatusBlackWon, store.records[0].Status)
	assert.Equal(t, storage.StatusDraw, store.records[1].Status)
}

type failingRecorder struct{}

func (failingRecorder) RecordGame(storage.GameRecord) error { return errors.New("disk full") }

func TestRecordFailureStillFinishes(t *testing.T) {
	g := newGame(t, nil)
	g.recorder = failingRecorder{}
	require.NoError(t, g.AgreeDraw())
	assert.Equal(t, Draw, g.Snapshot().Status)
}

func TestPossibleMoves(t *testing.T) {
	g := newGame(t, nil)
	moves, err := g.PossibleMoves("g1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"f3", "h3"}, moves)

	_, err = g.PossibleMoves("z9")
	assert.ErrorIs(t, err, board.ErrInvalidSquare)
}

func TestConcurrentMoves(t *testing.T) {
	g := newGame(t, nil)
	var wg sync.WaitGroup
	results := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = g.Move("Pe2e4/")
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range results {
		if err == nil {
			ok++
		}
	}
	assert.Equal(t, 1, ok, "exactly one writer wins")
	assert.Equal(t, 1, g.Snapshot().Plies)
}

func TestGameTypes(t *testing.T) {
	gt, err := ParseGameType("")
	require.NoError(t, err)
	assert.Equal(t, TypeDefault, gt)

	_, err = ParseGameType("2+1")
	assert.ErrorIs(t, err, ErrInvalidGameType)

	base, inc := TypeClassical90.Clock()
	assert.Equal(t, 90*time.Minute, base)
	assert.Equal(t, 30*time.Second, inc)

	base, inc = TypeDefault.Clock()
	assert.Zero(t, base)
	assert.Zero(t, inc)

	assert.Len(t, GameTypes(), 9)
	assert.Equal(t, "ONGOING", Ongoing.String())
	assert.True(t, Draw.Over())
}
