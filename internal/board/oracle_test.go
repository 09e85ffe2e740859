package board

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The ray-cast slider generators must agree with dragontoothmg's magic
// bitboard lookups for any occupancy.
func TestSlidersAgreeWithDragontooth(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		sq := Square(rng.Intn(64))
		pos := SquareBB(sq)
		occupied := Bitboard(rng.Uint64()&rng.Uint64()) &^ pos
		friendly := (occupied & Bitboard(rng.Uint64())) | pos
		enemy := occupied &^ friendly

		all := uint64(friendly | enemy)
		wantRook := Bitboard(dragontoothmg.CalculateRookMoveBitboard(uint8(sq), all)) &^ friendly
		wantBishop := Bitboard(dragontoothmg.CalculateBishopMoveBitboard(uint8(sq), all)) &^ friendly

		require.Equal(t, wantRook, RookMoves(pos, friendly, enemy, WhiteRook), "rook on %s", sq)
		require.Equal(t, wantBishop, BishopMoves(pos, friendly, enemy, WhiteBishop), "bishop on %s", sq)
	}
}

func oracleMoves(fen string) []string {
	db := dragontoothmg.ParseFen(fen)
	seen := map[string]bool{}
	for _, m := range db.GenerateLegalMoves() {
		seen[Square(m.From()).String()+Square(m.To()).String()] = true
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func ourMoves(b *Board) []string {
	var out []string
	for _, m := range b.LegalMoves() {
		out = append(out, m.From.String()+m.To.String())
	}
	sort.Strings(out)
	return out
}

// Random games compared move by move against dragontoothmg. A game stops
// when a pawn reaches the last rank, since promotion is not modelled here.
func TestLegalMovesAgreeWithDragontooth(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping oracle games in short mode")
	}
	for seed := int64(1); seed <= 6; seed++ {
		rng := rand.New(rand.NewSource(seed))
		b := NewStandard()
		for ply := 0; ply < 80; ply++ {
			fen := b.FEN()
			ours := ourMoves(b)
			if !assert.Equal(t, oracleMoves(fen), ours, "seed %d ply %d: %s", seed, ply, fen) {
				return
			}
			if len(ours) == 0 {
				break
			}
			moves := b.LegalMoves()
			m := moves[rng.Intn(len(moves))]
			_, err := b.Apply(m.String())
			require.NoError(t, err)
			if (b.Bitboard(WhitePawn)|b.Bitboard(BlackPawn))&(Rank1|Rank8) != 0 {
				break
			}
		}
	}
}
