package attacks

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/chocolatebakery/atomicgo/internal/core"
)

func TestMagicLookupsMatchSlowWalk(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	for i := 0; i < 2000; i++ {
		sq := Square(r.Intn(64))
		occupied := Bitboard(r.Uint64() & r.Uint64())

		assert.Equal(t, bishopAttacksSlow(sq, occupied), BishopAttacks(sq, occupied), sq)
		assert.Equal(t, rookAttacksSlow(sq, occupied), RookAttacks(sq, occupied), sq)
	}
}

func TestKnightAttacksFromCorner(t *testing.T) {
	a1 := ToSquare(0, 0)
	expected := SingleBitboard(ToSquare(2, 1)) | SingleBitboard(ToSquare(1, 2))
	assert.Equal(t, expected, KnightAttacks(a1))
}

func TestKingAttacksCount(t *testing.T) {
	assert.Equal(t, 3, KingAttacks(ToSquare(0, 0)).PopCount())
	assert.Equal(t, 5, KingAttacks(ToSquare(0, 4)).PopCount())
	assert.Equal(t, 8, KingAttacks(ToSquare(3, 3)).PopCount())
}

func TestPawnAttacks(t *testing.T) {
	e4 := ToSquare(3, 4)

	white := PawnAttacks(e4, White)
	assert.True(t, white.IsSet(ToSquare(4, 3)))
	assert.True(t, white.IsSet(ToSquare(4, 5)))
	assert.Equal(t, 2, white.PopCount())

	black := PawnAttacks(e4, Black)
	assert.True(t, black.IsSet(ToSquare(2, 3)))
	assert.True(t, black.IsSet(ToSquare(2, 5)))

	// Edge files only have one capture.
	assert.Equal(t, 1, PawnAttacks(ToSquare(3, 0), White).PopCount())
}

func TestRayBetween(t *testing.T) {
	a1 := ToSquare(0, 0)
	h8 := ToSquare(7, 7)
	a8 := ToSquare(7, 0)
	b3 := ToSquare(2, 1)

	assert.Equal(t, 6, RayBetween(a1, h8).PopCount())
	assert.Equal(t, 6, RayBetween(a1, a8).PopCount())
	assert.Equal(t, Bitboard(0), RayBetween(a1, b3))

	// Adjacent aligned squares have nothing between them.
	assert.Equal(t, Bitboard(0), RayBetween(a1, ToSquare(0, 1)))
}

func TestRayIntersectingIncludesEndpoints(t *testing.T) {
	a1 := ToSquare(0, 0)
	h8 := ToSquare(7, 7)

	line := RayIntersecting(a1, h8)
	assert.Equal(t, 8, line.PopCount())
	assert.True(t, line.IsSet(a1))
	assert.True(t, line.IsSet(h8))

	assert.True(t, Aligned(a1, h8, ToSquare(3, 3)))
	assert.False(t, Aligned(a1, h8, ToSquare(3, 4)))
}

func TestQueenIsBishopPlusRook(t *testing.T) {
	r := rand.New(rand.NewSource(2))

	for i := 0; i < 200; i++ {
		sq := Square(r.Intn(64))
		occupied := Bitboard(r.Uint64())

		assert.Equal(t, BishopAttacks(sq, occupied)|RookAttacks(sq, occupied),
			QueenAttacks(sq, occupied))
	}
}
