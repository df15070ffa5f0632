package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCycleAfterReversibleKnightDance(t *testing.T) {
	p := mustFromFen(t, "4k3/8/8/8/8/8/8/N3K2N w - - 0 1")

	startKey := p.Key()

	for _, moveStr := range []string{"a1b3", "e8d8", "b3a1", "d8e8"} {
		move, err := p.MoveFromUci(moveStr)
		assert.True(t, err.IsNil(), moveStr)
		assert.True(t, p.IsPseudolegal(move), moveStr)
		assert.True(t, p.IsLegal(move), moveStr)
		p.ApplyMoveUnchecked(move, nil, true)
	}

	assert.Equal(t, startKey, p.Key())
	assert.True(t, p.HasCycle(4))
}

func TestNoCycleWithoutRepetition(t *testing.T) {
	p := mustFromFen(t, "4k3/8/8/8/8/8/8/N3K2N w - - 0 1")

	for _, moveStr := range []string{"a1b3", "e8d8", "h1g3"} {
		move, _ := p.MoveFromUci(moveStr)
		p.ApplyMoveUnchecked(move, nil, true)
	}

	assert.False(t, p.HasCycle(3))
}

func TestHasCycleSeesUpcomingRepetition(t *testing.T) {
	p := mustFromFen(t, "4k3/8/8/8/8/8/8/N3K2N w - - 0 1")

	// After Nb3 Kd8 Na1 it is black to move, and Ke8 would repeat the
	// position three plies back. The reversing move belongs to the side to
	// move, so the hit counts even at ply == distance.
	for _, moveStr := range []string{"a1b3", "e8d8", "b3a1"} {
		move, _ := p.MoveFromUci(moveStr)
		p.ApplyMoveUnchecked(move, nil, true)
	}

	assert.True(t, p.HasCycle(3))
}

func TestNoCycleRightAfterPawnMove(t *testing.T) {
	// A pawn push resets the halfmove clock, so the detector has no
	// reversible window to scan.
	p := Starting()

	for _, moveStr := range []string{"g1f3", "g8f6", "f3g1", "e7e5"} {
		move, _ := p.MoveFromUci(moveStr)
		p.ApplyMoveUnchecked(move, nil, true)
	}

	assert.False(t, p.HasCycle(4))
}
