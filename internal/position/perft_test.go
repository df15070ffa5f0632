package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPerftStartingPosition(t *testing.T) {
	if testing.Short() {
		t.Skip("perft is slow")
	}

	p := Starting()

	// Atomic agrees with orthodox movegen until explosions and the variant
	// legality rules start to bite.
	assert.Equal(t, uint64(20), p.Perft(1))
	assert.Equal(t, uint64(400), p.Perft(2))
	assert.Equal(t, uint64(8902), p.Perft(3))
}

func TestPerftMatchesLegalMoveCount(t *testing.T) {
	fens := []string{
		StartingFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"4k3/8/8/pP6/8/8/8/4K3 w - a6 0 1",
		"8/8/8/3k4/3K4/8/8/3r4 w - - 0 1",
	}

	for _, fen := range fens {
		p := mustFromFen(t, fen)
		assert.Equal(t, uint64(len(p.LegalMoves())), p.Perft(1), fen)
	}
}

func TestPerftDivideSumsToPerft(t *testing.T) {
	p := mustFromFen(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")

	divide := p.PerftDivide(2)
	total := uint64(0)
	for _, nodes := range divide {
		total += nodes
	}

	assert.Equal(t, p.Perft(2), total)
}

func TestLegalMovesNeverLeaveOwnKingExploded(t *testing.T) {
	fens := []string{
		StartingFen,
		"4k3/8/8/8/8/8/8/KnR5 w - - 0 1",
		"4k3/8/8/8/8/8/2n5/1rR1K3 w - - 0 1",
	}

	for _, fen := range fens {
		p := mustFromFen(t, fen)
		for _, move := range p.LegalMoves() {
			p.ApplyMoveUnchecked(move, nil, true)

			// The mover's king may only be gone if the enemy king went
			// with it, which a legal move never allows.
			mover := p.Opponent()
			moverKingGone := p.Bbs().Kings(mover).IsEmpty()
			enemyKingAlive := !p.Bbs().Kings(mover.Other()).IsEmpty()
			assert.False(t, moverKingGone && enemyKingAlive, "%v after %v", fen, move.DebugString())

			p.PopMove(nil)
		}
	}
}
