package position

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"

	. "github.com/chocolatebakery/atomicgo/internal/core"
	. "github.com/chocolatebakery/atomicgo/internal/helpers"
)

func TestStartingPositionFen(t *testing.T) {
	p := Starting()
	assert.Equal(t, StartingFen, p.ToFen())
}

func TestFenRoundtrip(t *testing.T) {
	fens := []string{
		StartingFen,
		"rnbqkbnr/pppp1ppp/8/8/4p3/5P2/PPPP1PPP/RNBQKBNR w - - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"4k3/8/8/pP6/8/8/8/4K3 w - a6 0 1",
		"8/8/8/3k4/3K4/8/8/3r4 w - - 0 1",
		"4k3/8/8/8/8/8/8/4K2R b K - 4 11",
	}

	for _, fen := range fens {
		p, err := FromFen(fen)
		assert.True(t, IsNil(err), fen)
		assert.Equal(t, fen, p.ToFen())
	}
}

func TestFenRejectsMalformed(t *testing.T) {
	invalid := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQxq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQ1BNR w KQkq - 0 1",  // no white king
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPPP/RNBQKBNR w KQkq - 0 1", // 9 files
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq zz 0 1",
	}

	for _, fen := range invalid {
		_, err := FromFen(fen)
		assert.False(t, IsNil(err), fen)
	}
}

func TestFenFailureLeavesPositionUntouched(t *testing.T) {
	p := Starting()
	before := p.ToFen()

	err := p.ResetFromFen("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQ1BNR w KQkq - 0 1")
	assert.False(t, IsNil(err))
	assert.Equal(t, before, p.ToFen())
}

func TestKeyMatchesRegenAfterMoves(t *testing.T) {
	p := Starting()

	for _, moveStr := range []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "g8f6", "e1g1"} {
		move, err := p.MoveFromUci(moveStr)
		assert.True(t, IsNil(err), moveStr)
		assert.True(t, p.IsPseudolegal(move), moveStr)
		assert.True(t, p.IsLegal(move), moveStr)

		p.ApplyMoveUnchecked(move, nil, true)
		assert.True(t, p.Verify(true, DefaultLogger), moveStr)
	}
}

func TestApplyPopRestoresState(t *testing.T) {
	fens := []string{
		StartingFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"4k3/8/8/pP6/8/8/8/4K3 w - a6 0 1",
	}

	for _, fen := range fens {
		p, err := FromFen(fen)
		assert.True(t, IsNil(err), fen)

		// LastMove is bookkeeping on the state that was left behind, not part
		// of the position proper.
		snapshot := func() string {
			state := *p.State()
			state.LastMove = NullMove
			return spew.Sdump(state)
		}

		before := snapshot()
		beforeFen := p.ToFen()

		for _, move := range p.LegalMoves() {
			p.ApplyMoveUnchecked(move, nil, true)
			p.PopMove(nil)

			assert.Equal(t, beforeFen, p.ToFen(), move.DebugString())
			assert.Equal(t, before, snapshot(), move.DebugString())
		}
	}
}

func TestCastlingRights(t *testing.T) {
	p, err := FromFen("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	assert.True(t, IsNil(err))

	move, err := p.MoveFromUci("e1c1")
	assert.True(t, IsNil(err))
	assert.Equal(t, CastlingMove, move.Type())
	assert.Equal(t, A1, move.Dst())

	assert.True(t, p.IsPseudolegal(move))
	assert.True(t, p.IsLegal(move))

	p.ApplyMoveUnchecked(move, nil, true)

	state := p.State()
	assert.Equal(t, SquareNone, state.CastlingRooks.White().Kingside)
	assert.Equal(t, SquareNone, state.CastlingRooks.White().Queenside)
	assert.Equal(t, H8, state.CastlingRooks.Black().Kingside)
	assert.Equal(t, A8, state.CastlingRooks.Black().Queenside)

	assert.True(t, p.Verify(true, DefaultLogger))
}

func TestRookMoveDropsCastlingRight(t *testing.T) {
	p := Starting()

	for _, moveStr := range []string{"h2h4", "h7h5", "h1h3"} {
		move, _ := p.MoveFromUci(moveStr)
		p.ApplyMoveUnchecked(move, nil, true)
	}

	state := p.State()
	assert.Equal(t, SquareNone, state.CastlingRooks.White().Kingside)
	assert.Equal(t, A1, state.CastlingRooks.White().Queenside)
	assert.True(t, p.Verify(true, DefaultLogger))
}

func TestNullMove(t *testing.T) {
	p, err := FromFen("4k3/8/8/8/8/8/8/4K2R w K - 4 11")
	assert.True(t, IsNil(err))

	key := p.Key()

	p.ApplyMoveUnchecked(NullMove, nil, true)
	assert.Equal(t, Black, p.ToMove())
	assert.NotEqual(t, key, p.Key())

	p.PopMove(nil)
	assert.Equal(t, White, p.ToMove())
	assert.Equal(t, key, p.Key())
}

func TestMoveFromUciPromotion(t *testing.T) {
	p, err := FromFen("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	assert.True(t, IsNil(err))

	move, parseErr := p.MoveFromUci("a7a8q")
	assert.True(t, IsNil(parseErr))
	assert.Equal(t, PromotionMove, move.Type())
	assert.Equal(t, Queen, move.Promo())

	assert.True(t, p.IsPseudolegal(move))
	assert.True(t, p.IsLegal(move))

	p.ApplyMoveUnchecked(move, nil, true)
	assert.Equal(t, "Q3k3/8/8/8/8/8/8/4K3 b - - 0 1", p.ToFen())
}

func TestMoveFromUciRejectsGarbage(t *testing.T) {
	p := Starting()

	for _, moveStr := range []string{"", "e2", "e2e", "z2e4", "e2e9", "e7e8x", "e2e4qq"} {
		_, err := p.MoveFromUci(moveStr)
		assert.False(t, IsNil(err), moveStr)
	}
}

func TestEnPassantSquareSetOnDoublePush(t *testing.T) {
	p := Starting()

	move, _ := p.MoveFromUci("e2e4")
	p.ApplyMoveUnchecked(move, nil, true)

	assert.Equal(t, ToSquare(2, 4), p.State().EnPassant)
	assert.True(t, p.Verify(true, DefaultLogger))

	move, _ = p.MoveFromUci("a7a6")
	p.ApplyMoveUnchecked(move, nil, true)
	assert.Equal(t, SquareNone, p.State().EnPassant)
	assert.True(t, p.Verify(true, DefaultLogger))
}

func TestCopyStateFrom(t *testing.T) {
	p := Starting()
	move, _ := p.MoveFromUci("e2e4")
	p.ApplyMoveUnchecked(move, nil, true)

	worker := NewPosition()
	worker.CopyStateFrom(p)

	assert.Equal(t, p.ToFen(), worker.ToFen())
	assert.Equal(t, p.Key(), worker.Key())
	assert.Equal(t, 0, worker.Ply())
}

func TestClearStateHistory(t *testing.T) {
	p := Starting()
	for _, moveStr := range []string{"e2e4", "e7e5"} {
		move, _ := p.MoveFromUci(moveStr)
		p.ApplyMoveUnchecked(move, nil, true)
	}

	fen := p.ToFen()
	p.ClearStateHistory()

	assert.Equal(t, fen, p.ToFen())
	assert.Equal(t, 0, p.Ply())
}
