package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/chocolatebakery/atomicgo/internal/helpers"
)

func TestMovePackingRoundtrip(t *testing.T) {
	for _, src := range []Square{0, 7, 28, 63} {
		for _, dst := range []Square{0, 5, 36, 63} {
			move := Standard(src, dst)
			assert.Equal(t, src, move.Src())
			assert.Equal(t, dst, move.Dst())
			assert.Equal(t, StandardMove, move.Type())
		}
	}

	for _, promo := range []PieceType{Knight, Bishop, Rook, Queen} {
		move := Promotion(ToSquare(6, 0), ToSquare(7, 0), promo)
		assert.Equal(t, PromotionMove, move.Type())
		assert.Equal(t, promo, move.Promo())
	}

	castle := Castling(ToSquare(0, 4), ToSquare(0, 7))
	assert.Equal(t, CastlingMove, castle.Type())
	assert.Equal(t, "e1h1", castle.String())

	ep := EnPassant(ToSquare(4, 1), ToSquare(5, 0))
	assert.Equal(t, EnPassantMove, ep.Type())
	assert.Equal(t, "b5a6", ep.String())

	assert.Equal(t, "0000", NullMove.String())
}

func TestPieceEncoding(t *testing.T) {
	assert.Equal(t, Black, BlackPawn.Color())
	assert.Equal(t, White, WhitePawn.Color())
	assert.Equal(t, Pawn, WhitePawn.Type())
	assert.Equal(t, King, BlackKing.Type())
	assert.Equal(t, Queen, WhiteQueen.Type())

	assert.Equal(t, WhiteRook, ColorPiece(Rook, White))
	assert.Equal(t, BlackKnight, ColorPiece(Knight, Black))

	assert.Equal(t, BlackPawn, WhitePawn.FlipColor())
	assert.Equal(t, WhiteQueen, CopyPieceColor(WhitePawn, Queen))
}

func TestPieceRuneRoundtrip(t *testing.T) {
	for p := BlackPawn; p < PieceNone; p++ {
		parsed, err := PieceFromRune(p.Rune())
		assert.True(t, IsNil(err), p)
		assert.Equal(t, p, parsed)
	}

	_, err := PieceFromRune('x')
	assert.False(t, IsNil(err))
}

func TestSquareArithmetic(t *testing.T) {
	assert.Equal(t, Square(0), ToSquare(0, 0))
	assert.Equal(t, Square(63), ToSquare(7, 7))
	assert.Equal(t, "a1", Square(0).String())
	assert.Equal(t, "h8", Square(63).String())
	assert.Equal(t, "e4", ToSquare(3, 4).String())

	sq, err := SquareFromString("e4")
	assert.True(t, IsNil(err))
	assert.Equal(t, ToSquare(3, 4), sq)

	_, err = SquareFromString("i9")
	assert.False(t, IsNil(err))

	assert.Equal(t, 0, RelativeRank(White, 0))
	assert.Equal(t, 7, RelativeRank(Black, 0))
	assert.Equal(t, 6, RelativeRank(Black, 1))
}

func TestBitboardSetInvariants(t *testing.T) {
	bbs := BitboardSet{}

	e4 := ToSquare(3, 4)
	bbs.SetSquare(e4, WhiteKnight)
	bbs.SetSquare(ToSquare(7, 4), BlackKing)

	assert.Equal(t, bbs.ForPiece(Knight)&bbs.ForColor(White), bbs.Knights(White))
	assert.True(t, bbs.Knights(White).IsSet(e4))
	assert.Equal(t, Bitboard(0), bbs.ForColor(Black)&bbs.ForColor(White))
	assert.Equal(t, bbs.ForColor(Black)|bbs.ForColor(White), bbs.Occupancy())
	assert.Equal(t, 2, bbs.Occupancy().PopCount())

	bbs.ClearSquare(e4, WhiteKnight)
	assert.False(t, bbs.Occupancy().IsSet(e4))
}

func TestBitboardIteration(t *testing.T) {
	b := Bitboard(0).WithSquare(3).WithSquare(17).WithSquare(60)

	collected := []Square{}
	b.EachSquare(func(sq Square) {
		collected = append(collected, sq)
	})
	assert.Equal(t, []Square{3, 17, 60}, collected)

	assert.Equal(t, Square(3), b.LowestSquare())
	assert.True(t, b.Multiple())
	assert.False(t, Bitboard(0).WithSquare(5).Multiple())
	assert.Equal(t, SquareNone, Bitboard(0).LowestSquare())
}
