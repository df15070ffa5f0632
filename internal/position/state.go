package position

import (
	"github.com/chocolatebakery/atomicgo/internal/keys"

	. "github.com/chocolatebakery/atomicgo/internal/core"
)

// CastlingRookPair holds the origin squares of the rooks a color may still
// castle with, SquareNone when the right is gone. Tracking rook origins
// instead of flag bits covers Chess960 setups with no special casing.
type CastlingRookPair struct {
	Kingside  Square
	Queenside Square
}

func (p *CastlingRookPair) Unset(sq Square) {
	if p.Kingside == sq {
		p.Kingside = SquareNone
	}
	if p.Queenside == sq {
		p.Queenside = SquareNone
	}
}

func (p *CastlingRookPair) Clear() {
	p.Kingside = SquareNone
	p.Queenside = SquareNone
}

type CastlingRooks struct {
	Rooks [2]CastlingRookPair
}

func EmptyCastlingRooks() CastlingRooks {
	return CastlingRooks{Rooks: [2]CastlingRookPair{
		{SquareNone, SquareNone},
		{SquareNone, SquareNone},
	}}
}

func (c *CastlingRooks) Color(color Color) *CastlingRookPair {
	return &c.Rooks[color]
}

func (c *CastlingRooks) Black() *CastlingRookPair {
	return &c.Rooks[Black]
}

func (c *CastlingRooks) White() *CastlingRookPair {
	return &c.Rooks[White]
}

func (c CastlingRooks) IsEmpty() bool {
	return c == EmptyCastlingRooks()
}

// Key folds the remaining rights into the Zobrist hash.
func (c *CastlingRooks) Key() uint64 {
	result := uint64(0)
	for color := Black; color <= White; color++ {
		if c.Rooks[color].Kingside != SquareNone {
			result ^= keys.CastlingRight(color, true)
		}
		if c.Rooks[color].Queenside != SquareNone {
			result ^= keys.CastlingRight(color, false)
		}
	}
	return result
}

// BoardState is one ply's snapshot. It is plain data of a couple hundred
// bytes; apply copies it wholesale onto the stack rather than sharing any
// substructure.
type BoardState struct {
	Boards PositionBoards

	Kings         [2]Square
	CastlingRooks CastlingRooks
	EnPassant     Square

	Halfmove uint16
	Key      uint64

	Checkers Bitboard
	Pinned   Bitboard
	Threats  Bitboard

	LastMove Move
}

func newBoardState() BoardState {
	return BoardState{
		Kings:         [2]Square{SquareNone, SquareNone},
		CastlingRooks: EmptyCastlingRooks(),
		EnPassant:     SquareNone,
	}
}

func (s *BoardState) King(c Color) Square {
	return s.Kings[c]
}

func (s *BoardState) BlackKing() Square {
	return s.Kings[Black]
}

func (s *BoardState) WhiteKing() Square {
	return s.Kings[White]
}
