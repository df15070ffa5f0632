package position

import (
	. "github.com/chocolatebakery/atomicgo/internal/core"
)

// PositionBoards pairs the square-indexed mailbox with the bitboard set.
// The three primitives below are the only mutators; everything else in the
// package goes through them so the two representations cannot drift.
type PositionBoards struct {
	Mailbox [64]Piece
	Bbs     BitboardSet
}

func (b *PositionBoards) PieceAt(sq Square) Piece {
	return b.Mailbox[sq]
}

func (b *PositionBoards) PieceOn(rank int, file int) Piece {
	return b.Mailbox[ToSquare(rank, file)]
}

// SetPiece places p on an empty square.
func (b *PositionBoards) SetPiece(sq Square, p Piece) {
	b.Bbs.SetSquare(sq, p)
	b.Mailbox[sq] = p
}

// RemovePiece removes p, which must be on sq.
func (b *PositionBoards) RemovePiece(sq Square, p Piece) {
	b.Bbs.ClearSquare(sq, p)
	b.Mailbox[sq] = PieceNone
}

// MovePiece moves p from src to an empty dst.
func (b *PositionBoards) MovePiece(src Square, dst Square, p Piece) {
	b.Bbs.ClearSquare(src, p)
	b.Bbs.SetSquare(dst, p)
	b.Mailbox[src] = PieceNone
	b.Mailbox[dst] = p
}

// MoveAndChangePiece moves p from src to an empty dst, changing its type on
// the way; used for promotions.
func (b *PositionBoards) MoveAndChangePiece(src Square, dst Square, p Piece, newType PieceType) {
	promoted := CopyPieceColor(p, newType)

	b.Bbs.ClearSquare(src, p)
	b.Bbs.SetSquare(dst, promoted)
	b.Mailbox[src] = PieceNone
	b.Mailbox[dst] = promoted
}

// RegenFromBbs rebuilds the mailbox from the bitboards, for positions set up
// by writing bitboards directly.
func (b *PositionBoards) RegenFromBbs() {
	for sq := Square(0); sq < 64; sq++ {
		b.Mailbox[sq] = PieceNone
	}

	for t := Pawn; t <= King; t++ {
		for c := Black; c <= White; c++ {
			b.Bbs.ForPieceAndColor(t, c).EachSquare(func(sq Square) {
				b.Mailbox[sq] = ColorPiece(t, c)
			})
		}
	}
}

// Consistent reports whether the mailbox and bitboards agree; only the debug
// verification path calls it.
func (b *PositionBoards) Consistent() bool {
	for sq := Square(0); sq < 64; sq++ {
		p := b.Mailbox[sq]
		if p == PieceNone {
			if b.Bbs.Occupancy().IsSet(sq) {
				return false
			}
			continue
		}
		if !b.Bbs.ForColoredPiece(p).IsSet(sq) {
			return false
		}
	}
	return b.Bbs.ForColor(Black)&b.Bbs.ForColor(White) == 0
}
