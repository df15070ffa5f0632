package position

import (
	"github.com/chocolatebakery/atomicgo/internal/attacks"

	. "github.com/chocolatebakery/atomicgo/internal/core"
	. "github.com/chocolatebakery/atomicgo/internal/helpers"
)

var promotionTypes = [4]PieceType{Queen, Rook, Bishop, Knight}

type MovesBuffer []Move

var GetMovesBuffer, ReleaseMovesBuffer, StatsMovesBuffer = CreatePool(
	func() MovesBuffer {
		return make(MovesBuffer, 0, 64)
	},
	func(x *MovesBuffer) {
		*x = (*x)[:0]
	},
)

func (p *Position) generatePawnMoves(moves []Move) []Move {
	state := p.currState()
	us := p.ToMove()
	them := us.Other()
	bbs := p.Bbs()

	occupied := bbs.Occupancy()
	theirs := bbs.ForColor(them)

	promoRank := RelativeRank(us, 7)
	startRank := RelativeRank(us, 1)

	push := 8
	if us == Black {
		push = -8
	}

	bbs.PawnsFor(us).EachSquare(func(src Square) {
		srcRank := int(src.Rank())

		single := Square(int(src) + push)
		if !occupied.IsSet(single) {
			if int(single.Rank()) == promoRank {
				for _, promo := range promotionTypes {
					moves = append(moves, Promotion(src, single, promo))
				}
			} else {
				moves = append(moves, Standard(src, single))

				if srcRank == startRank {
					double := Square(int(single) + push)
					if !occupied.IsSet(double) {
						moves = append(moves, Standard(src, double))
					}
				}
			}
		}

		captures := attacks.PawnAttacks(src, us) & theirs
		captures.EachSquare(func(dst Square) {
			if state.Boards.PieceAt(dst).Type() == King {
				return
			}
			if int(dst.Rank()) == promoRank {
				for _, promo := range promotionTypes {
					moves = append(moves, Promotion(src, dst, promo))
				}
			} else {
				moves = append(moves, Standard(src, dst))
			}
		})

		if state.EnPassant != SquareNone && attacks.PawnAttacks(state.EnPassant, them).IsSet(src) {
			moves = append(moves, EnPassant(src, state.EnPassant))
		}
	})

	return moves
}

func (p *Position) generatePieceMoves(moves []Move) []Move {
	us := p.ToMove()
	bbs := p.Bbs()

	occupied := bbs.Occupancy()
	ours := bbs.ForColor(us)
	theirKing := bbs.Kings(us.Other())

	for t := Knight; t <= King; t++ {
		bbs.ForPieceAndColor(t, us).EachSquare(func(src Square) {
			// Kings are exploded, never captured: no move generation onto
			// the enemy king's square.
			targets := attacks.PieceAttacks(t, src, occupied) &^ ours &^ theirKing

			targets.EachSquare(func(dst Square) {
				moves = append(moves, Standard(src, dst))
			})
		})
	}

	return moves
}

func (p *Position) generateCastlingMoves(moves []Move) []Move {
	state := p.currState()
	us := p.ToMove()
	them := us.Other()

	if p.IsCheck() {
		return moves
	}

	king := state.Kings[us]
	occupied := p.Bbs().Occupancy()
	rank := RelativeRank(us, 0)

	tryCastle := func(rookSrc Square, kingFile int, rookFile int) {
		if rookSrc == SquareNone {
			return
		}

		kingDst := ToSquare(rank, kingFile)
		rookDst := ToSquare(rank, rookFile)

		toKingDst := attacks.RayBetween(king, kingDst)
		toRook := attacks.RayBetween(king, rookSrc)

		castleOcc := occupied ^ king.Bit() ^ rookSrc.Bit()

		if !(castleOcc & (toKingDst | toRook | kingDst.Bit() | rookDst.Bit())).IsEmpty() {
			return
		}
		if p.anyAttacked(toKingDst|kingDst.Bit(), them) {
			return
		}

		moves = append(moves, Castling(king, rookSrc))
	}

	tryCastle(state.CastlingRooks.Color(us).Kingside, 6, 5)
	tryCastle(state.CastlingRooks.Color(us).Queenside, 2, 3)

	return moves
}

func (p *Position) appendPseudolegalMoves(moves []Move) []Move {
	if p.IsVariantOver() {
		return moves
	}

	moves = p.generatePawnMoves(moves)
	moves = p.generatePieceMoves(moves)
	moves = p.generateCastlingMoves(moves)
	return moves
}

func (p *Position) appendLegalMoves(moves []Move) []Move {
	pseudolegal := GetMovesBuffer()
	*pseudolegal = p.appendPseudolegalMoves(*pseudolegal)

	for _, move := range *pseudolegal {
		if p.IsLegal(move) {
			moves = append(moves, move)
		}
	}

	ReleaseMovesBuffer(pseudolegal)
	return moves
}

// PseudolegalMoves generates every geometrically valid move for the side to
// move. The Atomic king-safety rules are left to IsLegal.
func (p *Position) PseudolegalMoves() []Move {
	return p.appendPseudolegalMoves(make([]Move, 0, 64))
}

// LegalMoves filters the pseudo-legal list through IsLegal.
func (p *Position) LegalMoves() []Move {
	return p.appendLegalMoves(make([]Move, 0, 64))
}

// Perft counts leaf nodes of the legal move tree, the standard correctness
// probe for move generation and apply/undo. The recursion reuses pooled
// move buffers rather than allocating per node.
func (p *Position) Perft(depth int) uint64 {
	if depth <= 0 {
		return 1
	}

	buffer := GetMovesBuffer()
	*buffer = p.appendLegalMoves(*buffer)

	nodes := uint64(0)
	if depth == 1 {
		nodes = uint64(len(*buffer))
	} else {
		for _, move := range *buffer {
			p.ApplyMoveUnchecked(move, nil, true)
			nodes += p.Perft(depth - 1)
			p.PopMove(nil)
		}
	}

	ReleaseMovesBuffer(buffer)
	return nodes
}

// PerftDivide returns the per-root-move subtree counts.
func (p *Position) PerftDivide(depth int) map[string]uint64 {
	result := map[string]uint64{}

	buffer := GetMovesBuffer()
	*buffer = p.appendLegalMoves(*buffer)

	for _, move := range *buffer {
		p.ApplyMoveUnchecked(move, nil, true)
		result[move.String()] = p.Perft(depth - 1)
		p.PopMove(nil)
	}

	ReleaseMovesBuffer(buffer)
	return result
}
