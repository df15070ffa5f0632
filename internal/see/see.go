package see

import (
	"github.com/chocolatebakery/atomicgo/internal/attacks"
	"github.com/chocolatebakery/atomicgo/internal/position"
	"github.com/chocolatebakery/atomicgo/internal/tunable"

	. "github.com/chocolatebakery/atomicgo/internal/core"
)

// Static exchange evaluation for Atomic. Material is exchanged through
// explosions rather than recapture chains: a capture costs the capturer and
// every non-pawn neighbour of the destination, so the balance is the blast's
// net material plus a mate shortcut whenever a king sits inside it.

const ScoreMate = 32000
const scoreMaxMate = 32500

// The piece values are registered as tunables so SPSA-style tuning can move
// them between searches. Kings carry no material value; blasting one is
// handled by the mate shortcut instead.
var (
	pawnValue   = tunable.Register("SeePawnValue", 100, 50, 300, 10)
	knightValue = tunable.Register("SeeKnightValue", 450, 200, 800, 25)
	bishopValue = tunable.Register("SeeBishopValue", 450, 200, 800, 25)
	rookValue   = tunable.Register("SeeRookValue", 650, 300, 1200, 25)
	queenValue  = tunable.Register("SeeQueenValue", 1250, 600, 2400, 50)
)

func ValueOf(t PieceType) int {
	switch t {
	case Pawn:
		return pawnValue.Value()
	case Knight:
		return knightValue.Value()
	case Bishop:
		return bishopValue.Value()
	case Rook:
		return rookValue.Value()
	case Queen:
		return queenValue.Value()
	}
	return 0
}

func valueOfPiece(p Piece) int {
	if p == PieceNone {
		return 0
	}
	return ValueOf(p.Type())
}

func minInt(x int, y int) int {
	if x < y {
		return x
	}
	return y
}

// Gain is the immediate material balance of a capture: everything of theirs
// inside the blast minus everything of ours, with ±Mate when a king stands
// in the radius.
func Gain(boards *position.PositionBoards, move Move) int {
	bbs := &boards.Bbs

	us := boards.PieceAt(move.Src()).Color()
	them := us.Other()

	score := 0
	fromTo := move.Dst().Bit() | move.Src().Bit()

	if move.Type() == EnPassantMove {
		fromTo = move.Src().Bit()
		score += ValueOf(Pawn)
	}

	boom := (attacks.KingAttacks(move.Dst()) &^ bbs.Pawns()) | fromTo

	if !(boom & bbs.Kings(us)).IsEmpty() {
		return -ScoreMate
	}
	if !(boom & bbs.Kings(them)).IsEmpty() {
		return ScoreMate
	}

	(boom & bbs.ForColor(us)).EachSquare(func(sq Square) {
		score -= valueOfPiece(boards.PieceAt(sq))
	})
	(boom & bbs.ForColor(them)).EachSquare(func(sq Square) {
		score += valueOfPiece(boards.PieceAt(sq))
	})

	return score
}

// GainAtomic scores a move for threshold pruning. Captures settle on the
// blast arithmetic with a tie-break making equal trades marginally losing.
// Quiet moves instead ask what the cheapest opposing attacker of dst could
// win by recapturing into the blast: an attacker standing inside the radius
// recaptures for free, since it is annihilated either way.
func GainAtomic(pos *position.Position, move Move) int {
	boards := pos.Boards()
	bbs := &boards.Bbs

	stm := boards.PieceAt(move.Src()).Color()
	them := stm.Other()

	fromTo := move.Dst().Bit() | move.Src().Bit()
	captured := boards.PieceAt(move.Dst())
	if move.Type() == EnPassantMove {
		fromTo = move.Src().Bit()
		captured = ColorPiece(Pawn, them)
	}
	castle := move.Type() == CastlingMove

	result := 0

	if captured == PieceNone || castle {
		ourPieces := bbs.ForColor(stm)
		theirPieces := bbs.ForColor(them)

		boom := (attacks.KingAttacks(move.Dst()) &^ bbs.Pawns()) | (fromTo & bbs.Occupancy())
		boomUs := boom & ourPieces
		boomThem := boom & theirPieces

		occupied := bbs.Occupancy() ^ fromTo
		attackersBb := pos.AttackersToPos(move.Dst(), occupied, them)

		minAttacker := scoreMaxMate

		for sq, rest := attackersBb.NextSquare(); sq != SquareNone; sq, rest = rest.NextSquare() {
			if boards.PieceAt(sq).Type() != King {
				cost := valueOfPiece(boards.PieceAt(sq))
				if boom.IsSet(sq) {
					cost = 0
				}
				minAttacker = minInt(minAttacker, cost)
			}
		}

		if !attackersBb.IsEmpty() {
			if minAttacker == scoreMaxMate {
				return 0
			}
			result += minAttacker
		}

		if !(boom & bbs.Kings(stm)).IsEmpty() {
			return minInt(result-ScoreMate, 0)
		}
		if !(boom & bbs.Kings(them)).IsEmpty() {
			return minInt(result+ScoreMate, 0)
		}

		boomUs.EachSquare(func(sq Square) {
			result -= valueOfPiece(boards.PieceAt(sq))
		})
		boomThem.EachSquare(func(sq Square) {
			result += valueOfPiece(boards.PieceAt(sq))
		})
	}

	if captured != PieceNone && !castle {
		result += Gain(boards, move)
		return result - 1
	}

	return minInt(result, 0)
}

// See reports whether the exchange meets the threshold. Monotone in the
// threshold by construction.
func See(pos *position.Position, move Move, threshold int) bool {
	return GainAtomic(pos, move) >= threshold
}
