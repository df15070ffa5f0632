package position

import (
	"github.com/chocolatebakery/atomicgo/internal/attacks"
	"github.com/chocolatebakery/atomicgo/internal/opts"

	. "github.com/chocolatebakery/atomicgo/internal/core"
	. "github.com/chocolatebakery/atomicgo/internal/helpers"
)

// IsPseudolegal checks geometry and occupancy only; use IsLegal on top for
// the Atomic king-safety rules. Moves are assumed non-null.
func (p *Position) IsPseudolegal(move Move) bool {
	state := p.currState()
	us := p.ToMove()

	if p.IsVariantOver() {
		return false
	}

	src := move.Src()
	srcPiece := state.Boards.PieceAt(src)

	if srcPiece == PieceNone || srcPiece.Color() != us {
		return false
	}

	moveType := move.Type()

	dst := move.Dst()
	dstPiece := state.Boards.PieceAt(dst)

	// A capture whose blast would reach our own king can be rejected before
	// looking at geometry at all.
	if dstPiece != PieceNone && !(attacks.KingAttacks(dst) & p.Bbs().Kings(us)).IsEmpty() {
		if moveType != CastlingMove {
			return false
		}
	}

	if dstPiece != PieceNone &&
		((dstPiece.Color() == us && (moveType != CastlingMove || dstPiece != ColorPiece(Rook, us))) ||
			dstPiece.Type() == King) {
		return false
	}

	// In check only evasions qualify; lean on full generation there.
	if p.IsCheck() {
		buffer := GetMovesBuffer()
		*buffer = p.appendLegalMoves(*buffer)
		found := Contains(*buffer, move)
		ReleaseMovesBuffer(buffer)
		return found
	}

	srcType := srcPiece.Type()
	them := us.Other()
	occupied := p.Bbs().Occupancy()

	if moveType == CastlingMove {
		if srcType != King {
			return false
		}

		homeRank := RelativeRank(us, 0)
		if move.SrcRank() != homeRank || move.DstRank() != homeRank {
			return false
		}

		rank := int(src.Rank())

		var kingDst, rookDst Square
		if src.File() < dst.File() {
			if dst != state.CastlingRooks.Color(us).Kingside {
				return false
			}
			kingDst = ToSquare(rank, 6)
			rookDst = ToSquare(rank, 5)
		} else {
			if dst != state.CastlingRooks.Color(us).Queenside {
				return false
			}
			kingDst = ToSquare(rank, 2)
			rookDst = ToSquare(rank, 3)
		}

		// The path must be clear apart from the king and rook themselves,
		// and no square the king crosses may be attacked.
		toKingDst := attacks.RayBetween(src, kingDst)
		toRook := attacks.RayBetween(src, dst)

		castleOcc := occupied ^ src.Bit() ^ dst.Bit()

		return (castleOcc & (toKingDst | toRook | kingDst.Bit() | rookDst.Bit())).IsEmpty() &&
			!p.anyAttacked(toKingDst|kingDst.Bit(), them)
	}

	if srcType == Pawn {
		if moveType == EnPassantMove {
			return dst == state.EnPassant && state.EnPassant != SquareNone &&
				attacks.PawnAttacks(state.EnPassant, them).IsSet(src)
		}

		srcRank := move.SrcRank()
		dstRank := move.DstRank()

		if (us == Black && dstRank >= srcRank) || (us == White && dstRank <= srcRank) {
			return false
		}

		promoRank := RelativeRank(us, 7)
		if (moveType == PromotionMove) != (dstRank == promoRank) {
			return false
		}

		if move.SrcFile() != move.DstFile() {
			if !(attacks.PawnAttacks(src, us) & p.Bbs().ForColor(them)).IsSet(dst) {
				return false
			}
		} else if dstPiece != PieceNone {
			return false
		}

		delta := AbsDiff(dstRank, srcRank)

		maxDelta := 1
		if srcRank == RelativeRank(us, 1) {
			maxDelta = 2
		}
		if delta > maxDelta {
			return false
		}

		if delta == 2 {
			skipped := ToSquare((srcRank+dstRank)/2, move.SrcFile())
			if occupied.IsSet(skipped) {
				return false
			}
		}

		return true
	}

	if moveType == PromotionMove || moveType == EnPassantMove {
		return false
	}

	return attacks.PieceAttacks(srcType, src, occupied).IsSet(dst)
}

// IsLegal decides full Atomic legality for a pseudo-legal move. The rules
// diverge sharply from orthodox chess: kings never capture and are never
// captured directly, exploding the enemy king wins on the spot, and an
// explosion can evade check by removing the checker.
func (p *Position) IsLegal(move Move) bool {
	us := p.ToMove()
	them := us.Other()

	state := p.currState()
	bbs := p.Bbs()

	src := move.Src()
	dst := move.Dst()

	king := state.Kings[us]
	theirKing := bbs.Kings(them)
	ourKing := bbs.Kings(us)
	checker := state.Checkers.LowestSquare()
	theirs := bbs.ForColor(them)

	if p.IsVariantOver() {
		return false
	}

	if state.Boards.PieceAt(dst) != PieceNone && move.Type() != CastlingMove {
		boom := attacks.KingAttacks(dst) & (bbs.Occupancy() ^ bbs.Pawns())

		// The king neither captures nor is captured; it only explodes.
		if state.Boards.PieceAt(src).Type() == King {
			return false
		}
		if state.Boards.PieceAt(dst).Type() == King {
			return false
		}

		if !(boom & ourKing).IsEmpty() {
			return false
		}
		if !(boom & theirKing).IsEmpty() {
			// Exploding their king ends the game before any reply, check or
			// no check.
			return true
		}

		if p.IsCheck() {
			if p.connectedKings(move) {
				return true
			}

			boomRadius := attacks.KingAttacks(checker) & theirs

			// The checking piece can be exploded out of existence: either it
			// is the capture victim itself, or it is a non-pawn inside the
			// blast radius. A pawn checker survives any blast it is not the
			// centre of.
			checkerRemoved := dst == checker ||
				(state.Boards.PieceAt(checker).Type() != Pawn && (dst.Bit()&boomRadius) != 0)

			if checkerRemoved {
				return !p.sliderReattacksKing(king, src, dst, boom)
			}
			return false
		}

		if (attacks.KingAttacks(king) & theirKing).IsEmpty() {
			if p.sliderReattacksKing(king, src, dst, boom) {
				return false
			}
		}
	}

	if move.Type() == CastlingMove {
		file := 2
		if move.SrcFile() < move.DstFile() {
			file = 6
		}
		kingDst := ToSquare(move.SrcRank(), file)

		return !p.connectedKings(move) && !p.IsCheck() && !state.Threats.IsSet(kingDst) &&
			!(opts.Chess960() && state.Pinned.IsSet(dst))
	}

	if move.Type() == EnPassantMove {
		rank := 4
		if dst.Rank() == 2 {
			rank = 3
		}
		captureSquare := ToSquare(rank, int(dst.File()))

		boom := attacks.KingAttacks(dst) & (bbs.Occupancy() ^ bbs.Pawns())
		afterBoom := bbs.Occupancy() ^ (boom | src.Bit() | captureSquare.Bit())

		theirQueens := bbs.Queens(them) & afterBoom
		theirBishops := bbs.Bishops(them) & afterBoom
		theirRooks := bbs.Rooks(them) & afterBoom

		if !(boom & ourKing).IsEmpty() {
			return false
		}
		if !(boom & theirKing).IsEmpty() {
			return true
		}
		if (attacks.KingAttacks(king) & theirKing).IsEmpty() {
			if !(attacks.BishopAttacks(king, afterBoom) & (theirQueens | theirBishops)).IsEmpty() ||
				!(attacks.RookAttacks(king, afterBoom) & (theirQueens | theirRooks)).IsEmpty() {
				return false
			}
		}
	}

	moving := state.Boards.PieceAt(src)

	if moving.Type() == King {
		kinglessOcc := bbs.Occupancy() ^ ourKing
		theirQueens := bbs.Queens(them)

		// Stepping next to the enemy king is always safe: connected kings
		// cannot be checked.
		if p.connectedKings(move) {
			return true
		}
		return !state.Threats.IsSet(dst) &&
			(attacks.BishopAttacks(dst, kinglessOcc) & (theirQueens | bbs.Bishops(them))).IsEmpty() &&
			(attacks.RookAttacks(dst, kinglessOcc) & (theirQueens | bbs.Rooks(them))).IsEmpty()
	}

	// A double check only ever ends with a king move; the exploding escapes
	// were all handled above.
	if state.Checkers.Multiple() ||
		(state.Pinned.IsSet(src) && !attacks.RayIntersecting(src, dst).IsSet(king)) {
		return false
	}

	if state.Checkers.IsEmpty() {
		return true
	}

	return (attacks.RayBetween(king, checker) | checker.Bit()).IsSet(dst)
}

// sliderReattacksKing tests whether, after the blast around dst has cleared
// boom plus the capturer and victim, some surviving enemy slider sees our
// king along the opened rays.
func (p *Position) sliderReattacksKing(king Square, src Square, dst Square, boom Bitboard) bool {
	bbs := p.Bbs()
	them := p.Opponent()

	afterBoom := bbs.Occupancy() ^ (boom | dst.Bit() | src.Bit())

	theirQueens := bbs.Queens(them) & afterBoom
	theirBishops := bbs.Bishops(them) & afterBoom
	theirRooks := bbs.Rooks(them) & afterBoom

	return !(attacks.BishopAttacks(king, afterBoom) & (theirQueens | theirBishops)).IsEmpty() ||
		!(attacks.RookAttacks(king, afterBoom) & (theirQueens | theirRooks)).IsEmpty()
}
