package position

import (
	"github.com/chocolatebakery/atomicgo/internal/attacks"
	"github.com/chocolatebakery/atomicgo/internal/eval"
	"github.com/chocolatebakery/atomicgo/internal/keys"

	. "github.com/chocolatebakery/atomicgo/internal/core"
)

func (p *Position) removePiece(piece Piece, sq Square, updateKey bool) {
	state := p.currState()
	state.Boards.RemovePiece(sq, piece)

	if updateKey {
		state.Key ^= keys.PieceSquare(piece, sq)
	}
}

func (p *Position) movePieceNoCap(piece Piece, src Square, dst Square, updateKey bool) {
	if src == dst {
		return
	}

	state := p.currState()
	state.Boards.MovePiece(src, dst, piece)

	if piece.Type() == King {
		state.Kings[piece.Color()] = dst
	}

	if updateKey {
		state.Key ^= keys.PieceSquare(piece, src) ^ keys.PieceSquare(piece, dst)
	}
}

// explode removes every non-pawn piece in the blast radius around dst,
// except the capturer on src, which its caller removes explicitly. All
// feature subtractions for the blast are batched onto updates before any
// add is pushed.
func (p *Position) explode(dst Square, src Square, updates *eval.NnueUpdates, updateNnue bool) {
	state := p.currState()

	boom := attacks.KingAttacks(dst)
	for sq, rest := boom.NextSquare(); sq != SquareNone; sq, rest = rest.NextSquare() {
		blasted := state.Boards.PieceAt(sq)
		if sq == src || blasted == PieceNone || blasted.Type() == Pawn {
			continue
		}

		if blasted.Type() == King {
			state.Kings[blasted.Color()] = SquareNone
		}

		p.removePiece(blasted, sq, true)
		if updateNnue {
			updates.PushSub(blasted, sq)
		}
	}
}

// movePiece performs a standard move. On capture the Atomic cascade fires:
// the victim, the blast radius and the capturer itself all leave the board,
// and nothing lands on dst.
func (p *Position) movePiece(piece Piece, src Square, dst Square,
	updates *eval.NnueUpdates, updateNnue bool) Piece {
	state := p.currState()

	captured := state.Boards.PieceAt(dst)

	if captured != PieceNone {
		p.removePiece(captured, dst, true)
		if updateNnue {
			updates.PushSub(captured, dst)
		}

		p.explode(dst, src, updates, updateNnue)

		p.removePiece(piece, src, true)
		if updateNnue {
			updates.PushSub(piece, src)
		}
		if piece.Type() == King {
			state.Kings[piece.Color()] = SquareNone
		}

		return captured
	}

	if piece.Type() == King {
		color := piece.Color()
		if updateNnue && eval.RefreshRequired(color, state.Kings[color], dst) {
			updates.SetRefresh(color)
		}
	}

	p.movePieceNoCap(piece, src, dst, true)

	if updateNnue {
		updates.PushSubAdd(piece, src, dst)
	}

	return PieceNone
}

func (p *Position) promotePawn(pawn Piece, src Square, dst Square, promo PieceType,
	updates *eval.NnueUpdates, updateNnue bool) Piece {
	state := p.currState()

	captured := state.Boards.PieceAt(dst)

	if captured != PieceNone {
		// The promoted piece never materializes; the pawn dies in its own
		// blast like any other capturer.
		p.removePiece(captured, dst, true)
		if updateNnue {
			updates.PushSub(captured, dst)
		}

		p.explode(dst, src, updates, updateNnue)

		p.removePiece(pawn, src, true)
		if updateNnue {
			updates.PushSub(pawn, src)
		}

		return captured
	}

	state.Boards.MoveAndChangePiece(src, dst, pawn, promo)

	promoted := CopyPieceColor(pawn, promo)
	state.Key ^= keys.PieceSquare(pawn, src) ^ keys.PieceSquare(promoted, dst)

	if updateNnue {
		updates.PushSub(pawn, src)
		updates.PushAdd(promoted, dst)
	}

	return PieceNone
}

// castle moves the king and its own rook; never a capture, never a blast.
func (p *Position) castle(king Piece, kingSrc Square, rookSrc Square,
	updates *eval.NnueUpdates, updateNnue bool) {
	rank := int(kingSrc.Rank())

	var kingDst, rookDst Square
	if kingSrc.File() < rookSrc.File() {
		kingDst = ToSquare(rank, 6)
		rookDst = ToSquare(rank, 5)
	} else {
		kingDst = ToSquare(rank, 2)
		rookDst = ToSquare(rank, 3)
	}

	rook := CopyPieceColor(king, Rook)

	// In 960 the king or rook may already stand on its destination; remove
	// both before placing to keep the mailbox coherent.
	state := p.currState()
	state.Boards.RemovePiece(kingSrc, king)
	state.Boards.RemovePiece(rookSrc, rook)
	state.Boards.SetPiece(kingDst, king)
	state.Boards.SetPiece(rookDst, rook)
	state.Kings[king.Color()] = kingDst

	state.Key ^= keys.PieceSquare(king, kingSrc) ^ keys.PieceSquare(king, kingDst)
	state.Key ^= keys.PieceSquare(rook, rookSrc) ^ keys.PieceSquare(rook, rookDst)

	if updateNnue {
		color := king.Color()
		if eval.RefreshRequired(color, kingSrc, kingDst) {
			updates.SetRefresh(color)
		}

		updates.PushSubAdd(king, kingSrc, kingDst)
		updates.PushSubAdd(rook, rookSrc, rookDst)
	}
}

// enPassant captures the pawn behind the target square, then runs the full
// cascade centred on the target square itself.
func (p *Position) enPassant(pawn Piece, src Square, dst Square,
	updates *eval.NnueUpdates, updateNnue bool) Piece {
	rank := 4
	if dst.Rank() == 2 {
		rank = 3
	}

	captureSquare := ToSquare(rank, int(dst.File()))
	enemyPawn := pawn.FlipColor()

	p.removePiece(enemyPawn, captureSquare, true)
	if updateNnue {
		updates.PushSub(enemyPawn, captureSquare)
	}

	p.explode(dst, src, updates, updateNnue)

	p.removePiece(pawn, src, true)
	if updateNnue {
		updates.PushSub(pawn, src)
	}

	return enemyPawn
}

// ApplyMoveUnchecked applies a pseudo-legal (or null) move. When
// stateHistory is set the previous state is pushed so PopMove can restore
// it; otherwise the state is overwritten in place. Passing a non-nil nnue
// sink makes the move emit incremental feature updates.
func (p *Position) ApplyMoveUnchecked(move Move, nnue *eval.NnueState, stateHistory bool) {
	updateNnue := nnue != nil

	prevState := p.currState()
	prevState.LastMove = move

	if stateHistory {
		p.states = append(p.states, *prevState)
	}

	p.keys = append(p.keys, prevState.Key)

	state := p.currState()

	p.blackToMove = !p.blackToMove
	state.Key ^= keys.Color()

	if state.EnPassant != SquareNone {
		state.Key ^= keys.EnPassant(state.EnPassant)
		state.EnPassant = SquareNone
	}

	if move.IsNull() {
		state.Pinned = p.calcPinned()
		state.Threats = p.calcThreats()
		return
	}

	moveSrc := move.Src()
	moveDst := move.Dst()

	stm := p.Opponent()

	if stm == Black {
		p.fullmove++
	}

	newCastlingRooks := state.CastlingRooks

	moving := state.Boards.PieceAt(moveSrc)
	movingType := moving.Type()

	updates := eval.NnueUpdates{}
	captured := PieceNone

	switch move.Type() {
	case StandardMove:
		captured = p.movePiece(moving, moveSrc, moveDst, &updates, updateNnue)
	case PromotionMove:
		captured = p.promotePawn(moving, moveSrc, moveDst, move.Promo(), &updates, updateNnue)
	case CastlingMove:
		p.castle(moving, moveSrc, moveDst, &updates, updateNnue)
	case EnPassantMove:
		captured = p.enPassant(moving, moveSrc, moveDst, &updates, updateNnue)
	}

	if updateNnue {
		nnue.Update(&updates, &state.Boards.Bbs, state.BlackKing(), state.WhiteKing(), stateHistory)
	}

	// A blast can take out a castling rook far from the move itself, so
	// after any capture re-check all four rook origins.
	if captured != PieceNone {
		for c := Black; c <= White; c++ {
			pair := newCastlingRooks.Color(c)
			for _, sq := range [2]Square{pair.Kingside, pair.Queenside} {
				if sq != SquareNone && state.Boards.PieceAt(sq) != ColorPiece(Rook, c) {
					pair.Unset(sq)
				}
			}
		}
	}

	if movingType == Rook {
		newCastlingRooks.Color(stm).Unset(moveSrc)
	} else if movingType == King {
		newCastlingRooks.Color(stm).Clear()
	} else if moving == BlackPawn && move.SrcRank() == 6 && move.DstRank() == 4 {
		state.EnPassant = ToSquare(5, move.SrcFile())
		state.Key ^= keys.EnPassant(state.EnPassant)
	} else if moving == WhitePawn && move.SrcRank() == 1 && move.DstRank() == 3 {
		state.EnPassant = ToSquare(2, move.SrcFile())
		state.Key ^= keys.EnPassant(state.EnPassant)
	}

	if captured == PieceNone && movingType != Pawn {
		state.Halfmove++
	} else {
		state.Halfmove = 0
	}

	if newCastlingRooks != state.CastlingRooks {
		state.Key ^= newCastlingRooks.Key()
		state.Key ^= state.CastlingRooks.Key()
		state.CastlingRooks = newCastlingRooks
	}

	p.recalcDerivedState()
}

// PopMove unmakes the last move applied with state history.
func (p *Position) PopMove(nnue *eval.NnueState) {
	if len(p.states) < 2 {
		return
	}

	if nnue != nil {
		nnue.Pop()
	}

	p.states = p.states[:len(p.states)-1]
	p.keys = p.keys[:len(p.keys)-1]

	p.blackToMove = !p.blackToMove

	if p.currState().LastMove.IsNull() {
		return
	}

	if p.ToMove() == Black {
		p.fullmove--
	}
}
