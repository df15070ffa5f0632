package position

import (
	"fmt"
	"strings"

	"github.com/chocolatebakery/atomicgo/internal/attacks"
	"github.com/chocolatebakery/atomicgo/internal/cuckoo"
	"github.com/chocolatebakery/atomicgo/internal/keys"
	"github.com/chocolatebakery/atomicgo/internal/opts"

	. "github.com/chocolatebakery/atomicgo/internal/core"
	. "github.com/chocolatebakery/atomicgo/internal/helpers"
)

// Position owns a stack of BoardStates (one per applied move when history is
// kept) plus the side to move and fullmove counter. It is meant to be owned
// by a single search worker; nothing here is synchronized.
type Position struct {
	states []BoardState
	keys   []uint64

	blackToMove bool
	fullmove    uint32
}

func NewPosition() *Position {
	p := &Position{
		states:   make([]BoardState, 0, 256),
		keys:     make([]uint64, 0, 512),
		fullmove: 1,
	}
	p.states = append(p.states, newBoardState())
	return p
}

func (p *Position) currState() *BoardState {
	return &p.states[len(p.states)-1]
}

func (p *Position) State() *BoardState {
	return p.currState()
}

func (p *Position) Boards() *PositionBoards {
	return &p.currState().Boards
}

func (p *Position) Bbs() *BitboardSet {
	return &p.currState().Boards.Bbs
}

func (p *Position) ToMove() Color {
	if p.blackToMove {
		return Black
	}
	return White
}

func (p *Position) Opponent() Color {
	return p.ToMove().Other()
}

func (p *Position) FullMove() uint32 {
	return p.fullmove
}

func (p *Position) Key() uint64 {
	return p.currState().Key
}

func (p *Position) King(c Color) Square {
	return p.currState().Kings[c]
}

func (p *Position) Ply() int {
	return len(p.states) - 1
}

// IsVariantOver: in Atomic the game ends the moment either king has been
// blown up.
func (p *Position) IsVariantOver() bool {
	bbs := p.Bbs()
	return bbs.Kings(Black).IsEmpty() || bbs.Kings(White).IsEmpty()
}

func (p *Position) IsCheck() bool {
	return !p.currState().Checkers.IsEmpty()
}

// KingsConnected reports whether the two kings currently stand on adjacent
// squares. Connected kings paralyze each other: no check exists while they
// touch, since any capture of a king would also explode the capturer's own.
func (p *Position) KingsConnected() bool {
	state := p.currState()
	if state.Kings[Black] == SquareNone || state.Kings[White] == SquareNone {
		return false
	}
	return attacks.KingAttacks(state.Kings[Black]).IsSet(state.Kings[White])
}

// connectedKings reports whether the kings end up adjacent after the move.
func (p *Position) connectedKings(move Move) bool {
	state := p.currState()
	us := p.ToMove()
	theirKing := p.Bbs().Kings(us.Other())

	kingLanding := state.Kings[us]
	if move.Src() == state.Kings[us] {
		kingLanding = move.Dst()
		if move.Type() == CastlingMove {
			file := 2
			if move.SrcFile() < move.DstFile() {
				file = 6
			}
			kingLanding = ToSquare(move.SrcRank(), file)
		}
	}

	if kingLanding == SquareNone {
		return false
	}
	return !(attacks.KingAttacks(kingLanding) & theirKing).IsEmpty()
}

// attackersTo collects every piece of the given color attacking sq on the
// supplied occupancy.
func (p *Position) attackersTo(sq Square, occupied Bitboard, c Color) Bitboard {
	bbs := p.Bbs()
	return (attacks.PawnAttacks(sq, c.Other()) & bbs.PawnsFor(c)) |
		(attacks.KnightAttacks(sq) & bbs.Knights(c)) |
		(attacks.KingAttacks(sq) & bbs.Kings(c)) |
		(attacks.BishopAttacks(sq, occupied) & (bbs.Bishops(c) | bbs.Queens(c))) |
		(attacks.RookAttacks(sq, occupied) & (bbs.Rooks(c) | bbs.Queens(c)))
}

func (p *Position) AttackersToPos(sq Square, occupied Bitboard, c Color) Bitboard {
	return p.attackersTo(sq, occupied, c)
}

func (p *Position) isAttacked(sq Square, by Color) bool {
	return !p.attackersTo(sq, p.Bbs().Occupancy(), by).IsEmpty()
}

func (p *Position) anyAttacked(squares Bitboard, by Color) bool {
	for sq, rest := squares.NextSquare(); sq != SquareNone; sq, rest = rest.NextSquare() {
		if p.isAttacked(sq, by) {
			return true
		}
	}
	return false
}

func (p *Position) calcCheckers() Bitboard {
	if p.KingsConnected() {
		return 0
	}

	us := p.ToMove()
	king := p.currState().Kings[us]
	if king == SquareNone {
		return 0
	}
	return p.attackersTo(king, p.Bbs().Occupancy(), us.Other())
}

func (p *Position) calcPinned() Bitboard {
	us := p.ToMove()
	them := us.Other()
	bbs := p.Bbs()

	king := p.currState().Kings[us]
	if king == SquareNone {
		return 0
	}

	ours := bbs.ForColor(us)
	theirs := bbs.ForColor(them)

	// Sliders that would hit our king if only enemy pieces blocked.
	candidates := (attacks.BishopAttacks(king, theirs) & (bbs.Bishops(them) | bbs.Queens(them))) |
		(attacks.RookAttacks(king, theirs) & (bbs.Rooks(them) | bbs.Queens(them)))

	pinned := Bitboard(0)
	candidates.EachSquare(func(slider Square) {
		between := attacks.RayBetween(king, slider) & ours
		if !between.IsEmpty() && !between.Multiple() {
			pinned |= between
		}
	})
	return pinned
}

func (p *Position) calcThreats() Bitboard {
	them := p.Opponent()
	bbs := p.Bbs()
	occupied := bbs.Occupancy()

	threats := Bitboard(0)

	bbs.PawnsFor(them).EachSquare(func(sq Square) {
		threats |= attacks.PawnAttacks(sq, them)
	})
	bbs.Knights(them).EachSquare(func(sq Square) {
		threats |= attacks.KnightAttacks(sq)
	})
	(bbs.Bishops(them) | bbs.Queens(them)).EachSquare(func(sq Square) {
		threats |= attacks.BishopAttacks(sq, occupied)
	})
	(bbs.Rooks(them) | bbs.Queens(them)).EachSquare(func(sq Square) {
		threats |= attacks.RookAttacks(sq, occupied)
	})
	if king := p.currState().Kings[them]; king != SquareNone {
		threats |= attacks.KingAttacks(king)
	}

	return threats
}

func (p *Position) recalcDerivedState() {
	state := p.currState()
	state.Checkers = p.calcCheckers()
	state.Pinned = p.calcPinned()
	state.Threats = p.calcThreats()
}

// Regen rebuilds the mailbox, king squares, Zobrist key and derived state
// from the bitboards. When enPassantFromMoves is set the EP square is also
// reconstructed from the previous state's last move, which is what the
// debug verification wants.
func (p *Position) Regen(enPassantFromMoves bool) {
	state := p.currState()

	state.Boards.RegenFromBbs()
	state.Key = 0

	for sq := Square(0); sq < 64; sq++ {
		piece := state.Boards.PieceAt(sq)
		if piece == PieceNone {
			continue
		}
		if piece.Type() == King {
			state.Kings[piece.Color()] = sq
		}
		state.Key ^= keys.PieceSquare(piece, sq)
	}

	if enPassantFromMoves {
		state.EnPassant = SquareNone

		if len(p.states) > 1 {
			lastMove := p.states[len(p.states)-2].LastMove

			if !lastMove.IsNull() && lastMove.Type() == StandardMove {
				piece := state.Boards.PieceAt(lastMove.Dst())

				if piece.Type() == Pawn && AbsDiff(lastMove.SrcRank(), lastMove.DstRank()) == 2 {
					behind := lastMove.DstRank() + 1
					if piece == WhitePawn {
						behind = lastMove.DstRank() - 1
					}
					state.EnPassant = ToSquare(behind, lastMove.DstFile())
				}
			}
		}
	}

	state.Key ^= keys.ColorFor(p.ToMove())
	state.Key ^= state.CastlingRooks.Key()
	state.Key ^= keys.EnPassant(state.EnPassant)

	p.recalcDerivedState()
}

// HasCycle reports an upcoming or already-seen repetition using the cuckoo
// table of reversible moves; see Marcel van Kervinck's scheme. A hit at or
// beyond the search root (d >= ply) only counts when the side to move owns
// the reversing move.
func (p *Position) HasCycle(ply int) bool {
	state := p.currState()

	end := MinInt(int(state.Halfmove), len(p.keys))
	if end < 3 {
		return false
	}

	keyAt := func(d int) uint64 {
		return p.keys[len(p.keys)-d]
	}

	occupied := p.Bbs().Occupancy()
	originalKey := state.Key

	other := ^(originalKey ^ keyAt(1))

	for d := 3; d <= end; d += 2 {
		currKey := keyAt(d)

		other ^= ^(currKey ^ keyAt(d-1))
		if other != 0 {
			continue
		}

		diff := originalKey ^ currKey

		slot := cuckoo.H1(diff)
		if diff != cuckoo.Keys[slot] {
			slot = cuckoo.H2(diff)
		}
		if diff != cuckoo.Keys[slot] {
			continue
		}

		move := cuckoo.Moves[slot]

		if (occupied & attacks.RayBetween(move.Src(), move.Dst())).IsEmpty() {
			if ply > d {
				return true
			}

			piece := state.Boards.PieceAt(move.Src())
			if piece == PieceNone {
				piece = state.Boards.PieceAt(move.Dst())
			}

			return piece != PieceNone && piece.Color() == p.ToMove()
		}
	}

	return false
}

// CopyStateFrom makes this position a fresh single-state copy of another,
// for handing to a new search worker.
func (p *Position) CopyStateFrom(other *Position) {
	p.states = p.states[:0]
	p.keys = p.keys[:0]

	p.states = append(p.states, *other.currState())

	p.blackToMove = other.blackToMove
	p.fullmove = other.fullmove
}

// ClearStateHistory keeps only the current state, for ucinewgame.
func (p *Position) ClearStateHistory() {
	state := *p.currState()
	p.states = p.states[:1]
	p.states[0] = state
	p.keys = p.keys[:0]
}

func (p *Position) ToFen() string {
	state := p.currState()

	fen := strings.Builder{}

	for rank := 7; rank >= 0; rank-- {
		emptySquares := 0
		for file := 0; file < 8; file++ {
			piece := state.Boards.PieceOn(rank, file)
			if piece == PieceNone {
				emptySquares++
				continue
			}
			if emptySquares > 0 {
				fen.WriteString(fmt.Sprint(emptySquares))
				emptySquares = 0
			}
			fen.WriteRune(piece.Rune())
		}
		if emptySquares > 0 {
			fen.WriteString(fmt.Sprint(emptySquares))
		}
		if rank > 0 {
			fen.WriteByte('/')
		}
	}

	if p.ToMove() == White {
		fen.WriteString(" w ")
	} else {
		fen.WriteString(" b ")
	}

	if state.CastlingRooks.IsEmpty() {
		fen.WriteByte('-')
	} else if opts.Chess960() {
		if sq := state.CastlingRooks.White().Kingside; sq != SquareNone {
			fen.WriteByte(byte('A') + byte(sq.File()))
		}
		if sq := state.CastlingRooks.White().Queenside; sq != SquareNone {
			fen.WriteByte(byte('A') + byte(sq.File()))
		}
		if sq := state.CastlingRooks.Black().Kingside; sq != SquareNone {
			fen.WriteByte(byte('a') + byte(sq.File()))
		}
		if sq := state.CastlingRooks.Black().Queenside; sq != SquareNone {
			fen.WriteByte(byte('a') + byte(sq.File()))
		}
	} else {
		if state.CastlingRooks.White().Kingside != SquareNone {
			fen.WriteByte('K')
		}
		if state.CastlingRooks.White().Queenside != SquareNone {
			fen.WriteByte('Q')
		}
		if state.CastlingRooks.Black().Kingside != SquareNone {
			fen.WriteByte('k')
		}
		if state.CastlingRooks.Black().Queenside != SquareNone {
			fen.WriteByte('q')
		}
	}

	fen.WriteByte(' ')
	fen.WriteString(state.EnPassant.String())
	fen.WriteString(fmt.Sprintf(" %v %v", state.Halfmove, p.fullmove))

	return fen.String()
}

// MoveFromUci parses long algebraic UCI notation against the current
// position. In orthodox mode a two-file king step is converted to the
// king-takes-own-rook castling encoding; in 960 mode the caller already
// sends king-takes-rook.
func (p *Position) MoveFromUci(move string) (Move, Error) {
	if len(move) < 4 || len(move) > 5 {
		return NullMove, Errorf("invalid uci move %v", move)
	}

	src, srcErr := SquareFromString(move[0:2])
	dst, dstErr := SquareFromString(move[2:4])
	if !IsNil(srcErr) || !IsNil(dstErr) {
		return NullMove, Errorf("invalid uci move %v", move)
	}

	if len(move) == 5 {
		promo := PieceTypeFromChar(move[4])
		if promo == PieceTypeNone || promo == Pawn || promo == King {
			return NullMove, Errorf("invalid promotion piece in %v", move)
		}
		return Promotion(src, dst, promo), NilError
	}

	state := p.currState()
	srcPiece := state.Boards.PieceAt(src)

	if srcPiece.Type() == King && srcPiece != PieceNone {
		if opts.Chess960() {
			if state.Boards.PieceAt(dst) == CopyPieceColor(srcPiece, Rook) {
				return Castling(src, dst), NilError
			}
			return Standard(src, dst), NilError
		} else if AbsDiff(int(src.File()), int(dst.File())) == 2 {
			rookFile := 0
			if src.File() < dst.File() {
				rookFile = 7
			}
			return Castling(src, ToSquare(int(src.Rank()), rookFile)), NilError
		}
	}

	if srcPiece.Type() == Pawn && srcPiece != PieceNone && dst == state.EnPassant {
		return EnPassant(src, dst), NilError
	}

	return Standard(src, dst), NilError
}
