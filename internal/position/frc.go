package position

import (
	. "github.com/chocolatebakery/atomicgo/internal/core"
	. "github.com/chocolatebakery/atomicgo/internal/helpers"
)

// scharnaglToBackrank derives backrank number n of the Fischer random
// numbering scheme.
// https://en.wikipedia.org/wiki/Fischer_random_chess_numbering_scheme#Direct_derivation
func scharnaglToBackrank(n uint32) [8]PieceType {
	// Knight pairs, stored with the second knight shifted left by one empty
	// square because the first knight occupies a square before the second
	// is placed.
	n5n := [10][2]int{
		{0, 0}, {0, 1}, {0, 2}, {0, 3}, {1, 1},
		{1, 2}, {1, 3}, {2, 2}, {2, 3}, {3, 3},
	}

	backrank := [8]PieceType{}
	for i := range backrank {
		backrank[i] = PieceTypeNone
	}

	placeInNthFree := func(nth int, piece PieceType) {
		free := 0
		for i := 0; i < 8; i++ {
			if backrank[i] == PieceTypeNone {
				if free == nth {
					backrank[i] = piece
					return
				}
				free++
			}
		}
	}

	n2 := n / 4
	b1 := n % 4

	n3 := n2 / 4
	b2 := n2 % 4

	n4 := n3 / 6
	q := n3 % 6

	backrank[b1*2+1] = Bishop
	backrank[b2*2] = Bishop

	placeInNthFree(int(q), Queen)

	knights := n5n[n4]
	placeInNthFree(knights[0], Knight)
	placeInNthFree(knights[1], Knight)

	placeInNthFree(0, Rook)
	placeInNthFree(0, King)
	placeInNthFree(0, Rook)

	return backrank
}

func (p *Position) resetFrcPawns() *BoardState {
	p.states = p.states[:1]
	p.keys = p.keys[:0]

	state := p.currState()
	*state = newBoardState()

	bbs := &state.Boards.Bbs
	bbs.PieceBbs[Pawn] = 0x00FF00000000FF00
	bbs.ColorBbs[Black] = 0x00FF000000000000
	bbs.ColorBbs[White] = 0x000000000000FF00

	p.blackToMove = false
	p.fullmove = 1

	return state
}

func placeBackrank(state *BoardState, color Color, backrank [8]PieceType) {
	rank := RelativeRank(color, 0)
	firstRook := true

	for file := 0; file < 8; file++ {
		sq := ToSquare(rank, file)
		state.Boards.SetPiece(sq, ColorPiece(backrank[file], color))

		if backrank[file] == Rook {
			if firstRook {
				state.CastlingRooks.Color(color).Queenside = sq
			} else {
				state.CastlingRooks.Color(color).Kingside = sq
			}
			firstRook = false
		}
	}
}

// ResetFromFrcIndex sets up Chess960 starting position n, 0 <= n < 960.
func (p *Position) ResetFromFrcIndex(n uint32) Error {
	if n >= 960 {
		return Errorf("invalid frc position index %v", n)
	}

	state := p.resetFrcPawns()

	backrank := scharnaglToBackrank(n)
	placeBackrank(state, Black, backrank)
	placeBackrank(state, White, backrank)

	p.Regen(false)
	return NilError
}

// ResetFromDfrcIndex sets up double Fischer random position n, with
// independent backranks: n/960 for black and n%960 for white.
func (p *Position) ResetFromDfrcIndex(n uint32) Error {
	if n >= 960*960 {
		return Errorf("invalid dfrc position index %v", n)
	}

	state := p.resetFrcPawns()

	placeBackrank(state, Black, scharnaglToBackrank(n/960))
	placeBackrank(state, White, scharnaglToBackrank(n%960))

	p.Regen(false)
	return NilError
}

func FromFrcIndex(n uint32) (*Position, Error) {
	p := NewPosition()
	if err := p.ResetFromFrcIndex(n); !IsNil(err) {
		return nil, err
	}
	return p, NilError
}

func FromDfrcIndex(n uint32) (*Position, Error) {
	p := NewPosition()
	if err := p.ResetFromDfrcIndex(n); !IsNil(err) {
		return nil, err
	}
	return p, NilError
}
