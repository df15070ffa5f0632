package keys

import (
	"math/rand"

	"github.com/chocolatebakery/atomicgo/internal/core"
)

// Zobrist keys for incremental position hashing. The tables are filled once
// from a fixed seed so keys are stable across runs and across workers.

var PieceSquareKeys [12][64]uint64
var ColorKey uint64
var CastlingKeys [2][2]uint64 // [color][kingside=0, queenside=1]
var EnPassantKeys [8]uint64

func init() {
	r := rand.New(rand.NewSource(0x5CA41A6))

	for piece := 0; piece < 12; piece++ {
		for sq := 0; sq < 64; sq++ {
			PieceSquareKeys[piece][sq] = r.Uint64()
		}
	}

	ColorKey = r.Uint64()

	for color := 0; color < 2; color++ {
		for side := 0; side < 2; side++ {
			CastlingKeys[color][side] = r.Uint64()
		}
	}

	for file := 0; file < 8; file++ {
		EnPassantKeys[file] = r.Uint64()
	}
}

func PieceSquare(p core.Piece, sq core.Square) uint64 {
	if p == core.PieceNone || sq == core.SquareNone {
		return 0
	}
	return PieceSquareKeys[p][sq]
}

// Color is XORed in whenever black is to move.
func Color() uint64 {
	return ColorKey
}

func ColorFor(c core.Color) uint64 {
	if c == core.Black {
		return ColorKey
	}
	return 0
}

func CastlingRight(c core.Color, kingside bool) uint64 {
	if kingside {
		return CastlingKeys[c][0]
	}
	return CastlingKeys[c][1]
}

func EnPassant(sq core.Square) uint64 {
	if sq == core.SquareNone {
		return 0
	}
	return EnPassantKeys[sq.File()]
}
