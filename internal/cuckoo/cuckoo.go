package cuckoo

import (
	"fmt"

	"github.com/chocolatebakery/atomicgo/internal/attacks"
	"github.com/chocolatebakery/atomicgo/internal/keys"

	"github.com/chocolatebakery/atomicgo/internal/core"
)

// Cuckoo hash of every reversible move's Zobrist delta, after Marcel van
// Kervinck. Two repetitions of a position always differ by some chain of
// reversible moves, so a single probe of this table can recognize an
// upcoming repetition without replaying the game.
//
// The table is filled once at startup and shared read-only afterwards.

const TableSize = 8192

var Keys [TableSize]uint64
var Moves [TableSize]core.Move

func H1(key uint64) uint32 {
	return uint32(key>>32) & (TableSize - 1)
}

func H2(key uint64) uint32 {
	return uint32(key>>48) & (TableSize - 1)
}

func init() {
	count := 0

	for t := core.Knight; t <= core.King; t++ {
		for c := core.Black; c <= core.White; c++ {
			piece := core.ColorPiece(t, c)

			for s1 := core.Square(0); s1 < 63; s1++ {
				for s2 := s1 + 1; s2 < 64; s2++ {
					if !attacks.PieceAttacks(t, s1, 0).IsSet(s2) {
						continue
					}

					move := core.Standard(s1, s2)
					key := keys.PieceSquare(piece, s1) ^ keys.PieceSquare(piece, s2) ^ keys.Color()

					slot := H1(key)
					for {
						Keys[slot], key = key, Keys[slot]
						Moves[slot], move = move, Moves[slot]

						if move.IsNull() {
							break
						}

						// Push the evicted entry to its other slot.
						if slot == H1(key) {
							slot = H2(key)
						} else {
							slot = H1(key)
						}
					}

					count++
				}
			}
		}
	}

	// Every reversible (piece, from, to) pair for both colors.
	if count != 3668 {
		panic(fmt.Sprintf("cuckoo table built with %v entries, expected 3668", count))
	}
}
