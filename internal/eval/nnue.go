package eval

import (
	"math/rand"

	. "github.com/chocolatebakery/atomicgo/internal/core"
)

// The network bridge. Move application produces NnueUpdates records; the
// accumulator stack below consumes them. An explosion batches all of its
// feature subtractions before any addition is pushed, so the consumer may
// apply them in either order.

const HiddenSize = 64

// An atomic capture removes at most the victim, eight blast neighbours and
// the capturer itself.
const maxSubs = 10
const maxAdds = 2

type featureUpdate struct {
	Piece  Piece
	Square Square
}

type NnueUpdates struct {
	subs    [maxSubs]featureUpdate
	adds    [maxAdds]featureUpdate
	numSubs int
	numAdds int

	refresh [2]bool
}

func (u *NnueUpdates) PushSub(p Piece, sq Square) {
	u.subs[u.numSubs] = featureUpdate{p, sq}
	u.numSubs++
}

func (u *NnueUpdates) PushAdd(p Piece, sq Square) {
	u.adds[u.numAdds] = featureUpdate{p, sq}
	u.numAdds++
}

func (u *NnueUpdates) PushSubAdd(p Piece, from Square, to Square) {
	u.PushSub(p, from)
	u.PushAdd(p, to)
}

func (u *NnueUpdates) SetRefresh(c Color) {
	u.refresh[c] = true
}

func (u *NnueUpdates) RequiresRefresh(c Color) bool {
	return u.refresh[c]
}

// Placeholder feature transformer weights, deterministic across runs. A real
// network load would replace these with trained weights.
var featureWeights = func() [2 * 6 * 64][HiddenSize]int16 {
	r := rand.New(rand.NewSource(0xACC0))
	result := [2 * 6 * 64][HiddenSize]int16{}
	for f := range result {
		for i := 0; i < HiddenSize; i++ {
			result[f][i] = int16(r.Intn(128) - 64)
		}
	}
	return result
}()

var outputWeights = func() [2][HiddenSize]int32 {
	r := rand.New(rand.NewSource(0xACC1))
	result := [2][HiddenSize]int32{}
	for p := 0; p < 2; p++ {
		for i := 0; i < HiddenSize; i++ {
			result[p][i] = int32(r.Intn(32) - 16)
		}
	}
	return result
}()

// RefreshRequired reports whether a king move crosses the horizontal mirror
// boundary for its perspective, which invalidates that side's accumulator.
func RefreshRequired(c Color, oldKing Square, newKing Square) bool {
	return (oldKing.File() >= 4) != (newKing.File() >= 4)
}

// featureIndex orients a (piece, square) feature for one perspective. The
// board is flipped vertically for black and mirrored horizontally when that
// perspective's king sits on the e-h files.
func featureIndex(perspective Color, kingSq Square, p Piece, sq Square) int {
	colorOffset := 0
	if p.Color() != perspective {
		colorOffset = 6 * 64
	}

	oriented := sq
	if perspective == Black {
		oriented ^= 56
	}
	if kingSq.File() >= 4 {
		oriented ^= 7
	}

	return colorOffset + int(p.Type())*64 + int(oriented)
}

type Accumulator struct {
	Values [2][HiddenSize]int32
}

// NnueState owns one accumulator per search ply, mirroring the position's
// state stack.
type NnueState struct {
	stack [256]Accumulator
	kings [256][2]Square
	top   int
}

func NewNnueState() *NnueState {
	return &NnueState{}
}

func (s *NnueState) current() *Accumulator {
	return &s.stack[s.top]
}

func (s *NnueState) refreshPerspective(c Color, bbs *BitboardSet, kingSq Square) {
	acc := s.current()
	for i := 0; i < HiddenSize; i++ {
		acc.Values[c][i] = 0
	}

	occupied := bbs.Occupancy()
	occupied.EachSquare(func(sq Square) {
		for t := Pawn; t <= King; t++ {
			for color := Black; color <= White; color++ {
				if bbs.ForPieceAndColor(t, color).IsSet(sq) {
					feature := featureIndex(c, kingSq, ColorPiece(t, color), sq)
					for i := 0; i < HiddenSize; i++ {
						acc.Values[c][i] += int32(featureWeights[feature][i])
					}
				}
			}
		}
	})

	s.kings[s.top][c] = kingSq
}

// Reset recomputes both perspectives from scratch.
func (s *NnueState) Reset(bbs *BitboardSet, blackKing Square, whiteKing Square) {
	s.top = 0
	s.refreshPerspective(Black, bbs, blackKing)
	s.refreshPerspective(White, bbs, whiteKing)
}

// Update applies one move's feature diffs. When push is set the previous
// accumulator is retained so Pop can restore it on unmake.
func (s *NnueState) Update(updates *NnueUpdates, bbs *BitboardSet,
	blackKing Square, whiteKing Square, push bool) {
	if push {
		s.stack[s.top+1] = s.stack[s.top]
		s.kings[s.top+1] = s.kings[s.top]
		s.top++
	}

	kings := [2]Square{blackKing, whiteKing}

	for c := Black; c <= White; c++ {
		if updates.RequiresRefresh(c) {
			s.refreshPerspective(c, bbs, kings[c])
			continue
		}

		// Without a refresh the king stayed inside its bucket, so the new
		// king square orients features identically to the old one.
		acc := s.current()
		kingSq := kings[c]

		for i := 0; i < updates.numSubs; i++ {
			u := updates.subs[i]
			feature := featureIndex(c, kingSq, u.Piece, u.Square)
			for j := 0; j < HiddenSize; j++ {
				acc.Values[c][j] -= int32(featureWeights[feature][j])
			}
		}
		for i := 0; i < updates.numAdds; i++ {
			u := updates.adds[i]
			feature := featureIndex(c, kingSq, u.Piece, u.Square)
			for j := 0; j < HiddenSize; j++ {
				acc.Values[c][j] += int32(featureWeights[feature][j])
			}
		}

		s.kings[s.top][c] = kingSq
	}
}

func (s *NnueState) Pop() {
	if s.top > 0 {
		s.top--
	}
}

// Evaluate folds both perspectives through the output layer, side to move
// first.
func (s *NnueState) Evaluate(stm Color) int32 {
	acc := s.current()

	result := int32(0)
	for i := 0; i < HiddenSize; i++ {
		result += outputWeights[0][i] * clippedRelu(acc.Values[stm][i])
		result += outputWeights[1][i] * clippedRelu(acc.Values[stm.Other()][i])
	}
	return result / 256
}

func clippedRelu(x int32) int32 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}
