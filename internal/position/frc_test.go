package position

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/chocolatebakery/atomicgo/internal/helpers"
)

func TestFrcIndex518IsOrthodoxStart(t *testing.T) {
	p, err := FromFrcIndex(518)
	assert.True(t, IsNil(err))
	assert.Equal(t, StartingFen, p.ToFen())
}

func TestFrcIndexDeterministic(t *testing.T) {
	for _, n := range []uint32{0, 1, 42, 518, 959} {
		a, errA := FromFrcIndex(n)
		b, errB := FromFrcIndex(n)
		assert.True(t, IsNil(errA))
		assert.True(t, IsNil(errB))
		assert.Equal(t, a.ToFen(), b.ToFen())
		assert.Equal(t, a.Key(), b.Key())
	}
}

func TestFrcBackrankShape(t *testing.T) {
	for _, n := range []uint32{0, 333, 959} {
		backrank := scharnaglToBackrank(n)

		counts := map[string]int{}
		kingFile := -1
		rookFiles := []int{}
		bishopFiles := []int{}

		for file, piece := range backrank {
			counts[piece.String()]++
			switch piece.String() {
			case "k":
				kingFile = file
			case "r":
				rookFiles = append(rookFiles, file)
			case "b":
				bishopFiles = append(bishopFiles, file)
			}
		}

		assert.Equal(t, map[string]int{"r": 2, "n": 2, "b": 2, "q": 1, "k": 1}, counts, n)

		// King between the rooks, bishops on opposite square colors.
		assert.Len(t, rookFiles, 2)
		assert.True(t, rookFiles[0] < kingFile && kingFile < rookFiles[1], n)
		assert.NotEqual(t, bishopFiles[0]%2, bishopFiles[1]%2, n)
	}
}

func TestDfrcSplitsIndex(t *testing.T) {
	p, err := FromDfrcIndex(518*960 + 518)
	assert.True(t, IsNil(err))
	assert.Equal(t, StartingFen, p.ToFen())

	mixed, err := FromDfrcIndex(0*960 + 518)
	assert.True(t, IsNil(err))

	// White gets backrank 518 (orthodox), black gets backrank 0.
	white, err := FromFrcIndex(518)
	assert.True(t, IsNil(err))
	assert.Equal(t, white.State().CastlingRooks.White(), mixed.State().CastlingRooks.White())

	black, err := FromFrcIndex(0)
	assert.True(t, IsNil(err))
	assert.Equal(t, black.State().CastlingRooks.Black(), mixed.State().CastlingRooks.Black())
}

func TestFrcIndexOutOfRange(t *testing.T) {
	_, err := FromFrcIndex(960)
	assert.False(t, IsNil(err))

	_, err = FromDfrcIndex(960 * 960)
	assert.False(t, IsNil(err))
}
