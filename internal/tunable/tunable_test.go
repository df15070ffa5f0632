package tunable

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/chocolatebakery/atomicgo/internal/helpers"
)

func TestRegisterAndLookup(t *testing.T) {
	p := Register("testParam", 10, 0, 100, 5)

	found := Lookup("testParam")
	assert.True(t, found.HasValue())
	assert.Equal(t, p, found.Value())
	assert.Equal(t, 10, p.Value())

	assert.True(t, Lookup("missing").IsEmpty())
}

func TestSetRespectsRange(t *testing.T) {
	p := Register("testRangeParam", 10, 0, 100, 5)

	assert.True(t, IsNil(p.Set(50)))
	assert.Equal(t, 50, p.Value())

	assert.False(t, IsNil(p.Set(101)))
	assert.Equal(t, 50, p.Value())

	assert.False(t, IsNil(p.Set(-1)))
}

func TestUciOptionString(t *testing.T) {
	p := Register("testStringParam", 10, 0, 100, 5)
	assert.Equal(t, "option name testStringParam type spin default 10 min 0 max 100", p.String())
}

func TestAllIsSorted(t *testing.T) {
	all := All()
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i-1].Name < all[i].Name)
	}
}
