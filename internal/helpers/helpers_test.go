package helpers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptional(t *testing.T) {
	some := Some(3)
	assert.True(t, some.HasValue())
	assert.Equal(t, 3, some.Value())

	empty := Empty[int]()
	assert.True(t, empty.IsEmpty())
}

func TestSliceHelpers(t *testing.T) {
	assert.Equal(t, []int{2, 4, 6}, MapSlice([]int{1, 2, 3}, func(x int) int { return x * 2 }))
	assert.Equal(t, []int{2}, FilterSlice([]int{1, 2, 3}, func(x int) bool { return x%2 == 0 }))
	assert.Equal(t, 6, ReduceSlice([]int{1, 2, 3}, 0, func(acc int, x int) int { return acc + x }))
	assert.True(t, Contains([]string{"a", "b"}, "b"))
	assert.False(t, Contains([]string{"a", "b"}, "c"))
}

func TestErrors(t *testing.T) {
	assert.True(t, IsNil(NilError))
	assert.True(t, IsNil(Wrap(nil)))
	assert.False(t, IsNil(Errorf("boom")))
	assert.False(t, IsNil(Wrap(errors.New("boom"))))

	joined := Join(NilError, Errorf("a"), Errorf("b"))
	assert.False(t, IsNil(joined))
	assert.Equal(t, NilError, Join(NilError, NilError))
}

func TestAbsDiffAndMinInt(t *testing.T) {
	assert.Equal(t, 3, AbsDiff(1, 4))
	assert.Equal(t, 3, AbsDiff(4, 1))
	assert.Equal(t, 1, MinInt(1, 4))
}

func TestPool(t *testing.T) {
	get, release, stats := CreatePool(
		func() []int { return make([]int, 0, 8) },
		func(x *[]int) { *x = (*x)[:0] },
	)

	buffer := get()
	*buffer = append(*buffer, 1, 2, 3)
	release(buffer)

	again := get()
	assert.Empty(t, *again)
	assert.Equal(t, 1, func() int { s := stats(); return s.creates }())
}
