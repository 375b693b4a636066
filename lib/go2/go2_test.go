package go2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnique(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b", "c"}, Unique([]string{"a", "b", "a", "c", "b"}))
	assert.Equal(t, []int{}, Unique([]int(nil)))
}

func TestFilter(t *testing.T) {
	t.Parallel()

	odd := Filter([]int{1, 2, 3, 4, 5}, func(i int) bool { return i%2 == 1 })
	assert.Equal(t, []int{1, 3, 5}, odd)
	assert.True(t, Contains(odd, 3))
	assert.False(t, Contains(odd, 4))
}
