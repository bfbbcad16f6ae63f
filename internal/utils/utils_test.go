package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunk(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, Chunk([]int{}, 3))
		assert.Empty(t, Chunk([]int(nil), 3))
	})
	t.Run("non positive size", func(t *testing.T) {
		assert.Nil(t, Chunk([]int{1, 2}, 0))
	})
	t.Run("exact multiple", func(t *testing.T) {
		assert.Equal(t, [][]int{{1, 2}, {3, 4}}, Chunk([]int{1, 2, 3, 4}, 2))
	})
	t.Run("remainder", func(t *testing.T) {
		assert.Equal(t, [][]int{{1, 2, 3}, {4, 5, 6}, {7}}, Chunk([]int{1, 2, 3, 4, 5, 6, 7}, 3))
	})
	t.Run("size larger than input", func(t *testing.T) {
		assert.Equal(t, [][]int{{1, 2}}, Chunk([]int{1, 2}, 500))
	})
	t.Run("1001 records with 500 limit", func(t *testing.T) {
		items := make([]int, 1001)
		chunks := Chunk(items, 500)

		var sizes []int
		for _, c := range chunks {
			sizes = append(sizes, len(c))
		}
		assert.Equal(t, []int{500, 500, 1}, sizes)
	})
	t.Run("append to chunk does not leak into next", func(t *testing.T) {
		items := []int{1, 2, 3, 4}
		chunks := Chunk(items, 2)
		_ = append(chunks[0], 99)
		assert.Equal(t, []int{3, 4}, chunks[1])
	})
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"mining", "fishing"}, "fishing"))
	assert.False(t, Contains([]string{"mining"}, "hunter"))
	assert.False(t, Contains(nil, "hunter"))
}
