package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUniqueAndSortable(t *testing.T) {
	t.Parallel()

	prev := ""
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		s := New()

		assert.Len(t, s, 26)
		assert.False(t, seen[s], "duplicate id %s", s)
		seen[s] = true

		assert.Greater(t, s, prev, "ids must increase with generation order")
		prev = s
	}
}
