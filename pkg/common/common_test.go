package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUUIDint64(t *testing.T) {
	seen := make(map[int64]bool)
	for i := 0; i < 1000; i++ {
		id := UUIDint64()
		assert.Positive(t, id)
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
}
