package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRunID(t *testing.T) {
	a := NewRunID()
	b := NewRunID()

	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)

	// Monotonic entropy keeps IDs minted back to back in sort order.
	assert.Less(t, a, b)
}
