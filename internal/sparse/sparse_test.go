package sparse

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestSet(t *testing.T) {
	s := New(10)
	assert.Equal(t, s.Contains(3), false)

	assert.Equal(t, s.Insert(3), true)
	assert.Equal(t, s.Insert(7), true)
	assert.Equal(t, s.Insert(3), false)
	assert.Equal(t, s.Contains(3), true)
	assert.Equal(t, s.Contains(7), true)
	assert.Equal(t, s.Contains(4), false)

	t.Run("OutOfRange", func(t *testing.T) {
		assert.Equal(t, s.Contains(10), false)
		assert.Equal(t, s.Contains(1<<31), false)
	})

	t.Run("Clear", func(t *testing.T) {
		s.Clear()
		assert.Equal(t, s.Contains(3), false)
		assert.Equal(t, s.Contains(7), false)

		// stale sparse entries must not resurrect members
		assert.Equal(t, s.Insert(7), true)
		assert.Equal(t, s.Contains(3), false)
		assert.Equal(t, s.Contains(7), true)
		assert.Equal(t, s.Insert(3), true)
	})
}

func TestSetZeroValue(t *testing.T) {
	var s Set
	assert.Equal(t, s.Contains(0), false)
	s.Clear()
	assert.Equal(t, s.Contains(0), false)
}
