package reduce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalStore_MergesTouchingIntervals(t *testing.T) {
	t.Parallel()

	var s IntervalStore

	s.Add(0, 5)
	s.Add(5, 10)

	assert.Equal(t, 1, s.Count())
	assert.Equal(t, [][2]int{{0, 10}}, s.DrainSorted())
}

func TestIntervalStore_MergesOverlappingIntervals(t *testing.T) {
	t.Parallel()

	var s IntervalStore

	s.Add(0, 6)
	s.Add(4, 10)

	assert.Equal(t, [][2]int{{0, 10}}, s.DrainSorted())
}

func TestIntervalStore_KeepsDisjointIntervalsSeparate(t *testing.T) {
	t.Parallel()

	var s IntervalStore

	s.Add(0, 5)
	s.Add(10, 15)

	assert.Equal(t, [][2]int{{0, 5}, {10, 15}}, s.DrainSorted())
}

func TestIntervalStore_MergesRegardlessOfInsertionOrder(t *testing.T) {
	t.Parallel()

	var s IntervalStore

	s.Add(20, 25)
	s.Add(0, 5)
	s.Add(5, 20)

	assert.Equal(t, [][2]int{{0, 25}}, s.DrainSorted())
}

func TestIntervalStore_AddPanicsOnEmptyOrInvertedInterval(t *testing.T) {
	t.Parallel()

	var s IntervalStore

	require.Panics(t, func() { s.Add(5, 5) })
	require.Panics(t, func() { s.Add(5, 3) })
}
