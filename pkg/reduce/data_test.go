package reduce_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avreduce/avreduce/pkg/reduce"
)

func TestData_RangeReturnsBaseBytesUnmodified(t *testing.T) {
	t.Parallel()

	data := reduce.NewData([]byte("hello world"))

	assert.Equal(t, []byte("hello world"), data.Bytes())
	assert.Equal(t, []byte("hello"), data.Range(0, 5))
	assert.Equal(t, 11, data.Len())
}

func TestData_FillNullsRangeWithoutChangingLength(t *testing.T) {
	t.Parallel()

	data := reduce.NewData([]byte("hello world"))
	filled := data.Fill(0, 5)

	assert.Equal(t, []byte{0, 0, 0, 0, 0, ' ', 'w', 'o', 'r', 'l', 'd'}, filled.Bytes())
	assert.Equal(t, data.Len(), filled.Len())

	// original is untouched
	assert.Equal(t, []byte("hello world"), data.Bytes())
}

func TestData_FillByteUsesGivenByte(t *testing.T) {
	t.Parallel()

	data := reduce.NewData([]byte("hello world"))
	filled := data.FillByte(6, 5, 'X')

	assert.Equal(t, []byte("hello XXXXX"), filled.Bytes())
}

func TestData_FillsStack(t *testing.T) {
	t.Parallel()

	data := reduce.NewData([]byte("0123456789"))

	once := data.Fill(0, 3)
	assert.Equal(t, []byte{0, 0, 0, '3', '4', '5', '6', '7', '8', '9'}, once.Bytes())

	twice := once.Fill(5, 3)
	assert.Equal(t, []byte{0, 0, 0, '3', '4', 0, 0, 0, '8', '9'}, twice.Bytes())

	// once is unaffected by building twice from it
	assert.Equal(t, []byte{0, 0, 0, '3', '4', '5', '6', '7', '8', '9'}, once.Bytes())
}

func TestData_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	data := reduce.NewData([]byte("0123456789"))
	a := data.Fill(0, 2)
	b := a.Clone().Fill(8, 2)

	assert.Equal(t, []byte{0, 0, '2', '3', '4', '5', '6', '7', '8', '9'}, a.Bytes())
	assert.Equal(t, []byte{0, 0, '2', '3', '4', '5', '6', '7', 0, 0}, b.Bytes())
}

func TestData_RangePanicsOutOfBounds(t *testing.T) {
	t.Parallel()

	data := reduce.NewData([]byte("abc"))

	require.Panics(t, func() {
		data.Range(0, 4)
	})
}

func TestData_FillPanicsOutOfBounds(t *testing.T) {
	t.Parallel()

	data := reduce.NewData([]byte("abc"))

	require.Panics(t, func() {
		data.Fill(2, 5)
	})
}
