package reduce_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avreduce/avreduce/pkg/container"
	"github.com/avreduce/avreduce/pkg/reduce"
	"github.com/avreduce/avreduce/pkg/scanner"
)

func TestReducer_FindsSingleSignature(t *testing.T) {
	t.Parallel()

	content := make([]byte, 64)
	copy(content[20:], []byte("EVILSIG!"))

	file := container.NewRaw("sample.bin", content)
	sc := scanner.NewFake([]byte("EVILSIG!"))

	reducer := reduce.NewReducer(file, sc, reduce.ScanSpeedComplete, reduce.NoopReporter{})

	matches, err := reducer.Scan(context.Background(), 0, len(content))
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	covered := false

	for _, m := range matches {
		if m.Begin <= 20 && m.End >= 28 {
			covered = true
		}
	}

	assert.True(t, covered, "expected a match covering the signature range, got %+v", matches)
}

func TestReducer_NoMatchesWhenRangeNeverDetects(t *testing.T) {
	t.Parallel()

	content := make([]byte, 32)

	file := container.NewRaw("clean.bin", content)
	sc := scanner.NewFake([]byte("NEVER-PRESENT"))

	reducer := reduce.NewReducer(file, sc, reduce.ScanSpeedComplete, reduce.NoopReporter{})

	matches, err := reducer.Scan(context.Background(), 0, len(content))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestReducer_ScanPanicsOnEmptyRange(t *testing.T) {
	t.Parallel()

	file := container.NewRaw("x.bin", []byte("abc"))
	sc := scanner.NewFake([]byte("abc"))
	reducer := reduce.NewReducer(file, sc, reduce.ScanSpeedNormal, reduce.NoopReporter{})

	require.Panics(t, func() {
		_, _ = reducer.Scan(context.Background(), 2, 2)
	})
}

func TestReducer_TwoDisjointSignaturesBothIndependentlySufficient(t *testing.T) {
	t.Parallel()

	// spec.md §8 Scenario B: a 4096-byte file with "SIGA" at offset 100 and
	// "SIGB" at offset 3000. At the first bisection (midpoint 2048) both
	// halves independently still detect - erasing the top leaves SIGB,
	// erasing the bottom leaves SIGA - driving the "both detect" branch
	// and an opposite-nulled recursion into each half.
	content := make([]byte, 4096)
	copy(content[100:], []byte("SIGA"))
	copy(content[3000:], []byte("SIGB"))

	file := container.NewRaw("two-sigs.bin", content)
	sc := scanner.NewFake([]byte("SIGA"), []byte("SIGB"))

	reducer := reduce.NewReducer(file, sc, reduce.ScanSpeedComplete, reduce.NoopReporter{})

	matches, err := reducer.Scan(context.Background(), 0, len(content))
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.LessOrEqual(t, matches[0].Begin, 100)
	assert.GreaterOrEqual(t, matches[0].End, 104)

	assert.LessOrEqual(t, matches[1].Begin, 3000)
	assert.GreaterOrEqual(t, matches[1].End, 3004)
}

func TestReducer_MatchIndicesAreMonotonicAcrossCalls(t *testing.T) {
	t.Parallel()

	content := make([]byte, 32)
	copy(content[2:], []byte("AA"))
	copy(content[20:], []byte("BB"))

	file := container.NewRaw("sample.bin", content)
	sc := scanner.NewFake([]byte("AA"), []byte("BB"))

	reducer := reduce.NewReducer(file, sc, reduce.ScanSpeedComplete, reduce.NoopReporter{})

	first, err := reducer.Scan(context.Background(), 0, 16)
	require.NoError(t, err)

	second, err := reducer.Scan(context.Background(), 16, 32)
	require.NoError(t, err)

	require.NotEmpty(t, first)
	require.NotEmpty(t, second)

	for _, m := range second {
		assert.Greater(t, m.Index, first[len(first)-1].Index)
		assert.Equal(t, 1, m.Iteration)
	}
}
