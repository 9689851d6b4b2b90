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

func TestLinearReducer_FindsWindowContainingSignature(t *testing.T) {
	t.Parallel()

	content := make([]byte, 32)
	copy(content[10:], []byte("SIG"))

	file := container.NewRaw("sample.bin", content)
	sc := scanner.NewFake([]byte("SIG"))

	legacy := reduce.NewLinearReducer(file, sc, reduce.NoopReporter{})

	matches, err := legacy.Scan(context.Background(), 0, len(content))
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	covered := false

	for _, m := range matches {
		if m.Begin <= 10 && m.End >= 13 {
			covered = true
		}
	}

	assert.True(t, covered, "expected a window covering [10,13), got %+v", matches)
}

func TestLinearReducer_ScanPanicsOnEmptyRange(t *testing.T) {
	t.Parallel()

	file := container.NewRaw("x.bin", []byte("abc"))
	sc := scanner.NewFake([]byte("abc"))
	legacy := reduce.NewLinearReducer(file, sc, reduce.NoopReporter{})

	require.Panics(t, func() {
		_, _ = legacy.Scan(context.Background(), 2, 2)
	})
}
