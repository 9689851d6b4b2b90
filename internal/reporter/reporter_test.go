package reporter_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avreduce/avreduce/internal/cli"
	"github.com/avreduce/avreduce/internal/reporter"
	"github.com/avreduce/avreduce/pkg/reduce"
)

func TestConsole_ProgressWritesToStdout(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	console := reporter.NewConsole(cli.NewIO(&out, &errOut), false)
	console.Progress(10, 3, 1)

	assert.Contains(t, out.String(), "10 chunks tested")
	assert.Contains(t, out.String(), "3 matches")
	assert.Contains(t, out.String(), "1 new")
}

func TestConsole_MatchWithoutHexdump(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	console := reporter.NewConsole(cli.NewIO(&out, &errOut), false)
	console.Match(reduce.Match{Begin: 4, End: 8, Index: 2, Iteration: 1}, []byte("AAAA"))

	assert.Contains(t, out.String(), "match #2")
	assert.Contains(t, out.String(), "[4,8)")
	assert.NotContains(t, out.String(), "00000000")
}

func TestConsole_MatchWithHexdump(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	console := reporter.NewConsole(cli.NewIO(&out, &errOut), true)
	console.Match(reduce.Match{Begin: 0, End: 4, Index: 0, Iteration: 0}, []byte("AAAA"))

	assert.Contains(t, out.String(), "00000000")
	assert.Contains(t, out.String(), "41 41 41 41")
}

func TestConsole_NoticeAndWarnTagRunID(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	console := reporter.NewConsole(cli.NewIO(&out, &errOut), false)
	console.Notice("starting analysis")
	console.Warn(errors.New("scanner timeout"), "retrying")

	assert.Contains(t, out.String(), "starting analysis")
	assert.Contains(t, errOut.String(), "scanner timeout")
	assert.Contains(t, errOut.String(), "retrying")
}

func TestConsole_RunIDIsStableAcrossCalls(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	console := reporter.NewConsole(cli.NewIO(&out, &errOut), false)
	console.Notice("first")
	console.Notice("second")

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out.String())
	}

	firstTag := bytes.SplitN(lines[0], []byte("]"), 2)[0]
	secondTag := bytes.SplitN(lines[1], []byte("]"), 2)[0]

	assert.Equal(t, string(firstTag), string(secondTag))
}
