package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avreduce/avreduce/internal/cli"
)

func TestIO_PrintlnWritesToStdout(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	io := cli.NewIO(&out, &errOut)
	io.Println("hello")

	assert.Equal(t, "hello\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestIO_ErrPrintlnBypassesWarningBuffering(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	io := cli.NewIO(&out, &errOut)
	io.WarnLLM("disk low", "free up space")
	io.ErrPrintln("direct message")

	assert.Equal(t, "direct message\n", errOut.String(), "ErrPrintln must not be held back by buffered warnings")
}

func TestIO_WarningsFlushAtStartOfFirstOutput(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	io := cli.NewIO(&out, &errOut)
	io.WarnLLM("scanner flaky", "retry the run")
	io.Println("first output")

	assert.Contains(t, errOut.String(), "scanner flaky: retry the run")
}

func TestIO_FinishReturnsNonZeroWhenWarned(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	io := cli.NewIO(&out, &errOut)
	assert.Equal(t, 0, io.Finish())

	io2 := cli.NewIO(&out, &errOut)
	io2.WarnLLM("issue", "action")
	assert.Equal(t, 1, io2.Finish())
}
