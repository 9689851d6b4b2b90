package cli_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avreduce/avreduce/internal/cli"
	"github.com/avreduce/avreduce/internal/config"
)

func TestConfigCmd_PrintsResolvedConfigAsJSON(t *testing.T) {
	t.Parallel()

	cfg := config.Config{ScratchDir: ".scratch", ScannerCmd: "clamscan", Speed: "normal"}

	var out, errOut bytes.Buffer

	code := cli.ConfigCmd(cfg).Run(context.Background(), cli.NewIO(&out, &errOut), nil)

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), `"scratch_dir": ".scratch"`)
	assert.Contains(t, out.String(), `"scanner_cmd": "clamscan"`)
}
