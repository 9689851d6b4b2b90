package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avreduce/avreduce/internal/config"
)

func TestReplState_CompleterMatchesPrefix(t *testing.T) {
	t.Parallel()

	r := &replState{}

	assert.ElementsMatch(t, []string{"analyze"}, r.completer("ana"))
	assert.ElementsMatch(t, []string{"verify"}, r.completer("ver"))
	assert.Nil(t, r.completer("zzz"))
}

func TestReplState_PrintHelpListsCommands(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	r := &replState{io: NewIO(&out, &errOut)}
	r.printHelp()

	assert.Contains(t, out.String(), "analyze <file>")
	assert.Contains(t, out.String(), "exit")
}

func TestReplState_CmdConfigPrintsFormattedConfig(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	r := &replState{cfg: config.Config{ScannerCmd: "true"}, io: NewIO(&out, &errOut)}
	r.cmdConfig()

	assert.Contains(t, out.String(), `"scanner_cmd": "true"`)
}

func TestReplState_CmdAnalyzeRequiresOneArgument(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	r := &replState{io: NewIO(&out, &errOut)}
	r.cmdAnalyze(context.Background(), nil)

	assert.Contains(t, out.String(), "usage: analyze <file>")
}

func TestReplState_CmdAnalyzeSavesOutcome(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "sample.bin")
	require.NoError(t, os.WriteFile(target, []byte("harmless"), 0o644))

	var out, errOut bytes.Buffer

	r := &replState{
		cfg: config.Config{ScannerCmd: "true", ScratchDir: filepath.Join(dir, "scratch")},
		io:  NewIO(&out, &errOut),
	}
	r.cmdAnalyze(context.Background(), []string{target})

	assert.Contains(t, out.String(), "matches found")
	assert.FileExists(t, target+".outcome")
}

func TestReplState_CmdVerifyRequiresOneArgument(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	r := &replState{io: NewIO(&out, &errOut)}
	r.cmdVerify(context.Background(), nil)

	assert.Contains(t, out.String(), "usage: verify <file>")
}
