package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avreduce/avreduce/internal/cli"
	"github.com/avreduce/avreduce/internal/config"
	"github.com/avreduce/avreduce/internal/outcome"
	"github.com/avreduce/avreduce/pkg/reduce"
)

func TestVerifyCmd_SucceedsWhenMatchesStillSuppressDetection(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "sample.bin")
	content := []byte("clean clean clean")
	require.NoError(t, os.WriteFile(target, content, 0o644))

	saved := outcome.Outcome{
		File:    outcome.FileInfo{Name: target},
		Matches: []reduce.Match{{Begin: 0, End: len(content)}},
	}
	require.NoError(t, saved.SaveToFile(target))

	cfg := config.Config{ScannerCmd: "true", ScratchDir: filepath.Join(dir, "scratch")}

	var out, errOut bytes.Buffer

	code := cli.VerifyCmd(cfg).Run(context.Background(), cli.NewIO(&out, &errOut), []string{target})

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "verification succeeded")
}

func TestVerifyCmd_RequiresSavedOutcome(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "sample.bin")
	require.NoError(t, os.WriteFile(target, []byte("content"), 0o644))

	cfg := config.Config{ScannerCmd: "true", ScratchDir: filepath.Join(dir, "scratch")}

	var out, errOut bytes.Buffer

	code := cli.VerifyCmd(cfg).Run(context.Background(), cli.NewIO(&out, &errOut), []string{target})

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "loading saved outcome")
}

func TestVerifyCmd_RejectsOutcomeWithNoMatches(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "sample.bin")
	require.NoError(t, os.WriteFile(target, []byte("content"), 0o644))

	saved := outcome.Outcome{File: outcome.FileInfo{Name: target}}
	require.NoError(t, saved.SaveToFile(target))

	cfg := config.Config{ScannerCmd: "true", ScratchDir: filepath.Join(dir, "scratch")}

	var out, errOut bytes.Buffer

	code := cli.VerifyCmd(cfg).Run(context.Background(), cli.NewIO(&out, &errOut), []string{target})

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "no matches recorded")
}
