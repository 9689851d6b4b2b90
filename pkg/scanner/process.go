package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/avreduce/avreduce/pkg/fs"
	"github.com/avreduce/avreduce/pkg/reduce"
)

// Process is a [reduce.Scanner] that shells out to a local scanner binary:
// it writes the candidate bytes to a scratch file atomically, runs command
// against it, and treats a zero exit code as "not detected" - any other
// exit code, including a signal, is "detected" (a conservative verdict,
// matching spec.md §5's treatment of scanner-side uncertainty).
type Process struct {
	command    string
	args       []string
	scratchDir string
	writer     *fs.AtomicWriter
}

var _ reduce.Scanner = (*Process)(nil)

// NewProcess constructs a Process scanner invoking command with args,
// appending the scratch file path as the final argument. scratchDir holds
// the temporary candidate files; it must already exist.
func NewProcess(command string, args []string, scratchDir string) *Process {
	return &Process{
		command:    command,
		args:       args,
		scratchDir: scratchDir,
		writer:     fs.NewAtomicWriter(fs.NewReal()),
	}
}

func (p *Process) Scan(ctx context.Context, data []byte, filename string) (bool, error) {
	scratchPath := filepath.Join(p.scratchDir, sanitizeScratchName(filename))

	if err := p.writer.WriteWithDefaults(scratchPath, bytes.NewReader(data)); err != nil {
		return false, fmt.Errorf("writing scratch file: %w", err)
	}

	defer os.Remove(scratchPath)

	args := append(append([]string{}, p.args...), scratchPath)
	cmd := exec.CommandContext(ctx, p.command, args...)

	err := cmd.Run()
	if err == nil {
		return false, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return true, nil
	}

	return false, fmt.Errorf("running scanner command: %w", err)
}

func sanitizeScratchName(filename string) string {
	base := filepath.Base(filename)
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "candidate"
	}

	return base
}
