package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/peterh/liner"

	"github.com/avreduce/avreduce/internal/config"
	"github.com/avreduce/avreduce/internal/outcome"
	"github.com/avreduce/avreduce/internal/reporter"
	"github.com/avreduce/avreduce/pkg/reduce"
)

// ReplCmd returns the repl command: an interactive shell for running
// repeated analyze/verify/config operations without re-invoking the
// process each time.
func ReplCmd(cfg config.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("repl", flag.ContinueOnError),
		Usage: "repl",
		Short: "Start an interactive analyze/verify shell",
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			r := &replState{cfg: cfg, io: o}
			return r.run(ctx)
		},
	}
}

type replState struct {
	cfg   config.Config
	io    *IO
	liner *liner.State
}

func replHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".avreduce_history")
}

func (r *replState) run(ctx context.Context) error {
	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(r.completer)

	if f, err := os.Open(replHistoryFile()); err == nil {
		r.liner.ReadHistory(f)
		f.Close()
	}

	r.io.Println("avreduce - interactive shell")
	r.io.Println("Type 'help' for available commands.")
	r.io.Println()

	for {
		line, err := r.liner.Prompt("avreduce> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				r.io.Println("\nBye!")
				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.liner.AppendHistory(line)

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "exit", "quit", "q":
			r.io.Println("Bye!")
			r.saveHistory()

			return nil
		case "help", "?":
			r.printHelp()
		case "analyze":
			r.cmdAnalyze(ctx, args)
		case "verify":
			r.cmdVerify(ctx, args)
		case "config":
			r.cmdConfig()
		default:
			r.io.Printf("Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}

	r.saveHistory()

	return nil
}

func (r *replState) saveHistory() {
	if path := replHistoryFile(); path != "" {
		if f, err := os.Create(path); err == nil {
			r.liner.WriteHistory(f)
			f.Close()
		}
	}
}

func (r *replState) completer(line string) []string {
	commands := []string{"analyze", "verify", "config", "help", "exit", "quit"}

	var out []string

	for _, c := range commands {
		if strings.HasPrefix(c, line) {
			out = append(out, c)
		}
	}

	return out
}

func (r *replState) printHelp() {
	r.io.Println("Commands:")
	r.io.Println("  analyze <file>   Run the reduction pipeline against <file>")
	r.io.Println("  verify <file>    Re-check a saved outcome's matches")
	r.io.Println("  config           Show effective configuration")
	r.io.Println("  help             Show this help")
	r.io.Println("  exit             Leave the shell")
}

func (r *replState) cmdAnalyze(ctx context.Context, args []string) {
	if len(args) != 1 {
		r.io.Println("usage: analyze <file>")
		return
	}

	path := args[0]

	raw, err := os.ReadFile(path) //nolint:gosec // user-controlled path is the point of the tool
	if err != nil {
		r.io.Printf("error: %v\n", err)
		return
	}

	file, err := buildBaseFile("auto", path, raw)
	if err != nil {
		r.io.Printf("error: %v\n", err)
		return
	}

	sc, err := buildScanner(r.cfg)
	if err != nil {
		r.io.Printf("error: %v\n", err)
		return
	}

	rep := reporter.NewConsole(r.io, false)
	analyzer := reduce.NewAnalyzer(sc, rep)

	matches, err := analyzer.Analyze(ctx, file, reduce.AnalyzeOptions{Speed: reduce.ScanSpeedNormal})
	if err != nil {
		r.io.Printf("error: %v\n", err)
		return
	}

	r.io.Printf("%d matches found\n", len(matches))

	result := outcome.Outcome{
		File:       outcome.FileInfo{Name: path, Size: len(raw)},
		Matches:    matches,
		Sections:   file.Sections(),
		IsScanned:  true,
		IsDetected: len(matches) > 0,
	}

	if err := result.SaveToFile(path); err != nil {
		r.io.Printf("warning: outcome not saved: %v\n", err)
	}
}

func (r *replState) cmdVerify(ctx context.Context, args []string) {
	if len(args) != 1 {
		r.io.Println("usage: verify <file>")
		return
	}

	path := args[0]

	raw, err := os.ReadFile(path) //nolint:gosec // user-controlled path is the point of the tool
	if err != nil {
		r.io.Printf("error: %v\n", err)
		return
	}

	saved, err := outcome.LoadFromFile(path)
	if err != nil {
		r.io.Printf("error: %v\n", err)
		return
	}

	file, err := buildBaseFile("auto", path, raw)
	if err != nil {
		r.io.Printf("error: %v\n", err)
		return
	}

	sc, err := buildScanner(r.cfg)
	if err != nil {
		r.io.Printf("error: %v\n", err)
		return
	}

	rep := reporter.NewConsole(r.io, false)
	verifier := reduce.NewVerifier(sc, rep)

	ok, err := verifier.Verify(ctx, file, saved.Matches)
	if err != nil {
		r.io.Printf("error: %v\n", err)
		return
	}

	r.io.Printf("verified=%v\n", ok)
}

func (r *replState) cmdConfig() {
	formatted, err := config.Format(r.cfg)
	if err != nil {
		r.io.Printf("error: %v\n", err)
		return
	}

	r.io.Printf("%s\n", formatted)
}
