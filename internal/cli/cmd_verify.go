package cli

import (
	"context"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/avreduce/avreduce/internal/config"
	"github.com/avreduce/avreduce/internal/outcome"
	"github.com/avreduce/avreduce/internal/reporter"
	"github.com/avreduce/avreduce/pkg/container"
	"github.com/avreduce/avreduce/pkg/reduce"
)

// VerifyCmd re-runs verification for a file against a previously saved
// outcome's matches.
func VerifyCmd(cfg config.Config) *Command {
	flags := flag.NewFlagSet("verify", flag.ContinueOnError)
	flagFormat := flags.String("format", "auto", "container format: auto, raw, pe, office")

	return &Command{
		Flags: flags,
		Usage: "verify <file> [flags]",
		Short: "Re-check that a file's saved matches still suppress detection",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("verify requires exactly one file argument")
			}

			path := args[0]

			raw, err := os.ReadFile(path) //nolint:gosec // user-controlled path is the point of the tool
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			saved, err := outcome.LoadFromFile(path)
			if err != nil {
				return fmt.Errorf("loading saved outcome for %s: %w", path, err)
			}

			if len(saved.Matches) == 0 {
				return fmt.Errorf("no matches recorded in outcome for %s", path)
			}

			file, err := buildBaseFile(*flagFormat, path, raw)
			if err != nil {
				return err
			}

			sc, err := buildScanner(cfg)
			if err != nil {
				return err
			}

			rep := reporter.NewConsole(o, false)
			verifier := reduce.NewVerifier(sc, rep)

			ok, err := verifier.Verify(ctx, file, saved.Matches)
			if err != nil {
				return fmt.Errorf("verifying %s: %w", path, err)
			}

			saved.IsVerified = ok
			if err := saved.SaveToFile(path); err != nil {
				o.WarnLLM(err.Error(), "updated outcome was not persisted to disk")
			}

			if !ok {
				o.Printf("verification failed: %s still detected with all matches nulled\n", path)
				return nil
			}

			o.Printf("verification succeeded: %s\n", path)

			return nil
		},
	}
}
