package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/avreduce/avreduce/internal/config"
	"github.com/avreduce/avreduce/internal/outcome"
	"github.com/avreduce/avreduce/internal/reporter"
	"github.com/avreduce/avreduce/pkg/container"
	"github.com/avreduce/avreduce/pkg/reduce"
	"github.com/avreduce/avreduce/pkg/reduce/scancache"
	"github.com/avreduce/avreduce/pkg/scanner"
)

// AnalyzeCmd runs the full detection-reduction pipeline against a file.
func AnalyzeCmd(cfg config.Config) *Command {
	flags := flag.NewFlagSet("analyze", flag.ContinueOnError)
	flagFormat := flags.String("format", "auto", "container format: auto, raw, pe, office")
	flagIsolate := flags.Bool("isolate", cfg.Isolate, "use isolate strategy for section attribution")
	flagRemoveNoise := flags.Bool("remove-noise", cfg.RemoveNoise, "drop resource/version sections before attribution")
	flagIgnoreText := flags.Bool("ignore-text", cfg.IgnoreText, "drop the .text section before attribution")
	flagVerify := flags.Bool("verify", cfg.Verify, "verify matches suppress detection after reduction")
	flagLegacy := flags.Bool("legacy", false, "use the legacy fixed-window reducer")
	flagSpeed := flags.String("speed", cfg.Speed, "scan speed: fast, normal, slow, complete")
	flagHexdump := flags.Bool("hexdump", false, "print a hexdump of each match")
	flagCache := flags.Bool("cache", true, "memoize identical scan payloads within this run")

	return &Command{
		Flags: flags,
		Usage: "analyze <file> [flags]",
		Short: "Reduce a file to the byte ranges an AV scanner detects",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("analyze requires exactly one file argument")
			}

			path := args[0]

			raw, err := os.ReadFile(path) //nolint:gosec // user-controlled path is the point of the tool
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			file, err := buildBaseFile(*flagFormat, path, raw)
			if err != nil {
				return err
			}

			sc, err := buildScanner(cfg)
			if err != nil {
				return err
			}

			if *flagCache {
				sc = scancache.Wrap(sc)
			}

			rep := reporter.NewConsole(o, *flagHexdump)

			speed, err := parseSpeed(*flagSpeed)
			if err != nil {
				return err
			}

			analyzer := reduce.NewAnalyzer(sc, rep)

			start := time.Now()

			matches, err := analyzer.Analyze(ctx, file, reduce.AnalyzeOptions{
				Isolate:          *flagIsolate,
				RemoveNoise:      *flagRemoveNoise,
				IgnoreText:       *flagIgnoreText,
				Verify:           *flagVerify,
				UseLegacyReducer: *flagLegacy,
				Speed:            speed,
			})
			if err != nil {
				return fmt.Errorf("analyzing %s: %w", path, err)
			}

			o.Printf("%d matches found in %s (%s)\n", len(matches), path, time.Since(start).Round(time.Millisecond))

			for _, m := range matches {
				o.Printf("  [%d,%d) len=%d\n", m.Begin, m.End, m.Len())
			}

			result := outcome.Outcome{
				File:       outcome.FileInfo{Name: path, Size: len(raw), Time: time.Now()},
				Matches:    matches,
				Sections:   file.Sections(),
				IsScanned:  true,
				IsDetected: len(matches) > 0,
				IsVerified: *flagVerify,
				Scan: outcome.ScanInfo{
					Speed:    speed,
					ScanTime: start,
				},
			}

			if err := result.SaveToFile(path); err != nil {
				o.WarnLLM(err.Error(), "outcome was not persisted to disk")
			}

			return nil
		},
	}
}

func buildBaseFile(format, path string, raw []byte) (reduce.BaseFile, error) {
	switch format {
	case "pe":
		return container.NewPE(path, raw)
	case "office":
		return container.NewOffice(path, raw)
	case "raw":
		return container.NewRaw(path, raw), nil
	case "auto", "":
		return autoDetectBaseFile(path, raw)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func autoDetectBaseFile(path string, raw []byte) (reduce.BaseFile, error) {
	lower := strings.ToLower(path)

	switch {
	case strings.HasSuffix(lower, ".exe") || strings.HasSuffix(lower, ".dll"):
		if pe, err := container.NewPE(path, raw); err == nil {
			return pe, nil
		}
	case strings.HasSuffix(lower, ".docx") || strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".pptx"):
		if office, err := container.NewOffice(path, raw); err == nil {
			return office, nil
		}
	}

	return container.NewRaw(path, raw), nil
}

func buildScanner(cfg config.Config) (reduce.Scanner, error) {
	switch {
	case cfg.ScannerCmd != "":
		scratchDir := cfg.ScratchDir
		if err := os.MkdirAll(scratchDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating scratch dir %s: %w", scratchDir, err)
		}

		return scanner.NewProcess(cfg.ScannerCmd, cfg.ScannerArgs, scratchDir), nil
	case cfg.ScannerURL != "":
		return scanner.NewHTTP(cfg.ScannerURL, nil), nil
	default:
		return nil, fmt.Errorf("no scanner configured: set scanner_cmd or scanner_url")
	}
}

func parseSpeed(s string) (reduce.ScanSpeed, error) {
	switch strings.ToLower(s) {
	case "fast":
		return reduce.ScanSpeedFast, nil
	case "normal", "":
		return reduce.ScanSpeedNormal, nil
	case "slow":
		return reduce.ScanSpeedSlow, nil
	case "complete":
		return reduce.ScanSpeedComplete, nil
	default:
		return reduce.ScanSpeedUnknown, fmt.Errorf("unknown speed %q", s)
	}
}
