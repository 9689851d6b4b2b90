package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/avreduce/avreduce/internal/config"
)

// ConfigCmd returns the config command, which prints the effective,
// fully-merged configuration.
func ConfigCmd(cfg config.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("config", flag.ContinueOnError),
		Usage: "config",
		Short: "Show resolved configuration",
		Long:  "Display the effective configuration after merging defaults, global config, project config, and CLI overrides.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			formatted, err := config.Format(cfg)
			if err != nil {
				return err
			}

			o.Printf("%s\n", formatted)

			return nil
		},
	}
}
