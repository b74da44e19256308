// Package run implements the run subcommand: one command against one
// router, replies printed to stdout.
package run

import (
	"context"
	"fmt"

	"github.com/zlyZwierz/librouteros/cmd/shared"
	"github.com/zlyZwierz/librouteros/pkg/client"
	"github.com/zlyZwierz/librouteros/pkg/log"

	"github.com/urfave/cli/v3"
)

// dial is the connection seam, swapped out in tests.
var dial = client.Dial

// GetCommand ...
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Run a single API command and print its replies",
		ArgsUsage: "command [attribute...]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := shared.GetConfig(cmd)
			if err != nil {
				return fmt.Errorf("shared.GetConfig(): %w", err)
			}
			log.Verbose = cfg.Verbose

			if errors := cfg.Validate(); len(errors) > 0 {
				log.ErrorMsg("Argument validation errors:\n")
				for _, err := range errors {
					log.ErrorMsg(" - %s\n", err)
				}
				return fmt.Errorf("exiting")
			}

			args := cmd.Args().Slice()
			if len(args) == 0 {
				return fmt.Errorf("no command word given, e.g. /system/resource/print")
			}

			log.VerboseMsg("Connecting to %s:%d as %s\n", cfg.Host, cfg.Port, cfg.Username)
			conn, err := dial(ctx, cfg)
			if err != nil {
				return fmt.Errorf("client.Dial(): %w", err)
			}
			defer conn.Close()

			replies, err := conn.API().Run(args[0], args[1:]...)
			shared.PrintReplies(replies)
			if err != nil {
				return fmt.Errorf("running %s: %w", args[0], err)
			}

			return nil
		},
		Flags: shared.GetFlags(),
	}
}
