// Package shell implements the shell subcommand: an interactive loop that
// sends one sentence per input line and prints the replies.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zlyZwierz/librouteros/cmd/shared"
	"github.com/zlyZwierz/librouteros/pkg/api"
	"github.com/zlyZwierz/librouteros/pkg/client"
	"github.com/zlyZwierz/librouteros/pkg/log"
	"github.com/zlyZwierz/librouteros/pkg/pipeio"
	"github.com/zlyZwierz/librouteros/pkg/transport"

	"github.com/urfave/cli/v3"
)

// dial is the connection seam, swapped out in tests.
var dial = client.Dial

// GetCommand ...
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "Open an interactive API shell",
		Description: strings.Join([]string{
			"Reads one sentence per line: the command word followed by attribute",
			"words, separated by spaces, e.g.: /interface/print =stats=",
			"Exits on EOF (Ctrl-D) or interrupt.",
		}, "\n"),
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

			conn, err := dial(ctx, cfg)
			if err != nil {
				return fmt.Errorf("client.Dial(): %w", err)
			}
			defer conn.Close()

			log.InfoMsg("Connected to %s:%d\n", cfg.Host, cfg.Port)

			return runShell(ctx, conn)
		},
		Flags: shared.GetFlags(),
	}
}

func runShell(ctx context.Context, conn *client.Conn) error {
	stdio := pipeio.NewStdio(ctx)
	defer stdio.Close()

	scanner := bufio.NewScanner(stdio)
	for scanner.Scan() {
		words := strings.Fields(scanner.Text())
		if len(words) == 0 {
			continue
		}

		replies, err := conn.API().Run(words[0], words[1:]...)
		shared.PrintReplies(replies)
		if err != nil {
			log.ErrorMsg("%s\n", err)

			var connErr *transport.Error
			var fatalErr *api.FatalError
			if errors.As(err, &connErr) || errors.As(err, &fatalErr) {
				return fmt.Errorf("connection lost: %w", err)
			}
			// Traps leave the connection usable; keep going.
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("reading input: %w", err)
	}

	return nil
}
