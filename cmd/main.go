package main

import (
	"context"
	"os"

	"github.com/zlyZwierz/librouteros/cmd/run"
	"github.com/zlyZwierz/librouteros/cmd/shell"
	"github.com/zlyZwierz/librouteros/cmd/version"
	"github.com/zlyZwierz/librouteros/pkg/log"

	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "ros",
		Usage: "RouterOS API client",
		Commands: []*cli.Command{
			run.GetCommand(),
			shell.GetCommand(),
			version.GetCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.ErrorMsg("%s\n", err)
		os.Exit(1)
	}
}
