package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"
)

func inspectCmd() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Show the header, directory and locales of a container",
		ArgsUsage: "<file>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			f, g, err := openContainer(ctx, cmd)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			return renderInspect(os.Stdout, g)
		},
	}
}
