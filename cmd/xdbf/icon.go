package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/xdbf/internal/logger"
)

func iconCmd() *cli.Command {
	var out string

	return &cli.Command{
		Name:      "icon",
		Usage:     "Extract the title icon",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output path",
				Required:    true,
				Destination: &out,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			f, g, err := openContainer(ctx, cmd)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			icon := g.Icon()
			if !icon.Found() {
				return fmt.Errorf("icon: %w", icon.Err())
			}
			if err := os.WriteFile(out, icon.Bytes(), 0o644); err != nil {
				return err
			}
			logger.FromContext(ctx).Info("wrote icon", "path", out, "bytes", icon.Len())
			return nil
		},
	}
}
