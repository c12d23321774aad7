package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/xdbf/internal/logger"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "xdbf",
		Usage: "Inspect and serve Xbox 360 title metadata containers",
		Flags: loggingFlags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			c, err := LoadConfig(configFile)
			if err != nil {
				return ctx, err
			}
			cfg = c
			applyLoggingConfig(cmd, cfg)

			level := slog.LevelDebug
			if !debug {
				if level, err = logger.ParseLevel(logLevel); err != nil {
					return ctx, err
				}
			}
			log, err := logger.New(os.Stderr, logFormat, level)
			if err != nil {
				return ctx, err
			}
			return logger.WithContext(ctx, log), nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			inspectCmd(),
			titleCmd(),
			stringsCmd(),
			achievementsCmd(),
			iconCmd(),
			serveCmd(),
			versionCmd(),
		},
	}
}
