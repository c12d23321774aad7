package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"
)

func achievementsCmd() *cli.Command {
	var asJSON bool

	return &cli.Command{
		Name:      "achievements",
		Usage:     "List achievements with localized text",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			localeFlag(),
			&cli.BoolFlag{Name: "json", Usage: "print JSON instead of a table", Destination: &asJSON},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			f, g, err := openContainer(ctx, cmd)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			loc, err := resolveLocale(locale, cfg, g)
			if err != nil {
				return err
			}
			list, count := g.Achievements(loc)
			return renderAchievements(os.Stdout, list, count, asJSON)
		},
	}
}
