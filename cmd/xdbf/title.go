package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/xdbf/pkg/xdbf"
)

func titleCmd() *cli.Command {
	return &cli.Command{
		Name:      "title",
		Usage:     "Print the title name and headline metadata",
		ArgsUsage: "<file>",
		Flags:     []cli.Flag{localeFlag()},
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
			renderTitle(os.Stdout, g, loc)
			return nil
		},
	}
}

func stringsCmd() *cli.Command {
	return &cli.Command{
		Name:      "strings",
		Usage:     "Dump a localized string table",
		ArgsUsage: "<file>",
		Flags:     []cli.Flag{localeFlag()},
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
			st, err := xdbf.ParseStringTable(g.StringTable(loc))
			if err != nil {
				return fmt.Errorf("%s string table: %w", loc, err)
			}
			return renderStrings(os.Stdout, st.Records())
		},
	}
}
