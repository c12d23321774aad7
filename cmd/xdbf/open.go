package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/xdbf/internal/logger"
	"github.com/samcharles93/xdbf/internal/source"
	"github.com/samcharles93/xdbf/pkg/xdbf"
)

// openContainer opens the single positional container argument. The caller
// closes the returned file.
func openContainer(ctx context.Context, cmd *cli.Command) (*source.File, *xdbf.GameData, error) {
	if cmd.NArg() != 1 {
		return nil, nil, errors.New("expected exactly one container path")
	}
	path := cmd.Args().First()
	f, err := source.Open(path, source.Options{MaxDecompressed: cfg.MaxDecompressed})
	if err != nil {
		return nil, nil, err
	}
	g := f.GameData()
	if !g.Valid() {
		_ = f.Close()
		return nil, nil, fmt.Errorf("%s: %w", path, g.Err())
	}
	logger.FromContext(ctx).Debug("opened container",
		"path", path,
		"compression", f.Compression.String(),
		"mapped", f.Mapped(),
		"size", g.Size(),
	)
	return f, g, nil
}

// resolveLocale picks the --locale flag, then the config file, then the
// container's own default.
func resolveLocale(flag string, c Config, g *xdbf.GameData) (xdbf.Locale, error) {
	raw := strings.TrimSpace(flag)
	if raw == "" {
		raw = strings.TrimSpace(c.Locale)
	}
	if raw == "" {
		return g.DefaultLocale(), nil
	}
	return xdbf.ParseLocale(raw)
}
