package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/xdbf/internal/api"
	"github.com/samcharles93/xdbf/internal/catalog"
	"github.com/samcharles93/xdbf/internal/logger"
)

func serveCmd() *cli.Command {
	var (
		dir         string
		addr        string
		concurrency int
		cacheSize   int
		readTimeout time.Duration
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve a directory of containers over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "dir",
				Aliases:     []string{"d"},
				Usage:       "directory of .xdbf/.spa containers (optionally .zst, .lz4, .br)",
				Destination: &dir,
			},
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.IntFlag{
				Name:        "concurrency",
				Usage:       "containers opened in parallel while scanning",
				Value:       8,
				Destination: &concurrency,
			},
			&cli.IntFlag{
				Name:        "cache-size",
				Usage:       "achievement lists kept in memory",
				Value:       256,
				Destination: &cacheSize,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read header timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyServeConfig(cmd, cfg, &dir, &addr)
			if dir == "" {
				return errors.New("--dir is required unless catalog_dir is set in the config file")
			}

			cat, err := catalog.Open(ctx, dir, catalog.Options{
				Concurrency:     concurrency,
				CacheSize:       cacheSize,
				MaxDecompressed: cfg.MaxDecompressed,
				Logger:          log,
			})
			if err != nil {
				return err
			}
			defer func() { _ = cat.Close() }()

			server := api.NewServer(cat, log)
			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)
			log.Info("starting server", "address", addr, "titles", len(cat.Titles()))
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
