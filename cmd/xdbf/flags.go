package main

import "github.com/urfave/cli/v3"

var (
	logLevel   string
	logFormat  string
	debug      bool
	configFile string
	locale     string
)

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config.yaml (default: user config dir)",
			Destination: &configFile,
		},
	}
}

func localeFlag() cli.Flag {
	return &cli.StringFlag{
		Name:        "locale",
		Aliases:     []string{"l"},
		Usage:       "locale name, number or language tag (default: the title's own)",
		Destination: &locale,
	}
}
