package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the xdbf configuration file (~/.config/xdbf/config.yaml).
type Config struct {
	CatalogDir    string `yaml:"catalog_dir"`
	Locale        string `yaml:"locale"`
	ServerAddress string `yaml:"server_address" validate:"omitempty,hostname_port"`

	LogLevel  string `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	LogFormat string `yaml:"log_format" validate:"omitempty,oneof=pretty json text"`

	// MaxDecompressed caps compressed containers, in bytes.
	MaxDecompressed int64 `yaml:"max_decompressed" validate:"gte=0"`
}

var (
	validate = validator.New()

	// cfg is loaded by the root command's Before hook.
	cfg Config
)

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "xdbf", "config.yaml")
}

// LoadConfig reads and validates the config file at path, or the default
// location when path is empty. A missing default file yields a zero Config.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = configPath()
	}
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := validate.Struct(&c); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, formatValidationError(err))
	}
	return c, nil
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (got %v)", fe.Field(), fe.Tag(), fe.Value()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// applyLoggingConfig applies config file defaults to the logging flags
// when they were not explicitly set.
func applyLoggingConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyServeConfig applies config file defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg Config, dir, addr *string) {
	if cfg.CatalogDir != "" && !c.IsSet("dir") {
		*dir = cfg.CatalogDir
	}
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
}
