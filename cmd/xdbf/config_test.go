package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
catalog_dir: /srv/titles
locale: japanese
server_address: localhost:9090
log_level: debug
log_format: json
max_decompressed: 1048576
`)
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	want := Config{
		CatalogDir:      "/srv/titles",
		Locale:          "japanese",
		ServerAddress:   "localhost:9090",
		LogLevel:        "debug",
		LogFormat:       "json",
		MaxDecompressed: 1 << 20,
	}
	if got != want {
		t.Fatalf("unexpected config: got %+v want %+v", got, want)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	for name, body := range map[string]string{
		"log format":   "log_format: xml\n",
		"log level":    "log_level: loud\n",
		"address":      "server_address: not an address\n",
		"negative cap": "max_decompressed: -1\n",
		"bad yaml":     "catalog_dir: [unterminated\n",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, body)); err == nil {
				t.Fatalf("expected error for %q", body)
			}
		})
	}
}

func TestLoadConfigMissing(t *testing.T) {
	t.Run("explicit path must exist", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Fatalf("expected error for missing explicit config")
		}
	})

	t.Run("default path may be absent", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		got, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig returned error: %v", err)
		}
		if got != (Config{}) {
			t.Fatalf("expected zero config, got %+v", got)
		}
	})

	t.Run("default path is read", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", home)
		path := filepath.Join(home, "xdbf", "config.yaml")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("locale: german\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := LoadConfig("")
		if err != nil || got.Locale != "german" {
			t.Fatalf("got %+v, %v", got, err)
		}
	})
}

func TestApplyServeConfigFlagsWin(t *testing.T) {
	c := Config{CatalogDir: "/from/config", ServerAddress: "localhost:9000"}
	var dir, addr string
	cmd := &cli.Command{
		Name: "serve",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Destination: &dir},
			&cli.StringFlag{Name: "addr", Value: "127.0.0.1:8080", Destination: &addr},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyServeConfig(cmd, c, &dir, &addr)
			return nil
		},
	}
	if err := cmd.Run(context.Background(), []string{"serve", "--addr", "0.0.0.0:1"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if dir != "/from/config" {
		t.Fatalf("dir: got %q want config value", dir)
	}
	if addr != "0.0.0.0:1" {
		t.Fatalf("addr: got %q want flag value", addr)
	}
}

func TestFormatValidationErrorNamesField(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "log_format: xml\n"))
	if err == nil || !strings.Contains(err.Error(), "LogFormat") {
		t.Fatalf("expected field name in error, got %v", err)
	}
}
