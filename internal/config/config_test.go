package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("CALLLOG_ADDR", "")
	t.Setenv("CALLLOG_DRIVER", "")
	t.Setenv("CALLLOG_DSN", "")
	t.Setenv("CALLLOG_DEBUG", "")

	cfg := FromEnv()
	require.Equal(t, &Config{Addr: ":3000", Driver: "sqlite", DSN: "calllog.db"}, cfg)

	t.Setenv("PORT", "8080")
	t.Setenv("CALLLOG_DRIVER", "mysql")
	cfg = FromEnv()
	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, "mysql", cfg.Driver)

	t.Setenv("CALLLOG_ADDR", "127.0.0.1:9000")
	require.Equal(t, "127.0.0.1:9000", FromEnv().Addr)
}

func TestLoadFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calllog.yaml")
	err := os.WriteFile(path, []byte("driver: postgres\ndsn: host=db user=calls sslmode=disable\ndebug: sql\n"), 0644)
	require.Nil(t, err)

	file, err := LoadFile(path)
	require.Nil(t, err)
	require.Equal(t, "postgres", file.Driver)

	cfg := &Config{Addr: ":3000", Driver: "sqlite", DSN: "calllog.db"}
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringVar(&cfg.Driver, "driver", cfg.Driver, "")
	flags.StringVar(&cfg.Debug, "debug", cfg.Debug, "")
	require.Nil(t, flags.Parse([]string{"--driver", "mysql"}))

	cfg.Overlay(file, flags)
	require.Equal(t, "mysql", cfg.Driver, "explicit flag wins")
	require.Equal(t, "host=db user=calls sslmode=disable", cfg.DSN)
	require.Equal(t, "sql", cfg.Debug)
	require.Equal(t, ":3000", cfg.Addr, "empty file value keeps current")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.Nil(t, os.WriteFile(bad, []byte("port: 1\n"), 0644))
	_, err = LoadFile(bad)
	require.NotNil(t, err, "unknown keys rejected")

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NotNil(t, err)
}
