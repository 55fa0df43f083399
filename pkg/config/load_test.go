package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/nikmy/gameprefs/pkg/environment"
	"github.com/nikmy/gameprefs/pkg/prefs"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	require.Equal(t, environment.Development, cfg.Environment)
	require.Equal(t, "prefsdemo", cfg.App.Name)
	require.Equal(t, StorageDefault, cfg.Storage.Type)
	require.Equal(t, prefs.TOML, cfg.Storage.Format)
	require.Equal(t, 100*time.Millisecond, cfg.Loop.Interval)
	require.True(t, cfg.Inspector.Enabled)
	require.Equal(t, "127.0.0.1:7878", cfg.Inspector.HTTP.Addr)
	require.Equal(t, 5*time.Second, cfg.Inspector.HTTP.ReadTimeout)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	path := writeConfig(t, `
environment: prod
app:
  name: game
  org: acme
storage:
  type: file
  dir: /tmp/prefs
  format: yaml
loop:
  interval: 1s
inspector:
  http:
    addr: ":9000"
`)

	t.Setenv("PREFSDEMO_APP_ORG", "studio")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("format", "", "")
	flags.String("log-level", "", "")
	require.NoError(t, flags.Parse([]string{"--format=json", "--log-level=debug"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	require.Equal(t, environment.Production, cfg.Environment)
	require.Equal(t, "game", cfg.App.Name)
	require.Equal(t, "studio", cfg.App.Org)
	require.Equal(t, StorageFile, cfg.Storage.Type)
	require.Equal(t, "/tmp/prefs", cfg.Storage.Dir)
	require.Equal(t, prefs.JSON, cfg.Storage.Format)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, time.Second, cfg.Loop.Interval)
	require.Equal(t, ":9000", cfg.Inspector.HTTP.Addr)
}

func TestLoad_Invalid(t *testing.T) {
	tests := [...]struct {
		name    string
		content string
	}{
		{name: "unknown format", content: "storage:\n  format: ini\n"},
		{name: "unknown storage", content: "storage:\n  type: cloud\n"},
		{name: "file without dir", content: "storage:\n  type: file\n"},
		{name: "persisted without name", content: "app:\n  name: \"\"\n"},
		{name: "zero interval", content: "loop:\n  interval: 0s\n"},
		{name: "broken yaml", content: "storage: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), nil)
			require.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.Error(t, err)
}

func TestLoad_NoStorageNeedsNoName(t *testing.T) {
	cfg, err := Load(writeConfig(t, "app:\n  name: \"\"\nstorage:\n  type: none\n"), nil)
	require.NoError(t, err)
	require.Equal(t, StorageNone, cfg.Storage.Type)
}
