//go:build !js

package prefs

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/nikmy/gameprefs/pkg/errors"
)

// PreferenceDir is where per-user preferences live: ~/Library/Preferences on
// macOS, os.UserConfigDir elsewhere.
func PreferenceDir() (string, error) {
	if runtime.GOOS == "darwin" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.WrapFail(err, "find home directory")
		}
		return filepath.Join(home, "Library", "Preferences"), nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.WrapFail(err, "find config directory")
	}
	return dir, nil
}

func preferencesPath(dir, app string, format Format) string {
	return filepath.Join(dir, app, "preferences."+format.Extension())
}

func platformDefaultStorage(app string) (Storage, error) {
	dir, err := PreferenceDir()
	if err != nil {
		return nil, err
	}
	return NewFileStorage(preferencesPath(dir, app, TOML), TOML), nil
}
