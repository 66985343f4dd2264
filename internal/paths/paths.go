// Package paths resolves the configuration, data and log locations for the
// journal CLI.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDirName is the per-application directory under each platform root.
const appDirName = "journal"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "JOURNAL_CONFIG_DIR"
	EnvDataDir   = "JOURNAL_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/journal (fallback ~/.config/journal)
// macOS:   ~/Library/Application Support/journal
// Windows: %APPDATA%/journal
func DefaultConfigDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/journal (fallback ~/.local/share/journal)
// macOS:   ~/Library/Application Support/journal
// Windows: %APPDATA%/journal
func DefaultDataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// DefaultStateDir returns the directory for logs and other state.
//
// Linux:   $XDG_STATE_HOME/journal (fallback ~/.local/state/journal)
// Others:  same as DefaultConfigDir.
func DefaultStateDir() (string, error) {
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func xdgDir(env, homeFallback string) (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv(env); xdg != "" {
			return filepath.Join(xdg, appDirName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, homeFallback, appDirName), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDirName), nil
	}
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > JOURNAL_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > configYAMLValue > JOURNAL_DATA_DIR env > DefaultDataDir().
// A relative configYAMLValue is taken relative to configDir, so one
// config.yaml always names the same journal.
func ResolveDataDir(flag, configYAMLValue, configDir string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		if !filepath.IsAbs(configYAMLValue) {
			configYAMLValue = filepath.Join(configDir, configYAMLValue)
		}
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultDataDir()
}
