// Config loading for the journal CLI.
package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/journal/internal/paths"
	"github.com/mesh-intelligence/journal/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Keys in config.yaml.
	cfgKeyBackend       = "backend"
	cfgKeyDataDir       = "data_dir"
	cfgKeyLogLevel      = "log_level"
	cfgKeyLogFile       = "log_file"
	cfgKeyPreviewLength = "preview_length"

	defaultBackend       = types.BackendJSON
	defaultLogLevel      = "warn"
	defaultPreviewLength = 30
)

// settings is the effective configuration for one invocation, after flags,
// config.yaml, environment and defaults have been applied.
type settings struct {
	configDir     string
	store         types.Config
	logLevel      string
	logFile       string
	previewLength int
}

// loadConfig reads config.yaml from configDir using Viper. A missing
// config.yaml, or a missing configDir, is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyPreviewLength, defaultPreviewLength)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// loadSettings resolves directories and merges flags over config.yaml.
func loadSettings(f *rootFlags) (settings, error) {
	configDir, err := paths.ResolveConfigDir(f.configDir)
	if err != nil {
		return settings{}, fmt.Errorf("resolve config dir: %w", err)
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return settings{}, err
	}

	dataDir, err := paths.ResolveDataDir(f.dataDir, v.GetString(cfgKeyDataDir), configDir)
	if err != nil {
		return settings{}, fmt.Errorf("resolve data dir: %w", err)
	}

	backend := v.GetString(cfgKeyBackend)
	if f.backend != "" {
		backend = f.backend
	}

	logFile, err := resolveLogFile(v.GetString(cfgKeyLogFile))
	if err != nil {
		return settings{}, fmt.Errorf("resolve log file: %w", err)
	}

	preview := v.GetInt(cfgKeyPreviewLength)
	if preview < 1 {
		preview = defaultPreviewLength
	}

	s := settings{
		configDir: configDir,
		store: types.Config{
			Backend: backend,
			DataDir: dataDir,
		},
		logLevel:      v.GetString(cfgKeyLogLevel),
		logFile:       logFile,
		previewLength: preview,
	}
	if err := s.store.Validate(); err != nil {
		return settings{}, fmt.Errorf("backend %q: %w", backend, err)
	}
	return s, nil
}

// resolveLogFile places a relative log_file under the state directory.
func resolveLogFile(name string) (string, error) {
	if name == "" || filepath.IsAbs(name) {
		return name, nil
	}
	stateDir, err := paths.DefaultStateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(stateDir, name), nil
}
