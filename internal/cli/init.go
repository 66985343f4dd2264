package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/journal/internal/paths"
	"github.com/mesh-intelligence/journal/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend       string `yaml:"backend"`
	DataDir       string `yaml:"data_dir,omitempty"`
	LogLevel      string `yaml:"log_level"`
	PreviewLength int    `yaml:"preview_length"`
}

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and data directories",
		Long: `Init writes a default config.yaml into the configuration directory
when none exists, then creates the data directory. Running it again
leaves an existing config.yaml untouched. A relative data_dir in
config.yaml is taken relative to the configuration directory.`,
		Args: cobra.NoArgs,
		RunE: a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, args []string) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return sysError(fmt.Errorf("create config directory: %w", err))
	}

	backend := a.flags.backend
	if backend == "" {
		backend = defaultBackend
	}
	configPath := filepath.Join(configDir, configFileExt)
	if err := writeConfigIfMissing(configPath, backend, a.flags.dataDir); err != nil {
		return sysError(fmt.Errorf("write config: %w", err))
	}

	s, err := loadSettings(&a.flags)
	if err != nil {
		return sysError(err)
	}
	if err := os.MkdirAll(s.store.DataDir, 0o755); err != nil {
		return sysError(fmt.Errorf("create data directory: %w", err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Journal initialized: config %s, data %s\n", configPath, s.store.DataDir)
	return nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. If it already exists, the function returns nil.
func writeConfigIfMissing(path, backend, dataDir string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config file: %w", err)
	}

	if dataDir != "" {
		abs, err := filepath.Abs(dataDir)
		if err != nil {
			return err
		}
		dataDir = abs
	}

	cfg := configFile{
		Backend:       backend,
		DataDir:       dataDir,
		LogLevel:      defaultLogLevel,
		PreviewLength: defaultPreviewLength,
	}
	if err := (types.Config{Backend: cfg.Backend}).Validate(); err != nil {
		return fmt.Errorf("backend %q: %w", backend, err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
