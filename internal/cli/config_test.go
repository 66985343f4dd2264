package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/journal/internal/jsonfile"
	"github.com/mesh-intelligence/journal/pkg/types"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileExt), []byte(body), 0o644))
}

func TestLoadSettingsDefaults(t *testing.T) {
	configDir := t.TempDir()
	dataDir := t.TempDir()

	s, err := loadSettings(&rootFlags{configDir: configDir, dataDir: dataDir})
	require.NoError(t, err)
	assert.Equal(t, configDir, s.configDir)
	assert.Equal(t, types.Config{Backend: types.BackendJSON, DataDir: dataDir}, s.store)
	assert.Equal(t, defaultLogLevel, s.logLevel)
	assert.Empty(t, s.logFile)
	assert.Equal(t, defaultPreviewLength, s.previewLength)
}

func TestLoadSettingsFromFile(t *testing.T) {
	configDir := t.TempDir()
	dataDir := filepath.Join(t.TempDir(), "entries")
	writeConfig(t, configDir, "backend: sqlite\n"+
		"data_dir: "+dataDir+"\n"+
		"log_level: debug\n"+
		"preview_length: 12\n")

	s, err := loadSettings(&rootFlags{configDir: configDir})
	require.NoError(t, err)
	assert.Equal(t, types.Config{Backend: types.BackendSQLite, DataDir: dataDir}, s.store)
	assert.Equal(t, "debug", s.logLevel)
	assert.Equal(t, 12, s.previewLength)
}

func TestLoadSettingsFlagsWin(t *testing.T) {
	configDir := t.TempDir()
	flagDir := t.TempDir()
	writeConfig(t, configDir, "backend: sqlite\ndata_dir: /somewhere/else\n")

	s, err := loadSettings(&rootFlags{configDir: configDir, dataDir: flagDir, backend: types.BackendJSON})
	require.NoError(t, err)
	assert.Equal(t, types.Config{Backend: types.BackendJSON, DataDir: flagDir}, s.store)
}

func TestLoadSettingsBadPreviewLengthFallsBack(t *testing.T) {
	configDir := t.TempDir()
	writeConfig(t, configDir, "preview_length: 0\n")

	s, err := loadSettings(&rootFlags{configDir: configDir, dataDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, defaultPreviewLength, s.previewLength)
}

func TestLoadSettingsErrors(t *testing.T) {
	t.Run("unknown backend", func(t *testing.T) {
		configDir := t.TempDir()
		writeConfig(t, configDir, "backend: postgres\n")

		_, err := loadSettings(&rootFlags{configDir: configDir, dataDir: t.TempDir()})
		assert.ErrorIs(t, err, types.ErrBackendUnknown)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		configDir := t.TempDir()
		writeConfig(t, configDir, "backend: [json\n")

		_, err := loadSettings(&rootFlags{configDir: configDir, dataDir: t.TempDir()})
		assert.ErrorContains(t, err, "read config")
	})
}

func TestPreviewLengthFromConfig(t *testing.T) {
	env := newTestEnv(t)
	writeConfig(t, env.configDir, "preview_length: 8\n")

	require.Equal(t, exitSuccess, env.run("--add", "Met with the whole team").code)
	res := env.run("--view", "2023-12-10")
	assert.Equal(t, "Date: 2023-12-10 - Entry: Met with...\n", res.stdout)
}

func TestDataDirFromConfig(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")
	dataDir := filepath.Join(t.TempDir(), "from-config")
	writeConfig(t, configDir, "data_dir: "+dataDir+"\n")

	var out, errOut bytes.Buffer
	now := func() time.Time { return time.Date(2023, 12, 10, 9, 30, 0, 0, time.Local) }
	code := run([]string{"--config-dir", configDir, "--add", "Met with team"}, &out, &errOut, now)
	require.Equal(t, exitSuccess, code, errOut.String())

	_, err := os.Stat(filepath.Join(dataDir, jsonfile.FileName))
	assert.NoError(t, err)
}

func TestResolveLogFile(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/state")

	got, err := resolveLogFile("")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = resolveLogFile("/var/log/journal.log")
	require.NoError(t, err)
	assert.Equal(t, "/var/log/journal.log", got)

	if runtime.GOOS == "linux" {
		got, err = resolveLogFile("journal.log")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/state", "journal", "journal.log"), got)
	}
}

func TestLogFileFromConfig(t *testing.T) {
	env := newTestEnv(t)
	logFile := filepath.Join(t.TempDir(), "logs", "journal.log")
	writeConfig(t, env.configDir, "log_level: debug\nlog_file: "+logFile+"\n")

	res := env.run("--add", "Met with team")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.Empty(t, res.stderr)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"entry added"`)
}

func TestRelativeDataDirFollowsConfigDir(t *testing.T) {
	configDir := t.TempDir()
	writeConfig(t, configDir, "data_dir: entries\n")

	t.Chdir(t.TempDir())
	s, err := loadSettings(&rootFlags{configDir: configDir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(configDir, "entries"), s.store.DataDir)
}
