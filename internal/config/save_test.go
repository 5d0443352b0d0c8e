package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveDefaultSources_CreatesNewFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	sources := []SourceConfig{
		{Name: "Camera", Type: "dshow_input"},
	}

	err := SaveDefaultSources(configPath, sources)
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "default_sources:")
	assert.Contains(t, string(data), "name: Camera")
	assert.Contains(t, string(data), "type: dshow_input")
}

func TestSaveDefaultSources_PreservesOtherConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	initial := `# collection location
db_path: /tmp/scenes.db
cache:
  enabled: false
default_sources:
  - name: Mic/Aux
    type: wasapi_input_capture
`
	err := os.WriteFile(configPath, []byte(initial), 0644)
	require.NoError(t, err)

	err = SaveDefaultSources(configPath, []SourceConfig{{Name: "Camera", Type: "dshow_input", Hidden: true}})
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "# collection location")
	assert.Contains(t, content, "db_path: /tmp/scenes.db")
	assert.Contains(t, content, "enabled: false")
	assert.Contains(t, content, "name: Camera")
	assert.NotContains(t, content, "Mic/Aux")
}

func TestSaveDefaultSources_Roundtrip(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	original := []SourceConfig{
		{Name: "Mic/Aux", Type: "wasapi_input_capture", Hidden: true},
		{Name: "Camera", Type: "dshow_input", Hidden: false},
	}
	require.NoError(t, SaveDefaultSources(configPath, original))

	v := viper.New()
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())

	var loaded []SourceConfig
	require.NoError(t, v.UnmarshalKey("default_sources", &loaded))
	require.Equal(t, original, loaded)
}

func TestSaveDefaultSources_RejectsInvalid(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	err := SaveDefaultSources(configPath, []SourceConfig{{Name: "", Type: "dshow_input"}})
	require.ErrorIs(t, err, ErrInvalidSource)

	_, statErr := os.Stat(configPath)
	require.True(t, os.IsNotExist(statErr), "nothing written for invalid input")
}

func TestSaveDefaultSources_InvalidYAML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("db_path: [unclosed"), 0644))

	err := SaveDefaultSources(configPath, DefaultSources())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestSaveDefaultSources_NoTempFilesLeft(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	require.NoError(t, SaveDefaultSources(configPath, DefaultSources()))

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "config.yaml", entries[0].Name())
}

func TestSaveDefaultSceneName(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")
	require.NoError(t, WriteDefaultConfig(configPath))

	require.NoError(t, SaveDefaultSceneName(configPath, "Intro"))

	v := viper.New()
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())
	require.Equal(t, "Intro", v.GetString("default_scene_name"))
	require.Equal(t, ".switchboard/collection.db", v.GetString("db_path"))
}
