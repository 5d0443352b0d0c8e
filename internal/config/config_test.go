package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/switchboard/internal/tracing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	require.Equal(t, ".switchboard/collection.db", cfg.DBPath)
	require.Equal(t, "Scene", cfg.DefaultSceneName)
	require.Equal(t, DefaultSources(), cfg.DefaultSources)
	require.True(t, cfg.Cache.Enabled)
	require.Equal(t, 30*time.Second, cfg.Cache.TTL)
	require.Equal(t, 500*time.Millisecond, cfg.Watch.Debounce)
	require.False(t, cfg.Tracing.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestDefaultSources(t *testing.T) {
	sources := DefaultSources()
	require.Len(t, sources, 2)
	require.Equal(t, "Mic/Aux", sources[0].Name)
	require.Equal(t, "wasapi_input_capture", sources[0].Type)
	require.Equal(t, "Desktop Audio", sources[1].Name)
	require.Equal(t, "wasapi_output_capture", sources[1].Type)
	for _, s := range sources {
		require.True(t, s.Hidden, "%s should be hidden", s.Name)
	}
}

func TestValidateSources(t *testing.T) {
	tests := []struct {
		name    string
		sources []SourceConfig
		wantErr bool
	}{
		{name: "empty", sources: nil},
		{name: "defaults", sources: DefaultSources()},
		{name: "missing name", sources: []SourceConfig{{Type: "dshow_input"}}, wantErr: true},
		{name: "blank name", sources: []SourceConfig{{Name: "  ", Type: "dshow_input"}}, wantErr: true},
		{name: "missing type", sources: []SourceConfig{{Name: "Cam"}}, wantErr: true},
		{
			name: "duplicate name",
			sources: []SourceConfig{
				{Name: "Cam", Type: "dshow_input"},
				{Name: "Cam", Type: "dshow_input"},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSources(tt.sources)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidSource)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateTracing(t *testing.T) {
	valid := tracing.DefaultConfig()
	require.NoError(t, ValidateTracing(valid))

	bad := valid
	bad.SampleRate = 1.5
	require.ErrorContains(t, ValidateTracing(bad), "sample_rate")

	bad = valid
	bad.Exporter = "jaeger"
	require.ErrorContains(t, ValidateTracing(bad), "exporter")

	bad = valid
	bad.Enabled = true
	bad.FilePath = ""
	require.ErrorContains(t, ValidateTracing(bad), "file_path")

	bad = valid
	bad.Enabled = true
	bad.Exporter = tracing.ExporterOTLP
	bad.OTLPEndpoint = ""
	require.ErrorContains(t, ValidateTracing(bad), "otlp_endpoint")

	// Paths are only required when tracing is enabled.
	off := valid
	off.FilePath = ""
	require.NoError(t, ValidateTracing(off))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{name: "missing db path", mutate: func(c *Config) { c.DBPath = "" }, errMsg: "db_path"},
		{name: "blank scene name", mutate: func(c *Config) { c.DefaultSceneName = " " }, errMsg: "default_scene_name"},
		{name: "negative ttl", mutate: func(c *Config) { c.Cache.TTL = -time.Second }, errMsg: "cache.ttl"},
		{name: "negative debounce", mutate: func(c *Config) { c.Watch.Debounce = -time.Second }, errMsg: "watch.debounce"},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "verbose" }, errMsg: "log.level"},
		{name: "bad source", mutate: func(c *Config) { c.DefaultSources = []SourceConfig{{Name: "x"}} }, errMsg: "type is required"},
		{name: "bad exporter", mutate: func(c *Config) { c.Tracing.Exporter = "zipkin" }, errMsg: "tracing.exporter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			require.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(configPath))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

// TestDefaultConfigTemplate_MatchesDefaults loads the template through viper
// and checks it decodes to Defaults().
func TestDefaultConfigTemplate_MatchesDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(configPath))

	v := viper.New()
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())

	cfg := Defaults()
	require.NoError(t, v.Unmarshal(&cfg))
	require.Equal(t, Defaults(), cfg)
}
