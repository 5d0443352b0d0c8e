package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/switchboard/internal/app"
	"github.com/zjrosen/switchboard/internal/config"
	"github.com/zjrosen/switchboard/internal/log"
)

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config

	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "switchboard",
	Short: "Scene collection manager for live production",
	Long: `Switchboard keeps an ordered collection of scenes, the capture sources placed
in them and the active (program) scene, and persists the collection between runs.

Scenes are addressed by name or id. Ids are regenerated every time the
collection is loaded, so names are the stable handle across invocations.`,
	Version:            version,
	SilenceUsage:       true,
	PersistentPreRunE:  setupLogging,
	PersistentPostRunE: teardownLogging,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .switchboard/config.yaml, then ~/.config/switchboard/config.yaml)")
	rootCmd.PersistentFlags().String("db", "",
		"path to the collection database")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also SWITCHBOARD_DEBUG)")

	_ = viper.BindPFlag("db_path", rootCmd.PersistentFlags().Lookup("db"))
}

const localConfigPath = ".switchboard/config.yaml"

func initConfig() {
	setDefaults(viper.GetViper(), config.Defaults())

	viper.SetEnvPrefix("SWITCHBOARD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .switchboard/config.yaml (current directory)
		// 2. ~/.config/switchboard/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "switchboard"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .switchboard/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if writeErr := config.WriteDefaultConfig(localConfigPath); writeErr == nil {
				viper.SetConfigFile(localConfigPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// setDefaults registers every default so environment variables and partial
// config files still unmarshal into a complete Config.
func setDefaults(v *viper.Viper, d config.Config) {
	v.SetDefault("db_path", d.DBPath)
	v.SetDefault("default_scene_name", d.DefaultSceneName)
	v.SetDefault("default_sources", d.DefaultSources)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
	v.SetDefault("log.path", d.Log.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	if !debugFlag && os.Getenv("SWITCHBOARD_DEBUG") == "" {
		return nil
	}
	logPath := cfg.Log.Path
	if env := os.Getenv("SWITCHBOARD_LOG"); env != "" {
		logPath = env
	}

	cleanup, err := log.Init(logPath)
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	logCleanup = cleanup
	log.SetMinLevel(log.ParseLevel(cfg.Log.Level))
	log.Info(log.CatCLI, "command starting", "cmd", cmd.CommandPath(), "config", viper.ConfigFileUsed(), "db", cfg.DBPath)
	return nil
}

func teardownLogging(_ *cobra.Command, _ []string) error {
	if logCleanup != nil {
		logCleanup()
		logCleanup = nil
	}
	return nil
}

// newApp builds the application from the loaded config. Nothing is loaded.
func newApp(cmd *cobra.Command) (*app.App, error) {
	return app.New(cfg, app.WithAlertWriter(cmd.ErrOrStderr()))
}

// openApp builds the application and loads the collection.
func openApp(cmd *cobra.Command) (*app.App, error) {
	a, err := newApp(cmd)
	if err != nil {
		return nil, err
	}
	if err := a.Start(cmd.Context()); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("loading collection: %w", err)
	}
	return a, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
