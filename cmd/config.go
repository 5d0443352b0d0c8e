package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/switchboard/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Edit the configuration file",
}

var configDefaultSourcesCmd = &cobra.Command{
	Use:   "default-sources NAME:TYPE[:hidden]...",
	Short: "Set the sources every new scene starts with",
	Long: `Set the sources every new scene starts with. Other sections of the config
file, comments included, are left as they are.

Example:
  switchboard config default-sources "Mic/Aux:wasapi_input_capture:hidden" "Camera:dshow_input"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		srcs := make([]config.SourceConfig, 0, len(args))
		for _, arg := range args {
			src, err := parseSourceArg(arg)
			if err != nil {
				return err
			}
			srcs = append(srcs, src)
		}
		path := configPath()
		if err := config.SaveDefaultSources(path, srcs); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d default sources to %s\n", len(srcs), path)
		return nil
	},
}

var configDefaultSceneCmd = &cobra.Command{
	Use:   "default-scene NAME",
	Short: "Set the name of the scene created for an empty collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(args[0]) == "" {
			return fmt.Errorf("scene name is empty")
		}
		path := configPath()
		if err := config.SaveDefaultSceneName(path, args[0]); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote default scene name to %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configDefaultSourcesCmd, configDefaultSceneCmd)
	rootCmd.AddCommand(configCmd)
}

// configPath is the file viper loaded, or the local default location.
func configPath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return localConfigPath
}

// parseSourceArg parses NAME:TYPE or NAME:TYPE:hidden.
func parseSourceArg(arg string) (config.SourceConfig, error) {
	parts := strings.Split(arg, ":")
	switch {
	case len(parts) == 2:
		return config.SourceConfig{Name: parts[0], Type: parts[1]}, nil
	case len(parts) == 3 && parts[2] == "hidden":
		return config.SourceConfig{Name: parts[0], Type: parts[1], Hidden: true}, nil
	default:
		return config.SourceConfig{}, fmt.Errorf("source %q: want NAME:TYPE or NAME:TYPE:hidden: %w", arg, config.ErrInvalidSource)
	}
}
