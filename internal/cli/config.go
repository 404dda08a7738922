package cli

import (
	"fmt"

	"github.com/billmal071/finna/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and modify finna configuration.

Configuration is stored in ~/.config/finna/config.yaml. Every key can
also be set from the environment, e.g. FINNA_SEARCH_LNG=sv.

Examples:
  finna config get search.limit
  finna config set search.lng en-gb
  finna config set viewer.image_command "feh -F"
  finna config set api.legacy_fields true`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		value := config.GetValue(key)
		if value == nil {
			return fmt.Errorf("key not found: %s", key)
		}
		fmt.Printf("%s = %v\n", key, value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("failed to set config: %w", err)
		}

		Successf("Set %s = %s", key, value)
		Printf("Config saved to: %s\n", config.ConfigFile())
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file paths",
	Run: func(cmd *cobra.Command, args []string) {
		logFile := config.Get().Logging.File
		if logFile == "" {
			logFile = config.GetLogPath()
		}
		fmt.Printf("Config file: %s\n", config.ConfigFile())
		fmt.Printf("Database:    %s\n", config.GetDBPath())
		fmt.Printf("Log file:    %s\n", logFile)
		fmt.Printf("Config dir:  %s\n", config.GetConfigDir())
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
}
