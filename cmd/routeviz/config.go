package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/routeviz/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
}

// ConfigResponse is the response for config commands.
type ConfigResponse struct {
	Path   string         `json:"path"`
	Config *config.Config `json:"config"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after defaults, the config file and ROUTEVIZ_*
environment overrides have been applied.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()
		emit(ConfigResponse{Path: config.GlobalConfigPath(), Config: cfg}, func() {
			brand.Println("routeviz configuration")
			subtle.Printf("  %s\n", config.GlobalConfigPath())
			printSetting("db_path", cfg.DBPath)
			printSetting("width", cfg.Width)
			printSetting("height", cfg.Height)
			printSetting("fps", cfg.FPS)
			printSetting("seed", cfg.Seed)
			printSetting("default_icon", cfg.DefaultIcon)
			printSetting("log_json", cfg.LogJSON)
		})
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := mustLoadConfig()
		if err := config.Save(cfg); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		emit(StatusResponse{Status: "written", Path: config.GlobalConfigPath()}, func() {
			brand.Printf("Wrote %s\n", config.GlobalConfigPath())
		})
		return nil
	},
}

func printSetting(key string, value interface{}) {
	fmt.Printf("  %-13s %s\n", key, info.Sprint(value))
}
