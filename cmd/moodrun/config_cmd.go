// ABOUTME: CLI commands for inspecting and writing configuration.
// ABOUTME: Also hosts the version command; neither opens storage.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/harperreed/moodrun/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or initialize configuration",
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Print the effective configuration",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipStore: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, faint.Sprintf("# backend: %s, data dir: %s", cfg.GetBackend(), cfg.GetDataDir()))
		_, err = out.Write(data)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write the effective configuration to the config file",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipStore: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.GetConfigPath()
		}
		if err := cfg.SaveTo(path); err != nil {
			return err
		}
		green.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print the version",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipStore: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "moodrun %s\n", version)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configInitCmd)
	rootCmd.AddCommand(configCmd, versionCmd)
}
