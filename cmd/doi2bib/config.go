package main

import (
	"fmt"
	"os"

	"github.com/bibkit/doi2bib/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the doi2bib configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Path()
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		if _, err := os.Stat(path); err == nil {
			exitWithError(ExitConfigError, "config already exists at %s", path)
		}
		if err := config.Default().Save(path); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		fmt.Printf("Wrote default config to %s\n", path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Path()
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		fmt.Println(path)
		return nil
	},
}
