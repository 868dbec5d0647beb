package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/docaudit/internal/config"
	"github.com/jackzampolin/docaudit/internal/home"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage docaudit configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration file",
	Long: `Init writes the default configuration. Without a path argument the file
goes to ~/.docaudit/config.yaml, creating the directory if needed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) == 1 {
			path = args[0]
		} else {
			dir, err := home.New("")
			if err != nil {
				return err
			}
			if err := dir.EnsureExists(); err != nil {
				return err
			}
			path = dir.ConfigPath()
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Printf("wrote default configuration to %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}
