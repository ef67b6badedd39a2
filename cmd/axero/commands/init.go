package commands

import (
	"fmt"

	"github.com/dyluth/axero/internal/printer"
	"github.com/dyluth/axero/internal/scaffold"
	"github.com/spf13/cobra"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter axero.yml",
	Long: `Write a starter axero.yml with every default spelled out.

The file is read by the dashboard, the focus command and axero-simulator.
Its location follows --config.

Use --force to overwrite an existing file (WARNING: discards your edits).`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing configuration file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if !forceInit {
		if err := scaffold.CheckExisting(configPath); err != nil {
			return printer.Error(
				"configuration already exists",
				err.Error(),
				[]string{"Edit the existing file, or overwrite it:\n  axero init --force"},
			)
		}
	} else {
		printer.Warning("Overwriting %s\n", configPath)
	}

	if err := scaffold.Initialize(configPath, forceInit); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	scaffold.PrintSuccess(configPath)
	return nil
}
