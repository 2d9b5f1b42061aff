package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/morikuni/failure/v2"
	"github.com/nao1215/snapdiff/internal/cli"
	"github.com/nao1215/snapdiff/internal/config"
	"github.com/spf13/cobra"
)

//go:embed templates/snapdiff.yaml
var configTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a snapdiff configuration file",
		Long: `Init writes a commented .snapdiff configuration file to the current directory.

Examples:
  # Create .snapdiff in current directory
  diffcheck init

  # Create config file at a specific path
  diffcheck init -o ~/.config/snapdiff/config.yaml

  # Force overwrite existing file
  diffcheck init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return failure.New(cli.ErrOutput,
				failure.Message("configuration file already exists: "+outputPath+" (use -f to overwrite)"),
			)
		}
	}

	content, err := configTemplate.ReadFile("templates/snapdiff.yaml")
	if err != nil {
		return failure.Wrap(err, failure.Message("failed to read config template"))
	}

	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return failure.Wrap(err, failure.WithCode(cli.ErrOutput), failure.Message("failed to create directory: "+dir))
		}
	}
	if err := os.WriteFile(outputPath, content, 0o600); err != nil {
		return failure.Wrap(err, failure.WithCode(cli.ErrOutput), failure.Message("failed to write configuration file: "+outputPath))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", outputPath)
	return nil
}
