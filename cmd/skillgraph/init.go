package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skillgraph/skillgraph/pkg/config"
	"github.com/skillgraph/skillgraph/pkg/logger"
	"github.com/skillgraph/skillgraph/pkg/presenter"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up skillgraph configuration",
	Long:  `Write a configuration file with the default skill sources and output settings.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		override, _ := cmd.Flags().GetBool("override")
		path, _ := cmd.Flags().GetString("path")

		if path == "" {
			defaultPath, err := config.DefaultPath()
			if err != nil {
				return err
			}
			path = defaultPath
		}

		presenter.Section("skillgraph Configuration Setup")

		err := config.WriteFile(path, config.Default(), override)
		if errors.Is(err, config.ErrConfigExists) {
			presenter.Warning(fmt.Sprintf("Configuration file already exists at %s", path))
			presenter.Info("To overwrite, use the --override flag or remove the file and run 'skillgraph init' again")
			return nil
		}
		if err != nil {
			logger.G(ctx).WithError(err).WithField("config_file", path).Error("config file write failed")
			return err
		}

		if override {
			presenter.Success(fmt.Sprintf("Configuration overwritten at %s", path))
		} else {
			presenter.Success(fmt.Sprintf("Configuration saved to %s", path))
		}
		presenter.Info("Add skill directories under sources.skills to include them in the graph")
		logger.G(ctx).WithField("config_file", path).Debug("configuration file created")

		presenter.Separator()
		presenter.Section("Getting Started")
		presenter.Info("  skillgraph list                   # List discovered skills")
		presenter.Info("  skillgraph graph --format dot     # Export the graph for Graphviz")
		presenter.Info("  skillgraph overview               # Clusters, pipelines and recent changes")
		presenter.Info("  skillgraph tui --watch            # Explore the graph interactively")
		return nil
	},
}

func init() {
	initCmd.Flags().Bool("override", false, "Overwrite existing configuration file if it exists")
	initCmd.Flags().String("path", "", "Write the configuration to this path instead of ~/.skillgraph/config.yaml")
}
