package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/skillgraph/skillgraph/pkg/config"
	"github.com/skillgraph/skillgraph/pkg/skills"
	"github.com/skillgraph/skillgraph/pkg/tui"
)

// TUIConfig holds the options of the tui command
type TUIConfig struct {
	Watch bool
}

// NewTUIConfig creates a TUIConfig with default values
func NewTUIConfig() *TUIConfig {
	return &TUIConfig{Watch: false}
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Explore the skill graph interactively",
	Long: `Open the graph explorer. Browse all skills, focus one to see its
references, and follow edges while a breadcrumb trail records the path.

With --watch the graph is rebuilt whenever a SKILL.md file changes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}

		tuiConfig := NewTUIConfig()
		if watch, err := cmd.Flags().GetBool("watch"); err == nil {
			tuiConfig.Watch = watch
		}

		opts := tui.Options{}
		if tuiConfig.Watch {
			opts.WatchDirs = cfg.Sources.Skills
		}

		loader := tui.LoaderFunc(func(ctx context.Context) (*skills.Catalog, error) {
			return discoverCatalog(ctx, cfg.Sources)
		})
		return tui.StartExplorer(ctx, loader, opts)
	},
}

func init() {
	defaults := NewTUIConfig()
	tuiCmd.Flags().BoolP("watch", "w", defaults.Watch, "Rebuild the graph when skill files change")
}
