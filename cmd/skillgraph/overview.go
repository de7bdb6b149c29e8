package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skillgraph/skillgraph/pkg/graph"
	"github.com/skillgraph/skillgraph/pkg/overview"
	"github.com/skillgraph/skillgraph/pkg/presenter"
	"github.com/skillgraph/skillgraph/pkg/skills"
)

// OverviewConfig holds the options of the overview command
type OverviewConfig struct {
	JSON   bool
	Recent int
}

// NewOverviewConfig creates an OverviewConfig with default values
func NewOverviewConfig() *OverviewConfig {
	return &OverviewConfig{
		JSON:   false,
		Recent: overview.DefaultRecentLimit,
	}
}

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Summarize clusters, pipelines and recent activity",
	Long: `Show a dashboard of the skill collection: circular reference clusters,
pipelines with their stage counts and ordering gaps, skills with no
connections, and the most recently modified skills.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		_, catalog, err := loadCatalog(ctx)
		if err != nil {
			return err
		}
		return runOverview(ctx, catalog, getOverviewConfigFromFlags(cmd), presenter.New(), os.Stdout)
	},
}

func init() {
	defaults := NewOverviewConfig()
	overviewCmd.Flags().Bool("json", defaults.JSON, "Print the overview as JSON")
	overviewCmd.Flags().Int("recent", defaults.Recent, "Number of recently modified skills to show")
}

func getOverviewConfigFromFlags(cmd *cobra.Command) *OverviewConfig {
	config := NewOverviewConfig()
	if asJSON, err := cmd.Flags().GetBool("json"); err == nil {
		config.JSON = asJSON
	}
	if recent, err := cmd.Flags().GetInt("recent"); err == nil {
		config.Recent = recent
	}
	return config
}

func runOverview(_ context.Context, catalog *skills.Catalog, config *OverviewConfig, p presenter.Presenter, w io.Writer) error {
	g := graph.Build(catalog.CrossRefs, catalog.Skills)
	summary := overview.Summarize(g, catalog.Skills, config.Recent)

	if config.JSON {
		out, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to encode overview")
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	}

	p.Section("Skill Overview")
	p.Stats(&presenter.GraphStats{
		Skills:   summary.SkillCount,
		Edges:    summary.EdgeCount,
		Clusters: len(g.Clusters),
		Roots:    len(g.Roots),
		Leaves:   len(g.Leaves),
		Bridges:  len(g.Bridges),
		Missing:  len(catalog.MissingTargets()),
	})
	p.Separator()

	p.Section("Clusters")
	clusters := make([]string, 0, len(summary.Clusters))
	for _, c := range summary.Clusters {
		clusters = append(clusters, fmt.Sprintf("%s: %s", c.Name, strings.Join(c.Members, ", ")))
	}
	p.Bullets(clusters)

	p.Section("Pipelines")
	pipelines := make([]string, 0, len(summary.Pipelines))
	for _, pl := range summary.Pipelines {
		line := fmt.Sprintf("%s: %d stages, %d skills", pl.Name, pl.StageCount, pl.SkillCount)
		if pl.HasGaps {
			line += " (order gaps)"
		}
		pipelines = append(pipelines, line)
	}
	p.Bullets(pipelines)

	p.Section("Unconnected")
	p.Bullets(summary.Unconnected)

	p.Section("Recently Modified")
	recent := make([]string, 0, len(summary.Recent))
	for _, r := range summary.Recent {
		recent = append(recent, fmt.Sprintf("%s (%s)", r.Name, r.ModTime.Format("2006-01-02 15:04")))
	}
	p.Bullets(recent)
	return nil
}
