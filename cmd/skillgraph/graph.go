package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/attribute"

	"github.com/skillgraph/skillgraph/pkg/graph"
	"github.com/skillgraph/skillgraph/pkg/skills"
	"github.com/skillgraph/skillgraph/pkg/telemetry"
)

// GraphConfig holds the options of the graph command
type GraphConfig struct {
	Format   string
	Pipeline string
	Tag      string
}

// NewGraphConfig creates a GraphConfig with default values
func NewGraphConfig() *GraphConfig {
	return &GraphConfig{
		Format: string(graph.FormatText),
	}
}

// Validate checks the format and that at most one filter is set
func (c *GraphConfig) Validate() error {
	if c.Pipeline != "" && c.Tag != "" {
		return errors.New("--pipeline and --tag cannot be used together")
	}
	if _, err := graph.ParseFormat(c.Format); err != nil {
		return err
	}
	return nil
}

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the skill dependency graph",
	Long: `Build the dependency graph of all discovered skills and print it.

Examples:
  skillgraph graph
  skillgraph graph --format dot | dot -Tsvg > skills.svg
  skillgraph graph --format mermaid --pipeline release
  skillgraph graph --format json --tag testing`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		_, catalog, err := loadCatalog(ctx)
		if err != nil {
			return err
		}
		return runGraph(ctx, catalog, getGraphConfigFromFlags(cmd), os.Stdout)
	},
}

func init() {
	defaults := NewGraphConfig()
	graphCmd.Flags().StringP("format", "f", defaults.Format, "Output format (dot, text, json, mermaid)")
	graphCmd.Flags().StringP("pipeline", "p", defaults.Pipeline, "Only include skills in the named pipeline")
	graphCmd.Flags().StringP("tag", "t", defaults.Tag, "Only include skills carrying the tag")
	viper.BindPFlag("graph.format", graphCmd.Flags().Lookup("format"))
}

func getGraphConfigFromFlags(cmd *cobra.Command) *GraphConfig {
	config := NewGraphConfig()
	if format := viper.GetString("graph.format"); format != "" {
		config.Format = format
	}
	if pipeline, err := cmd.Flags().GetString("pipeline"); err == nil {
		config.Pipeline = pipeline
	}
	if tag, err := cmd.Flags().GetString("tag"); err == nil {
		config.Tag = tag
	}
	return config
}

// runGraph builds, filters and exports the graph of catalog to w
func runGraph(ctx context.Context, catalog *skills.Catalog, config *GraphConfig, w io.Writer) error {
	if err := config.Validate(); err != nil {
		return err
	}
	format, _ := graph.ParseFormat(config.Format)

	var out string
	err := telemetry.WithSpan(ctx, "graph.export", func(ctx context.Context) error {
		g, err := selectGraph(catalog, config)
		if err != nil {
			return err
		}
		telemetry.SetAttributes(ctx,
			attribute.Int("graph.nodes", g.NodeCount()),
			attribute.Int("graph.edges", g.EdgeCount()),
		)

		out, err = g.Export(format)
		return err
	}, attribute.String("graph.format", string(format)))
	if err != nil {
		return err
	}

	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err = fmt.Fprint(w, out)
	return err
}

func selectGraph(catalog *skills.Catalog, config *GraphConfig) (*graph.Graph, error) {
	g := graph.Build(catalog.CrossRefs, catalog.Skills)
	switch {
	case config.Pipeline != "":
		return g.FilterPipeline(catalog.Skills, config.Pipeline)
	case config.Tag != "":
		return g.FilterTag(catalog.Skills, config.Tag)
	default:
		return g, nil
	}
}
