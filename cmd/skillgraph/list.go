package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/skillgraph/skillgraph/pkg/graph"
	"github.com/skillgraph/skillgraph/pkg/logger"
	"github.com/skillgraph/skillgraph/pkg/skills"
)

// ListConfig holds the options of the list command
type ListConfig struct {
	Groups  bool
	Refs    string
	Missing bool
}

// NewListConfig creates a ListConfig with default values
func NewListConfig() *ListConfig {
	return &ListConfig{}
}

// Validate ensures at most one listing mode is selected
func (c *ListConfig) Validate() error {
	modes := 0
	if c.Groups {
		modes++
	}
	if c.Refs != "" {
		modes++
	}
	if c.Missing {
		modes++
	}
	if modes > 1 {
		return errors.New("only one of --groups, --refs and --missing can be used")
	}
	return nil
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered skills",
	Long: `List discovered skills with their directories and descriptions.

Examples:
  skillgraph list
  skillgraph list --groups
  skillgraph list --refs deploy
  skillgraph list --missing`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		_, catalog, err := loadCatalog(ctx)
		if err != nil {
			return err
		}
		return runList(ctx, catalog, getListConfigFromFlags(cmd), os.Stdout)
	},
}

func init() {
	defaults := NewListConfig()
	listCmd.Flags().Bool("groups", defaults.Groups, "Group skills by reference cluster")
	listCmd.Flags().String("refs", defaults.Refs, "Show outgoing and incoming references of a skill")
	listCmd.Flags().Bool("missing", defaults.Missing, "Show referenced skills that do not exist")
}

func getListConfigFromFlags(cmd *cobra.Command) *ListConfig {
	config := NewListConfig()
	if groups, err := cmd.Flags().GetBool("groups"); err == nil {
		config.Groups = groups
	}
	if refs, err := cmd.Flags().GetString("refs"); err == nil {
		config.Refs = refs
	}
	if missing, err := cmd.Flags().GetBool("missing"); err == nil {
		config.Missing = missing
	}
	return config
}

func runList(ctx context.Context, catalog *skills.Catalog, config *ListConfig, w io.Writer) error {
	if err := config.Validate(); err != nil {
		return err
	}

	switch {
	case config.Groups:
		listGroups(catalog, w)
	case config.Refs != "":
		return listRefs(catalog, config.Refs, w)
	case config.Missing:
		listMissing(catalog, w)
	default:
		logger.G(ctx).WithField("count", len(catalog.Skills)).Debug("listing skills")
		return listTable(catalog, w)
	}
	return nil
}

func listTable(catalog *skills.Catalog, w io.Writer) error {
	if len(catalog.Skills) == 0 {
		fmt.Fprintln(w, "No skills found")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDIRECTORY\tDESCRIPTION")
	fmt.Fprintln(tw, "----\t---------\t-----------")

	for _, skill := range catalog.Skills {
		description := skill.Description
		if len(description) > 60 {
			description = description[:57] + "..."
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", skill.Name, skill.Directory, description)
	}
	return tw.Flush()
}

func listGroups(catalog *skills.Catalog, w io.Writer) {
	heading := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.Faint)

	g := graph.Build(catalog.CrossRefs, catalog.Skills)
	names := catalog.Names()
	sort.Strings(names)
	fmt.Fprintln(w, heading.Sprint("--- Skills by cluster ---"))

	if len(g.Clusters) == 0 {
		fmt.Fprintln(w, dim.Sprint("No clusters detected (no circular references)"))
		fmt.Fprintln(w, "\nShowing all skills:")
		for _, name := range names {
			fmt.Fprintf(w, "  • %s\n", name)
		}
		return
	}

	clustered := make(map[string]bool)
	for i, cluster := range g.Clusters {
		fmt.Fprintf(w, "\n%s %s\n",
			color.New(color.FgYellow, color.Bold).Sprintf("Cluster %d:", i+1),
			dim.Sprintf("(%d skills)", len(cluster)))
		for _, name := range cluster {
			clustered[name] = true
			fmt.Fprintf(w, "  • %s\n", name)
		}
	}

	var unclustered []string
	for _, name := range names {
		if !clustered[name] {
			unclustered = append(unclustered, name)
		}
	}
	if len(unclustered) > 0 {
		fmt.Fprintf(w, "\n%s\n", dim.Sprint("Unclustered skills:"))
		for _, name := range unclustered {
			fmt.Fprintf(w, "  • %s\n", name)
		}
	}
}

func listRefs(catalog *skills.Catalog, name string, w io.Writer) error {
	if _, ok := catalog.Lookup(name); !ok {
		return errors.Errorf("skill '%s' not found in any source", name)
	}

	outgoing := catalog.Outgoing(name)
	incoming := catalog.Incoming(name)
	none := color.New(color.Faint).Sprint("(none)")

	heading := color.New(color.FgCyan, color.Bold)
	fmt.Fprintf(w, "%s %s\n", heading.Sprint("--- References for"), heading.Sprint(name))

	fmt.Fprintf(w, "\n%s (%d)\n", color.YellowString("Outgoing:"), len(outgoing))
	if len(outgoing) == 0 {
		fmt.Fprintf(w, "  %s\n", none)
	}
	for _, target := range outgoing {
		fmt.Fprintf(w, "  → %s\n", target)
	}

	fmt.Fprintf(w, "\n%s (%d)\n", color.GreenString("Incoming:"), len(incoming))
	if len(incoming) == 0 {
		fmt.Fprintf(w, "  %s\n", none)
	}
	for _, source := range incoming {
		fmt.Fprintf(w, "  ← %s\n", source)
	}
	return nil
}

func listMissing(catalog *skills.Catalog, w io.Writer) {
	missing := catalog.MissingTargets()
	fmt.Fprintln(w, color.New(color.FgCyan, color.Bold).Sprint("--- Missing skills (dangling references) ---"))

	if len(missing) == 0 {
		fmt.Fprintln(w, color.GreenString("No missing skills found."))
		return
	}

	fmt.Fprintf(w, "%s missing skills referenced:\n\n", color.New(color.FgRed, color.Bold).Sprint(len(missing)))
	for _, name := range missing {
		fmt.Fprintf(w, "  %s %s\n", color.RedString("✗"), color.RedString(name))
	}
}
