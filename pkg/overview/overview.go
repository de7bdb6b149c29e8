// Package overview summarizes a skill collection for the overview dashboard:
// circular dependency clusters, pipeline health, isolated skills and recent
// activity.
package overview

import (
	"fmt"
	"sort"
	"time"

	"github.com/skillgraph/skillgraph/pkg/graph"
	"github.com/skillgraph/skillgraph/pkg/skills"
)

// DefaultRecentLimit is the number of recently modified skills reported
const DefaultRecentLimit = 10

// Cluster is a named strongly connected component
type Cluster struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// PipelineInfo summarizes one pipeline across every skill that declares it
type PipelineInfo struct {
	Name       string `json:"name"`
	StageCount int    `json:"stageCount"`
	SkillCount int    `json:"skillCount"`
	// HasGaps is set when two consecutive stage orders differ by more than one
	HasGaps bool `json:"hasGaps"`
}

// RecentSkill is a skill with its last modification time
type RecentSkill struct {
	Name    string    `json:"name"`
	ModTime time.Time `json:"modTime"`
}

// Overview is the dashboard data for a skill collection
type Overview struct {
	SkillCount  int            `json:"skillCount"`
	EdgeCount   int            `json:"edgeCount"`
	Clusters    []Cluster      `json:"clusters"`
	Pipelines   []PipelineInfo `json:"pipelines"`
	Unconnected []string       `json:"unconnected"`
	Recent      []RecentSkill  `json:"recent"`
}

// Summarize computes the overview of skillList using the already built graph g.
// At most recentLimit recent skills are reported; a non-positive limit uses
// DefaultRecentLimit.
func Summarize(g *graph.Graph, skillList []skills.Skill, recentLimit int) *Overview {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}
	return &Overview{
		SkillCount:  len(skillList),
		EdgeCount:   g.EdgeCount(),
		Clusters:    NamedClusters(g),
		Pipelines:   Pipelines(skillList),
		Unconnected: Unconnected(g, skillList),
		Recent:      Recent(skillList, recentLimit),
	}
}

// NamedClusters labels the graph's clusters cluster-1, cluster-2, ...
func NamedClusters(g *graph.Graph) []Cluster {
	clusters := make([]Cluster, 0, len(g.Clusters))
	for i, members := range g.Clusters {
		clusters = append(clusters, Cluster{
			Name:    fmt.Sprintf("cluster-%d", i+1),
			Members: members,
		})
	}
	return clusters
}

type stageKey struct {
	order uint
	stage string
}

// Pipelines returns one summary per pipeline name, sorted by name. Stages are
// distinct (order, stage) pairs.
func Pipelines(skillList []skills.Skill) []PipelineInfo {
	members := make(map[string]map[string]struct{})
	stages := make(map[string]map[stageKey]struct{})

	for _, s := range skillList {
		for name, stage := range s.Frontmatter.Pipeline {
			if members[name] == nil {
				members[name] = make(map[string]struct{})
				stages[name] = make(map[stageKey]struct{})
			}
			members[name][s.Name] = struct{}{}
			stages[name][stageKey{order: stage.Order, stage: stage.Stage}] = struct{}{}
		}
	}

	pipelines := make([]PipelineInfo, 0, len(members))
	for name, skillSet := range members {
		orders := make([]uint, 0, len(stages[name]))
		for key := range stages[name] {
			orders = append(orders, key.order)
		}
		sort.Slice(orders, func(i, j int) bool { return orders[i] < orders[j] })

		hasGaps := false
		for i := 1; i < len(orders); i++ {
			if orders[i]-orders[i-1] > 1 {
				hasGaps = true
				break
			}
		}

		pipelines = append(pipelines, PipelineInfo{
			Name:       name,
			StageCount: len(stages[name]),
			SkillCount: len(skillSet),
			HasGaps:    hasGaps,
		})
	}

	sort.Slice(pipelines, func(i, j int) bool {
		return pipelines[i].Name < pipelines[j].Name
	})
	return pipelines
}

// Unconnected returns the skills with neither incoming nor outgoing edges, sorted
func Unconnected(g *graph.Graph, skillList []skills.Skill) []string {
	unconnected := []string{}
	for _, s := range skillList {
		if g.InDegree(s.Name) == 0 && g.OutDegree(s.Name) == 0 {
			unconnected = append(unconnected, s.Name)
		}
	}
	sort.Strings(unconnected)
	return unconnected
}

// Recent returns up to limit skills ordered by modification time, newest
// first. Skills without a modification time are skipped.
func Recent(skillList []skills.Skill, limit int) []RecentSkill {
	recent := []RecentSkill{}
	for _, s := range skillList {
		if s.ModTime.IsZero() {
			continue
		}
		recent = append(recent, RecentSkill{Name: s.Name, ModTime: s.ModTime})
	}

	sort.SliceStable(recent, func(i, j int) bool {
		if recent[i].ModTime.Equal(recent[j].ModTime) {
			return recent[i].Name < recent[j].Name
		}
		return recent[i].ModTime.After(recent[j].ModTime)
	})

	if limit >= 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}
