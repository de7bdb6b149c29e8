// Package skills discovers skill directories on disk and extracts the
// relations between them. Each skill is a directory containing a SKILL.md
// file with YAML frontmatter (name, description, tags, pipeline stages)
// followed by a markdown body that may reference other skills.
package skills

import (
	"sort"
	"time"
)

// Skill represents a discovered skill with its metadata
type Skill struct {
	Name        string      // Unique name from frontmatter
	Description string      // Brief description from frontmatter
	Directory   string      // Full path to the skill directory
	SkillFile   string      // Full path to SKILL.md
	Content     string      // Body of SKILL.md (frontmatter removed)
	Frontmatter Frontmatter // Parsed frontmatter
	ModTime     time.Time   // Modification time of SKILL.md
}

// Frontmatter represents the YAML frontmatter in SKILL.md files
type Frontmatter struct {
	Name        string                   `mapstructure:"name"`
	Description string                   `mapstructure:"description"`
	License     string                   `mapstructure:"license"`
	Tags        []string                 `mapstructure:"tags"`
	Pipeline    map[string]PipelineStage `mapstructure:"pipeline"`
}

// PipelineStage declares where a skill sits in a named pipeline.
// After lists skills this skill depends on; Before lists skills that
// depend on this skill.
type PipelineStage struct {
	Stage  string   `mapstructure:"stage"`
	Order  uint     `mapstructure:"order"`
	After  []string `mapstructure:"after"`
	Before []string `mapstructure:"before"`
}

// HasTag reports whether the skill carries the given tag
func (s Skill) HasTag(tag string) bool {
	for _, t := range s.Frontmatter.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// InPipeline reports whether the skill declares a stage in the named pipeline
func (s Skill) InPipeline(name string) bool {
	_, ok := s.Frontmatter.Pipeline[name]
	return ok
}

// PipelineNamesSorted returns the skill's pipeline names in lexical order
func (s Skill) PipelineNamesSorted() []string {
	names := make([]string, 0, len(s.Frontmatter.Pipeline))
	for name := range s.Frontmatter.Pipeline {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PipelineNames returns every pipeline name declared by any skill, sorted and deduplicated
func PipelineNames(list []Skill) []string {
	seen := make(map[string]struct{})
	for _, s := range list {
		for name := range s.Frontmatter.Pipeline {
			seen[name] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// TagNames returns every tag carried by any skill, sorted and deduplicated
func TagNames(list []Skill) []string {
	seen := make(map[string]struct{})
	for _, s := range list {
		for _, tag := range s.Frontmatter.Tags {
			seen[tag] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
