package skills

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"

	"github.com/skillgraph/skillgraph/pkg/logger"
)

const skillFileName = "SKILL.md"

// Discovery handles skill discovery from configured directories
type Discovery struct {
	skillDirs []string
	exclude   []string
}

// Option is a function that configures a Discovery
type Option func(*Discovery) error

// WithSkillDirs sets custom skill directories
func WithSkillDirs(dirs ...string) Option {
	return func(d *Discovery) error {
		d.skillDirs = dirs
		return nil
	}
}

// WithExcludePatterns skips skill directories whose name or path matches
// any of the given doublestar patterns
func WithExcludePatterns(patterns ...string) Option {
	return func(d *Discovery) error {
		for _, p := range patterns {
			if !doublestar.ValidatePattern(p) {
				return errors.Errorf("invalid exclude pattern %q", p)
			}
		}
		d.exclude = patterns
		return nil
	}
}

// WithDefaultDirs initializes with default skill directories
func WithDefaultDirs() Option {
	return func(d *Discovery) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return errors.Wrap(err, "failed to get user home directory")
		}
		d.skillDirs = []string{
			"./skills", // Repo-local (highest precedence)
			filepath.Join(homeDir, ".skillgraph", "skills"), // User-global
		}
		return nil
	}
}

// NewDiscovery creates a new skill discovery instance
func NewDiscovery(opts ...Option) (*Discovery, error) {
	d := &Discovery{}

	if len(opts) == 0 {
		if err := WithDefaultDirs()(d); err != nil {
			return nil, err
		}
	} else {
		for _, opt := range opts {
			if err := opt(d); err != nil {
				return nil, err
			}
		}
	}

	return d, nil
}

// SkillDirs returns the directories scanned by this discovery
func (d *Discovery) SkillDirs() []string {
	return append([]string(nil), d.skillDirs...)
}

// DiscoverSkills finds all available skills from configured directories.
// Skills are returned sorted by name. When two directories provide the same
// name the earlier directory wins. Skills that fail to load are skipped and
// reported through the returned error, which is non-nil only in that case;
// the returned slice is still usable.
func (d *Discovery) DiscoverSkills(ctx context.Context) ([]Skill, error) {
	found := make(map[string]Skill)
	var result *multierror.Error

	for _, dir := range d.skillDirs {
		if err := d.discoverSkillsFromDir(ctx, dir, found); err != nil {
			result = multierror.Append(result, err)
		}
	}

	list := make([]Skill, 0, len(found))
	for _, s := range found {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })

	logger.G(ctx).WithField("count", len(list)).Debug("discovered skills")
	return list, result.ErrorOrNil()
}

// discoverSkillsFromDir discovers skills in the direct subdirectories of dir
func (d *Discovery) discoverSkillsFromDir(ctx context.Context, dir string, found map[string]Skill) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.G(ctx).WithField("dir", dir).Debug("skipping unreadable skill directory")
		return nil
	}

	var result *multierror.Error
	for _, entry := range entries {
		entryPath := filepath.Join(dir, entry.Name())

		info, err := os.Stat(entryPath)
		if err != nil || !info.IsDir() {
			continue
		}
		if d.excluded(entry.Name(), entryPath) {
			logger.G(ctx).WithField("dir", entryPath).Debug("skill directory excluded")
			continue
		}

		skillPath := filepath.Join(entryPath, skillFileName)
		if _, err := os.Stat(skillPath); err != nil {
			continue
		}

		skill, err := loadSkill(skillPath)
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "failed to load %s", skillPath))
			continue
		}

		if _, exists := found[skill.Name]; !exists {
			skill.Directory = entryPath
			found[skill.Name] = *skill
		}
	}
	return result.ErrorOrNil()
}

func (d *Discovery) excluded(name, path string) bool {
	slashed := filepath.ToSlash(path)
	for _, pattern := range d.exclude {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
	}
	return false
}

// LoadSkill loads a single skill from its SKILL.md file
func LoadSkill(path string) (*Skill, error) {
	return loadSkill(path)
}

func loadSkill(path string) (*Skill, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read skill file")
	}

	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)

	var buf bytes.Buffer
	pctx := parser.NewContext()

	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return nil, errors.Wrap(err, "failed to parse markdown")
	}

	metaData, err := meta.TryGet(pctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse frontmatter")
	}
	if metaData == nil {
		return nil, errors.New("missing frontmatter")
	}

	var fm Frontmatter
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &fm,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create frontmatter decoder")
	}
	if err := decoder.Decode(metaData); err != nil {
		return nil, errors.Wrap(err, "failed to decode frontmatter")
	}

	if fm.Name == "" {
		return nil, errors.New("skill name is required in frontmatter")
	}
	if fm.Description == "" {
		return nil, errors.New("skill description is required in frontmatter")
	}

	skill := &Skill{
		Name:        fm.Name,
		Description: fm.Description,
		Directory:   filepath.Dir(path),
		SkillFile:   path,
		Content:     extractBodyContent(string(content)),
		Frontmatter: fm,
	}
	if info, err := os.Stat(path); err == nil {
		skill.ModTime = info.ModTime()
	}
	return skill, nil
}

// extractBodyContent removes YAML frontmatter and returns the body
func extractBodyContent(content string) string {
	if !strings.HasPrefix(content, "---") {
		return content
	}

	lines := strings.Split(content, "\n")
	frontmatterEnd := -1

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			frontmatterEnd = i
			break
		}
	}

	if frontmatterEnd == -1 {
		return content
	}

	return strings.TrimLeft(strings.Join(lines[frontmatterEnd+1:], "\n"), "\n")
}
