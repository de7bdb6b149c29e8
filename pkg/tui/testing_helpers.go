package tui

import (
	"context"

	"github.com/skillgraph/skillgraph/pkg/skills"
)

// MockLoader is a Loader returning a fixed skill list for testing
type MockLoader struct {
	skills []skills.Skill
	err    error
	calls  int
}

// NewMockLoader creates a loader over the given skills
func NewMockLoader(list ...skills.Skill) *MockLoader {
	return &MockLoader{skills: list}
}

// Load builds a catalog from the configured skills
func (m *MockLoader) Load(context.Context) (*skills.Catalog, error) {
	m.calls++
	if m.skills == nil && m.err != nil {
		return nil, m.err
	}
	return skills.NewCatalog(m.skills), m.err
}

// SetSkills replaces the skills returned by later loads
func (m *MockLoader) SetSkills(list ...skills.Skill) {
	m.skills = list
}

// SetError sets an error to be returned by Load
func (m *MockLoader) SetError(err error) {
	m.err = err
}

// Calls returns how many times Load ran
func (m *MockLoader) Calls() int {
	return m.calls
}

// mockSkill creates a skill whose body references each of refs
func mockSkill(name string, refs ...string) skills.Skill {
	body := ""
	for _, ref := range refs {
		body += "<see ref=\"" + ref + "\">" + ref + "</see>\n"
	}
	return skills.Skill{
		Name:        name,
		Description: name + " skill",
		Content:     body,
		Frontmatter: skills.Frontmatter{Name: name, Description: name + " skill"},
	}
}
