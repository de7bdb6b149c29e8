package skills

import "sort"

// Catalog bundles a discovered skill set with the cross-references found in
// the skill bodies. CrossRefs only holds references to known skills;
// Dangling holds the references whose target is not a known skill.
type Catalog struct {
	Skills    []Skill
	CrossRefs map[string][]CrossRef
	Dangling  map[string][]CrossRef

	byName map[string]int
}

// NewCatalog extracts cross-references from every skill body
func NewCatalog(list []Skill) *Catalog {
	c := &Catalog{
		Skills:    list,
		CrossRefs: make(map[string][]CrossRef),
		Dangling:  make(map[string][]CrossRef),
		byName:    make(map[string]int, len(list)),
	}

	known := make(map[string]bool, len(list))
	for i, s := range list {
		known[s.Name] = true
		c.byName[s.Name] = i
	}

	for _, s := range list {
		for _, ref := range ExtractReferences(s.Content, s.Name) {
			if known[ref.Target] {
				c.CrossRefs[s.Name] = append(c.CrossRefs[s.Name], ref)
			} else {
				c.Dangling[s.Name] = append(c.Dangling[s.Name], ref)
			}
		}
	}
	return c
}

// Lookup returns the skill with the given name
func (c *Catalog) Lookup(name string) (Skill, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Skill{}, false
	}
	return c.Skills[i], true
}

// Names returns all skill names in catalog order
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Skills))
	for _, s := range c.Skills {
		names = append(names, s.Name)
	}
	return names
}

// Outgoing returns the distinct targets referenced by name, in first-seen order
func (c *Catalog) Outgoing(name string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, ref := range c.CrossRefs[name] {
		if !seen[ref.Target] {
			seen[ref.Target] = true
			out = append(out, ref.Target)
		}
	}
	return out
}

// Incoming returns the skills referencing name, sorted
func (c *Catalog) Incoming(name string) []string {
	var in []string
	for source, refs := range c.CrossRefs {
		for _, ref := range refs {
			if ref.Target == name {
				in = append(in, source)
				break
			}
		}
	}
	sort.Strings(in)
	return in
}

// MissingTargets returns the sorted, deduplicated names referenced by some
// skill but not present in the catalog
func (c *Catalog) MissingTargets() []string {
	seen := make(map[string]struct{})
	for _, refs := range c.Dangling {
		for _, ref := range refs {
			seen[ref.Target] = struct{}{}
		}
	}
	return sortedKeys(seen)
}
