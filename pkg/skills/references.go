package skills

import (
	"bytes"
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// DetectionMethod records how a cross-reference was found in a skill body
type DetectionMethod int

const (
	// MethodXMLCrossref is a <see ref="name"> element inside a <crossrefs> block
	MethodXMLCrossref DetectionMethod = iota
	// MethodMarkdownLink is a markdown link to ../name/SKILL.md or skill:name
	MethodMarkdownLink
)

// String returns the string representation of the detection method
func (m DetectionMethod) String() string {
	switch m {
	case MethodXMLCrossref:
		return "xml-crossref"
	case MethodMarkdownLink:
		return "markdown-link"
	default:
		return "unknown"
	}
}

// CrossRef is a directed reference from one skill's body to another skill
type CrossRef struct {
	Target string
	Line   int
	Method DetectionMethod
}

var seeRefPattern = regexp.MustCompile(`<see\s+ref="([^"]+)"`)

// ExtractReferences finds every reference to another skill in content.
// References to self are skipped. Results are ordered by line.
func ExtractReferences(content, self string) []CrossRef {
	return ExtractReferencesWithFilter(content, self, nil)
}

// ExtractReferencesWithFilter is like ExtractReferences but drops targets
// that are not in known. A nil known set keeps every target.
func ExtractReferencesWithFilter(content, self string, known map[string]bool) []CrossRef {
	var refs []CrossRef
	keep := func(target string) bool {
		if target == "" || target == self {
			return false
		}
		return known == nil || known[target]
	}

	for i, line := range strings.Split(content, "\n") {
		for _, m := range seeRefPattern.FindAllStringSubmatch(line, -1) {
			target := strings.TrimSpace(m[1])
			if keep(target) {
				refs = append(refs, CrossRef{Target: target, Line: i + 1, Method: MethodXMLCrossref})
			}
		}
	}

	for _, ref := range extractLinkReferences([]byte(content)) {
		if keep(ref.Target) {
			refs = append(refs, ref)
		}
	}

	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].Line < refs[j].Line
	})
	return refs
}

func extractLinkReferences(source []byte) []CrossRef {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var refs []CrossRef
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		target := linkTarget(string(link.Destination))
		if target == "" {
			return ast.WalkContinue, nil
		}
		refs = append(refs, CrossRef{
			Target: target,
			Line:   lineOf(source, firstTextOffset(link)),
			Method: MethodMarkdownLink,
		})
		return ast.WalkSkipChildren, nil
	})
	return refs
}

// linkTarget maps a link destination to a skill name:
// skill:name, ../name/SKILL.md and name/SKILL.md are recognised.
func linkTarget(dest string) string {
	if name, ok := strings.CutPrefix(dest, "skill:"); ok {
		return strings.TrimSpace(name)
	}
	dir, ok := strings.CutSuffix(dest, "/"+skillFileName)
	if !ok {
		return ""
	}
	dir = strings.TrimPrefix(dir, "../")
	dir = strings.TrimPrefix(dir, "./")
	if dir == "" || strings.Contains(dir, "/") {
		return ""
	}
	return dir
}

func firstTextOffset(n ast.Node) int {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			return t.Segment.Start
		}
		if off := firstTextOffset(c); off >= 0 {
			return off
		}
	}
	return -1
}

func lineOf(source []byte, offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(source) {
		offset = len(source)
	}
	return bytes.Count(source[:offset], []byte("\n")) + 1
}
