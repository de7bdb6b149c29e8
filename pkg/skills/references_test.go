package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const referencingBody = `# Deploy

Run the build first, see [build](../build/SKILL.md).

<crossrefs>
  <see ref="lint">Lint before shipping</see>
  <see ref="deploy">Self reference</see>
  <see ref="ghost">Missing skill</see>
</crossrefs>

Also [notify](skill:notify) and [docs](https://example.com/SKILL.md).
`

func TestExtractReferences(t *testing.T) {
	refs := ExtractReferences(referencingBody, "deploy")

	targets := make([]string, 0, len(refs))
	for _, r := range refs {
		targets = append(targets, r.Target)
	}
	assert.Equal(t, []string{"build", "lint", "ghost", "notify"}, targets)

	require.Len(t, refs, 4)
	assert.Equal(t, 3, refs[0].Line)
	assert.Equal(t, MethodMarkdownLink, refs[0].Method)
	assert.Equal(t, 6, refs[1].Line)
	assert.Equal(t, MethodXMLCrossref, refs[1].Method)
	assert.Equal(t, 11, refs[3].Line)
}

func TestExtractReferencesWithFilter(t *testing.T) {
	known := map[string]bool{"build": true, "lint": true, "deploy": true}
	refs := ExtractReferencesWithFilter(referencingBody, "deploy", known)

	require.Len(t, refs, 2)
	assert.Equal(t, "build", refs[0].Target)
	assert.Equal(t, "lint", refs[1].Target)
}

func TestExtractReferencesKeepsDuplicates(t *testing.T) {
	body := "<see ref=\"b\">one</see>\n<see ref=\"b\">two</see>\n"
	refs := ExtractReferences(body, "a")
	assert.Len(t, refs, 2)
}

func TestLinkTarget(t *testing.T) {
	tests := []struct {
		dest string
		want string
	}{
		{"../build/SKILL.md", "build"},
		{"./build/SKILL.md", "build"},
		{"build/SKILL.md", "build"},
		{"skill:notify", "notify"},
		{"../nested/dir/SKILL.md", ""},
		{"https://example.com", ""},
		{"README.md", ""},
	}

	for _, tt := range tests {
		t.Run(tt.dest, func(t *testing.T) {
			assert.Equal(t, tt.want, linkTarget(tt.dest))
		})
	}
}

func TestDetectionMethodString(t *testing.T) {
	assert.Equal(t, "xml-crossref", MethodXMLCrossref.String())
	assert.Equal(t, "markdown-link", MethodMarkdownLink.String())
	assert.Equal(t, "unknown", DetectionMethod(42).String())
}
