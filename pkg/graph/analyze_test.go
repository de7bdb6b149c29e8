package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skillgraph/skillgraph/pkg/skills"
)

func TestClusters(t *testing.T) {
	tests := []struct {
		name      string
		crossrefs map[string][]skills.CrossRef
		expected  [][]string
	}{
		{
			name:      "mutual references form one cluster",
			crossrefs: map[string][]skills.CrossRef{"a": refs("b"), "b": refs("a")},
			expected:  [][]string{{"a", "b"}},
		},
		{
			name:      "single edge forms no cluster",
			crossrefs: map[string][]skills.CrossRef{"a": refs("b")},
			expected:  [][]string{},
		},
		{
			name: "two cycles ordered by first member",
			crossrefs: map[string][]skills.CrossRef{
				"z": refs("y"),
				"y": refs("z"),
				"c": refs("b"),
				"b": refs("a"),
				"a": refs("c"),
			},
			expected: [][]string{{"a", "b", "c"}, {"y", "z"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := FromCrossRefs(tt.crossrefs)
			assert.Equal(t, tt.expected, g.Clusters)
		})
	}
}

func TestClusterOf(t *testing.T) {
	g := FromCrossRefs(map[string][]skills.CrossRef{
		"a": refs("b"),
		"b": refs("a", "c"),
	})

	assert.Equal(t, []string{"a", "b"}, g.ClusterOf("a"))
	assert.Nil(t, g.ClusterOf("c"))
}

func TestRoles(t *testing.T) {
	g := FromCrossRefs(map[string][]skills.CrossRef{
		"a": refs("b"),
	})

	assert.Equal(t, []string{"a"}, g.Roots)
	assert.Equal(t, []string{"b"}, g.Leaves)
	assert.Empty(t, g.Bridges)

	assert.Equal(t, RoleRoot, g.RoleOf("a"))
	assert.Equal(t, RoleLeaf, g.RoleOf("b"))
	assert.Equal(t, "root", g.RoleOf("a").String())
}

func TestBridgeIsPassThroughHeuristic(t *testing.T) {
	// b sits on a cycle, so it is not an articulation point, but it still
	// has both incoming and outgoing edges
	g := FromCrossRefs(map[string][]skills.CrossRef{
		"a": refs("b"),
		"b": refs("c"),
		"c": refs("a"),
	})

	assert.Equal(t, []string{"a", "b", "c"}, g.Bridges)
	assert.Empty(t, g.Roots)
	assert.Empty(t, g.Leaves)
	assert.Equal(t, RoleBridge, g.RoleOf("b"))
}

func TestDegrees(t *testing.T) {
	g := chain()
	assert.Equal(t, 1, g.OutDegree("a"))
	assert.Equal(t, 0, g.InDegree("a"))
	assert.Equal(t, 1, g.InDegree("c"))
	assert.Equal(t, 0, g.OutDegree("missing"))

	_, ok := g.EdgesTo("missing")
	assert.False(t, ok)
}
