package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillgraph/skillgraph/pkg/skills"
)

func selected(t *testing.T, n *Navigator) int {
	t.Helper()
	i, ok := n.Selected()
	require.True(t, ok)
	return i
}

func TestNavigatorStartsInBrowse(t *testing.T) {
	n := NewNavigator(chain())

	assert.Equal(t, ModeBrowse, n.Mode())
	assert.Equal(t, 0, selected(t, n))
	assert.Empty(t, n.Trail())
	assert.Nil(t, n.EdgeList())

	name, ok := n.FocusedSkill()
	require.True(t, ok)
	assert.Equal(t, "a", name)
}

func TestNavigatorEmptyGraph(t *testing.T) {
	for _, g := range []*Graph{nil, Build(nil, nil)} {
		n := NewNavigator(g)

		_, ok := n.Selected()
		assert.False(t, ok)

		n.Next()
		n.Previous()
		n.ToggleMode()
		n.FollowEdge()
		n.NavigateBack()

		assert.Equal(t, ModeBrowse, n.Mode())
		_, ok = n.FocusedSkill()
		assert.False(t, ok)
	}
}

func TestNavigatorWraparound(t *testing.T) {
	n := NewNavigator(chain())

	n.Next()
	n.Next()
	assert.Equal(t, 2, selected(t, n))
	n.Next()
	assert.Equal(t, 0, selected(t, n))

	n.Previous()
	assert.Equal(t, 2, selected(t, n))
}

func TestNavigatorTrail(t *testing.T) {
	n := NewNavigator(chain())

	n.ToggleMode()
	assert.Equal(t, ModeFocus, n.Mode())
	assert.Equal(t, []string{"a"}, n.Trail())

	n.FollowEdge()
	assert.Equal(t, []string{"a", "b"}, n.Trail())

	n.NavigateBack()
	assert.Equal(t, ModeFocus, n.Mode())
	assert.Equal(t, []string{"a"}, n.Trail())

	n.NavigateBack()
	assert.Equal(t, ModeBrowse, n.Mode())
	assert.Empty(t, n.Trail())

	// no-op in browse mode
	n.NavigateBack()
	assert.Equal(t, ModeBrowse, n.Mode())
}

func TestNavigatorToggleKeepsTrail(t *testing.T) {
	n := NewNavigator(chain())

	n.ToggleMode()
	n.FollowEdge()
	n.ToggleMode()
	assert.Equal(t, ModeBrowse, n.Mode())
	assert.Equal(t, []string{"a", "b"}, n.Trail())

	name, ok := n.FocusedSkill()
	require.True(t, ok)
	assert.Equal(t, "a", name)

	n.Next()
	n.ToggleMode()
	assert.Equal(t, []string{"a", "b", "b"}, n.Trail())
}

func TestNavigatorEdgeList(t *testing.T) {
	n := NewNavigator(chain())
	n.Select(1)
	n.ToggleMode()

	assert.Equal(t, []NavEdge{
		{Name: "c", Kind: EdgeCrossRef, Direction: Outgoing},
		{Name: "a", Kind: EdgeCrossRef, Direction: Incoming},
	}, n.EdgeList())

	n.Next()
	assert.Equal(t, 1, n.EdgeCursor())
	n.Next()
	assert.Equal(t, 0, n.EdgeCursor())
	n.Previous()
	assert.Equal(t, 1, n.EdgeCursor())

	n.FollowEdge()
	assert.Equal(t, []string{"b", "a"}, n.Trail())
	assert.Equal(t, 0, n.EdgeCursor())

	name, ok := n.FocusedSkill()
	require.True(t, ok)
	assert.Equal(t, "a", name)
}

func TestNavigatorFollowEdgeOnLeaf(t *testing.T) {
	g := FromCrossRefs(map[string][]skills.CrossRef{"a": refs("b")})
	n := NewNavigator(g)

	// browse mode ignores FollowEdge
	n.FollowEdge()
	assert.Empty(t, n.Trail())

	n.Select(1)
	n.ToggleMode()
	n.FollowEdge()
	assert.Equal(t, []string{"b", "a"}, n.Trail())

	isolated := NewNavigator(Build(nil, []skills.Skill{skill("solo")}))
	isolated.ToggleMode()
	isolated.FollowEdge()
	isolated.Next()
	assert.Equal(t, []string{"solo"}, isolated.Trail())
	assert.Equal(t, 0, isolated.EdgeCursor())
}

func TestNavigatorRefresh(t *testing.T) {
	n := NewNavigator(chain())
	n.Next()
	n.ToggleMode()
	n.FollowEdge()

	n.Refresh(map[string][]skills.CrossRef{"x": refs("y")}, nil)

	assert.Equal(t, ModeBrowse, n.Mode())
	assert.Empty(t, n.Trail())
	assert.Equal(t, 0, selected(t, n))
	assert.Equal(t, []string{"x", "y"}, n.Graph().NodeNames())
}

func TestNavigatorSelectOutOfRange(t *testing.T) {
	n := NewNavigator(chain())
	n.Select(7)
	assert.Equal(t, 0, selected(t, n))
	n.Select(-1)
	assert.Equal(t, 0, selected(t, n))
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "browse", ModeBrowse.String())
	assert.Equal(t, "focus", ModeFocus.String())
}
