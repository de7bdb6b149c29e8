package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillgraph/skillgraph/pkg/overview"
	"github.com/skillgraph/skillgraph/pkg/presenter"
	"github.com/skillgraph/skillgraph/pkg/skills"
)

func overviewCatalog() *skills.Catalog {
	catalog := fixtureCatalog()
	list := append([]skills.Skill(nil), catalog.Skills...)
	for i := range list {
		if list[i].Name == "docs" {
			list[i].ModTime = time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
		}
	}
	return skills.NewCatalog(list)
}

func TestRunOverview(t *testing.T) {
	var out, errOut bytes.Buffer
	p := presenter.NewWithOptions(&out, &errOut, presenter.ColorNever)

	require.NoError(t, runOverview(context.Background(), overviewCatalog(), NewOverviewConfig(), p, &bytes.Buffer{}))

	text := out.String()
	assert.Contains(t, text, "[Graph] Skills: 5 | Edges: 3 | Clusters: 1 | Roots: 2 | Leaves: 3 | Bridges: 2")
	assert.Contains(t, text, "[Graph] Missing reference targets: 1")
	assert.Contains(t, text, "  • cluster-1: build, test\n")
	assert.Contains(t, text, "  • release: 3 stages, 3 skills (order gaps)\n")
	assert.Contains(t, text, "Unconnected\n-----------\n  • deploy\n  • docs\n")
	assert.Contains(t, text, "  • docs (2026-01-02 10:00)\n")
	assert.Empty(t, errOut.String())
}

func TestRunOverviewJSON(t *testing.T) {
	var out bytes.Buffer
	p := presenter.NewWithOptions(&bytes.Buffer{}, &bytes.Buffer{}, presenter.ColorNever)

	config := NewOverviewConfig()
	config.JSON = true
	require.NoError(t, runOverview(context.Background(), overviewCatalog(), config, p, &out))

	var doc overview.Overview
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, 5, doc.SkillCount)
	assert.Equal(t, 3, doc.EdgeCount)
	assert.Equal(t, []overview.Cluster{{Name: "cluster-1", Members: []string{"build", "test"}}}, doc.Clusters)
	assert.Equal(t, []string{"deploy", "docs"}, doc.Unconnected)
	require.Len(t, doc.Recent, 1)
	assert.Equal(t, "docs", doc.Recent[0].Name)
}
