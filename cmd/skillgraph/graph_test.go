package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillgraph/skillgraph/pkg/graph"
)

func TestGraphConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  GraphConfig
		wantErr string
	}{
		{name: "defaults", config: *NewGraphConfig()},
		{name: "uppercase format", config: GraphConfig{Format: "DOT"}},
		{name: "pipeline filter", config: GraphConfig{Format: "text", Pipeline: "release"}},
		{
			name:    "both filters",
			config:  GraphConfig{Format: "text", Pipeline: "release", Tag: "testing"},
			wantErr: "--pipeline and --tag cannot be used together",
		},
		{
			name:    "unknown format",
			config:  GraphConfig{Format: "svg"},
			wantErr: "dot, text, json, mermaid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRunGraphText(t *testing.T) {
	var out bytes.Buffer
	err := runGraph(context.Background(), fixtureCatalog(), NewGraphConfig(), &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Skills: 5\n")
	assert.Contains(t, text, "Clusters: 1\n")
	assert.Contains(t, text, "build: plan, test\n")
	assert.Contains(t, text, "test: build\n")
	assert.Contains(t, text, "deploy: (none)\n")
}

func TestRunGraphJSON(t *testing.T) {
	var out bytes.Buffer
	err := runGraph(context.Background(), fixtureCatalog(), &GraphConfig{Format: "json"}, &out)
	require.NoError(t, err)
	assert.Equal(t, byte('\n'), out.Bytes()[out.Len()-1])

	var doc graph.JSONGraph
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Len(t, doc.Nodes, 5)
	assert.Len(t, doc.Edges, 3)
	assert.Equal(t, [][]string{{"build", "test"}}, doc.Clusters)
	assert.Contains(t, doc.Edges, graph.JSONEdge{Source: "build", Target: "plan", Kind: "pipeline"})
}

func TestRunGraphPipelineFilter(t *testing.T) {
	var out bytes.Buffer
	err := runGraph(context.Background(), fixtureCatalog(), &GraphConfig{Format: "mermaid", Pipeline: "release"}, &out)
	require.NoError(t, err)

	mermaid := out.String()
	assert.Contains(t, mermaid, "build[build] -.-> plan[plan]")
	assert.Contains(t, mermaid, "build[build] --> test[test]")
	assert.NotContains(t, mermaid, "deploy")
}

func TestRunGraphTagFilter(t *testing.T) {
	var out bytes.Buffer
	err := runGraph(context.Background(), fixtureCatalog(), &GraphConfig{Format: "text", Tag: "testing"}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Skills: 1\n")
	assert.Contains(t, out.String(), "test: (none)\n")
}

func TestRunGraphUnknownPipeline(t *testing.T) {
	var out bytes.Buffer
	err := runGraph(context.Background(), fixtureCatalog(), &GraphConfig{Format: "text", Pipeline: "nightly"}, &out)
	require.Error(t, err)

	var filterErr *graph.UnknownFilterError
	require.True(t, errors.As(err, &filterErr))
	assert.Equal(t, []string{"release"}, filterErr.Available)
	assert.Equal(t, "pipeline 'nightly' not found. Available: release", err.Error())
	assert.Zero(t, out.Len())
}
