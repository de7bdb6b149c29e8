package presenter

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOptions(t *testing.T) {
	var output, errorOutput bytes.Buffer
	presenter := NewWithOptions(&output, &errorOutput, ColorNever)

	assert.Equal(t, &output, presenter.output)
	assert.Equal(t, &errorOutput, presenter.errorOutput)
	assert.Equal(t, ColorNever, presenter.colorMode)
	assert.False(t, presenter.quiet)
}

func TestDetectColorMode(t *testing.T) {
	tests := []struct {
		name       string
		noColor    string
		colorValue string
		expected   ColorMode
	}{
		{"NO_COLOR set", "1", "", ColorNever},
		{"SKILLGRAPH_COLOR always", "", "always", ColorAlways},
		{"SKILLGRAPH_COLOR force", "", "force", ColorAlways},
		{"SKILLGRAPH_COLOR never", "", "never", ColorNever},
		{"SKILLGRAPH_COLOR off", "", "off", ColorNever},
		{"SKILLGRAPH_COLOR auto", "", "auto", ColorAuto},
		{"default", "", "", ColorAuto},
		{"invalid value", "", "sometimes", ColorAuto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Unsetenv("NO_COLOR")
			os.Unsetenv("SKILLGRAPH_COLOR")
			defer os.Unsetenv("NO_COLOR")
			defer os.Unsetenv("SKILLGRAPH_COLOR")

			if tt.noColor != "" {
				os.Setenv("NO_COLOR", tt.noColor)
			}
			if tt.colorValue != "" {
				os.Setenv("SKILLGRAPH_COLOR", tt.colorValue)
			}

			assert.Equal(t, tt.expected, detectColorMode())
		})
	}
}

func TestError(t *testing.T) {
	var errorOutput bytes.Buffer
	presenter := NewWithOptions(nil, &errorOutput, ColorNever)

	err := errors.New("pipeline 'x' not found")
	presenter.Error(err, "Failed to filter graph")

	output := errorOutput.String()
	assert.Contains(t, output, "[ERROR]")
	assert.Contains(t, output, "Failed to filter graph")
	assert.Contains(t, output, "pipeline 'x' not found")

	errorOutput.Reset()
	presenter.Error(err, "")
	assert.NotContains(t, errorOutput.String(), "Failed to filter graph")

	errorOutput.Reset()
	presenter.Error(nil, "context")
	assert.Empty(t, errorOutput.String())
}

func TestMessages(t *testing.T) {
	var output bytes.Buffer
	presenter := NewWithOptions(&output, nil, ColorNever)

	presenter.Success("Configuration saved")
	presenter.Warning("Skill directory not found")
	presenter.Info("plain line")

	result := output.String()
	assert.Contains(t, result, "✓ Configuration saved")
	assert.Contains(t, result, "⚠ Skill directory not found")
	assert.Contains(t, result, "plain line\n")
}

func TestSection(t *testing.T) {
	var output bytes.Buffer
	presenter := NewWithOptions(&output, nil, ColorNever)

	presenter.Section("Clusters")

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Clusters", lines[0])
	assert.Equal(t, "--------", lines[1])
}

func TestBullets(t *testing.T) {
	var output bytes.Buffer
	presenter := NewWithOptions(&output, nil, ColorNever)

	presenter.Bullets([]string{"build", "deploy"})
	assert.Equal(t, "  • build\n  • deploy\n", output.String())

	output.Reset()
	presenter.Bullets(nil)
	assert.Equal(t, "  (none)\n", output.String())
}

func TestStats(t *testing.T) {
	var output bytes.Buffer
	presenter := NewWithOptions(&output, nil, ColorNever)

	presenter.Stats(&GraphStats{Skills: 5, Edges: 4, Clusters: 1, Roots: 1, Leaves: 2, Bridges: 2})

	result := output.String()
	assert.Contains(t, result, "Skills: 5 | Edges: 4 | Clusters: 1 | Roots: 1 | Leaves: 2 | Bridges: 2")
	assert.NotContains(t, result, "Missing")

	output.Reset()
	presenter.Stats(&GraphStats{Missing: 3})
	assert.Contains(t, output.String(), "Missing reference targets: 3")

	output.Reset()
	presenter.Stats(nil)
	assert.Empty(t, output.String())
}

func TestQuietMode(t *testing.T) {
	var output bytes.Buffer
	presenter := NewWithOptions(&output, nil, ColorNever)
	presenter.SetQuiet(true)
	assert.True(t, presenter.IsQuiet())

	presenter.Success("a")
	presenter.Warning("b")
	presenter.Info("c")
	presenter.Section("d")
	presenter.Bullets([]string{"e"})
	presenter.Stats(&GraphStats{Skills: 1})
	presenter.Separator()

	assert.Empty(t, output.String())

	presenter.SetQuiet(false)
	assert.False(t, presenter.IsQuiet())
}

func TestColorModeConfiguration(t *testing.T) {
	oldNoColor := color.NoColor
	defer func() { color.NoColor = oldNoColor }()

	NewWithOptions(&bytes.Buffer{}, &bytes.Buffer{}, ColorNever)
	assert.True(t, color.NoColor)

	NewWithOptions(&bytes.Buffer{}, &bytes.Buffer{}, ColorAlways)
	assert.False(t, color.NoColor)
}

func TestGlobalFunctions(t *testing.T) {
	originalPresenter := defaultPresenter
	defer func() {
		defaultPresenter = originalPresenter
	}()

	var output, errorOutput bytes.Buffer
	defaultPresenter = NewWithOptions(&output, &errorOutput, ColorNever)

	Error(errors.New("boom"), "context")
	assert.Contains(t, errorOutput.String(), "[ERROR] context: boom")

	Section("Pipelines")
	Bullets([]string{"release"})
	Stats(&GraphStats{Skills: 2})
	Separator()
	assert.Contains(t, output.String(), "Pipelines")
	assert.Contains(t, output.String(), "  • release")
	assert.Contains(t, output.String(), "Skills: 2")
	assert.Contains(t, output.String(), strings.Repeat("-", 60))

	SetQuiet(true)
	assert.True(t, IsQuiet())
	output.Reset()
	Info("should not appear")
	assert.Empty(t, output.String())
	SetQuiet(false)
}
