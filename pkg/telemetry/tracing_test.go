package telemetry

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	original := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(original) })
	return recorder
}

func TestInitTracerDisabled(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), Config{Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestGetSampler(t *testing.T) {
	tests := []struct {
		cfg      Config
		expected string
	}{
		{Config{SamplerType: "always"}, "AlwaysOnSampler"},
		{Config{SamplerType: "never"}, "AlwaysOffSampler"},
		{Config{SamplerType: ""}, "AlwaysOnSampler"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, getSampler(tt.cfg).Description())
		})
	}

	assert.Contains(t, getSampler(Config{SamplerType: "ratio", SamplerRatio: 0.5}).Description(), "ParentBased")
}

func TestWithSpan(t *testing.T) {
	recorder := recordSpans(t)

	err := WithSpan(context.Background(), "graph.build", func(ctx context.Context) error {
		SetAttributes(ctx, attribute.Int("graph.nodes", 3))
		AddEvent(ctx, "clusters.detected")
		return nil
	}, attribute.String("graph.format", "dot"))
	require.NoError(t, err)

	err = WithSpan(context.Background(), "skills.discover", func(context.Context) error {
		return errors.New("permission denied")
	})
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, "graph.build", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.Int("graph.nodes", 3))
	assert.Contains(t, spans[0].Attributes(), attribute.String("graph.format", "dot"))
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "clusters.detected", spans[0].Events()[0].Name)

	assert.Equal(t, "skills.discover", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "permission denied", spans[1].Status().Description)
}
