package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonLogger(buf *bytes.Buffer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(buf)
	logger.SetLevel(logrus.DebugLevel)
	setLoggerFormat(logger, "json")
	return logger
}

func TestNewLogger(t *testing.T) {
	logger := newLogger()

	formatter, ok := logger.Formatter.(*logrus.TextFormatter)
	require.True(t, ok)
	assert.Equal(t, time.RFC3339Nano, formatter.TimestampFormat)
	assert.True(t, formatter.FullTimestamp)
}

func TestGetLogger_WithoutContextLogger(t *testing.T) {
	retrieved := G(context.Background())

	assert.NotNil(t, retrieved)
	assert.Equal(t, L.Logger, retrieved.Logger)
}

func TestGetLogger_WithContextLogger(t *testing.T) {
	custom := logrus.NewEntry(logrus.New()).WithField("skill", "deploy")
	ctx := WithLogger(context.Background(), custom)

	retrieved := G(ctx)
	assert.Equal(t, "deploy", retrieved.Data["skill"])
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), logrus.NewEntry(jsonLogger(&buf)).WithField("dir", "/skills"))
	ctx = WithFields(ctx, logrus.Fields{"skill": "lint"})

	G(ctx).Debug("loaded skill")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "/skills", entry["dir"])
	assert.Equal(t, "lint", entry["skill"])
	assert.Equal(t, "loaded skill", entry["message"])
	assert.Equal(t, "debug", entry["logLevel"])

	_, err := time.Parse(time.RFC3339Nano, entry["timestamp"].(string))
	assert.NoError(t, err)
}

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := jsonLogger(&buf)
	logger.SetLevel(logrus.InfoLevel)
	ctx := WithLogger(context.Background(), logrus.NewEntry(logger))

	G(ctx).Debug("hidden")
	G(ctx).Info("info message")
	G(ctx).Warn("warn message")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	expected := []string{"info", "warning"}
	for i, line := range lines {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.Equal(t, expected[i], entry["logLevel"])
	}
}

func TestConfigure(t *testing.T) {
	originalLevel := L.Logger.GetLevel()
	originalFormatter := L.Logger.Formatter
	defer func() {
		L.Logger.SetLevel(originalLevel)
		L.Logger.Formatter = originalFormatter
	}()

	require.NoError(t, Configure("debug", "json"))
	assert.Equal(t, logrus.DebugLevel, L.Logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, L.Logger.Formatter)

	require.NoError(t, Configure("", "fmt"))
	assert.Equal(t, logrus.DebugLevel, L.Logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, L.Logger.Formatter)

	err := Configure("loud", "fmt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level 'loud'")
}

func TestSetLogOutput(t *testing.T) {
	original := L.Logger.Out
	defer SetLogOutput(original)

	var buf bytes.Buffer
	SetLogOutput(&buf)
	L.Warn("graph rebuilt")

	assert.Contains(t, buf.String(), "graph rebuilt")
}
