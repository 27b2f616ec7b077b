package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJSON(t *testing.T, level string) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l, err := New(&Config{Level: level, Format: "json", Writer: &buf})
	require.NoError(t, err)
	return l, &buf
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &m))
	return m
}

func TestLogger_Fields(t *testing.T) {
	l, buf := newJSON(t, "debug")

	l.Info("scored",
		String("tier", "High"),
		Int("features", 12),
		Float64("probability", 0.82),
		Bool("churn", true),
		Duration("latency_ms", 1500*time.Millisecond),
		Strings("names", []string{"Age", "Tenure"}),
	)

	m := lastLine(t, buf)
	assert.Equal(t, "info", m["level"])
	assert.Equal(t, "scored", m["message"])
	assert.Equal(t, "High", m["tier"])
	assert.Equal(t, float64(12), m["features"])
	assert.Equal(t, 0.82, m["probability"])
	assert.Equal(t, true, m["churn"])
	assert.Equal(t, float64(1500), m["latency_ms"])
	assert.Equal(t, "Age, Tenure", m["names"])
	assert.Contains(t, m, "time")
	assert.Contains(t, m, "caller")
}

func TestLogger_Error(t *testing.T) {
	l, buf := newJSON(t, "info")
	l.Error("load failed", Error(errors.New("no such file")))

	m := lastLine(t, buf)
	assert.Equal(t, "error", m["level"])
	assert.Equal(t, "no such file", m["error"])
}

func TestLogger_LevelFilters(t *testing.T) {
	l, buf := newJSON(t, "warn")
	l.Debug("hidden")
	l.Info("hidden")
	assert.Zero(t, buf.Len())

	l.Warn("shown")
	assert.Equal(t, "shown", lastLine(t, buf)["message"])
}

func TestLogger_With(t *testing.T) {
	l, buf := newJSON(t, "info")
	child := l.With(String("prediction_id", "abc"))
	child.Info("scored")
	assert.Equal(t, "abc", lastLine(t, buf)["prediction_id"])
}

func TestNew_Defaults(t *testing.T) {
	cfg := &Config{Writer: &bytes.Buffer{}}
	_, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(&Config{Level: "loud", Writer: &bytes.Buffer{}})
	assert.ErrorContains(t, err, "invalid log level")
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Error("dropped", Error(errors.New("x"))) })
}
