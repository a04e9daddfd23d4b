package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSONFieldsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(Config{Level: "info", Format: "json"}, &buf)

	log.Debug("hidden")
	log.Component("expander").WithField("seeds", 3).Info("expanded")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "expanded", entry["message"])
	assert.Equal(t, "expander", entry["component"])
	assert.EqualValues(t, 3, entry["seeds"])
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug":    "debug",
		"warn":     "warn",
		"error":    "error",
		"bogus":    "info",
		"":         "info",
		"disabled": "disabled",
	}
	for input, want := range tests {
		assert.Equal(t, want, parseLevel(input).String(), "input %q", input)
	}
}

func TestNop_DiscardsEverything(t *testing.T) {
	log := Nop()
	log.WithError(assert.AnError).Error("nothing")
	log.WithFields(map[string]interface{}{"a": 1}).Warn("nothing")
}

func TestProgressReporter_ReportsOnCompletion(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(Config{Level: "debug"}, &buf)

	pr := NewProgressReporter(log, 3, "seed expansion", time.Hour)
	pr.Update(1)
	pr.Update(1)
	assert.Empty(t, buf.String())

	pr.Update(1)
	current, total := pr.Progress()
	assert.Equal(t, 3, current)
	assert.Equal(t, 3, total)
	assert.Contains(t, buf.String(), "seed expansion: 3/3")
}
