package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNopObserver(t *testing.T) {
	o := OrNop(nil)
	span := o.SpanStart("x", Attrs{"a": 1})
	span.SetAttr("b", 2)
	span.End(nil)
	o.Event("y", nil)
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder()
	span := rec.SpanStart("keymaps.resolve", Attrs{"mode": "normal"})
	span.SetAttr("status", "match")
	rec.Event("mode.switch", Attrs{"to": "insert"})
	span.End(nil)
	span.End(errors.New("ignored"))

	records := rec.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "event", records[0].Kind)
	assert.Equal(t, "span", records[1].Kind)
	assert.Equal(t, "match", records[1].Attrs["status"])
	assert.NoError(t, records[1].Err)
	assert.Equal(t, []string{"keymaps.resolve"}, rec.Names("span"))
}

func TestSlogObserverJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "debug", true)
	require.NoError(t, err)

	obs := NewSlog(logger)
	span := obs.SpanStart("operator.parse", Attrs{"keys": "dw"})
	span.End(errors.New("boom"))
	obs.Event("command.submit", Attrs{"text": "wq"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	var end map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &end))
	assert.Equal(t, "span.end", end["msg"])
	assert.Equal(t, "WARN", end["level"])
	assert.Equal(t, "boom", end["error"])
	assert.Equal(t, "dw", end["keys"])

	var ev map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &ev))
	assert.Equal(t, "command.submit", ev["name"])
}

func TestSlogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "info", false)
	require.NoError(t, err)

	obs := NewSlog(logger)
	obs.SpanStart("quiet", nil).End(nil)
	assert.Empty(t, buf.String())

	obs.Event("loud", nil)
	assert.Contains(t, buf.String(), "name=loud")
}

func TestParseLevel(t *testing.T) {
	_, err := ParseLevel("verbose")
	assert.Error(t, err)

	lvl, err := ParseLevel("WARNING")
	require.NoError(t, err)
	assert.Equal(t, "WARN", lvl.String())
}
