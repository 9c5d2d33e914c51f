package moodbites

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileActionLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFileActionLogger(&buf)

	require.NoError(t, logger.LogAction(ActionLog{Step: 1, Tool: "mood_list", Timestamp: time.Now()}))
	require.NoError(t, logger.LogAction(ActionLog{Step: 2, Tool: "grocery_add", Error: "boom"}))
	assert.Zero(t, buf.Len(), "nothing is written before Flush")

	require.NoError(t, logger.Flush())

	var doc struct {
		Session struct {
			Actions []ActionLog `json:"actions"`
		} `json:"session"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Session.Actions, 2)
	assert.Equal(t, "grocery_add", doc.Session.Actions[1].Tool)
	assert.Equal(t, "boom", doc.Session.Actions[1].Error)

	assert.Empty(t, logger.actions)
	assert.NoError(t, NewFileActionLogger(nil).Flush())
}

func TestStdoutActionLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := &StdoutActionLogger{out: &buf}

	require.NoError(t, logger.LogAction(ActionLog{Step: 1, Tool: "mood_list"}))
	require.NoError(t, logger.LogAction(ActionLog{Step: 2, Tool: "favorite_list"}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], `"tool":"favorite_list"`)
}

func TestNewActionLogFilePath(t *testing.T) {
	p := NewActionLogFilePath("logs")
	assert.True(t, strings.HasPrefix(p, "logs/"))
	assert.True(t, strings.HasSuffix(p, ".session.json"))
}
