package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserFacingMethodsAlwaysPrint(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	l := NewWithOutput("", false, &stdout, &stderr)

	l.InfoToUser("hello %s", "world")
	l.Success("done %d", 3)
	l.StatusMessage("status %s", "line")

	assert.Contains(t, stdout.String(), "ℹ️  hello world")
	assert.Contains(t, stdout.String(), "✅ done 3")
	assert.Contains(t, stdout.String(), "status line")
}

func TestInternalMethodsSkipConsoleWhenNotVerbose(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	l := NewWithOutput("", false, &stdout, &stderr)

	l.Info("internal only")
	l.Warning("quiet warning")

	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestWarningShowsWhenVerbose(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	l := NewWithOutput("", true, &stdout, &stderr)

	l.Warning("loud warning")

	assert.Contains(t, stdout.String(), "loud warning")
}

func TestErrorAlwaysGoesToStderr(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	l := NewWithOutput("", false, &stdout, &stderr)

	l.Error("boom")

	assert.Contains(t, stderr.String(), "❌ boom")
	assert.Empty(t, stdout.String())
}

func TestFileLoggingWritesJSONLines(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	logFile := filepath.Join(dir, "gitlive.log")

	var stdout, stderr bytes.Buffer
	l := NewWithOutput(logFile, false, &stdout, &stderr)
	l.Info("file line")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"file line"`)
}
