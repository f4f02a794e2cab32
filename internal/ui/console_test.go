package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleReport(t *testing.T) {
	tests := []struct {
		level Level
		icon  string
	}{
		{LevelInfo, "[*]"},
		{LevelSuccess, "[+]"},
		{LevelWarning, "[!]"},
		{LevelError, "[x]"},
		{Level(42), "[*]"},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			NewConsole(&buf).Report("Playlist: Road Trip", tt.level)

			line := buf.String()
			assert.True(t, strings.HasPrefix(line, tt.icon+" "), "got %q", line)
			assert.Contains(t, line, "Playlist: Road Trip")
			assert.True(t, strings.HasSuffix(line, "\n"))
		})
	}
}

func TestConsoleHelpers(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Success("done")
	c.Error("broken")
	c.Header("Settings")
	c.Println("plain", 1)

	out := buf.String()
	assert.Contains(t, out, "[+] ")
	assert.Contains(t, out, "done")
	assert.Contains(t, out, "[x] ")
	assert.Contains(t, out, "Settings")
	assert.Contains(t, out, "plain 1\n")
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "info", LevelInfo.String())
	assert.Equal(t, "error", LevelError.String())
}
