package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesFileAndExtras(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "planner.log")
	ui := NewUIWriter(4)

	logger, closer, err := New(Options{File: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1}, ui)
	require.NoError(t, err)
	logger.Printf("Engine: Started '%s'", "Legs")
	require.NoError(t, closer.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Engine: Started 'Legs'")

	select {
	case line := <-ui.Lines():
		assert.Regexp(t, `^\[\d\d:\d\d:\d\d\] Engine: Started 'Legs'\n$`, line)
	default:
		t.Fatal("no line forwarded to the UI writer")
	}
}

func TestNew_RequiresFile(t *testing.T) {
	_, _, err := New(Options{})
	assert.Error(t, err)
}

func TestUIWriter_DropsWhenFull(t *testing.T) {
	ui := NewUIWriter(2)
	for _, s := range []string{"one\n", "two\n", "three\n"} {
		n, err := ui.Write([]byte(s))
		require.NoError(t, err)
		assert.Equal(t, len(s), n)
	}
	assert.Len(t, ui.Lines(), 2)
	assert.Contains(t, <-ui.Lines(), "one")
	assert.Contains(t, <-ui.Lines(), "two")
}

func TestStripTimestamp(t *testing.T) {
	assert.Equal(t, "Engine: ok\n", stripTimestamp("2026/10/14 09:30:00 Engine: ok\n"))
	assert.Equal(t, "plain", stripTimestamp("plain"))
}
