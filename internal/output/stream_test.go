package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamingWriterBuffersPartialLines(t *testing.T) {
	var buf bytes.Buffer
	w := NewStreamingWriter(&buf, "", lipgloss.Color("240"))

	_, err := w.Write([]byte("first li"))
	require.NoError(t, err)
	assert.Zero(t, buf.Len())

	_, err = w.Write([]byte("ne\nsecond line\npartial"))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "first line")
	assert.Contains(t, out, "second line")
	assert.NotContains(t, out, "partial")

	require.NoError(t, w.Flush())
	assert.Contains(t, buf.String(), "partial")
}

func TestStreamingWriterPrefix(t *testing.T) {
	var buf bytes.Buffer
	w := NewStreamingWriter(&buf, "server | ", lipgloss.Color("240"))

	require.NoError(t, w.WriteLine("hello"))

	assert.Contains(t, buf.String(), "server | hello")
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestStreamingWriterFlushEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := NewStreamingWriter(&buf, "", lipgloss.Color("240"))

	require.NoError(t, w.Flush())
	assert.Zero(t, buf.Len())
}
