package output

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StreamingWriter renders subprocess output line by line with a styled prefix.
// Partial writes are buffered until a newline arrives.
type StreamingWriter struct {
	prefix string
	style  lipgloss.Style
	writer io.Writer
	buffer []byte
}

// NewStreamingWriter creates a formatted output writer.
func NewStreamingWriter(writer io.Writer, prefix string, color lipgloss.Color) *StreamingWriter {
	return &StreamingWriter{
		prefix: prefix,
		style:  lipgloss.NewStyle().Foreground(color),
		writer: writer,
		buffer: make([]byte, 0),
	}
}

// Write formats and writes output line by line.
func (s *StreamingWriter) Write(p []byte) (n int, err error) {
	s.buffer = append(s.buffer, p...)

	lines := strings.Split(string(s.buffer), "\n")

	// Keep the last incomplete line in the buffer.
	s.buffer = []byte(lines[len(lines)-1])
	lines = lines[:len(lines)-1]

	for _, line := range lines {
		if err := s.writeLine(line); err != nil {
			return 0, err
		}
	}

	return len(p), nil
}

// WriteLine writes a single complete line, bypassing the buffer.
func (s *StreamingWriter) WriteLine(line string) error {
	return s.writeLine(line)
}

// Flush writes any remaining buffered content.
func (s *StreamingWriter) Flush() error {
	if len(s.buffer) == 0 {
		return nil
	}
	line := string(s.buffer)
	s.buffer = s.buffer[:0]
	return s.writeLine(line)
}

func (s *StreamingWriter) writeLine(line string) error {
	if s.prefix != "" {
		line = s.prefix + line
	}
	_, err := s.writer.Write([]byte(s.style.Render(line) + "\n"))
	return err
}
