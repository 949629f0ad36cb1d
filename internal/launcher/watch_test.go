package launcher

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectEvents(t *testing.T, events <-chan Event) []Event {
	t.Helper()
	var all []Event
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return all
			}
			all = append(all, ev)
		case <-timeout:
			t.Fatal("event stream never closed")
		}
	}
}

func TestWatchReportsStartup(t *testing.T) {
	handle := NewMockHandle()
	events := Watch(handle, "http://127.0.0.1:5000")

	handle.EmitLine(" * Serving Flask app 'app'")
	handle.EmitLine(" * Running on http://127.0.0.1:5000")
	handle.Exit(nil)

	all := collectEvents(t, events)

	var started *Event
	for i := range all {
		if all[i].Kind == EventStarted {
			started = &all[i]
		}
	}
	require.NotNil(t, started)
	assert.Equal(t, "http://127.0.0.1:5000", started.URL)

	last := all[len(all)-1]
	assert.Equal(t, EventExited, last.Kind)
	assert.Equal(t, FailureNone, last.Class)
	assert.NoError(t, last.Err)
}

func TestWatchClassifiesImportFailure(t *testing.T) {
	handle := NewMockHandle()
	events := Watch(handle, "http://127.0.0.1:5000")

	handle.EmitLine("Traceback (most recent call last):")
	handle.EmitLine("ModuleNotFoundError: No module named 'redis'")
	handle.Exit(errors.New("exit status 1"))

	all := collectEvents(t, events)

	last := all[len(all)-1]
	assert.Equal(t, EventExited, last.Kind)
	assert.Equal(t, FailureImport, last.Class)
	assert.NotEmpty(t, last.Suggestions)
	assert.Error(t, last.Err)
}

func TestWatchAppNotFound(t *testing.T) {
	handle := NewMockHandle()
	events := Watch(handle, "http://127.0.0.1:5000")

	handle.EmitLine("Error: Could not locate a Flask application.")
	handle.Exit(errors.New("exit status 2"))

	all := collectEvents(t, events)

	last := all[len(all)-1]
	assert.Equal(t, FailureAppNotFound, last.Class)
}

func TestWatchCleanExitWithoutOutput(t *testing.T) {
	handle := NewMockHandle()
	events := Watch(handle, "http://127.0.0.1:5000")

	handle.Exit(nil)

	all := collectEvents(t, events)

	require.Len(t, all, 1)
	assert.Equal(t, EventExited, all[0].Kind)
	assert.Equal(t, FailureNone, all[0].Class)
}

func TestWatchBenignOutputThenCleanExit(t *testing.T) {
	handle := NewMockHandle()
	events := Watch(handle, "http://127.0.0.1:5000")

	handle.EmitLine(" * Debug mode: off")
	handle.Exit(nil)

	all := collectEvents(t, events)

	last := all[len(all)-1]
	assert.Equal(t, EventExited, last.Kind)
	// Banner output alone is not a failure signature.
	assert.Equal(t, FailureNone, last.Class)
}

func TestWatchCrashWithoutSignatureIsGeneric(t *testing.T) {
	handle := NewMockHandle()
	events := Watch(handle, "http://127.0.0.1:5000")

	handle.EmitLine("segmentation fault")
	handle.Exit(errors.New("exit status 139"))

	all := collectEvents(t, events)

	last := all[len(all)-1]
	assert.Equal(t, FailureGeneric, last.Class)
	assert.NotEmpty(t, last.Suggestions)
}

func TestWatchIgnoresErrorsAfterStartup(t *testing.T) {
	handle := NewMockHandle()
	events := Watch(handle, "http://127.0.0.1:5000")

	handle.EmitLine(" * Running on http://127.0.0.1:5000")
	handle.EmitLine("Traceback (most recent call last):")
	handle.Exit(nil)

	all := collectEvents(t, events)

	last := all[len(all)-1]
	assert.Equal(t, EventExited, last.Kind)
	// Output after startup is request traffic, not a startup failure.
	assert.Equal(t, FailureNone, last.Class)
}
