package launcher

import (
	"context"
	"sync"
)

// MockSupervisor is a scripted Supervisor for tests. Each Start consumes the
// next prepared handle; specs are recorded for assertions.
type MockSupervisor struct {
	mu       sync.Mutex
	StartErr error
	handles  []*MockHandle
	Specs    []CommandSpec
}

func NewMockSupervisor(handles ...*MockHandle) *MockSupervisor {
	return &MockSupervisor{handles: handles}
}

func (m *MockSupervisor) Start(ctx context.Context, spec CommandSpec) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Specs = append(m.Specs, spec)
	if m.StartErr != nil {
		return nil, m.StartErr
	}
	if len(m.handles) == 0 {
		h := NewMockHandle()
		m.handles = append(m.handles, h)
	}
	h := m.handles[0]
	m.handles = m.handles[1:]
	return h, nil
}

// MockHandle scripts a process: tests emit lines and trigger the exit.
type MockHandle struct {
	mu         sync.Mutex
	lines      chan string
	done       chan struct{}
	err        error
	exited     bool
	Terminated bool
	Killed     bool

	// ExitOnTerminate makes Terminate behave like a process honoring the
	// signal. When false, only Kill ends the process.
	ExitOnTerminate bool
}

func NewMockHandle() *MockHandle {
	return &MockHandle{
		lines:           make(chan string, 64),
		done:            make(chan struct{}),
		ExitOnTerminate: true,
	}
}

// EmitLine scripts one line of process output.
func (h *MockHandle) EmitLine(line string) {
	h.lines <- line
}

// Exit ends the scripted process with the given error.
func (h *MockHandle) Exit(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.exited {
		return
	}
	h.exited = true
	h.err = err
	close(h.lines)
	close(h.done)
}

func (h *MockHandle) Lines() <-chan string  { return h.lines }
func (h *MockHandle) Done() <-chan struct{} { return h.done }

func (h *MockHandle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

func (h *MockHandle) Terminate() error {
	h.mu.Lock()
	h.Terminated = true
	exitNow := h.ExitOnTerminate
	h.mu.Unlock()
	if exitNow {
		h.Exit(nil)
	}
	return nil
}

func (h *MockHandle) Kill() error {
	h.mu.Lock()
	h.Killed = true
	h.mu.Unlock()
	h.Exit(nil)
	return nil
}
