package launcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/flaskstudio/flaskstudio/internal/analyzer"
)

// StartConfig describes one launch attempt.
type StartConfig struct {
	Root     string
	Python   string
	Port     int
	AutoPort bool
	Debug    bool
	Method   analyzer.RunMethod
	AppRef   string
	MainFile string
}

// Attempt records what was actually launched after port resolution.
type Attempt struct {
	Port   int
	Method analyzer.RunMethod
	AppRef string
	URL    string
}

// Controller supervises at most one dev server at a time.
type Controller struct {
	supervisor Supervisor
	clock      clock.Clock

	stopWait time.Duration

	mu      sync.Mutex
	running bool
	handle  Handle
}

// NewController returns a Controller backed by the OS process supervisor.
func NewController() *Controller {
	return NewControllerWith(&OSSupervisor{}, clock.New())
}

// NewControllerWith wires an explicit supervisor and clock, for tests.
func NewControllerWith(sup Supervisor, clk clock.Clock) *Controller {
	return &Controller{
		supervisor: sup,
		clock:      clk,
		stopWait:   5 * time.Second,
	}
}

// Running reports whether a server is currently under supervision.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Start launches a dev server. A second Start while one is running is
// rejected; the caller must Stop first.
func (c *Controller) Start(ctx context.Context, cfg StartConfig) (*Attempt, Handle, error) {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return nil, nil, fmt.Errorf("a server is already running; stop it first")
	}
	c.running = true
	c.mu.Unlock()

	port := cfg.Port
	if cfg.AutoPort {
		port = FindAvailablePort(cfg.Port, DefaultPortAttempts)
	}

	spec, err := buildSpec(cfg, port)
	if err != nil {
		c.reset()
		return nil, nil, err
	}

	handle, err := c.supervisor.Start(ctx, spec)
	if err != nil {
		c.reset()
		return nil, nil, fmt.Errorf("starting server: %w", err)
	}

	c.mu.Lock()
	c.handle = handle
	c.mu.Unlock()

	attempt := &Attempt{
		Port:   port,
		Method: cfg.Method,
		AppRef: cfg.AppRef,
		URL:    fmt.Sprintf("http://127.0.0.1:%d", port),
	}
	return attempt, handle, nil
}

// Stop terminates the supervised server. It is idempotent: stopping when
// nothing runs is a no-op. Termination escalates from SIGTERM to a kill if
// the process does not exit within the grace period.
func (c *Controller) Stop() error {
	c.mu.Lock()
	handle := c.handle
	running := c.running
	c.mu.Unlock()

	if !running || handle == nil {
		c.reset()
		return nil
	}

	// A stopping server can still flood its output pipe, and the pump may
	// already have stopped reading. Drain the rest ourselves so process exit
	// is never gated on a consumer.
	go func() {
		for range handle.Lines() {
		}
	}()

	if err := handle.Terminate(); err != nil {
		// Already gone.
		c.reset()
		return nil
	}

	timer := c.clock.Timer(c.stopWait)
	defer timer.Stop()
	select {
	case <-handle.Done():
	case <-timer.C:
		_ = handle.Kill()
		<-handle.Done()
	}

	c.reset()
	return nil
}

// Release clears the running state after the server exits on its own.
func (c *Controller) Release() { c.reset() }

func (c *Controller) reset() {
	c.mu.Lock()
	c.running = false
	c.handle = nil
	c.mu.Unlock()
}

func buildSpec(cfg StartConfig, port int) (CommandSpec, error) {
	python := cfg.Python
	if python == "" {
		python = "python3"
	}

	switch cfg.Method {
	case analyzer.RunDirect:
		if cfg.MainFile == "" {
			return CommandSpec{}, fmt.Errorf("direct run requires a main file")
		}
		return CommandSpec{
			Name: python,
			Args: []string{filepath.Join(cfg.Root, cfg.MainFile)},
			Dir:  cfg.Root,
			Env:  BuildEnv(cfg.Root, cfg.Debug, ""),
		}, nil
	default:
		if cfg.AppRef == "" {
			return CommandSpec{}, fmt.Errorf("flask run requires an application reference")
		}
		args := []string{
			"-m", "flask", "run",
			"--host=127.0.0.1",
			"--port=" + strconv.Itoa(port),
		}
		if cfg.Debug {
			args = append(args, "--reload")
		} else {
			args = append(args, "--no-reload")
		}
		return CommandSpec{
			Name: python,
			Args: args,
			Dir:  cfg.Root,
			Env:  BuildEnv(cfg.Root, cfg.Debug, cfg.AppRef),
		}, nil
	}
}
