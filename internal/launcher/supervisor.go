// Package launcher starts and supervises the Flask development server: port
// selection, environment contract, launcher-string validation with retry,
// output watching, and startup-failure classification.
package launcher

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
)

// CommandSpec describes one external process to start.
type CommandSpec struct {
	Name string
	Args []string
	Dir  string
	Env  []string // full child environment
}

// Handle is a running process. Lines streams combined stdout/stderr and
// closes at EOF; Done closes once the process has exited.
type Handle interface {
	Lines() <-chan string
	Done() <-chan struct{}
	// Err returns the exit error. Valid only after Done is closed.
	Err() error
	Terminate() error
	Kill() error
}

// Supervisor spawns external processes. The OS implementation shells out;
// the mock implementation scripts output and exits for tests.
type Supervisor interface {
	Start(ctx context.Context, spec CommandSpec) (Handle, error)
}

// OSSupervisor runs real processes via os/exec.
type OSSupervisor struct{}

func NewOSSupervisor() *OSSupervisor {
	return &OSSupervisor{}
}

func (s *OSSupervisor) Start(ctx context.Context, spec CommandSpec) (Handle, error) {
	cmd := exec.Command(spec.Name, spec.Args...)
	cmd.Dir = spec.Dir
	if len(spec.Env) > 0 {
		cmd.Env = spec.Env
	} else {
		cmd.Env = os.Environ()
	}

	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pw.Close()
		return nil, fmt.Errorf("starting %s: %w", spec.Name, err)
	}

	h := &osHandle{
		cmd:   cmd,
		lines: make(chan string, 64),
		done:  make(chan struct{}),
	}

	go func() {
		scanner := bufio.NewScanner(pr)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			h.lines <- scanner.Text()
		}
		close(h.lines)
	}()

	go func() {
		h.err = cmd.Wait()
		pw.Close()
		close(h.done)
	}()

	return h, nil
}

type osHandle struct {
	cmd   *exec.Cmd
	lines chan string
	done  chan struct{}
	err   error
}

func (h *osHandle) Lines() <-chan string  { return h.lines }
func (h *osHandle) Done() <-chan struct{} { return h.done }

func (h *osHandle) Err() error {
	return h.err
}

func (h *osHandle) Terminate() error {
	if h.cmd.Process == nil {
		return nil
	}
	return h.cmd.Process.Signal(syscall.SIGTERM)
}

func (h *osHandle) Kill() error {
	if h.cmd.Process == nil {
		return nil
	}
	return h.cmd.Process.Kill()
}
