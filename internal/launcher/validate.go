package launcher

import (
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/sethvargo/go-retry"
)

const validateProbe = "from flask.cli import ScriptInfo; ScriptInfo().load_app()"

// Validator checks that a launcher string actually resolves to a Flask
// application before the dev server is started with it. The probe runs the
// same resolution path flask run would, so a passing probe means the server
// will find the app.
type Validator struct {
	Python  string
	Root    string
	Timeout time.Duration

	// runProbe is swapped in tests.
	runProbe func(ctx context.Context, appRef string) error
}

// NewValidator returns a Validator using the given interpreter, rooted at the
// project directory.
func NewValidator(python, root string) *Validator {
	v := &Validator{
		Python:  python,
		Root:    root,
		Timeout: 10 * time.Second,
	}
	v.runProbe = v.execProbe
	return v
}

// Validate probes appRef out-of-process. A slow probe (cold interpreter,
// network filesystem) is retried once; a probe that fails with output from
// flask itself is definitive and returned immediately.
func (v *Validator) Validate(ctx context.Context, appRef string) error {
	return retry.Do(ctx, retry.WithMaxRetries(1, retry.NewConstant(500*time.Millisecond)), func(ctx context.Context) error {
		probeCtx, cancel := context.WithTimeout(ctx, v.Timeout)
		defer cancel()

		err := v.runProbe(probeCtx, appRef)
		if err == nil {
			return nil
		}
		if errors.Is(probeCtx.Err(), context.DeadlineExceeded) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (v *Validator) execProbe(ctx context.Context, appRef string) error {
	cmd := exec.CommandContext(ctx, v.Python, "-c", validateProbe)
	cmd.Dir = v.Root
	cmd.Env = BuildEnv(v.Root, false, appRef)

	out, err := cmd.CombinedOutput()
	if err != nil {
		if len(out) > 0 {
			return &ProbeError{AppRef: appRef, Output: string(out), Err: err}
		}
		return err
	}
	return nil
}

// ProbeError carries the probe's combined output so the failure can be
// classified the same way server output is.
type ProbeError struct {
	AppRef string
	Output string
	Err    error
}

func (e *ProbeError) Error() string {
	return "probe of " + e.AppRef + " failed: " + e.Err.Error()
}

func (e *ProbeError) Unwrap() error { return e.Err }
