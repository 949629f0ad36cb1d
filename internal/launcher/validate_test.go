package launcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSuccess(t *testing.T) {
	v := NewValidator("python3", t.TempDir())
	v.runProbe = func(ctx context.Context, appRef string) error {
		assert.Equal(t, "app:app", appRef)
		return nil
	}

	require.NoError(t, v.Validate(context.Background(), "app:app"))
}

func TestValidateDefinitiveFailureIsNotRetried(t *testing.T) {
	calls := 0
	probeErr := &ProbeError{AppRef: "app:app", Output: "Error: Could not locate a Flask application.", Err: errors.New("exit status 2")}

	v := NewValidator("python3", t.TempDir())
	v.runProbe = func(ctx context.Context, appRef string) error {
		calls++
		return probeErr
	}

	err := v.Validate(context.Background(), "app:app")
	require.Error(t, err)
	assert.Equal(t, 1, calls)

	var pe *ProbeError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Output, "Could not locate")
}

func TestValidateRetriesOnDeadline(t *testing.T) {
	calls := 0

	v := NewValidator("python3", t.TempDir())
	v.Timeout = 10 * time.Millisecond
	v.runProbe = func(ctx context.Context, appRef string) error {
		calls++
		<-ctx.Done()
		return ctx.Err()
	}

	err := v.Validate(context.Background(), "app:app")
	require.Error(t, err)
	assert.Equal(t, 2, calls)
}
