package launcher

import (
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func holdPort(t *testing.T, port int) {
	t.Helper()
	l, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(port)))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
}

func TestFindAvailablePortSkipsBusyPorts(t *testing.T) {
	base := 43210
	for port := base; port < base+5; port++ {
		holdPort(t, port)
	}

	assert.Equal(t, base+5, FindAvailablePort(base, DefaultPortAttempts))
}

func TestFindAvailablePortReturnsStartWhenFree(t *testing.T) {
	assert.Equal(t, 43300, FindAvailablePort(43300, DefaultPortAttempts))
}

func TestFindAvailablePortExhaustedFallsBack(t *testing.T) {
	base := 43400
	holdPort(t, base)
	holdPort(t, base+1)

	assert.Equal(t, base, FindAvailablePort(base, 2))
}
