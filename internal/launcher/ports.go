package launcher

import (
	"net"
	"strconv"
)

// DefaultPortAttempts bounds the port scan. The scan is blocking and
// non-cancelable, so it stays small.
const DefaultPortAttempts = 20

// FindAvailablePort probes candidates starting at start, binding and
// releasing each one synchronously. Exhausting the range falls back to the
// originally requested port.
func FindAvailablePort(start, attempts int) int {
	if attempts <= 0 {
		attempts = DefaultPortAttempts
	}
	for port := start; port < start+attempts; port++ {
		l, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(port)))
		if err != nil {
			continue
		}
		l.Close()
		return port
	}
	return start
}
