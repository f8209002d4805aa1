package preview

import (
	"context"
	"net"
)

// listen binds a TCP listener with SO_REUSEADDR set explicitly, so a preview
// started moments after a previous one exited can take the port back while
// old connections from that instance are still in TIME_WAIT.
func listen(ctx context.Context, addr string) (net.Listener, error) {
	lc := net.ListenConfig{Control: reuseAddrControl}
	return lc.Listen(ctx, "tcp", addr)
}
