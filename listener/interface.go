package listener

import (
	"context"
	"crypto/tls"
	"net"
	"os"

	liberr "github.com/nabbar/htloop/errors"
)

// Handler is given every accepted connection on its own goroutine. It owns
// the connection until it returns: it must close conn itself.
type Handler func(conn net.Conn)

// Listener binds addresses, accepts connections, and dispatches them to a
// Handler. The zero value is not usable; construct with New.
type Listener interface {
	// Bind listens on addr (host:port, tcp) and adds it to the socket set.
	Bind(addr string) error
	// AddSockets registers sockets that were already created and bound by
	// the caller (its own net.Listen call, a non-TCP net.Listener, or any
	// other externally managed socket), handing them to this Listener
	// fully formed rather than binding on their behalf. Mirrors
	// HTTPServer.add_sockets(sockets) in
	// _examples/original_source/tornado/httpserver.py, the "advanced
	// multi-process" pattern where sockets are produced however the
	// caller likes and only then given to the server.
	AddSockets(sockets ...net.Listener) error
	// Addrs returns the address of every bound socket, in bind order.
	// Useful after binding to "host:0" to discover the chosen port.
	Addrs() []net.Addr
	// Files returns one *os.File per bound TCP socket (sockets of other
	// types are skipped), duplicated so the
	// caller may pass them to forker.Fork as ExtraFiles; closing the
	// returned files does not affect the listener's own sockets.
	Files() ([]*os.File, error)
	// AdoptFiles rebuilds the socket set from inherited file descriptors,
	// for use in a process started by forker (see forker.ChildIndex).
	AdoptFiles(files []*os.File) error

	// SetTLS configures TLS wrapping for every socket Start accepts on.
	// A nil cfg (the default) serves plaintext.
	SetTLS(cfg *tls.Config)

	// Start begins accepting on every bound socket, one goroutine per
	// socket, dispatching each accepted connection to handler on its own
	// goroutine. Start returns immediately; accept errors are logged and
	// do not stop the other sockets.
	Start(handler Handler) error
	// Stop closes every bound socket, causing Start's accept loops to
	// return. Already-accepted connections are not affected.
	Stop() error
	// Shutdown is Stop followed by waiting (up to ctx's deadline) for
	// in-flight connections tracked via Track/Untrack to finish.
	Shutdown(ctx context.Context) error

	// Track registers an in-flight connection so Shutdown can wait for it.
	Track()
	// Untrack reports one tracked connection as finished.
	Untrack()

	IsRunning() bool
	// WaitNotify blocks until SIGINT/SIGTERM/SIGQUIT, then calls Shutdown
	// with a bounded grace period.
	WaitNotify()

	// PortInUse reports whether addr already has a listener on it,
	// checked by dialing rather than binding (same technique as the
	// teacher's httpserver.Server.PortInUse).
	PortInUse(addr string) liberr.Error
}

// New returns a Listener with no bound sockets.
func New() Listener {
	return newListener()
}
