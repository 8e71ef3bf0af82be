package httpcore

import (
	"crypto/x509"
	"sync"

	"github.com/google/uuid"

	dctx "github.com/nabbar/htloop/context"
	"github.com/nabbar/htloop/logger"
	"github.com/nabbar/htloop/netstream"
	"github.com/nabbar/htloop/reactor"
)

// State is one point in the Connection lifecycle.
type State uint8

const (
	AwaitingHeaders State = iota
	AwaitingBody
	Dispatched
	Finishing
	Closed
)

func (s State) String() string {
	switch s {
	case AwaitingHeaders:
		return "AwaitingHeaders"
	case AwaitingBody:
		return "AwaitingBody"
	case Dispatched:
		return "Dispatched"
	case Finishing:
		return "Finishing"
	case Closed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// Connection drives HTTP/1.x parsing over one accepted Stream: header read,
// optional body read, dispatch to the callback, keep-alive decision, loop
// or close. At most one Request is in flight at a time.
type Connection struct {
	id      string
	stream  netstream.Stream
	re      reactor.Reactor
	cfg     *Config
	log     logger.Logger
	rec     Recorder
	dctxRoot dctx.Scope[string]

	mu              sync.Mutex
	state           State
	req             *Request
	requestFinished bool
	idleTimer       reactor.CancelHandle
	remoteIP        string
}

// ID returns the unique identifier assigned to this connection at
// construction, stable for its lifetime. Useful for correlating log lines
// and metrics samples with a single underlying socket.
func (c *Connection) ID() string {
	return c.id
}

// NewConnection constructs a Connection over stream. rec may be nil. dc may
// be nil, in which case an empty root scope is used so Clone still works.
func NewConnection(stream netstream.Stream, re reactor.Reactor, cfg *Config, log logger.Logger, dc dctx.Scope[string], rec Recorder) *Connection {
	if dc == nil {
		dc = dctx.New[string](nil)
	}
	if log == nil {
		log = logger.NewDiscard()
	}

	host, _, _ := splitHostPort(stream.RemoteAddr().String())
	stream.SetMaxBufferSize(maxHeaderLine)

	c := &Connection{
		id:       uuid.NewString(),
		stream:   stream,
		re:       re,
		cfg:      cfg,
		log:      log,
		rec:      rec,
		dctxRoot: dc,
		remoteIP: host,
	}

	return c
}

// Start schedules the first header read. Call once per Connection.
func (c *Connection) Start() {
	c.record(Recorder.ConnectionAccepted)
	c.armIdleTimer()
	c.readHeaders()
}

func (c *Connection) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Connection) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Connection) write(p []byte) error {
	if c.stream.Closed() {
		return nil
	}
	_, err := c.stream.Write(p)
	return err
}

func (c *Connection) peerCertificate() *x509.Certificate {
	if !c.stream.TLS() {
		return nil
	}
	return c.stream.PeerCertificate()
}

func (c *Connection) close() {
	c.setState(Closed)
	c.cancelIdleTimer()
	_ = c.stream.Close()
	c.record(Recorder.ConnectionClosed)
}
