package netstream

import (
	"crypto/x509"
	"net"
	"time"
)

// Stream is a buffered, bounded wrapper around one accepted connection.
// All methods are safe to call from a single goroutine at a time; Close may
// be called concurrently with a pending Read/Write to unblock it.
type Stream interface {
	// ReadUntil reads until delim is found (inclusive) or MaxBufferSize is
	// exceeded, in which case it returns errors.New(errors.MalformedRequest).
	ReadUntil(delim byte) ([]byte, error)
	// ReadExactly reads exactly n bytes, or returns the short read error
	// from the underlying connection (typically io.ErrUnexpectedEOF).
	ReadExactly(n int) ([]byte, error)
	// Write writes p to the connection. Writing reports true for the
	// duration of the call so the idle timer and the finish procedure can
	// tell a write is in flight.
	Write(p []byte) (int, error)
	// Close closes the underlying connection. Close is idempotent.
	Close() error
	// Closed reports whether Close has run.
	Closed() bool
	// Writing reports whether a Write call is currently in flight.
	Writing() bool

	// MaxBufferSize returns the current ReadUntil budget in bytes.
	MaxBufferSize() int
	// SetMaxBufferSize changes the ReadUntil budget in bytes.
	SetMaxBufferSize(n int)

	// TLS reports whether the underlying connection is a *tls.Conn.
	TLS() bool
	// PeerCertificate returns the client's leaf certificate for a TLS
	// stream with a verified client certificate, or nil otherwise.
	PeerCertificate() *x509.Certificate

	LocalAddr() net.Addr
	RemoteAddr() net.Addr

	// SetDeadline arms (or, with the zero Time, disarms) a hard deadline
	// on the underlying socket. The idle timeout in httpcore does not use
	// it: it closes the stream instead.
	SetDeadline(t time.Time) error
}

// New wraps conn into a Stream with the given initial ReadUntil budget.
func New(conn net.Conn, maxBufferSize int) Stream {
	return newStream(conn, maxBufferSize)
}
