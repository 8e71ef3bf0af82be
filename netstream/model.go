package netstream

import (
	"bufio"
	"crypto/tls"
	"crypto/x509"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

type stream struct {
	conn net.Conn
	buf  *bufio.Reader

	mu      sync.Mutex
	maxSize int

	closed  int32
	writing int32
}

func newStream(conn net.Conn, maxBufferSize int) *stream {
	if maxBufferSize <= 0 {
		maxBufferSize = 64 * 1024
	}

	return &stream{
		conn:    conn,
		buf:     bufio.NewReader(conn),
		maxSize: maxBufferSize,
	}
}

func (s *stream) MaxBufferSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxSize
}

func (s *stream) SetMaxBufferSize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n > 0 {
		s.maxSize = n
	}
}

func (s *stream) Closed() bool {
	return atomic.LoadInt32(&s.closed) == 1
}

func (s *stream) Writing() bool {
	return atomic.LoadInt32(&s.writing) == 1
}

func (s *stream) Close() error {
	if !atomic.CompareAndSwapInt32(&s.closed, 0, 1) {
		return nil
	}
	return s.conn.Close()
}

func (s *stream) LocalAddr() net.Addr  { return s.conn.LocalAddr() }
func (s *stream) RemoteAddr() net.Addr { return s.conn.RemoteAddr() }

func (s *stream) SetDeadline(t time.Time) error {
	return s.conn.SetDeadline(t)
}

func (s *stream) TLS() bool {
	_, ok := s.conn.(*tls.Conn)
	return ok
}

func (s *stream) PeerCertificate() *x509.Certificate {
	c, ok := s.conn.(*tls.Conn)
	if !ok {
		return nil
	}

	st := c.ConnectionState()
	if len(st.PeerCertificates) == 0 {
		return nil
	}

	return st.PeerCertificates[0]
}
