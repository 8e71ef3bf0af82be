package listener

import (
	"crypto/tls"
	"net"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	liberr "github.com/nabbar/htloop/errors"
)

// Start launches one accept loop per bound socket, fanned out through an
// errgroup.Group so a hard accept failure on any one socket (as opposed to
// the ordinary Accept-after-Stop case) surfaces through the group instead of
// vanishing in a detached goroutine.
func (l *listener) Start(handler Handler) error {
	l.mu.Lock()
	sockets := append([]net.Listener(nil), l.lst...)
	tlsCfg := l.tls
	l.mu.Unlock()

	atomic.StoreInt32(&l.run, 1)

	grp := &errgroup.Group{}
	for _, ln := range sockets {
		s := ln
		grp.Go(func() error {
			return l.acceptLoop(s, tlsCfg, handler)
		})
	}

	l.mu.Lock()
	l.grp = grp
	l.mu.Unlock()

	return nil
}

func (l *listener) acceptLoop(ln net.Listener, tlsCfg *tls.Config, handler Handler) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-l.stop:
				return nil
			default:
			}

			l.log.Error("accept failed on %s: %v", nil, ln.Addr().String(), err)
			return err
		}

		l.Track()
		go func() {
			defer l.Untrack()

			if tlsCfg != nil {
				conn = l.handshake(conn, tlsCfg)
				if conn == nil {
					return
				}
			}

			handler(conn)
		}()
	}
}

// handshake performs the TLS handshake on an accepted connection up front
// (deferred only until its own goroutine, not until the connection's first
// HTTP read), so a handshake failure is classified and handled here rather
// than surfacing later as an ordinary httpcore read error. Returns nil (and
// has already closed conn) if the handshake failed; otherwise returns the
// now-handshaked *tls.Conn in conn's place.
func (l *listener) handshake(conn net.Conn, cfg *tls.Config) net.Conn {
	tconn := tls.Server(conn, cfg)

	if err := tconn.Handshake(); err != nil {
		code := liberr.ClassifyTLS(err)
		e := liberr.New(code, err)
		if !liberr.IsSilentTLS(code) {
			l.log.Error("tls handshake failed from %s: %v", nil, conn.RemoteAddr().String(), e)
		}
		_ = conn.Close()
		return nil
	}

	return tconn
}

func (l *listener) Stop() error {
	atomic.StoreInt32(&l.run, 0)

	select {
	case <-l.stop:
	default:
		close(l.stop)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var first error
	for _, ln := range l.lst {
		if err := ln.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}
