package listener

import (
	"context"
	"crypto/tls"
	"net"
	"sync"
	"testing"
	"time"
)

func TestBindStartAcceptsConnections(t *testing.T) {
	l := New()
	if err := l.Bind("127.0.0.1:0"); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	var (
		mu   sync.Mutex
		seen int
	)
	if err := l.Start(func(conn net.Conn) {
		mu.Lock()
		seen++
		mu.Unlock()
		conn.Close()
	}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer l.Stop()

	addr := l.(*listener).lst[0].Addr().String()

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	conn.Close()

	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	got := seen
	mu.Unlock()

	if got != 1 {
		t.Fatalf("handler invoked %d times, want 1", got)
	}
}

func TestIsRunningReflectsStartStop(t *testing.T) {
	l := New()
	if l.IsRunning() {
		t.Fatalf("IsRunning() = true before Start")
	}

	if err := l.Bind("127.0.0.1:0"); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if err := l.Start(func(net.Conn) {}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !l.IsRunning() {
		t.Fatalf("IsRunning() = false after Start")
	}

	l.Stop()
	if l.IsRunning() {
		t.Fatalf("IsRunning() = true after Stop")
	}
}

func TestShutdownWaitsForTrackedConnections(t *testing.T) {
	l := New()
	if err := l.Bind("127.0.0.1:0"); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	release := make(chan struct{})
	if err := l.Start(func(conn net.Conn) {
		<-release
		conn.Close()
	}); err != nil {
		t.Fatalf("Start: %v", err)
	}

	addr := l.(*listener).lst[0].Addr().String()
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	time.Sleep(20 * time.Millisecond)
	close(release)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := l.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}

func TestAddSocketsRegistersExternallyBoundListener(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen: %v", err)
	}

	l := New()
	if err := l.AddSockets(ln); err != nil {
		t.Fatalf("AddSockets: %v", err)
	}

	var (
		mu   sync.Mutex
		seen int
	)
	if err := l.Start(func(conn net.Conn) {
		mu.Lock()
		seen++
		mu.Unlock()
		conn.Close()
	}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer l.Stop()

	conn, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	conn.Close()

	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	got := seen
	mu.Unlock()

	if got != 1 {
		t.Fatalf("handler invoked %d times, want 1", got)
	}
}

func TestTLSHandshakeEOFClosesSilentlyWithoutDispatch(t *testing.T) {
	l := New()
	if err := l.Bind("127.0.0.1:0"); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	l.SetTLS(&tls.Config{})

	called := make(chan struct{}, 1)
	if err := l.Start(func(net.Conn) { called <- struct{}{} }); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer l.Stop()

	addr := l.(*listener).lst[0].Addr().String()
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	// Close immediately without sending a ClientHello: the server's
	// handshake read hits EOF, which must be a silent close, not a
	// dispatch to handler.
	conn.Close()

	select {
	case <-called:
		t.Fatalf("handler should not run when the TLS handshake never completes")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestTLSHandshakeGarbageIsClassifiedOtherAndClosed(t *testing.T) {
	l := New()
	if err := l.Bind("127.0.0.1:0"); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	l.SetTLS(&tls.Config{})

	called := make(chan struct{}, 1)
	if err := l.Start(func(net.Conn) { called <- struct{}{} }); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer l.Stop()

	addr := l.(*listener).lst[0].Addr().String()
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	// Not a TLS record at all: the handshake fails with a non-EOF,
	// non-reset error, classified TLSOther, logged, and closed — the
	// listener itself must stay healthy for other connections.
	conn.Write([]byte("not a tls client hello"))

	select {
	case <-called:
		t.Fatalf("handler should not run for a failed TLS handshake")
	case <-time.After(100 * time.Millisecond):
	}

	if !l.IsRunning() {
		t.Fatalf("listener should remain running after one failed handshake")
	}
}

func TestPortInUseDetectsBoundAddress(t *testing.T) {
	l := New()
	if err := l.Bind("127.0.0.1:0"); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if err := l.Start(func(net.Conn) {}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer l.Stop()

	addr := l.(*listener).lst[0].Addr().String()

	other := New()
	if err := other.PortInUse(addr); err == nil {
		t.Fatalf("PortInUse(%s) = nil, want an error for a bound address", addr)
	}
}
