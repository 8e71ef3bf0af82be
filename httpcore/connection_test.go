package httpcore

import (
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/nabbar/htloop/netstream"
)

func newTestConnection(t *testing.T, cfg *Config, onRequest func(*Request)) (client net.Conn, done chan struct{}) {
	t.Helper()

	client, server := net.Pipe()

	cfg.RequestCallback = onRequest
	if cfg.MaxBufferSize == 0 {
		cfg.MaxBufferSize = 4096
	}

	stream := netstream.New(server, 4096)
	conn := NewConnection(stream, nil, cfg, nil, nil, nil)

	done = make(chan struct{})
	go func() {
		conn.Start()
		close(done)
	}()

	return client, done
}

func TestSimpleGetDispatchesOnce(t *testing.T) {
	seen := make(chan *Request, 1)
	client, _ := newTestConnection(t, &Config{NoKeepAlive: true}, func(r *Request) {
		seen <- r
		r.Finish()
	})
	defer client.Close()

	client.Write([]byte("GET /index HTTP/1.1\r\nHost: x\r\n\r\n"))

	select {
	case r := <-seen:
		if r.Method != "GET" || r.URI != "/index" || r.Version != "HTTP/1.1" || r.Host != "x" {
			t.Fatalf("unexpected request: %+v", r)
		}
	case <-time.After(time.Second):
		t.Fatalf("handler never invoked")
	}
}

func TestQueryArgumentsDropEmptyValues(t *testing.T) {
	seen := make(chan *Request, 1)
	client, _ := newTestConnection(t, &Config{NoKeepAlive: true}, func(r *Request) {
		seen <- r
		r.Finish()
	})
	defer client.Close()

	client.Write([]byte("GET /q?a=1&a=2&b=&c=3 HTTP/1.1\r\nHost: x\r\n\r\n"))

	select {
	case r := <-seen:
		if len(r.Arguments["a"]) != 2 || r.Arguments["a"][0] != "1" || r.Arguments["a"][1] != "2" {
			t.Fatalf("a = %v", r.Arguments["a"])
		}
		if _, ok := r.Arguments["b"]; ok {
			t.Fatalf("b should be dropped (empty value)")
		}
		if len(r.Arguments["c"]) != 1 || r.Arguments["c"][0] != "3" {
			t.Fatalf("c = %v", r.Arguments["c"])
		}
	case <-time.After(time.Second):
		t.Fatalf("handler never invoked")
	}
}

func TestPostFormURLEncodedBody(t *testing.T) {
	seen := make(chan *Request, 1)
	client, _ := newTestConnection(t, &Config{NoKeepAlive: true}, func(r *Request) {
		seen <- r
		r.Finish()
	})
	defer client.Close()

	body := "a=1&b=2&c="
	req := "POST /p HTTP/1.1\r\nHost: x\r\nContent-Type: application/x-www-form-urlencoded\r\nContent-Length: " +
		strconv.Itoa(len(body)) + "\r\n\r\n" + body

	go client.Write([]byte(req))

	select {
	case r := <-seen:
		if string(r.Body) != body {
			t.Fatalf("Body = %q", r.Body)
		}
		if len(r.Arguments["a"]) != 1 || r.Arguments["a"][0] != "1" {
			t.Fatalf("a = %v", r.Arguments["a"])
		}
		if len(r.Arguments["b"]) != 1 || r.Arguments["b"][0] != "2" {
			t.Fatalf("b = %v", r.Arguments["b"])
		}
		if _, ok := r.Arguments["c"]; ok {
			t.Fatalf("c should be dropped (empty value)")
		}
	case <-time.After(time.Second):
		t.Fatalf("handler never invoked")
	}
}

func TestOversizedContentLengthIsMalformed(t *testing.T) {
	called := make(chan struct{}, 1)
	client, done := newTestConnection(t, &Config{MaxBufferSize: 4}, func(r *Request) {
		called <- struct{}{}
		r.Finish()
	})
	defer client.Close()

	go client.Write([]byte("POST /p HTTP/1.1\r\nHost: x\r\nContent-Length: 1000\r\n\r\n"))

	select {
	case <-called:
		t.Fatalf("handler should not run for an oversized Content-Length")
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("connection never closed")
	}
}

func TestManySmallHeadersExceedingTotalSizeIsMalformed(t *testing.T) {
	called := make(chan struct{}, 1)
	client, done := newTestConnection(t, &Config{}, func(r *Request) {
		called <- struct{}{}
		r.Finish()
	})
	defer client.Close()

	var req strings.Builder
	req.WriteString("GET / HTTP/1.1\r\n")
	// Each header line is well under maxHeaderLine on its own, but the
	// cumulative header block is not.
	line := "X-Pad: " + strings.Repeat("a", 100) + "\r\n"
	for i := 0; i*len(line) < maxHeaderLine+len(line); i++ {
		req.WriteString(line)
	}
	req.WriteString("\r\n")

	go client.Write([]byte(req.String()))

	select {
	case <-called:
		t.Fatalf("handler should not run once the cumulative header block exceeds maxHeaderLine")
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("connection never closed")
	}
}

func TestMalformedRequestLineClosesWithoutDispatch(t *testing.T) {
	called := make(chan struct{}, 1)
	client, done := newTestConnection(t, &Config{}, func(r *Request) {
		called <- struct{}{}
		r.Finish()
	})
	defer client.Close()

	go client.Write([]byte("NOT A REQUEST LINE AT ALL\r\n\r\n"))

	select {
	case <-called:
		t.Fatalf("handler should not run for a malformed request line")
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("connection never closed")
	}
}

func TestKeepAliveSequentialRequestsOnOneConnection(t *testing.T) {
	count := make(chan int, 2)
	n := 0
	client, _ := newTestConnection(t, &Config{}, func(r *Request) {
		n++
		count <- n
		r.Finish()
	})
	defer client.Close()

	go client.Write([]byte("GET /a HTTP/1.1\r\nHost: x\r\n\r\n"))
	<-count

	go client.Write([]byte("GET /b HTTP/1.1\r\nHost: x\r\n\r\n"))

	select {
	case got := <-count:
		if got != 2 {
			t.Fatalf("expected 2 dispatches on one keep-alive connection, got %d", got)
		}
	case <-time.After(time.Second):
		t.Fatalf("second request on keep-alive connection never dispatched")
	}
}

func TestDiagnosticContextDoesNotLeakAcrossKeepAliveRequests(t *testing.T) {
	results := make(chan bool, 2)
	first := true
	client, _ := newTestConnection(t, &Config{}, func(r *Request) {
		if first {
			r.DiagnosticContext.Store("trace-id", "req-1")
			first = false
		} else {
			_, leaked := r.DiagnosticContext.Load("trace-id")
			results <- !leaked
		}
		r.Finish()
	})
	defer client.Close()

	go client.Write([]byte("GET /a HTTP/1.1\r\nHost: x\r\n\r\n"))
	time.Sleep(20 * time.Millisecond)
	go client.Write([]byte("GET /b HTTP/1.1\r\nHost: x\r\n\r\n"))

	select {
	case clean := <-results:
		if !clean {
			t.Fatalf("trace-id set during request 1 leaked into request 2's diagnostic context")
		}
	case <-time.After(time.Second):
		t.Fatalf("second request never dispatched")
	}
}

func TestXHeadersOverridesRemoteIPAndNormalizesProtocol(t *testing.T) {
	seen := make(chan *Request, 1)
	client, _ := newTestConnection(t, &Config{NoKeepAlive: true, XHeaders: true}, func(r *Request) {
		seen <- r
		r.Finish()
	})
	defer client.Close()

	go client.Write([]byte("GET / HTTP/1.1\r\nHost: x\r\nX-Real-Ip: 10.0.0.1\r\nX-Scheme: ftp\r\n\r\n"))

	select {
	case r := <-seen:
		if r.RemoteIP != "10.0.0.1" {
			t.Fatalf("RemoteIP = %q, want 10.0.0.1", r.RemoteIP)
		}
		if r.Protocol != "http" {
			t.Fatalf("Protocol = %q, want http (invalid X-Scheme normalized)", r.Protocol)
		}
	case <-time.After(time.Second):
		t.Fatalf("handler never invoked")
	}
}
