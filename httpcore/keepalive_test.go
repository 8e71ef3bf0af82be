package httpcore

import "testing"

func reqWith(version, method string, headers map[string]string) *Request {
	h := NewHeader()
	for k, v := range headers {
		h.Set(k, v)
	}
	return &Request{Method: method, Version: version, Headers: h}
}

func TestKeepAliveHTTP11ClosesOnConnectionClose(t *testing.T) {
	cfg := &Config{}
	r := reqWith("HTTP/1.1", "GET", map[string]string{"Connection": "close"})

	if !shouldDisconnect(cfg, r) {
		t.Fatalf("HTTP/1.1 with Connection: close should disconnect")
	}
}

func TestKeepAliveHTTP11StaysOpenByDefault(t *testing.T) {
	cfg := &Config{}
	r := reqWith("HTTP/1.1", "GET", nil)

	if shouldDisconnect(cfg, r) {
		t.Fatalf("HTTP/1.1 without Connection: close should stay open")
	}
}

func TestKeepAliveHTTP10GetExemptionHonorsKeepAlive(t *testing.T) {
	cfg := &Config{}
	r := reqWith("HTTP/1.0", "GET", map[string]string{"Connection": "Keep-Alive"})

	if shouldDisconnect(cfg, r) {
		t.Fatalf("HTTP/1.0 GET with Connection: Keep-Alive should stay open")
	}
}

func TestKeepAliveHTTP10WithoutExemptionAlwaysCloses(t *testing.T) {
	cfg := &Config{}
	r := reqWith("HTTP/1.0", "POST", map[string]string{"Connection": "Keep-Alive"})

	if !shouldDisconnect(cfg, r) {
		t.Fatalf("HTTP/1.0 POST without Content-Length should disconnect unconditionally")
	}
}

func TestKeepAliveHTTP10ContentLengthExemption(t *testing.T) {
	cfg := &Config{}
	r := reqWith("HTTP/1.0", "POST", map[string]string{
		"Content-Length": "0",
		"Connection":     "Keep-Alive",
	})

	if shouldDisconnect(cfg, r) {
		t.Fatalf("HTTP/1.0 POST with Content-Length and Connection: Keep-Alive should stay open")
	}
}

func TestNoKeepAliveForcesDisconnect(t *testing.T) {
	cfg := &Config{NoKeepAlive: true}
	r := reqWith("HTTP/1.1", "GET", nil)

	if !shouldDisconnect(cfg, r) {
		t.Fatalf("NoKeepAlive should always disconnect")
	}
}

func TestKeepAliveCaseSensitiveMatch(t *testing.T) {
	cfg := &Config{}
	r := reqWith("HTTP/1.1", "GET", map[string]string{"Connection": "Close"})

	if shouldDisconnect(cfg, r) {
		t.Fatalf("Connection: Close (wrong case) must not match the literal \"close\"")
	}
}
