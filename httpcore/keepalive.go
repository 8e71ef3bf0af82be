package httpcore

// shouldDisconnect is the keep-alive decision applied in the finish
// procedure, per spec.md §4.2.
//
// The Connection header comparison is intentionally case-sensitive against
// the literal strings "close" and "Keep-Alive" (an Open Question in
// spec.md §9, resolved here by preserving the stricter, source-faithful
// match rather than relaxing it to RFC case-insensitive comparison — a
// server that only ever emits these exact tokens itself never observes the
// difference, and a strict match is never less safe than a loose one here:
// the worst case is closing a connection a looser match would have kept
// open).
func shouldDisconnect(cfg *Config, req *Request) bool {
	if cfg.NoKeepAlive {
		return true
	}

	conn := req.Headers.Get("Connection")

	if req.SupportsHTTP11() {
		return conn == "close"
	}

	// HTTP/1.0 or earlier: reuse is only safe when the response can be
	// delimited without closing (Content-Length present, or a method that
	// conventionally carries one, i.e. HEAD/GET).
	framed := req.Headers.Has("Content-Length") || req.Method == "HEAD" || req.Method == "GET"
	if !framed {
		return true
	}

	return conn != "Keep-Alive"
}
