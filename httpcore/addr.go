package httpcore

import "net"

// splitHostPort is net.SplitHostPort with a fallback: some accepted
// connections (e.g. a UNIX domain socket's Addr) have no "host:port" shape.
// Per spec.md §4.1, such peers get a synthetic ("0.0.0.0", 0) address.
func splitHostPort(addr string) (host string, port string, ok bool) {
	h, p, err := net.SplitHostPort(addr)
	if err != nil {
		return "0.0.0.0", "0", false
	}
	return h, p, true
}
