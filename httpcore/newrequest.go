package httpcore

import (
	"net/url"
	"strings"
	"time"
)

func (c *Connection) newRequest(method, uri, version string, headers Header) *Request {
	path, query := splitURI(uri)

	r := &Request{
		Method:    method,
		URI:       uri,
		Version:   version,
		Headers:   headers,
		Path:      path,
		Query:     query,
		Arguments: make(Arguments),
		Files:     make(Files),
		conn:      c,
		startTime: time.Now(),
	}

	c.resolveRemoteAndProtocol(r)
	r.Host = r.Headers.GetDefault("Host", "127.0.0.1")

	mergeQueryArguments(r.Arguments, query)

	return r
}

func splitURI(uri string) (path, query string) {
	i := strings.IndexByte(uri, '?')
	if i < 0 {
		return uri, ""
	}
	return uri[:i], uri[i+1:]
}

func (c *Connection) resolveRemoteAndProtocol(r *Request) {
	if c.cfg.XHeaders {
		r.RemoteIP = firstNonEmpty(r.Headers.Get("X-Real-Ip"), r.Headers.Get("X-Forwarded-For"), c.remoteIP)

		scheme := firstNonEmpty(r.Headers.Get("X-Scheme"), r.Headers.Get("X-Forwarded-Proto"), protocolFor(c))
		if scheme != "http" && scheme != "https" {
			scheme = "http"
		}
		r.Protocol = scheme
		return
	}

	r.RemoteIP = c.remoteIP
	r.Protocol = protocolFor(c)
}

func protocolFor(c *Connection) string {
	if c.stream.TLS() {
		return "https"
	}
	return "http"
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// mergeQueryArguments decodes a form-encoded query string into dst, dropping
// empty values, extending any existing entries rather than replacing them.
func mergeQueryArguments(dst Arguments, raw string) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return
	}
	for k, vs := range values {
		for _, v := range vs {
			if v == "" {
				continue
			}
			dst[k] = append(dst[k], v)
		}
	}
}
