package httpcore

import "time"

// DisabledTimeout is the connection_timeout sentinel meaning "never reap an
// idle keep-alive connection".
const DisabledTimeout = -1 * time.Second

// Config is the subset of server configuration a Connection needs. It is
// intentionally narrower than the embedding config.ServerConfig: a Connection
// does not know about listen addresses or TLS certificate files, only the
// behavioral knobs spec.md assigns to this layer.
type Config struct {
	// RequestCallback is invoked with each parsed Request. Required.
	RequestCallback func(*Request)
	// NoKeepAlive forces every connection to close after one request.
	NoKeepAlive bool
	// XHeaders honors X-Real-Ip/X-Forwarded-For/X-Scheme/X-Forwarded-Proto.
	XHeaders bool
	// ConnectionTimeout is the idle-timeout duration; DisabledTimeout
	// (the zero value maps to it via NormalizedTimeout) disables reaping.
	ConnectionTimeout time.Duration
	// MaxBufferSize bounds Content-Length. Header lines and the header
	// block are bounded by maxHeaderLine instead.
	MaxBufferSize int
}

// NormalizedTimeout returns cfg.ConnectionTimeout, or DisabledTimeout if the
// zero value was left unset (a Config literal with no explicit timeout must
// not silently reap every idle connection after 0s).
func (cfg *Config) NormalizedTimeout() time.Duration {
	if cfg.ConnectionTimeout == 0 {
		return DisabledTimeout
	}
	return cfg.ConnectionTimeout
}
