/*
MIT License

Copyright (c) 2019 Nicolas JUHEL

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package config

import (
	"time"

	libval "github.com/go-playground/validator/v10"

	"github.com/nabbar/htloop/certificates"
	"github.com/nabbar/htloop/duration"
	liberr "github.com/nabbar/htloop/errors"
	"github.com/nabbar/htloop/httpcore"
)

// ServerConfig is the serializable configuration for one Server: the
// addresses it binds, the optional TLS bag for those addresses, and the
// httpcore behavioral knobs (keep-alive, xheaders, idle timeout, buffer
// bound). RequestCallback is not serializable and must be set through
// WithRequestCallback, or through SetRequestCallback after Load.
type ServerConfig struct {
	// Name identifies this server among several in one process (log lines,
	// metrics namespace). If empty, Listen is used.
	Name string `mapstructure:"name" json:"name" yaml:"name" toml:"name"`

	// Listen is the address to bind, e.g. "0.0.0.0:8080".
	Listen string `mapstructure:"listen" json:"listen" yaml:"listen" toml:"listen" validate:"required,hostname_port"`

	// Processes is the number of worker processes start(n) should fork via
	// a ProcessForker. Zero or one means single-process.
	Processes int `mapstructure:"processes" json:"processes" yaml:"processes" toml:"processes" validate:"gte=0"`

	// NoKeepAlive forces every connection to close after one request.
	NoKeepAlive bool `mapstructure:"no_keep_alive" json:"no_keep_alive" yaml:"no_keep_alive" toml:"no_keep_alive"`

	// XHeaders honors X-Real-Ip/X-Forwarded-For/X-Scheme/X-Forwarded-Proto.
	XHeaders bool `mapstructure:"xheaders" json:"xheaders" yaml:"xheaders" toml:"xheaders"`

	// ConnectionTimeout is the idle-timeout duration; zero disables reaping.
	// Accepts any string time.ParseDuration accepts, e.g. "90s" or "5m",
	// optionally preceded by a day count, e.g. "1d12h".
	ConnectionTimeout duration.Duration `mapstructure:"connection_timeout" json:"connection_timeout" yaml:"connection_timeout" toml:"connection_timeout"`

	// MaxBufferSize bounds Content-Length. Header lines are bounded
	// separately by httpcore's fixed 8 KiB header budget.
	MaxBufferSize int `mapstructure:"max_buffer_size" json:"max_buffer_size" yaml:"max_buffer_size" toml:"max_buffer_size" validate:"gte=0"`

	// TLS is the TLS bag for this server's listen address. Zero value (no
	// Certs) means plaintext.
	TLS certificates.Config `mapstructure:"tls" json:"tls" yaml:"tls" toml:"tls"`

	requestCallback func(*httpcore.Request)
}

// Option mutates a ServerConfig being built. See WithRequestCallback and
// friends.
type Option func(*ServerConfig)

// New builds a ServerConfig from a listen address and any number of options,
// in the teacher's functional-option style (httpserver/serverOpt.go).
func New(listen string, opts ...Option) *ServerConfig {
	c := &ServerConfig{Listen: listen}
	for _, o := range opts {
		o(c)
	}
	return c
}

func WithName(name string) Option {
	return func(c *ServerConfig) { c.Name = name }
}

func WithRequestCallback(fn func(*httpcore.Request)) Option {
	return func(c *ServerConfig) { c.requestCallback = fn }
}

func WithNoKeepAlive(v bool) Option {
	return func(c *ServerConfig) { c.NoKeepAlive = v }
}

func WithXHeaders(v bool) Option {
	return func(c *ServerConfig) { c.XHeaders = v }
}

func WithConnectionTimeout(d time.Duration) Option {
	return func(c *ServerConfig) { c.ConnectionTimeout = duration.ParseDuration(d) }
}

func WithMaxBufferSize(n int) Option {
	return func(c *ServerConfig) { c.MaxBufferSize = n }
}

func WithProcesses(n int) Option {
	return func(c *ServerConfig) { c.Processes = n }
}

func WithTLS(tls certificates.Config) Option {
	return func(c *ServerConfig) { c.TLS = tls }
}

// RequestCallback returns the configured callback, or a panic-on-call stub
// if none was set: a ServerConfig with no callback is a configuration error
// that should surface loudly at Server construction, not as a silent drop
// of every request.
func (c *ServerConfig) RequestCallback() func(*httpcore.Request) {
	if c.requestCallback != nil {
		return c.requestCallback
	}
	return func(*httpcore.Request) {
		panic("config: ServerConfig has no RequestCallback set")
	}
}

// SetRequestCallback assigns the callback after construction, used by Load
// since the callback is not a serializable field.
func (c *ServerConfig) SetRequestCallback(fn func(*httpcore.Request)) {
	c.requestCallback = fn
}

// IsTLS reports whether this config carries at least one certificate pair.
func (c *ServerConfig) IsTLS() bool {
	return len(c.TLS.Certs) > 0
}

// Validate checks the struct tags and, if TLS is configured, delegates to
// certificates.Config.Validate.
func (c *ServerConfig) Validate() liberr.Error {
	if e := libval.New().Struct(c); e != nil {
		return liberr.New(liberr.MalformedRequest, e)
	}

	if c.IsTLS() {
		if e := c.TLS.Validate(); e != nil {
			return e
		}
	}

	if c.requestCallback == nil {
		return liberr.New(liberr.MalformedRequest)
	}

	return nil
}

// HTTPCoreConfig projects this ServerConfig onto the narrower httpcore.Config
// a Connection actually needs.
func (c *ServerConfig) HTTPCoreConfig() *httpcore.Config {
	return &httpcore.Config{
		RequestCallback:   c.RequestCallback(),
		NoKeepAlive:       c.NoKeepAlive,
		XHeaders:          c.XHeaders,
		ConnectionTimeout: c.ConnectionTimeout.Time(),
		MaxBufferSize:     c.MaxBufferSize,
	}
}
