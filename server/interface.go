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

package server

import (
	"context"
	"net"

	"github.com/nabbar/htloop/config"
	"github.com/nabbar/htloop/logger"
	"github.com/nabbar/htloop/metrics"
)

// Server is the top-level, externally constructed object: one listen
// address, driven entirely by the httpcore Connection state machine.
type Server interface {
	// Start binds the configured address (then, if Config().Processes > 1,
	// forks Processes-1 worker processes that inherit the bound socket) and
	// begins accepting connections.
	Start() error

	// Stop closes the listening sockets without waiting for in-flight
	// connections to finish.
	Stop() error

	// Shutdown stops accepting new connections and waits for in-flight
	// connections to drain, or until ctx is done.
	Shutdown(ctx context.Context) error

	// WaitNotify blocks until SIGINT/SIGTERM/SIGQUIT, then calls Shutdown.
	WaitNotify()

	// IsRunning reports whether Start has run and Stop/Shutdown has not.
	IsRunning() bool

	// PortInUse reports whether the configured address is already bound.
	PortInUse() error

	// Addrs returns the bound socket addresses, useful after Start when
	// Config().Listen ends in ":0".
	Addrs() []net.Addr

	Config() *config.ServerConfig
}

// New builds a Server from cfg. met and log may be nil (metrics disabled,
// discard logging).
func New(cfg *config.ServerConfig, met metrics.Recorder, log logger.Logger) Server {
	return newServer(cfg, met, log)
}
