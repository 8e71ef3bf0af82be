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
	"os"

	"github.com/nabbar/htloop/config"
	"github.com/nabbar/htloop/forker"
	"github.com/nabbar/htloop/httpcore"
	"github.com/nabbar/htloop/listener"
	"github.com/nabbar/htloop/logger"
	"github.com/nabbar/htloop/metrics"
	"github.com/nabbar/htloop/netstream"
	"github.com/nabbar/htloop/reactor"
)

type srv struct {
	cfg *config.ServerConfig
	lst listener.Listener
	re  reactor.Reactor
	met metrics.Recorder
	log logger.Logger
	frk forker.ProcessForker
}

func newServer(cfg *config.ServerConfig, met metrics.Recorder, log logger.Logger) *srv {
	if log == nil {
		log = logger.NewDiscard()
	}

	return &srv{
		cfg: cfg,
		lst: listener.New(),
		re:  reactor.New(),
		met: met,
		log: log,
		frk: forker.New(),
	}
}

func (s *srv) Config() *config.ServerConfig {
	return s.cfg
}

func (s *srv) Addrs() []net.Addr {
	return s.lst.Addrs()
}

func (s *srv) IsRunning() bool {
	return s.lst.IsRunning()
}

func (s *srv) PortInUse() error {
	return s.lst.PortInUse(s.cfg.Listen)
}

func (s *srv) WaitNotify() {
	s.lst.WaitNotify()
}

func (s *srv) Stop() error {
	s.re.Stop()
	return s.lst.Stop()
}

func (s *srv) Shutdown(ctx context.Context) error {
	s.re.Stop()
	return s.lst.Shutdown(ctx)
}

// adoptOrBind either adopts the listening sockets inherited from a parent
// (this process was started by ProcessForker, see forker.ChildIndex) or
// binds the configured address fresh and, if Processes > 1, forks the
// remaining worker processes to share it.
func (s *srv) adoptOrBind() error {
	if idx := forker.ChildIndex(); idx >= 0 {
		f := os.NewFile(3, "htloop-inherited-listener")
		return s.lst.AdoptFiles([]*os.File{f})
	}

	if err := s.lst.Bind(s.cfg.Listen); err != nil {
		return err
	}

	if s.cfg.Processes > 1 {
		files, err := s.lst.Files()
		if err != nil {
			return err
		}
		if err := s.frk.Fork(s.cfg.Processes-1, files); err != nil {
			return err
		}
	}

	return nil
}

func (s *srv) Start() error {
	if err := s.cfg.Validate(); err != nil {
		return err
	}

	if err := s.adoptOrBind(); err != nil {
		return err
	}

	if s.cfg.IsTLS() {
		tlsCfg, err := s.cfg.TLS.New().Build()
		if err != nil {
			return err
		}
		s.lst.SetTLS(tlsCfg)
	}

	s.re.Start()

	return s.lst.Start(s.handleConn)
}

func (s *srv) handleConn(conn net.Conn) {
	stream := netstream.New(conn, s.cfg.MaxBufferSize)
	c := httpcore.NewConnection(stream, s.re, s.cfg.HTTPCoreConfig(), s.log, nil, s.recorder())
	c.Start()
}

func (s *srv) recorder() httpcore.Recorder {
	if s.met == nil {
		return nil
	}
	return s.met
}
