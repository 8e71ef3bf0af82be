package listener

import (
	"crypto/tls"
	"net"
	"os"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	liblog "github.com/nabbar/htloop/logger"
)

type listener struct {
	mu   sync.Mutex
	tls  *tls.Config
	lst  []net.Listener
	run  int32
	inf  sync.WaitGroup
	stop chan struct{}
	log  liblog.Logger
	grp  *errgroup.Group
}

func newListener() *listener {
	return &listener{
		stop: make(chan struct{}),
		log:  liblog.New(),
	}
}

func (l *listener) SetTLS(cfg *tls.Config) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tls = cfg
}

func (l *listener) Bind(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.lst = append(l.lst, ln)
	l.mu.Unlock()

	return nil
}

func (l *listener) AddSockets(sockets ...net.Listener) error {
	l.mu.Lock()
	l.lst = append(l.lst, sockets...)
	l.mu.Unlock()
	return nil
}

func (l *listener) Addrs() []net.Addr {
	l.mu.Lock()
	defer l.mu.Unlock()

	addrs := make([]net.Addr, 0, len(l.lst))
	for _, ln := range l.lst {
		addrs = append(addrs, ln.Addr())
	}
	return addrs
}

func (l *listener) Files() ([]*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	files := make([]*os.File, 0, len(l.lst))
	for _, ln := range l.lst {
		tcp, ok := ln.(*net.TCPListener)
		if !ok {
			continue
		}
		f, err := tcp.File()
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}

	return files, nil
}

func (l *listener) AdoptFiles(files []*os.File) error {
	for _, f := range files {
		ln, err := net.FileListener(f)
		if err != nil {
			return err
		}

		l.mu.Lock()
		l.lst = append(l.lst, ln)
		l.mu.Unlock()
	}

	return nil
}

func (l *listener) Track() {
	l.inf.Add(1)
}

func (l *listener) Untrack() {
	l.inf.Done()
}

func (l *listener) IsRunning() bool {
	return atomic.LoadInt32(&l.run) == 1
}
