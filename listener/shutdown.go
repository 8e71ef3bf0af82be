package listener

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	liberr "github.com/nabbar/htloop/errors"
)

func (l *listener) Shutdown(ctx context.Context) error {
	if err := l.Stop(); err != nil {
		return err
	}

	done := make(chan struct{})
	go func() {
		l.inf.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *listener) WaitNotify() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = l.Shutdown(ctx)
}

func (l *listener) PortInUse(addr string) liberr.Error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	dia := net.Dialer{}
	con, err := dia.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil
	}
	_ = con.Close()

	return liberr.New(liberr.SocketError)
}
