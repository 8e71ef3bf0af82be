package netstream

import "sync/atomic"

func (s *stream) Write(p []byte) (int, error) {
	atomic.StoreInt32(&s.writing, 1)
	defer atomic.StoreInt32(&s.writing, 0)

	return s.conn.Write(p)
}
